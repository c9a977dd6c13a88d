package robolang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func analyze(t *testing.T, source string) *Result {
	t.Helper()
	prog, err := Parse(source)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	return Analyze(prog)
}

func hasMessage(diags []Diagnostic, substr string) bool {
	for _, d := range diags {
		if strings.Contains(d.Message, substr) {
			return true
		}
	}
	return false
}

func Test_Analyze_cleanProgramHasNoErrors(t *testing.T) {
	assert := assert.New(t)

	source := "programa P\n" +
		"procesos\n" +
		"proceso Foo\n" +
		"variables\n" +
		"    x : numero\n" +
		"    y : numero\n" +
		"comenzar\n" +
		"    x := 1\n" +
		"    y := x + 2\n" +
		"fin\n" +
		"comenzar\n" +
		"    Foo()\n" +
		"fin\n"

	result := analyze(t, source)
	assert.True(result.Success)
}

func Test_Analyze_duplicateDeclaration(t *testing.T) {
	assert := assert.New(t)

	source := "programa P\n" +
		"procesos\n" +
		"proceso Foo\n" +
		"comenzar\n" +
		"fin\n" +
		"proceso Foo\n" +
		"comenzar\n" +
		"fin\n" +
		"comenzar\n" +
		"fin\n"

	result := analyze(t, source)
	assert.False(result.Success)
	assert.True(hasMessage(result.Diagnostics, "declarado"))
}

func Test_Analyze_useBeforeDeclare(t *testing.T) {
	assert := assert.New(t)

	source := "programa P\ncomenzar\n    y := x + 1\nfin\n"
	result := analyze(t, source)
	assert.False(result.Success)
	assert.True(hasMessage(result.Diagnostics, "no declarado"))
}

func Test_Analyze_typeMismatchInExpression(t *testing.T) {
	assert := assert.New(t)

	source := "programa P\n" +
		"procesos\n" +
		"proceso Foo\n" +
		"variables\n" +
		"    a : numero\n" +
		"    b : booleano\n" +
		"comenzar\n" +
		"    a := 1\n" +
		"    b := V\n" +
		"    a := a + b\n" +
		"fin\n" +
		"comenzar\n" +
		"    Foo()\n" +
		"fin\n"

	result := analyze(t, source)
	assert.False(result.Success)
	assert.True(hasMessage(result.Diagnostics, "tipos incompatibles"))
}

func Test_Analyze_assignmentTypeMismatch(t *testing.T) {
	assert := assert.New(t)

	source := "programa P\n" +
		"procesos\n" +
		"proceso Foo\n" +
		"variables\n" +
		"    a : numero\n" +
		"comenzar\n" +
		"    a := V\n" +
		"fin\n" +
		"comenzar\n" +
		"    Foo()\n" +
		"fin\n"

	result := analyze(t, source)
	assert.False(result.Success)
	assert.True(hasMessage(result.Diagnostics, "tipos incompatibles en asignación"))
}

func Test_Analyze_uninitializedRead(t *testing.T) {
	assert := assert.New(t)

	source := "programa P\n" +
		"procesos\n" +
		"proceso Foo\n" +
		"variables\n" +
		"    a : numero\n" +
		"comenzar\n" +
		"    Informar(a)\n" +
		"fin\n" +
		"comenzar\n" +
		"    Foo()\n" +
		"fin\n"

	result := analyze(t, source)
	assert.True(hasMessage(result.Diagnostics, "no inicializada"))
}

func Test_Analyze_conditionalAssignmentOnlyReachesMaybeInit(t *testing.T) {
	assert := assert.New(t)

	source := "programa P\n" +
		"procesos\n" +
		"proceso Foo\n" +
		"variables\n" +
		"    a : numero\n" +
		"    cond : booleano\n" +
		"comenzar\n" +
		"    cond := V\n" +
		"    si cond\n" +
		"        a := 1\n" +
		"    Informar(a)\n" +
		"fin\n" +
		"comenzar\n" +
		"    Foo()\n" +
		"fin\n"

	result := analyze(t, source)
	assert.True(hasMessage(result.Diagnostics, "no inicializada"))
}

func Test_Analyze_controlFlowConditionTypes(t *testing.T) {
	assert := assert.New(t)

	source := "programa P\n" +
		"procesos\n" +
		"proceso Foo\n" +
		"variables\n" +
		"    x : numero\n" +
		"comenzar\n" +
		"    x := 1\n" +
		"    si x\n" +
		"        x := 2\n" +
		"fin\n" +
		"comenzar\n" +
		"    Foo()\n" +
		"fin\n"

	result := analyze(t, source)
	assert.False(result.Success)
	assert.True(hasMessage(result.Diagnostics, "booleano"))
}

func Test_Analyze_repeatCountMustBeNumeric(t *testing.T) {
	assert := assert.New(t)

	source := "programa P\n" +
		"procesos\n" +
		"proceso Foo\n" +
		"variables\n" +
		"    b : booleano\n" +
		"comenzar\n" +
		"    b := V\n" +
		"    repetir b\n" +
		"        b := V\n" +
		"fin\n" +
		"comenzar\n" +
		"    Foo()\n" +
		"fin\n"

	result := analyze(t, source)
	assert.False(result.Success)
	assert.True(hasMessage(result.Diagnostics, "numero"))
}

func Test_Analyze_selfRecursionRejected(t *testing.T) {
	assert := assert.New(t)

	source := "programa P\n" +
		"procesos\n" +
		"proceso Foo\n" +
		"comenzar\n" +
		"    Foo()\n" +
		"fin\n" +
		"comenzar\n" +
		"    Foo()\n" +
		"fin\n"

	result := analyze(t, source)
	assert.False(result.Success)
	assert.True(hasMessage(result.Diagnostics, "no puede llamarse a sí mismo"))
}

func Test_Analyze_arityMismatch(t *testing.T) {
	assert := assert.New(t)

	source := "programa P\n" +
		"procesos\n" +
		"proceso Foo(E a : numero)\n" +
		"comenzar\n" +
		"fin\n" +
		"comenzar\n" +
		"    Foo()\n" +
		"fin\n"

	result := analyze(t, source)
	assert.False(result.Success)
	assert.True(hasMessage(result.Diagnostics, "número de argumentos"))
}

func Test_Analyze_unknownCalleeRejected(t *testing.T) {
	assert := assert.New(t)

	source := "programa P\ncomenzar\n    NoExiste()\nfin\n"
	result := analyze(t, source)
	assert.False(result.Success)
	assert.True(hasMessage(result.Diagnostics, "no es un proceso declarado"))
}

func Test_Analyze_instanceBindingWarnings(t *testing.T) {
	assert := assert.New(t)

	source := "programa P\n" +
		"robots\n" +
		"robot Hormiga\n" +
		"comenzar\n" +
		"fin\n" +
		"variables\n" +
		"    h : Hormiga\n" +
		"comenzar\n" +
		"fin\n"

	result := analyze(t, source)
	var warnings []Diagnostic
	for _, d := range result.Diagnostics {
		if d.Severity == SeverityWarning {
			warnings = append(warnings, d)
		}
	}
	assert.Len(warnings, 2)
}

func Test_Analyze_instanceBindingsSatisfied(t *testing.T) {
	assert := assert.New(t)

	source := "programa P\n" +
		"robots\n" +
		"robot Hormiga\n" +
		"comenzar\n" +
		"fin\n" +
		"variables\n" +
		"    h : Hormiga\n" +
		"comenzar\n" +
		"    AsignarArea(h, Zona)\n" +
		"    Iniciar(h, 0, 0)\n" +
		"fin\n"

	result := analyze(t, source)
	for _, d := range result.Diagnostics {
		assert.NotEqual(SeverityWarning, d.Severity)
	}
}

func Test_Analyze_communicationTopology(t *testing.T) {
	assert := assert.New(t)

	source := "programa P\n" +
		"robots\n" +
		"robot Emisor\n" +
		"comenzar\n" +
		"    EnviarMensaje(Receptor)\n" +
		"fin\n" +
		"robot Receptor\n" +
		"comenzar\n" +
		"    RecibirMensaje(Emisor)\n" +
		"fin\n" +
		"variables\n" +
		"    e : Emisor\n" +
		"    r : Receptor\n" +
		"comenzar\n" +
		"    AsignarArea(e, Z)\n" +
		"    Iniciar(e, 0, 0)\n" +
		"    AsignarArea(r, Z)\n" +
		"    Iniciar(r, 1, 1)\n" +
		"fin\n"

	result := analyze(t, source)
	comm := result.IR.Communication
	assert.Equal(1, comm.Sends)
	assert.Equal(1, comm.Receives)
	assert.Equal(1, comm.Connections)
	assert.Equal(1, comm.EffectiveConnections)
}

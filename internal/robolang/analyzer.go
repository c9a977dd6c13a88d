package robolang

import (
	"sort"

	"github.com/ezelra/robolang/internal/util"
)

const typeUnknown = "unknown"

// analyzer performs the one-pass semantic analysis of spec.md §4.4: scoped
// symbol resolution, type inference and checking, procedure-call
// validation, initialization tracking, and communication-topology
// inference. Diagnostics accumulate; analysis never aborts early, per
// §4.4/§7 and grounded on the accumulate-and-continue style of
// analizer.rs's SemanticAnalyzer.
type analyzer struct {
	symbols *symbolTable
	diags   diagnosticSink

	procedures map[string]*Procedure
	robotTypes map[string]*RobotType
	areas      map[string]*Area
	instances  map[string]*RobotInstance

	paramDirection map[*Symbol]ParamDirection

	currentProc string // name of the enclosing procedure, for self-recursion ("" if none)

	sends    map[string]int
	receives map[string]int
	edges    map[[2]string]int
}

func newAnalyzer() *analyzer {
	return &analyzer{
		symbols:        newSymbolTable(),
		procedures:     map[string]*Procedure{},
		robotTypes:     map[string]*RobotType{},
		areas:          map[string]*Area{},
		instances:      map[string]*RobotInstance{},
		paramDirection: map[*Symbol]ParamDirection{},
		sends:          map[string]int{},
		receives:       map[string]int{},
		edges:          map[[2]string]int{},
	}
}

// Analyze runs semantic analysis over prog and returns the compiled
// Result. The IR is always produced when the AST parses, even with
// errors, per spec.md §4.4.
func Analyze(prog *Program) *Result {
	a := newAnalyzer()
	a.run(prog)

	ir := &IR{
		CompileID:        newCompileID(),
		ProgramName:      prog.Name,
		Areas:            prog.Areas,
		RobotTypes:       prog.RobotTypes,
		RobotInstances:   prog.RobotInstances,
		Procedures:       prog.Procedures,
		MainInstructions: prog.MainBlock,
		SymbolTable:      a.symbols.all,
		Communication:    a.communicationReport(),
	}

	return &Result{
		Success:     !a.diags.hasErrors(),
		Diagnostics: a.diags.items,
		IR:          ir,
	}
}

func (a *analyzer) run(prog *Program) {
	a.registerAreas(prog.Areas)
	a.registerProcedures(prog.Procedures)
	a.registerRobotTypes(prog.RobotTypes)
	a.registerInstances(prog.RobotInstances)

	for _, proc := range prog.Procedures {
		a.analyzeProcedure(proc)
	}
	for _, rt := range prog.RobotTypes {
		a.analyzeRobotType(rt)
	}

	a.analyzeMainBlock(prog)
	a.checkInstanceBindings(prog)
}

// --- registration (declaration uniqueness at global scope: check 1) ---

func (a *analyzer) registerAreas(areas []*Area) {
	for _, area := range areas {
		if _, exists := a.areas[area.Name]; exists {
			a.diags.error(area.Line, area.Column, "área '%s' ya declarada", area.Name)
			continue
		}
		a.areas[area.Name] = area
		sym := &Symbol{Name: area.Name, Kind: SymArea, TypeName: area.Kind.String(), Initialized: Initialised}
		if !a.symbols.declare(sym) {
			a.diags.error(area.Line, area.Column, "área '%s' ya declarada", area.Name)
		}
	}
}

func (a *analyzer) registerProcedures(procs []*Procedure) {
	for _, proc := range procs {
		if _, exists := a.procedures[proc.Name]; exists {
			a.diags.error(proc.Line, proc.Column, "proceso '%s' declarado múltiples veces", proc.Name)
			continue
		}
		a.procedures[proc.Name] = proc
		sym := &Symbol{Name: proc.Name, Kind: SymProc, TypeName: "", Initialized: Initialised}
		if !a.symbols.declare(sym) {
			a.diags.error(proc.Line, proc.Column, "proceso '%s' ya declarado", proc.Name)
		}
	}
}

func (a *analyzer) registerRobotTypes(types []*RobotType) {
	for _, rt := range types {
		if _, exists := a.robotTypes[rt.Name]; exists {
			a.diags.error(rt.Line, rt.Column, "robot '%s' definido múltiples veces", rt.Name)
			continue
		}
		a.robotTypes[rt.Name] = rt
		sym := &Symbol{Name: rt.Name, Kind: SymRobotType, TypeName: "", Initialized: Initialised}
		if !a.symbols.declare(sym) {
			a.diags.error(rt.Line, rt.Column, "robot '%s' ya declarado", rt.Name)
		}
	}
}

func (a *analyzer) registerInstances(instances []*RobotInstance) {
	for _, inst := range instances {
		if _, exists := a.instances[inst.Name]; exists {
			a.diags.error(inst.Line, inst.Column, "instancia '%s' ya declarada", inst.Name)
			continue
		}
		if _, ok := a.robotTypes[inst.TypeName]; !ok {
			a.diags.error(inst.Line, inst.Column, "el tipo de robot '%s' no está declarado (instancia '%s')", inst.TypeName, inst.Name)
		}
		a.instances[inst.Name] = inst
		sym := &Symbol{Name: inst.Name, Kind: SymRobotInstance, TypeName: inst.TypeName, Initialized: Initialised}
		if !a.symbols.declare(sym) {
			a.diags.error(inst.Line, inst.Column, "instancia '%s' ya declarada", inst.Name)
		}
	}
}

// --- procedures and robot types ---

func (a *analyzer) analyzeProcedure(proc *Procedure) {
	a.symbols.push("proceso:" + proc.Name)
	a.currentProc = proc.Name

	seenParams := util.NewSet[string]()
	for _, param := range proc.Parameters {
		if seenParams.Has(param.Name) {
			a.diags.error(param.Line, param.Column, "parámetro '%s' duplicado en proceso '%s'", param.Name, proc.Name)
			continue
		}
		seenParams.Add(param.Name)
		init := Declared
		if param.Direction == DirIn || param.Direction == DirInOut {
			init = Initialised
		}
		sym := &Symbol{Name: param.Name, Kind: SymParam, TypeName: param.TypeName, Initialized: init}
		a.symbols.declare(sym)
		a.paramDirection[sym] = param.Direction
	}

	a.declareLocals(proc.LocalVars, proc.Name)
	a.analyzeStmts(proc.Body, proc.Name, false)

	a.currentProc = ""
	a.symbols.pop()
}

func (a *analyzer) analyzeRobotType(rt *RobotType) {
	a.symbols.push("robot:" + rt.Name)
	a.declareLocals(rt.LocalVars, rt.Name)
	a.analyzeStmts(rt.Body, rt.Name, false)
	a.symbols.pop()
}

func (a *analyzer) analyzeMainBlock(prog *Program) {
	a.symbols.push("main")
	a.analyzeStmts(prog.MainBlock, "main", false)
	a.symbols.pop()
}

func (a *analyzer) declareLocals(vars []*VarDecl, ctxName string) {
	seen := util.NewSet[string]()
	for _, v := range vars {
		if seen.Has(v.Name) {
			a.diags.error(v.Line, v.Column, "variable '%s' declarada múltiples veces en '%s'", v.Name, ctxName)
			continue
		}
		seen.Add(v.Name)
		sym := &Symbol{Name: v.Name, Kind: SymVar, TypeName: v.TypeName, Initialized: Declared}
		if !a.symbols.declare(sym) {
			a.diags.error(v.Line, v.Column, "variable '%s' ya declarada en '%s'", v.Name, ctxName)
		}
	}
}

// --- statement analysis ---

// ctx names the enclosing procedure or robot type, for self-recursion and
// communication-topology attribution. conditional marks whether stmts run
// under an If/While/Repeat, which caps initialization at MaybeInit per
// spec.md §4.4's state machine.
func (a *analyzer) analyzeStmts(stmts []Statement, ctx string, conditional bool) {
	for _, stmt := range stmts {
		a.analyzeStmt(stmt, ctx, conditional)
	}
}

func (a *analyzer) analyzeStmt(stmt Statement, ctx string, conditional bool) {
	switch s := stmt.(type) {
	case *Assignment:
		a.analyzeAssignment(s, ctx, conditional)
	case *Call:
		a.analyzeCall(s, ctx)
	case *If:
		condType := a.typeOf(s.Cond, ctx)
		if condType != typeUnknown && condType != "booleano" {
			line, col := s.Cond.Pos()
			a.diags.error(line, col, "la condición de 'si' debe ser de tipo booleano, se encontró '%s'", condType)
		}
		a.analyzeStmts(s.Then, ctx, true)
		a.analyzeStmts(s.Else, ctx, true)
	case *While:
		condType := a.typeOf(s.Cond, ctx)
		if condType != typeUnknown && condType != "booleano" {
			line, col := s.Cond.Pos()
			a.diags.error(line, col, "la condición de 'mientras' debe ser de tipo booleano, se encontró '%s'", condType)
		}
		a.analyzeStmts(s.Body, ctx, true)
	case *Repeat:
		countType := a.typeOf(s.Count, ctx)
		if countType != typeUnknown && countType != "numero" {
			line, col := s.Count.Pos()
			a.diags.error(line, col, "el contador de 'repetir' debe ser de tipo numero, se encontró '%s'", countType)
		}
		a.analyzeStmts(s.Body, ctx, true)
	}
}

func (a *analyzer) analyzeAssignment(s *Assignment, ctx string, conditional bool) {
	valueType := a.typeOf(s.Value, ctx)

	sym, ok := a.symbols.lookup(s.Target)
	if !ok {
		line, col := s.Pos()
		a.diags.error(line, col, "identificador '%s' no declarado", s.Target)
		return
	}
	if sym.Kind != SymVar && sym.Kind != SymParam {
		line, col := s.Pos()
		a.diags.error(line, col, "'%s' es un %s y no puede ser el destino de una asignación", s.Target, sym.Kind)
		return
	}
	if sym.Kind == SymParam {
		if dir, ok := a.paramDirection[sym]; ok && dir == DirIn {
			line, col := s.Pos()
			a.diags.error(line, col, "no se puede asignar al parámetro de entrada '%s'", s.Target)
		}
	}

	if valueType != typeUnknown && sym.TypeName != "" && valueType != sym.TypeName {
		line, col := s.Pos()
		a.diags.error(line, col, "tipos incompatibles en asignación a '%s': esperado '%s', se encontró '%s'", s.Target, sym.TypeName, valueType)
	}

	if conditional {
		if sym.Initialized < MaybeInit {
			sym.Initialized = MaybeInit
		}
	} else {
		sym.Initialized = Initialised
	}
}

func (a *analyzer) analyzeCall(s *Call, ctx string) {
	for _, arg := range s.Args {
		a.typeOf(arg, ctx)
	}
	a.checkCallee(s.Callee, s.Args, ctx, s.Line, s.Column)
}

// checkCallee implements check 7 (procedure-call validation, including
// non-recursion and arity/type matching) and feeds check 9 (communication
// topology) for EnviarMensaje/RecibirMensaje calls.
func (a *analyzer) checkCallee(callee string, args []Expr, ctx string, line, col int) {
	if callee == "EnviarMensaje" {
		a.recordSend(ctx, args)
		return
	}
	if callee == "RecibirMensaje" {
		a.recordReceive(ctx, args)
		return
	}

	if proc, ok := a.procedures[callee]; ok {
		if callee == a.currentProc {
			a.diags.error(line, col, "el proceso '%s' no puede llamarse a sí mismo", callee)
		}
		if len(args) != len(proc.Parameters) {
			a.diags.error(line, col, "número de argumentos incorrecto para '%s': se esperaban %d, se encontraron %d", callee, len(proc.Parameters), len(args))
			return
		}
		for i, param := range proc.Parameters {
			argType := a.typeOf(args[i], ctx)
			if argType != typeUnknown && argType != param.TypeName {
				line, col := args[i].Pos()
				a.diags.error(line, col, "tipo incorrecto para el parámetro '%s' de '%s': esperado '%s', se encontró '%s'", param.Name, callee, param.TypeName, argType)
			}
		}
		return
	}

	if elementalInstructions[callee] {
		return
	}

	a.diags.error(line, col, "'%s' no es un proceso declarado ni una instrucción elemental", callee)
}

func (a *analyzer) recordSend(ctx string, args []Expr) {
	a.sends[ctx]++
	target, ok := exprIdentName(argAt(args, 0))
	if !ok {
		return
	}
	a.edges[[2]string{ctx, target}]++
}

func (a *analyzer) recordReceive(ctx string, args []Expr) {
	a.receives[ctx]++
	source, ok := exprIdentName(argAt(args, 0))
	if !ok {
		return
	}
	a.edges[[2]string{source, ctx}]++
}

func argAt(args []Expr, i int) Expr {
	if i < len(args) {
		return args[i]
	}
	return nil
}

func exprIdentName(e Expr) (string, bool) {
	switch v := e.(type) {
	case *Var:
		return v.Name, true
	case *CallExpr:
		return v.Name, true
	default:
		return "", false
	}
}

// --- type inference (check 3) ---

// typeOf infers the type of expr, recording "use-before-declare" (check 2)
// and "uninitialised read" (check 5) diagnostics along the way, and
// "incompatible types" (check 3) for malformed Binary nodes. It returns
// typeUnknown when the expression's type cannot be determined, in which
// case no further diagnostics cascade from that subtree.
func (a *analyzer) typeOf(expr Expr, ctx string) string {
	switch e := expr.(type) {
	case *Num:
		return "numero"
	case *Bool:
		return "booleano"
	case *Var:
		sym, ok := a.symbols.lookup(e.Name)
		if !ok {
			a.diags.error(e.Line, e.Column, "identificador '%s' no declarado", e.Name)
			return typeUnknown
		}
		if sym.Kind == SymVar || sym.Kind == SymParam {
			if sym.Initialized == Declared || sym.Initialized == MaybeInit {
				a.diags.error(e.Line, e.Column, "uso de variable no inicializada: '%s'", e.Name)
			}
		}
		if sym.TypeName == "" {
			return typeUnknown
		}
		return sym.TypeName
	case *Not:
		operandType := a.typeOf(e.Operand, ctx)
		if operandType != typeUnknown && operandType != "booleano" {
			a.diags.error(e.Line, e.Column, "tipos incompatibles: '~' requiere un operando booleano, se encontró '%s'", operandType)
			return typeUnknown
		}
		return "booleano"
	case *Binary:
		return a.typeOfBinary(e, ctx)
	case *CallExpr:
		for _, arg := range e.Args {
			a.typeOf(arg, ctx)
		}
		a.checkCallee(e.Name, e.Args, ctx, e.Line, e.Column)
		return typeUnknown
	default:
		return typeUnknown
	}
}

func (a *analyzer) typeOfBinary(e *Binary, ctx string) string {
	leftType := a.typeOf(e.Left, ctx)
	rightType := a.typeOf(e.Right, ctx)

	if leftType == typeUnknown || rightType == typeUnknown {
		return typeUnknown
	}

	switch e.Op {
	case OpAdd, OpSub, OpMul, OpDiv:
		if leftType == "numero" && rightType == "numero" {
			return "numero"
		}
	case OpLess, OpLessEqual, OpGreater, OpGreaterEqual, OpEquals, OpNotEquals:
		if leftType == rightType {
			return "booleano"
		}
	case OpAnd, OpOr:
		if leftType == "booleano" && rightType == "booleano" {
			return "booleano"
		}
	}

	a.diags.error(e.Line, e.Column, "tipos incompatibles en la expresión: '%s' %s '%s'", leftType, e.Op, rightType)
	return typeUnknown
}

// --- check 8: instance binding warnings ---

func (a *analyzer) checkInstanceBindings(prog *Program) {
	assigned := util.NewSet[string]()
	initiated := util.NewSet[string]()
	collectInstanceBindings(prog.MainBlock, assigned, initiated)

	for _, inst := range prog.RobotInstances {
		if !assigned.Has(inst.Name) {
			a.diags.warn(inst.Line, inst.Column, "la instancia '%s' no tiene asignación de área (AsignarArea)", inst.Name)
		}
		if !initiated.Has(inst.Name) {
			a.diags.warn(inst.Line, inst.Column, "la instancia '%s' no tiene posición inicial (Iniciar)", inst.Name)
		}
	}
}

func collectInstanceBindings(stmts []Statement, assigned, initiated util.Set[string]) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *Call:
			if s.Callee == "AsignarArea" {
				if name, ok := exprIdentName(argAt(s.Args, 0)); ok {
					assigned.Add(name)
				}
			}
			if s.Callee == "Iniciar" {
				if name, ok := exprIdentName(argAt(s.Args, 0)); ok {
					initiated.Add(name)
				}
			}
		case *If:
			collectInstanceBindings(s.Then, assigned, initiated)
			collectInstanceBindings(s.Else, assigned, initiated)
		case *While:
			collectInstanceBindings(s.Body, assigned, initiated)
		case *Repeat:
			collectInstanceBindings(s.Body, assigned, initiated)
		}
	}
}

// --- check 9: communication topology report ---

func (a *analyzer) communicationReport() Communication {
	entities := util.NewSet[string]()
	for e := range a.sends {
		entities.Add(e)
	}
	for e := range a.receives {
		entities.Add(e)
	}

	totalSends, totalReceives := 0, 0
	for _, n := range a.sends {
		totalSends += n
	}
	for _, n := range a.receives {
		totalReceives += n
	}

	effective := 0
	for pair := range a.edges {
		receiver := pair[1]
		if a.receives[receiver] > 0 {
			effective++
		}
	}

	names := entities.Elements()
	sort.Strings(names)

	var perEntity []EntityComm
	for _, e := range names {
		perEntity = append(perEntity, EntityComm{Entity: e, Sends: a.sends[e], Receives: a.receives[e]})
	}

	return Communication{
		Sends:                totalSends,
		Receives:             totalReceives,
		Connections:          len(a.edges),
		EffectiveConnections: effective,
		PerEntity:            perEntity,
	}
}

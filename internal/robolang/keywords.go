package robolang

import (
	"golang.org/x/text/cases"
)

// sectionKeywords are the exact, lowercase structural words of the
// language.
var sectionKeywords = map[string]bool{
	"programa":  true,
	"procesos":  true,
	"areas":     true,
	"robots":    true,
	"variables": true,
	"comenzar":  true,
	"fin":       true,
	"proceso":   true,
	"robot":     true,
}

// controlSentences are the four control-flow words.
var controlSentences = map[string]bool{
	"si":       true,
	"sino":     true,
	"mientras": true,
	"repetir":  true,
}

// elementalInstructions is the closed set of built-in action/query names a
// robot body may call, including the three area-kind names which double as
// grammar tokens in an AreaDecl.
var elementalInstructions = map[string]bool{
	"Iniciar":             true,
	"mover":               true,
	"derecha":             true,
	"tomarFlor":           true,
	"tomarPapel":          true,
	"depositarFlor":       true,
	"depositarPapel":      true,
	"PosAv":               true,
	"PosCa":               true,
	"HayFlorEnLaBolsa":    true,
	"HayPapelEnLaBolsa":   true,
	"HayFlorEnLaEsquina":  true,
	"HayPapelEnLaEsquina": true,
	"Pos":                 true,
	"Informar":            true,
	"AsignarArea":         true,
	"AreaC":                true,
	"AreaPC":               true,
	"AreaP":                true,
	"Leer":                true,
	"Random":              true,
	"BloquearEsquina":     true,
	"LiberarEsquina":      true,
	"EnviarMensaje":       true,
	"RecibirMensaje":      true,
}

// areaKinds is the subset of elementalInstructions usable as the AreaKind
// production in an AreaDecl.
var areaKinds = map[string]bool{
	"AreaC":  true,
	"AreaPC": true,
	"AreaP":  true,
}

// typeNames are the two built-in variable types.
var typeNames = map[string]bool{
	"numero":   true,
	"booleano": true,
}

// parameterTags are the three parameter-direction tags.
var parameterTags = map[string]bool{
	"E":  true,
	"S":  true,
	"ES": true,
}

var boolFold = cases.Fold()

// booleanLiteralValue reports whether word (after Unicode case folding) is
// one of the six accepted boolean spellings, and its truth value if so.
func booleanLiteralValue(word string) (value bool, ok bool) {
	folded := boolFold.String(word)
	switch folded {
	case boolFold.String("V"), boolFold.String("true"), boolFold.String("verdadero"):
		return true, true
	case boolFold.String("F"), boolFold.String("false"), boolFold.String("falso"):
		return false, true
	default:
		return false, false
	}
}

// kindOf classifies a bare word lexeme (already scanned as an identifier-
// shaped run of characters) into its final token kind. Lookup is
// case-sensitive except for boolean literals.
func kindOf(word string) Kind {
	if sectionKeywords[word] {
		return KindKeyword
	}
	if controlSentences[word] {
		return KindControlSentence
	}
	if elementalInstructions[word] {
		return KindElementalInstruction
	}
	if typeNames[word] {
		return KindTypeName
	}
	if parameterTags[word] {
		return KindParameterTag
	}
	if _, ok := booleanLiteralValue(word); ok {
		return KindBooleanLiteral
	}
	return KindIdentifier
}

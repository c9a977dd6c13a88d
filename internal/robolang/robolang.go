// Package robolang implements the compiler front end for the robot
// choreography language: an indentation-sensitive lexer, a recursive-
// descent parser, and a one-pass semantic analyzer, wired together by
// Compile.
package robolang

import "github.com/ezelra/robolang/internal/roboconfig"

// Compile runs the full tokenize -> parse -> analyze pipeline over source,
// per spec.md §5. A lexical or syntactic error aborts the whole compile
// immediately, returning a nil Result and the SyntaxError as err. Once
// parsing succeeds a Result is always returned, even when the analyzer
// recorded error-severity diagnostics: the IR is still built from whatever
// parsed, per spec.md §4.4.
func Compile(source string, cfg roboconfig.Config) (*Result, error) {
	prog, err := ParseWithTabWidth(source, cfg.TabWidth)
	if err != nil {
		return nil, err
	}

	result := Analyze(prog)
	applyConfig(result, cfg)
	return result, nil
}

// applyConfig enforces the two reporting knobs roboconfig exposes on top of
// the raw analysis: a cap on how many diagnostics are kept, and whether a
// warning alone should flip Success to false.
func applyConfig(result *Result, cfg roboconfig.Config) {
	if cfg.MaxDiagnostics > 0 && len(result.Diagnostics) > cfg.MaxDiagnostics {
		result.Diagnostics = result.Diagnostics[:cfg.MaxDiagnostics]
	}
	if cfg.StrictWarnings {
		for _, d := range result.Diagnostics {
			if d.Severity == SeverityWarning {
				result.Success = false
				break
			}
		}
	}
}

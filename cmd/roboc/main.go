/*
Roboc compiles robot choreography programs.

It reads a source file, runs it through the lexer, parser and semantic
analyzer, and prints any diagnostics found. With no positional argument it
reads from stdin. With --repl it starts an interactive session instead.

Usage:

	roboc [flags] [FILE]

The flags are:

	-v, --version
		Give the current version of roboc and then exit.

	-r, --repl
		Start an interactive read-eval-print session instead of compiling a
		file.

	-c, --config FILE
		Load configuration from the given TOML file instead of the default
		".roboc.toml" in the current working directory.

	--no-color
		Disable colored diagnostic output.

	--emit-ir FILE
		After compiling, write the resulting IR snapshot to FILE as a
		rezi-encoded binary blob. The snapshot is written whenever parsing
		succeeds, even if the analyzer reported error diagnostics.

	--from-ir FILE
		Read a previously emitted IR snapshot from FILE and print its
		communication report instead of compiling anything.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/rosed"
	"github.com/ezelra/robolang/internal/roboconfig"
	"github.com/ezelra/robolang/internal/robolang"
	"github.com/ezelra/robolang/internal/version"
	"github.com/spf13/pflag"
)

// ANSI color codes for printReport's diagnostic lines, gated on
// roboconfig.Config.Color / --no-color. The teacher's stack carries no
// terminal-color library (see DESIGN.md), so these are plain escapes.
const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitDiagnosticError indicates the program compiled but the analyzer
	// reported at least one error-severity diagnostic.
	ExitDiagnosticError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue reading input, configuration, or a lexical/syntactic error.
	ExitInitError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	flagRepl    *bool   = pflag.BoolP("repl", "r", false, "Start an interactive compile session")
	flagConfig  *string = pflag.StringP("config", "c", ".roboc.toml", "Configuration file to load")
	flagNoColor *bool   = pflag.Bool("no-color", false, "Disable colored diagnostic output")
	flagEmitIR  *string = pflag.String("emit-ir", "", "Write the compiled IR snapshot to the given file")
	flagFromIR  *string = pflag.String("from-ir", "", "Read an IR snapshot from the given file and print its report")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg, err := roboconfig.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	if *flagNoColor {
		cfg.Color = false
	}

	if *flagFromIR != "" {
		if err := printSnapshot(*flagFromIR); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
		}
		return
	}

	if *flagRepl {
		if err := runRepl(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
		}
		return
	}

	var source []byte
	args := pflag.Args()
	if len(args) > 0 {
		source, err = os.ReadFile(args[0])
	} else {
		source, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	result, err := robolang.Compile(string(source), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	printReport(result, cfg)

	if *flagEmitIR != "" {
		if err := emitIR(result, *flagEmitIR); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
	}

	if !result.Success {
		returnCode = ExitDiagnosticError
	}
}

func printReport(result *robolang.Result, cfg roboconfig.Config) {
	if len(result.Diagnostics) == 0 {
		fmt.Println("no diagnostics")
	}
	for _, d := range result.Diagnostics {
		fmt.Println(colorizeDiagnostic(d, cfg))
	}

	fmt.Println()
	fmt.Println("Symbol table:")
	fmt.Println(symbolTableTable(result.IR.SymbolTable))

	fmt.Println()
	fmt.Println(communicationTable(result.IR.Communication))
}

// colorizeDiagnostic wraps d in an ANSI color matching its severity, unless
// cfg.Color is false (--no-color).
func colorizeDiagnostic(d robolang.Diagnostic, cfg roboconfig.Config) string {
	line := d.String()
	if !cfg.Color {
		return line
	}
	color := ansiYellow
	if d.Severity == robolang.SeverityError {
		color = ansiRed
	}
	return color + line + ansiReset
}

// symbolTableTable renders the IR's symbol table as an aligned table, the
// way the teacher's slrTable/canonicalLR1Table render their state tables.
func symbolTableTable(symbols []*robolang.Symbol) string {
	data := [][]string{{"Name", "Kind", "Type", "Scope", "Init", "Const"}}
	for _, sym := range symbols {
		data = append(data, []string{
			sym.Name,
			sym.Kind.String(),
			sym.TypeName,
			sym.ScopePath,
			sym.Initialized.String(),
			strconv.FormatBool(sym.Constant),
		})
	}
	return rosed.Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// communicationTable renders the per-entity send/receive counts as an
// aligned table, followed by the overall summary line.
func communicationTable(comm robolang.Communication) string {
	data := [][]string{{"Entity", "Sends", "Receives"}}
	for _, e := range comm.PerEntity {
		data = append(data, []string{e.Entity, strconv.Itoa(e.Sends), strconv.Itoa(e.Receives)})
	}

	summary := fmt.Sprintf(
		"communication: %d sends, %d receives, %d connections (%d effective)",
		comm.Sends, comm.Receives, comm.Connections, comm.EffectiveConnections,
	)

	table := rosed.Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()

	return table + "\n" + rosed.Edit(summary).Wrap(100).String()
}

func emitIR(result *robolang.Result, path string) error {
	data := rezi.EncBinary(result.IR.ToSnapshot())
	return os.WriteFile(path, data, 0644)
}

func printSnapshot(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read IR snapshot: %w", err)
	}
	snap := &robolang.Snapshot{}
	if _, err := rezi.DecBinary(data, snap); err != nil {
		return fmt.Errorf("decode IR snapshot: %w", err)
	}
	fmt.Printf("program %q (compile %s)\n", snap.ProgramName, snap.CompileID)
	fmt.Printf(
		"communication: %d sends, %d receives, %d connections (%d effective)\n",
		snap.Communication.Sends, snap.Communication.Receives,
		snap.Communication.Connections, snap.Communication.EffectiveConnections,
	)
	return nil
}

package robolang

import "github.com/google/uuid"

// EntityComm holds the per-entity send/receive totals of the communication
// topology (spec.md §4.4 check 9).
type EntityComm struct {
	Entity   string
	Sends    int
	Receives int
}

// Communication is the inter-robot messaging topology inferred statically
// by the analyzer.
type Communication struct {
	Sends                int
	Receives             int
	Connections          int
	EffectiveConnections int
	PerEntity            []EntityComm
}

// IR is the validated intermediate representation produced by a
// successful (or partially successful, per spec.md §4.4's "IR is always
// produced when the AST parses") compile.
type IR struct {
	// CompileID uniquely identifies this compile run, so diagnostics and a
	// cached --emit-ir blob can be correlated across a REPL history or a
	// build log.
	CompileID string

	ProgramName      string
	Areas            []*Area
	RobotTypes       []*RobotType
	RobotInstances   []*RobotInstance
	Procedures       []*Procedure
	MainInstructions []Statement
	SymbolTable      []*Symbol
	Communication    Communication
}

// Result is the structured output of a full compile per spec.md §6.
type Result struct {
	Success     bool
	Diagnostics []Diagnostic
	IR          *IR
}

// Snapshot is the rezi-serializable projection of an IR used by
// `--emit-ir`/`--from-ir`. rezi encodes concrete field values by
// reflection and cannot represent the Statement/Expr interface trees
// carried by IR.MainInstructions and Procedure/RobotType bodies, so the
// cache captures everything else: program identity, declared entities,
// symbol table, and the communication report. Re-running `compile` is
// required to get a fresh AST; the cache exists to let tooling inspect a
// prior run's analysis without recompiling.
type Snapshot struct {
	CompileID      string
	ProgramName    string
	Areas          []*Area
	RobotTypes     []*RobotType
	RobotInstances []*RobotInstance
	SymbolTable    []*Symbol
	Communication  Communication
}

// ToSnapshot projects ir onto its rezi-serializable Snapshot.
func (ir *IR) ToSnapshot() *Snapshot {
	return &Snapshot{
		CompileID:      ir.CompileID,
		ProgramName:    ir.ProgramName,
		Areas:          ir.Areas,
		RobotTypes:     ir.RobotTypes,
		RobotInstances: ir.RobotInstances,
		SymbolTable:    ir.SymbolTable,
		Communication:  ir.Communication,
	}
}

func newCompileID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return ""
	}
	return id.String()
}

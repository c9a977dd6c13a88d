package robolang

import "github.com/ezelra/robolang/internal/util"

// SymbolKind classifies what a Symbol denotes.
type SymbolKind int

const (
	SymVar SymbolKind = iota
	SymParam
	SymProc
	SymRobotType
	SymRobotInstance
	SymArea
)

func (k SymbolKind) String() string {
	switch k {
	case SymVar:
		return "Var"
	case SymParam:
		return "Param"
	case SymProc:
		return "Proc"
	case SymRobotType:
		return "RobotType"
	case SymRobotInstance:
		return "RobotInstance"
	case SymArea:
		return "Area"
	default:
		return "?"
	}
}

// InitState is a Var's position in the initialization state machine of
// spec.md §4.4: Declared -> MaybeInit -> Initialised.
type InitState int

const (
	Declared InitState = iota
	MaybeInit
	Initialised
)

func (s InitState) String() string {
	switch s {
	case MaybeInit:
		return "MaybeInit"
	case Initialised:
		return "Initialised"
	default:
		return "Declared"
	}
}

// Symbol is one entry of the symbol table: a declared name together with
// its kind, type, and the scope path it was declared under.
type Symbol struct {
	Name        string
	Kind        SymbolKind
	TypeName    string
	ScopePath   string
	Initialized InitState
	Constant    bool
}

// scope is one frame of the scope stack: a name->Symbol map plus the path
// string used to label Symbols declared within it (spec.md §9: "scope
// stack is explicit, vector of maps").
type scope struct {
	path    string
	symbols map[string]*Symbol
}

// symbolTable is the scope-stack symbol table maintained by the analyzer,
// plus a flat append-only log of every symbol ever declared (for
// reporting, per spec.md §4.4).
type symbolTable struct {
	stack util.Stack[*scope]
	all   []*Symbol
}

func newSymbolTable() *symbolTable {
	t := &symbolTable{}
	t.push("global")
	return t
}

func (t *symbolTable) push(path string) {
	t.stack.Push(&scope{path: path, symbols: map[string]*Symbol{}})
}

func (t *symbolTable) pop() {
	t.stack.Pop()
}

func (t *symbolTable) currentPath() string {
	top, ok := t.stack.Peek()
	if !ok {
		return ""
	}
	return top.path
}

// declare adds sym to the innermost scope. It returns false (without
// modifying the table) if the name is already declared in that same
// scope, so the caller can raise the "declaration uniqueness" diagnostic
// (spec.md §4.4 check 1).
func (t *symbolTable) declare(sym *Symbol) bool {
	top, ok := t.stack.Peek()
	if !ok {
		return false
	}
	sym.ScopePath = top.path
	if _, exists := top.symbols[sym.Name]; exists {
		return false
	}
	top.symbols[sym.Name] = sym
	t.all = append(t.all, sym)
	return true
}

// lookup resolves name by walking the scope stack innermost to outermost
// (spec.md §4.4 check 2).
func (t *symbolTable) lookup(name string) (*Symbol, bool) {
	items := t.stack.Items()
	for i := len(items) - 1; i >= 0; i-- {
		if sym, ok := items[i].symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// lookupLocal resolves name only within the innermost scope. (declare does
// its own same-scope check for declaration uniqueness.)
func (t *symbolTable) lookupLocal(name string) (*Symbol, bool) {
	top, ok := t.stack.Peek()
	if !ok {
		return nil, false
	}
	sym, ok := top.symbols[name]
	return sym, ok
}

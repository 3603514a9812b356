package grammar

import (
	"fmt"
	"sort"

	"github.com/ktr0731/llgen/llerrors"
)

// nonTerminalInfo holds the per-non-terminal bookkeeping attached to a
// NonTerminal symbol. It lives in a Grammar-owned side table keyed by
// Symbol rather than on the symbol value itself, since Symbol is a plain
// comparable value with no room for mutable per-instance state.
type nonTerminalInfo struct {
	firstSet  *firstEntry
	followSet *followEntry

	// firstRHSSet is the transitive closure of "left-most RHS
	// non-terminal", used only for indirect-left-recursion detection. It
	// is populated at most once, memoized.
	firstRHSSet     symbolSet
	firstRHSPending bool // guards against infinite recursion while building

	// newNameCounter synthesizes fresh non-terminal names during
	// left-recursion elimination: the next name is name + "-" + counter.
	// Starts at 1.
	newNameCounter int
}

func newNonTerminalInfo() *nonTerminalInfo {
	return &nonTerminalInfo{
		firstSet:       newFirstEntry(),
		followSet:      newFollowEntry(),
		newNameCounter: 1,
	}
}

// Grammar is the sole owner of every symbol and production in a loaded
// context-free grammar.
type Grammar struct {
	symbolsByName map[string]Symbol
	terminals     symbolSet
	nonTerminals  symbolSet
	productions   *productionSet
	nonTermInfo   map[Symbol]*nonTerminalInfo

	root Symbol

	// parseTable is populated by stage H (BuildParseTable). It is nil
	// until that stage runs successfully.
	parseTable *ParseTable
}

// TableKey is an (non-terminal, look-ahead terminal) pair, the parse
// table's key type.
type TableKey struct {
	NonTerminal Symbol
	Terminal    Symbol
}

// ParseTable is the predictive-parsing table BuildParseTable produces: a
// partial function (NonTerminal, Terminal) -> Production.
type ParseTable struct {
	entries map[TableKey]*Production
}

// Get returns the production registered for (nt, term), or nil if there
// is none.
func (t *ParseTable) Get(nt, term Symbol) *Production {
	if t == nil {
		return nil
	}
	return t.entries[TableKey{NonTerminal: nt, Terminal: term}]
}

func newGrammar() *Grammar {
	g := &Grammar{
		symbolsByName: make(map[string]Symbol),
		terminals:     newSymbolSet(),
		nonTerminals:  newSymbolSet(),
		productions:   newProductionSet(),
		nonTermInfo:   make(map[Symbol]*nonTerminalInfo),
	}
	return g
}

// Root returns the grammar's start symbol.
func (g *Grammar) Root() Symbol { return g.root }

// ParseTable returns the grammar's parse table, or nil if BuildParseTable
// has not yet run.
func (g *Grammar) ParseTable() *ParseTable { return g.parseTable }

// Terminals returns the grammar's terminal symbols, sorted by name.
func (g *Grammar) Terminals() []Symbol { return g.terminals.sorted() }

// NonTerminals returns the grammar's non-terminal symbols, sorted by name.
func (g *Grammar) NonTerminals() []Symbol { return g.nonTerminals.sorted() }

// Productions returns every live production, sorted by textual
// representation.
func (g *Grammar) Productions() []*Production { return g.productions.all() }

// LHSProductions returns nt's productions, sorted by textual
// representation.
func (g *Grammar) LHSProductions(nt Symbol) []*Production {
	ps := append([]*Production(nil), g.productions.lhsProductions(nt)...)
	sortProductions(ps)
	return ps
}

// RHSProductions returns the productions in which s occurs somewhere in
// the RHS.
func (g *Grammar) RHSProductions(s Symbol) []*Production {
	ps := append([]*Production(nil), g.productions.rhsProductions(s)...)
	sortProductions(ps)
	return ps
}

// Symbol looks up a symbol by name.
func (g *Grammar) Symbol(name string) (Symbol, bool) {
	s, ok := g.symbolsByName[name]
	return s, ok
}

// FirstSet returns the FIRST set computed for non-terminal nt. Call
// ComputeFirst first; before that, the set is empty.
func (g *Grammar) FirstSet(nt Symbol) []Symbol {
	info := g.nonTermInfo[nt]
	if info == nil {
		return nil
	}
	return info.firstSet.symbols()
}

// FirstSetHasEmpty reports whether nt's FIRST set contains EMPTY.
func (g *Grammar) FirstSetHasEmpty(nt Symbol) bool {
	info := g.nonTermInfo[nt]
	return info != nil && info.firstSet.hasEmpty()
}

// FollowSet returns the FOLLOW set computed for non-terminal nt.
func (g *Grammar) FollowSet(nt Symbol) []Symbol {
	info := g.nonTermInfo[nt]
	if info == nil {
		return nil
	}
	return info.followSet.symbols()
}

// ProductionFirstSet returns the cached FIRST(RHS) for production p.
func (g *Grammar) ProductionFirstSet(p *Production) []Symbol {
	if p.firstSet == nil {
		return nil
	}
	return p.firstSet.symbols()
}

func (g *Grammar) ensureSymbol(kind Kind, name string) (Symbol, error) {
	if existing, ok := g.symbolsByName[name]; ok {
		if existing.kind != kind {
			return Symbol{}, &llerrors.LoadError{
				Message: fmt.Sprintf("symbol %q is used as both a terminal and a non-terminal", name),
			}
		}
		return existing, nil
	}
	var s Symbol
	if kind == Terminal {
		s = NewTerminal(name)
		g.terminals.add(s)
	} else {
		s = NewNonTerminal(name)
		g.nonTerminals.add(s)
		g.nonTermInfo[s] = newNonTerminalInfo()
	}
	g.symbolsByName[name] = s
	return s, nil
}

// addProduction creates a production and links it into lhs's
// lhs-production set, every RHS non-terminal's rhs-production set, and
// the grammar's production set. It fails if an equal production already
// exists.
func (g *Grammar) addProduction(lhs Symbol, rhs []Symbol) (*Production, error) {
	id := genProductionID(lhs, rhs)
	if existing, ok := g.productions.find(id); ok {
		return nil, &llerrors.StructureError{
			Message: fmt.Sprintf("duplicate production: %s", existing),
		}
	}
	p := &Production{id: id, lhs: lhs, rhs: append([]Symbol(nil), rhs...), firstSet: newFirstEntry()}
	g.productions.insert(p)
	return p, nil
}

// retireProduction removes p from every set that references it. After
// this call p must not be referenced further.
func (g *Grammar) retireProduction(p *Production) {
	g.productions.remove(p)
}

// resolveRoot finds the unique non-terminal that occurs in no RHS other
// than those of its own productions, so a directly left-recursive start
// symbol (E -> E T_PLUS T) still qualifies. It fails if there are zero or
// more than one candidates.
func (g *Grammar) resolveRoot() error {
	var candidates []Symbol
	for _, nt := range g.nonTerminals.sorted() {
		referenced := false
		for _, p := range g.productions.rhsProductions(nt) {
			if p.lhs != nt {
				referenced = true
				break
			}
		}
		if !referenced {
			candidates = append(candidates, nt)
		}
	}
	switch len(candidates) {
	case 1:
		g.root = candidates[0]
		return nil
	case 0:
		return &llerrors.StructureError{Message: "no root symbol found: every non-terminal appears in the RHS of another non-terminal's production"}
	default:
		names := make([]string, len(candidates))
		for i, s := range candidates {
			names[i] = s.Name()
		}
		sort.Strings(names)
		return &llerrors.StructureError{Message: fmt.Sprintf("multiple root symbol candidates: %v", names)}
	}
}

// Copy returns a deep copy of g, safe to mutate independently. A driver
// should hold its own snapshot of the grammar it was built from, rather
// than share the grammar with whatever process loaded or rewrote it.
func (g *Grammar) Copy() *Grammar {
	cp := newGrammar()
	for name, s := range g.symbolsByName {
		cp.symbolsByName[name] = s
	}
	for s := range g.terminals {
		cp.terminals.add(s)
	}
	for s := range g.nonTerminals {
		cp.nonTerminals.add(s)
	}
	for nt, info := range g.nonTermInfo {
		cp.nonTermInfo[nt] = &nonTerminalInfo{
			firstSet:       info.firstSet.clone(),
			followSet:      info.followSet.clone(),
			newNameCounter: info.newNameCounter,
		}
	}
	idToCopy := make(map[productionID]*Production, len(g.productions.byID))
	for id, p := range g.productions.byID {
		np := &Production{id: id, lhs: p.lhs, rhs: append([]Symbol(nil), p.rhs...), firstSet: p.firstSet.clone()}
		idToCopy[id] = np
		cp.productions.insert(np)
	}
	cp.root = g.root
	if g.parseTable != nil {
		entries := make(map[TableKey]*Production, len(g.parseTable.entries))
		for k, p := range g.parseTable.entries {
			entries[k] = idToCopy[p.id]
		}
		cp.parseTable = &ParseTable{entries: entries}
	}
	return cp
}

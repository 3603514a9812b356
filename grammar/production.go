package grammar

import (
	"crypto/sha256"
	"sort"
	"strings"
)

// productionID is a content hash over (LHS, RHS), used as the identity a
// Production is deduplicated and looked up by.
type productionID [sha256.Size]byte

func genProductionID(lhs Symbol, rhs []Symbol) productionID {
	var b strings.Builder
	b.WriteString(lhs.name)
	b.WriteByte(0)
	for _, s := range rhs {
		b.WriteString(s.name)
		b.WriteByte(0)
	}
	return sha256.Sum256([]byte(b.String()))
}

// Production is an immutable (LHS, RHS) pair. It may only be constructed
// through Grammar.addProduction and may only be removed through
// Grammar.retireProduction; there is no exported mutator.
type Production struct {
	id  productionID
	lhs Symbol
	rhs []Symbol

	// firstSet is FIRST(rhs), maintained alongside lhs's FIRST set.
	firstSet *firstEntry
}

// LHS returns the production's left-hand side.
func (p *Production) LHS() Symbol { return p.lhs }

// RHS returns the production's right-hand side. Callers must not mutate
// the returned slice.
func (p *Production) RHS() []Symbol { return p.rhs }

// IsEmpty reports whether the production is of the form A -> T_.
func (p *Production) IsEmpty() bool {
	return len(p.rhs) == 1 && p.rhs[0].IsEmpty()
}

// Equal reports whether p and other have the same LHS and RHS.
func (p *Production) Equal(other *Production) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.id == other.id
}

// SymbolPositions returns the ordered list of indices at which sym occurs
// in p's RHS.
func (p *Production) SymbolPositions(sym Symbol) []int {
	var positions []int
	for i, s := range p.rhs {
		if s == sym {
			positions = append(positions, i)
		}
	}
	return positions
}

// String renders the production for table dumps and error messages:
// "[<LHS> -> <sym1> <sym2> ...]".
func (p *Production) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(p.lhs.name)
	b.WriteString(" ->")
	for _, s := range p.rhs {
		b.WriteByte(' ')
		b.WriteString(s.name)
	}
	b.WriteByte(']')
	return b.String()
}

// sortKey is the textual representation used wherever iteration order
// must be deterministic rather than map-order.
func (p *Production) sortKey() string { return p.String() }

// productionSet is the Grammar-owned collection of live productions,
// indexed both by content ID (duplicate detection) and by LHS (rewriter,
// validator).
type productionSet struct {
	byID     map[productionID]*Production
	byLHS    map[Symbol][]*Production
	byRHSSym map[Symbol][]*Production
}

func newProductionSet() *productionSet {
	return &productionSet{
		byID:     make(map[productionID]*Production),
		byLHS:    make(map[Symbol][]*Production),
		byRHSSym: make(map[Symbol][]*Production),
	}
}

func (ps *productionSet) find(id productionID) (*Production, bool) {
	p, ok := ps.byID[id]
	return p, ok
}

func (ps *productionSet) insert(p *Production) {
	ps.byID[p.id] = p
	ps.byLHS[p.lhs] = append(ps.byLHS[p.lhs], p)
	seen := make(map[Symbol]struct{})
	for _, s := range p.rhs {
		if !s.IsNonTerminal() {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		ps.byRHSSym[s] = append(ps.byRHSSym[s], p)
	}
}

func (ps *productionSet) remove(p *Production) {
	delete(ps.byID, p.id)
	ps.byLHS[p.lhs] = removeProduction(ps.byLHS[p.lhs], p)
	if len(ps.byLHS[p.lhs]) == 0 {
		delete(ps.byLHS, p.lhs)
	}
	seen := make(map[Symbol]struct{})
	for _, s := range p.rhs {
		if !s.IsNonTerminal() {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		ps.byRHSSym[s] = removeProduction(ps.byRHSSym[s], p)
		if len(ps.byRHSSym[s]) == 0 {
			delete(ps.byRHSSym, s)
		}
	}
}

func removeProduction(list []*Production, p *Production) []*Production {
	out := list[:0:0]
	for _, q := range list {
		if q != p {
			out = append(out, q)
		}
	}
	return out
}

func (ps *productionSet) lhsProductions(s Symbol) []*Production {
	return ps.byLHS[s]
}

func (ps *productionSet) rhsProductions(s Symbol) []*Production {
	return ps.byRHSSym[s]
}

// all returns every live production, sorted by textual representation for
// determinism.
func (ps *productionSet) all() []*Production {
	out := make([]*Production, 0, len(ps.byID))
	for _, p := range ps.byID {
		out = append(out, p)
	}
	sortProductions(out)
	return out
}

func sortProductions(ps []*Production) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].sortKey() < ps[j].sortKey() })
}

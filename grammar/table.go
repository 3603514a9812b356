package grammar

import "github.com/ktr0731/llgen/llerrors"

// BuildParseTable constructs the predictive-parsing table and stores it
// on g. Must run after Validate succeeds: the validator guarantees the
// two assignment clauses below can never collide, so any collision found
// here is an internal invariant failure, not a grammar defect, and is
// reported as TableError rather than LL1Error.
func BuildParseTable(g *Grammar) error {
	entries := make(map[TableKey]*Production)

	assign := func(nt, term Symbol, p *Production) error {
		key := TableKey{NonTerminal: nt, Terminal: term}
		if existing, ok := entries[key]; ok {
			return &llerrors.TableError{
				NonTerminal: nt.Name(),
				Terminal:    term.Name(),
				Existing:    existing.String(),
				New:         p.String(),
			}
		}
		entries[key] = p
		return nil
	}

	for _, p := range g.Productions() {
		a := p.lhs
		for _, x := range p.firstSet.symbols() {
			if x.IsEmpty() {
				continue
			}
			if err := assign(a, x, p); err != nil {
				return err
			}
		}
		if p.firstSet.hasEmpty() {
			for _, y := range g.nonTermInfo[a].followSet.symbols() {
				if err := assign(a, y, p); err != nil {
					return err
				}
			}
		}
	}

	g.parseTable = &ParseTable{entries: entries}
	return nil
}

package grammar

// followEntry is a FOLLOW set: a set of terminals that never contains
// EMPTY.
type followEntry struct {
	syms symbolSet
}

func newFollowEntry() *followEntry {
	return &followEntry{syms: newSymbolSet()}
}

func (e *followEntry) add(s Symbol) bool { return e.syms.add(s) }

func (e *followEntry) has(s Symbol) bool { return e.syms.has(s) }

func (e *followEntry) union(other *followEntry) bool { return e.syms.union(other.syms) }

func (e *followEntry) size() int { return len(e.syms) }

func (e *followEntry) symbols() []Symbol { return e.syms.sorted() }

func (e *followEntry) clone() *followEntry {
	cp := newSymbolSet()
	for s := range e.syms {
		cp.add(s)
	}
	return &followEntry{syms: cp}
}

// ComputeFollow computes FOLLOW(A) for every non-terminal A to a least
// fixpoint. Must run after ComputeFirst, since it consumes substringFirst,
// which requires every contained non-terminal to already have a
// first_set.
//
// Unlike asserting a non-terminal occupies exactly one position in any
// single production's RHS, this iterates every position a symbol
// occupies, so the engine never panics on a not-yet-validated grammar;
// the validator's single-occurrence check is what actually enforces the
// one-occurrence rule for a well-formed grammar.
func ComputeFollow(g *Grammar) {
	// EOF enters the grammar here; register it so it can be looked up by
	// name like any other terminal.
	g.terminals.add(EOF)
	g.symbolsByName[EOFName] = EOF

	if !g.root.IsZero() {
		g.nonTermInfo[g.root].followSet.add(EOF)
	}

	nts := g.nonTerminals.sorted()
	sizes := make([]int, len(nts))
	for i, nt := range nts {
		sizes[i] = g.nonTermInfo[nt].followSet.size()
	}
	for {
		visited := make(map[Symbol]bool, len(nts))
		for _, nt := range nts {
			computeFollowForSymbol(g, nt, visited, nil)
		}

		changed := false
		for i, nt := range nts {
			n := g.nonTermInfo[nt].followSet.size()
			if n != sizes[i] {
				changed = true
				sizes[i] = n
			}
		}
		if !changed {
			break
		}
	}
}

func computeFollowForSymbol(g *Grammar, a Symbol, visited map[Symbol]bool, path symbolSet) {
	if visited[a] {
		return
	}
	visited[a] = true

	if path.has(a) {
		return
	}
	if path == nil {
		path = newSymbolSet()
	}
	path.add(a)
	defer path.remove(a)

	info := g.nonTermInfo[a]
	for _, p := range g.RHSProductions(a) {
		for _, index := range p.SymbolPositions(a) {
			if index == len(p.rhs)-1 {
				computeFollowForSymbol(g, p.lhs, visited, path)
				info.followSet.union(g.nonTermInfo[p.lhs].followSet)
				continue
			}

			substr := substringFirst(g, p, index+1)
			info.followSet.union(&followEntry{syms: withoutEmpty(substr)})

			if substr.hasEmpty() {
				computeFollowForSymbol(g, p.lhs, visited, path)
				info.followSet.union(g.nonTermInfo[p.lhs].followSet)
			}
		}
	}
}

func withoutEmpty(e *firstEntry) symbolSet {
	cp := newSymbolSet()
	for s := range e.syms {
		if s != Empty {
			cp.add(s)
		}
	}
	return cp
}

package grammar

// firstEntry is a FIRST set: a set of terminals that may include EMPTY.
// EMPTY is folded into the symbol set as an ordinary member rather than
// tracked as a separate flag. Walking a sequence of symbols unions each
// one's FIRST set in turn but discards EMPTY after every step; EMPTY is
// added back only once the walk runs off the end of the sequence, i.e.
// every symbol along the way can derive EMPTY. A nullable symbol in the
// middle of a sequence never leaks EMPTY into the result on its own.
type firstEntry struct {
	syms symbolSet
}

func newFirstEntry() *firstEntry {
	return &firstEntry{syms: newSymbolSet()}
}

func (e *firstEntry) add(s Symbol) bool { return e.syms.add(s) }

func (e *firstEntry) addEmpty() bool { return e.syms.add(Empty) }

func (e *firstEntry) has(s Symbol) bool { return e.syms.has(s) }

func (e *firstEntry) hasEmpty() bool { return e.syms.has(Empty) }

func (e *firstEntry) discardEmpty() { e.syms.remove(Empty) }

func (e *firstEntry) union(other *firstEntry) bool { return e.syms.union(other.syms) }

func (e *firstEntry) size() int { return len(e.syms) }

func (e *firstEntry) symbols() []Symbol { return e.syms.sorted() }

func (e *firstEntry) clone() *firstEntry {
	cp := newSymbolSet()
	for s := range e.syms {
		cp.add(s)
	}
	return &firstEntry{syms: cp}
}

// ComputeFirst computes FIRST(A) for every non-terminal A, and FIRST(RHS)
// for every production, to a least fixpoint.
//
// The "visited" memoization flag is an explicit map local to this call
// rather than a field mutated on the symbol, so a concurrent or
// subsequent FOLLOW computation never observes stale visited state from
// this pass.
func ComputeFirst(g *Grammar) {
	nts := g.nonTerminals.sorted()
	sizes := make([]int, len(nts))
	for i, nt := range nts {
		sizes[i] = g.nonTermInfo[nt].firstSet.size()
	}
	for {
		visited := make(map[Symbol]bool, len(nts))
		for _, nt := range nts {
			computeFirstForSymbol(g, nt, visited, nil)
		}

		changed := false
		for i, nt := range nts {
			n := g.nonTermInfo[nt].firstSet.size()
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

// computeFirstForSymbol is the memoized recursive builder for FIRST(A).
// path guards against infinite recursion through cyclic derivations:
// if a is already on the current recursion path, this returns
// immediately; visited makes each outer round linear.
func computeFirstForSymbol(g *Grammar, a Symbol, visited map[Symbol]bool, path symbolSet) {
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

	for _, p := range g.LHSProductions(a) {
		computeFirstForProduction(g, a, p, visited, path)
	}
}

// computeFirstForProduction computes FIRST(rhs) for p into a call-local
// entry, discarding EMPTY after every symbol and restoring it only if
// every symbol in rhs can derive EMPTY, then merges that result into both
// the production's own cache and the non-terminal's aggregate FIRST set.
// The discard/restore walk is kept off info.firstSet directly: info is
// shared across every production of a, so clearing EMPTY from it here
// could erase a contribution a sibling production already made.
func computeFirstForProduction(g *Grammar, a Symbol, p *Production, visited map[Symbol]bool, path symbolSet) {
	local := newFirstEntry()
	rhs := p.rhs

	for i, x := range rhs {
		if x.IsTerminal() {
			local.add(x)
			break
		}

		computeFirstForSymbol(g, x, visited, path)
		xFirst := g.nonTermInfo[x].firstSet
		local.union(xFirst)
		local.discardEmpty()

		if !xFirst.hasEmpty() {
			break
		}
		if i == len(rhs)-1 {
			// every symbol in rhs derives EMPTY.
			local.addEmpty()
		}
	}

	info := g.nonTermInfo[a]
	info.firstSet.union(local)
	p.firstSet.union(local)
}

// substringFirst computes FIRST(rhs[from:]) for production p, needed at
// each non-final occurrence of a non-terminal when building FOLLOW sets.
// ComputeFirst must have already run, since this only reads
// already-computed FIRST sets; it performs no recursion of its own.
func substringFirst(g *Grammar, p *Production, from int) *firstEntry {
	result := newFirstEntry()
	rhs := p.rhs
	for i := from; i < len(rhs); i++ {
		x := rhs[i]
		if x.IsTerminal() {
			result.add(x)
			return result
		}
		xFirst := g.nonTermInfo[x].firstSet
		result.union(xFirst)
		result.discardEmpty()
		if !xFirst.hasEmpty() {
			return result
		}
		if i == len(rhs)-1 {
			result.addEmpty()
		}
	}
	return result
}

package grammar

import (
	"fmt"

	"github.com/ktr0731/llgen/llerrors"
)

// EliminateLeftRecursion rewrites every direct left recursion in g. For a
// non-terminal A with productions
//
//	A -> A a1 | A a2 | ... | A ai | b1 | b2 | ... | bj
//
// it synthesizes a fresh non-terminal A-n and replaces them with
//
//	A   -> b1 A-n | b2 A-n | ... | bj A-n
//	A-n -> a1 A-n | a2 A-n | ... | ai A-n | T_
//
// with the exception that a beta production that is exactly `A -> T_` is
// rewritten to `A -> A-n` rather than `A -> T_ A-n`. Must run before
// FIRST/FOLLOW computation and before DetectIndirectLeftRecursion.
//
// Idempotent: a non-terminal with no direct left recursion is left
// untouched, so a second call adds no productions.
func EliminateLeftRecursion(g *Grammar) error {
	nts := g.nonTerminals.sorted()
	for _, nt := range nts {
		if err := eliminateDirectLeftRecursion(g, nt); err != nil {
			return err
		}
	}
	return nil
}

func eliminateDirectLeftRecursion(g *Grammar, a Symbol) error {
	prods := g.LHSProductions(a)
	hasDirect := false
	for _, p := range prods {
		if len(p.rhs) > 0 && p.rhs[0] == a {
			hasDirect = true
			break
		}
	}
	if !hasDirect {
		return nil
	}

	var alpha, beta []*Production
	for _, p := range prods {
		if p.rhs[0] == a {
			alpha = append(alpha, p)
		} else {
			beta = append(beta, p)
		}
	}

	for _, p := range prods {
		g.retireProduction(p)
	}

	newName := synthesizeName(g, a)
	newSym, err := g.ensureSymbol(NonTerminal, newName)
	if err != nil {
		return err
	}

	for _, b := range beta {
		var rhs []Symbol
		if b.IsEmpty() {
			rhs = []Symbol{newSym}
		} else {
			rhs = append(append([]Symbol(nil), b.rhs...), newSym)
		}
		if _, err := g.addProduction(a, rhs); err != nil {
			return err
		}
	}

	for _, al := range alpha {
		rhs := append(append([]Symbol(nil), al.rhs[1:]...), newSym)
		if _, err := g.addProduction(newSym, rhs); err != nil {
			return err
		}
	}

	if _, err := g.addProduction(newSym, []Symbol{Empty}); err != nil {
		return err
	}

	return nil
}

// synthesizeName returns a, followed by "-", followed by a's fresh-name
// counter, incrementing the counter so the next call for the same symbol
// never collides.
func synthesizeName(g *Grammar, a Symbol) string {
	info := g.nonTermInfo[a]
	for {
		name := fmt.Sprintf("%s-%d", a.Name(), info.newNameCounter)
		info.newNameCounter++
		if _, exists := g.symbolsByName[name]; !exists {
			return name
		}
	}
}

// DetectIndirectLeftRecursion reports RecursionError if any non-terminal
// derives itself as the left-most symbol of some production. Must run
// after EliminateLeftRecursion, since indirect recursion through an
// already-eliminated direct cycle would otherwise still be flagged.
//
// firstRHSSet(A) is the transitive closure of "left-most RHS
// non-terminal" over A's own productions, memoized on nonTerminalInfo per
// symbol so it is computed at most once.
func DetectIndirectLeftRecursion(g *Grammar) error {
	for _, nt := range g.nonTerminals.sorted() {
		set := firstRHSSet(g, nt)
		if set.has(nt) {
			return &llerrors.RecursionError{Participants: sortedParticipantNames(g, nt, set)}
		}
	}
	return nil
}

func firstRHSSet(g *Grammar, a Symbol) symbolSet {
	info := g.nonTermInfo[a]
	if info.firstRHSSet != nil {
		return info.firstRHSSet
	}
	// firstRHSPending guards a symbol that is mid-computation on the
	// current call stack: return the (possibly incomplete) working set
	// rather than recursing forever. The caller only uses membership of
	// `a` itself, which a cyclic derivation will already have added
	// before recursing back here.
	if info.firstRHSPending {
		if info.firstRHSSet == nil {
			info.firstRHSSet = newSymbolSet()
		}
		return info.firstRHSSet
	}

	info.firstRHSPending = true
	info.firstRHSSet = newSymbolSet()
	defer func() { info.firstRHSPending = false }()

	for _, p := range g.LHSProductions(a) {
		if len(p.rhs) == 0 {
			continue
		}
		s := p.rhs[0]
		if s.IsTerminal() {
			continue
		}
		child := firstRHSSet(g, s)
		info.firstRHSSet.union(child)
		info.firstRHSSet.add(s)
	}

	return info.firstRHSSet
}

// sortedParticipantNames names a, followed by every other member of its
// firstRHSSet in name order, for an informative RecursionError. Members
// are not filtered to those on the cycle back to a, and the exact cycle
// path is not reconstructed.
func sortedParticipantNames(g *Grammar, a Symbol, set symbolSet) []string {
	names := []string{a.Name()}
	for _, s := range set.sorted() {
		if s != a {
			names = append(names, s.Name())
		}
	}
	return names
}

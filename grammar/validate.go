package grammar

import (
	"fmt"

	"github.com/ktr0731/llgen/llerrors"
)

// Validate runs LL(1) well-formedness checks 1 and 3 through 7, plus an
// internal first_set-consistency check; check 2 (indirect left recursion)
// belongs to DetectIndirectLeftRecursion. It does not stop at the first
// failure:
// every violation it finds is collected and returned together as
// llerrors.Errors, so a caller sees every problem in a grammar in one
// pass instead of fixing and reloading repeatedly.
//
// Must run after EliminateLeftRecursion, DetectIndirectLeftRecursion, and
// ComputeFirst/ComputeFollow.
func Validate(g *Grammar) error {
	var errs llerrors.Errors

	errs = append(errs, checkNoDirectLeftRecursion(g)...)
	errs = append(errs, checkDisjointFirstSets(g)...)
	errs = append(errs, checkFirstFollowConflicts(g)...)
	errs = append(errs, checkEmptyOnlyAlone(g)...)
	errs = append(errs, checkSingleOccurrence(g)...)
	errs = append(errs, checkEmptyNotInFollow(g)...)
	errs = append(errs, checkProductionFirstSetConsistency(g)...)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// checkNoDirectLeftRecursion is check 1. Indirect recursion (check 2) is
// handled by DetectIndirectLeftRecursion, which runs earlier and aborts
// the pipeline before Validate is even reached; it is not repeated here.
func checkNoDirectLeftRecursion(g *Grammar) []error {
	var errs []error
	for _, p := range g.Productions() {
		if len(p.rhs) > 0 && p.rhs[0] == p.lhs {
			errs = append(errs, &llerrors.LL1Error{
				Check:       1,
				Message:     "residual direct left recursion",
				Conflicting: []string{p.String()},
			})
		}
	}
	return errs
}

// checkDisjointFirstSets is check 3: for each non-terminal, every pair of
// its productions' FIRST sets must be disjoint.
func checkDisjointFirstSets(g *Grammar) []error {
	var errs []error
	for _, a := range g.NonTerminals() {
		prods := g.LHSProductions(a)
		for i := 1; i < len(prods); i++ {
			for j := 0; j < i; j++ {
				pi, pj := prods[i], prods[j]
				if inter := intersect(pi.firstSet, pj.firstSet); len(inter) != 0 {
					errs = append(errs, &llerrors.LL1Error{
						Check:       3,
						Message:     fmt.Sprintf("%s: FIRST sets of productions are not disjoint", a),
						Conflicting: []string{pi.String(), pj.String()},
					})
				}
			}
		}
	}
	return errs
}

// checkFirstFollowConflicts is check 4.
func checkFirstFollowConflicts(g *Grammar) []error {
	var errs []error
	for _, a := range g.NonTerminals() {
		prods := g.LHSProductions(a)
		follow := g.nonTermInfo[a].followSet
		for i := 1; i < len(prods); i++ {
			for j := 0; j < i; j++ {
				pi, pj := prods[i], prods[j]
				if pi.firstSet.hasEmpty() {
					if t := intersectSet(pj.firstSet.syms, follow.syms); len(t) != 0 {
						errs = append(errs, &llerrors.LL1Error{
							Check:       4,
							Message:     fmt.Sprintf("%s: FIRST/FOLLOW conflict", a),
							Conflicting: []string{pi.String(), pj.String()},
						})
					}
				}
				if pj.firstSet.hasEmpty() {
					if t := intersectSet(pi.firstSet.syms, follow.syms); len(t) != 0 {
						errs = append(errs, &llerrors.LL1Error{
							Check:       4,
							Message:     fmt.Sprintf("%s: FIRST/FOLLOW conflict", a),
							Conflicting: []string{pi.String(), pj.String()},
						})
					}
				}
			}
		}
	}
	return errs
}

// checkEmptyOnlyAlone is check 5: EMPTY may only appear as the sole
// symbol of a production's RHS.
func checkEmptyOnlyAlone(g *Grammar) []error {
	var errs []error
	for _, p := range g.Productions() {
		for i, s := range p.rhs {
			if s.IsEmpty() && len(p.rhs) != 1 {
				errs = append(errs, &llerrors.LL1Error{
					Check:       5,
					Message:     fmt.Sprintf("EMPTY at position %d is not the sole RHS symbol", i),
					Conflicting: []string{p.String()},
				})
			}
		}
	}
	return errs
}

// checkSingleOccurrence is check 6: a non-terminal may occur at most
// once in any single production's RHS.
func checkSingleOccurrence(g *Grammar) []error {
	var errs []error
	for _, a := range g.NonTerminals() {
		for _, p := range g.RHSProductions(a) {
			if len(p.SymbolPositions(a)) > 1 {
				errs = append(errs, &llerrors.LL1Error{
					Check:       6,
					Message:     fmt.Sprintf("%s occurs more than once in production RHS", a),
					Conflicting: []string{p.String()},
				})
			}
		}
	}
	return errs
}

// checkEmptyNotInFollow is check 7.
func checkEmptyNotInFollow(g *Grammar) []error {
	var errs []error
	for _, a := range g.NonTerminals() {
		if g.nonTermInfo[a].followSet.syms.has(Empty) {
			errs = append(errs, &llerrors.LL1Error{
				Check:       7,
				Message:     fmt.Sprintf("%s: EMPTY present in FOLLOW set", a),
			})
		}
	}
	return errs
}

// checkProductionFirstSetConsistency is an additional internal-fault
// check: every production's cached first_set must equal
// substringFirst(p, 0). A mismatch indicates a bug in ComputeFirst,
// not a malformed input grammar, but is still surfaced as an LL1Error so
// it is caught by the same reporting path.
func checkProductionFirstSetConsistency(g *Grammar) []error {
	var errs []error
	for _, p := range g.Productions() {
		want := substringFirst(g, p, 0)
		if !sameSymbolSet(p.firstSet.syms, want.syms) {
			errs = append(errs, &llerrors.LL1Error{
				Check:       0,
				Message:     "production first_set disagrees with substring_first(0)",
				Conflicting: []string{p.String()},
			})
		}
	}
	return errs
}

func intersect(a, b *firstEntry) symbolSet {
	return intersectSet(a.syms, b.syms)
}

func intersectSet(a, b symbolSet) symbolSet {
	result := newSymbolSet()
	small, big := a, b
	if len(big) < len(small) {
		small, big = big, small
	}
	for s := range small {
		if big.has(s) {
			result.add(s)
		}
	}
	return result
}

func sameSymbolSet(a, b symbolSet) bool {
	if len(a) != len(b) {
		return false
	}
	for s := range a {
		if !b.has(s) {
			return false
		}
	}
	return true
}

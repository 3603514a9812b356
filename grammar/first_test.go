package grammar

import "testing"

func TestComputeFirstSimple(t *testing.T) {
	g := loadRaw(t, `
E:
    T T_PLUS E
    T
T:
    T_ID
`)
	ComputeFirst(g)

	e, _ := g.Symbol("E")
	if got := symbolNames(g.FirstSet(e)); !containsAll(got, "T_ID") {
		t.Fatalf("FIRST(E) = %v, want {T_ID}", got)
	}
	if g.FirstSetHasEmpty(e) {
		t.Fatalf("FIRST(E) should not contain EMPTY")
	}
}

func TestComputeFirstWithEmptyDerivation(t *testing.T) {
	g := loadRaw(t, `
S:
    T_A S
    T_
`)
	ComputeFirst(g)

	s, _ := g.Symbol("S")
	got := symbolNames(g.FirstSet(s))
	if !containsAll(got, "T_A", "T_") {
		t.Fatalf("FIRST(S) = %v, want {T_A, T_}", got)
	}
	if !g.FirstSetHasEmpty(s) {
		t.Fatalf("expected FIRST(S) to contain EMPTY")
	}
}

func TestComputeFirstProductionCache(t *testing.T) {
	g := loadRaw(t, `
E:
    T
T:
    T_ID
`)
	ComputeFirst(g)

	e, _ := g.Symbol("E")
	prods := g.LHSProductions(e)
	if len(prods) != 1 {
		t.Fatalf("expected exactly one production for E")
	}
	if got := symbolNames(g.ProductionFirstSet(prods[0])); !containsAll(got, "T_ID") {
		t.Fatalf("production first_set = %v, want {T_ID}", got)
	}
}

func TestSubstringFirst(t *testing.T) {
	g := loadRaw(t, `
S:
    A B T_C
A:
    T_A
    T_
B:
    T_B
`)
	ComputeFirst(g)

	s, _ := g.Symbol("S")
	prods := g.LHSProductions(s)

	// A derives EMPTY but B does not, so EMPTY must be discarded once the
	// walk reaches B rather than carried through from A.
	got := symbolNames(substringFirst(g, prods[0], 0).symbols())
	if !containsAll(got, "T_A", "T_B") {
		t.Fatalf("substringFirst(0) = %v, want {T_A, T_B}", got)
	}
	if containsAll(got, "T_") {
		t.Fatalf("substringFirst(0) = %v, should not contain EMPTY", got)
	}

	got1 := symbolNames(substringFirst(g, prods[0], 1).symbols())
	if !containsAll(got1, "T_B") {
		t.Fatalf("substringFirst(1) = %v, want {T_B}", got1)
	}
}

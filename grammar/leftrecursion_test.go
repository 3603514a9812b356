package grammar

import "testing"

func TestEliminateDirectLeftRecursion(t *testing.T) {
	g := loadRaw(t, `
E:
    E T_PLUS T
    T
T:
    T_ID
`)
	if err := EliminateLeftRecursion(g); err != nil {
		t.Fatalf("EliminateLeftRecursion: %v", err)
	}

	e, _ := g.Symbol("E")
	eDash, ok := g.Symbol("E-1")
	if !ok {
		t.Fatalf("expected synthesized non-terminal E-1")
	}

	eProds := g.LHSProductions(e)
	if len(eProds) != 1 {
		t.Fatalf("expected exactly one rewritten production for E, got %d", len(eProds))
	}
	t_, _ := g.Symbol("T")
	if eProds[0].rhs[0] != t_ || eProds[0].rhs[1] != eDash {
		t.Fatalf("expected E -> T E-1, got %s", eProds[0])
	}

	eDashProds := g.LHSProductions(eDash)
	if len(eDashProds) != 2 {
		t.Fatalf("expected two productions for E-1 (T_PLUS T E-1 and T_), got %d", len(eDashProds))
	}

	var sawPlus, sawEmpty bool
	for _, p := range eDashProds {
		if p.IsEmpty() {
			sawEmpty = true
		}
		if len(p.rhs) == 3 && p.rhs[2] == eDash {
			sawPlus = true
		}
	}
	if !sawPlus || !sawEmpty {
		t.Fatalf("expected E-1 -> T_PLUS T E-1 | T_, got %v", eDashProds)
	}
}

func TestEliminateLeftRecursionIsIdempotent(t *testing.T) {
	g := loadRaw(t, `
E:
    E T_PLUS T
    T
T:
    T_ID
`)
	if err := EliminateLeftRecursion(g); err != nil {
		t.Fatalf("first EliminateLeftRecursion: %v", err)
	}
	before := len(g.Productions())
	beforeNTs := len(g.NonTerminals())

	if err := EliminateLeftRecursion(g); err != nil {
		t.Fatalf("second EliminateLeftRecursion: %v", err)
	}
	if len(g.Productions()) != before {
		t.Fatalf("expected idempotent rewrite to add no productions, got %d -> %d", before, len(g.Productions()))
	}
	if len(g.NonTerminals()) != beforeNTs {
		t.Fatalf("expected idempotent rewrite to add no non-terminals, got %d -> %d", beforeNTs, len(g.NonTerminals()))
	}
}

func TestEliminateLeftRecursionEpsilonBeta(t *testing.T) {
	g := loadRaw(t, `
S:
    S T_A
    T_
`)
	if err := EliminateLeftRecursion(g); err != nil {
		t.Fatalf("EliminateLeftRecursion: %v", err)
	}

	s, _ := g.Symbol("S")
	sDash, ok := g.Symbol("S-1")
	if !ok {
		t.Fatalf("expected synthesized non-terminal S-1")
	}

	sProds := g.LHSProductions(s)
	if len(sProds) != 1 || len(sProds[0].rhs) != 1 || sProds[0].rhs[0] != sDash {
		t.Fatalf("expected S -> S-1 (the epsilon-beta special case), got %v", sProds)
	}
}

func TestDetectIndirectLeftRecursion(t *testing.T) {
	// R is a start symbol: without it S and A reference each other and
	// no root exists, so root resolution would fail before detection.
	g := loadRaw(t, `
R:
    S
S:
    A T_X
A:
    S T_Y
`)
	if err := DetectIndirectLeftRecursion(g); err == nil {
		t.Fatalf("expected RecursionError for S -> A -> S indirect cycle")
	}
}

func TestDetectIndirectLeftRecursionAcceptsAcyclicGrammar(t *testing.T) {
	g := loadRaw(t, `
S:
    A T_X
A:
    T_A
`)
	if err := DetectIndirectLeftRecursion(g); err != nil {
		t.Fatalf("expected no recursion error, got %v", err)
	}
}

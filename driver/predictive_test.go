package driver

import (
	"testing"

	"github.com/ktr0731/llgen/grammar"
)

// buildExpressionGrammar is the classic sum/product/paren/id expression
// grammar, already written without left recursion. S is its start
// symbol: E occurs inside F's parenthesised production, so E alone could
// not be the root.
func buildExpressionGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, err := grammar.Load(`
S:
    E
E:
    T E-TAIL
E-TAIL:
    T_PLUS T E-TAIL
    T_
T:
    F T-TAIL
T-TAIL:
    T_STAR F T-TAIL
    T_
F:
    T_LPAREN E T_RPAREN
    T_ID
`)
	if err != nil {
		t.Fatalf("grammar.Load: %v", err)
	}
	return g
}

func TestPredictiveAcceptsScenarioSixTokenStream(t *testing.T) {
	g := buildExpressionGrammar(t)
	toks, err := ParseTokenNames(g, "T_ID T_PLUS T_ID T_STAR T_ID")
	if err != nil {
		t.Fatalf("ParseTokenNames: %v", err)
	}
	toks = append(toks, grammar.EOF)

	if err := Predictive(g, NewTokenStream(toks), nil); err != nil {
		t.Fatalf("Predictive: %v", err)
	}
}

func TestPredictiveRejectsMismatchedToken(t *testing.T) {
	g := buildExpressionGrammar(t)
	toks, err := ParseTokenNames(g, "T_ID T_STAR")
	if err != nil {
		t.Fatalf("ParseTokenNames: %v", err)
	}
	toks = append(toks, grammar.EOF)

	if err := Predictive(g, NewTokenStream(toks), nil); err == nil {
		t.Fatalf("expected a ParseError for an incomplete product expression")
	}
}

func TestPredictiveRecordsTrace(t *testing.T) {
	g := buildExpressionGrammar(t)
	toks, err := ParseTokenNames(g, "T_ID")
	if err != nil {
		t.Fatalf("ParseTokenNames: %v", err)
	}
	toks = append(toks, grammar.EOF)

	var steps []Step
	if err := Predictive(g, NewTokenStream(toks), func(s Step) { steps = append(steps, s) }); err != nil {
		t.Fatalf("Predictive: %v", err)
	}
	if len(steps) == 0 {
		t.Fatalf("expected at least one recorded step")
	}
	if steps[0].Number != 1 {
		t.Fatalf("expected the first step to be numbered 1, got %d", steps[0].Number)
	}
}

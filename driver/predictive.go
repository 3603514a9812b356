// Package driver runs the predictive-parsing stack machine against a
// built grammar.Grammar and a token stream, the reference consumer the
// parse table is built to serve.
package driver

import (
	"fmt"

	"github.com/ktr0731/llgen/grammar"
)

// Step records one iteration of the predictive-parsing loop, for callers
// that want to narrate or log the run: its stack contents and the symbol
// just popped.
type Step struct {
	Number int
	Stack  []grammar.Symbol
	Popped grammar.Symbol
}

// Trace, when non-nil, receives a Step after every pop.
type Trace func(Step)

// Predictive drives g's parse table over toks, a TokenStream whose final
// terminal is grammar.EOF. It returns nil once the stack empties exactly
// when the input is exhausted; any mismatch, missing table entry, or
// early/late exhaustion is a fatal ParseError.
func Predictive(g *grammar.Grammar, toks *TokenStream, trace Trace) error {
	if len(toks.toks) == 0 || !toks.toks[len(toks.toks)-1].IsEOF() {
		return &ParseError{Message: "token stream must be terminated with T_EOF"}
	}

	stack := []grammar.Symbol{g.Root()}
	step := 1

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if trace != nil {
			trace(Step{Number: step, Stack: append([]grammar.Symbol(nil), stack...), Popped: top})
		}
		step++

		if top.IsTerminal() {
			if top.IsEmpty() {
				continue
			}
			if !toks.HasNext() {
				return &ParseError{Message: fmt.Sprintf("input exhausted while expecting %s", top)}
			}
			next := toks.Peek()
			if top != next {
				return &ParseError{Message: fmt.Sprintf("could not match token %s at position %d: expected %s", next, toks.index, top)}
			}
			toks.Next()
			continue
		}

		if !toks.HasNext() {
			return &ParseError{Message: fmt.Sprintf("input exhausted while expanding %s", top)}
		}
		la := toks.Peek()
		p := g.ParseTable().Get(top, la)
		if p == nil {
			return &ParseError{Message: fmt.Sprintf("no parse table entry for (%s, %s)", top, la)}
		}

		rhs := p.RHS()
		for i := len(rhs) - 1; i >= 0; i-- {
			stack = append(stack, rhs[i])
		}
	}

	if toks.index != len(toks.toks)-1 || !toks.toks[toks.index].IsEOF() {
		return &ParseError{Message: "stack emptied before reaching T_EOF"}
	}
	return nil
}

// ParseError reports a failure of the predictive-parsing driver. It is
// always fatal: there is no error-recovery mode.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return "parse error: " + e.Message }

package driver

import (
	"fmt"
	"strings"

	"github.com/ktr0731/llgen/grammar"
)

// TokenStream is a stream of already-resolved terminal symbols read from
// source text, narrowed to the operations Predictive needs over a fully
// materialized slice.
type TokenStream struct {
	toks  []grammar.Symbol
	index int
}

// NewTokenStream wraps a slice of terminals as a TokenStream.
func NewTokenStream(toks []grammar.Symbol) *TokenStream {
	return &TokenStream{toks: toks}
}

// Next returns the next terminal and advances the stream.
func (s *TokenStream) Next() grammar.Symbol {
	t := s.toks[s.index]
	s.index++
	return t
}

// Peek returns the next terminal without advancing.
func (s *TokenStream) Peek() grammar.Symbol {
	return s.toks[s.index]
}

// HasNext reports whether the stream has any remaining terminals.
func (s *TokenStream) HasNext() bool {
	return s.index < len(s.toks)
}

// ParseTokenNames resolves a whitespace-separated list of terminal names
// against g, returning the resolved terminal sequence. The last name is
// expected to be T_EOF; ParseTokenNames does not append it implicitly,
// since a caller that already has a fully-formed token line should not
// have it silently rewritten.
func ParseTokenNames(g *grammar.Grammar, line string) ([]grammar.Symbol, error) {
	fields := strings.Fields(line)
	out := make([]grammar.Symbol, 0, len(fields))
	for _, name := range fields {
		sym, ok := g.Symbol(name)
		if !ok || !sym.IsTerminal() {
			return nil, &ParseError{Message: fmt.Sprintf("unknown terminal in token stream: %s", name)}
		}
		out = append(out, sym)
	}
	return out, nil
}

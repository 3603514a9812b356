// Package llerrors defines the error taxonomy the grammar pipeline raises.
// Every error type is fatal to the pipeline; none are recovered from. They
// propagate to the top-level CLI, which prints a message and exits
// non-zero. Separate types let a caller tell, by type, which pipeline
// stage failed.
package llerrors

import (
	"fmt"
	"strings"
)

// LoadError reports a problem found while parsing a grammar file: a
// duplicate non-terminal declaration, a body line before any LHS, a
// production with an empty body, an unknown symbol reference, or T_EOF
// appearing in user-authored grammar text.
type LoadError struct {
	Message string
	Row     int
}

func (e *LoadError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("load error: %s", e.Message)
	}
	return fmt.Sprintf("load error: line %d: %s", e.Row, e.Message)
}

// StructureError reports a problem with the overall shape of a grammar:
// zero or multiple root candidates, or a duplicate production surfacing
// after left-recursion rewriting.
type StructureError struct {
	Message string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("structure error: %s", e.Message)
}

// RecursionError reports indirect left recursion. Participants names the
// left-recursive non-terminal first, then every other non-terminal that
// can appear left-most in one of its derivations; the list is not
// narrowed to the cycle itself.
type RecursionError struct {
	Participants []string
}

func (e *RecursionError) Error() string {
	return fmt.Sprintf("recursion error: indirect left recursion through %s", strings.Join(e.Participants, " -> "))
}

// LL1Error reports a failed LL(1) well-formedness check. Check is the
// validator check number (1 or 3 through 7, per the grammar package's
// validator, or 0 for its internal first_set-consistency check);
// Conflicting names the productions or FIRST/FOLLOW sets that collide.
type LL1Error struct {
	Check       int
	Message     string
	Conflicting []string
}

func (e *LL1Error) Error() string {
	if len(e.Conflicting) == 0 {
		return fmt.Sprintf("LL(1) violation (check %d): %s", e.Check, e.Message)
	}
	return fmt.Sprintf("LL(1) violation (check %d): %s: %s", e.Check, e.Message, strings.Join(e.Conflicting, " vs. "))
}

// TableError reports a parse-table cell assigned twice. The LL(1)
// validator is supposed to rule this out before the table builder runs;
// its occurrence means an internal invariant was violated, not that the
// input grammar was bad, so it is kept distinct from LL1Error.
type TableError struct {
	NonTerminal string
	Terminal    string
	Existing    string
	New         string
}

func (e *TableError) Error() string {
	return fmt.Sprintf("table error: cell (%s, %s) already holds %s, cannot also assign %s",
		e.NonTerminal, e.Terminal, e.Existing, e.New)
}

// Errors aggregates more than one error raised from a single pass (the
// validator runs all of its checks and reports every failure together
// rather than stopping at the first).
type Errors []error

func (es Errors) Error() string {
	if len(es) == 1 {
		return es[0].Error()
	}
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return fmt.Sprintf("%d errors:\n  %s", len(es), strings.Join(parts, "\n  "))
}

// Unwrap supports errors.Is/As traversal over the aggregated errors.
func (es Errors) Unwrap() []error { return es }

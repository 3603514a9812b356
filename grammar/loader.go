package grammar

import (
	"strings"

	"github.com/ktr0731/llgen/llerrors"
)

// sourceLine is a filtered input line paired with its original 1-based
// row, so LoadError can report where a problem was found.
type sourceLine struct {
	text string
	row  int
}

// Load parses a grammar file and runs the full construction pipeline in
// order: loading, left-recursion elimination, FIRST/FOLLOW, LL(1)
// validation, and parse-table construction. It returns a fully built
// Grammar or the first structural/taxonomy error encountered.
func Load(src string) (*Grammar, error) {
	g := newGrammar()

	lines := filterLines(src)
	if err := loadSymbols(g, lines); err != nil {
		return nil, err
	}
	if err := loadProductions(g, lines); err != nil {
		return nil, err
	}
	if err := g.resolveRoot(); err != nil {
		return nil, err
	}

	if err := EliminateLeftRecursion(g); err != nil {
		return nil, err
	}
	if err := DetectIndirectLeftRecursion(g); err != nil {
		return nil, err
	}

	ComputeFirst(g)
	ComputeFollow(g)

	if err := Validate(g); err != nil {
		return nil, err
	}
	if err := BuildParseTable(g); err != nil {
		return nil, err
	}

	return g, nil
}

// filterLines strips blank lines and lines whose first non-space
// character is '#', trimming surrounding whitespace from every retained
// line and recording its original row number.
func filterLines(src string) []sourceLine {
	var out []sourceLine
	for i, raw := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || trimmed[0] == '#' {
			continue
		}
		out = append(out, sourceLine{text: trimmed, row: i + 1})
	}
	return out
}

// loadSymbols is the symbol pass: every ':' line declares a non-terminal;
// every whitespace-separated token on a body line is provisionally
// unclassified until the pass ends, at which point any name never
// declared as a non-terminal becomes a terminal.
func loadSymbols(g *Grammar, lines []sourceLine) error {
	unclassified := make(map[string]int) // name -> row of first sighting

	for _, l := range lines {
		if strings.HasSuffix(l.text, ":") {
			name := strings.TrimSuffix(l.text, ":")
			if existing, ok := g.symbolsByName[name]; ok && existing.IsNonTerminal() {
				return &llerrors.LoadError{Row: l.row, Message: "duplicate non-terminal declaration: " + name}
			}
			if _, err := g.ensureSymbol(NonTerminal, name); err != nil {
				return err
			}
			delete(unclassified, name)
			continue
		}

		for _, name := range strings.Fields(l.text) {
			if name == EOFName {
				return &llerrors.LoadError{Row: l.row, Message: "T_EOF is reserved and may not appear in a grammar file"}
			}
			if _, ok := g.symbolsByName[name]; ok {
				continue
			}
			if _, ok := unclassified[name]; !ok {
				unclassified[name] = l.row
			}
		}
	}

	for name := range unclassified {
		if _, err := g.ensureSymbol(Terminal, name); err != nil {
			return err
		}
	}
	return nil
}

// loadProductions is the production pass: each ':' line sets the current
// LHS; every following body line becomes one production
// whose RHS is the looked-up symbol sequence. A new LHS may not open
// before the previous one produced at least one body line.
func loadProductions(g *Grammar, lines []sourceLine) error {
	var current Symbol
	haveCurrent := false
	bodySeen := true

	for _, l := range lines {
		if strings.HasSuffix(l.text, ":") {
			if !bodySeen {
				return &llerrors.LoadError{Row: l.row, Message: "production has no body"}
			}
			name := strings.TrimSuffix(l.text, ":")
			sym, ok := g.symbolsByName[name]
			if !ok || !sym.IsNonTerminal() {
				return &llerrors.LoadError{Row: l.row, Message: "unknown non-terminal: " + name}
			}
			current = sym
			haveCurrent = true
			bodySeen = false
			continue
		}

		if !haveCurrent {
			return &llerrors.LoadError{Row: l.row, Message: "production body precedes any non-terminal declaration"}
		}
		bodySeen = true

		fields := strings.Fields(l.text)
		rhs := make([]Symbol, 0, len(fields))
		for _, name := range fields {
			sym, ok := g.symbolsByName[name]
			if !ok {
				return &llerrors.LoadError{Row: l.row, Message: "unknown symbol reference: " + name}
			}
			rhs = append(rhs, sym)
		}

		if _, err := g.addProduction(current, rhs); err != nil {
			return err
		}
	}

	if !bodySeen {
		return &llerrors.LoadError{Message: "production has no body"}
	}
	return nil
}

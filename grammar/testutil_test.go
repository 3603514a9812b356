package grammar

import "testing"

// loadRaw runs only the symbol/production passes and root resolution,
// letting individual tests drive EliminateLeftRecursion, ComputeFirst,
// ComputeFollow, and Validate themselves rather than through the full
// Load pipeline.
func loadRaw(t *testing.T, src string) *Grammar {
	t.Helper()
	g := newGrammar()
	lines := filterLines(src)
	if err := loadSymbols(g, lines); err != nil {
		t.Fatalf("loadSymbols: %v", err)
	}
	if err := loadProductions(g, lines); err != nil {
		t.Fatalf("loadProductions: %v", err)
	}
	if err := g.resolveRoot(); err != nil {
		t.Fatalf("resolveRoot: %v", err)
	}
	return g
}

func symbolNames(syms []Symbol) []string {
	names := make([]string, len(syms))
	for i, s := range syms {
		names[i] = s.Name()
	}
	return names
}

func containsAll(got []string, want ...string) bool {
	set := make(map[string]bool, len(got))
	for _, g := range got {
		set[g] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return len(got) == len(want)
}

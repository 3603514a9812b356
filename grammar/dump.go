package grammar

import (
	"sort"
	"strings"
)

// DumpGrammar renders g as a human-readable report: for each non-terminal
// (sorted by name), its FIRST and FOLLOW sets followed by one indented
// line per production giving its RHS and cached FIRST set. A blank line
// terminates each non-terminal's block.
func DumpGrammar(g *Grammar) string {
	var b strings.Builder
	for _, nt := range g.NonTerminals() {
		b.WriteString(nt.Name())
		b.WriteString(": ")
		writeSymbolSet(&b, g.nonTermInfo[nt].firstSet.symbols())
		b.WriteByte(' ')
		writeSymbolSet(&b, g.nonTermInfo[nt].followSet.symbols())
		b.WriteByte('\n')

		for _, p := range g.LHSProductions(nt) {
			b.WriteString("   ")
			for _, s := range p.rhs {
				b.WriteByte(' ')
				b.WriteString(s.Name())
			}
			b.WriteString("; ")
			writeSymbolSet(&b, p.firstSet.symbols())
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func writeSymbolSet(b *strings.Builder, syms []Symbol) {
	b.WriteByte('{')
	for i, s := range syms {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.Name())
	}
	b.WriteByte('}')
}

// DumpParseTable renders g's parse table sorted by (LHS, lookahead), one
// line per cell, with a blank line separating rows whose LHS changes.
func DumpParseTable(g *Grammar) string {
	t := g.parseTable
	if t == nil {
		return ""
	}

	keys := make([]TableKey, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sortTableKeys(keys)

	var b strings.Builder
	var prevLHS Symbol
	havePrev := false
	for _, k := range keys {
		if havePrev && prevLHS != k.NonTerminal {
			b.WriteByte('\n')
		}
		prevLHS = k.NonTerminal
		havePrev = true

		b.WriteString("(")
		b.WriteString(k.NonTerminal.Name())
		b.WriteString(", ")
		b.WriteString(k.Terminal.Name())
		b.WriteString("): ")
		b.WriteString(t.entries[k].String())
		b.WriteByte('\n')
	}
	return b.String()
}

func sortTableKeys(keys []TableKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].NonTerminal != keys[j].NonTerminal {
			return keys[i].NonTerminal.Less(keys[j].NonTerminal)
		}
		return keys[i].Terminal.Less(keys[j].Terminal)
	})
}

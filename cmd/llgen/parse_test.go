package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunParseAcceptsValidTokenStream(t *testing.T) {
	dir := t.TempDir()
	grmPath := filepath.Join(dir, "expr.llgen")
	grammarSrc := `
E:
    T E-TAIL
E-TAIL:
    T_PLUS T E-TAIL
    T_
T:
    T_ID
`
	if err := os.WriteFile(grmPath, []byte(grammarSrc), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	tokPath := filepath.Join(dir, "tokens.txt")
	if err := os.WriteFile(tokPath, []byte("T_ID T_PLUS T_ID\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := runParse(nil, []string{grmPath, tokPath}); err != nil {
		t.Fatalf("runParse: %v", err)
	}
}

func TestRunParseRejectsUnknownToken(t *testing.T) {
	dir := t.TempDir()
	grmPath := filepath.Join(dir, "expr.llgen")
	if err := os.WriteFile(grmPath, []byte("S:\n    T_A\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	tokPath := filepath.Join(dir, "tokens.txt")
	if err := os.WriteFile(tokPath, []byte("T_NOT_IN_GRAMMAR\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := runParse(nil, []string{grmPath, tokPath}); err == nil {
		t.Fatalf("expected an error for a token not declared in the grammar")
	}
}

func TestRunParseRejectsMissingGrammarFile(t *testing.T) {
	dir := t.TempDir()
	tokPath := filepath.Join(dir, "tokens.txt")
	if err := os.WriteFile(tokPath, []byte("T_A\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := runParse(nil, []string{filepath.Join(dir, "missing.llgen"), tokPath}); err == nil {
		t.Fatalf("expected an error for a missing grammar file")
	}
}

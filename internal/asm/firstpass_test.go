package asm

import (
	"testing"

	"github.com/aharonlev/lc24asm/internal/word"
)

func TestFirstPass_diagnostics(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"unknown opcode", "frobnicate r1, r2"},
		{"reserved label", "mov: stop"},
		{"trailing comma", "mov r1, r2,"},
		{"bad label chars", "1LOOP: stop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := FirstPass([]SourceLine{{1, tt.line}}, DefaultOptions())
			if !diags.HasErrors() {
				t.Errorf("FirstPass(%q) produced no diagnostics", tt.line)
			}
		})
	}
}

func TestFirstPass_lineTooLong(t *testing.T) {
	long := make([]byte, MaxLineLength+1)
	for i := range long {
		long[i] = 'a'
	}

	_, diags := FirstPass([]SourceLine{{1, string(long)}}, DefaultOptions())
	if !diags.HasErrors() {
		t.Error("FirstPass() on an 81-char line produced no diagnostics")
	}

	ok80 := make([]byte, MaxLineLength)
	for i := range ok80 {
		ok80[i] = ' '
	}

	_, diags = FirstPass([]SourceLine{{1, string(ok80)}}, DefaultOptions())
	if diags.HasErrors() {
		t.Error("FirstPass() on an 80-char blank line produced diagnostics")
	}
}

func TestFirstPass_duplicateLabel(t *testing.T) {
	lines := []SourceLine{
		{1, "A: mov r1, r2"},
		{2, "A: mov r1, r2"},
	}

	_, diags := FirstPass(lines, DefaultOptions())
	if !diags.HasErrors() {
		t.Error("FirstPass() with a duplicate label produced no diagnostics")
	}
}

func TestFirstPass_stringDirective(t *testing.T) {
	lines := []SourceLine{
		{1, `MSG: .string "hi"`},
	}

	res, diags := FirstPass(lines, DefaultOptions())
	if diags.HasErrors() {
		t.Fatalf("FirstPass() error = %v", diags)
	}

	if len(res.Data) != 3 {
		t.Fatalf("data words = %d, want 3 (h, i, NUL)", len(res.Data))
	}

	if res.Data[0] != word.Word('h') || res.Data[1] != word.Word('i') || res.Data[2] != 0 {
		t.Errorf("data = %v, want [%d %d 0]", res.Data, 'h', 'i')
	}
}

func TestFirstPass_externSymbol(t *testing.T) {
	lines := []SourceLine{{1, ".extern SOMEWHERE"}}

	res, diags := FirstPass(lines, DefaultOptions())
	if diags.HasErrors() {
		t.Fatalf("FirstPass() error = %v", diags)
	}

	sym, ok := res.Symbols.Lookup("SOMEWHERE")
	if !ok {
		t.Fatal("SOMEWHERE not defined")
	}

	if sym.Kind.Base != word.SymbolExtern {
		t.Errorf("kind = %s, want extern", sym.Kind)
	}
}

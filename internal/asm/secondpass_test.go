package asm

import (
	"testing"
)

func TestSecondPass_entryMarksSymbol(t *testing.T) {
	lines := []SourceLine{
		{1, "MAIN: mov r1, r2"},
		{2, ".entry MAIN"},
	}

	pass1, diags := FirstPass(lines, DefaultOptions())
	if diags.HasErrors() {
		t.Fatalf("FirstPass() error = %v", diags)
	}

	_, diags = SecondPass(lines, pass1, DefaultOptions())
	if diags.HasErrors() {
		t.Fatalf("SecondPass() error = %v", diags)
	}

	sym, ok := pass1.Symbols.Lookup("MAIN")
	if !ok {
		t.Fatal("MAIN not found")
	}

	if !sym.Kind.Entry {
		t.Error("MAIN.Kind.Entry = false, want true")
	}
}

func TestSecondPass_entryOnExternIsError(t *testing.T) {
	lines := []SourceLine{
		{1, ".extern OUTSIDE"},
		{2, ".entry OUTSIDE"},
	}

	pass1, diags := FirstPass(lines, DefaultOptions())
	if diags.HasErrors() {
		t.Fatalf("FirstPass() error = %v", diags)
	}

	_, diags = SecondPass(lines, pass1, DefaultOptions())
	if !diags.HasErrors() {
		t.Error("SecondPass() allowed .entry on an extern symbol")
	}
}

func TestSecondPass_externalUsageAddress(t *testing.T) {
	lines := []SourceLine{
		{1, ".extern OUTSIDE"},
		{2, "jmp OUTSIDE"}, // IC 100, L=2; extension word at 101
	}

	pass1, diags := FirstPass(lines, DefaultOptions())
	if diags.HasErrors() {
		t.Fatalf("FirstPass() error = %v", diags)
	}

	externals, diags := SecondPass(lines, pass1, DefaultOptions())
	if diags.HasErrors() {
		t.Fatalf("SecondPass() error = %v", diags)
	}

	if len(externals) != 1 {
		t.Fatalf("externals = %d, want 1", len(externals))
	}

	if externals[0].Name != "OUTSIDE" || externals[0].Address != 101 {
		t.Errorf("external = %+v, want {OUTSIDE 101}", externals[0])
	}
}

func TestSecondPass_relativeToExternIsError(t *testing.T) {
	lines := []SourceLine{
		{1, ".extern OUTSIDE"},
		{2, "bne &OUTSIDE"},
	}

	pass1, diags := FirstPass(lines, DefaultOptions())
	if diags.HasErrors() {
		t.Fatalf("FirstPass() error = %v", diags)
	}

	_, diags = SecondPass(lines, pass1, DefaultOptions())
	if !diags.HasErrors() {
		t.Error("SecondPass() allowed a relative operand referencing an extern symbol")
	}
}

func TestSecondPass_undefinedLabel(t *testing.T) {
	lines := []SourceLine{{1, "jmp NOWHERE"}}

	pass1, diags := FirstPass(lines, DefaultOptions())
	if diags.HasErrors() {
		t.Fatalf("FirstPass() error = %v", diags)
	}

	_, diags = SecondPass(lines, pass1, DefaultOptions())
	if !diags.HasErrors() {
		t.Error("SecondPass() allowed an undefined label")
	}
}

package asm

import (
	"errors"
	"testing"

	"github.com/aharonlev/lc24asm/internal/word"
)

func TestParseInstruction(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
		operands string
		length   int
	}{
		{"mov registers", "mov", "r3, r5", 1},
		{"add immediate", "add", "#7, r1", 2},
		{"lea direct", "lea", "X, r2", 2},
		{"clr one operand", "clr", "r1", 1},
		{"jmp relative", "jmp", "&LOOP", 2},
		{"rts no operands", "rts", "", 1},
		{"stop no operands", "stop", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := ParseInstruction(tt.mnemonic, tt.operands)
			if err != nil {
				t.Fatalf("ParseInstruction() error = %v", err)
			}

			if inst.Length() != tt.length {
				t.Errorf("Length() = %d, want %d", inst.Length(), tt.length)
			}
		})
	}
}

func TestParseInstruction_errors(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
		operands string
		want     error
	}{
		{"unknown opcode", "xyz", "r1", ErrOpcode},
		{"wrong operand count", "mov", "r1", ErrOperandCount},
		{"too many operands", "mov", "r1, r2, r3", ErrOperandCount},
		{"bad source mode", "lea", "#1, r1", ErrSrcMode},
		{"bad dest mode", "mov", "r1, #1", ErrDstMode},
		{"bad dest mode one operand", "clr", "#1", ErrDstMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInstruction(tt.mnemonic, tt.operands)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseInstruction() error = %v, want wrapping %v", err, tt.want)
			}
		})
	}
}

func TestAddSubFunctDisambiguation(t *testing.T) {
	add, err := ParseInstruction("add", "#1, r1")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	sub, err := ParseInstruction("sub", "#1, r1")
	if err != nil {
		t.Fatalf("sub: %v", err)
	}

	if add.Rule.OpcodeValue != sub.Rule.OpcodeValue {
		t.Fatalf("add/sub opcode values differ: %d vs %d", add.Rule.OpcodeValue, sub.Rule.OpcodeValue)
	}

	if add.Rule.Funct == sub.Rule.Funct {
		t.Error("add/sub funct must differ")
	}
}

func TestRegisterBoundary(t *testing.T) {
	inst, err := ParseInstruction("clr", "r7")
	if err != nil {
		t.Fatalf("clr r7: %v", err)
	}

	if inst.Operands[0].Mode != word.Register {
		t.Errorf("r7 mode = %s, want register", inst.Operands[0].Mode)
	}

	// r8 is out of range: treated as a direct label, not a register, and
	// clr's destination modes (direct, register) still accept it.
	inst, err = ParseInstruction("clr", "r8")
	if err != nil {
		t.Fatalf("clr r8: %v", err)
	}

	if inst.Operands[0].Mode != word.Direct {
		t.Errorf("r8 mode = %s, want direct", inst.Operands[0].Mode)
	}
}

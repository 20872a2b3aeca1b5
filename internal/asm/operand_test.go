package asm

import (
	"errors"
	"testing"

	"github.com/aharonlev/lc24asm/internal/word"
)

func TestParseOperand(t *testing.T) {
	tests := []struct {
		tok  string
		mode word.AddressingMode
		reg  uint8
		imm  int32
		lbl  string
	}{
		{"#7", word.Immediate, 0, 7, ""},
		{"#-1", word.Immediate, 0, -1, ""},
		{"&LOOP", word.Relative, 0, 0, "LOOP"},
		{"r0", word.Register, 0, 0, ""},
		{"r7", word.Register, 7, 0, ""},
		{"r8", word.Direct, 0, 0, "r8"}, // boundary: r8 is not a register
		{"X", word.Direct, 0, 0, "X"},
		{"1X", word.Direct, 0, 0, "1X"}, // malformed label syntax: still classified Direct here
	}

	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			op, err := parseOperand(tt.tok)
			if err != nil {
				t.Fatalf("parseOperand(%q) error = %v", tt.tok, err)
			}

			if op.Mode != tt.mode {
				t.Errorf("Mode = %s, want %s", op.Mode, tt.mode)
			}

			if op.Mode == word.Register && op.Reg != tt.reg {
				t.Errorf("Reg = %d, want %d", op.Reg, tt.reg)
			}

			if op.Mode == word.Immediate && op.Imm != tt.imm {
				t.Errorf("Imm = %d, want %d", op.Imm, tt.imm)
			}

			if (op.Mode == word.Direct || op.Mode == word.Relative) && op.Label != tt.lbl {
				t.Errorf("Label = %q, want %q", op.Label, tt.lbl)
			}
		})
	}
}

func TestParseOperand_badImmediate(t *testing.T) {
	_, err := parseOperand("#abc")
	if !errors.Is(err, ErrOperand) {
		t.Errorf("parseOperand(#abc) error = %v, want %v", err, ErrOperand)
	}
}

func TestSplitOperands(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"", nil, false},
		{"r1", []string{"r1"}, false},
		{"r1, r2", []string{"r1", "r2"}, false},
		{"r1,r2", []string{"r1", "r2"}, false},
		{"r1,", nil, true},
		{"r1,,r2", nil, true},
		{",r1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := splitOperands(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitOperands(%q) error = %v, wantErr %t", tt.in, err, tt.wantErr)
			}

			if tt.wantErr {
				return
			}

			if len(got) != len(tt.want) {
				t.Fatalf("splitOperands(%q) = %v, want %v", tt.in, got, tt.want)
			}

			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("item %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

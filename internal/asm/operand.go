package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aharonlev/lc24asm/internal/word"
)

// Operand is one parsed instruction operand, in whichever form its
// addressing mode requires.
type Operand struct {
	Mode  word.AddressingMode
	Reg   uint8  // valid when Mode == word.Register
	Imm   int32  // valid when Mode == word.Immediate
	Label string // valid when Mode == word.Direct or word.Relative
	raw   string
}

// parseOperand classifies and parses a single trimmed operand lexeme.
//
//	#<int>    -> immediate
//	&<label>  -> relative
//	r<0..7>   -> register (exactly "r" followed by one digit 0-7)
//	otherwise -> direct
func parseOperand(tok string) (Operand, error) {
	if tok == "" {
		return Operand{}, ErrOperand
	}

	switch {
	case tok[0] == '#':
		n, err := strconv.ParseInt(tok[1:], 10, 32)
		if err != nil {
			return Operand{}, fmt.Errorf("%w: bad immediate %q", ErrOperand, tok)
		}

		return Operand{Mode: word.Immediate, Imm: int32(n), raw: tok}, nil

	case tok[0] == '&':
		label := tok[1:]
		if !word.IsValidLabel(label) {
			return Operand{}, fmt.Errorf("%w: bad relative label %q", ErrOperand, tok)
		}

		return Operand{Mode: word.Relative, Label: label, raw: tok}, nil

	case isRegister(tok):
		n := tok[1] - '0'

		return Operand{Mode: word.Register, Reg: n, raw: tok}, nil

	default:
		return Operand{Mode: word.Direct, Label: tok, raw: tok}, nil
	}
}

// isRegister reports whether tok is exactly "r" followed by a single digit
// 0-7. "r8" and longer forms are not registers; they fall through to the
// direct case, per the boundary rule.
func isRegister(tok string) bool {
	return len(tok) == 2 && tok[0] == 'r' && tok[1] >= '0' && tok[1] <= '7'
}

// splitOperands splits a comma-separated operand list, trimming whitespace
// around each item. A trailing comma or two adjacent commas (with only
// whitespace between) is an error.
func splitOperands(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, ErrComma
		}

		out = append(out, p)
	}

	return out, nil
}

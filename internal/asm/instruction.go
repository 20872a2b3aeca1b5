package asm

import (
	"fmt"
	"strings"

	"github.com/aharonlev/lc24asm/internal/word"
)

// Instruction is one parsed and validated instruction line: a recognized
// mnemonic together with its operands, already checked against the opcode
// rule table's arity and addressing-mode constraints.
type Instruction struct {
	Mnemonic string
	Rule     word.OpcodeRule
	Operands []Operand // 0, 1 (destination only), or 2 (source, destination)
}

// Length reports the word count L this instruction occupies: the first
// word plus one extension word per non-register operand.
func (in Instruction) Length() int {
	l := 1

	for _, op := range in.Operands {
		if op.Mode != word.Register {
			l++
		}
	}

	return l
}

// ParseInstruction tokenizes and validates one instruction line's operator
// and raw operand text (already split from any label prefix).
func ParseInstruction(mnemonic, operandText string) (*Instruction, error) {
	rule, ok := word.LookupOpcode(mnemonic)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrOpcode, mnemonic)
	}

	tokens, err := splitOperands(operandText)
	if err != nil {
		return nil, err
	}

	if len(tokens) > 2 {
		return nil, fmt.Errorf("%w: %s expects %d, got %d", ErrOperandCount, mnemonic, rule.OperandCount, len(tokens))
	}

	if len(tokens) != rule.OperandCount {
		return nil, fmt.Errorf("%w: %s expects %d, got %d", ErrOperandCount, mnemonic, rule.OperandCount, len(tokens))
	}

	operands := make([]Operand, 0, len(tokens))

	for _, tok := range tokens {
		op, err := parseOperand(tok)
		if err != nil {
			return nil, err
		}

		operands = append(operands, op)
	}

	switch len(operands) {
	case 2:
		if !rule.AllowsSource(operands[0].Mode) {
			return nil, fmt.Errorf("%w: %s may not use %s source operand", ErrSrcMode, mnemonic, operands[0].Mode)
		}

		if !rule.AllowsDest(operands[1].Mode) {
			return nil, fmt.Errorf("%w: %s may not use %s destination operand", ErrDstMode, mnemonic, operands[1].Mode)
		}

	case 1:
		if !rule.AllowsDest(operands[0].Mode) {
			return nil, fmt.Errorf("%w: %s may not use %s destination operand", ErrDstMode, mnemonic, operands[0].Mode)
		}
	}

	return &Instruction{
		Mnemonic: strings.ToLower(mnemonic),
		Rule:     rule,
		Operands: operands,
	}, nil
}

// source returns the source operand of a two-operand instruction.
func (in Instruction) source() Operand { return in.Operands[0] }

// dest returns the destination operand: the second operand of a
// two-operand instruction, or the only operand of a one-operand
// instruction.
func (in Instruction) dest() Operand {
	return in.Operands[len(in.Operands)-1]
}

package word

import "strings"

// OpcodeRule describes one mnemonic's encoding and the addressing modes its
// operands may take. funct disambiguates mnemonics that share an
// opcode_value (e.g. CLR/NOT/INC/DEC all share 5; JMP/BNE/JSR share 9).
type OpcodeRule struct {
	Mnemonic      string
	OpcodeValue   uint8
	Funct         uint8
	OperandCount  int
	SourceModes   []AddressingMode
	DestModes     []AddressingMode
}

// allows reports whether mode is a member of modes.
func allows(mode AddressingMode, modes []AddressingMode) bool {
	for _, m := range modes {
		if m == mode {
			return true
		}
	}

	return false
}

// AllowsSource reports whether mode is valid as this rule's source operand.
func (r OpcodeRule) AllowsSource(mode AddressingMode) bool { return allows(mode, r.SourceModes) }

// AllowsDest reports whether mode is valid as this rule's destination operand.
func (r OpcodeRule) AllowsDest(mode AddressingMode) bool { return allows(mode, r.DestModes) }

// OpcodeTable is the complete ISA: sixteen mnemonics, in opcode-value order.
// ADD and SUB share opcode value 2, disambiguated by funct -- the
// authoritative table, not the draft that mistakenly gave ADD value 1.
var OpcodeTable = []OpcodeRule{
	{"mov", 0, 0, 2, []AddressingMode{Immediate, Direct, Register}, []AddressingMode{Direct, Register}},
	{"cmp", 1, 0, 2, []AddressingMode{Immediate, Direct, Register}, []AddressingMode{Immediate, Direct, Register}},
	{"add", 2, 1, 2, []AddressingMode{Immediate, Direct, Register}, []AddressingMode{Direct, Register}},
	{"sub", 2, 2, 2, []AddressingMode{Immediate, Direct, Register}, []AddressingMode{Direct, Register}},
	{"lea", 4, 0, 2, []AddressingMode{Direct}, []AddressingMode{Direct, Register}},
	{"clr", 5, 1, 1, nil, []AddressingMode{Direct, Register}},
	{"not", 5, 2, 1, nil, []AddressingMode{Direct, Register}},
	{"inc", 5, 3, 1, nil, []AddressingMode{Direct, Register}},
	{"dec", 5, 4, 1, nil, []AddressingMode{Direct, Register}},
	{"jmp", 9, 1, 1, nil, []AddressingMode{Direct, Relative}},
	{"bne", 9, 2, 1, nil, []AddressingMode{Direct, Relative}},
	{"jsr", 9, 3, 1, nil, []AddressingMode{Direct, Relative}},
	{"red", 12, 0, 1, nil, []AddressingMode{Direct, Register}},
	{"prn", 13, 0, 1, nil, []AddressingMode{Immediate, Direct, Register}},
	{"rts", 14, 0, 0, nil, nil},
	{"stop", 15, 0, 0, nil, nil},
}

var opcodesByMnemonic = func() map[string]OpcodeRule {
	m := make(map[string]OpcodeRule, len(OpcodeTable))
	for _, r := range OpcodeTable {
		m[r.Mnemonic] = r
	}

	return m
}()

// LookupOpcode returns the rule for a mnemonic, case-insensitively, and
// whether it was found.
func LookupOpcode(mnemonic string) (OpcodeRule, bool) {
	r, ok := opcodesByMnemonic[strings.ToLower(mnemonic)]
	return r, ok
}

// reservedWords is every mnemonic plus the macro keywords; none may be used
// as a symbol or macro name.
var reservedWords = func() map[string]bool {
	m := make(map[string]bool, len(OpcodeTable)+2)
	for _, r := range OpcodeTable {
		m[r.Mnemonic] = true
	}

	m["mcro"] = true
	m["mcroend"] = true

	return m
}()

// Reserved reports whether name collides with a mnemonic or macro keyword,
// case-insensitively.
func Reserved(name string) bool {
	return reservedWords[strings.ToLower(name)]
}

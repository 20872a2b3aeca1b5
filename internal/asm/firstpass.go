package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aharonlev/lc24asm/internal/word"
)

// CodeBaseAddress is the address of the first emitted instruction word,
// used when no config overrides it.
const CodeBaseAddress = 100

// Options holds the policy knobs a caller may override from config: the
// line-length boundary and the address the code image starts at. Both
// passes take the same Options so pass two checks the same line-length
// boundary pass one used.
type Options struct {
	MaxLineLength   int
	CodeBaseAddress uint32
}

// DefaultOptions returns the assembler's built-in defaults.
func DefaultOptions() Options {
	return Options{
		MaxLineLength:   MaxLineLength,
		CodeBaseAddress: CodeBaseAddress,
	}
}

// SourceLine is one line of macro-expanded source, numbered for
// diagnostics.
type SourceLine struct {
	Number int
	Text   string
}

// Record is a machine-code record: one per source instruction line,
// carrying its tentative first word and operand words. Pass two patches
// label-dependent operand words in place.
type Record struct {
	LineNumber      int
	IC              uint32
	Label           string
	Instruction     *Instruction
	FirstWord       word.Word
	OperandWords    []word.Word
	NeedsResolution bool
}

// Length returns L, the number of words this record occupies.
func (r *Record) Length() int { return 1 + len(r.OperandWords) }

// Pass1Result is everything pass one produces: the symbol table, the
// ordered machine-code records, the data image, and the final counters.
type Pass1Result struct {
	Symbols *word.SymbolTable
	Records []*Record
	Data    []word.Word
	ICF     uint32
	DCF     uint32
}

// FirstPass walks macro-expanded source once, building the symbol table
// and tentative machine-code records. It returns as many diagnostics as it
// can collect; callers must not proceed to SecondPass when diags is
// non-empty.
func FirstPass(lines []SourceLine, opts Options) (*Pass1Result, Diagnostics) {
	res := &Pass1Result{Symbols: word.NewSymbolTable()}

	var diags Diagnostics

	ic := opts.CodeBaseAddress
	dc := uint32(0)

	for _, sl := range lines {
		trimmed := strings.TrimSpace(sl.Text)
		if isCommentOrBlank(trimmed) {
			continue
		}

		if len(sl.Text) > opts.MaxLineLength {
			diags = append(diags, &SyntaxError{Line: sl.Number, Err: ErrLineLength})
			continue
		}

		ln, err := parseLine(sl.Number, sl.Text)
		if err != nil {
			diags = append(diags, err)
			continue
		}

		if ln.Rest == "" {
			if ln.HasLabel {
				diags = append(diags, &SyntaxError{Line: sl.Number, Text: ln.Label, Err: fmt.Errorf("%w: label with no instruction", ErrDirective)})
			}

			continue
		}

		name, operand, isDirective := directiveName(ln.Rest)

		switch {
		case isDirective && name == "data":
			if ln.HasLabel {
				if !res.Symbols.Define(ln.Label, dc, word.SymbolKind{Base: word.SymbolData}) {
					diags = append(diags, &SyntaxError{Line: sl.Number, Text: ln.Label, Err: ErrDuplicate})
					continue
				}
			}

			values, err := parseIntList(operand)
			if err != nil {
				diags = append(diags, &SyntaxError{Line: sl.Number, Text: operand, Err: err})
				continue
			}

			for _, v := range values {
				res.Data = append(res.Data, word.Word(uint32(v))&word.Mask)
			}

			dc += uint32(len(values))

		case isDirective && name == "string":
			if ln.HasLabel {
				if !res.Symbols.Define(ln.Label, dc, word.SymbolKind{Base: word.SymbolData}) {
					diags = append(diags, &SyntaxError{Line: sl.Number, Text: ln.Label, Err: ErrDuplicate})
					continue
				}
			}

			lit, err := parseStringLiteral(operand)
			if err != nil {
				diags = append(diags, &SyntaxError{Line: sl.Number, Text: operand, Err: err})
				continue
			}

			for _, c := range lit {
				res.Data = append(res.Data, word.Word(c))
			}

			res.Data = append(res.Data, 0)
			dc += uint32(len(lit)) + 1

		case isDirective && name == "entry":
			// Resolved in pass two; pass one only checks that some
			// operand text follows the directive.
			if operand == "" {
				diags = append(diags, &SyntaxError{Line: sl.Number, Err: fmt.Errorf("%w: .entry needs a name", ErrDirective)})
			}

		case isDirective && name == "extern":
			if operand == "" {
				diags = append(diags, &SyntaxError{Line: sl.Number, Err: fmt.Errorf("%w: .extern needs a name", ErrDirective)})
				continue
			}

			if !word.IsValidLabel(operand) {
				diags = append(diags, &SyntaxError{Line: sl.Number, Text: operand, Err: ErrLabel})
				continue
			}

			if existing, ok := res.Symbols.Lookup(operand); ok && existing.Kind.Base != word.SymbolExtern {
				diags = append(diags, &SyntaxError{Line: sl.Number, Text: operand, Err: ErrDuplicate})
				continue
			}

			res.Symbols.Define(operand, 0, word.SymbolKind{Base: word.SymbolExtern})

		case isDirective:
			diags = append(diags, &SyntaxError{Line: sl.Number, Text: name, Err: ErrDirective})

		default:
			mnemonic := ln.Rest
			operandText := ""

			if idx := strings.IndexAny(ln.Rest, " \t"); idx >= 0 {
				mnemonic = ln.Rest[:idx]
				operandText = strings.TrimSpace(ln.Rest[idx+1:])
			}

			inst, err := ParseInstruction(mnemonic, operandText)
			if err != nil {
				diags = append(diags, &SyntaxError{Line: sl.Number, Text: ln.Rest, Err: err})
				continue
			}

			if ln.HasLabel {
				if !res.Symbols.Define(ln.Label, ic, word.SymbolKind{Base: word.SymbolCode}) {
					diags = append(diags, &SyntaxError{Line: sl.Number, Text: ln.Label, Err: ErrDuplicate})
					continue
				}
			}

			rec := buildRecord(sl.Number, ic, ln.Label, inst)
			res.Records = append(res.Records, rec)
			ic += uint32(rec.Length())
		}
	}

	res.ICF = ic
	res.DCF = dc
	res.Symbols.OffsetData(res.ICF)

	return res, diags
}

// buildRecord constructs the tentative machine-code record for one
// instruction: the first word is fully known; operand words are filled in
// for immediate operands and left as placeholders for label-dependent
// ones.
func buildRecord(lineNo int, ic uint32, label string, inst *Instruction) *Record {
	fw := word.FirstWord{
		A:           true,
		Funct:       inst.Rule.Funct,
		OpcodeValue: inst.Rule.OpcodeValue,
	}

	var operandWords []word.Word

	needsResolution := false

	switch len(inst.Operands) {
	case 2:
		src, dst := inst.source(), inst.dest()
		fw.SrcMode = src.Mode
		fw.DestMode = dst.Mode

		if src.Mode == word.Register {
			fw.SrcReg = src.Reg
		} else {
			operandWords = append(operandWords, encodeTentative(src, &needsResolution))
		}

		if dst.Mode == word.Register {
			fw.DestReg = dst.Reg
		} else {
			operandWords = append(operandWords, encodeTentative(dst, &needsResolution))
		}

	case 1:
		dst := inst.dest()
		fw.DestMode = dst.Mode

		if dst.Mode == word.Register {
			fw.DestReg = dst.Reg
		} else {
			operandWords = append(operandWords, encodeTentative(dst, &needsResolution))
		}
	}

	return &Record{
		LineNumber:      lineNo,
		IC:              ic,
		Label:           label,
		Instruction:     inst,
		FirstWord:       word.EncodeFirstWord(fw),
		OperandWords:    operandWords,
		NeedsResolution: needsResolution,
	}
}

// encodeTentative returns the pass-one value of a non-register operand's
// extension word: immediates are fully encoded now; direct and relative
// operands are zero placeholders, and flip *needsResolution.
func encodeTentative(op Operand, needsResolution *bool) word.Word {
	if op.Mode == word.Immediate {
		return word.EncodeOperandWord(word.OperandWord{A: true, Payload: op.Imm})
	}

	*needsResolution = true

	return 0
}

// parseIntList parses a .data operand list: comma-separated signed
// decimal integers.
func parseIntList(s string) ([]int32, error) {
	toks, err := splitOperands(s)
	if err != nil {
		return nil, err
	}

	if len(toks) == 0 {
		return nil, fmt.Errorf("%w: empty .data list", ErrOperand)
	}

	out := make([]int32, 0, len(toks))

	for _, t := range toks {
		n, err := strconv.ParseInt(t, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrOperand, t)
		}

		out = append(out, int32(n))
	}

	return out, nil
}

// parseStringLiteral parses a .string operand: a double-quoted literal.
func parseStringLiteral(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("%w: .string operand must be quoted", ErrOperand)
	}

	return s[1 : len(s)-1], nil
}

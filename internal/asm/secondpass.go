package asm

import (
	"fmt"
	"strings"

	"github.com/aharonlev/lc24asm/internal/word"
)

// ExternalUsage records one operand reference resolved to an extern
// symbol: the symbol's name and the address of the word that refers to
// it.
type ExternalUsage struct {
	Name    string
	Address uint32
}

// SecondPass re-walks the same macro-expanded source pass one consumed,
// applying .entry declarations and resolving every label-dependent operand
// in pass one's records. Callers must only call SecondPass when pass one
// produced no diagnostics.
func SecondPass(lines []SourceLine, pass1 *Pass1Result, opts Options) ([]ExternalUsage, Diagnostics) {
	var (
		diags     Diagnostics
		externals []ExternalUsage
		recIdx    int
	)

	for _, sl := range lines {
		trimmed := strings.TrimSpace(sl.Text)
		if isCommentOrBlank(trimmed) || len(sl.Text) > opts.MaxLineLength {
			continue
		}

		ln, err := parseLine(sl.Number, sl.Text)
		if err != nil || ln.Rest == "" {
			continue
		}

		name, operand, isDirective := directiveName(ln.Rest)

		switch {
		case isDirective && name == "entry":
			if operand == "" {
				continue
			}

			if word.Reserved(operand) {
				diags = append(diags, &SyntaxError{Line: sl.Number, Text: operand, Err: ErrReserved})
				continue
			}

			sym, ok := pass1.Symbols.Lookup(operand)
			if !ok {
				diags = append(diags, &SyntaxError{Line: sl.Number, Text: operand, Err: ErrUndefined})
				continue
			}

			if sym.Kind.Base == word.SymbolExtern {
				diags = append(diags, &SyntaxError{Line: sl.Number, Text: operand, Err: ErrExternEntry})
				continue
			}

			pass1.Symbols.MarkEntry(operand)

		case isDirective:
			// .data, .string, .extern: already fully handled in pass one.

		default:
			rec := pass1.Records[recIdx]
			recIdx++

			if !rec.NeedsResolution {
				continue
			}

			ext, errs := resolveRecord(rec, pass1.Symbols)
			externals = append(externals, ext...)

			for _, e := range errs {
				diags = append(diags, &SyntaxError{Line: rec.LineNumber, Err: e})
			}
		}
	}

	return externals, diags
}

// resolveRecord patches every label-dependent operand word of rec in
// place, returning any external-usage records it produced and any errors
// encountered. It does not stop at the first error: each operand is
// resolved independently so a run surfaces as many diagnostics as
// possible.
func resolveRecord(rec *Record, symbols *word.SymbolTable) ([]ExternalUsage, []error) {
	var (
		externals []ExternalUsage
		errs      []error
		extIdx    int
	)

	for _, op := range rec.Instruction.Operands {
		if op.Mode == word.Register {
			continue
		}

		switch op.Mode {
		case word.Immediate:
			// Already encoded in pass one.

		case word.Direct:
			sym, ok := symbols.Lookup(op.Label)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: %q", ErrUndefined, op.Label))
				extIdx++
				continue
			}

			if sym.Kind.Base == word.SymbolExtern {
				rec.OperandWords[extIdx] = word.EncodeOperandWord(word.OperandWord{E: true})
				externals = append(externals, ExternalUsage{
					Name:    op.Label,
					Address: rec.IC + 1 + uint32(extIdx),
				})
			} else {
				rec.OperandWords[extIdx] = word.EncodeOperandWord(word.OperandWord{R: true, Payload: int32(sym.Address)})
			}

		case word.Relative:
			sym, ok := symbols.Lookup(op.Label)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: %q", ErrUndefined, op.Label))
				extIdx++
				continue
			}

			if sym.Kind.Base == word.SymbolExtern {
				errs = append(errs, fmt.Errorf("%w: %q", ErrExternRel, op.Label))
				extIdx++
				continue
			}

			disp := int32(sym.Address) - int32(rec.IC)
			rec.OperandWords[extIdx] = word.EncodeOperandWord(word.OperandWord{A: true, Payload: disp})
		}

		extIdx++
	}

	return externals, errs
}

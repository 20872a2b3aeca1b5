package asm

import (
	"bufio"
	"io"

	"github.com/aharonlev/lc24asm/internal/log"
	"github.com/aharonlev/lc24asm/internal/word"
)

// Image is the complete result of a successful assembly: the symbol
// table, the ordered machine-code records, the data image, and the
// external-usage records, ready for an emitter to render.
type Image struct {
	Symbols   *word.SymbolTable
	Records   []*Record
	Data      []word.Word
	Externals []ExternalUsage
	ICF       uint32
	DCF       uint32
}

// Assembler drives both passes over a single macro-expanded source file.
type Assembler struct {
	log *log.Logger
}

// NewAssembler returns an Assembler that logs to logger, or to the
// package default logger if logger is nil.
func NewAssembler(logger *log.Logger) *Assembler {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Assembler{log: logger}
}

// ReadLines splits r into numbered source lines, the form both passes
// operate on. The line terminator is not retained.
func ReadLines(r io.Reader) ([]SourceLine, error) {
	scanner := bufio.NewScanner(r)

	var lines []SourceLine

	for n := 1; scanner.Scan(); n++ {
		lines = append(lines, SourceLine{Number: n, Text: scanner.Text()})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// Assemble runs pass one and, if it succeeded cleanly, pass two, over the
// given macro-expanded source lines, using opts for the line-length and
// code-base-address policy knobs. If pass one reports any diagnostic, pass
// two and emission are skipped, matching the non-fatal error model: a
// single run surfaces every line's diagnostics, but never proceeds past a
// failed first pass.
func (a *Assembler) Assemble(lines []SourceLine, opts Options) (*Image, error) {
	pass1, diags := FirstPass(lines, opts)
	if diags.HasErrors() {
		a.log.Debug("asm: first pass failed", "errors", len(diags))
		return nil, diags
	}

	externals, diags := SecondPass(lines, pass1, opts)
	if diags.HasErrors() {
		a.log.Debug("asm: second pass failed", "errors", len(diags))
		return nil, diags
	}

	a.log.Debug("asm: assembled", "code_words", pass1.ICF-opts.CodeBaseAddress, "data_words", pass1.DCF, "symbols", pass1.Symbols.Count())

	return &Image{
		Symbols:   pass1.Symbols,
		Records:   pass1.Records,
		Data:      pass1.Data,
		Externals: externals,
		ICF:       pass1.ICF,
		DCF:       pass1.DCF,
	}, nil
}

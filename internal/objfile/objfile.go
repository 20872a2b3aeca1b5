package objfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aharonlev/lc24asm/internal/word"
)

// Sentinel decode errors.
var (
	ErrDecode  = errors.New("objfile: malformed input")
	errEmpty   = fmt.Errorf("%w: empty input", ErrDecode)
	errHeader  = fmt.Errorf("%w: malformed header", ErrDecode)
	errRecord  = fmt.Errorf("%w: malformed record", ErrDecode)
	errCount   = fmt.Errorf("%w: word count does not match header", ErrDecode)
)

// CodeBaseAddress is the address of the first object word, shared with
// package asm's value of the same name so objfile has no import
// dependency on it.
const CodeBaseAddress = 100

// Object is the complete `.obj` listing: the header counts and every
// emitted word, code first then data, in address order starting at
// CodeBase.
type Object struct {
	CodeSize int // ICF - CodeBase
	DataSize int // DCF
	CodeBase int // address of the first word; CodeBaseAddress if zero
	Words    []word.Word
}

// MarshalText renders the object listing in its fixed-width textual form.
func (o Object) MarshalText() ([]byte, error) {
	var b bytes.Buffer

	fmt.Fprintf(&b, "%7d %d\n", o.CodeSize, o.DataSize)

	base := o.CodeBase
	if base == 0 {
		base = CodeBaseAddress
	}

	addr := base
	for _, w := range o.Words {
		fmt.Fprintf(&b, "%07d %s\n", addr, w)
		addr++
	}

	return b.Bytes(), nil
}

// UnmarshalText parses an object listing, recovering the original word
// values and validating that the declared counts match the number of
// lines present.
func (o *Object) UnmarshalText(data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	if !scanner.Scan() {
		return errEmpty
	}

	var codeSize, dataSize int
	if _, err := fmt.Sscanf(scanner.Text(), "%d %d", &codeSize, &dataSize); err != nil {
		return errHeader
	}

	var words []word.Word

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return errRecord
		}

		n, err := strconv.ParseUint(fields[1], 16, 32)
		if err != nil {
			return fmt.Errorf("%w: %q", errRecord, fields[1])
		}

		words = append(words, word.Word(n))
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %s", ErrDecode, err)
	}

	if len(words) != codeSize+dataSize {
		return errCount
	}

	o.CodeSize = codeSize
	o.DataSize = dataSize
	o.Words = words

	return nil
}

// SymbolRecord is one line of an `.ent` or `.ext` listing: a name and the
// address it refers to.
type SymbolRecord struct {
	Name    string
	Address uint32
}

// Entries is the complete `.ent` listing: one line per symbol exported
// from this file.
type Entries []SymbolRecord

// MarshalText renders the entry listing.
func (e Entries) MarshalText() ([]byte, error) {
	return marshalRecords(e)
}

// Externals is the complete `.ext` listing: one line per external-usage
// record produced during pass two.
type Externals []SymbolRecord

// MarshalText renders the externals listing.
func (e Externals) MarshalText() ([]byte, error) {
	return marshalRecords(e)
}

func marshalRecords(recs []SymbolRecord) ([]byte, error) {
	var b bytes.Buffer

	for _, r := range recs {
		fmt.Fprintf(&b, "%s %07d\n", r.Name, r.Address)
	}

	return b.Bytes(), nil
}

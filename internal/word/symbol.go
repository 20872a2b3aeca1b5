package word

import "fmt"

// SymbolBase is the mutually-exclusive core of a symbol's kind.
type SymbolBase uint8

const (
	SymbolData SymbolBase = iota
	SymbolCode
	SymbolExtern
)

func (b SymbolBase) String() string {
	switch b {
	case SymbolData:
		return "data"
	case SymbolCode:
		return "code"
	case SymbolExtern:
		return "extern"
	default:
		return fmt.Sprintf("SymbolBase(%d)", uint8(b))
	}
}

// SymbolKind is a symbol's classification: a base kind, plus an orthogonal
// Entry flag. Entry combines with Data or Code; it never combines with
// Extern (a symbol defined elsewhere cannot also be exported from here).
type SymbolKind struct {
	Base  SymbolBase
	Entry bool
}

func (k SymbolKind) String() string {
	if k.Entry {
		return k.Base.String() + "+entry"
	}

	return k.Base.String()
}

// MaxLabelLength is the longest a symbol name may be. Macro names are not
// held to it.
const MaxLabelLength = 31

// Symbol is one entry in the symbol table.
type Symbol struct {
	Name    string
	Address uint32
	Kind    SymbolKind
}

// SymbolTable maps symbol names to their definitions. Names are
// case-sensitive; the source language does not fold case on labels, unlike
// mnemonics.
type SymbolTable struct {
	entries map[string]*Symbol
	order   []string // insertion order, for deterministic emission
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{entries: make(map[string]*Symbol)}
}

// Lookup returns the symbol named name, if defined.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	s, ok := t.entries[name]
	return s, ok
}

// Define adds a new symbol. It returns false without modifying the table if
// name is already defined.
func (t *SymbolTable) Define(name string, address uint32, kind SymbolKind) bool {
	if _, exists := t.entries[name]; exists {
		return false
	}

	t.entries[name] = &Symbol{Name: name, Address: address, Kind: kind}
	t.order = append(t.order, name)

	return true
}

// MarkEntry sets the Entry flag on an existing, non-extern symbol. It
// reports whether the symbol exists and was eligible.
func (t *SymbolTable) MarkEntry(name string) bool {
	s, ok := t.entries[name]
	if !ok || s.Kind.Base == SymbolExtern {
		return false
	}

	s.Kind.Entry = true

	return true
}

// OffsetData shifts the address of every Data-kind symbol by delta. Used once,
// after pass one, to relocate data symbols past the final code image.
func (t *SymbolTable) OffsetData(delta uint32) {
	for _, name := range t.order {
		s := t.entries[name]
		if s.Kind.Base == SymbolData {
			s.Address += delta
		}
	}
}

// Symbols returns every symbol in definition order.
func (t *SymbolTable) Symbols() []*Symbol {
	out := make([]*Symbol, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.entries[name])
	}

	return out
}

// Count returns the number of symbols in the table.
func (t *SymbolTable) Count() int { return len(t.entries) }

// IsValidLabel reports whether name satisfies the naming rule: at most
// MaxLabelLength characters, first alphabetic, rest alphanumeric.
func IsValidLabel(name string) bool {
	if len(name) == 0 || len(name) > MaxLabelLength {
		return false
	}

	if !isAlpha(name[0]) {
		return false
	}

	for i := 1; i < len(name); i++ {
		if !isAlnum(name[i]) {
			return false
		}
	}

	return true
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9')
}

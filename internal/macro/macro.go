package macro

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aharonlev/lc24asm/internal/log"
	"github.com/aharonlev/lc24asm/internal/word"
)

// Entry is one macro definition: its name and its body, each line already
// trimmed of leading/trailing whitespace, exactly as read.
type Entry struct {
	Name  string
	Lines []string
}

// Sentinel causes wrapped by every diagnostic Expand reports.
var (
	ErrMacroName    = errors.New("invalid macro name")
	ErrNestedMacro  = errors.New("nested macro definition")
	ErrStrayEnd     = errors.New("mcroend without matching mcro")
	ErrTrailing     = errors.New("trailing tokens")
	ErrUnclosed     = errors.New("unclosed macro definition at end of file")
)

// Diagnostic is one structural error found while expanding, annotated with
// the source line number it occurred on.
type Diagnostic struct {
	Line int
	Err  error
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("macro: line %d: %s", d.Line, d.Err)
}

func (d *Diagnostic) Unwrap() error { return d.Err }

// Diagnostics aggregates every Diagnostic found during a single Expand
// call, the same way asm.Diagnostics aggregates assembler errors.
type Diagnostics []error

func (ds Diagnostics) Error() string {
	var b strings.Builder
	for i, e := range ds {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

func (ds Diagnostics) Unwrap() []error { return ds }

type state uint8

const (
	outside state = iota
	insideBody
)

// Expander holds the macro table built during a single Expand call.
type Expander struct {
	macros map[string]*Entry
	log    *log.Logger
}

// NewExpander returns an expander with a fresh, empty macro table.
func NewExpander(logger *log.Logger) *Expander {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Expander{
		macros: make(map[string]*Entry),
		log:    logger,
	}
}

// Expand reads source from in and returns the expanded line list: macro
// definitions are removed and every invocation is replaced by its body.
// If any structural error is found, Expand returns a nil line list along
// with a non-nil Diagnostics error.
func (e *Expander) Expand(in io.Reader) ([]string, error) {
	var (
		out     []string
		diags   Diagnostics
		st      = outside
		current *Entry
		lineNo  int
	)

	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		e.log.Debug("macro: scanned line", "line", lineNo, "text", line, "state", st)

		switch {
		case line == "":
			if st == outside {
				out = append(out, line)
			}
			continue

		case strings.HasPrefix(line, ";"):
			if st == outside {
				out = append(out, line)
			}
			continue
		}

		fields := strings.Fields(line)

		switch {
		case fields[0] == "mcro":
			if st == insideBody {
				diags = append(diags, &Diagnostic{lineNo, ErrNestedMacro})
				continue
			}

			if len(fields) < 2 {
				diags = append(diags, &Diagnostic{lineNo, fmt.Errorf("%w: missing name", ErrMacroName)})
				continue
			}

			if len(fields) > 2 {
				diags = append(diags, &Diagnostic{lineNo, fmt.Errorf("%w: on mcro header", ErrTrailing)})
				continue
			}

			name := fields[1]
			if err := e.validateName(name); err != nil {
				diags = append(diags, &Diagnostic{lineNo, err})
				continue
			}

			current = &Entry{Name: name}
			e.macros[name] = current
			st = insideBody

		case line == "mcroend":
			if st != insideBody {
				diags = append(diags, &Diagnostic{lineNo, ErrStrayEnd})
				continue
			}

			st = outside
			current = nil

		case fields[0] == "mcroend":
			// "mcroend" with trailing tokens: still ends the definition, but is an error.
			if st != insideBody {
				diags = append(diags, &Diagnostic{lineNo, ErrStrayEnd})
				continue
			}

			diags = append(diags, &Diagnostic{lineNo, fmt.Errorf("%w: on mcroend footer", ErrTrailing)})
			st = outside
			current = nil

		case st == insideBody:
			current.Lines = append(current.Lines, line)

		default:
			if body, ok := e.macros[line]; ok {
				out = append(out, body.Lines...)
			} else {
				out = append(out, line)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		diags = append(diags, &Diagnostic{lineNo, err})
	}

	if st == insideBody {
		diags = append(diags, &Diagnostic{lineNo, ErrUnclosed})
	}

	if len(diags) > 0 {
		return nil, diags
	}

	return out, nil
}

// validateName checks a candidate macro name: non-empty, not reserved,
// not already defined.
func (e *Expander) validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrMacroName)
	}

	if word.Reserved(name) {
		return fmt.Errorf("%w: %q is reserved", ErrMacroName, name)
	}

	if _, exists := e.macros[name]; exists {
		return fmt.Errorf("%w: %q already defined", ErrMacroName, name)
	}

	return nil
}

// Macros returns the macro table built so far, for callers that want to
// inspect it (e.g. tests).
func (e *Expander) Macros() map[string]*Entry { return e.macros }

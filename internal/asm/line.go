package asm

import (
	"strings"

	"github.com/aharonlev/lc24asm/internal/word"
)

// MaxLineLength is the longest a source line may be, not counting its
// terminator.
const MaxLineLength = 80

// Line is one source line split into its label (if any) and the remaining
// directive-or-instruction text.
type Line struct {
	Number   int
	Raw      string
	Label    string
	HasLabel bool
	Rest     string // directive or instruction text, label prefix stripped
}

// parseLine splits a trimmed, non-empty, non-comment-only source line into
// its label prefix (if any) and remaining text. The caller has already
// filtered out blank and comment-only lines; a comment is only ever a
// whole line whose first non-whitespace character is ';' — there is no
// trailing/inline comment syntax.
func parseLine(number int, raw string) (Line, error) {
	text := strings.TrimSpace(raw)

	ln := Line{Number: number, Raw: raw}

	if idx := strings.IndexByte(text, ':'); idx >= 0 {
		label := strings.TrimSpace(text[:idx])

		if !word.IsValidLabel(label) {
			return ln, &SyntaxError{Line: number, Text: label, Err: ErrLabel}
		}

		if word.Reserved(label) {
			return ln, &SyntaxError{Line: number, Text: label, Err: ErrReserved}
		}

		ln.Label = label
		ln.HasLabel = true
		text = strings.TrimSpace(text[idx+1:])
	}

	ln.Rest = text

	return ln, nil
}

// isCommentOrBlank reports whether a trimmed line should be skipped
// entirely: empty, or beginning with ';'.
func isCommentOrBlank(trimmed string) bool {
	return trimmed == "" || strings.HasPrefix(trimmed, ";")
}

// directiveName reports the directive keyword of rest, if rest begins with
// one, and the text following it.
func directiveName(rest string) (name, operand string, ok bool) {
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, ".") {
		return "", "", false
	}

	body := rest[1:]

	idx := strings.IndexAny(body, " \t")
	if idx < 0 {
		return strings.ToLower(body), "", true
	}

	return strings.ToLower(body[:idx]), strings.TrimSpace(body[idx:]), true
}

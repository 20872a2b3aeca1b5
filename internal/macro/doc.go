/*
Package macro implements the pre-assembler: a single-scan, line-oriented
macro expander. A macro definition begins with a line whose first token is
"mcro" and ends with a line that is exactly "mcroend"; invocations are
lines that exactly match a previously defined macro name and are replaced,
in place, with the macro's body.

Macros are parameterless text substitution -- there is no recursion, no
expansion inside a macro body, and no conditional logic. Any structural
error (an invalid or duplicate name, a nested definition, a stray
"mcroend", trailing tokens on a header or footer line, or an unclosed
definition at end of file) is collected as a diagnostic and the expansion
as a whole fails: callers must not write a partial ".am" file when Expand
returns an error.
*/
package macro

package macro

import (
	"errors"
	"strings"
	"testing"

	"github.com/aharonlev/lc24asm/internal/log"
)

func expand(t *testing.T, src string) ([]string, error) {
	t.Helper()
	return NewExpander(log.DefaultLogger()).Expand(strings.NewReader(src))
}

func TestExpand_simple(t *testing.T) {
	src := `mcro M1
add r1, r2
mcroend
mov r1, r2
M1
stop
`
	got, err := expand(t, src)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	want := []string{
		"mov r1, r2",
		"add r1, r2",
		"stop",
	}

	if len(got) != len(want) {
		t.Fatalf("Expand() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExpand_multiLineBody(t *testing.T) {
	src := `mcro CLEAR
clr r1
clr r2
mcroend
CLEAR
`
	got, err := expand(t, src)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	want := []string{"clr r1", "clr r2"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Expand() = %v, want %v", got, want)
	}
}

func TestExpand_commentsAndBlankLinesPassThrough(t *testing.T) {
	src := "; a comment\n\nmov r1, r2\n"

	got, err := expand(t, src)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	want := []string{"; a comment", "", "mov r1, r2"}
	if len(got) != 3 {
		t.Fatalf("Expand() = %v, want %v", got, want)
	}
}

func TestExpand_idempotentWithoutMacros(t *testing.T) {
	src := "mov r1, r2\nadd r1, #3\nstop\n"

	got, err := expand(t, src)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	got2, err := expand(t, strings.Join(got, "\n")+"\n")
	if err != nil {
		t.Fatalf("second Expand() error = %v", err)
	}

	if len(got) != len(got2) {
		t.Fatalf("not idempotent: %v != %v", got, got2)
	}

	for i := range got {
		if got[i] != got2[i] {
			t.Errorf("not idempotent at line %d: %q != %q", i, got[i], got2[i])
		}
	}
}

func TestExpand_errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"reserved name", "mcro mov\nstop\nmcroend\n", ErrMacroName},
		{"empty name", "mcro\nstop\nmcroend\n", ErrMacroName},
		{"trailing tokens on header", "mcro M1 extra\nstop\nmcroend\n", ErrTrailing},
		{"nested definition", "mcro M1\nmcro M2\nstop\nmcroend\nmcroend\n", ErrNestedMacro},
		{"stray mcroend", "mcroend\n", ErrStrayEnd},
		{"duplicate name", "mcro M1\nstop\nmcroend\nmcro M1\nstop\nmcroend\n", ErrMacroName},
		{"unclosed at eof", "mcro M1\nstop\n", ErrUnclosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := expand(t, tt.src)
			if err == nil {
				t.Fatal("Expand() error = nil, want error")
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("Expand() error = %v, want wrapping %v", err, tt.want)
			}
		})
	}
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/aharonlev/lc24asm/internal/cli"
	"github.com/aharonlev/lc24asm/internal/log"
)

type help struct{}

var _ cli.Command = (*help)(nil)

func (help) Description() string {
	return "display usage"
}

func (h help) FlagSet() *cli.FlagSet {
	return flag.NewFlagSet("help", flag.ExitOnError)
}

func (h help) Run(_ context.Context, args []string, out io.Writer, _ *log.Logger) int {
	if err := h.Usage(out); err != nil {
		return 1
	}

	return 0
}

func (h *help) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `
lc24asm translates a small custom assembly language into machine code for a
24-bit word-addressable virtual machine.

Usage:

        lc24asm [option]... file...

Each argument names a base file: NAME.as is macro-expanded to NAME.am, then
assembled into NAME.obj, NAME.ent, and NAME.ext.

Options:`)
	if err != nil {
		return err
	}

	Build().FlagSet().PrintDefaults()

	return err
}

// Help returns the help command.
func Help() *help {
	return &help{}
}

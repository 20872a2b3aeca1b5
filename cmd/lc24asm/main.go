// cmd/lc24asm is the command-line interface to the assembler.
package main

import (
	"context"
	"os"

	"github.com/aharonlev/lc24asm/internal/cli"
	"github.com/aharonlev/lc24asm/internal/cli/cmd"
)

var commands = []cli.Command{}

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithDefault(cmd.Build()).
			WithHelp(cmd.Help()).
			Execute(os.Args[1:])

	os.Exit(result)
}

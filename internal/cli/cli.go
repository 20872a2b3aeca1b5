// Package cli contains the command-line interface.
package cli

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/aharonlev/lc24asm/internal/log"
)

// Command represents a sub-command in the CLI. Each sub-command can have their own flags, config
// and action to perform.
type Command interface {
	// FlagSet returns a set of command options the command accepts.
	FlagSet() *flag.FlagSet

	// Description returns a brief description of the command's function.
	Description() string

	// Usage prints detailed command documentation.
	Usage(out io.Writer) error

	// Run executes the command with arguments. Command output should be written to |out|. It
	// returns an exit code.
	Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int
}

// Commander is a CLI command-runner that handles the life cycle of a CLI command execution.
//
// Unlike a typical multi-command tool, this program's primary contract is flat: `prog
// file1 [file2]...` with no verb, since every invocation does the same thing (assemble each
// file argument). Commander still recognizes named sub-commands like "help" by their first
// argument, but any argument that isn't a known command name is treated as a file for the
// default command, not an error.
type Commander struct {
	ctx context.Context
	log *log.Logger

	help     Command
	deflt    Command
	commands []Command
}

// New creates a new |Commander| that can start sub-commands.
func New(ctx context.Context) *Commander {
	return &Commander{
		ctx: ctx,
	}
}

// Execute runs a command, if configured.
func (cli *Commander) Execute(args []string) int {
	// With no arguments at all, there's no file to assemble: print usage and fail.
	if len(args) == 0 {
		cli.help.Run(cli.ctx, nil, os.Stdout, cli.log)
		return 1
	}

	found := cli.deflt

	switch {
	case args[0] == cli.help.FlagSet().Name():
		found = cli.help
		args = args[1:]

	default:
		for _, cmd := range cli.commands {
			if args[0] == cmd.FlagSet().Name() {
				found = cmd
				args = args[1:]

				break
			}
		}
	}

	fs := found.FlagSet()
	if err := fs.Parse(args); err != nil {
		cli.log.Error("parse error", "err", err)
		return 1
	}

	return found.Run(cli.ctx, fs.Args(), os.Stdout, cli.log)
}

// WithCommands adds a list of named sub-commands.
func (cli *Commander) WithCommands(cmds []Command) *Commander {
	cli.commands = append([]Command(nil), cmds...)
	return cli
}

// WithHelp configures the help message a command.
func (cli *Commander) WithHelp(cmd Command) *Commander {
	cli.help = cmd
	return cli
}

// WithDefault configures the command run when the first argument names no
// known sub-command: the one that receives bare file arguments.
func (cli *Commander) WithDefault(cmd Command) *Commander {
	cli.deflt = cmd
	return cli
}

// WithLogger configures the logger for the CLI. Logs are written to os.Stderr to leave os.Stdout
// for program output.
func (cli *Commander) WithLogger(out *os.File) *Commander {
	logger := log.NewFormattedLogger(os.Stderr)
	cli.log = logger

	log.SetDefault(logger)

	return cli
}

// Type aliases from std lib.
type (
	Flag    = flag.Flag
	FlagSet = flag.FlagSet
)

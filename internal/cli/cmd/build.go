// Package cmd holds the CLI's sub-commands.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aharonlev/lc24asm/internal/asm"
	"github.com/aharonlev/lc24asm/internal/cli"
	"github.com/aharonlev/lc24asm/internal/config"
	"github.com/aharonlev/lc24asm/internal/log"
	"github.com/aharonlev/lc24asm/internal/macro"
	"github.com/aharonlev/lc24asm/internal/objfile"
	"github.com/aharonlev/lc24asm/internal/word"
)

// Build returns the default command: macro-expand, assemble, and emit
// object code for each file argument.
func Build() cli.Command {
	return &build{}
}

type build struct {
	debug      bool
	configPath string
	keepAM     bool
}

func (build) Description() string {
	return "assemble source files"
}

func (build) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `file...

Assembles each NAME.as file into NAME.obj, NAME.ent, and NAME.ext.`)

	return err
}

func (b *build) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("build", flag.ExitOnError)

	fs.BoolVar(&b.debug, "debug", false, "enable debug logging")
	fs.StringVar(&b.configPath, "config", "", "path to a TOML config `file`")
	fs.BoolVar(&b.keepAM, "keep-am", true, "keep the intermediate .am file after assembly")

	return fs
}

// Run assembles every file argument independently: an error in one file
// does not stop the others from being attempted, but the overall exit
// code is non-zero if any file failed.
func (b *build) Run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) int {
	if len(args) < 1 {
		logger.Error("usage: lc24asm file...")
		return 1
	}

	cfg, err := config.Load(b.configPath)
	if err != nil {
		logger.Error("config error", "err", err)
		return 1
	}

	if b.debug || cfg.Logging.Debug {
		log.LogLevel.Set(log.Debug)
	}

	status := 0

	for _, arg := range args {
		if err := b.processFile(arg, cfg, logger); err != nil {
			logger.Error("assembly failed", "file", arg, "err", err)
			status = 1
		}
	}

	return status
}

func (b *build) processFile(arg string, cfg *config.Config, logger *log.Logger) error {
	base := strings.TrimSuffix(arg, ".as")

	src, err := os.Open(base + ".as")
	if err != nil {
		return err
	}
	defer src.Close()

	expander := macro.NewExpander(logger)

	expanded, err := expander.Expand(src)
	if err != nil {
		return err
	}

	amPath := base + ".am"
	if err := writeLines(amPath, expanded); err != nil {
		return err
	}

	if !b.keepAM {
		defer os.Remove(amPath)
	}

	lines := make([]asm.SourceLine, len(expanded))
	for i, text := range expanded {
		lines[i] = asm.SourceLine{Number: i + 1, Text: text}
	}

	assembler := asm.NewAssembler(logger)

	opts := asm.Options{
		MaxLineLength:   cfg.Assembler.MaxLineLength,
		CodeBaseAddress: uint32(cfg.Assembler.CodeBaseAddress),
	}

	img, err := assembler.Assemble(lines, opts)
	if err != nil {
		return err
	}

	return emit(base, img, cfg)
}

func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, line := range lines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return err
		}
	}

	return nil
}

// emit converts an assembled image into the three object-code files and
// writes them, honoring the config's suppress-empty-outputs policy for
// .ent and .ext.
func emit(base string, img *asm.Image, cfg *config.Config) error {
	words := make([]word.Word, 0, len(img.Records)+len(img.Data))

	for _, rec := range img.Records {
		words = append(words, rec.FirstWord)
		words = append(words, rec.OperandWords...)
	}

	words = append(words, img.Data...)

	obj := objfile.Object{
		CodeSize: int(img.ICF) - cfg.Assembler.CodeBaseAddress,
		DataSize: int(img.DCF),
		CodeBase: cfg.Assembler.CodeBaseAddress,
		Words:    words,
	}

	if err := writeMarshaled(base+".obj", obj); err != nil {
		return err
	}

	var entries objfile.Entries
	for _, sym := range img.Symbols.Symbols() {
		if sym.Kind.Entry {
			entries = append(entries, objfile.SymbolRecord{Name: sym.Name, Address: sym.Address})
		}
	}

	if len(entries) > 0 || !cfg.Assembler.SuppressEmptyOutputs {
		if err := writeMarshaled(base+".ent", entries); err != nil {
			return err
		}
	}

	var externals objfile.Externals
	for _, ext := range img.Externals {
		externals = append(externals, objfile.SymbolRecord{Name: ext.Name, Address: ext.Address})
	}

	if len(externals) > 0 || !cfg.Assembler.SuppressEmptyOutputs {
		if err := writeMarshaled(base+".ext", externals); err != nil {
			return err
		}
	}

	return nil
}

type textMarshaler interface {
	MarshalText() ([]byte, error)
}

func writeMarshaled(path string, v textMarshaler) error {
	text, err := v.MarshalText()
	if err != nil {
		return err
	}

	return os.WriteFile(path, text, 0o644)
}

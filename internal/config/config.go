// Package config loads the assembler's TOML configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable that is not a CLI flag: the values a project
// would otherwise bake into the assembler.
type Config struct {
	Assembler struct {
		MaxLineLength       int  `toml:"max_line_length"`
		SuppressEmptyOutputs bool `toml:"suppress_empty_outputs"`
		CodeBaseAddress     int  `toml:"code_base_address"`
	} `toml:"assembler"`

	Logging struct {
		Debug bool `toml:"debug"`
	} `toml:"logging"`
}

// Default returns a Config populated with the values the assembler uses
// when no config file is present: 80-character lines, entry/extern files
// always emitted even when empty, code based at word 100.
func Default() *Config {
	cfg := &Config{}

	cfg.Assembler.MaxLineLength = 80
	cfg.Assembler.SuppressEmptyOutputs = false
	cfg.Assembler.CodeBaseAddress = 100
	cfg.Logging.Debug = false

	return cfg
}

// Load reads and merges a TOML config file over the defaults. A missing
// file is not an error: Load returns the defaults unchanged. CLI flags
// take precedence over whatever Load returns; callers apply flag
// overrides after calling Load.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return cfg, nil
}

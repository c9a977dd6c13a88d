// Package roboconfig loads optional compiler configuration from a TOML
// file, defaulting every field when the file is absent.
package roboconfig

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds settings that tune the compiler pipeline without being part
// of the language itself.
type Config struct {
	// TabWidth is the number of columns a tab character occupies when
	// computing indentation level. Default 4.
	TabWidth int `toml:"tab_width"`

	// MaxDiagnostics caps the number of diagnostics reported before
	// truncation. 0 means unlimited.
	MaxDiagnostics int `toml:"max_diagnostics"`

	// Color enables ANSI color in CLI diagnostic output.
	Color bool `toml:"color"`

	// StrictWarnings promotes warnings to errors for exit-code purposes.
	StrictWarnings bool `toml:"strict_warnings"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		TabWidth:       4,
		MaxDiagnostics: 0,
		Color:          true,
		StrictWarnings: false,
	}
}

// Load reads configuration from path. A missing file is not an error; it
// yields Default(). A malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), err
	}

	return cfg, nil
}

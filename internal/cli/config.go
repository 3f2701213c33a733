package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds the shell configuration.
type Config struct {
	// Prompt is the REPL prompt.
	Prompt string `koanf:"prompt"`
	// Color is one of auto, always, never.
	Color string `koanf:"color"`
	// HistoryFile is the readline history file; empty disables history.
	HistoryFile string `koanf:"history_file"`
	// Precision is the number of significant digits in rendered results;
	// -1 means the shortest representation that round-trips.
	Precision int `koanf:"precision"`
}

// ConfigFileName is the name of the config file.
const ConfigFileName = "facalc.yaml"

func defaults() map[string]any {
	return map[string]any{
		"prompt":       "factor> ",
		"color":        "auto",
		"history_file": defaultHistoryFile(),
		"precision":    -1,
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".facalc_history")
}

// LoadConfig loads the shell configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, err
	}

	path := cfgFile
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("FACALC_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "FACALC_"))
	}), nil); err != nil {
		return nil, err
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			// Only explicitly set flags override lower layers.
			if !f.Changed {
				return "", nil
			}
			// Flag names use dashes; config keys use underscores.
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// findConfigFile looks for a config file in the working directory and the
// user's config directory. Returns empty string if none exists.
func findConfigFile() string {
	candidates := []string{ConfigFileName, ".facalc.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "facalc", ConfigFileName))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Package config loads the settings of the hamcycle command from a JSON, TOML or YAML file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const DefaultSolver = "gini"

type Config struct {
	Solver   string            `mapstructure:"solver"`
	Timeout  time.Duration     `mapstructure:"timeout"`  // Zero means no timeout
	Precheck bool              `mapstructure:"precheck"` // Reject graphs without a perfect successor matching before solving
	Paths    map[string]string `mapstructure:"paths"`    // Executable path of each external solver, keyed by solver name
}

func Default() Config {
	return Config{
		Solver:   DefaultSolver,
		Precheck: true,
		Paths:    map[string]string{},
	}
}

// Load reads the file at path on top of Default. The format is chosen by the file extension.
func Load(path string) (Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	}

	var raw map[string]any
	switch extension := strings.ToLower(filepath.Ext(path)); extension {
	case ".json":
		err = json.Unmarshal(bytes, &raw)
	case ".toml":
		err = toml.Unmarshal(bytes, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &raw)
	default:
		return Config{}, fmt.Errorf("unsupported config format %q, use .json, .toml or .yaml", extension)
	}
	if err != nil {
		return Config{}, fmt.Errorf("cannot parse config file %v: %w", path, err)
	}

	return Decode(raw)
}

// Decode applies raw settings on top of Default. Durations may be given as strings such as "30s".
func Decode(raw map[string]any) (Config, error) {
	config := Default()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	if config.Timeout < 0 {
		return Config{}, fmt.Errorf("invalid config: timeout must not be negative: %v", config.Timeout)
	}
	return config, nil
}

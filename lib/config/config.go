// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "TERMCONV_CONFIG"

// Config is the master configuration for termconv.
type Config struct {
	// Output configures how decoded records are written.
	Output OutputConfig `yaml:"output" toml:"output"`

	// Decode configures input limits.
	Decode DecodeConfig `yaml:"decode" toml:"decode"`

	// Log configures diagnostic logging on stderr.
	Log LogConfig `yaml:"log" toml:"log"`
}

// OutputConfig configures record output.
type OutputConfig struct {
	// Format is the output encoding.
	// Values: "json", "yaml", "cbor", "msgpack". Default: json
	Format string `yaml:"format" toml:"format"`

	// Indent is the number of spaces per level for JSON and YAML.
	// Default: 2
	Indent int `yaml:"indent" toml:"indent"`

	// Color controls syntax highlighting.
	// Values: "auto", "always", "never". Default: auto
	Color string `yaml:"color" toml:"color"`
}

// DecodeConfig configures decoding limits.
type DecodeConfig struct {
	// MaxDepth bounds term nesting.
	// Default: 512
	MaxDepth int `yaml:"max_depth" toml:"max_depth"`

	// MaxInputBytes bounds the input file size and the size of any
	// decompressed payload.
	// Default: 268435456 (256 MiB)
	MaxInputBytes int64 `yaml:"max_input_bytes" toml:"max_input_bytes"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the minimum level logged.
	// Values: "debug", "info", "warn", "error". Default: warn
	Level string `yaml:"level" toml:"level"`
}

var (
	outputFormats = []string{"json", "yaml", "cbor", "msgpack"}
	colorModes    = []string{"auto", "always", "never"}
)

// Default returns the default configuration. Loaded files are merged
// over these values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "json",
			Indent: 2,
			Color:  "auto",
		},
		Decode: DecodeConfig{
			MaxDepth:      512,
			MaxInputBytes: 256 << 20,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from the file named by TERMCONV_CONFIG.
// It fails when the variable is not set; use [Resolve] for the
// defaults-when-absent behavior.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of a termconv.yaml or termconv.toml file, or use --config flag",
			EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// Resolve picks the configuration source: an explicit path wins, then
// TERMCONV_CONFIG, then [Default]. The result is validated.
func Resolve(path string) (*Config, error) {
	var cfg *Config
	var err error
	switch {
	case path != "":
		cfg, err = LoadFile(path)
	case os.Getenv(EnvironmentVariable) != "":
		cfg, err = Load()
	default:
		cfg = Default()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFile loads configuration from a specific file path, merged over
// [Default].
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile decodes a single configuration file into c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		metadata, err := toml.Decode(string(data), c)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(outputFormats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of: %v", outputFormats))
	}
	if c.Output.Indent <= 0 {
		errs = append(errs, fmt.Errorf("output.indent must be positive, got %d", c.Output.Indent))
	}
	if !slices.Contains(colorModes, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of: %v", colorModes))
	}

	if c.Decode.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("decode.max_depth must be positive, got %d", c.Decode.MaxDepth))
	}
	if c.Decode.MaxInputBytes <= 0 {
		errs = append(errs, fmt.Errorf("decode.max_input_bytes must be positive, got %d", c.Decode.MaxInputBytes))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SlogLevel parses Level. Names are case-insensitive.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level must be one of: [debug info warn error], got %q", l.Level)
	}
	return level, nil
}

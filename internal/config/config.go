// Package config provides configuration management for snipconv.
// It supports YAML and TOML configuration files, environment variables,
// and sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/wedtex/snipconv/internal/convert"
	"github.com/wedtex/snipconv/internal/util"
)

// Config represents the complete snipconv configuration.
type Config struct {
	// Import configures the WinEdt source files and the normalized output
	Import ImportConfig `yaml:"import" toml:"import"`

	// Convert configures the snippet targets written by convert
	Convert ConvertConfig `yaml:"convert" toml:"convert"`

	// Transform holds transform options applied before conversion.
	// Keys are validated when the pipeline is built, not at load time.
	Transform map[string]any `yaml:"transform,omitempty" toml:"transform,omitempty"`

	// Output configures display preferences
	Output OutputConfig `yaml:"output" toml:"output"`
}

// ImportConfig holds the source and destination paths for importing.
type ImportConfig struct {
	// Strings is the path to the active-string definition file
	Strings string `yaml:"strings,omitempty" toml:"strings,omitempty"`
	// Templates is the path to the template bank file
	Templates string `yaml:"templates,omitempty" toml:"templates,omitempty"`
	// Data is where the normalized snippet file is written and read
	Data string `yaml:"data" toml:"data"`
}

// TargetConfig holds per-shape emission settings.
type TargetConfig struct {
	// Prefix is prepended to every trigger
	Prefix string `yaml:"prefix,omitempty" toml:"prefix,omitempty"`
	// Suffix is appended to every trigger
	Suffix string `yaml:"suffix,omitempty" toml:"suffix,omitempty"`
	// EndTab appends a final tab stop after the body
	EndTab bool `yaml:"endtab" toml:"endtab"`
}

// Options returns the emission options this target configures.
func (tc TargetConfig) Options() convert.Options {
	return convert.Options{
		Prefix: tc.Prefix,
		Suffix: tc.Suffix,
		EndTab: tc.EndTab,
	}
}

// ConvertConfig holds conversion settings.
type ConvertConfig struct {
	// Single applies to one-line snippets
	Single TargetConfig `yaml:"single" toml:"single"`
	// Multi applies to multi-line snippets
	Multi TargetConfig `yaml:"multi" toml:"multi"`
	// Dir is the directory converted files are written to
	Dir string `yaml:"dir" toml:"dir"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Color controls color output (auto, always, never)
	Color string `yaml:"color" toml:"color"`
	// Verbose enables verbose output
	Verbose bool `yaml:"verbose" toml:"verbose"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			Data: util.DefaultDataPath(),
		},
		Convert: ConvertConfig{
			Single: TargetConfig{
				Suffix: "  ",
				EndTab: true,
			},
			Multi: TargetConfig{
				Prefix: ";",
				EndTab: true,
			},
			Dir: ".",
		},
		Output: OutputConfig{
			Color:   "auto",
			Verbose: false,
		},
	}
}

// configFileName is the name of the config file.
const configFileName = "config.yaml"

// FilePath returns the path to the config file.
func FilePath() string {
	return filepath.Join(util.SnipconvConfigPath(), configFileName)
}

// Load loads the configuration from file, merging with defaults.
// If the config file doesn't exist, returns default configuration.
func Load() (*Config, error) {
	configPath := FilePath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := Default()
		cfg.applyEnvironment()
		return cfg, nil
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads configuration from a specific path. The decoder is
// chosen by extension: .toml files use TOML, everything else YAML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is provided by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	return c.SaveToPath(FilePath())
}

// SaveToPath writes the configuration to a specific path.
func (c *Config) SaveToPath(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(path, data, 0o644)
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern SNIPCONV_<SECTION>_<KEY>.
func (c *Config) applyEnvironment() {
	// Import settings
	if v := os.Getenv("SNIPCONV_IMPORT_STRINGS"); v != "" {
		c.Import.Strings = v
	}
	if v := os.Getenv("SNIPCONV_IMPORT_TEMPLATES"); v != "" {
		c.Import.Templates = v
	}
	if v := os.Getenv("SNIPCONV_IMPORT_DATA"); v != "" {
		c.Import.Data = v
	}

	// Convert settings
	if v := os.Getenv("SNIPCONV_CONVERT_DIR"); v != "" {
		c.Convert.Dir = v
	}
	if v := os.Getenv("SNIPCONV_SINGLE_PREFIX"); v != "" {
		c.Convert.Single.Prefix = v
	}
	if v := os.Getenv("SNIPCONV_SINGLE_SUFFIX"); v != "" {
		c.Convert.Single.Suffix = v
	}
	if v := os.Getenv("SNIPCONV_SINGLE_ENDTAB"); v != "" {
		c.Convert.Single.EndTab = parseBool(v)
	}
	if v := os.Getenv("SNIPCONV_MULTI_PREFIX"); v != "" {
		c.Convert.Multi.Prefix = v
	}
	if v := os.Getenv("SNIPCONV_MULTI_SUFFIX"); v != "" {
		c.Convert.Multi.Suffix = v
	}
	if v := os.Getenv("SNIPCONV_MULTI_ENDTAB"); v != "" {
		c.Convert.Multi.EndTab = parseBool(v)
	}

	// Output settings
	if v := os.Getenv("SNIPCONV_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}
	if v := os.Getenv("SNIPCONV_OUTPUT_VERBOSE"); v != "" {
		c.Output.Verbose = parseBool(v)
	}
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// Exists returns true if a config file exists.
func Exists() bool {
	_, err := os.Stat(FilePath())
	return err == nil
}

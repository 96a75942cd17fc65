package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jqk/internal/style"
	"gopkg.in/yaml.v3"
)

// ColorMode controls when output is colorized.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Indentation limits, in spaces per nesting level.
const (
	DefaultIndent = 2
	MaxIndent     = 16
)

// Config represents the complete configuration for jqk
type Config struct {
	Color   ColorMode   `yaml:"color"`
	Palette string      `yaml:"palette"`
	Indent  int         `yaml:"indent"`
	List    bool        `yaml:"list"`
	Paths   PathsConfig `yaml:"paths"`
	Dev     DevConfig   `yaml:"dev"`
}

// PathsConfig controls how key paths are spelled
type PathsConfig struct {
	QuoteKeys bool `yaml:"quote_keys"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// Overrides holds the values given on the command line. Zero values mean
// "not given".
type Overrides struct {
	Palette   string
	List      bool
	QuoteKeys bool
	Debug     bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Color:   ColorAuto,
		Palette: style.DefaultPaletteName,
		Indent:  DefaultIndent,
		List:    false,
		Paths: PathsConfig{
			QuoteKeys: false,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFileFrom(currentDir)
}

var configNames = []string{".jqk.yml", ".jqk.yaml", "jqk.yml", "jqk.yaml"}

func findConfigFileFrom(dir string) string {
	for {
		for _, name := range configNames {
			configPath := filepath.Join(dir, name)
			if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
				return configPath
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			// Reached root directory
			break
		}
		dir = parentDir
	}

	return ""
}

// normalize canonicalizes free-form values: palette names are kebab-case so
// that TokyoNight, tokyo_night and tokyo-night are the same palette.
func (c *Config) normalize() {
	c.Color = ColorMode(strings.ToLower(strings.TrimSpace(string(c.Color))))
	if c.Color == "" {
		c.Color = ColorAuto
	}
	c.Palette = NormalizePaletteName(c.Palette)
	if c.Palette == "" {
		c.Palette = style.DefaultPaletteName
	}
}

// NormalizePaletteName returns the registry spelling of a palette name.
func NormalizePaletteName(name string) string {
	return strcase.ToKebab(strings.TrimSpace(name))
}

// Validate checks that every value is usable
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (use one of: auto, always, never)", c.Color)
	}
	if c.Indent < 1 || c.Indent > MaxIndent {
		return fmt.Errorf("invalid indent %d (must be between 1 and %d)", c.Indent, MaxIndent)
	}
	if _, err := style.LookupPalette(c.Palette); err != nil {
		return err
	}
	return nil
}

// ColorEnabled decides whether output is colorized. force is the
// --color-output flag; terminal reports whether stdout is a terminal.
func (c *Config) ColorEnabled(force, terminal bool) bool {
	if force {
		return true
	}
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return terminal
	}
}

// PaletteOrDefault returns the configured palette, falling back to the
// default palette when the name is unknown.
func (c *Config) PaletteOrDefault() style.Palette {
	p, err := style.LookupPalette(c.Palette)
	if err != nil {
		return style.PaletteDefault
	}
	return p
}

// ApplyOverrides merges command line values into the config. Flags that
// were not given leave the file's values in place.
func (c *Config) ApplyOverrides(o Overrides) error {
	if o.Palette != "" {
		c.Palette = NormalizePaletteName(o.Palette)
		if _, err := style.LookupPalette(c.Palette); err != nil {
			return err
		}
	}
	if o.List {
		c.List = true
	}
	if o.QuoteKeys {
		c.Paths.QuoteKeys = true
	}
	if o.Debug {
		c.Dev.Debug = true
	}
	return nil
}

// LoadConfigWithCLI loads config with CLI argument precedence. When
// configPath is empty the nearest config file is used, if any.
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, string, error) {
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg := NewConfig()
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, configPath, err
		}
		cfg = fileConfig
	}

	if err := cfg.ApplyOverrides(o); err != nil {
		return nil, configPath, err
	}

	return cfg, configPath, nil
}

// Package config provides configuration loading and management for the candv CLI.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/candv/export"
)

// Config represents the complete candv CLI configuration
type Config struct {
	Output     OutputConfig     `yaml:"output"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Watch      WatchConfig      `yaml:"watch"`
	Log        LogConfig        `yaml:"log"`
}

// OutputConfig configures how containers are printed
type OutputConfig struct {
	// Format is the export format (json or yaml)
	Format string `yaml:"format"`
	// Indent is the number of spaces per nesting level (0 = compact JSON).
	// Nil means unset, so an explicit 0 in a file still overrides a lower layer.
	Indent *int `yaml:"indent,omitempty"`
}

// DefaultIndent is used when no layer sets output.indent
const DefaultIndent = 2

// IndentWidth returns the configured indent, or DefaultIndent when unset
func (o OutputConfig) IndentWidth() int {
	if o.Indent == nil {
		return DefaultIndent
	}
	return *o.Indent
}

// SetIndent sets an explicit indent
func (o *OutputConfig) SetIndent(n int) {
	o.Indent = &n
}

// VocabularyConfig configures where vocabulary documents live
type VocabularyConfig struct {
	// Patterns are doublestar globs used when no pattern is given on the command line
	Patterns []string `yaml:"patterns"`
}

// WatchConfig configures check --watch
type WatchConfig struct {
	// Debounce is the quiet period before recompiling after a change
	Debounce time.Duration `yaml:"debounce"`
}

// LogConfig configures the CLI logger
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: string(export.FormatJSON),
		},
		Vocabulary: VocabularyConfig{
			Patterns: []string{"**/*.candv.yaml"},
		},
		Watch: WatchConfig{
			Debounce: 250 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := export.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if indent := c.Output.IndentWidth(); indent < 0 || indent > 8 {
		return fmt.Errorf("output.indent must be between 0 and 8")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// ParseLevel converts a level name into a slog.Level
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero
// values, and for any indent it sets explicitly)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.Indent != nil {
		c.Output.SetIndent(*other.Output.Indent)
	}

	if len(other.Vocabulary.Patterns) > 0 {
		c.Vocabulary.Patterns = other.Vocabulary.Patterns
	}

	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}

// 17 Oct 2026

package convert

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrew-torda/readal/pkg/codec"
)

// Config is everything a conversion needs to know besides its inputs.
// It is read, never written, while converting.
type Config struct {
	Reverse    bool     `yaml:"reverse"`     // write sequences backwards
	KeepHeader bool     `yaml:"keep_header"` // write full header lines instead of names
	Append     bool     `yaml:"append"`      // add to output files, no renaming
	Overwrite  bool     `yaml:"overwrite"`   // when renaming gives up, write over the original
	MaxSuffix  int      `yaml:"max_suffix"`  // largest .N tried when a file exists
	Formats    []string `yaml:"formats"`
	Pattern    string   `yaml:"pattern"` // output template, "" for stdout

	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig has no output formats and writes to standard output.
func DefaultConfig() *Config {
	return &Config{
		MaxSuffix: math.MaxInt32,
		Logger:    slog.Default(),
	}
}

// LoadConfig reads a yaml file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that values make sense together.
func (c *Config) Validate() error {
	if c.MaxSuffix < 0 {
		return fmt.Errorf("max_suffix must be >= 0, got %d", c.MaxSuffix)
	}
	if c.Append && c.Overwrite {
		return errors.New("append and overwrite cannot both be set")
	}
	return nil
}

// logger never returns nil.
func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// saveConfig is the part of the configuration a codec sees.
func (c *Config) saveConfig() *codec.SaveConfig {
	return &codec.SaveConfig{Reverse: c.Reverse, KeepHeader: c.KeepHeader, Logger: c.logger()}
}

// Package config loads roundc settings from an optional TOML file and the
// environment. Command-line flags are applied on top by cmd/roundc.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
)

// Config holds the complete roundc configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Parser ParserConfig `toml:"parser"`
	Output OutputConfig `toml:"output"`
}

// ServerConfig holds settings for the HTTP check service.
type ServerConfig struct {
	Host         string   `toml:"host"`
	Port         int      `toml:"port"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxPrograms  int      `toml:"max_programs"`
}

// ParserConfig holds parser options.
type ParserConfig struct {
	StrictBlocks bool `toml:"strict_blocks"`
}

// OutputConfig holds terminal output settings.
type OutputConfig struct {
	Color bool `toml:"color"`
}

// Duration wraps time.Duration for TOML strings like "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8790,
			ReadTimeout:  Duration{30 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
			MaxPrograms:  1000,
		},
		Output: OutputConfig{Color: true},
	}
}

// Load builds the configuration: defaults, then the TOML file at path (if
// path is non-empty), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		path = os.ExpandEnv(path)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config file not found: %s", path)
		}
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return Config{}, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides settings from ROUNDC_* variables and NO_COLOR.
// env caches the environment on first use, so it is reloaded here to see
// variables set since then.
func (c *Config) applyEnv() {
	env.Load()
	c.Server.Host = env.Str("ROUNDC_HOST", c.Server.Host)
	c.Server.Port = env.Int("ROUNDC_PORT", c.Server.Port)
	c.Server.MaxPrograms = env.Int("ROUNDC_MAX_PROGRAMS", c.Server.MaxPrograms)
	if env.Has("ROUNDC_STRICT") {
		c.Parser.StrictBlocks = env.Bool("ROUNDC_STRICT")
	}
	if env.Has("NO_COLOR") {
		c.Output.Color = false
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Server.MaxPrograms < 0 {
		return fmt.Errorf("server max_programs must not be negative, got %d", c.Server.MaxPrograms)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

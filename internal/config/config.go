package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keychord/internal/input/mode"
)

// Config is the top-level configuration.
type Config struct {
	// DefaultMode is the mode a session starts in.
	DefaultMode string `toml:"default_mode"`

	// MacrosFile is where recorded macros are kept between runs. Empty
	// disables persistence.
	MacrosFile string `toml:"macros_file"`

	Log LogConfig `toml:"log"`

	// Keys holds extra key bindings per mode name.
	Keys map[string][]Remap `toml:"keys"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DefaultMode: mode.ModeNormal,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Keys: make(map[string][]Remap),
	}
}

// DefaultPath returns the default config file location,
// e.g. ~/.config/keychord/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "keychord", "config.toml"), nil
}

// Load reads the file at path over the defaults, applies environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := cfg.decode(path, data); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result.
// Environment variables are not consulted.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode("<input>", data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		perr := &ParseError{Path: source, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	if c.Keys == nil {
		c.Keys = make(map[string][]Remap)
	}
	return nil
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	if !slices.Contains(mode.Names(), c.DefaultMode) {
		return &ValidationError{Path: "default_mode", Message: "unknown mode", Value: c.DefaultMode}
	}
	if err := c.Log.validate(); err != nil {
		return err
	}
	for _, name := range c.keyModes() {
		if !slices.Contains(mode.Names(), name) {
			return &ValidationError{Path: "keys." + name, Message: "unknown mode", Value: name}
		}
		for i, r := range c.Keys[name] {
			if err := r.validate(fmt.Sprintf("keys.%s[%d]", name, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// keyModes returns the modes with remaps, sorted.
func (c *Config) keyModes() []string {
	names := make([]string, 0, len(c.Keys))
	for name := range c.Keys {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

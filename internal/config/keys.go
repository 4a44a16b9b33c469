package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/input/mode"
	"github.com/dshills/keychord/internal/input/vim"
)

// Remap is one user key binding.
type Remap struct {
	// Keys is the key sequence, e.g. "ctrl+h" or "g h".
	Keys string `toml:"keys"`

	// Command names an action of the mode's command table.
	Command string `toml:"command"`

	// Args are static arguments for the action. Motions are given by
	// name, e.g. { motion = "lineEnd" }.
	Args map[string]any `toml:"args,omitempty"`
}

func (r Remap) validate(path string) error {
	if _, err := key.Split(r.Keys); err != nil {
		return &ValidationError{Path: path + ".keys", Message: err.Error(), Value: r.Keys}
	}
	if r.Command == "" {
		return &ValidationError{Path: path + ".command", Message: "missing command", Value: r.Command}
	}
	if _, err := r.ResolveArgs(); err != nil {
		return &ValidationError{Path: path + ".args", Message: err.Error(), Value: r.Args}
	}
	return nil
}

// ResolveArgs converts the TOML arguments into the values commands expect.
func (r Remap) ResolveArgs() (keymap.Args, error) {
	if len(r.Args) == 0 {
		return nil, nil
	}

	args := make(keymap.Args, len(r.Args))
	for name, raw := range r.Args {
		var err error
		switch name {
		case vim.ArgMotion:
			args[name], err = motionValue(raw)
		case vim.ArgCount:
			args[name], err = countValue(raw)
		case vim.ArgCharacter:
			args[name], err = charValue(raw)
		case mode.ArgText:
			s, ok := raw.(string)
			if !ok {
				err = fmt.Errorf("%s: expected string, got %T", name, raw)
			}
			args[name] = s
		case mode.ArgBelow:
			b, ok := raw.(bool)
			if !ok {
				err = fmt.Errorf("%s: expected bool, got %T", name, raw)
			}
			args[name] = b
		default:
			err = fmt.Errorf("%w: %s", ErrUnknownArg, name)
		}
		if err != nil {
			return nil, err
		}
	}
	return args, nil
}

func motionValue(raw any) (vim.Motion, error) {
	name, ok := raw.(string)
	if !ok {
		return vim.Motion{}, fmt.Errorf("motion: expected name, got %T", raw)
	}
	m, ok := vim.MotionByName(name)
	if !ok {
		return vim.Motion{}, fmt.Errorf("motion: unknown motion %q", name)
	}
	return m, nil
}

func countValue(raw any) (int, error) {
	n, ok := raw.(int64)
	if !ok || n < 1 {
		return 0, fmt.Errorf("count: expected a positive integer, got %v", raw)
	}
	return int(n), nil
}

func charValue(raw any) (rune, error) {
	s, ok := raw.(string)
	if !ok || utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("character: expected a single character, got %v", raw)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Session is the part of input.Session remaps are applied through.
type Session interface {
	Map(modeName, keys, action string, args keymap.Args) error
}

// ApplyKeys binds every remap, mode by mode in name order and in file
// order within a mode, so a later remap of the same keys wins.
func (c *Config) ApplyKeys(s Session) error {
	for _, name := range c.keyModes() {
		for i, r := range c.Keys[name] {
			args, err := r.ResolveArgs()
			if err == nil {
				err = s.Map(name, r.Keys, r.Command, args)
			}
			if err != nil {
				return fmt.Errorf("keys.%s[%d]: %w", name, i, err)
			}
		}
	}
	return nil
}

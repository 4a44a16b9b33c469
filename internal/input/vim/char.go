package vim

import (
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

// Character is the {char} special key. It captures exactly one printable
// character, as in "f x" or "r a".
type Character struct{}

// Indicator returns "{char}".
func (Character) Indicator() string { return key.IndicatorChar }

// Match captures the first token. Named and modified keys are not
// characters, so they fail the chord outright.
func (Character) Match(inputs []string) keymap.SpecialResult {
	r, ok := key.PrintableRune(inputs[0])
	if !ok {
		return keymap.Failed()
	}
	return keymap.Success(1, keymap.Args{ArgCharacter: r})
}

// UnmapConflicts keeps every sibling.
func (Character) UnmapConflicts(siblings []string, _ string) []string {
	return siblings
}

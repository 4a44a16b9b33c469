package key

import (
	"fmt"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is an unmodified printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.IsModified() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if any modifier is pressed.
// For character events, Shift alone is not considered modified
// (since Shift changes the character itself).
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Token returns the canonical token for the event.
// Examples: "a", "A", "space", "escape", "ctrl+v", "shift+tab"
func (e Event) Token() string {
	mods := e.Modifiers
	if e.Key == KeyRune {
		// Shift is already folded into the character.
		mods = mods.Without(ModShift)
		r := e.Rune
		if r == ' ' {
			return mods.prefix() + KeySpace.String()
		}
		if mods.Has(ModCtrl) {
			r = unicode.ToLower(r)
		}
		return mods.prefix() + string(r)
	}
	return mods.prefix() + e.Key.String()
}

// String returns the token; it exists so events print naturally.
func (e Event) String() string {
	return e.Token()
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %d}", e.Key, e.Rune, e.Modifiers)
}

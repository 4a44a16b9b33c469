package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySequence = errors.New("empty key sequence")
	ErrInvalidToken  = errors.New("invalid key token")
)

// Indicator tokens understood by the built-in special keys.
const (
	IndicatorCount      = "{N}"
	IndicatorChar       = "{char}"
	IndicatorMotion     = "{motion}"
	IndicatorTextObject = "{textObject}"
)

// IsIndicator reports whether tok names a class of inputs rather than a
// single keystroke. Single braces are ordinary characters.
func IsIndicator(tok string) bool {
	return len(tok) > 2 && strings.HasPrefix(tok, "{") && strings.HasSuffix(tok, "}")
}

// Split tokenizes a mapping string on whitespace.
func Split(joined string) ([]string, error) {
	tokens := strings.Fields(joined)
	if len(tokens) == 0 {
		return nil, ErrEmptySequence
	}
	return tokens, nil
}

// MustSplit tokenizes a mapping string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustSplit(joined string) []string {
	tokens, err := Split(joined)
	if err != nil {
		panic("invalid key sequence: " + joined + ": " + err.Error())
	}
	return tokens
}

// Join is the inverse of Split.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

// ParseToken parses a literal token into the Event that produces it.
// Indicators do not correspond to any event and are rejected.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Named keys: "escape", "Enter", "del", "space"
//   - With modifiers: "ctrl+v", "Ctrl+Shift+Tab", "alt+x"
func ParseToken(tok string) (Event, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return Event{}, fmt.Errorf("%w: empty", ErrInvalidToken)
	}
	if IsIndicator(tok) {
		return Event{}, fmt.Errorf("%w: %q is an indicator", ErrInvalidToken, tok)
	}

	// "+" alone, or a trailing "+" as in "ctrl++", is the plus character.
	var mods Modifier
	rest := tok
	for {
		i := strings.IndexByte(rest, '+')
		if i <= 0 || i == len(rest)-1 {
			break
		}
		mod := ModifierFromName(rest[:i])
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidToken, rest[:i], tok)
		}
		mods = mods.With(mod)
		rest = rest[i+1:]
	}

	if utf8.RuneCountInString(rest) == 1 {
		r, _ := utf8.DecodeRuneInString(rest)
		return NewRuneEvent(r, mods), nil
	}

	k := KeyFromName(rest)
	if k == KeyNone {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidToken, rest)
	}
	if k == KeySpace {
		return NewRuneEvent(' ', mods), nil
	}
	return NewSpecialEvent(k, mods), nil
}

// Canonical returns the canonical spelling of a token so that aliases such
// as "Esc" and "escape" land on the same trie edge. Indicators and tokens
// that fail to parse are returned unchanged.
func Canonical(tok string) string {
	if IsIndicator(tok) {
		return tok
	}
	ev, err := ParseToken(tok)
	if err != nil {
		return tok
	}
	return ev.Token()
}

// PrintableRune returns the character an unmodified literal token types,
// e.g. 'a' for "a" and ' ' for "space".
func PrintableRune(tok string) (rune, bool) {
	if IsIndicator(tok) {
		return 0, false
	}
	ev, err := ParseToken(tok)
	if err != nil || !ev.IsChar() {
		return 0, false
	}
	return ev.Rune, true
}

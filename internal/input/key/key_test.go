package key

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventToken(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewRuneEvent('d', ModNone), "d"},
		{NewRuneEvent('D', ModShift), "D"},
		{NewRuneEvent('3', ModNone), "3"},
		{NewRuneEvent('{', ModNone), "{"},
		{NewRuneEvent(' ', ModNone), "space"},
		{NewRuneEvent('v', ModCtrl), "ctrl+v"},
		{NewRuneEvent('R', ModCtrl), "ctrl+r"},
		{NewRuneEvent('x', ModAlt), "alt+x"},
		{NewSpecialEvent(KeyEscape, ModNone), "escape"},
		{NewSpecialEvent(KeyDelete, ModNone), "delete"},
		{NewSpecialEvent(KeyTab, ModShift), "shift+tab"},
		{NewSpecialEvent(KeyF5, ModCtrl), "ctrl+f5"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.event.Token(), "%#v", tt.event)
	}
}

func TestParseTokenRoundTrip(t *testing.T) {
	tokens := []string{"a", "Z", "0", "<", "}", "+", "space", "escape", "enter", "delete", "ctrl+v", "ctrl++", "shift+tab", "alt+up"}

	for _, tok := range tokens {
		ev, err := ParseToken(tok)
		require.NoError(t, err, tok)
		assert.Equal(t, tok, ev.Token(), "round trip of %q", tok)
	}
}

func TestParseTokenErrors(t *testing.T) {
	for _, tok := range []string{"", "{N}", "{motion}", "hyper+x", "notakey"} {
		_, err := ParseToken(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestCanonical(t *testing.T) {
	tests := map[string]string{
		"Esc":          "escape",
		"<":            "<",
		"Ctrl+V":       "ctrl+v",
		"del":          "delete",
		"{N}":          "{N}",
		"{textObject}": "{textObject}",
		"bogus-name":   "bogus-name",
	}
	for in, want := range tests {
		assert.Equal(t, want, Canonical(in), "Canonical(%q)", in)
	}
}

func TestSplit(t *testing.T) {
	tokens, err := Split("  d   {motion} ")
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "{motion}"}, tokens)
	assert.Equal(t, "d {motion}", Join(tokens))

	_, err = Split("   ")
	assert.ErrorIs(t, err, ErrEmptySequence)

	assert.Panics(t, func() { MustSplit("") })
}

func TestIsIndicator(t *testing.T) {
	assert.True(t, IsIndicator(IndicatorCount))
	assert.True(t, IsIndicator(IndicatorChar))
	assert.True(t, IsIndicator(IndicatorMotion))
	assert.True(t, IsIndicator(IndicatorTextObject))
	assert.False(t, IsIndicator("{"))
	assert.False(t, IsIndicator("}"))
	assert.False(t, IsIndicator("{}"))
	assert.False(t, IsIndicator("d"))
}

func TestPrintableRune(t *testing.T) {
	r, ok := PrintableRune("x")
	assert.True(t, ok)
	assert.Equal(t, 'x', r)

	r, ok = PrintableRune("space")
	assert.True(t, ok)
	assert.Equal(t, ' ', r)

	for _, tok := range []string{"escape", "ctrl+x", "{char}", "enter"} {
		_, ok := PrintableRune(tok)
		assert.False(t, ok, tok)
	}
}

func TestKeyFromName(t *testing.T) {
	assert.Equal(t, KeyEscape, KeyFromName("ESC"))
	assert.Equal(t, KeyPageDown, KeyFromName("pgdn"))
	assert.Equal(t, KeyF12, KeyFromName("f12"))
	assert.Equal(t, KeyNone, KeyFromName("nope"))
	assert.Equal(t, "key(999)", Key(999).String())
}

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), "d"},
		{"digit", tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone), "3"},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "space"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "escape"},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), "delete"},
		{"ctrl+v", tcell.NewEventKey(tcell.KeyCtrlV, 0, tcell.ModCtrl), "ctrl+v"},
		{"ctrl+r", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), "ctrl+r"},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "left"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromTcell(tt.ev).Token())
		})
	}
}

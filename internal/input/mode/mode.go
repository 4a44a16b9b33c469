package mode

import (
	"context"
	"errors"

	"github.com/dshills/keychord/internal/input/keymap"
)

// Errors returned by modes and the manager.
var (
	// ErrUnknownMode indicates a mode name that is not registered.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrUnknownAction indicates an action name a mode does not define.
	ErrUnknownAction = errors.New("unknown action")

	// ErrMissingArg indicates a command invoked without an argument its
	// binding should have produced.
	ErrMissingArg = errors.New("missing command argument")
)

// Mode defines the interface for editor modes.
// Each mode owns one command table and the keystroke buffer pending against
// it. Only the active mode receives keys.
type Mode interface {
	// Name returns the unique mode identifier (e.g., "normal", "insert").
	Name() string

	// DisplayName returns a human-readable name for the status line.
	DisplayName() string

	// CursorStyle returns the cursor style for this mode.
	CursorStyle() CursorStyle

	// Enter is called when entering this mode.
	// The context provides information about the transition.
	Enter(ctx *Context) error

	// Exit is called when leaving this mode.
	// The context provides information about the transition.
	Exit(ctx *Context) error

	// Feed appends one token to the pending buffer and matches it against
	// the command table. On success the buffer is cleared and the command
	// runs before Feed returns; on failure the buffer is discarded.
	Feed(ctx context.Context, tok string) (keymap.MatchKind, error)

	// Pending returns the buffered tokens of an incomplete chord.
	Pending() []string

	// Reset discards the pending buffer.
	Reset()

	// Bindings lists the command table.
	Bindings() []*keymap.Binding[Action]
}

// Context provides information during mode transitions.
type Context struct {
	// PreviousMode is the mode being transitioned from (for Enter).
	PreviousMode string

	// NextMode is the mode being transitioned to (for Exit).
	NextMode string
}

// NewContext creates a new mode context.
func NewContext() *Context {
	return &Context{}
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor.
	CursorUnderline

	// CursorHidden hides the cursor.
	CursorHidden
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	case CursorHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// SelectionMode defines the type of selection.
type SelectionMode uint8

const (
	// SelectChar is character-wise selection (visual mode).
	SelectChar SelectionMode = iota

	// SelectLine is line-wise selection (visual line mode).
	SelectLine

	// SelectBlock is block/column selection (visual block mode).
	SelectBlock
)

// String returns a human-readable selection mode name.
func (s SelectionMode) String() string {
	switch s {
	case SelectChar:
		return "char"
	case SelectLine:
		return "line"
	case SelectBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Standard mode names.
const (
	ModeNormal      = "normal"
	ModeInsert      = "insert"
	ModeVisual      = "visual"
	ModeVisualLine  = "visual-line"
	ModeVisualBlock = "visual-block"
)

// Names returns the standard mode names.
func Names() []string {
	return []string{ModeNormal, ModeInsert, ModeVisual, ModeVisualLine, ModeVisualBlock}
}

package mode

import (
	"context"

	"github.com/dshills/keychord/internal/input/vim"
)

// Editor is implemented by the host editor. Commands drive the host only
// through this interface; cursor math, text editing and history live on the
// other side of it.
//
// Counts passed to the editor are always >= 1.
type Editor interface {
	// MoveCursor moves every cursor by the motion, count times.
	MoveCursor(ctx context.Context, m vim.Motion, count int) error

	// ExtendSelection moves the active end of every selection.
	ExtendSelection(ctx context.Context, m vim.Motion, count int) error

	// SelectTextObject selects the text object around every cursor.
	SelectTextObject(ctx context.Context, obj vim.TextObject) error

	// Operate applies an operator to a range.
	Operate(ctx context.Context, op vim.Operator, t Target) error

	// DeleteSelectionsOrRight deletes the selections, or count characters
	// right of the cursors where nothing is selected.
	DeleteSelectionsOrRight(ctx context.Context, count int) error

	// DeleteSelectionsOrLeft is DeleteSelectionsOrRight towards the left.
	DeleteSelectionsOrLeft(ctx context.Context, count int) error

	// DeleteSelections deletes the selections only.
	DeleteSelections(ctx context.Context) error

	// OpenLine inserts an empty line below or above the cursor line and
	// moves the cursor there.
	OpenLine(ctx context.Context, below bool) error

	JoinLines(ctx context.Context, count int) error
	Undo(ctx context.Context, count int) error
	Redo(ctx context.Context, count int) error

	// ReplaceChar replaces count characters under the cursor with r.
	ReplaceChar(ctx context.Context, r rune, count int) error

	InsertText(ctx context.Context, text string) error
	HideSuggestion(ctx context.Context) error
}

// TargetKind says what an operator applies to.
type TargetKind uint8

const (
	// TargetMotion is the range from the cursor to where a motion lands.
	TargetMotion TargetKind = iota

	// TargetTextObject is a text object around the cursor.
	TargetTextObject

	// TargetLines is Count whole lines from the cursor line ("d d").
	TargetLines

	// TargetSelection is the current selections (visual modes).
	TargetSelection
)

// String returns a string representation of the kind.
func (k TargetKind) String() string {
	switch k {
	case TargetMotion:
		return "motion"
	case TargetTextObject:
		return "textObject"
	case TargetLines:
		return "lines"
	case TargetSelection:
		return "selection"
	default:
		return "unknown"
	}
}

// Target is the range an operator applies to.
type Target struct {
	Kind TargetKind

	// Motion is set for TargetMotion.
	Motion vim.Motion

	// TextObject is set for TargetTextObject.
	TextObject vim.TextObject

	// Count repeats the motion, or is the number of lines. Always >= 1.
	Count int
}

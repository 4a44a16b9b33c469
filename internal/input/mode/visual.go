package mode

import (
	"fmt"

	"github.com/dshills/keychord/internal/input/vim"
)

// visualKinds ties each visual mode to its selection granularity and the
// key that enters it from normal mode.
var visualKinds = []struct {
	name    string
	display string
	sel     SelectionMode
	key     string
	action  string
}{
	{ModeVisual, "VISUAL", SelectChar, "v", "mode.visual"},
	{ModeVisualLine, "VISUAL LINE", SelectLine, "V", "mode.visualLine"},
	{ModeVisualBlock, "VISUAL BLOCK", SelectBlock, "ctrl+v", "mode.visualBlock"},
}

// NewVisualMode creates Vim's visual mode (character-wise selection).
func NewVisualMode(ed Editor, sw Switcher) (*TableMode, error) {
	return newVisual(ed, sw, SelectChar)
}

// NewVisualLineMode creates Vim's visual line mode (line-wise selection).
func NewVisualLineMode(ed Editor, sw Switcher) (*TableMode, error) {
	return newVisual(ed, sw, SelectLine)
}

// NewVisualBlockMode creates Vim's visual block mode (column selection).
func NewVisualBlockMode(ed Editor, sw Switcher) (*TableMode, error) {
	return newVisual(ed, sw, SelectBlock)
}

// newVisual builds one visual mode. Motions extend the selection, text
// objects select, operators apply to the selection and leave the mode.
//
// Counts are typed inside motions ("3 w"): {textObject} sits at the root,
// which rules out a root {N}.
func newVisual(ed Editor, sw Switcher, sel SelectionMode) (*TableMode, error) {
	toNormal := ToMode(sw, ModeNormal)

	actions := map[string]Command{
		"selection.extend":     extendSelection(ed),
		"selection.textObject": selectTextObject(ed),
		"mode.normal":          toNormal,
		"edit.joinLines":       Sequence(joinLines(ed), toNormal),
	}

	rows := []row{
		{keys: "{motion}", action: "selection.extend"},
		{keys: "{textObject}", action: "selection.textObject"},
		{keys: "escape", action: "mode.normal"},
		{keys: "J", action: "edit.joinLines"},
	}

	for _, op := range vim.Operators() {
		name := "operator." + op.Name + "." + TargetSelection.String()
		next := toNormal
		if op.EntersInsert {
			next = ToMode(sw, ModeInsert)
		}
		actions[name] = Sequence(operate(ed, op, TargetSelection), next)
		rows = append(rows, row{keys: op.Key, action: name})
	}
	rows = append(rows,
		row{keys: "x", action: "operator.delete.selection"},
		row{keys: "delete", action: "operator.delete.selection"},
		row{keys: "s", action: "operator.change.selection"},
	)

	own := -1
	for i, k := range visualKinds {
		if k.sel == sel {
			own = i
			continue
		}
		// The key of another visual mode switches straight to it.
		actions[k.action] = ToMode(sw, k.name)
		rows = append(rows, row{keys: k.key, action: k.action})
	}
	if own < 0 {
		return nil, fmt.Errorf("%w: selection %s", ErrUnknownMode, sel)
	}
	// The key of the current visual mode leaves it.
	kind := visualKinds[own]
	rows = append(rows, row{keys: kind.key, action: "mode.normal"})

	return newTableMode(kind.name, kind.display, CursorBlock, actions, rows)
}

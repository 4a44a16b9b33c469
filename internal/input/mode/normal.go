package mode

import (
	"context"
	"maps"

	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/input/vim"
)

// NewNormalMode creates Vim's normal mode.
// In normal mode, keys are interpreted as commands rather than text input.
// Mode changes go through sw.
func NewNormalMode(ed Editor, sw Switcher) (*TableMode, error) {
	toInsert := ToMode(sw, ModeInsert)

	actions := map[string]Command{
		"cursor.move":            moveCursor(ed),
		"mode.insert":            toInsert,
		"mode.insertAfterMotion": Sequence(moveCursor(ed), toInsert),
		"mode.visual":            ToMode(sw, ModeVisual),
		"mode.visualLine":        ToMode(sw, ModeVisualLine),
		"mode.visualBlock":       ToMode(sw, ModeVisualBlock),
		"edit.openLine":          Sequence(openLine(ed), toInsert),
		"edit.substitute":        Sequence(deleteRight(ed), toInsert),
		"edit.deleteRight":       Sequence(deleteRight(ed), hideSuggestion(ed)),
		"edit.deleteLeft":        Sequence(deleteLeft(ed), hideSuggestion(ed)),
		"edit.joinLines":         joinLines(ed),
		"edit.replaceChar":       replaceChar(ed),
		"history.undo":           undo(ed),
		"history.redo":           redo(ed),
		"noop":                   Noop,
		"edit.changeLine": Sequence(
			deleteSelections(ed),
			withArgs(moveCursor(ed), keymap.Args{vim.ArgMotion: vim.MotionFirstNonBlank}),
			withArgs(operate(ed, vim.OpDelete, TargetMotion), keymap.Args{vim.ArgMotion: vim.MotionLineEnd}),
			toInsert,
		),
	}

	var rows []row
	for _, op := range vim.Operators() {
		rows = append(rows, operatorRows(ed, sw, op, actions)...)
	}

	rows = append(rows,
		row{keys: "{motion}", action: "cursor.move"},
		row{keys: "{N} {motion}", action: "cursor.move"},

		row{keys: "i", action: "mode.insert"},
		row{keys: "I", action: "mode.insertAfterMotion", args: keymap.Args{vim.ArgMotion: vim.MotionFirstNonBlank}},
		row{keys: "a", action: "mode.insertAfterMotion", args: keymap.Args{vim.ArgMotion: vim.MotionRight}},
		row{keys: "A", action: "mode.insertAfterMotion", args: keymap.Args{vim.ArgMotion: vim.MotionLineEnd}},
		row{keys: "v", action: "mode.visual"},
		row{keys: "ctrl+v", action: "mode.visualBlock"},
		row{keys: "V", action: "mode.visualLine"},

		row{keys: "o", action: "edit.openLine", args: keymap.Args{ArgBelow: true}},
		row{keys: "O", action: "edit.openLine", args: keymap.Args{ArgBelow: false}},

		row{keys: "s", action: "edit.substitute"},
		row{keys: "{N} s", action: "edit.substitute"},

		row{keys: "X", action: "edit.deleteLeft"},
		row{keys: "{N} X", action: "edit.deleteLeft"},
		row{keys: "x", action: "edit.deleteRight"},
		row{keys: "{N} x", action: "edit.deleteRight"},
		row{keys: "delete", action: "edit.deleteRight"},
		row{keys: "D", action: "operator.delete.motion", args: keymap.Args{vim.ArgMotion: vim.MotionLineEnd}},
		row{keys: "C", action: "operator.change.motion", args: keymap.Args{vim.ArgMotion: vim.MotionLineEnd}},
		row{keys: "c c", action: "edit.changeLine"},
		row{keys: "J", action: "edit.joinLines"},
		row{keys: "{N} J", action: "edit.joinLines"},
		row{keys: "r {char}", action: "edit.replaceChar"},
		row{keys: "{N} r {char}", action: "edit.replaceChar"},

		row{keys: "u", action: "history.undo"},
		row{keys: "{N} u", action: "history.undo"},
		row{keys: "ctrl+r", action: "history.redo"},
		row{keys: "{N} ctrl+r", action: "history.redo"},

		row{keys: "escape", action: "noop"},
	)

	return newTableMode(ModeNormal, "NORMAL", CursorBlock, actions, rows)
}

// operatorRows defines the actions of op in actions and returns its rows:
// the doubled key for whole lines, then op followed by a motion or a text
// object, each with and without a leading count.
func operatorRows(ed Editor, sw Switcher, op vim.Operator, actions map[string]Command) []row {
	var rows []row
	targets := []struct {
		kind TargetKind
		keys string
	}{
		{TargetLines, op.LinewiseKeys()},
		{TargetMotion, op.Key + " {motion}"},
		{TargetTextObject, op.Key + " {textObject}"},
	}
	for _, t := range targets {
		name := "operator." + op.Name + "." + t.kind.String()
		run := operate(ed, op, t.kind)
		if op.EntersInsert {
			run = Sequence(run, ToMode(sw, ModeInsert))
		}
		actions[name] = run
		rows = append(rows,
			row{keys: t.keys, action: name},
			row{keys: "{N} " + t.keys, action: name},
		)
	}
	return rows
}

// withArgs runs cmd with extra merged over its arguments.
func withArgs(cmd Command, extra keymap.Args) Command {
	return func(ctx context.Context, args keymap.Args) error {
		merged := args.Clone()
		maps.Copy(merged, extra)
		return cmd(ctx, merged)
	}
}

package mode

import (
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/input/vim"
)

// NewInsertMode creates Vim's insert mode.
// In insert mode, printable keys are typed as text; other unmapped keys
// are dropped.
func NewInsertMode(ed Editor, sw Switcher) (*TableMode, error) {
	actions := map[string]Command{
		"mode.normal":      Sequence(hideSuggestion(ed), ToMode(sw, ModeNormal)),
		"cursor.move":      moveCursor(ed),
		"edit.insertText":  insertText(ed),
		"edit.deleteLeft":  deleteLeft(ed),
		"edit.deleteRight": deleteRight(ed),
	}

	rows := []row{
		{keys: "escape", action: "mode.normal"},
		{keys: "left", action: "cursor.move", args: keymap.Args{vim.ArgMotion: vim.MotionLeft}},
		{keys: "right", action: "cursor.move", args: keymap.Args{vim.ArgMotion: vim.MotionRight}},
		{keys: "up", action: "cursor.move", args: keymap.Args{vim.ArgMotion: vim.MotionUp}},
		{keys: "down", action: "cursor.move", args: keymap.Args{vim.ArgMotion: vim.MotionDown}},
		{keys: "home", action: "cursor.move", args: keymap.Args{vim.ArgMotion: vim.MotionLineStart}},
		{keys: "end", action: "cursor.move", args: keymap.Args{vim.ArgMotion: vim.MotionLineEnd}},
		{keys: "enter", action: "edit.insertText", args: keymap.Args{ArgText: "\n"}},
		{keys: "tab", action: "edit.insertText", args: keymap.Args{ArgText: "\t"}},
		{keys: "backspace", action: "edit.deleteLeft"},
		{keys: "delete", action: "edit.deleteRight"},
		{keys: "{char}", action: "edit.insertText"},
	}

	return newTableMode(ModeInsert, "INSERT", CursorBar, actions, rows)
}

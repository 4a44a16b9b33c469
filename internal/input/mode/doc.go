// Package mode provides the modal command tables of keychord.
//
// The mode system implements Vim-style modal editing with:
//   - Normal mode: Navigation and commands
//   - Insert mode: Text input
//   - Visual mode: Character-wise selection
//   - Visual Line mode: Line-wise selection
//   - Visual Block mode: Block/column selection
//
// # Architecture
//
// Each mode is a TableMode: a flat list of (keys, action, args) rows fed
// into its own keymap.Mapper at construction, plus the buffer of tokens
// typed towards the next command. Modes own no matching logic.
//
// Actions are named Commands. A Command receives the merged arguments of
// its binding and reaches the host editor through the Editor interface.
// Composite commands are built with Sequence:
//
//	// "A": move to the end of the line, then enter insert mode
//	Sequence(moveCursor(ed), ToMode(sw, ModeInsert))
//
// # Mode Lifecycle
//
//	┌─────────┐    Enter()    ┌─────────┐
//	│ Mode A  │ ───────────▶ │ Mode B  │
//	└─────────┘              └─────────┘
//	     │                        │
//	     │  Exit()                │
//	     ◀────────────────────────┘
//
// When switching modes:
// 1. Current mode's Exit() is called and its pending chord dropped
// 2. New mode's Enter() is called
// 3. Mode change callbacks are notified
//
// # Remapping
//
// TableMode.Map binds further key sequences to a mode's named actions:
//
//	normal.Map("ctrl+h", "cursor.move", keymap.Args{vim.ArgMotion: vim.MotionLineStart})
package mode

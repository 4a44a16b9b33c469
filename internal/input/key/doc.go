// Package key provides key events and key tokens for the input system.
//
// A token is the atom the key tries are keyed on. It is an opaque string
// naming one keystroke or chord step:
//
//   - Printable characters: "a", "A", "3", "<", "{"
//   - Named keys: "escape", "enter", "tab", "backspace", "delete", "space"
//   - With modifiers: "ctrl+v", "ctrl+r", "alt+x", "shift+tab"
//   - Indicators: "{N}", "{char}", "{motion}", "{textObject}"
//
// Indicators never come from a keyboard. They only appear in mapping strings
// where they stand for a whole class of inputs.
//
// # Mapping Strings
//
// Mapping strings are tokens separated by whitespace. Order matters:
// "d d" is a two-keystroke chord, "{N} d {motion}" is a count, then d,
// then any motion.
package key

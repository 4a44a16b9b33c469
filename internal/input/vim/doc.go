// Package vim provides the built-in special keys of the matching engine.
//
// Each special key is a wildcard class with an indicator token:
//
//   - {N}: a repeat count, a run of digits not starting with 0
//   - {char}: exactly one printable character, e.g. after f or r
//   - {motion}: any motion of the motion sub-grammar, e.g. w, 3 e, f x, g g
//   - {textObject}: any text object, e.g. a (, i ", a B
//
// Motions and text objects are themselves small keymap.Mappers, so a motion
// may carry its own count and captured character.
//
// # Arguments
//
// A successful special key contributes one argument under a stable name:
//
//	count      int         ArgCount
//	character  rune        ArgCharacter
//	motion     Motion      ArgMotion
//	textObject TextObject  ArgTextObject
//
// Use CountArg, CharacterArg, MotionArg and TextObjectArg to read them.
//
// # Priority
//
// DefaultSpecials returns the special keys in the order the mapper tries
// them: Count, Character, MotionKey, TextObjectKey. The text-object key also
// yields to counts and characters at registration time, see
// TextObjectKey.UnmapConflicts.
package vim

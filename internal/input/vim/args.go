package vim

import "github.com/dshills/keychord/internal/input/keymap"

// Argument names contributed by the built-in special keys.
const (
	ArgCount      = "count"
	ArgCharacter  = "character"
	ArgMotion     = "motion"
	ArgTextObject = "textObject"
)

// CountArg returns the matched count, or 0 if none was typed.
func CountArg(args keymap.Args) int {
	n, _ := args.Int(ArgCount)
	return n
}

// CharacterArg returns the captured character.
func CharacterArg(args keymap.Args) (rune, bool) {
	r, ok := args[ArgCharacter].(rune)
	return r, ok
}

// MotionArg returns the matched motion.
func MotionArg(args keymap.Args) (Motion, bool) {
	m, ok := args[ArgMotion].(Motion)
	return m, ok
}

// TextObjectArg returns the matched text object.
func TextObjectArg(args keymap.Args) (TextObject, bool) {
	t, ok := args[ArgTextObject].(TextObject)
	return t, ok
}

// DefaultSpecials returns the built-in special keys in priority order.
func DefaultSpecials() []keymap.SpecialKey {
	return []keymap.SpecialKey{
		Count{},
		Character{},
		NewMotionKey(),
		NewTextObjectKey(),
	}
}

package keymap

import "maps"

// Args holds the arguments handed to a matched target. Static arguments come
// from the binding, dynamic ones from special keys.
type Args map[string]any

// Clone returns a shallow copy. A nil Args clones to an empty one.
func (a Args) Clone() Args {
	out := make(Args, len(a))
	maps.Copy(out, a)
	return out
}

// Int returns an int argument.
func (a Args) Int(name string) (int, bool) {
	v, ok := a[name].(int)
	return v, ok
}

// String returns a string argument.
func (a Args) String(name string) (string, bool) {
	v, ok := a[name].(string)
	return v, ok
}

// merge copies src into a, overwriting existing keys.
func (a Args) merge(src Args) {
	maps.Copy(a, src)
}

// Package keymap is the key-sequence matching engine.
//
// A Mapper owns a trie keyed on key tokens. Each edge is either a literal
// keystroke ("d", "ctrl+v") or a special-key indicator ("{N}", "{motion}")
// that stands for a whole class of inputs. The leaves are Bindings that carry
// a target (a command, a motion generator, ...) and static arguments.
//
// # Matching
//
// Match resolves a buffer of tokens from the root:
//
//   - the literal child is tried first;
//   - otherwise every special key with a child at the node is asked, in the
//     mapper's priority order, whether it claims the remaining input;
//   - the first answer other than NotApplicable decides the step.
//
// The result is MatchSuccess (a binding was reached), MatchWaiting (the
// buffer is a valid prefix) or MatchFailed (nothing is reachable no matter
// what follows). Callers discard the whole buffer on success or failure.
//
// # Arguments
//
// Special keys contribute dynamic arguments (a count, a captured character,
// a motion). They are merged into one Args value; static arguments from the
// binding win when both set the same key.
//
// # Conflicts
//
// Every special key sees every token as it is registered and decides which
// of the existing siblings survive. This is how a text-object wildcard yields
// to a count under the same parent, or removes it.
//
// # Usage
//
//	m := keymap.NewMapper[Command](vim.Count{}, vim.NewMotionKey())
//	m.MustMap("d d", deleteLine, nil)
//	m.MustMap("d {motion}", deleteByMotion, nil)
//
//	res := m.Match([]string{"d", "w"})
//	if res.Kind == keymap.MatchSuccess {
//	    res.Binding.Target(ctx, res.Args)
//	}
package keymap

// Package input turns keystrokes into editor commands.
//
// A Session owns the modes of one editing session and feeds every
// keystroke to the active one. The mode matches its pending chord against
// its command table and, once a binding is complete, runs the command
// against the host editor:
//
//	s, err := input.NewSession(editor, input.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	for ev := range keyEvents {
//	    if _, err := s.HandleKey(ctx, ev); err != nil {
//	        logger.WithError(err).Warn("command failed")
//	    }
//	}
//
// # Subpackages
//
//   - key: key events and the token notation of command tables
//   - keymap: the token trie, special keys and matching
//   - vim: counts, characters, motions, text objects and operators
//   - mode: the command tables of normal, insert and the visual modes
//   - macro: recording keystrokes into registers and replaying them
//
// # Hooks
//
// Hooks see every keystroke before and after it is handled. A PreKey hook
// may rewrite the event or swallow it. Metrics count keystrokes per match
// result, command errors and mode changes.
package input

// Package macro records key tokens into named registers and replays them.
//
// A macro is the list of canonical key tokens typed while recording, the
// same strings a mode's command table matches against. Replaying feeds the
// tokens back through a handler, so a macro behaves exactly like the keys
// that produced it, pending chords included.
//
// # Registers
//
// Registers are named by a lowercase letter (a-z) or a digit (0-9). An
// uppercase letter names the lowercase register and appends to it instead
// of replacing it, as in Vim:
//
//	rec := macro.NewRecorder()
//	rec.Start('a')
//	rec.Record("d")
//	rec.Record("w")
//	rec.Stop() // register a holds "d w"
//
//	player := macro.NewPlayer(rec)
//	player.Play(ctx, 'a', 3, session.HandleToken)
//
// Registers can be saved to and loaded from a YAML file with Save and Load.
package macro

// Package fuzzy ranks names against a loosely typed query.
//
// A name matches when every rune of the query appears in it in order.
// Matches are scored higher for consecutive runs, for runes at word
// boundaries ("cursor.move" has boundaries at c and m) and for a common
// prefix:
//
//	fuzzy.Rank("curmv", []string{"cursor.move", "mode.visual"}, 3)
//	// [{Text: "cursor.move", ...}]
//
// The mode package uses it to suggest action names when a key remap names
// an action its table does not define.
package fuzzy

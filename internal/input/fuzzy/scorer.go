package fuzzy

import "unicode"

// Scorer calculates match scores.
type Scorer interface {
	// Score rates one match. queryRunes and textRunes are normalized,
	// originalRunes keeps the case of the text for boundary detection and
	// matches holds the matched indices into textRunes.
	Score(queryRunes, originalRunes, textRunes []rune, matches []int) int
}

// DefaultScorer favors consecutive runs, word boundaries and prefixes.
type DefaultScorer struct{}

// Score implements Scorer. Any match scores at least 1.
func (DefaultScorer) Score(queryRunes, originalRunes, textRunes []rune, matches []int) int {
	if len(matches) == 0 {
		return 0
	}

	score := 100
	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			score += 20
		}
	}
	for _, idx := range matches {
		if isWordBoundary(originalRunes, idx) {
			score += 15
		}
	}

	if gap := matches[len(matches)-1] - matches[0] - len(matches) + 1; gap > 0 {
		score -= gap * 2
	}
	score -= matches[0]

	if n := len(textRunes); n < 20 {
		score += 20 - n
	}
	if hasPrefix(textRunes, queryRunes) {
		score += 50
	}

	return max(score, 1)
}

func hasPrefix(text, prefix []rune) bool {
	if len(text) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if text[i] != r {
			return false
		}
	}
	return true
}

// isWordBoundary reports whether runes[idx] starts a word: the first rune,
// a rune after a separator, or an upper-case rune after a lower-case one.
func isWordBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}
	prev, cur := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}

package fuzzy

import (
	"sort"
	"strings"
)

// Result is one ranked name.
type Result struct {
	// Text is the matched name.
	Text string

	// Score is the match score (higher is better).
	Score int

	// Matches holds the rune indices of the matched query runes in Text.
	Matches []int
}

// Matcher ranks candidate names against queries.
type Matcher struct {
	scorer  Scorer
	options Options
}

// Options configures the matcher behavior.
type Options struct {
	// MinScore is the score a match must exceed to be returned.
	MinScore int

	// CaseSensitive enables case-sensitive matching.
	CaseSensitive bool
}

// NewMatcher creates a matcher using DefaultScorer.
func NewMatcher(opts Options) *Matcher {
	return &Matcher{scorer: DefaultScorer{}, options: opts}
}

// SetScorer replaces the scoring algorithm.
func (m *Matcher) SetScorer(s Scorer) {
	m.scorer = s
}

// Match returns the candidates matching query, best first, at most limit
// of them when limit is positive. Equal scores sort by name. An empty
// query matches nothing.
func (m *Matcher) Match(query string, candidates []string, limit int) []Result {
	query = strings.TrimSpace(query)
	if !m.options.CaseSensitive {
		query = strings.ToLower(query)
	}
	if query == "" {
		return nil
	}
	queryRunes := []rune(query)

	var results []Result
	for _, text := range candidates {
		score, matches := m.matchOne(queryRunes, text)
		if matches != nil && score > m.options.MinScore {
			results = append(results, Result{Text: text, Score: score, Matches: matches})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Text < results[j].Text
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// matchOne scans text left to right for the query runes. It returns nil
// matches when some query rune is missing.
func (m *Matcher) matchOne(queryRunes []rune, text string) (int, []int) {
	if text == "" {
		return 0, nil
	}
	originalRunes := []rune(text)
	textRunes := originalRunes
	if !m.options.CaseSensitive {
		textRunes = []rune(strings.ToLower(text))
	}

	matches := make([]int, 0, len(queryRunes))
	qi := 0
	for i := 0; i < len(textRunes) && qi < len(queryRunes); i++ {
		if textRunes[i] == queryRunes[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(queryRunes) {
		return 0, nil
	}
	return m.scorer.Score(queryRunes, originalRunes, textRunes, matches), matches
}

// Rank matches query against candidates case-insensitively.
func Rank(query string, candidates []string, limit int) []Result {
	return NewMatcher(Options{}).Match(query, candidates, limit)
}

// Suggest returns the names of the best matches for query.
func Suggest(query string, candidates []string, limit int) []string {
	results := Rank(query, candidates, limit)
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Text
	}
	return names
}

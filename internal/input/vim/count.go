package vim

import (
	"math"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

// maxCount caps accumulated counts instead of letting them overflow.
const maxCount = math.MaxInt / 10

// Count is the {N} special key. It claims a run of digit tokens whose first
// digit is 1-9; a leading 0 is left for the line-start motion.
type Count struct{}

// Indicator returns "{N}".
func (Count) Indicator() string { return key.IndicatorCount }

// Match consumes the digit run. A run that reaches the end of the input is
// still waiting: more digits, or the counted command, may follow.
func (Count) Match(inputs []string) keymap.SpecialResult {
	var state CountState
	consumed := 0
	for _, tok := range inputs {
		if len(tok) != 1 || !state.AccumulateDigit(rune(tok[0])) {
			break
		}
		consumed++
	}

	switch {
	case consumed == 0:
		return keymap.Skip()
	case consumed == len(inputs):
		return keymap.Waiting()
	default:
		return keymap.Success(consumed, keymap.Args{ArgCount: state.Get()})
	}
}

// OpenEnded reports true: a digit run is only complete once a non-digit
// follows, so {N} cannot end a sequence.
func (Count) OpenEnded() bool { return true }

// UnmapConflicts keeps every sibling.
func (Count) UnmapConflicts(siblings []string, _ string) []string {
	return siblings
}

// CountState tracks count accumulation.
type CountState struct {
	// Value is the accumulated count value.
	Value int

	// Active indicates if a count is being accumulated.
	Active bool
}

// AccumulateDigit adds a digit to the count.
// Returns true if the digit was accepted.
// Only accepts ASCII digits 0-9.
func (c *CountState) AccumulateDigit(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}

	digit := int(r - '0')

	// '0' at the start is not a count, it's a motion
	if !c.Active && digit == 0 {
		return false
	}

	c.Active = true

	if c.Value > (maxCount-digit)/10 {
		c.Value = maxCount
		return true
	}

	c.Value = c.Value*10 + digit
	return true
}

// Get returns the effective count (1 if no count was specified).
func (c *CountState) Get() int {
	if c.Value <= 0 {
		return 1
	}
	return c.Value
}

// CombineCounts multiplies two counts together with overflow protection.
// A count <= 0 means no count was typed and counts as 1.
// e.g., "2d3w" = delete (2*3=6) words
func CombineCounts(count1, count2 int) int {
	if count1 <= 0 {
		count1 = 1
	}
	if count2 <= 0 {
		count2 = 1
	}

	if count1 > maxCount/count2 {
		return maxCount
	}

	return count1 * count2
}

package vim

import (
	"fmt"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

// MotionType categorizes motions by their behavior.
type MotionType uint8

const (
	// MotionCharwise moves character by character.
	MotionCharwise MotionType = iota

	// MotionLinewise operates on whole lines.
	MotionLinewise
)

// String returns a string representation of the motion type.
func (t MotionType) String() string {
	switch t {
	case MotionCharwise:
		return "charwise"
	case MotionLinewise:
		return "linewise"
	default:
		return "unknown"
	}
}

// Motion represents a Vim motion.
// Motions define how the cursor moves and what range an operator affects.
// The table entries below are templates; a matched Motion also carries the
// count and character that were typed with it.
type Motion struct {
	// Name is the motion identifier (e.g., "wordForward", "lineEnd").
	Name string

	// Keys is the mapping string that triggers this motion.
	Keys string

	// Type indicates the motion type (charwise or linewise).
	Type MotionType

	// Inclusive indicates if the motion includes the character under cursor.
	// e.g., 'e' is inclusive, 'w' is exclusive.
	Inclusive bool

	// Repeatable indicates if this motion can be prefixed with a count.
	Repeatable bool

	// Count is the count typed inside the motion ("d 3 w"); 0 means none.
	Count int

	// Char is the captured character of f/F/t/T motions.
	Char rune
}

// String returns a compact description such as "3 wordForward" or
// "findChar(x)".
func (m Motion) String() string {
	s := m.Name
	if m.Char != 0 {
		s = fmt.Sprintf("%s(%c)", s, m.Char)
	}
	if m.Count > 0 {
		s = fmt.Sprintf("%d %s", m.Count, s)
	}
	return s
}

// Standard Vim motions.
var (
	// Character motions
	MotionLeft = Motion{
		Name:       "left",
		Keys:       "h",
		Type:       MotionCharwise,
		Inclusive:  false,
		Repeatable: true,
	}

	MotionRight = Motion{
		Name:       "right",
		Keys:       "l",
		Type:       MotionCharwise,
		Inclusive:  false,
		Repeatable: true,
	}

	MotionUp = Motion{
		Name:       "up",
		Keys:       "k",
		Type:       MotionLinewise,
		Inclusive:  false,
		Repeatable: true,
	}

	MotionDown = Motion{
		Name:       "down",
		Keys:       "j",
		Type:       MotionLinewise,
		Inclusive:  false,
		Repeatable: true,
	}

	// Word motions
	MotionWordForward = Motion{
		Name:       "wordForward",
		Keys:       "w",
		Type:       MotionCharwise,
		Inclusive:  false,
		Repeatable: true,
	}

	MotionWordBackward = Motion{
		Name:       "wordBackward",
		Keys:       "b",
		Type:       MotionCharwise,
		Inclusive:  false,
		Repeatable: true,
	}

	MotionWordEnd = Motion{
		Name:       "wordEnd",
		Keys:       "e",
		Type:       MotionCharwise,
		Inclusive:  true,
		Repeatable: true,
	}

	// WORD motions (whitespace-delimited)
	MotionWORDForward = Motion{
		Name:       "WORDForward",
		Keys:       "W",
		Type:       MotionCharwise,
		Inclusive:  false,
		Repeatable: true,
	}

	MotionWORDBackward = Motion{
		Name:       "WORDBackward",
		Keys:       "B",
		Type:       MotionCharwise,
		Inclusive:  false,
		Repeatable: true,
	}

	MotionWORDEnd = Motion{
		Name:       "WORDEnd",
		Keys:       "E",
		Type:       MotionCharwise,
		Inclusive:  true,
		Repeatable: true,
	}

	// Line motions
	MotionLineStart = Motion{
		Name:       "lineStart",
		Keys:       "0",
		Type:       MotionCharwise,
		Inclusive:  false,
		Repeatable: false,
	}

	MotionFirstNonBlank = Motion{
		Name:       "firstNonBlank",
		Keys:       "^",
		Type:       MotionCharwise,
		Inclusive:  false,
		Repeatable: false,
	}

	MotionLineEnd = Motion{
		Name:       "lineEnd",
		Keys:       "$",
		Type:       MotionCharwise,
		Inclusive:  true,
		Repeatable: false,
	}

	// Screen line motions (for wrapped lines)
	MotionScreenLineStart = Motion{
		Name:       "screenLineStart",
		Keys:       "g 0",
		Type:       MotionCharwise,
		Inclusive:  false,
		Repeatable: false,
	}

	MotionScreenLineEnd = Motion{
		Name:       "screenLineEnd",
		Keys:       "g $",
		Type:       MotionCharwise,
		Inclusive:  true,
		Repeatable: false,
	}

	// Document motions
	MotionDocumentStart = Motion{
		Name:       "documentStart",
		Keys:       "g g",
		Type:       MotionLinewise,
		Inclusive:  false,
		Repeatable: false,
	}

	MotionDocumentEnd = Motion{
		Name:       "documentEnd",
		Keys:       "G",
		Type:       MotionLinewise,
		Inclusive:  true,
		Repeatable: false,
	}

	// Search motions
	MotionFindChar = Motion{
		Name:       "findChar",
		Keys:       "f {char}",
		Type:       MotionCharwise,
		Inclusive:  true,
		Repeatable: true,
	}

	MotionFindCharBack = Motion{
		Name:       "findCharBack",
		Keys:       "F {char}",
		Type:       MotionCharwise,
		Inclusive:  true,
		Repeatable: true,
	}

	MotionTillChar = Motion{
		Name:       "tillChar",
		Keys:       "t {char}",
		Type:       MotionCharwise,
		Inclusive:  false,
		Repeatable: true,
	}

	MotionTillCharBack = Motion{
		Name:       "tillCharBack",
		Keys:       "T {char}",
		Type:       MotionCharwise,
		Inclusive:  false,
		Repeatable: true,
	}

	// Paragraph motions
	MotionParagraphForward = Motion{
		Name:       "paragraphForward",
		Keys:       "}",
		Type:       MotionCharwise,
		Inclusive:  false,
		Repeatable: true,
	}

	MotionParagraphBackward = Motion{
		Name:       "paragraphBackward",
		Keys:       "{",
		Type:       MotionCharwise,
		Inclusive:  false,
		Repeatable: true,
	}

	// Sentence motions
	MotionSentenceForward = Motion{
		Name:       "sentenceForward",
		Keys:       ")",
		Type:       MotionCharwise,
		Inclusive:  false,
		Repeatable: true,
	}

	MotionSentenceBackward = Motion{
		Name:       "sentenceBackward",
		Keys:       "(",
		Type:       MotionCharwise,
		Inclusive:  false,
		Repeatable: true,
	}

	// Match motions
	MotionMatchPair = Motion{
		Name:       "matchPair",
		Keys:       "%",
		Type:       MotionCharwise,
		Inclusive:  true,
		Repeatable: false,
	}

	// Screen motions
	MotionScreenTop = Motion{
		Name:       "screenTop",
		Keys:       "H",
		Type:       MotionLinewise,
		Inclusive:  false,
		Repeatable: true,
	}

	MotionScreenMiddle = Motion{
		Name:       "screenMiddle",
		Keys:       "M",
		Type:       MotionLinewise,
		Inclusive:  false,
		Repeatable: false,
	}

	MotionScreenBottom = Motion{
		Name:       "screenBottom",
		Keys:       "L",
		Type:       MotionLinewise,
		Inclusive:  false,
		Repeatable: true,
	}

	MotionWordEndBackward = Motion{
		Name:       "wordEndBackward",
		Keys:       "g e",
		Type:       MotionCharwise,
		Inclusive:  true,
		Repeatable: true,
	}

	MotionLastNonBlank = Motion{
		Name:       "lastNonBlank",
		Keys:       "g _",
		Type:       MotionCharwise,
		Inclusive:  true,
		Repeatable: true,
	}
)

// Motions returns the built-in motion table.
func Motions() []Motion {
	return []Motion{
		MotionLeft, MotionRight, MotionUp, MotionDown,
		MotionWordForward, MotionWordBackward, MotionWordEnd,
		MotionWORDForward, MotionWORDBackward, MotionWORDEnd,
		MotionLineStart, MotionFirstNonBlank, MotionLineEnd,
		MotionScreenLineStart, MotionScreenLineEnd,
		MotionDocumentStart, MotionDocumentEnd,
		MotionFindChar, MotionFindCharBack, MotionTillChar, MotionTillCharBack,
		MotionParagraphForward, MotionParagraphBackward,
		MotionSentenceForward, MotionSentenceBackward,
		MotionMatchPair,
		MotionScreenTop, MotionScreenMiddle, MotionScreenBottom,
		MotionWordEndBackward, MotionLastNonBlank,
	}
}

// MotionByName looks up a built-in motion by its Name.
func MotionByName(name string) (Motion, bool) {
	for _, m := range Motions() {
		if m.Name == name {
			return m, true
		}
	}
	return Motion{}, false
}

// MotionKey is the {motion} special key. It delegates to the motion
// sub-grammar, a mapper of motion templates with its own count and
// character keys, so "3 w" and "f x" are single motions.
type MotionKey struct {
	mapper *keymap.Mapper[Motion]
}

// NewMotionKey creates a motion key over the built-in motion table.
func NewMotionKey() *MotionKey {
	return NewMotionKeyWith(Motions())
}

// NewMotionKeyWith creates a motion key over a custom motion table.
// Repeatable motions are also registered behind a {N} prefix.
// It panics if the table contains conflicting key sequences.
func NewMotionKeyWith(motions []Motion) *MotionKey {
	mk := &MotionKey{
		mapper: keymap.NewMapper[Motion](Count{}, Character{}),
	}
	for _, m := range motions {
		mk.mapper.MustMap(m.Keys, m, nil)
		if m.Repeatable {
			mk.mapper.MustMap(key.IndicatorCount+" "+m.Keys, m, nil)
		}
	}
	return mk
}

// Indicator returns "{motion}".
func (mk *MotionKey) Indicator() string { return key.IndicatorMotion }

// Match runs the motion sub-grammar. Input the sub-grammar rejects is not
// a motion, which leaves it to the next special key.
func (mk *MotionKey) Match(inputs []string) keymap.SpecialResult {
	res := mk.mapper.Match(inputs)
	switch res.Kind {
	case keymap.MatchWaiting:
		return keymap.Waiting()
	case keymap.MatchSuccess:
		m := res.Binding.Target
		m.Count = CountArg(res.Args)
		if r, ok := CharacterArg(res.Args); ok {
			m.Char = r
		}
		return keymap.Success(res.Consumed, keymap.Args{ArgMotion: m})
	default:
		return keymap.Skip()
	}
}

// UnmapConflicts keeps every sibling. Motions and text objects may share a
// parent; the priority order decides between them at match time.
func (mk *MotionKey) UnmapConflicts(siblings []string, _ string) []string {
	return siblings
}

// Bindings lists the motion sub-grammar.
func (mk *MotionKey) Bindings() []*keymap.Binding[Motion] {
	return mk.mapper.Bindings()
}

package vim

import (
	"fmt"
	"slices"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

// SearchRange bounds the search for a text object's delimiters.
type SearchRange uint8

const (
	// RangeDocument searches the whole document.
	RangeDocument SearchRange = iota

	// RangeLine searches the current line only.
	RangeLine
)

// String returns a string representation of the range.
func (r SearchRange) String() string {
	switch r {
	case RangeDocument:
		return "document"
	case RangeLine:
		return "line"
	default:
		return "unknown"
	}
}

// TextObject is a matched text object: an addressable span delimited by an
// opening and a closing character.
type TextObject struct {
	// Name is the pair name (e.g., "paren", "doubleQuote").
	Name string

	// Opening and Closing are the delimiters.
	Opening rune
	Closing rune

	// Range is where the delimiters are searched for.
	Range SearchRange

	// Inclusive selects the delimiters too ("a (") instead of only what is
	// between them ("i (").
	Inclusive bool
}

// String returns a description such as "around paren ()".
func (t TextObject) String() string {
	prefix := PrefixInner
	if t.Inclusive {
		prefix = PrefixAround
	}
	return fmt.Sprintf("%s %s %c%c", prefix, t.Name, t.Opening, t.Closing)
}

// TextObjectGenerator builds a TextObject from the static arguments of its
// binding.
type TextObjectGenerator func(args keymap.Args) TextObject

// Static argument names of the text-object sub-grammar.
const (
	argPairName = "name"
	argOpening  = "opening"
	argClosing  = "closing"
	argRange    = "range"
)

// InclusiveBlock generates the "a" variant of a delimited text object.
func InclusiveBlock(args keymap.Args) TextObject {
	t := blockFromArgs(args)
	t.Inclusive = true
	return t
}

// ExclusiveBlock generates the "i" variant of a delimited text object.
func ExclusiveBlock(args keymap.Args) TextObject {
	return blockFromArgs(args)
}

func blockFromArgs(args keymap.Args) TextObject {
	t := TextObject{}
	t.Name, _ = args.String(argPairName)
	t.Opening, _ = args[argOpening].(rune)
	t.Closing, _ = args[argClosing].(rune)
	t.Range, _ = args[argRange].(SearchRange)
	return t
}

// TextObjectPair describes one delimited text object and the keys that
// select it after "a" or "i".
type TextObjectPair struct {
	Name    string
	Keys    []rune
	Opening rune
	Closing rune
	Range   SearchRange
}

// Standard delimited text objects. Quotes only search the current line.
var (
	TextObjParen       = TextObjectPair{Name: "paren", Keys: []rune{'b', '(', ')'}, Opening: '(', Closing: ')', Range: RangeDocument}
	TextObjBracket     = TextObjectPair{Name: "bracket", Keys: []rune{'[', ']'}, Opening: '[', Closing: ']', Range: RangeDocument}
	TextObjBrace       = TextObjectPair{Name: "brace", Keys: []rune{'B', '{', '}'}, Opening: '{', Closing: '}', Range: RangeDocument}
	TextObjAngle       = TextObjectPair{Name: "angle", Keys: []rune{'<', '>'}, Opening: '<', Closing: '>', Range: RangeDocument}
	TextObjSingleQuote = TextObjectPair{Name: "singleQuote", Keys: []rune{'\''}, Opening: '\'', Closing: '\'', Range: RangeLine}
	TextObjDoubleQuote = TextObjectPair{Name: "doubleQuote", Keys: []rune{'"'}, Opening: '"', Closing: '"', Range: RangeLine}
	TextObjBacktick    = TextObjectPair{Name: "backtick", Keys: []rune{'`'}, Opening: '`', Closing: '`', Range: RangeLine}
)

// TextObjectPairs returns the built-in pair table.
func TextObjectPairs() []TextObjectPair {
	return []TextObjectPair{
		TextObjParen,
		TextObjBracket,
		TextObjBrace,
		TextObjAngle,
		TextObjSingleQuote,
		TextObjDoubleQuote,
		TextObjBacktick,
	}
}

// TextObjectPrefix represents the prefix for text object selection.
type TextObjectPrefix uint8

const (
	// PrefixInner indicates "inner" selection (i).
	PrefixInner TextObjectPrefix = iota

	// PrefixAround indicates "around" selection (a).
	PrefixAround
)

// String returns a string representation of the prefix.
func (p TextObjectPrefix) String() string {
	if p == PrefixAround {
		return "around"
	}
	return "inner"
}

// Key returns the mnemonic key of the prefix.
func (p TextObjectPrefix) Key() string {
	if p == PrefixAround {
		return "a"
	}
	return "i"
}

// TextObjectKey is the {textObject} special key. It delegates to a
// sub-grammar of "a <char>" and "i <char>" sequences.
type TextObjectKey struct {
	mapper *keymap.Mapper[TextObjectGenerator]
}

// NewTextObjectKey creates a text-object key over the built-in pair table.
func NewTextObjectKey() *TextObjectKey {
	return NewTextObjectKeyWith(TextObjectPairs())
}

// NewTextObjectKeyWith creates a text-object key over a custom pair table.
// Every key of every pair is registered twice, once per prefix.
func NewTextObjectKeyWith(pairs []TextObjectPair) *TextObjectKey {
	tk := &TextObjectKey{
		mapper: keymap.NewMapper[TextObjectGenerator](),
	}
	for _, p := range pairs {
		args := keymap.Args{
			argPairName: p.Name,
			argOpening:  p.Opening,
			argClosing:  p.Closing,
			argRange:    p.Range,
		}
		for _, r := range p.Keys {
			tok := key.NewRuneEvent(r, key.ModNone).Token()
			tk.Map(PrefixAround.Key()+" "+tok, InclusiveBlock, args)
			tk.Map(PrefixInner.Key()+" "+tok, ExclusiveBlock, args)
		}
	}
	return tk
}

// Map adds a text object to the sub-grammar. It panics on a conflicting
// key sequence.
func (tk *TextObjectKey) Map(joined string, gen TextObjectGenerator, args keymap.Args) {
	tk.mapper.MustMap(joined, gen, args)
}

// Indicator returns "{textObject}".
func (tk *TextObjectKey) Indicator() string { return key.IndicatorTextObject }

// Match runs the text-object sub-grammar.
func (tk *TextObjectKey) Match(inputs []string) keymap.SpecialResult {
	res := tk.mapper.Match(inputs)
	switch res.Kind {
	case keymap.MatchWaiting:
		return keymap.Waiting()
	case keymap.MatchSuccess:
		obj := res.Binding.Target(res.Args)
		return keymap.Success(res.Consumed, keymap.Args{ArgTextObject: obj})
	default:
		return keymap.Skip()
	}
}

// UnmapConflicts gives text objects the lowest priority under a parent.
// Registering a count or a character capture (a token starting with 1-9,
// {N} or {char}) removes a sibling {textObject}; registering {textObject}
// removes such siblings.
func (tk *TextObjectKey) UnmapConflicts(siblings []string, incoming string) []string {
	if incoming == tk.Indicator() {
		return slices.DeleteFunc(slices.Clone(siblings), conflictsWithTextObject)
	}
	if conflictsWithTextObject(incoming) {
		return slices.DeleteFunc(slices.Clone(siblings), func(tok string) bool {
			return tok == tk.Indicator()
		})
	}
	return siblings
}

// conflictsWithTextObject reports whether tok could claim the same input
// as a text object under one parent.
func conflictsWithTextObject(tok string) bool {
	if tok == key.IndicatorCount || tok == key.IndicatorChar {
		return true
	}
	return tok != "" && tok[0] >= '1' && tok[0] <= '9'
}

// Bindings lists the text-object sub-grammar.
func (tk *TextObjectKey) Bindings() []*keymap.Binding[TextObjectGenerator] {
	return tk.mapper.Bindings()
}

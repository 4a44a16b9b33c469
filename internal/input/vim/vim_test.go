package vim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keychord/internal/input/keymap"
)

func tokens(s string) []string {
	return strings.Fields(s)
}

func newMapper() *keymap.Mapper[string] {
	return keymap.NewMapper[string](DefaultSpecials()...)
}

func TestCountState(t *testing.T) {
	var c CountState

	assert.False(t, c.AccumulateDigit('0'), "leading 0 starts a count")
	assert.Equal(t, 1, c.Get())

	for _, r := range "105" {
		require.True(t, c.AccumulateDigit(r), "digit %q", r)
	}
	assert.Equal(t, 105, c.Get())
	assert.True(t, c.Active)
	assert.False(t, c.AccumulateDigit('x'), "non-digit accepted")
}

func TestCountStateSaturates(t *testing.T) {
	var c CountState
	for i := 0; i < 40; i++ {
		c.AccumulateDigit('9')
	}
	assert.Equal(t, maxCount, c.Get())
}

func TestCombineCounts(t *testing.T) {
	tests := []struct {
		a, b int
		want int
	}{
		{0, 0, 1},
		{2, 0, 2},
		{0, 3, 3},
		{2, 3, 6},
		{maxCount, 2, maxCount},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CombineCounts(tt.a, tt.b), "CombineCounts(%d, %d)", tt.a, tt.b)
	}
}

func TestCountCannotEndASequence(t *testing.T) {
	assert.True(t, Count{}.OpenEnded())

	m := newMapper()
	_, err := m.Map("z {N}", "counted", nil)
	assert.ErrorIs(t, err, keymap.ErrOpenEndedTail)

	_, err = m.Map("z {N} x", "counted", nil)
	assert.NoError(t, err)
}

func TestCountKey(t *testing.T) {
	tests := []struct {
		input    string
		kind     keymap.SpecialKind
		consumed int
		count    int
	}{
		{"x", keymap.NotApplicable, 0, 0},
		{"0 x", keymap.NotApplicable, 0, 0},
		{"3", keymap.SpecialWaiting, 0, 0},
		{"1 2", keymap.SpecialWaiting, 0, 0},
		{"3 x", keymap.SpecialSuccess, 1, 3},
		{"1 0 x", keymap.SpecialSuccess, 2, 10},
		{"4 2 d d", keymap.SpecialSuccess, 2, 42},
		{"ctrl+a", keymap.NotApplicable, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := Count{}.Match(tokens(tt.input))
			require.Equal(t, tt.kind, res.Kind)
			if tt.kind == keymap.SpecialSuccess {
				assert.Equal(t, tt.consumed, res.Consumed)
				assert.Equal(t, tt.count, CountArg(res.Args))
			}
		})
	}
}

func TestCharacterKey(t *testing.T) {
	res := Character{}.Match(tokens("x y"))
	require.Equal(t, keymap.SpecialSuccess, res.Kind)
	assert.Equal(t, 1, res.Consumed)
	r, ok := CharacterArg(res.Args)
	require.True(t, ok)
	assert.Equal(t, 'x', r)

	res = Character{}.Match(tokens("space"))
	require.Equal(t, keymap.SpecialSuccess, res.Kind)
	r, _ = CharacterArg(res.Args)
	assert.Equal(t, ' ', r)

	for _, in := range []string{"escape", "ctrl+x", "enter", "f1"} {
		assert.Equal(t, keymap.SpecialFailed, Character{}.Match([]string{in}).Kind, in)
	}
}

func TestMotionKey(t *testing.T) {
	mk := NewMotionKey()

	tests := []struct {
		input    string
		kind     keymap.SpecialKind
		consumed int
		name     string
		count    int
		char     rune
	}{
		{"w", keymap.SpecialSuccess, 1, "wordForward", 0, 0},
		{"0", keymap.SpecialSuccess, 1, "lineStart", 0, 0},
		{"$ x", keymap.SpecialSuccess, 1, "lineEnd", 0, 0},
		{"3 w", keymap.SpecialSuccess, 2, "wordForward", 3, 0},
		{"1 0 j", keymap.SpecialSuccess, 3, "down", 10, 0},
		{"f x", keymap.SpecialSuccess, 2, "findChar", 0, 'x'},
		{"2 t ;", keymap.SpecialSuccess, 3, "tillChar", 2, ';'},
		{"g g", keymap.SpecialSuccess, 2, "documentStart", 0, 0},
		{"g e", keymap.SpecialSuccess, 2, "wordEndBackward", 0, 0},
		{"g", keymap.SpecialWaiting, 0, "", 0, 0},
		{"3", keymap.SpecialWaiting, 0, "", 0, 0},
		{"f", keymap.SpecialWaiting, 0, "", 0, 0},
		{"f escape", keymap.NotApplicable, 0, "", 0, 0},
		{"3 g g", keymap.NotApplicable, 0, "", 0, 0},
		{"q", keymap.NotApplicable, 0, "", 0, 0},
		{"i (", keymap.NotApplicable, 0, "", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := mk.Match(tokens(tt.input))
			require.Equal(t, tt.kind, res.Kind)
			if tt.kind != keymap.SpecialSuccess {
				return
			}
			assert.Equal(t, tt.consumed, res.Consumed)
			m, ok := MotionArg(res.Args)
			require.True(t, ok)
			assert.Equal(t, tt.name, m.Name)
			assert.Equal(t, tt.count, m.Count)
			assert.Equal(t, tt.char, m.Char)
		})
	}
}

func TestMotionTable(t *testing.T) {
	mk := NewMotionKey()
	seen := make(map[string]bool)
	for _, m := range Motions() {
		assert.False(t, seen[m.Keys], "duplicate motion keys %q", m.Keys)
		seen[m.Keys] = true
		assert.NotNil(t, mk.mapper.Lookup(m.Keys), m.Name)
		if m.Repeatable {
			assert.NotNil(t, mk.mapper.Lookup("{N} "+m.Keys), m.Name)
		}
	}
}

func TestMotionString(t *testing.T) {
	m := MotionFindChar
	m.Count = 3
	m.Char = 'x'
	assert.Equal(t, "3 findChar(x)", m.String())
	assert.Equal(t, "wordForward", MotionWordForward.String())
	assert.Equal(t, "linewise", MotionDown.Type.String())
}

func TestMotionByName(t *testing.T) {
	for _, want := range Motions() {
		got, ok := MotionByName(want.Name)
		require.True(t, ok, want.Name)
		assert.Equal(t, want, got)
	}
	_, ok := MotionByName("warp")
	assert.False(t, ok)
}

func TestTextObjectKeyPairs(t *testing.T) {
	tk := NewTextObjectKey()

	for _, p := range TextObjectPairs() {
		for _, r := range p.Keys {
			for _, prefix := range []TextObjectPrefix{PrefixInner, PrefixAround} {
				in := []string{prefix.Key(), string(r)}
				res := tk.Match(in)
				require.Equal(t, keymap.SpecialSuccess, res.Kind, "%v", in)
				assert.Equal(t, 2, res.Consumed)

				obj, ok := TextObjectArg(res.Args)
				require.True(t, ok)
				assert.Equal(t, p.Name, obj.Name)
				assert.Equal(t, p.Opening, obj.Opening)
				assert.Equal(t, p.Closing, obj.Closing)
				assert.Equal(t, p.Range, obj.Range)
				assert.Equal(t, prefix == PrefixAround, obj.Inclusive)
			}
		}
	}

	// Each key is registered once per prefix.
	n := 0
	for _, p := range TextObjectPairs() {
		n += 2 * len(p.Keys)
	}
	assert.Len(t, tk.Bindings(), n)
}

func TestTextObjectRanges(t *testing.T) {
	tk := NewTextObjectKey()
	tests := []struct {
		input string
		want  TextObject
	}{
		{"a b", TextObject{Name: "paren", Opening: '(', Closing: ')', Range: RangeDocument, Inclusive: true}},
		{"i B", TextObject{Name: "brace", Opening: '{', Closing: '}', Range: RangeDocument}},
		{"i \"", TextObject{Name: "doubleQuote", Opening: '"', Closing: '"', Range: RangeLine}},
		{"a '", TextObject{Name: "singleQuote", Opening: '\'', Closing: '\'', Range: RangeLine, Inclusive: true}},
		{"i `", TextObject{Name: "backtick", Opening: '`', Closing: '`', Range: RangeLine}},
		{"a >", TextObject{Name: "angle", Opening: '<', Closing: '>', Range: RangeDocument, Inclusive: true}},
	}
	for _, tt := range tests {
		res := tk.Match(tokens(tt.input))
		require.Equal(t, keymap.SpecialSuccess, res.Kind, tt.input)
		obj, _ := TextObjectArg(res.Args)
		assert.Equal(t, tt.want, obj, tt.input)
	}

	assert.Equal(t, keymap.SpecialWaiting, tk.Match(tokens("a")).Kind)
	assert.Equal(t, keymap.NotApplicable, tk.Match(tokens("a z")).Kind)
	assert.Equal(t, keymap.NotApplicable, tk.Match(tokens("w")).Kind)
}

func TestTextObjectString(t *testing.T) {
	obj := InclusiveBlock(keymap.Args{"name": "paren", "opening": '(', "closing": ')'})
	assert.Equal(t, "around paren ()", obj.String())
	obj = ExclusiveBlock(keymap.Args{"name": "bracket", "opening": '[', "closing": ']'})
	assert.Equal(t, "inner bracket []", obj.String())
}

func TestTextObjectConflicts(t *testing.T) {
	tk := NewTextObjectKey()

	tests := []struct {
		name     string
		siblings []string
		incoming string
		want     []string
	}{
		{"object drops count", []string{"{N}", "x"}, "{textObject}", []string{"x"}},
		{"object drops char", []string{"{char}", "{motion}"}, "{textObject}", []string{"{motion}"}},
		{"object drops digit literal", []string{"3", "0"}, "{textObject}", []string{"0"}},
		{"count drops object", []string{"{textObject}", "x"}, "{N}", []string{"x"}},
		{"char drops object", []string{"{textObject}"}, "{char}", []string{}},
		{"digit literal drops object", []string{"{textObject}"}, "7", []string{}},
		{"zero keeps object", []string{"{textObject}"}, "0", []string{"{textObject}"}},
		{"motion keeps object", []string{"{textObject}"}, "{motion}", []string{"{textObject}"}},
		{"letter keeps object", []string{"{textObject}", "d"}, "x", []string{"{textObject}", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tk.UnmapConflicts(tt.siblings, tt.incoming)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestTextObjectLosesToLaterCount(t *testing.T) {
	m := newMapper()
	m.MustMap("d {textObject}", "deleteObject", nil)
	m.MustMap("d {N} x", "deleteCount", nil)

	assert.Nil(t, m.Lookup("d {textObject}"))
	assert.Equal(t, keymap.MatchFailed, m.Match(tokens("d a (")).Kind)

	res := m.Match(tokens("d 2 x"))
	require.Equal(t, keymap.MatchSuccess, res.Kind)
	assert.Equal(t, 2, CountArg(res.Args))
}

func TestTextObjectReplacesEarlierChar(t *testing.T) {
	m := newMapper()
	m.MustMap("z {char}", "mark", nil)
	m.MustMap("z {textObject}", "select", nil)

	assert.Nil(t, m.Lookup("z {char}"))
	res := m.Match(tokens("z i ["))
	require.Equal(t, keymap.MatchSuccess, res.Kind)
	assert.Equal(t, "select", res.Binding.Target)
}

func TestMotionBeforeTextObject(t *testing.T) {
	m := newMapper()
	m.MustMap("d {motion}", "deleteMotion", nil)
	m.MustMap("d {textObject}", "deleteObject", nil)

	// "b" is both a motion and a text-object key; only the motion can
	// start with it.
	res := m.Match(tokens("d b"))
	require.Equal(t, keymap.MatchSuccess, res.Kind)
	assert.Equal(t, "deleteMotion", res.Binding.Target)
	mo, _ := MotionArg(res.Args)
	assert.Equal(t, "wordBackward", mo.Name)

	res = m.Match(tokens("d i b"))
	require.Equal(t, keymap.MatchSuccess, res.Kind)
	assert.Equal(t, "deleteObject", res.Binding.Target)
	obj, _ := TextObjectArg(res.Args)
	assert.Equal(t, "paren", obj.Name)

	assert.Equal(t, keymap.MatchWaiting, m.Match(tokens("d a")).Kind)
	assert.Equal(t, keymap.MatchFailed, m.Match(tokens("d q")).Kind)
}

func TestOperatorScenarios(t *testing.T) {
	m := newMapper()
	m.MustMap("d d", "deleteLine", nil)
	m.MustMap("{N} d d", "deleteLine", nil)
	m.MustMap("d {motion}", "deleteMotion", nil)
	m.MustMap("{N} d {motion}", "deleteMotion", nil)
	m.MustMap("r {char}", "replace", nil)

	res := m.Match(tokens("3 d d"))
	require.Equal(t, keymap.MatchSuccess, res.Kind)
	assert.Equal(t, "deleteLine", res.Binding.Target)
	assert.Equal(t, 3, CountArg(res.Args))
	assert.Equal(t, 3, res.Consumed)

	res = m.Match(tokens("2 d 3 w"))
	require.Equal(t, keymap.MatchSuccess, res.Kind)
	assert.Equal(t, 2, CountArg(res.Args))
	mo, _ := MotionArg(res.Args)
	assert.Equal(t, 3, mo.Count)
	assert.Equal(t, 6, CombineCounts(CountArg(res.Args), mo.Count))

	res = m.Match(tokens("d f ,"))
	require.Equal(t, keymap.MatchSuccess, res.Kind)
	mo, _ = MotionArg(res.Args)
	assert.Equal(t, ',', mo.Char)
	assert.Equal(t, 0, CountArg(res.Args))

	res = m.Match(tokens("r z"))
	require.Equal(t, keymap.MatchSuccess, res.Kind)
	r, _ := CharacterArg(res.Args)
	assert.Equal(t, 'z', r)

	assert.Equal(t, keymap.MatchFailed, m.Match(tokens("r escape")).Kind)
	assert.Equal(t, keymap.MatchFailed, m.Match(tokens("d f escape")).Kind)
	assert.Equal(t, keymap.MatchWaiting, m.Match(tokens("d f")).Kind)
	assert.Equal(t, keymap.MatchWaiting, m.Match(tokens("2 d")).Kind)
}

func TestOperators(t *testing.T) {
	keys := make(map[string]bool)
	for _, op := range Operators() {
		assert.False(t, keys[op.Key], "duplicate operator key %q", op.Key)
		keys[op.Key] = true
		assert.Equal(t, op.Key+" "+op.Key, op.LinewiseKeys())
	}
	assert.True(t, OpChange.EntersInsert)
	assert.Equal(t, EffectDelete, OpChange.Effect)
	assert.False(t, OpYank.ChangesText)
}

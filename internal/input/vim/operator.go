package vim

// Operator represents a Vim operator command.
// Operators are commands that perform an action on a range of text
// defined by a motion, a text object, or whole lines.
type Operator struct {
	// Name is the operator identifier (e.g., "delete", "change", "yank").
	Name string

	// Key is the token that triggers this operator (e.g., "d", "c", "y").
	// Doubling it ("d d") applies the operator to whole lines.
	Key string

	// Effect is what the editor performs on the range. Change shares the
	// delete effect and then enters insert mode.
	Effect string

	// ChangesText indicates if this operator modifies the buffer.
	ChangesText bool

	// EntersInsert indicates if this operator enters insert mode after.
	EntersInsert bool
}

// Operator effects understood by editors.
const (
	EffectDelete      = "delete"
	EffectYank        = "yank"
	EffectIndentRight = "indentRight"
	EffectIndentLeft  = "indentLeft"
	EffectFormat      = "format"
)

// Standard Vim operators.
var (
	// OpDelete deletes text.
	OpDelete = Operator{
		Name:         "delete",
		Key:          "d",
		Effect:       EffectDelete,
		ChangesText:  true,
		EntersInsert: false,
	}

	// OpChange deletes text and enters insert mode.
	OpChange = Operator{
		Name:         "change",
		Key:          "c",
		Effect:       EffectDelete,
		ChangesText:  true,
		EntersInsert: true,
	}

	// OpYank copies text to a register.
	OpYank = Operator{
		Name:         "yank",
		Key:          "y",
		Effect:       EffectYank,
		ChangesText:  false,
		EntersInsert: false,
	}

	// OpIndentRight shifts text right.
	OpIndentRight = Operator{
		Name:         "indentRight",
		Key:          ">",
		Effect:       EffectIndentRight,
		ChangesText:  true,
		EntersInsert: false,
	}

	// OpIndentLeft shifts text left.
	OpIndentLeft = Operator{
		Name:         "indentLeft",
		Key:          "<",
		Effect:       EffectIndentLeft,
		ChangesText:  true,
		EntersInsert: false,
	}

	// OpFormat formats text.
	OpFormat = Operator{
		Name:         "format",
		Key:          "=",
		Effect:       EffectFormat,
		ChangesText:  true,
		EntersInsert: false,
	}
)

// Operators returns the built-in operators.
//
// g-prefixed operators (g~, gu, gU) are left out: a literal "g" edge at the
// root of a mode would shadow the "g g" and "g e" motions.
func Operators() []Operator {
	return []Operator{OpDelete, OpChange, OpYank, OpIndentRight, OpIndentLeft, OpFormat}
}

// LinewiseKeys returns the doubled key sequence, e.g. "d d".
func (o Operator) LinewiseKeys() string {
	return o.Key + " " + o.Key
}

package mode

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/dshills/keychord/internal/input/fuzzy"
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/input/vim"
)

// row is one line of a command table.
type row struct {
	keys   string
	action string
	args   keymap.Args
}

// TableMode is a mode driven entirely by a command table: a keymap.Mapper
// of actions plus the buffer of tokens typed towards the next command.
//
// TableMode is not safe for concurrent use; the session serializes keys.
type TableMode struct {
	name    string
	display string
	cursor  CursorStyle

	mapper  *keymap.Mapper[Action]
	actions map[string]Command
	buffer  []string
}

// newTableMode builds a mode from its named actions and table rows. A row
// naming an undefined action or a malformed key sequence is an error.
func newTableMode(name, display string, cursor CursorStyle, actions map[string]Command, rows []row) (*TableMode, error) {
	m := &TableMode{
		name:    name,
		display: display,
		cursor:  cursor,
		mapper:  keymap.NewMapper[Action](vim.DefaultSpecials()...),
		actions: actions,
		buffer:  make([]string, 0, 8),
	}
	for _, r := range rows {
		if err := m.Map(r.keys, r.action, r.args); err != nil {
			return nil, fmt.Errorf("%s mode: %w", name, err)
		}
	}
	return m, nil
}

// Name returns the mode identifier.
func (m *TableMode) Name() string {
	return m.name
}

// DisplayName returns the human-readable mode name.
func (m *TableMode) DisplayName() string {
	return m.display
}

// CursorStyle returns the cursor style of the mode.
func (m *TableMode) CursorStyle() CursorStyle {
	return m.cursor
}

// Enter is called when entering the mode. Any stale chord is dropped.
func (m *TableMode) Enter(ctx *Context) error {
	m.Reset()
	return nil
}

// Exit is called when leaving the mode.
func (m *TableMode) Exit(ctx *Context) error {
	m.Reset()
	return nil
}

// Feed appends tok to the buffer and matches the buffer.
//
// WAITING keeps the buffer. FAILED discards all of it, not only the last
// token. SUCCESS clears it and then runs the command, so a command that
// switches modes leaves no chord behind. The returned error is the
// command's.
func (m *TableMode) Feed(ctx context.Context, tok string) (keymap.MatchKind, error) {
	m.buffer = append(m.buffer, tok)
	res := m.mapper.Match(m.buffer)

	switch res.Kind {
	case keymap.MatchSuccess:
		m.Reset()
		action := res.Binding.Target
		if err := action.Run(ctx, res.Args); err != nil {
			return keymap.MatchSuccess, fmt.Errorf("%s: %w", action.Name, err)
		}
		return keymap.MatchSuccess, nil
	case keymap.MatchFailed:
		m.Reset()
	}
	return res.Kind, nil
}

// Pending returns a copy of the buffered tokens.
func (m *TableMode) Pending() []string {
	return slices.Clone(m.buffer)
}

// Reset discards the buffered tokens.
func (m *TableMode) Reset() {
	m.buffer = m.buffer[:0]
}

// Map binds a key sequence to one of the mode's named actions, replacing an
// earlier binding of the same sequence.
func (m *TableMode) Map(keys, action string, args keymap.Args) error {
	run, ok := m.actions[action]
	if !ok {
		err := fmt.Errorf("mapping %q: %w: %s", keys, ErrUnknownAction, action)
		if alt := fuzzy.Suggest(action, m.Actions(), 3); len(alt) > 0 {
			err = fmt.Errorf("%w (did you mean %s?)", err, strings.Join(alt, ", "))
		}
		return err
	}
	_, err := m.mapper.Map(keys, Action{Name: action, Run: run}, args)
	return err
}

// Unmap removes the binding of an exact key sequence.
func (m *TableMode) Unmap(keys string) bool {
	return m.mapper.Unmap(keys)
}

// Lookup returns the binding of an exact key sequence, or nil.
func (m *TableMode) Lookup(keys string) *keymap.Binding[Action] {
	return m.mapper.Lookup(keys)
}

// Bindings lists the command table sorted by key sequence.
func (m *TableMode) Bindings() []*keymap.Binding[Action] {
	return m.mapper.Bindings()
}

// Actions returns the sorted names of the actions keys can be mapped to.
func (m *TableMode) Actions() []string {
	names := make([]string, 0, len(m.actions))
	for name := range m.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

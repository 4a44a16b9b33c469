package keymap

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/dshills/keychord/internal/input/key"
)

// Registration errors. They indicate a broken mapping table and are
// reported when the table is built, never while matching.
var (
	// ErrPrefixConflict indicates a sequence that runs through an existing
	// terminal binding, or ends on a node that already has longer chords
	// below it.
	ErrPrefixConflict = errors.New("key sequence conflicts with an existing binding")

	// ErrUnknownIndicator indicates an indicator token with no special key
	// registered on the mapper.
	ErrUnknownIndicator = errors.New("indicator has no registered special key")

	// ErrOpenEndedTail indicates a sequence ending in an open-ended special
	// key. Such a binding could only fire on a key it does not claim, and
	// that key would be lost.
	ErrOpenEndedTail = errors.New("key sequence ends in an open-ended special key")
)

// MatchKind is the outcome of matching a token buffer.
type MatchKind uint8

const (
	// MatchWaiting indicates the buffer is a valid prefix; more input is needed.
	MatchWaiting MatchKind = iota

	// MatchFailed indicates no binding is reachable with this buffer.
	MatchFailed

	// MatchSuccess indicates a binding was reached.
	MatchSuccess
)

// String returns a string representation of the kind.
func (k MatchKind) String() string {
	switch k {
	case MatchWaiting:
		return "waiting"
	case MatchFailed:
		return "failed"
	case MatchSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Result is the outcome of Mapper.Match.
type Result[T any] struct {
	Kind MatchKind

	// Consumed is the number of input tokens the binding accounts for.
	// Only meaningful on success.
	Consumed int

	// Args is the merged argument set. Only set on success.
	Args Args

	// Binding is the matched binding. Only set on success.
	Binding *Binding[T]
}

// Mapper owns one trie of bindings and the special keys that may appear in it.
//
// A Mapper is built once and then only read. It is not safe to call Map
// concurrently with Match.
type Mapper[T any] struct {
	root        *node[T]
	specials    []SpecialKey
	byIndicator map[string]SpecialKey
}

// NewMapper creates an empty mapper. The order of specials is the priority
// order used when more than one special key could claim a token.
func NewMapper[T any](specials ...SpecialKey) *Mapper[T] {
	m := &Mapper[T]{
		root:        newNode[T](),
		specials:    specials,
		byIndicator: make(map[string]SpecialKey, len(specials)),
	}
	for _, sk := range specials {
		m.byIndicator[sk.Indicator()] = sk
	}
	return m
}

// Specials returns the special keys in priority order.
func (m *Mapper[T]) Specials() []SpecialKey {
	return slices.Clone(m.specials)
}

// Map registers a whitespace-separated key sequence. Registering an identical
// sequence again replaces the previous binding.
func (m *Mapper[T]) Map(joined string, target T, args Args) (*Binding[T], error) {
	tokens, err := m.parse(joined)
	if err != nil {
		return nil, err
	}
	tail := tokens[len(tokens)-1]
	if oe, ok := m.byIndicator[tail].(OpenEnded); ok && oe.OpenEnded() {
		return nil, fmt.Errorf("mapping %q: %w: %s", joined, ErrOpenEndedTail, tail)
	}

	// Validate the whole path before touching the trie so a rejected
	// registration leaves no half-built chord behind.
	n := m.root
	for i, tok := range tokens {
		child, ok := n.children[tok]
		if !ok {
			break
		}
		last := i == len(tokens)-1
		if last && !child.isTerminal() {
			return nil, fmt.Errorf("mapping %q: %w: longer chords start here", joined, ErrPrefixConflict)
		}
		if !last && child.isTerminal() {
			return nil, fmt.Errorf("mapping %q: %w: %q is already bound", joined, ErrPrefixConflict, child.binding.Keys)
		}
		n = child
	}

	n = m.root
	for i, tok := range tokens {
		m.unmapConflicts(n, tok)

		if i == len(tokens)-1 {
			b := &Binding[T]{Keys: key.Join(tokens), Target: target}
			if args != nil {
				b.Args = args.Clone()
			}
			n.children[tok] = &node[T]{binding: b}
			return b, nil
		}

		child, ok := n.children[tok]
		if !ok {
			child = newNode[T]()
			n.children[tok] = child
		}
		n = child
	}
	panic("unreachable")
}

// MustMap is like Map but panics on error.
// Use only for built-in tables that are known to be valid.
func (m *Mapper[T]) MustMap(joined string, target T, args Args) *Binding[T] {
	b, err := m.Map(joined, target, args)
	if err != nil {
		panic(err)
	}
	return b
}

// Unmap removes the binding for an exact key sequence, pruning nodes that
// become empty. Returns false if the sequence was not bound.
func (m *Mapper[T]) Unmap(joined string) bool {
	tokens, err := m.parse(joined)
	if err != nil {
		return false
	}

	path := make([]*node[T], 0, len(tokens)+1)
	path = append(path, m.root)
	n := m.root
	for _, tok := range tokens {
		child, ok := n.children[tok]
		if !ok {
			return false
		}
		path = append(path, child)
		n = child
	}
	if !n.isTerminal() {
		return false
	}

	// Prune from leaf to root.
	last := len(tokens) - 1
	delete(path[last].children, tokens[last])
	for i := last; i > 0; i-- {
		if len(path[i].children) > 0 {
			break
		}
		delete(path[i-1].children, tokens[i-1])
	}
	return true
}

// Lookup returns the binding registered for an exact key sequence,
// indicators included, or nil. It does not run special keys.
func (m *Mapper[T]) Lookup(joined string) *Binding[T] {
	tokens, err := m.parse(joined)
	if err != nil {
		return nil
	}
	n := m.root
	for _, tok := range tokens {
		child, ok := n.children[tok]
		if !ok {
			return nil
		}
		n = child
	}
	return n.binding
}

// Bindings returns every terminal binding sorted by key sequence.
func (m *Mapper[T]) Bindings() []*Binding[T] {
	var out []*Binding[T]
	var walk func(n *node[T])
	walk = func(n *node[T]) {
		if n.isTerminal() {
			out = append(out, n.binding)
			return
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(m.root)

	sort.Slice(out, func(i, j int) bool {
		return out[i].Keys < out[j].Keys
	})
	return out
}

// Match resolves inputs against the trie. inputs must be canonical tokens,
// as produced by key.Event.Token.
func (m *Mapper[T]) Match(inputs []string) Result[T] {
	n := m.root
	args := Args{}
	i := 0

	for i < len(inputs) && !n.isTerminal() {
		tok := inputs[i]
		if child, ok := n.children[tok]; ok && !key.IsIndicator(tok) {
			n = child
			i++
			continue
		}

		res, sk := m.matchSpecial(n, inputs[i:])
		switch res.Kind {
		case SpecialWaiting:
			return Result[T]{Kind: MatchWaiting}
		case SpecialSuccess:
			args.merge(res.Args)
			n = n.children[sk.Indicator()]
			i += max(res.Consumed, 1)
		default:
			return Result[T]{Kind: MatchFailed}
		}
	}

	if !n.isTerminal() {
		return Result[T]{Kind: MatchWaiting}
	}

	// Static arguments win over whatever the special keys matched.
	args.merge(n.binding.Args)
	return Result[T]{
		Kind:     MatchSuccess,
		Consumed: min(i, len(inputs)),
		Args:     args,
		Binding:  n.binding,
	}
}

// matchSpecial asks the special keys that have a child at n, in priority
// order, to claim inputs. It returns the first answer that is not
// NotApplicable and the special key that gave it.
func (m *Mapper[T]) matchSpecial(n *node[T], inputs []string) (SpecialResult, SpecialKey) {
	for _, sk := range m.specials {
		if _, ok := n.children[sk.Indicator()]; !ok {
			continue
		}
		res := sk.Match(inputs)
		if res.Kind != NotApplicable {
			return res, sk
		}
	}
	return Skip(), nil
}

// unmapConflicts lets every special key prune the siblings of incoming at n.
func (m *Mapper[T]) unmapConflicts(n *node[T], incoming string) {
	for _, sk := range m.specials {
		siblings := make([]string, 0, len(n.children))
		for _, tok := range n.tokens() {
			if tok != incoming {
				siblings = append(siblings, tok)
			}
		}
		if len(siblings) == 0 {
			return
		}

		keep := sk.UnmapConflicts(siblings, incoming)
		for _, tok := range siblings {
			if !slices.Contains(keep, tok) {
				delete(n.children, tok)
			}
		}
	}
}

// parse splits and canonicalizes a mapping string and checks its indicators.
func (m *Mapper[T]) parse(joined string) ([]string, error) {
	tokens, err := key.Split(joined)
	if err != nil {
		return nil, fmt.Errorf("mapping %q: %w", joined, err)
	}
	for i, tok := range tokens {
		tokens[i] = key.Canonical(tok)
		if key.IsIndicator(tokens[i]) {
			if _, ok := m.byIndicator[tokens[i]]; !ok {
				return nil, fmt.Errorf("mapping %q: %w: %s", joined, ErrUnknownIndicator, tokens[i])
			}
		}
	}
	return tokens, nil
}

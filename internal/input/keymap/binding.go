package keymap

// Binding is a terminal entry in the trie. It associates a complete key
// sequence with a target and the static arguments passed along with it.
// Bindings are not modified after Map returns; registering the same sequence
// again replaces the Binding.
type Binding[T any] struct {
	// Keys is the normalized mapping string, tokens joined by one space.
	Keys string

	// Target is what the sequence resolves to.
	Target T

	// Args are fixed arguments for the target.
	Args Args
}

// node is one level of the trie. A child is either another node (more
// chord steps follow) or a terminal binding, never both.
type node[T any] struct {
	children map[string]*node[T]
	binding  *Binding[T]
}

func newNode[T any]() *node[T] {
	return &node[T]{children: make(map[string]*node[T])}
}

func (n *node[T]) isTerminal() bool {
	return n.binding != nil
}

// tokens returns the child tokens of n.
func (n *node[T]) tokens() []string {
	out := make([]string, 0, len(n.children))
	for tok := range n.children {
		out = append(out, tok)
	}
	return out
}

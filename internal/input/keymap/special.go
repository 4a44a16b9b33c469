package keymap

// SpecialKind is the answer of a special key to a piece of input.
type SpecialKind uint8

const (
	// NotApplicable means the special key does not claim the input.
	// The mapper moves on to the next candidate.
	NotApplicable SpecialKind = iota

	// SpecialWaiting means the input is a valid prefix for this special key.
	SpecialWaiting

	// SpecialFailed means the input can never match here, no matter what
	// follows. It stops the search.
	SpecialFailed

	// SpecialSuccess means the special key consumed input and contributes
	// arguments.
	SpecialSuccess
)

// String returns a string representation of the kind.
func (k SpecialKind) String() string {
	switch k {
	case NotApplicable:
		return "not-applicable"
	case SpecialWaiting:
		return "waiting"
	case SpecialFailed:
		return "failed"
	case SpecialSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// SpecialResult is returned by SpecialKey.Match.
type SpecialResult struct {
	Kind SpecialKind

	// Consumed is the number of input tokens claimed on success. Always >= 1.
	Consumed int

	// Args are merged into the final argument set on success.
	Args Args
}

// SpecialKey is a wildcard class participating in matching.
type SpecialKey interface {
	// Indicator is the trie token of the class, e.g. "{N}".
	Indicator() string

	// Match inspects the remaining input, starting at the token the literal
	// lookup failed on. inputs is never empty.
	Match(inputs []string) SpecialResult

	// UnmapConflicts is called before incoming is placed among siblings
	// under one parent. It returns the siblings that may stay; the mapper
	// removes the rest.
	UnmapConflicts(siblings []string, incoming string) []string
}

// OpenEnded is implemented by special keys whose match only ends at a token
// they do not claim, like a digit run. Map rejects sequences ending in such
// an indicator.
type OpenEnded interface {
	OpenEnded() bool
}

// Convenience constructors for special key implementations.

// Waiting returns a SpecialWaiting result.
func Waiting() SpecialResult { return SpecialResult{Kind: SpecialWaiting} }

// Failed returns a SpecialFailed result.
func Failed() SpecialResult { return SpecialResult{Kind: SpecialFailed} }

// Skip returns a NotApplicable result.
func Skip() SpecialResult { return SpecialResult{Kind: NotApplicable} }

// Success returns a SpecialSuccess result.
func Success(consumed int, args Args) SpecialResult {
	return SpecialResult{Kind: SpecialSuccess, Consumed: consumed, Args: args}
}

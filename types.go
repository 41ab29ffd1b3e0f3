package automaton

import "github.com/felixgeelhaar/automaton/internal/ir"

// Re-export types from internal/ir for public API
type (
	// Kind distinguishes deterministic from nondeterministic machines
	Kind = ir.Kind
	// Set is an unordered collection of distinct values
	Set[T comparable] = ir.Set[T]
	// Symbol is an input symbol or its absence (epsilon)
	Symbol[I comparable] = ir.Symbol[I]
	// Key identifies a transition by source state and symbol
	Key[S, I comparable] = ir.Key[S, I]
	// Edge is a labelled arc of a transition table
	Edge[S, I comparable] = ir.Edge[S, I]
	// Target is a live state or the dead outcome of a deterministic step
	Target[S comparable] = ir.Target[S]
	// Configuration is the live branch set of a nondeterministic computation, or halted
	Configuration[S comparable] = ir.Configuration[S]
	// Description is the static part of a machine shared by both kinds
	Description[S, I, O comparable] = ir.Description[S, I, O]
	// ValidationError lists every problem found while constructing a machine
	ValidationError = ir.ValidationError
	// ValidationIssue is a single coded validation problem
	ValidationIssue = ir.ValidationIssue
	// InternalConsistencyError reports a translation lookup that cannot miss on a valid machine
	InternalConsistencyError = ir.InternalConsistencyError
)

// Re-export constants
const (
	KindDeterministic    = ir.KindDeterministic
	KindNondeterministic = ir.KindNondeterministic
)

// Re-export errors
var (
	ErrMalformedTransitionTable = ir.ErrMalformedTransitionTable
	ErrEpsilonNotPermitted      = ir.ErrEpsilonNotPermitted
	ErrMalformedDescription     = ir.ErrMalformedDescription
	ErrNullInput                = ir.ErrNullInput
	ErrNoTranslations           = ir.ErrNoTranslations
	ErrInternalConsistency      = ir.ErrInternalConsistency
)

// NewSet creates a set holding the given items
func NewSet[T comparable](items ...T) Set[T] {
	return ir.NewSet(items...)
}

// Intersects reports whether a and b share at least one item.
// A nil set, such as a transducer's accept states, shares nothing.
func Intersects[T comparable](a, b Set[T]) bool {
	return ir.Intersects(a, b)
}

// Sym wraps an input symbol
func Sym[I comparable](a I) Symbol[I] {
	return ir.Sym(a)
}

// Epsilon returns the absent symbol
func Epsilon[I comparable]() Symbol[I] {
	return ir.Epsilon[I]()
}

// On builds the transition key for reading a from s
func On[S, I comparable](s S, a I) Key[S, I] {
	return ir.On(s, a)
}

// EpsilonFrom builds the epsilon transition key for s
func EpsilonFrom[S, I comparable](s S) Key[S, I] {
	return ir.EpsilonFrom[S, I](s)
}

// Live wraps a reachable state
func Live[S comparable](s S) Target[S] {
	return ir.Live(s)
}

// Dead returns the halted deterministic outcome
func Dead[S comparable]() Target[S] {
	return ir.Dead[S]()
}

// Branches builds a configuration; an empty set yields the halted configuration
func Branches[S comparable](states Set[S]) Configuration[S] {
	return ir.Branches(states)
}

// BranchesOf builds a configuration from individual states
func BranchesOf[S comparable](states ...S) Configuration[S] {
	return ir.BranchesOf(states...)
}

// Halted returns the configuration in which every branch has died
func Halted[S comparable]() Configuration[S] {
	return ir.Halted[S]()
}

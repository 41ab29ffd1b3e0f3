package ir

import "fmt"

// Kind distinguishes deterministic from nondeterministic machines
type Kind int

const (
	// KindDeterministic maps every (state, symbol) pair to exactly one state
	KindDeterministic Kind = iota
	// KindNondeterministic maps (state, symbol-or-epsilon) pairs to state sets
	KindNondeterministic
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindDeterministic:
		return "deterministic"
	case KindNondeterministic:
		return "nondeterministic"
	default:
		return "unknown"
	}
}

// Symbol is an input symbol or its absence.
// The absent symbol is epsilon in a transition key and "nothing read"
// in step zero of a computation.
type Symbol[I comparable] struct {
	value   I
	present bool
}

// Sym wraps an input symbol
func Sym[I comparable](a I) Symbol[I] {
	return Symbol[I]{value: a, present: true}
}

// Epsilon returns the absent symbol
func Epsilon[I comparable]() Symbol[I] {
	return Symbol[I]{}
}

// Value returns the wrapped symbol and whether one is present
func (s Symbol[I]) Value() (I, bool) {
	return s.value, s.present
}

// IsEpsilon reports whether no symbol is present
func (s Symbol[I]) IsEpsilon() bool {
	return !s.present
}

// String returns the symbol, or "ε" when absent
func (s Symbol[I]) String() string {
	if !s.present {
		return "ε"
	}
	return fmt.Sprint(s.value)
}

// Key identifies a transition: a source state and the symbol read from it
type Key[S, I comparable] struct {
	State  S
	Symbol Symbol[I]
}

// On builds the transition key for reading a from s
func On[S, I comparable](s S, a I) Key[S, I] {
	return Key[S, I]{State: s, Symbol: Sym(a)}
}

// EpsilonFrom builds the epsilon transition key for s
func EpsilonFrom[S, I comparable](s S) Key[S, I] {
	return Key[S, I]{State: s, Symbol: Epsilon[I]()}
}

// String returns "(state, symbol)"
func (k Key[S, I]) String() string {
	return fmt.Sprintf("(%v, %s)", k.State, k.Symbol)
}

// Edge is a single labelled arc of a transition table
type Edge[S, I comparable] struct {
	From   S
	Symbol Symbol[I]
	To     S
}

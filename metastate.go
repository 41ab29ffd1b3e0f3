package automaton

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// MetaState is a state made of a set of substates. Two meta-states are equal
// exactly when their substate sets are, whatever order the substates were
// added in, so MetaState can itself serve as the state type of a machine.
//
// Substates are identified by their printed form: two distinct values of S
// that print the same collapse into one substate.
type MetaState[S comparable] struct {
	key string
	n   int
}

// NewMetaState builds the meta-state of states. A nil or empty set yields
// the empty meta-state, which is also the zero MetaState.
func NewMetaState[S comparable](states Set[S]) MetaState[S] {
	if states == nil || states.IsEmpty() {
		return MetaState[S]{}
	}

	parts := make([]string, 0, states.Cardinality())
	states.Each(func(s S) bool {
		parts = append(parts, strconv.Quote(fmt.Sprint(s)))
		return false
	})
	slices.Sort(parts)
	parts = slices.Compact(parts)
	return MetaState[S]{key: "{" + strings.Join(parts, ", ") + "}", n: len(parts)}
}

// MetaStateOf builds the meta-state of a configuration's branches.
// A halted configuration yields the empty meta-state.
func MetaStateOf[S comparable](cfg Configuration[S]) MetaState[S] {
	return NewMetaState(cfg.States())
}

// Len returns the number of substates
func (m MetaState[S]) Len() int { return m.n }

// IsEmpty reports whether the meta-state has no substates
func (m MetaState[S]) IsEmpty() bool { return m.n == 0 }

// String returns the canonical form, e.g. {"a", "b"}
func (m MetaState[S]) String() string {
	if m.key == "" {
		return "{}"
	}
	return m.key
}

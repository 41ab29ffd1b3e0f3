package ir

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTransitionTable matches a *ValidationError whose transition
	// table is incomplete, refers to undeclared states or symbols, or is
	// otherwise ill-formed.
	ErrMalformedTransitionTable = errors.New("malformed transition table")

	// ErrEpsilonNotPermitted matches a *ValidationError reporting epsilon
	// transitions in a deterministic machine or a transducer.
	ErrEpsilonNotPermitted = errors.New("epsilon transitions not permitted")

	// ErrMalformedDescription matches a *ValidationError reporting a problem
	// with the states, start state, accept states or translation maps.
	ErrMalformedDescription = errors.New("malformed machine description")

	// ErrNullInput is returned when an input sequence or a set of inputs is absent
	ErrNullInput = errors.New("input is absent")

	// ErrNoTranslations is returned when transducing on a machine that has no
	// translation map of the requested kind
	ErrNoTranslations = errors.New("machine has no translations")

	// ErrInternalConsistency matches an *InternalConsistencyError
	ErrInternalConsistency = errors.New("internal consistency violated")
)

// InternalConsistencyError reports a translation lookup that construction-time
// validation guarantees cannot miss.
type InternalConsistencyError struct {
	Translation string // "mealy" or "moore"
	Key         string // the missing transition key or state
}

func (e *InternalConsistencyError) Error() string {
	return fmt.Sprintf("%s translation has no entry for %s", e.Translation, e.Key)
}

// Is lets errors.Is match ErrInternalConsistency
func (e *InternalConsistencyError) Is(target error) bool {
	return target == ErrInternalConsistency
}

// NewInternalConsistencyError creates an InternalConsistencyError for key
func NewInternalConsistencyError(translation string, key any) *InternalConsistencyError {
	return &InternalConsistencyError{
		Translation: translation,
		Key:         fmt.Sprint(key),
	}
}

package ir

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationIssue represents a single validation problem
type ValidationIssue struct {
	Code    string   // e.g., "INCOMPLETE_TABLE", "TARGET_NOT_DECLARED"
	Message string   // Human-readable description
	Path    []string // e.g., ["transitions", "(q0, 1)"]
}

// String returns a human-readable representation of the issue
func (v ValidationIssue) String() string {
	if len(v.Path) > 0 {
		return fmt.Sprintf("[%s] %s (at %s)", v.Code, v.Message, strings.Join(v.Path, "."))
	}
	return fmt.Sprintf("[%s] %s", v.Code, v.Message)
}

// ValidationError contains all validation issues found during validation
type ValidationError struct {
	Issues []ValidationIssue
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	if len(e.Issues) == 1 {
		return e.Issues[0].String()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("validation failed with %d issues:\n", len(e.Issues)))
	for i, issue := range e.Issues {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, issue.String()))
	}
	return b.String()
}

// Is reports whether any issue falls in the category named by target:
// ErrMalformedTransitionTable, ErrEpsilonNotPermitted or ErrMalformedDescription
func (e *ValidationError) Is(target error) bool {
	for _, issue := range e.Issues {
		if codeCategory(issue.Code) == target {
			return true
		}
	}
	return false
}

// AddIssue adds a validation issue to the error
func (e *ValidationError) AddIssue(code, message string, path ...string) {
	e.Issues = append(e.Issues, ValidationIssue{
		Code:    code,
		Message: message,
		Path:    path,
	})
}

// HasIssues returns true if there are any validation issues
func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

// HasCode returns true if any issue carries code
func (e *ValidationError) HasCode(code string) bool {
	for _, issue := range e.Issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}

// Merge appends the issues of other
func (e *ValidationError) Merge(other *ValidationError) {
	if other != nil {
		e.Issues = append(e.Issues, other.Issues...)
	}
}

// Sort orders issues by code, then path, then message
func (e *ValidationError) Sort() {
	slices.SortStableFunc(e.Issues, func(a, b ValidationIssue) int {
		if c := strings.Compare(a.Code, b.Code); c != 0 {
			return c
		}
		if c := strings.Compare(strings.Join(a.Path, "."), strings.Join(b.Path, ".")); c != 0 {
			return c
		}
		return strings.Compare(a.Message, b.Message)
	})
}

// Validation error codes
const (
	// Transition table
	ErrCodeIncompleteTable     = "INCOMPLETE_TABLE"
	ErrCodeStateNotDeclared    = "STATE_NOT_DECLARED"
	ErrCodeSymbolNotDeclared   = "SYMBOL_NOT_DECLARED"
	ErrCodeTargetNotDeclared   = "TARGET_NOT_DECLARED"
	ErrCodeTargetsNotSubset    = "TARGETS_NOT_SUBSET"
	ErrCodeEpsilonNotPermitted = "EPSILON_NOT_PERMITTED"

	// Builder
	ErrCodeMissingStart        = "MISSING_START"
	ErrCodeDuplicateState      = "DUPLICATE_STATE"
	ErrCodeDuplicateTransition = "DUPLICATE_TRANSITION"
	ErrCodeMultipleTargets     = "MULTIPLE_TARGETS"

	// Description
	ErrCodeNoStates          = "NO_STATES"
	ErrCodeStartNotDeclared  = "START_NOT_DECLARED"
	ErrCodeAcceptNotSubset   = "ACCEPT_NOT_SUBSET"
	ErrCodeOutputNotDeclared = "OUTPUT_NOT_DECLARED"
	ErrCodeMealyKeysMismatch = "MEALY_KEYS_MISMATCH"
	ErrCodeMooreKeysMismatch = "MOORE_KEYS_MISMATCH"
)

// codeCategory maps an issue code to the sentinel error it matches
func codeCategory(code string) error {
	switch code {
	case ErrCodeEpsilonNotPermitted:
		return ErrEpsilonNotPermitted
	case ErrCodeNoStates, ErrCodeStartNotDeclared, ErrCodeAcceptNotSubset,
		ErrCodeOutputNotDeclared, ErrCodeMealyKeysMismatch, ErrCodeMooreKeysMismatch,
		ErrCodeMissingStart, ErrCodeDuplicateState:
		return ErrMalformedDescription
	default:
		return ErrMalformedTransitionTable
	}
}

// ValidateDeterministic checks a deterministic machine
func ValidateDeterministic[S, I, O comparable](m *Deterministic[S, I, O]) *ValidationError {
	_, errs := Validate(KindDeterministic, &m.Description, m.table())
	return errs
}

// ValidateNondeterministic checks a nondeterministic machine and records
// whether its table contains epsilon transitions
func ValidateNondeterministic[S, I, O comparable](m *Nondeterministic[S, I, O]) *ValidationError {
	hasEpsilon, errs := Validate(KindNondeterministic, &m.Description, m.table())
	m.HasEpsilon = hasEpsilon
	return errs
}

// Validate checks a description and its transition table for the given kind.
// Deterministic tables must be total over states × alphabet with every value
// a declared state. Nondeterministic tables need only well-formed keys and
// values that are subsets of the states; epsilon keys are legal unless the
// machine is a transducer. It reports whether any epsilon key exists.
func Validate[S, I, O comparable](kind Kind, d *Description[S, I, O], table map[Key[S, I]][]S) (bool, *ValidationError) {
	errs := &ValidationError{}

	validateDescription(d, errs)

	hasEpsilon := false
	for key, targets := range table {
		keyPath := []string{"transitions", key.String()}

		if !d.HasState(key.State) {
			errs.AddIssue(ErrCodeStateNotDeclared,
				fmt.Sprintf("transition source '%v' is not a declared state", key.State),
				keyPath...)
		}

		if a, ok := key.Symbol.Value(); ok {
			if !d.HasSymbol(a) {
				errs.AddIssue(ErrCodeSymbolNotDeclared,
					fmt.Sprintf("transition symbol '%v' is not in the input alphabet", a),
					keyPath...)
			}
		} else {
			hasEpsilon = true
			switch {
			case kind == KindDeterministic:
				errs.AddIssue(ErrCodeEpsilonNotPermitted,
					"deterministic machines cannot have epsilon transitions",
					keyPath...)
			case d.IsTransducer():
				errs.AddIssue(ErrCodeEpsilonNotPermitted,
					"transducers cannot have epsilon transitions",
					keyPath...)
			}
		}

		if kind == KindDeterministic {
			if len(targets) != 1 {
				errs.AddIssue(ErrCodeMultipleTargets,
					fmt.Sprintf("deterministic transition must have exactly one target, got %d", len(targets)),
					keyPath...)
			}
			for _, t := range targets {
				if !d.HasState(t) {
					errs.AddIssue(ErrCodeTargetNotDeclared,
						fmt.Sprintf("transition target '%v' is not a declared state", t),
						keyPath...)
				}
			}
			continue
		}

		var outside []string
		for _, t := range targets {
			if !d.HasState(t) {
				outside = append(outside, fmt.Sprint(t))
			}
		}
		if len(outside) > 0 {
			slices.Sort(outside)
			errs.AddIssue(ErrCodeTargetsNotSubset,
				fmt.Sprintf("transition targets [%s] are not declared states", strings.Join(outside, ", ")),
				keyPath...)
		}
	}

	if kind == KindDeterministic {
		for _, s := range d.States {
			for _, a := range SetItems(NewSet(d.Alphabet...)) {
				if _, ok := table[On(s, a)]; !ok {
					errs.AddIssue(ErrCodeIncompleteTable,
						fmt.Sprintf("no transition for state '%v' on symbol '%v'", s, a),
						"transitions", On(s, a).String())
				}
			}
		}
	}

	validateTranslations(d, table, errs)

	if errs.HasIssues() {
		errs.Sort()
		return hasEpsilon, errs
	}
	return hasEpsilon, nil
}

// validateDescription checks the parts of a description that do not depend on the table
func validateDescription[S, I, O comparable](d *Description[S, I, O], errs *ValidationError) {
	if len(d.States) == 0 {
		errs.AddIssue(ErrCodeNoStates, "at least one state is required")
	}

	seen := NewSet[S]()
	for i, s := range d.States {
		if !seen.Add(s) {
			errs.AddIssue(ErrCodeDuplicateState,
				fmt.Sprintf("state '%v' is declared more than once", s),
				"states", fmt.Sprintf("%d", i))
		}
	}

	if len(d.States) > 0 && !d.HasState(d.Start) {
		errs.AddIssue(ErrCodeStartNotDeclared,
			fmt.Sprintf("start state '%v' not found in states", d.Start))
	}

	for _, s := range SetItems(d.Accept) {
		if !d.HasState(s) {
			errs.AddIssue(ErrCodeAcceptNotSubset,
				fmt.Sprintf("accept state '%v' not found in states", s),
				"accept", fmt.Sprint(s))
		}
	}
}

// validateTranslations checks the Mealy and Moore maps against the table and states
func validateTranslations[S, I, O comparable](d *Description[S, I, O], table map[Key[S, I]][]S, errs *ValidationError) {
	if d.Mealy != nil {
		for key, out := range d.Mealy {
			path := []string{"mealy", key.String()}
			if _, ok := table[key]; !ok {
				errs.AddIssue(ErrCodeMealyKeysMismatch,
					fmt.Sprintf("mealy translation for %s has no matching transition", key),
					path...)
			}
			if !d.HasOutput(out) {
				errs.AddIssue(ErrCodeOutputNotDeclared,
					fmt.Sprintf("mealy output '%v' is not in the output alphabet", out),
					path...)
			}
		}
		for key := range table {
			if _, ok := d.Mealy[key]; !ok {
				errs.AddIssue(ErrCodeMealyKeysMismatch,
					fmt.Sprintf("transition %s has no mealy translation", key),
					"mealy", key.String())
			}
		}
	}

	if d.Moore != nil {
		for s, out := range d.Moore {
			path := []string{"moore", fmt.Sprint(s)}
			if !d.HasState(s) {
				errs.AddIssue(ErrCodeMooreKeysMismatch,
					fmt.Sprintf("moore translation for '%v' is not a declared state", s),
					path...)
			}
			if !d.HasOutput(out) {
				errs.AddIssue(ErrCodeOutputNotDeclared,
					fmt.Sprintf("moore output '%v' is not in the output alphabet", out),
					path...)
			}
		}
		for _, s := range d.States {
			if _, ok := d.Moore[s]; !ok {
				errs.AddIssue(ErrCodeMooreKeysMismatch,
					fmt.Sprintf("state '%v' has no moore translation", s),
					"moore", fmt.Sprint(s))
			}
		}
	}
}

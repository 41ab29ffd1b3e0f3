package parser

import (
	"fmt"
	"reflect"
	"strings"
)

// Marker type names for detection.
const (
	MarkerMachineDefinition = "MachineDef"
	MarkerState             = "StateNode"
	MarkerAcceptState       = "AcceptNode"
)

// ParseMachineStruct parses a struct type into a MachineSchema.
// The struct must have an embedded MachineDef marker type.
func ParseMachineStruct(t reflect.Type) (*MachineSchema, error) {
	if t == nil {
		return nil, fmt.Errorf("expected struct, got nil type")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct, got %s", t.Kind())
	}

	schema := &MachineSchema{}

	// Find and parse the MachineDef marker
	found := false
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if isMarkerType(field.Type, MarkerMachineDefinition) {
			if err := parseMachineTag(field.Tag, schema); err != nil {
				return nil, fmt.Errorf("invalid machine tag: %w", err)
			}
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("struct must embed automaton.MachineDef")
	}

	// Parse state fields in declaration order
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if isMarkerType(field.Type, MarkerMachineDefinition) {
			continue
		}

		state, err := parseStateField(field)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		if state != nil {
			schema.States = append(schema.States, state)
		}
	}

	if err := schema.Check(); err != nil {
		return nil, err
	}
	return schema, nil
}

// parseStateField parses a struct field into a StateSchema.
// Fields of other types are not states and yield nil.
func parseStateField(field reflect.StructField) (*StateSchema, error) {
	var accept bool
	switch {
	case isMarkerType(field.Type, MarkerState):
	case isMarkerType(field.Type, MarkerAcceptState):
		accept = true
	default:
		return nil, nil
	}

	name := field.Tag.Get("name")
	if name == "" {
		name = toSnakeCase(field.Name)
	}
	state := &StateSchema{
		Name:   name,
		Accept: accept,
		Emit:   strings.TrimSpace(field.Tag.Get("emit")),
	}

	if on := field.Tag.Get("on"); on != "" {
		transitions, err := parseTransitions(on)
		if err != nil {
			return nil, fmt.Errorf("invalid 'on' tag: %w", err)
		}
		state.Transitions = transitions
	}
	return state, nil
}

// parseMachineTag parses the machine definition tag.
// Format: `id:"parity" start:"q0" alphabet:"0,1" outputs:"even,odd" kind:"deterministic" version:"1.0.0"`
func parseMachineTag(tag reflect.StructTag, schema *MachineSchema) error {
	schema.ID = tag.Get("id")
	schema.Start = tag.Get("start")
	schema.Kind = tag.Get("kind")
	schema.Version = tag.Get("version")
	schema.Alphabet = splitTrim(tag.Get("alphabet"), ",")
	schema.Outputs = splitTrim(tag.Get("outputs"), ",")
	schema.Acceptor = tag.Get("acceptor") == "true"

	if schema.ID == "" {
		return fmt.Errorf("missing required 'id' tag")
	}
	if schema.Start == "" {
		return fmt.Errorf("missing required 'start' tag")
	}
	return nil
}

// parseTransitions parses the transition string.
// Format: "0->q0,1->q1" or "ε->a|b" or "1->q1/odd"
func parseTransitions(s string) ([]TransitionSchema, error) {
	var transitions []TransitionSchema

	parts := splitTrim(s, ",")
	for i, part := range parts {
		trans, err := parseTransition(part)
		if err != nil {
			return nil, fmt.Errorf("transition %d: %w", i+1, err)
		}
		transitions = append(transitions, trans)
	}

	return transitions, nil
}

// parseTransition parses a single transition.
// Format: "SYMBOL->target", "SYMBOL->t1|t2" or "SYMBOL->target/output"
func parseTransition(s string) (TransitionSchema, error) {
	trans := TransitionSchema{}

	arrowIdx := strings.Index(s, "->")
	if arrowIdx == -1 {
		return trans, fmt.Errorf("missing '->' in transition: %s", s)
	}

	trans.Symbol = strings.TrimSpace(s[:arrowIdx])
	rest := strings.TrimSpace(s[arrowIdx+2:])

	if trans.Symbol == "" {
		return trans, fmt.Errorf("empty symbol in transition: %s", s)
	}
	if trans.Symbol == EpsilonToken {
		trans.Epsilon = true
	}

	if slashIdx := strings.Index(rest, "/"); slashIdx != -1 {
		trans.Emit = strings.TrimSpace(rest[slashIdx+1:])
		rest = rest[:slashIdx]
		if trans.Emit == "" {
			return trans, fmt.Errorf("empty output in transition: %s", s)
		}
	}

	trans.Targets = splitTrim(rest, "|")
	if len(trans.Targets) == 0 {
		return trans, fmt.Errorf("empty target in transition: %s", s)
	}

	return trans, nil
}

// isMarkerType checks if a type matches a marker type name.
func isMarkerType(t reflect.Type, markerName string) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name() == markerName
}

// toSnakeCase converts CamelCase to snake_case.
// Digits stay attached to the preceding word: Q0 -> q0, EvenOnes2 -> even_ones2.
func toSnakeCase(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	var result strings.Builder
	result.Grow(len(s) + 5)

	for i, r := range runes {
		isUpper := r >= 'A' && r <= 'Z'

		if i > 0 && isUpper {
			prevIsLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextIsLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'

			// Split at a camelCase boundary or at the last capital of an acronym
			if prevIsLower || nextIsLower {
				result.WriteByte('_')
			}
		}

		if isUpper {
			result.WriteRune(r + 32)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// splitTrim splits a string and trims whitespace from each part.
func splitTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const parityYAML = `
version: "1.2.0"
id: parity
start: q0
alphabet: ["0", "1"]
states:
  - name: q0
    on:
      - {symbol: "0", to: q0}
      - {symbol: "1", to: q1}
  - name: q1
    accept: true
    on:
      - {symbol: "0", to: q1}
      - {symbol: "1", to: [q0]}
`

const epsilonJSON = `{
  "id": "eps",
  "kind": "nondeterministic",
  "start": "a",
  "alphabet": ["x"],
  "states": [
    {"name": "a", "on": [{"symbol": "ε", "to": "b"}]},
    {"name": "b", "on": [{"symbol": "x", "to": ["c"]}]},
    {"name": "c", "accept": true}
  ]
}`

func TestParse_YAML(t *testing.T) {
	schema, err := Parse([]byte(parityYAML), FormatYAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if schema.ID != "parity" || schema.Start != "q0" {
		t.Errorf("unexpected header: %+v", schema)
	}
	if len(schema.States) != 2 {
		t.Fatalf("expected 2 states, got %d", len(schema.States))
	}
	q1 := schema.States[1]
	if !q1.Accept {
		t.Error("expected q1 to accept")
	}
	if got := q1.Transitions[1].Targets; len(got) != 1 || got[0] != "q0" {
		t.Errorf("expected sequence targets [q0], got %v", got)
	}
	if got := schema.States[0].Transitions[1].Targets; len(got) != 1 || got[0] != "q1" {
		t.Errorf("expected scalar target [q1], got %v", got)
	}
}

func TestParse_JSON(t *testing.T) {
	schema, err := Parse([]byte(epsilonJSON), FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if schema.IsDeterministic() {
		t.Error("expected nondeterministic kind")
	}
	eps := schema.States[0].Transitions[0]
	if !eps.IsEpsilon() {
		t.Errorf("expected epsilon transition, got %+v", eps)
	}
	if len(eps.Targets) != 1 || eps.Targets[0] != "b" {
		t.Errorf("expected targets [b], got %v", eps.Targets)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		target error
	}{
		{"unknown format", "{}", Format("toml"), ErrUnsupportedFormat},
		{"major version", "version: 2.0.0\nid: m\nstart: s\n", FormatYAML, ErrUnsupportedVersion},
		{"garbage version", "version: banana\nid: m\nstart: s\n", FormatYAML, ErrUnsupportedVersion},
		{"missing id", "start: s\n", FormatYAML, ErrInvalidSchema},
		{"missing start", "id: m\n", FormatYAML, ErrInvalidSchema},
		{"unknown kind", "id: m\nstart: s\nkind: pushdown\n", FormatYAML, ErrInvalidSchema},
		{"unnamed state", `{"id":"m","start":"s","states":[{}]}`, FormatJSON, ErrInvalidSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestParse_MalformedTargets(t *testing.T) {
	data := "id: m\nstart: s\nstates:\n  - name: s\n    on:\n      - {symbol: a, to: {x: y}}\n"
	if _, err := Parse([]byte(data), FormatYAML); err == nil {
		t.Fatal("expected error for mapping targets")
	}
	if _, err := Parse([]byte(`{"id":"m","start":"s","states":[{"name":"s","on":[{"symbol":"a","to":3}]}]}`), FormatJSON); err == nil {
		t.Fatal("expected error for numeric targets")
	}
}

func TestParse_NullTargets(t *testing.T) {
	yamlDoc := "id: n\nkind: nondeterministic\nstart: s\nalphabet: [a]\nstates:\n  - name: s\n    on:\n      - {symbol: a, to: null}\n"
	jsonDoc := `{"id":"n","kind":"nondeterministic","start":"s","alphabet":["a"],"states":[{"name":"s","on":[{"symbol":"a","to":null}]}]}`

	for format, data := range map[Format]string{FormatYAML: yamlDoc, FormatJSON: jsonDoc} {
		schema, err := Parse([]byte(data), format)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", format, err)
		}
		if got := schema.States[0].Transitions[0].Targets; len(got) != 0 {
			t.Errorf("%s: expected no targets, got %q", format, got)
		}
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parity.yml")
	if err := os.WriteFile(path, []byte(parityYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	schema, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schema.ID != "parity" {
		t.Errorf("expected ID 'parity', got %q", schema.ID)
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := ParseFile(filepath.Join(dir, "parity.txt")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"m.yaml":     FormatYAML,
		"m.YML":      FormatYAML,
		"dir/m.json": FormatJSON,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v; expected %q", path, got, err, want)
		}
	}
}

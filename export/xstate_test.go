package export

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestXState_Acceptor(t *testing.T) {
	result := XState(NewDiagram(buildParity(t)))

	if result.ID != "parity" {
		t.Errorf("expected ID 'parity', got %s", result.ID)
	}
	if result.Initial != "q0" {
		t.Errorf("expected initial 'q0', got %s", result.Initial)
	}
	if len(result.States) != 2 {
		t.Errorf("expected 2 states, got %d", len(result.States))
	}

	q0 := result.States["q0"]
	if q0.Type != "" {
		t.Errorf("expected q0 to be atomic, got %q", q0.Type)
	}
	if got := q0.On["1"]; len(got) != 1 || got[0].Target != "q1" {
		t.Errorf("expected q0 -> q1 on 1, got %+v", got)
	}
	if q1 := result.States["q1"]; q1.Type != "final" {
		t.Errorf("expected q1 to be final, got %q", q1.Type)
	}
}

func TestXState_EpsilonAndBranches(t *testing.T) {
	result := XState(NewDiagram(buildBranching(t)))

	a := result.States["a"]
	if len(a.Always) != 1 || a.Always[0].Target != "b" {
		t.Errorf("expected always -> b, got %+v", a.Always)
	}
	if got := a.On["x"]; len(got) != 2 || got[0].Target != "a" || got[1].Target != "c" {
		t.Errorf("expected two candidates on x, got %+v", got)
	}
	if c := result.States["c"]; c.On != nil || c.Always != nil {
		t.Errorf("expected c without transitions, got %+v", c)
	}
}

func TestXState_Outputs(t *testing.T) {
	result := XState(NewDiagram(buildMealy(t)))

	got := result.States["even"].On["1"]
	if len(got) != 1 || len(got[0].Actions) != 1 || got[0].Actions[0] != "emit:o" {
		t.Errorf("expected emit:o action, got %+v", got)
	}

	d := &Diagram{
		ID:     "moore",
		Start:  "s",
		States: []DiagramState{{Name: "s", Emit: "x"}},
	}
	if entry := XState(d).States["s"].Entry; len(entry) != 1 || entry[0] != "emit:x" {
		t.Errorf("expected entry action emit:x, got %v", entry)
	}
}

func TestXStateJSON(t *testing.T) {
	d := NewDiagram(buildBranching(t))

	compact, err := XStateJSON(d, "")
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}
	if strings.Contains(compact, "\n") {
		t.Error("expected compact JSON")
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(compact), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed["id"] != "branching" {
		t.Errorf("expected id 'branching', got %v", parsed["id"])
	}

	pretty, err := XStateJSON(d, "  ")
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}
	if !strings.Contains(pretty, "\n  \"id\"") {
		t.Errorf("expected indented JSON, got:\n%s", pretty)
	}
	if !strings.Contains(pretty, `"always"`) {
		t.Error("expected always transitions in output")
	}
}

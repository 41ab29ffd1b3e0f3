package export

import (
	"encoding/json"
)

// XStateMachine represents an XState machine configuration.
// The exported JSON can be loaded into the XState visualizer (stately.ai/viz).
type XStateMachine struct {
	ID      string                `json:"id"`
	Initial string                `json:"initial,omitempty"`
	States  map[string]XStateNode `json:"states"`
}

// XStateNode represents a single state in XState format
type XStateNode struct {
	Type   string                        `json:"type,omitempty"` // "final" for accept states
	Entry  []string                      `json:"entry,omitempty"`
	On     map[string][]XStateTransition `json:"on,omitempty"`
	Always []XStateTransition            `json:"always,omitempty"` // epsilon transitions
}

// XStateTransition represents a transition in XState format
type XStateTransition struct {
	Target  string   `json:"target"`
	Actions []string `json:"actions,omitempty"`
}

// XState converts a diagram to XState format. Accept states become final
// states, epsilon transitions become "always" transitions, and outputs become
// "emit:<output>" actions (Mealy) or entry actions (Moore). Each target of a
// nondeterministic transition is a separate candidate.
func XState(d *Diagram) *XStateMachine {
	machine := &XStateMachine{
		ID:      d.ID,
		Initial: d.Start,
		States:  make(map[string]XStateNode, len(d.States)),
	}

	for _, s := range d.States {
		node := XStateNode{}
		if s.Accept {
			node.Type = "final"
		}
		if s.Emit != "" {
			node.Entry = []string{emitAction(s.Emit)}
		}
		machine.States[s.Name] = node
	}

	for _, e := range d.Edges {
		node := machine.States[e.From]
		for _, target := range e.To {
			trans := XStateTransition{Target: target}
			if e.Emit != "" {
				trans.Actions = []string{emitAction(e.Emit)}
			}
			if e.Epsilon {
				node.Always = append(node.Always, trans)
				continue
			}
			if node.On == nil {
				node.On = make(map[string][]XStateTransition)
			}
			node.On[e.Symbol] = append(node.On[e.Symbol], trans)
		}
		machine.States[e.From] = node
	}

	return machine
}

// XStateJSON returns the diagram as an XState JSON string
func XStateJSON(d *Diagram, indent string) (string, error) {
	var data []byte
	var err error
	if indent != "" {
		data, err = json.MarshalIndent(XState(d), "", indent)
	} else {
		data, err = json.Marshal(XState(d))
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func emitAction(o string) string {
	return "emit:" + o
}

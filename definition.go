package automaton

import (
	"fmt"
	"reflect"

	"github.com/felixgeelhaar/automaton/internal/logger"
	"github.com/felixgeelhaar/automaton/internal/parser"
)

// MachineDef is a marker type that must be embedded in a struct
// to define a machine using the struct-tag DSL.
//
// Use struct tags to configure the machine:
//   - id:"machineId" - Required machine identifier
//   - start:"stateName" - Required start state
//   - alphabet:"0,1" - Input symbols
//   - outputs:"even,odd" - Output symbols (transducers)
//   - kind:"nondeterministic" - Defaults to deterministic
//   - version:"1.0.0" - Optional, must satisfy ^1
//
// Example:
//
//	type Parity struct {
//	    automaton.MachineDef `id:"parity" start:"q0" alphabet:"0,1"`
//	    Q0 automaton.StateNode  `on:"0->q0,1->q1"`
//	    Q1 automaton.AcceptNode `on:"0->q1,1->q0"`
//	}
type MachineDef struct{}

// StateNode is a marker type for defining states in the struct-tag DSL.
// The state name is the snake_case field name unless a name tag is given.
//
// Use struct tags to configure the state:
//   - on:"a->target" - Transitions, comma separated
//   - on:"a->t1|t2" - Several targets (nondeterministic)
//   - on:"ε->target" - Epsilon transition (nondeterministic acceptors)
//   - on:"a->target/out" - Transition with a Mealy output
//   - emit:"out" - Moore output of the state
//   - name:"q0" - Explicit state name
type StateNode struct{}

// AcceptNode is a StateNode that is also an accept state
type AcceptNode struct{}

// Definition is a string-typed machine loaded from a file or a struct.
// Exactly one of Deterministic and Nondeterministic is set.
type Definition struct {
	ID               string
	Deterministic    *DFSM[string, string, string]
	Nondeterministic *NFSM[string, string, string]
}

// Kind returns the kind of the loaded machine
func (d *Definition) Kind() Kind {
	if d.Deterministic != nil {
		return KindDeterministic
	}
	return KindNondeterministic
}

// LoadDefinition reads a YAML or JSON machine definition from path
func LoadDefinition(path string) (*Definition, error) {
	log := logger.NewComponent("definition")
	log.Debug("loading definition", "path", path)

	schema, err := parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	def, err := FromSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	log.Debug("definition loaded", "machine", def.ID, "kind", def.Kind())
	return def, nil
}

// ParseDefinition decodes a machine definition; format is "yaml" or "json"
func ParseDefinition(data []byte, format string) (*Definition, error) {
	schema, err := parser.Parse(data, parser.Format(format))
	if err != nil {
		return nil, err
	}
	return FromSchema(schema)
}

// FromStruct builds a machine from a struct definition using the struct-tag DSL.
//
// Example:
//
//	def, err := automaton.FromStruct[Parity]()
func FromStruct[M any]() (*Definition, error) {
	var m M
	schema, err := parser.ParseMachineStruct(reflect.TypeOf(m))
	if err != nil {
		return nil, fmt.Errorf("parse struct: %w", err)
	}
	return FromSchema(schema)
}

// FromSchema builds and validates the machine described by schema
func FromSchema(schema *parser.MachineSchema) (*Definition, error) {
	if err := schema.Check(); err != nil {
		return nil, err
	}

	b := NewMachine[string, string, string](schema.ID).
		WithStart(schema.Start).
		WithAlphabet(schema.Alphabet...).
		WithOutputs(schema.Outputs...)
	if schema.Acceptor {
		b.Acceptor()
	}

	for _, st := range schema.States {
		sb := b.State(st.Name)
		if st.Accept {
			sb.Accept()
		}
		if st.Emit != "" {
			sb.Emit(st.Emit)
		}
		for _, tr := range st.Transitions {
			var tb *TransitionBuilder[string, string, string]
			if tr.IsEpsilon() {
				tb = sb.OnEpsilon()
			} else {
				tb = sb.On(tr.Symbol)
			}
			tb.Target(tr.Targets...)
			if tr.Emit != "" {
				tb.Emit(tr.Emit)
			}
		}
	}

	def := &Definition{ID: schema.ID}
	var err error
	if schema.IsDeterministic() {
		def.Deterministic, err = b.BuildDFSM()
	} else {
		def.Nondeterministic, err = b.BuildNFSM()
	}
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", schema.ID, err)
	}
	return def, nil
}

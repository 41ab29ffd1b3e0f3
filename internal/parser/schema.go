// Package parser decodes string-typed machine definitions from YAML or JSON
// documents and from struct tags.
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// EpsilonToken spells an epsilon transition in definitions
const EpsilonToken = "ε"

// SupportedVersions is the constraint every definition version must satisfy
const SupportedVersions = "^1"

// Machine kinds accepted in the kind field
const (
	KindDeterministic    = "deterministic"
	KindNondeterministic = "nondeterministic"
)

// Format names a definition encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var (
	// ErrUnsupportedFormat is returned for an unknown encoding or file extension
	ErrUnsupportedFormat = errors.New("unsupported definition format")
	// ErrUnsupportedVersion is returned when a definition version is outside SupportedVersions
	ErrUnsupportedVersion = errors.New("unsupported definition version")
	// ErrInvalidSchema is returned when a definition is structurally incomplete
	ErrInvalidSchema = errors.New("invalid machine definition")
)

// Targets is a list of target states. In YAML and JSON it may be written
// as a single scalar or as a sequence.
type Targets []string

// UnmarshalYAML accepts a scalar or a sequence of scalars
func (t *Targets) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = Targets{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*t = list
		return nil
	default:
		return fmt.Errorf("line %d: targets must be a state or a list of states", node.Line)
	}
}

// UnmarshalJSON accepts a string or an array of strings.
// null means no targets, as it does in YAML.
func (t *Targets) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = nil
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = Targets{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("targets must be a state or a list of states: %w", err)
	}
	*t = list
	return nil
}

// TransitionSchema represents a parsed transition definition.
// An empty Emit means the transition has no Mealy output.
type TransitionSchema struct {
	Symbol  string  `yaml:"symbol" json:"symbol"`
	Epsilon bool    `yaml:"epsilon,omitempty" json:"epsilon,omitempty"`
	Targets Targets `yaml:"to" json:"to"`
	Emit    string  `yaml:"emit,omitempty" json:"emit,omitempty"`
}

// IsEpsilon reports whether the transition reads no symbol
func (t TransitionSchema) IsEpsilon() bool {
	return t.Epsilon || t.Symbol == EpsilonToken
}

// StateSchema represents a parsed state definition.
// An empty Emit means the state has no Moore output.
type StateSchema struct {
	Name        string             `yaml:"name" json:"name"`
	Accept      bool               `yaml:"accept,omitempty" json:"accept,omitempty"`
	Emit        string             `yaml:"emit,omitempty" json:"emit,omitempty"`
	Transitions []TransitionSchema `yaml:"on,omitempty" json:"on,omitempty"`
}

// MachineSchema represents the complete parsed machine definition
type MachineSchema struct {
	Version  string         `yaml:"version,omitempty" json:"version,omitempty"`
	ID       string         `yaml:"id" json:"id"`
	Kind     string         `yaml:"kind,omitempty" json:"kind,omitempty"`
	Start    string         `yaml:"start" json:"start"`
	Acceptor bool           `yaml:"acceptor,omitempty" json:"acceptor,omitempty"`
	Alphabet []string       `yaml:"alphabet" json:"alphabet"`
	Outputs  []string       `yaml:"outputs,omitempty" json:"outputs,omitempty"`
	States   []*StateSchema `yaml:"states" json:"states"`
}

// IsDeterministic reports whether the schema describes a deterministic machine.
// An empty kind defaults to deterministic.
func (s *MachineSchema) IsDeterministic() bool {
	return s.Kind == "" || s.Kind == KindDeterministic
}

// Check verifies the version constraint and the fields every definition needs.
// Semantic checks on states and transitions happen when the machine is built.
func (s *MachineSchema) Check() error {
	if s.Version != "" {
		v, err := semver.NewVersion(s.Version)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrUnsupportedVersion, s.Version, err)
		}
		c, err := semver.NewConstraint(SupportedVersions)
		if err != nil {
			return err
		}
		if !c.Check(v) {
			return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, v, SupportedVersions)
		}
	}

	switch s.Kind {
	case "", KindDeterministic, KindNondeterministic:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidSchema, s.Kind)
	}
	if s.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidSchema)
	}
	if s.Start == "" {
		return fmt.Errorf("%w: missing start state", ErrInvalidSchema)
	}
	for i, st := range s.States {
		if st == nil || st.Name == "" {
			return fmt.Errorf("%w: state %d has no name", ErrInvalidSchema, i+1)
		}
	}
	return nil
}

// Parse decodes a definition document
func Parse(data []byte, format Format) (*MachineSchema, error) {
	schema := &MachineSchema{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, schema); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, schema); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := schema.Check(); err != nil {
		return nil, err
	}
	return schema, nil
}

// ParseFile reads and decodes the definition at path.
// The format is chosen by file extension.
func ParseFile(path string) (*MachineSchema, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	return Parse(data, format)
}

// FormatFromPath maps .yaml, .yml and .json extensions to a Format
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	switch {
	case strings.EqualFold(ext, "yaml"), strings.EqualFold(ext, "yml"):
		return FormatYAML, nil
	case strings.EqualFold(ext, "json"):
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

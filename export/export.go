package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the output encoding
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatDOT    Format = "dot"
	FormatXState Format = "xstate"
)

// ErrUnsupportedFormat is returned for unknown formats, or for formats that
// cannot encode the given document (DOT and XState only encode diagrams).
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat resolves a format name, case-insensitively
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatYAML, FormatDOT, FormatXState:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "gv", "graphviz":
		return FormatDOT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// ExportOptions configures the export behavior.
type ExportOptions struct {
	// Format is the output encoding (default: json)
	Format Format

	// PrettyPrint enables indented JSON output
	PrettyPrint bool

	// Indent is the string used for indentation (default: "  ")
	Indent string

	// Output is where the document will be written (default: os.Stdout)
	Output io.Writer

	// MachineID filters ExportAll to a specific machine ID (empty = export all)
	MachineID string
}

// DefaultExportOptions returns options with sensible defaults.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format:      FormatJSON,
		PrettyPrint: false,
		Indent:      "  ",
		Output:      os.Stdout,
	}
}

// Export writes a Diagram, LinearTrace or BranchTrace in the configured format.
func Export(doc any, opts ExportOptions) error {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	switch opts.format() {
	case FormatJSON:
		return writeJSON(out, doc, opts)
	case FormatYAML:
		return writeYAML(out, doc, opts)
	case FormatDOT:
		d, ok := doc.(*Diagram)
		if !ok {
			return fmt.Errorf("%w: dot cannot encode %T", ErrUnsupportedFormat, doc)
		}
		return WriteDOT(out, d)
	case FormatXState:
		d, ok := doc.(*Diagram)
		if !ok {
			return fmt.Errorf("%w: xstate cannot encode %T", ErrUnsupportedFormat, doc)
		}
		return writeJSON(out, XState(d), opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
}

// ExportAll writes several diagrams. JSON, YAML and XState produce one
// object keyed by machine ID; DOT writes one digraph per machine in ID order.
func ExportAll(diagrams map[string]*Diagram, opts ExportOptions) error {
	// Filter to specific machine if requested
	if opts.MachineID != "" {
		d, ok := diagrams[opts.MachineID]
		if !ok {
			return fmt.Errorf("machine %q not found", opts.MachineID)
		}
		return Export(d, opts)
	}

	ids := make([]string, 0, len(diagrams))
	for id := range diagrams {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	switch opts.format() {
	case FormatDOT:
		for _, id := range ids {
			if err := Export(diagrams[id], opts); err != nil {
				return fmt.Errorf("export %q failed: %w", id, err)
			}
		}
		return nil
	case FormatXState:
		result := make(map[string]*XStateMachine, len(diagrams))
		for _, id := range ids {
			result[id] = XState(diagrams[id])
		}
		opts.Format = FormatJSON
		return Export(result, opts)
	default:
		return Export(diagrams, opts)
	}
}

func (o ExportOptions) format() Format {
	if o.Format == "" {
		return FormatJSON
	}
	return o.Format
}

func (o ExportOptions) indent() string {
	if o.Indent == "" {
		return "  "
	}
	return o.Indent
}

// writeJSON writes a value as JSON followed by a newline.
func writeJSON(out io.Writer, v any, opts ExportOptions) error {
	var data []byte
	var err error

	if opts.PrettyPrint {
		data, err = json.MarshalIndent(v, "", opts.indent())
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("JSON marshal failed: %w", err)
	}

	if _, err := out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	return nil
}

func writeYAML(out io.Writer, v any, opts ExportOptions) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(len(opts.indent()))
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("YAML marshal failed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/felixgeelhaar/automaton"
	"github.com/felixgeelhaar/automaton/export"
	"github.com/felixgeelhaar/automaton/internal/logger"
	"github.com/felixgeelhaar/automaton/internal/version"
	"github.com/spf13/cobra"
)

// addRunCommand adds the run command, which records a computation
func (app *App) addRunCommand(rootCmd *cobra.Command) {
	runCmd := &cobra.Command{
		Use:   "run <definition> <input>",
		Short: "Record the computation of a machine over an input",
		Long: `Run the machine over the input and print every step, starting with step 0
(the start state, or its epsilon closure). Use --format json or yaml to emit a
trace document with a run id instead.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			return app.run(cmd, args[0], args[1], format)
		},
	}

	runCmd.Flags().StringP("format", "f", "text", "Output format (text|json|yaml)")
	rootCmd.AddCommand(runCmd)
}

func (app *App) run(cmd *cobra.Command, path, arg, format string) error {
	def, input, err := app.prepare(path, arg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), app.settings.GetDuration("timeout"))
	defer cancel()

	out := cmd.OutOrStdout()
	var trace any

	if m := def.Deterministic; m != nil {
		c, err := m.RecordContext(ctx, input)
		if err != nil {
			return err
		}
		app.log.Debug("computation recorded", "machine", def.ID, "input", len(input), "state", c.Final())
		if format == "text" {
			printComputation(out, c)
			return nil
		}
		trace = export.NewLinearTrace(m, c)
	} else {
		m := def.Nondeterministic
		c, err := m.RecordContext(ctx, input)
		if err != nil {
			return err
		}
		app.log.Debug("computation recorded", "machine", def.ID, "input", len(input), "state", c.Final())
		if format == "text" {
			printBranchComputation(out, m, c)
			return nil
		}
		trace = export.NewBranchTrace(m, c)
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	if f != export.FormatJSON && f != export.FormatYAML {
		return fmt.Errorf("%w: run supports text, json and yaml", export.ErrUnsupportedFormat)
	}
	return export.Export(trace, export.ExportOptions{Format: f, PrettyPrint: true, Output: out})
}

// addClassifyCommand adds the classify command, which prints the final state
func (app *App) addClassifyCommand(rootCmd *cobra.Command) {
	classifyCmd := &cobra.Command{
		Use:   "classify <definition> <input>",
		Short: "Print the state (or branch set) reached after an input",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, input, err := app.prepare(args[0], args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if m := def.Deterministic; m != nil {
				final, err := m.Classify(input)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, renderTarget(final))
				return nil
			}

			m := def.Nondeterministic
			final, err := m.Classify(input)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, renderConfiguration(m, final))
			return nil
		},
	}

	rootCmd.AddCommand(classifyCmd)
}

// addAcceptCommand adds the accept command
func (app *App) addAcceptCommand(rootCmd *cobra.Command) {
	acceptCmd := &cobra.Command{
		Use:   "accept <definition> <input>...",
		Short: "Decide whether an acceptor accepts each input",
		Long: `Print ACCEPT or REJECT for every input. With --all, print a single verdict
that holds only if every input is accepted. Without inputs, --all reports whether
the machine accepts nothing at all.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			return app.accept(cmd, args[0], args[1:], all)
		},
	}

	acceptCmd.Flags().Bool("all", false, "Print one verdict for the whole set of inputs")
	rootCmd.AddCommand(acceptCmd)
}

// acceptor is the part of DFSM and NFSM the accept command needs
type acceptor interface {
	IsAcceptor() bool
	Accepts(input []string) (bool, error)
	Recognizes(inputs [][]string) (bool, error)
}

func (app *App) accept(cmd *cobra.Command, path string, args []string, all bool) error {
	def, err := app.loadDefinition(path)
	if err != nil {
		return err
	}

	var m acceptor = def.Nondeterministic
	if def.Deterministic != nil {
		m = def.Deterministic
	}
	if !m.IsAcceptor() {
		return fmt.Errorf("machine %q is not an acceptor", def.ID)
	}

	inputs := make([][]string, 0, len(args))
	for _, arg := range args {
		input, err := app.splitInput(arg)
		if err != nil {
			return err
		}
		inputs = append(inputs, input)
	}

	out := cmd.OutOrStdout()
	if !all && len(inputs) == 0 {
		logger.Warn("no inputs to decide", "machine", def.ID)
		return nil
	}
	if all {
		ok, err := m.Recognizes(inputs)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, verdict(ok))
		return nil
	}

	for i, input := range inputs {
		ok, err := m.Accepts(input)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  %q\n", verdict(ok), args[i])
	}
	return nil
}

// addTransduceCommand adds the transduce command
func (app *App) addTransduceCommand(rootCmd *cobra.Command) {
	transduceCmd := &cobra.Command{
		Use:   "transduce <definition> <input>",
		Short: "Print the output sequence of a Mealy or Moore machine",
		Long: `Translate the input with the machine's Mealy (per transition) or Moore
(per state) outputs. A nondeterministic machine prints one sequence per line,
one for each surviving branch path.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			moore, _ := cmd.Flags().GetBool("moore")
			return app.transduce(cmd, args[0], args[1], moore)
		},
	}

	transduceCmd.Flags().Bool("moore", false, "Use the state outputs when the machine has both kinds")
	rootCmd.AddCommand(transduceCmd)
}

func (app *App) transduce(cmd *cobra.Command, path, arg string, moore bool) error {
	def, input, err := app.prepare(path, arg)
	if err != nil {
		return err
	}

	sep := app.settings.GetString("separator")
	if sep == "" {
		sep = " "
	}
	out := cmd.OutOrStdout()

	if m := def.Deterministic; m != nil {
		var seq []string
		if moore || !m.IsMealy() {
			seq, err = m.TransduceMoore(input)
		} else {
			seq, err = m.TransduceMealy(input)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, strings.Join(seq, sep))
		return nil
	}

	m := def.Nondeterministic
	var seqs [][]string
	if moore || !m.IsMealy() {
		seqs, err = m.TransduceMoore(input)
	} else {
		seqs, err = m.TransduceMealy(input)
	}
	if err != nil {
		return err
	}
	for _, seq := range seqs {
		fmt.Fprintln(out, strings.Join(seq, sep))
	}
	return nil
}

// addReachCommand adds the reach command
func (app *App) addReachCommand(rootCmd *cobra.Command) {
	reachCmd := &cobra.Command{
		Use:   "reach <definition>",
		Short: "List the states reachable from the start state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := app.loadDefinition(args[0])
			if err != nil {
				return err
			}

			var states []string
			if m := def.Deterministic; m != nil {
				states = m.Order(m.Reachable())
			} else {
				states = def.Nondeterministic.Order(def.Nondeterministic.Reachable())
			}
			for _, s := range states {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}

	rootCmd.AddCommand(reachCmd)
}

// addExportCommand adds the export command
func (app *App) addExportCommand(rootCmd *cobra.Command) {
	exportCmd := &cobra.Command{
		Use:   "export <definition>...",
		Short: "Export state diagrams as JSON, YAML, Graphviz DOT or XState JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			pretty, _ := cmd.Flags().GetBool("pretty")
			indent, _ := cmd.Flags().GetString("indent")
			machineID, _ := cmd.Flags().GetString("machine")
			output, _ := cmd.Flags().GetString("output")

			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			opts := export.ExportOptions{
				Format:      f,
				PrettyPrint: pretty,
				Indent:      indent,
				MachineID:   machineID,
				Output:      cmd.OutOrStdout(),
			}

			diagrams := make(map[string]*export.Diagram, len(args))
			for _, path := range args {
				def, err := app.loadDefinition(path)
				if err != nil {
					return err
				}
				if _, dup := diagrams[def.ID]; dup {
					return fmt.Errorf("duplicate machine id %q in %s", def.ID, path)
				}
				diagrams[def.ID] = diagram(def)
			}

			// Handle output file
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer func() { _ = file.Close() }()
				opts.Output = file
			}

			if len(diagrams) == 1 && machineID == "" {
				for _, d := range diagrams {
					err = export.Export(d, opts)
				}
			} else {
				err = export.ExportAll(diagrams, opts)
			}
			if err == nil && output != "" {
				logger.Info("export written", "path", output, "format", f, "machines", len(diagrams))
			}
			return err
		},
	}

	exportCmd.Flags().StringP("format", "f", "json", "Output format (json|yaml|dot|xstate)")
	exportCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
	exportCmd.Flags().String("indent", "  ", "Indentation string (used with --pretty)")
	exportCmd.Flags().String("machine", "", "Export only this machine ID")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}

func diagram(def *automaton.Definition) *export.Diagram {
	if def.Deterministic != nil {
		return export.NewDiagram(def.Deterministic)
	}
	return export.NewDiagram(def.Nondeterministic)
}

// addVersionCommand adds the version command
func (app *App) addVersionCommand(rootCmd *cobra.Command) {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the version of automaton with build information.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			detailed, _ := cmd.Flags().GetBool("detailed")
			if !detailed {
				fmt.Fprintf(out, "automaton v%s\n", version.Version)
				return nil
			}
			info, err := version.GetInfo()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, version.String())
			fmt.Fprintf(out, "go: %s\n", info.GoVersion)
			return nil
		},
	}

	versionCmd.Flags().Bool("detailed", false, "Show detailed version information")
	rootCmd.AddCommand(versionCmd)
}

// prepare loads a definition and splits its input argument
func (app *App) prepare(path, arg string) (*automaton.Definition, []string, error) {
	def, err := app.loadDefinition(path)
	if err != nil {
		return nil, nil, err
	}
	input, err := app.splitInput(arg)
	if err != nil {
		return nil, nil, err
	}
	return def, input, nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/felixgeelhaar/automaton"
	"github.com/felixgeelhaar/automaton/internal/config"
	"github.com/felixgeelhaar/automaton/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrInputTooLong is returned when an input exceeds the configured maximum
var ErrInputTooLong = errors.New("input too long")

// App represents the automaton CLI application
type App struct {
	settings *viper.Viper
	log      *log.Logger
	closer   io.Closer
}

// NewApp creates a new automaton CLI application
func NewApp() *App {
	return &App{settings: viper.New()}
}

// CreateRootCommand creates and configures the root command
func (app *App) CreateRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "automaton",
		Short: "Run and inspect finite-state machines",
		Long: `automaton loads deterministic and nondeterministic finite-state machines
from YAML or JSON definitions and runs them over input strings: record the
computation, classify, accept or reject, transduce, list reachable states,
or export the state diagram.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  app.configure,
		PersistentPostRunE: app.shutdown,
	}

	// Add global flags
	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.StringP("separator", "s", ",", "Separator between input symbols (empty splits into characters)")
	flags.Duration("timeout", 5*time.Second, "Abort computations running longer than this")
	flags.Int("max-input", 100000, "Reject inputs with more symbols than this (0 = unlimited)")
	flags.String("env-file", "", "Load environment variables from this file instead of .env")

	for _, name := range []string{"log-level", "log-file", "separator", "timeout", "max-input", "env-file"} {
		if err := app.settings.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind %s flag: %v", name, err))
		}
	}

	// Add all subcommands
	app.addRunCommand(rootCmd)
	app.addClassifyCommand(rootCmd)
	app.addAcceptCommand(rootCmd)
	app.addTransduceCommand(rootCmd)
	app.addReachCommand(rootCmd)
	app.addExportCommand(rootCmd)
	app.addVersionCommand(rootCmd)

	return rootCmd
}

// configure layers the environment under the command-line flags and sets up logging
func (app *App) configure(_ *cobra.Command, _ []string) error {
	var files []string
	if f := app.settings.GetString("env-file"); f != "" {
		files = append(files, f)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}

	app.settings.SetDefault("log-level", cfg.LogLevel)
	app.settings.SetDefault("log-file", cfg.LogFile)
	app.settings.SetDefault("separator", cfg.Separator)
	app.settings.SetDefault("timeout", cfg.Timeout)
	app.settings.SetDefault("max-input", cfg.MaxInput)

	closer, err := logger.Configure(app.settings.GetString("log-level"), app.settings.GetString("log-file"))
	if err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	app.closer = closer
	app.log = logger.NewComponent("automaton")

	logger.Debug("settings resolved",
		"separator", app.settings.GetString("separator"),
		"timeout", app.settings.GetDuration("timeout"),
		"max-input", app.settings.GetInt("max-input"))
	return nil
}

// shutdown releases the log file. It is safe to call more than once.
func (app *App) shutdown(_ *cobra.Command, _ []string) error {
	if app.closer == nil {
		return nil
	}
	closer := app.closer
	app.closer = nil
	return closer.Close()
}

// splitInput turns an argument into input symbols. The empty string is the
// empty input.
func (app *App) splitInput(arg string) ([]string, error) {
	input := []string{}
	if arg != "" {
		sep := app.settings.GetString("separator")
		for _, a := range strings.Split(arg, sep) {
			if sep != "" {
				a = strings.TrimSpace(a)
			}
			input = append(input, a)
		}
	}

	if limit := app.settings.GetInt("max-input"); limit > 0 && len(input) > limit {
		return nil, fmt.Errorf("%w: %d symbols, limit %d", ErrInputTooLong, len(input), limit)
	}
	return input, nil
}

func (app *App) loadDefinition(path string) (*automaton.Definition, error) {
	def, err := automaton.LoadDefinition(path)
	if err != nil {
		return nil, err
	}
	app.log.Debug("definition loaded", "machine", def.ID, "kind", def.Kind())
	return def, nil
}

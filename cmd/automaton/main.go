// Package main provides the automaton command-line tool for running,
// inspecting and exporting finite-state machine definitions.
package main

import (
	"os"

	"github.com/felixgeelhaar/automaton/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and returns the process exit code.
// Command errors are reported through the logger.
func run(args []string) int {
	app := NewApp()
	cmd := app.CreateRootCommand()
	cmd.SetArgs(args)

	code := 0
	if err := cmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		code = 1
	}
	if err := app.shutdown(cmd, nil); err != nil {
		logger.Error("close log file", "err", err)
		code = 1
	}
	return code
}

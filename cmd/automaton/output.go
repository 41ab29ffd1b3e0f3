package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/automaton"
)

var (
	acceptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	rejectStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	deadStyle   = lipgloss.NewStyle().Faint(true)
	stateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	symbolStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

func verdict(ok bool) string {
	if ok {
		return acceptStyle.Render("ACCEPT")
	}
	return rejectStyle.Render("REJECT")
}

func renderTarget(t automaton.Target[string]) string {
	if t.IsDead() {
		return deadStyle.Render(t.String())
	}
	return stateStyle.Render(t.String())
}

func renderConfiguration(m *automaton.NFSM[string, string, string], c automaton.Configuration[string]) string {
	if c.IsDead() {
		return deadStyle.Render(c.String())
	}
	return stateStyle.Render("{" + strings.Join(m.Order(c.States()), ", ") + "}")
}

func renderSymbol(sym automaton.Symbol[string]) string {
	if a, ok := sym.Value(); ok {
		return symbolStyle.Render(a)
	}
	return "-"
}

func printComputation(w io.Writer, c automaton.Computation[string, string]) {
	for i, step := range c.Steps {
		fmt.Fprintf(w, "%3d  %s  %s -> %s\n", i, renderSymbol(step.Symbol), stateStyle.Render(step.From), renderTarget(step.To))
	}
}

func printBranchComputation(w io.Writer, m *automaton.NFSM[string, string, string], c automaton.BranchComputation[string, string]) {
	for i, step := range c.Steps {
		fmt.Fprintf(w, "%3d  %s  %s -> %s\n", i, renderSymbol(step.Symbol), renderConfiguration(m, step.From), renderConfiguration(m, step.To))
	}
}

package main

import (
	"fmt"
	"sort"

	"github.com/mgomes/pascalcalc/calc"
	"github.com/spf13/cobra"
)

type lintWarning struct {
	Pos     calc.Position
	Message string
}

func newAnalyzeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <file|->",
		Short: "Report reads of unassigned variables and overwritten assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			program, err := a.engine.Parse(source)
			if err != nil {
				return fmt.Errorf("analysis parse failed: %w", err)
			}

			out := cmd.OutOrStdout()
			warnings := analyzeProgram(program)
			if len(warnings) == 0 {
				fmt.Fprintln(out, "No issues found")
				return nil
			}
			for _, warning := range warnings {
				fmt.Fprintf(out, "%s:%d:%d: %s\n", args[0], warning.Pos.Line, warning.Pos.Column, warning.Message)
			}
			return fmt.Errorf("analysis found %d issue(s)", len(warnings))
		},
	}
}

// analyzeProgram walks the statements in execution order. A read of a name
// that no earlier statement assigned always fails at run time; an
// assignment whose value is replaced before anything reads it is dead.
func analyzeProgram(program *calc.Program) []lintWarning {
	l := &linter{
		assigned: make(map[string]bool),
		unread:   make(map[string]calc.Position),
	}
	l.statement(program.Block)

	sort.SliceStable(l.warnings, func(i, j int) bool {
		if l.warnings[i].Pos.Line != l.warnings[j].Pos.Line {
			return l.warnings[i].Pos.Line < l.warnings[j].Pos.Line
		}
		return l.warnings[i].Pos.Column < l.warnings[j].Pos.Column
	})
	return l.warnings
}

type linter struct {
	assigned map[string]bool
	unread   map[string]calc.Position
	warnings []lintWarning
}

func (l *linter) statement(node calc.Node) {
	switch n := node.(type) {
	case *calc.Compound:
		for _, stmt := range n.Statements {
			l.statement(stmt)
		}
	case *calc.Assignment:
		l.expression(n.Value)
		name := n.Target.Name
		if pos, ok := l.unread[name]; ok {
			l.warn(pos, fmt.Sprintf("value assigned to %s is overwritten before it is read", name))
		}
		l.assigned[name] = true
		l.unread[name] = n.Target.Pos()
	}
}

func (l *linter) expression(node calc.Node) {
	switch n := node.(type) {
	case *calc.Variable:
		if !l.assigned[n.Name] {
			l.warn(n.Pos(), fmt.Sprintf("%s is read before it is assigned", n.Name))
		}
		delete(l.unread, n.Name)
	case *calc.UnaryExpr:
		l.expression(n.Operand)
	case *calc.BinaryExpr:
		l.expression(n.Left)
		l.expression(n.Right)
	}
}

func (l *linter) warn(pos calc.Position, msg string) {
	l.warnings = append(l.warnings, lintWarning{Pos: pos, Message: msg})
}

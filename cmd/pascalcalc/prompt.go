package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/pascalcalc/calc"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	continuationPrompt = "...   "
	lineBanner         = "pascalcalc: expressions or BEGIN ... END. programs. Ctrl+D or :quit exits."
)

func newREPLCmd(a *app) *cobra.Command {
	var tui bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-eval-print loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui {
				return runREPL(a.engine, a.cfg.Prompt)
			}
			return runLineREPL(a.engine, a.cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().BoolVar(&tui, "tui", false, "use the full-screen terminal UI")
	return cmd
}

// lineReader is the part of *liner.State the read loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

func runLineREPL(engine *calc.Engine, cfg fileConfig, out, errOut io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.historyPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Fprintln(out, lineBanner)
	loop := &lineLoop{
		reader:  ln,
		session: newSession(engine),
		prompt:  cfg.Prompt,
		out:     out,
		errOut:  errOut,
		history: ln.AppendHistory,
	}
	return loop.run()
}

type lineLoop struct {
	reader  lineReader
	session *session
	prompt  string
	out     io.Writer
	errOut  io.Writer
	history func(string)
}

func (l *lineLoop) run() error {
	okStyle := lipgloss.NewRenderer(l.out).NewStyle().Foreground(successColor)
	failStyle := lipgloss.NewRenderer(l.errOut).NewStyle().Foreground(errorColor)
	for {
		src, ok, err := l.read()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(l.out)
			return nil
		}

		input := strings.TrimSpace(src)
		if input == "" {
			continue
		}
		if l.history != nil {
			l.history(strings.ReplaceAll(input, "\n", " "))
		}

		if strings.HasPrefix(input, ":") {
			if l.command(input) {
				return nil
			}
			continue
		}

		output, isErr := l.session.evaluate(input)
		if isErr {
			fmt.Fprintln(l.errOut, failStyle.Render(output))
			continue
		}
		fmt.Fprintln(l.out, okStyle.Render(output))
	}
}

// read collects lines until they form something other than an unfinished
// program. ok is false once the input is closed.
func (l *lineLoop) read() (src string, ok bool, err error) {
	var b strings.Builder
	for {
		prompt := l.prompt
		if b.Len() > 0 {
			prompt = continuationPrompt
		}
		line, err := l.reader.Prompt(prompt)
		switch {
		case errors.Is(err, io.EOF):
			if b.Len() > 0 {
				return b.String(), true, nil
			}
			return "", false, nil
		case errors.Is(err, liner.ErrPromptAborted):
			return "", true, nil
		case err != nil:
			return "", false, fmt.Errorf("read input: %w", err)
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !isIncomplete(l.session.engine, b.String()) {
			return b.String(), true, nil
		}
	}
}

// command runs a colon command and reports whether the loop should stop.
func (l *lineLoop) command(input string) bool {
	switch strings.Fields(input)[0] {
	case ":quit", ":q":
		return true
	case ":vars", ":v":
		names := l.session.names()
		if len(names) == 0 {
			fmt.Fprintln(l.out, "no variables defined")
			return false
		}
		fmt.Fprintln(l.out, formatBindings(l.session.lastEnv, "\n"))
	case ":reset", ":r":
		l.session.reset()
		fmt.Fprintln(l.out, "environment reset")
	case ":help", ":h":
		fmt.Fprintln(l.out, ":vars   show variables of the last program\n:reset  forget them\n:quit   exit")
	default:
		fmt.Fprintf(l.errOut, "unknown command: %s\n", input)
	}
	return false
}

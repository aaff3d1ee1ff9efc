package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/pascalcalc/calc"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	session     *session
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	pending     []string
	prompt      string
	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Quit  key.Binding
	Clear key.Binding
	Tab   key.Binding
	Vars  key.Binding
	Help  key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous entry"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next entry"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "evaluate"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+d"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
	Vars: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "toggle vars"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func newREPLModel(engine *calc.Engine, prompt string) replModel {
	if prompt == "" {
		prompt = defaultPrompt
	}
	ti := textinput.New()
	ti.Placeholder = "expression or BEGIN ... END."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = prompt

	return replModel{
		textInput:  ti,
		session:    newSession(engine),
		historyIdx: -1,
		prompt:     prompt,
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Clear):
			m.history = nil
			return m, nil

		case key.Matches(msg, keys.Vars):
			m.showVars = !m.showVars
			return m, nil

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			m = m.handleAutocomplete()
			return m, nil

		case key.Matches(msg, keys.Enter):
			return m.submit()
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.textInput.Value())
	m.textInput.SetValue("")
	m.historyIdx = -1

	if line == "" && len(m.pending) == 0 {
		return m, nil
	}

	if len(m.pending) == 0 && strings.HasPrefix(line, ":") {
		m, cmd := m.handleCommand(line)
		return m, cmd
	}

	m.pending = append(m.pending, line)
	input := strings.Join(m.pending, "\n")
	if isIncomplete(m.session.engine, input) {
		m.textInput.Prompt = continuationPrompt
		return m, nil
	}
	m.pending = nil
	m.textInput.Prompt = m.prompt

	output, isErr := m.session.evaluate(input)
	m.history = append(m.history, historyEntry{
		input:  strings.ReplaceAll(input, "\n", " "),
		output: output,
		isErr:  isErr,
	})
	m.cmdHistory = append(m.cmdHistory, strings.ReplaceAll(input, "\n", " "))
	return m, nil
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = nil
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":reset", ":r":
		m.session.reset()
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "environment reset",
		})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	words := strings.Fields(input)
	if len(words) == 0 || strings.HasSuffix(input, " ") {
		return m
	}
	lastWord := words[len(words)-1]

	var completions []string
	for _, kw := range []string{"BEGIN", "END"} {
		if strings.HasPrefix(kw, lastWord) {
			completions = append(completions, kw)
		}
	}
	for _, name := range m.session.names() {
		if strings.HasPrefix(name, lastWord) {
			completions = append(completions, name)
		}
	}

	switch {
	case len(completions) == 1:
		prefix := strings.TrimSuffix(input, lastWord)
		m.textInput.SetValue(prefix + completions[0])
		m.textInput.CursorEnd()
	case len(completions) > 1:
		m.history = append(m.history, historyEntry{
			output: "completions: " + strings.Join(completions, ", "),
		})
	}
	return m
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("pascalcalc") + " " + mutedStyle.Render("BEGIN ... END.") + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	reservedLines := 8
	if m.showHelp {
		reservedLines += 10
	}
	if m.showVars {
		reservedLines += len(m.session.names()) + 3
	}
	availableHeight := max(m.height-reservedLines, 1)

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}

	for _, entry := range m.history[historyStart:] {
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+entry.output) + "\n")
		}
		b.WriteString("\n")
	}

	if m.showVars {
		b.WriteString(renderVarsPanel(m.session.lastEnv))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	for _, line := range m.pending {
		b.WriteString(mutedStyle.Render(continuationPrompt) + line + "\n")
	}
	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+v") + helpDescStyle.Render(" vars  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderVarsPanel(env *calc.Env) string {
	if env == nil || env.Len() == 0 {
		return borderStyle.Render(mutedStyle.Render("No variables defined"))
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Variables")}
	varNameStyle := lipgloss.NewStyle().Foreground(highlightColor)
	for _, name := range env.Names() {
		val, _ := env.Get(name)
		lines = append(lines, fmt.Sprintf("  %s = %d", varNameStyle.Render(name), val))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate entry history"},
		{"Tab", "Complete BEGIN, END or a variable"},
		{"Enter", "Evaluate; an unfinished program continues"},
		{":help", "Toggle this help"},
		{":vars", "Toggle variables of the last program"},
		{":clear", "Clear history"},
		{":reset", "Forget the last program's variables"},
		{":quit", "Exit REPL"},
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help")}
	for _, h := range help {
		lines = append(lines, fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc)))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func runREPL(engine *calc.Engine, prompt string) error {
	p := tea.NewProgram(newREPLModel(engine, prompt), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

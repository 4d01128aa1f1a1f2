package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docverify/docverify/internal/schema"
	"github.com/docverify/docverify/internal/validator"
)

type phase int

const (
	phaseInput phase = iota
	phaseRunning
	phaseDone
)

// resultMsg carries a finished validation back into the event loop.
type resultMsg struct {
	path   string
	result schema.ValidationResult
	err    error
}

// Model is the interactive front-end: pick a document, run the core, read
// the report. The validation itself runs inside a tea.Cmd so the event loop
// stays responsive while the core works.
type Model struct {
	validator *validator.Validator
	input     textinput.Model
	spinner   spinner.Model

	phase  phase
	path   string
	result schema.ValidationResult
	runErr error
}

// NewModel builds the front-end model; initialPath pre-fills the document
// input and may be empty.
func NewModel(v *validator.Validator, initialPath string) Model {
	ti := textinput.New()
	ti.Placeholder = "path/to/document.pdf"
	ti.Prompt = "> "
	ti.SetValue(initialPath)
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(accent)))

	return Model{
		validator: v,
		input:     ti,
		spinner:   sp,
		phase:     phaseInput,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			switch m.phase {
			case phaseInput:
				path := strings.TrimSpace(m.input.Value())
				if path == "" {
					return m, nil
				}
				m.phase = phaseRunning
				m.path = path
				return m, tea.Batch(m.spinner.Tick, m.runValidation(path))
			case phaseDone:
				// Back to the input to check another document.
				m.phase = phaseInput
				m.input.Focus()
				return m, textinput.Blink
			}
		case "q":
			if m.phase == phaseDone {
				return m, tea.Quit
			}
		}

	case resultMsg:
		m.phase = phaseDone
		m.result = msg.result
		m.runErr = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.phase == phaseRunning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.phase == phaseInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("docverify") + dimStyle.Render("  document validation front-end") + "\n\n")

	switch m.phase {
	case phaseInput:
		b.WriteString("Document to check:\n")
		b.WriteString(m.input.View() + "\n\n")
		b.WriteString(dimStyle.Render("enter: run checks • esc: quit") + "\n")
	case phaseRunning:
		b.WriteString(m.spinner.View() + "validating " + m.path + "…\n")
	case phaseDone:
		if m.runErr != nil {
			b.WriteString(errStyle.Render("setup error: ") + m.runErr.Error() + "\n")
		} else {
			b.WriteString(RenderResult(m.path, m.result) + "\n")
		}
		b.WriteString("\n" + dimStyle.Render("enter: check another • q: quit") + "\n")
	}

	return b.String()
}

func (m Model) runValidation(path string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.validator.Validate(context.Background(), path)
		return resultMsg{path: path, result: result, err: err}
	}
}

// Run starts the interactive front-end and blocks until the user quits.
func Run(v *validator.Validator, initialPath string) error {
	_, err := tea.NewProgram(NewModel(v, initialPath)).Run()
	return err
}

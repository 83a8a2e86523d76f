// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const inputWidth = 48

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// ErrAborted is returned when the user cancels a form mid-way.
var ErrAborted = fmt.Errorf("input aborted")

// Field is one input in a sequential form. An empty answer is allowed;
// callers decide what emptiness means.
type Field struct {
	Label       string
	Placeholder string
}

type formModel struct {
	title   string
	fields  []Field
	input   textinput.Model
	index   int
	values  []string
	aborted bool
}

func newFormModel(title string, fields []Field) *formModel {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = inputWidth
	if len(fields) > 0 {
		ti.Placeholder = fields[0].Placeholder
	}
	ti.Focus()

	return &formModel{
		title:  title,
		fields: fields,
		input:  ti,
		values: make([]string, 0, len(fields)),
	}
}

func (m *formModel) Init() tea.Cmd { return textinput.Blink }

func (m *formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.values = append(m.values, strings.TrimSpace(m.input.Value()))
			m.index++
			if m.index >= len(m.fields) {
				return m, tea.Quit
			}
			m.input.SetValue("")
			m.input.Placeholder = m.fields[m.index].Placeholder
			return m, nil
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *formModel) View() string {
	lines := []string{formHeaderStyle.Render(m.title)}

	for i, value := range m.values {
		if value == "" {
			value = "-"
		}
		lines = append(lines, answeredStyle.Render(fmt.Sprintf("%s: %s", m.fields[i].Label, value)))
	}

	if m.index < len(m.fields) {
		lines = append(lines,
			labelStyle.Render(m.fields[m.index].Label),
			m.input.View(),
		)
	}

	lines = append(lines, formHelpStyle.Render("Enter confirm | Esc cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

var (
	formHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	answeredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110")).
			MarginTop(1)

	formHelpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// RunForm shows a sequential form and returns one answer per field.
func RunForm(title string, fields []Field) ([]string, error) {
	m := newFormModel(title, fields)

	finalModel, err := runProgram(m)
	if err != nil {
		return nil, err
	}

	typed, ok := finalModel.(*formModel)
	if !ok {
		return nil, fmt.Errorf("unexpected program result")
	}
	if typed.aborted {
		return nil, ErrAborted
	}
	return typed.values, nil
}

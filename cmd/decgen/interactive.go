package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/decimal-jit/codegen"
	"github.com/wippyai/decimal-jit/decimal"
	"github.com/wippyai/decimal-jit/routine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	widthStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectWidth modelState = iota
	stateInputValue
	stateShowResult
)

type interactiveModel struct {
	err      error
	cache    *routine.Cache
	input    textinput.Model
	result   string
	selected int
	state    modelState
}

type callResultMsg struct {
	err    error
	result string
}

func newInteractiveModel() *interactiveModel {
	ctx := context.Background()
	ti := textinput.New()
	ti.Placeholder = "integer value"
	ti.Prompt = "value: "
	ti.Width = 40
	return &interactiveModel{
		cache: routine.NewCache(routine.NewMaterializer(ctx)),
		input: ti,
		state: stateSelectWidth,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateInputValue || msg.String() == "ctrl+c" {
				m.cache.Close(context.Background())
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectWidth && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectWidth && m.selected < len(decimal.Widths)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectWidth:
				m.input.SetValue("")
				m.input.Focus()
				m.state = stateInputValue

			case stateInputValue:
				return m, m.callAbs

			case stateShowResult:
				m.state = stateSelectWidth
				m.result = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateInputValue:
				m.input.Blur()
				m.state = stateSelectWidth
			case stateShowResult:
				m.state = stateSelectWidth
				m.result = ""
				m.err = nil
			}
		}

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputValue {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) callAbs() tea.Msg {
	ctx := context.Background()
	w := decimal.Widths[m.selected]

	v, err := strconv.ParseInt(strings.TrimSpace(m.input.Value()), 10, 64)
	if err != nil {
		return callResultMsg{err: fmt.Errorf("parse value: %w", err)}
	}
	in := decimal.FromInt64(v, 0)

	r, err := m.cache.Abs(ctx, w)
	if err != nil {
		return callResultMsg{err: err}
	}
	got, err := r.Call(ctx, in)
	if err != nil {
		return callResultMsg{err: err}
	}

	res := fmt.Sprintf("abs(%s) = %s", in, got)
	if decimal.IsNull(w, in) {
		res += "  (null sentinel passes through)"
	}
	return callResultMsg{result: res}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Decimal Codegen"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectWidth:
		b.WriteString("Select a width:\n\n")
		for i, w := range decimal.Widths {
			line := fmt.Sprintf("%s (%s)", widthStyle.Render(w.String()), codegen.AbsExportName(w))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter pick • q quit"))

	case stateInputValue:
		w := decimal.Widths[m.selected]
		b.WriteString(fmt.Sprintf("Absolute value at %s\n\n", widthStyle.Render(w.String())))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter call • esc back"))

	case stateShowResult:
		w := decimal.Widths[m.selected]
		b.WriteString(fmt.Sprintf("Result at %s:\n\n", widthStyle.Render(w.String())))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

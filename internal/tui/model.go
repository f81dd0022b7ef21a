// Package tui renders the categorized feedback dashboard in the terminal.
// All flow decisions live in the client state machine; the bubbletea model
// only translates keys into machine events and paints the current state.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"betterfeedback/internal/client"
	"betterfeedback/internal/domain/feedback"
)

const historyFetchLimit = 50

type analyzeResultMsg struct {
	resp feedback.AnalyzeResponse
	err  error
}

type historyMsg struct {
	runs []feedback.AnalysisRun
	err  error
}

type Model struct {
	machine *client.Machine
	api     *client.API

	spinner spinner.Model
	history []feedback.AnalysisRun
	cursor  int
	status  string
	width   int
	height  int
}

func New(api *client.API, machine *client.Machine) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return Model{
		machine: machine,
		api:     api,
		spinner: sp,
		width:   100,
		height:  30,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.machine.State() != client.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case analyzeResultMsg:
		if msg.err != nil {
			_ = m.machine.Fail(msg.err.Error())
		} else {
			_ = m.machine.Resolve(msg.resp)
		}
		return m, nil

	case historyMsg:
		if msg.err != nil {
			m.status = "history fetch failed: " + msg.err.Error()
			return m, nil
		}
		m.history = msg.runs
		if m.cursor >= len(m.history) {
			m.cursor = 0
		}
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab", "h":
		m.machine.ToggleView()
		if m.machine.View() == client.ViewHistory {
			return m, m.fetchHistory()
		}
		return m, nil

	case "esc":
		if m.machine.View() == client.ViewHistory {
			m.machine.ToggleView()
		}
		return m, nil

	case "a":
		if m.machine.View() != client.ViewAnalyze || !m.machine.CanAnalyze() {
			return m, nil
		}
		_ = m.machine.Analyze()
		return m, tea.Batch(m.spinner.Tick, m.analyze(m.machine.Text))

	case "up", "k":
		if m.machine.View() == client.ViewHistory && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.machine.View() == client.ViewHistory && m.cursor < len(m.history)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		if m.machine.View() != client.ViewHistory || len(m.history) == 0 {
			return m, nil
		}
		run := m.history[m.cursor]
		if err := m.machine.RestoreRun(&run); err != nil {
			m.status = err.Error()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) analyze(text string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		resp, err := api.Analyze(context.Background(), text)
		return analyzeResultMsg{resp: resp, err: err}
	}
}

func (m Model) fetchHistory() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		runs, err := api.History(context.Background(), historyFetchLimit)
		return historyMsg{runs: runs, err: err}
	}
}

// Run starts the program with content preloaded into the machine.
func Run(api *client.API, text string) error {
	machine := client.NewMachine()
	if text != "" {
		if err := machine.Upload(text); err != nil {
			return fmt.Errorf("loading upload: %w", err)
		}
	}
	_, err := tea.NewProgram(New(api, machine), tea.WithAltScreen()).Run()
	return err
}

package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betterfeedback/internal/client"
	"betterfeedback/internal/domain/feedback"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newReadyModel(t *testing.T) Model {
	t.Helper()
	machine := client.NewMachine()
	require.NoError(t, machine.Upload("the app crashes on startup"))
	return New(client.NewAPI(""), machine)
}

func TestAnalyzeKey(t *testing.T) {
	t.Run("starts a request from ready", func(t *testing.T) {
		m := newReadyModel(t)
		next, cmd := m.Update(key("a"))
		m = next.(Model)

		assert.Equal(t, client.StateLoading, m.machine.State())
		assert.NotNil(t, cmd)
	})

	t.Run("ignored while loading", func(t *testing.T) {
		m := newReadyModel(t)
		next, _ := m.Update(key("a"))
		m = next.(Model)

		_, cmd := m.Update(key("a"))
		assert.Nil(t, cmd, "second analyze must not start another request")
		assert.Equal(t, client.StateLoading, m.machine.State())
	})

	t.Run("ignored in idle", func(t *testing.T) {
		m := New(client.NewAPI(""), client.NewMachine())
		_, cmd := m.Update(key("a"))
		assert.Nil(t, cmd)
	})
}

func TestResultMessages(t *testing.T) {
	t.Run("success resolves to the dashboard", func(t *testing.T) {
		m := newReadyModel(t)
		next, _ := m.Update(key("a"))
		m = next.(Model)

		items := []feedback.FeedbackItem{{Category: feedback.CategoryBug, Summary: "crash", SentimentScore: 0.1, OriginalText: "crashes"}}
		next, _ = m.Update(analyzeResultMsg{resp: feedback.ResponseFromItems(items, 0)})
		m = next.(Model)

		assert.Equal(t, client.StateSuccess, m.machine.State())
		assert.Contains(t, m.View(), "crash")
	})

	t.Run("transport error shows the banner", func(t *testing.T) {
		m := newReadyModel(t)
		next, _ := m.Update(key("a"))
		m = next.(Model)

		next, _ = m.Update(analyzeResultMsg{err: errors.New("connection refused")})
		m = next.(Model)

		assert.Equal(t, client.StateError, m.machine.State())
		assert.Contains(t, m.View(), "connection refused")
	})
}

func TestHistoryScreen(t *testing.T) {
	runs := []feedback.AnalysisRun{
		*feedback.NewRun("run-2", time.Now().UTC(), "second", []feedback.FeedbackItem{{Category: feedback.CategoryFeature, Summary: "dark mode", SentimentScore: 0.8, OriginalText: "add dark mode"}}),
		*feedback.NewRun("run-1", time.Now().UTC().Add(-time.Hour), "first", nil),
	}

	t.Run("tab toggles into history and fetches", func(t *testing.T) {
		m := newReadyModel(t)
		next, cmd := m.Update(key("tab"))
		m = next.(Model)

		assert.Equal(t, client.ViewHistory, m.machine.View())
		assert.NotNil(t, cmd)

		next, _ = m.Update(historyMsg{runs: runs})
		m = next.(Model)
		assert.Contains(t, m.View(), "second")
	})

	t.Run("enter restores the selected run into success", func(t *testing.T) {
		m := newReadyModel(t)
		next, _ := m.Update(key("tab"))
		m = next.(Model)
		next, _ = m.Update(historyMsg{runs: runs})
		m = next.(Model)

		next, _ = m.Update(key("enter"))
		m = next.(Model)

		assert.Equal(t, client.StateSuccess, m.machine.State())
		assert.Equal(t, client.ViewAnalyze, m.machine.View())
		assert.Contains(t, m.View(), "dark mode")
	})

	t.Run("cursor moves within bounds", func(t *testing.T) {
		m := newReadyModel(t)
		next, _ := m.Update(key("tab"))
		m = next.(Model)
		next, _ = m.Update(historyMsg{runs: runs})
		m = next.(Model)

		next, _ = m.Update(key("j"))
		m = next.(Model)
		assert.Equal(t, 1, m.cursor)

		next, _ = m.Update(key("j"))
		m = next.(Model)
		assert.Equal(t, 1, m.cursor, "cursor stops at the last row")

		next, _ = m.Update(key("k"))
		m = next.(Model)
		assert.Equal(t, 0, m.cursor)
	})
}

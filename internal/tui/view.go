package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"betterfeedback/internal/client"
	"betterfeedback/internal/domain/feedback"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")).Padding(0, 1)
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	columnStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	selectedRow  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)

	categoryStyles = map[feedback.Category]lipgloss.Style{
		feedback.CategoryBug:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		feedback.CategoryFeature:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		feedback.CategoryPainPoint: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
	}
)

var categoryOrder = []feedback.Category{
	feedback.CategoryBug,
	feedback.CategoryFeature,
	feedback.CategoryPainPoint,
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("BetterFeedback"))
	b.WriteString("\n\n")

	if m.machine.View() == client.ViewHistory {
		b.WriteString(m.historyView())
	} else {
		b.WriteString(m.analyzeView())
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}
	b.WriteString("\n" + hintStyle.Render(m.hints()))
	return b.String()
}

func (m Model) analyzeView() string {
	switch m.machine.State() {
	case client.StateIdle:
		return hintStyle.Render("No input loaded. Start the dashboard with a .txt or .json file.")
	case client.StateReady:
		return fmt.Sprintf("Loaded %d characters:\n\n%s",
			len(m.machine.Text), hintStyle.Render(feedback.Preview(m.machine.Text)))
	case client.StateLoading:
		return m.spinner.View() + " Analyzing feedback…"
	case client.StateError:
		return bannerStyle.Render("Error: " + m.machine.ErrMsg)
	case client.StateSuccess:
		return m.resultColumns()
	}
	return ""
}

// resultColumns renders the three-column dashboard.
func (m Model) resultColumns() string {
	colWidth := m.width/3 - 4
	if colWidth < 24 {
		colWidth = 24
	}

	cols := make([]string, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		var rows []string
		rows = append(rows, categoryStyles[cat].Render(string(cat)))
		for _, item := range m.machine.Items {
			if item.Category != cat {
				continue
			}
			rows = append(rows, fmt.Sprintf("• %s", item.Summary))
			rows = append(rows, hintStyle.Render(fmt.Sprintf("  sentiment %.2f", item.SentimentScore)))
		}
		if len(rows) == 1 {
			rows = append(rows, hintStyle.Render("  (none)"))
		}
		cols = append(cols, columnStyle.Width(colWidth).Render(strings.Join(rows, "\n")))
	}

	out := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	if m.machine.SkippedCount > 0 {
		out += "\n" + statusStyle.Render(
			fmt.Sprintf("%d malformed item(s) were skipped", m.machine.SkippedCount))
	}
	return out
}

func (m Model) historyView() string {
	if len(m.history) == 0 {
		return hintStyle.Render("No past analysis runs.")
	}
	var rows []string
	for i, run := range m.history {
		line := fmt.Sprintf("%s  %2d item(s)  %s",
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.ItemCount,
			run.InputPreview,
		)
		if i == m.cursor {
			line = selectedRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (m Model) hints() string {
	if m.machine.View() == client.ViewHistory {
		return "↑/↓ select · enter restore · tab back · q quit"
	}
	if m.machine.CanAnalyze() {
		return "a analyze · tab history · q quit"
	}
	return "tab history · q quit"
}

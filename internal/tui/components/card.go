package components

import (
	"strings"

	"messmate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// SummaryRow is one label/value line in a summary card.
type SummaryRow struct {
	Label     string
	Value     string
	Highlight bool
	Separator bool
}

// SummaryCard renders a bordered card of label/value rows, right-aligning
// the values to the given inner width.
func SummaryCard(title string, rows []SummaryRow, innerWidth int) string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	highlightStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	sepStyle := lipgloss.NewStyle().Foreground(t.Border)

	lines := []string{titleStyle.Render(title), ""}
	for _, row := range rows {
		if row.Separator {
			lines = append(lines, sepStyle.Render(strings.Repeat("─", innerWidth)))
			continue
		}
		vs := valueStyle
		ls := labelStyle
		if row.Highlight {
			vs = highlightStyle
			ls = lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
		}
		gap := innerWidth - lipgloss.Width(row.Label) - lipgloss.Width(row.Value)
		if gap < 1 {
			gap = 1
		}
		lines = append(lines, ls.Render(row.Label)+strings.Repeat(" ", gap)+vs.Render(row.Value))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

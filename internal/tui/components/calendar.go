// Package components provides reusable TUI widgets for the messmate dashboard.
package components

import (
	"fmt"
	"strings"
	"time"

	"messmate/internal/cli"
	"messmate/internal/dateutil"
	"messmate/internal/model"
	"messmate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const cellWidth = 6

// CalendarParams describes one rendered month grid.
type CalendarParams struct {
	Year   int
	Month  time.Month
	Ledger model.Ledger
	Cursor int // selected day of month, 0 for none
	Today  int // today's day of month if the grid shows the current month, else 0
}

// RenderCalendar renders the month as a 7-column grid: weekday header,
// leading blanks for the first week, then one cell per day showing the day
// number and its status letter.
func RenderCalendar(p CalendarParams) string {
	t := theme.Active

	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true).Width(cellWidth).Align(lipgloss.Center)
	var head strings.Builder
	for i := 0; i < 7; i++ {
		head.WriteString(headStyle.Render(cli.FormatDayOfWeek(i)))
	}

	days := dateutil.DaysInMonth(p.Month, p.Year)
	lead := dateutil.FirstWeekday(p.Month, p.Year)

	cells := make([]string, 0, lead+days)
	for i := 0; i < lead; i++ {
		cells = append(cells, lipgloss.NewStyle().Width(cellWidth).Render(""))
	}
	for day := 1; day <= days; day++ {
		entry, ok := p.Ledger[dateutil.Key(p.Year, p.Month, day)]
		cells = append(cells, renderDayCell(day, entry.Status, ok, day == p.Cursor, day == p.Today))
	}

	var rows []string
	for start := 0; start < len(cells); start += 7 {
		end := start + 7
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[start:end]...))
	}

	grid := head.String() + "\n" + strings.Join(rows, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Render(grid)
}

func renderDayCell(day int, status model.Status, marked, selected, today bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)

	label := " "
	if marked {
		label = status.Label()
		switch status {
		case model.StatusFull:
			style = style.Foreground(t.Full)
		case model.StatusHalf:
			style = style.Foreground(t.Half)
		case model.StatusAbsent:
			style = style.Foreground(t.Absent)
		}
	} else {
		style = style.Foreground(t.TextPrimary)
	}

	if today {
		style = style.Underline(true)
	}
	if selected {
		style = style.Reverse(true).Bold(true)
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Center,
		fmt.Sprintf("%2d", day),
		label,
	))
}

// Legend renders the status color key shown under the calendar.
func Legend() string {
	t := theme.Active
	full := lipgloss.NewStyle().Foreground(t.Full).Render("F full")
	half := lipgloss.NewStyle().Foreground(t.Half).Render("H half")
	absent := lipgloss.NewStyle().Foreground(t.Absent).Render("A absent")
	blank := lipgloss.NewStyle().Foreground(t.TextDim).Render("· unmarked")
	return "  " + full + "   " + half + "   " + absent + "   " + blank
}

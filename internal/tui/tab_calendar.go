package tui

import (
	"messmate/internal/cli"
	"messmate/internal/dateutil"
	"messmate/internal/model"
	"messmate/internal/tui/components"
	"messmate/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateCalendarKey(key string) (tea.Model, tea.Cmd) {
	days := dateutil.DaysInMonth(a.viewMonth, a.viewYear)

	switch key {
	case "left":
		if a.cursorDay > 1 {
			a.cursorDay--
		}
	case "right":
		if a.cursorDay < days {
			a.cursorDay++
		}
	case "up":
		if a.cursorDay > 7 {
			a.cursorDay -= 7
		}
	case "down":
		if a.cursorDay+7 <= days {
			a.cursorDay += 7
		}
	case "[", "pgup":
		a.gotoMonth(-1)
	case "]", "pgdown":
		a.gotoMonth(1)
	case "t":
		now := a.now()
		a.viewYear = now.Year()
		a.viewMonth = now.Month()
		a.cursorDay = now.Day()
	case "enter", " ":
		return a.markCursorDay()
	case "f":
		return a.quickMark(model.StatusFull)
	case "h":
		return a.quickMark(model.StatusHalf)
	case "a":
		return a.quickMark(model.StatusAbsent)
	}

	return a, nil
}

func (a App) viewCalendarTab() string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	now := a.now()
	today := 0
	if now.Year() == a.viewYear && now.Month() == a.viewMonth {
		today = now.Day()
	}

	nav := muted.Render("  [ ") + accent.Render(cli.MonthTitle(a.viewMonth, a.viewYear)) + muted.Render(" ]")

	grid := components.RenderCalendar(components.CalendarParams{
		Year:   a.viewYear,
		Month:  a.viewMonth,
		Ledger: a.ledgerSnap,
		Cursor: a.cursorDay,
		Today:  today,
	})

	quick := muted.Render("  Mark today:  ") +
		lipgloss.NewStyle().Foreground(t.Full).Render("[f]ull") + "  " +
		lipgloss.NewStyle().Foreground(t.Half).Render("[h]alf") + "  " +
		lipgloss.NewStyle().Foreground(t.Absent).Render("[a]bsent")

	return lipgloss.JoinVertical(lipgloss.Left,
		nav,
		grid,
		components.Legend(),
		"",
		quick,
	)
}

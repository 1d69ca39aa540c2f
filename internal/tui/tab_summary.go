package tui

import (
	"strconv"

	"messmate/internal/billing"
	"messmate/internal/cli"
	"messmate/internal/tui/components"
	"messmate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) viewSummaryTab() string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	settings := a.svc.Settings()
	if settings == nil {
		return muted.Render("  Run setup first (settings tab).")
	}

	agg := billing.Aggregate(a.ledgerSnap, a.viewYear, a.viewMonth, settings.DailyFullCost)
	currency := a.cfg.General.Currency

	rows := []components.SummaryRow{
		{Label: "Full days (2 meals)", Value: strconv.Itoa(agg.FullDays)},
		{Label: "Half days (1 meal)", Value: strconv.Itoa(agg.HalfDays)},
		{Label: "Absent days", Value: strconv.Itoa(agg.AbsentDays)},
		{Separator: true},
		{Label: "Full-day equivalents", Value: cli.FormatMealUnits(agg.MealUnits)},
		{Label: "Total amount due", Value: cli.FormatMoney(agg.TotalCost, currency), Highlight: true},
	}

	nav := muted.Render("  [ ") + accent.Render(cli.MonthTitle(a.viewMonth, a.viewYear)) + muted.Render(" ]")
	card := components.SummaryCard("Monthly Summary", rows, 34)
	hint := muted.Render("  [ / ] to change month")

	return lipgloss.JoinVertical(lipgloss.Left, nav, card, "", hint)
}

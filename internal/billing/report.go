package billing

import (
	"fmt"
	"strings"
	"time"

	"messmate/internal/model"
)

// FormatReport renders the monthly aggregate as a shareable plain-text
// summary. Pure, no I/O; the caller decides where it goes (stdout, file,
// clipboard).
func FormatReport(agg model.MonthlyAggregate, messName, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s — Attendance Report\n", messName)
	fmt.Fprintf(&b, "%s %d\n\n", time.Month(agg.Month), agg.Year)
	fmt.Fprintf(&b, "Full days (2 meals):  %d\n", agg.FullDays)
	fmt.Fprintf(&b, "Half days (1 meal):   %d\n", agg.HalfDays)
	fmt.Fprintf(&b, "Absent days:          %d\n", agg.AbsentDays)
	fmt.Fprintf(&b, "Full-day equivalents: %s\n", formatUnits(agg.MealUnits))
	fmt.Fprintf(&b, "\nTotal amount due: %s%.2f\n", currency, agg.TotalCost)

	return b.String()
}

// formatUnits drops the trailing .0 from whole meal-unit counts.
func formatUnits(units float64) string {
	if units == float64(int64(units)) {
		return fmt.Sprintf("%d", int64(units))
	}
	return fmt.Sprintf("%.1f", units)
}

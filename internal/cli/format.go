// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"time"

	"messmate/internal/dateutil"
)

// FormatMoney formats an amount with the configured currency symbol and
// two decimal places, e.g. "₹2200.00".
func FormatMoney(amount float64, currency string) string {
	return fmt.Sprintf("%s%.2f", currency, amount)
}

// FormatMealUnits formats full-day equivalents, dropping a trailing .0.
// e.g. 22 -> "22", 21.5 -> "21.5"
func FormatMealUnits(units float64) string {
	if units == float64(int64(units)) {
		return fmt.Sprintf("%d", int64(units))
	}
	return fmt.Sprintf("%.1f", units)
}

// MonthTitle renders "June 2025" for a month heading.
func MonthTitle(month time.Month, year int) string {
	return fmt.Sprintf("%s %d", dateutil.MonthName(month), year)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

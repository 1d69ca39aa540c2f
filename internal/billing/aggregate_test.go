package billing

import (
	"math"
	"strings"
	"testing"
	"time"

	"messmate/internal/dateutil"
	"messmate/internal/model"
)

func TestAggregateBilling(t *testing.T) {
	// June 2025: 20 full, 4 half, 2 absent, 4 unmarked.
	ledger := model.Ledger{}
	for day := 1; day <= 20; day++ {
		ledger[dateutil.Key(2025, time.June, day)] = model.Entry{Status: model.StatusFull}
	}
	for day := 21; day <= 24; day++ {
		ledger[dateutil.Key(2025, time.June, day)] = model.Entry{Status: model.StatusHalf}
	}
	for day := 25; day <= 26; day++ {
		ledger[dateutil.Key(2025, time.June, day)] = model.Entry{Status: model.StatusAbsent}
	}

	agg := Aggregate(ledger, 2025, time.June, 100)

	if agg.FullDays != 20 {
		t.Fatalf("FullDays = %d, want 20", agg.FullDays)
	}
	if agg.HalfDays != 4 {
		t.Fatalf("HalfDays = %d, want 4", agg.HalfDays)
	}
	if agg.AbsentDays != 2 {
		t.Fatalf("AbsentDays = %d, want 2", agg.AbsentDays)
	}
	if agg.MealUnits != 22 {
		t.Fatalf("MealUnits = %v, want 22", agg.MealUnits)
	}
	if math.Abs(agg.TotalCost-2200) > 1e-9 {
		t.Fatalf("TotalCost = %v, want 2200", agg.TotalCost)
	}
}

func TestAggregateIgnoresOtherMonths(t *testing.T) {
	ledger := model.Ledger{
		"2025-05-31": {Status: model.StatusFull},
		"2025-07-01": {Status: model.StatusFull},
		"2025-06-15": {Status: model.StatusHalf},
	}

	agg := Aggregate(ledger, 2025, time.June, 80)

	if agg.FullDays != 0 || agg.HalfDays != 1 || agg.AbsentDays != 0 {
		t.Fatalf("aggregate = %+v, want only the June half day counted", agg)
	}
	if math.Abs(agg.TotalCost-40) > 1e-9 {
		t.Fatalf("TotalCost = %v, want 40", agg.TotalCost)
	}
}

func TestAggregateEmptyMonth(t *testing.T) {
	agg := Aggregate(model.Ledger{}, 2025, time.June, 100)
	if agg.FullDays != 0 || agg.HalfDays != 0 || agg.AbsentDays != 0 || agg.TotalCost != 0 {
		t.Fatalf("empty ledger aggregate = %+v, want all zeros", agg)
	}
}

func TestFormatReport(t *testing.T) {
	agg := model.MonthlyAggregate{
		Year: 2025, Month: 6,
		FullDays: 20, HalfDays: 4, AbsentDays: 2,
		MealUnits: 22, TotalCost: 2200,
	}

	report := FormatReport(agg, "Annapurna Mess", "₹")

	for _, want := range []string{
		"Annapurna Mess",
		"June 2025",
		"Full days (2 meals):  20",
		"Half days (1 meal):   4",
		"Absent days:          2",
		"Full-day equivalents: 22",
		"Total amount due: ₹2200.00",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}

func TestFormatReportFractionalUnits(t *testing.T) {
	agg := model.MonthlyAggregate{Year: 2025, Month: 6, FullDays: 1, HalfDays: 1, MealUnits: 1.5, TotalCost: 150}
	report := FormatReport(agg, "Mess", "₹")
	if !strings.Contains(report, "Full-day equivalents: 1.5") {
		t.Fatalf("report missing fractional meal units:\n%s", report)
	}
}

// Package billing derives the monthly bill from the attendance ledger.
package billing

import (
	"time"

	"messmate/internal/dateutil"
	"messmate/internal/model"
)

// Aggregate walks every calendar day of the target month and classifies it
// by its ledger entry. Unmarked days, including future days of the month
// being viewed, count toward none of the buckets. A half day costs exactly
// half the daily full rate. Pure and side-effect free.
func Aggregate(ledger model.Ledger, year int, month time.Month, dailyFullCost float64) model.MonthlyAggregate {
	agg := model.MonthlyAggregate{Year: year, Month: int(month)}

	days := dateutil.DaysInMonth(month, year)
	for day := 1; day <= days; day++ {
		entry, ok := ledger[dateutil.Key(year, month, day)]
		if !ok {
			continue
		}
		switch entry.Status {
		case model.StatusFull:
			agg.FullDays++
		case model.StatusHalf:
			agg.HalfDays++
		case model.StatusAbsent:
			agg.AbsentDays++
		}
	}

	agg.MealUnits = float64(agg.FullDays) + 0.5*float64(agg.HalfDays)
	agg.TotalCost = float64(agg.FullDays)*dailyFullCost + float64(agg.HalfDays)*(dailyFullCost/2)
	return agg
}

package model

// MonthlyAggregate holds the derived counts and bill for one month.
// Computed fresh from the ledger on every view, never stored.
type MonthlyAggregate struct {
	Year       int
	Month      int // 1-12
	FullDays   int
	HalfDays   int
	AbsentDays int
	MealUnits  float64 // full-day equivalents: full + 0.5*half
	TotalCost  float64
}

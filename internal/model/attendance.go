// Package model defines the core attendance and settings types.
package model

// Status is a recorded attendance state for one day.
// It serializes as the literal strings "absent", "half", "full".
type Status string

const (
	StatusAbsent Status = "absent"
	StatusHalf   Status = "half"
	StatusFull   Status = "full"
)

// Valid reports whether s is one of the three known states.
func (s Status) Valid() bool {
	return s == StatusAbsent || s == StatusHalf || s == StatusFull
}

// Label returns the single-letter calendar label for s.
func (s Status) Label() string {
	switch s {
	case StatusAbsent:
		return "A"
	case StatusHalf:
		return "H"
	case StatusFull:
		return "F"
	}
	return "?"
}

// NextStatus advances one step around the mark cycle. An unmarked day
// (present == false) advances the same way as an explicit absent:
// unset/absent -> half -> full -> absent.
func NextStatus(current Status, present bool) Status {
	if !present {
		return StatusHalf
	}
	switch current {
	case StatusAbsent:
		return StatusHalf
	case StatusHalf:
		return StatusFull
	case StatusFull:
		return StatusAbsent
	}
	return StatusHalf
}

// Entry is one recorded attendance day. Entries are replaced, never
// mutated in place.
type Entry struct {
	Status Status `json:"status"`
}

// Ledger maps date keys (YYYY-MM-DD) to attendance entries. Absence of a
// key means the day was never recorded, which is distinct from absent.
type Ledger map[string]Entry

// Clone returns an independent copy of the ledger.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Equal reports whether two ledgers hold the same keys and statuses.
func (l Ledger) Equal(other Ledger) bool {
	if len(l) != len(other) {
		return false
	}
	for k, v := range l {
		if o, ok := other[k]; !ok || o != v {
			return false
		}
	}
	return true
}

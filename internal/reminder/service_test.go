package reminder

import (
	"context"
	"testing"
	"time"

	"messmate/internal/model"
)

type fakeReader struct {
	ledger model.Ledger
}

func (f fakeReader) LoadLedger(context.Context) (model.Ledger, error) {
	return f.ledger, nil
}

func TestNextTriggerSameDay(t *testing.T) {
	s := New(Config{}, fakeReader{})
	now := time.Date(2025, time.June, 10, 18, 30, 0, 0, time.Local)

	next := s.nextTrigger(now)
	want := time.Date(2025, time.June, 10, 21, 0, 0, 0, time.Local)
	if !next.Equal(want) {
		t.Fatalf("nextTrigger = %v, want %v", next, want)
	}
}

func TestNextTriggerRollsToTomorrow(t *testing.T) {
	s := New(Config{}, fakeReader{})
	now := time.Date(2025, time.June, 10, 21, 0, 0, 0, time.Local)

	next := s.nextTrigger(now)
	want := time.Date(2025, time.June, 11, 21, 0, 0, 0, time.Local)
	if !next.Equal(want) {
		t.Fatalf("nextTrigger at 21:00 = %v, want %v", next, want)
	}
}

func TestFireOnceSkipsWhenMarked(t *testing.T) {
	now := time.Date(2025, time.June, 10, 21, 0, 0, 0, time.Local)
	s := New(Config{}, fakeReader{ledger: model.Ledger{
		"2025-06-10": {Status: model.StatusHalf},
	}})
	s.now = func() time.Time { return now }

	fired := false
	s.notify = func(_, _ string) error {
		fired = true
		return nil
	}

	s.fireOnce(context.Background())
	if fired {
		t.Fatal("reminder fired although today is already marked")
	}
}

func TestFireOnceNotifiesWhenUnmarked(t *testing.T) {
	now := time.Date(2025, time.June, 10, 21, 0, 0, 0, time.Local)
	s := New(Config{}, fakeReader{ledger: model.Ledger{}})
	s.now = func() time.Time { return now }

	fired := false
	s.notify = func(title, _ string) error {
		if title != "Mess Attendance" {
			t.Fatalf("notification title = %q", title)
		}
		fired = true
		return nil
	}

	s.fireOnce(context.Background())
	if !fired {
		t.Fatal("reminder did not fire for an unmarked day")
	}
}

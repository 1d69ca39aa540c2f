package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"messmate/internal/dateutil"
	"messmate/internal/model"
)

// fakeStorage is an in-memory Storage that counts ledger saves.
type fakeStorage struct {
	settings    *model.Settings
	ledger      model.Ledger
	ledgerSaves int
	saveErr     error
}

func (f *fakeStorage) LoadSettings(context.Context) (*model.Settings, error) {
	return f.settings, nil
}

func (f *fakeStorage) SaveSettings(_ context.Context, s model.Settings) error {
	f.settings = &s
	return nil
}

func (f *fakeStorage) LoadLedger(context.Context) (model.Ledger, error) {
	if f.ledger == nil {
		return model.Ledger{}, nil
	}
	return f.ledger.Clone(), nil
}

func (f *fakeStorage) SaveLedger(_ context.Context, l model.Ledger) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.ledger = l.Clone()
	f.ledgerSaves++
	return nil
}

func (f *fakeStorage) ClearLedger(context.Context) error {
	f.ledger = model.Ledger{}
	return nil
}

func (f *fakeStorage) ClearAll(context.Context) error {
	f.ledger = model.Ledger{}
	f.settings = nil
	return nil
}

func newTestService(storage *fakeStorage, now time.Time) *Service {
	s := NewService(storage)
	s.now = func() time.Time { return now }
	return s
}

func TestLoadBackfillsUpToYesterday(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.Local)
	storage := &fakeStorage{}
	s := newTestService(storage, now)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	ledger := s.Ledger()
	for day := 1; day <= 9; day++ {
		key := dateutil.Key(2025, time.June, day)
		entry, ok := ledger[key]
		if !ok {
			t.Fatalf("day %s not backfilled", key)
		}
		if entry.Status != model.StatusFull {
			t.Fatalf("day %s backfilled as %q, want full", key, entry.Status)
		}
	}
	if _, ok := ledger["2025-06-10"]; ok {
		t.Fatal("today was backfilled before the cutoff hour")
	}
	if _, ok := ledger["2025-05-31"]; ok {
		t.Fatal("reconciliation touched the previous month")
	}
	if storage.ledgerSaves != 1 {
		t.Fatalf("ledger saves = %d, want 1", storage.ledgerSaves)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	now := time.Date(2025, time.June, 10, 22, 0, 0, 0, time.Local)
	storage := &fakeStorage{}
	s := newTestService(storage, now)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("first Load: %v", err)
	}
	first := s.Ledger()
	savesAfterFirst := storage.ledgerSaves

	s2 := newTestService(storage, now)
	if err := s2.Load(context.Background()); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	second := s2.Ledger()

	if !first.Equal(second) {
		t.Fatalf("second reconciliation changed the ledger: %v vs %v", first, second)
	}
	if storage.ledgerSaves != savesAfterFirst {
		t.Fatalf("second run persisted again: saves = %d, want %d", storage.ledgerSaves, savesAfterFirst)
	}
}

func TestReconcileNeverOverwrites(t *testing.T) {
	now := time.Date(2025, time.June, 20, 12, 0, 0, 0, time.Local)
	storage := &fakeStorage{ledger: model.Ledger{
		"2025-06-05": {Status: model.StatusHalf},
		"2025-06-06": {Status: model.StatusAbsent},
	}}
	s := newTestService(storage, now)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	ledger := s.Ledger()
	if got := ledger["2025-06-05"].Status; got != model.StatusHalf {
		t.Fatalf("explicit half mark overwritten to %q", got)
	}
	if got := ledger["2025-06-06"].Status; got != model.StatusAbsent {
		t.Fatalf("explicit absent mark overwritten to %q", got)
	}
}

func TestReconcileCutoffBoundary(t *testing.T) {
	storage := &fakeStorage{}

	before := time.Date(2025, time.June, 1, 20, 59, 0, 0, time.Local)
	s := newTestService(storage, before)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := s.Ledger()["2025-06-01"]; ok {
		t.Fatal("today marked full at 20:59")
	}

	at := time.Date(2025, time.June, 1, 21, 0, 0, 0, time.Local)
	s = newTestService(storage, at)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	entry, ok := s.Ledger()["2025-06-01"]
	if !ok || entry.Status != model.StatusFull {
		t.Fatalf("today not marked full at 21:00: entry=%v ok=%v", entry, ok)
	}
}

func TestLoadWithoutChangesDoesNotSave(t *testing.T) {
	// First of the month before cutoff: nothing to backfill.
	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.Local)
	storage := &fakeStorage{}
	s := newTestService(storage, now)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if storage.ledgerSaves != 0 {
		t.Fatalf("ledger saves = %d, want 0", storage.ledgerSaves)
	}
}

func TestMarkDayCycle(t *testing.T) {
	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.Local)
	storage := &fakeStorage{}
	s := newTestService(storage, now)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	ctx := context.Background()
	key := "2025-06-01"

	want := []model.Status{model.StatusHalf, model.StatusFull, model.StatusAbsent, model.StatusHalf}
	for i, w := range want {
		got, err := s.MarkDay(ctx, key)
		if err != nil {
			t.Fatalf("MarkDay #%d: %v", i+1, err)
		}
		if got != w {
			t.Fatalf("MarkDay #%d = %q, want %q", i+1, got, w)
		}
	}
}

func TestNextStatusCycleReturnsToStart(t *testing.T) {
	for _, start := range []model.Status{model.StatusAbsent, model.StatusHalf, model.StatusFull} {
		s := start
		for i := 0; i < 3; i++ {
			s = model.NextStatus(s, true)
		}
		if s != start {
			t.Fatalf("three steps from %q landed on %q", start, s)
		}
	}
	if got := model.NextStatus("", false); got != model.StatusHalf {
		t.Fatalf("NextStatus(unset) = %q, want half", got)
	}
}

func TestMarkDayRejectsFutureDates(t *testing.T) {
	now := time.Date(2025, time.June, 10, 23, 30, 0, 0, time.Local)
	storage := &fakeStorage{}
	s := newTestService(storage, now)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	before := s.Ledger()

	_, err := s.MarkDay(context.Background(), "2025-06-11")
	if !errors.Is(err, ErrFutureDate) {
		t.Fatalf("MarkDay(tomorrow) err = %v, want ErrFutureDate", err)
	}
	if !s.Ledger().Equal(before) {
		t.Fatal("rejected mark still mutated the ledger")
	}
}

func TestQuickMarkSetsTodayDirectly(t *testing.T) {
	now := time.Date(2025, time.June, 10, 8, 0, 0, 0, time.Local)
	storage := &fakeStorage{}
	s := newTestService(storage, now)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	key, err := s.QuickMark(context.Background(), model.StatusAbsent)
	if err != nil {
		t.Fatalf("QuickMark: %v", err)
	}
	if key != "2025-06-10" {
		t.Fatalf("QuickMark key = %q, want 2025-06-10", key)
	}
	if got, _ := s.Status(key); got != model.StatusAbsent {
		t.Fatalf("today = %q after QuickMark(absent)", got)
	}

	// Quick mark overwrites whatever is there, no cycling.
	if _, err := s.QuickMark(context.Background(), model.StatusFull); err != nil {
		t.Fatalf("QuickMark: %v", err)
	}
	if got, _ := s.Status(key); got != model.StatusFull {
		t.Fatalf("today = %q after QuickMark(full)", got)
	}
}

func TestUpdateSettingsValidates(t *testing.T) {
	storage := &fakeStorage{}
	s := newTestService(storage, time.Date(2025, time.June, 1, 9, 0, 0, 0, time.Local))

	err := s.UpdateSettings(context.Background(), model.Settings{MessName: "  ", DailyFullCost: 100})
	if !errors.Is(err, model.ErrInvalidSettings) {
		t.Fatalf("blank name err = %v, want ErrInvalidSettings", err)
	}
	err = s.UpdateSettings(context.Background(), model.Settings{MessName: "Mess", DailyFullCost: 0})
	if !errors.Is(err, model.ErrInvalidSettings) {
		t.Fatalf("zero cost err = %v, want ErrInvalidSettings", err)
	}

	if err := s.UpdateSettings(context.Background(), model.Settings{MessName: "Mess", DailyFullCost: 90}); err != nil {
		t.Fatalf("valid settings rejected: %v", err)
	}
	if !s.Configured() {
		t.Fatal("service not configured after UpdateSettings")
	}
}

func TestResetAllReturnsToFirstRun(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.Local)
	storage := &fakeStorage{settings: &model.Settings{MessName: "Mess", DailyFullCost: 90}}
	s := newTestService(storage, now)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := s.ResetAll(context.Background()); err != nil {
		t.Fatalf("ResetAll: %v", err)
	}
	if s.Configured() {
		t.Fatal("service still configured after ResetAll")
	}
	if len(s.Ledger()) != 0 {
		t.Fatal("ledger not empty after ResetAll")
	}
}

func TestMarkDayKeepsStateWhenSaveFails(t *testing.T) {
	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.Local)
	storage := &fakeStorage{saveErr: errors.New("disk full")}
	s := newTestService(storage, now)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	got, err := s.MarkDay(context.Background(), "2025-06-01")
	if err != nil {
		t.Fatalf("MarkDay surfaced storage error: %v", err)
	}
	if got != model.StatusHalf {
		t.Fatalf("MarkDay = %q, want half", got)
	}
	if st, _ := s.Status("2025-06-01"); st != model.StatusHalf {
		t.Fatal("in-memory state rolled back on save failure")
	}
}

package store

import (
	"context"
	"path/filepath"
	"testing"

	"messmate/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "messmate.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLedgerRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ledger := model.Ledger{
		"2025-06-01": {Status: model.StatusFull},
		"2025-06-02": {Status: model.StatusHalf},
		"2025-06-03": {Status: model.StatusAbsent},
	}
	if err := s.SaveLedger(ctx, ledger); err != nil {
		t.Fatalf("SaveLedger: %v", err)
	}

	loaded, err := s.LoadLedger(ctx)
	if err != nil {
		t.Fatalf("LoadLedger: %v", err)
	}
	if !loaded.Equal(ledger) {
		t.Fatalf("loaded ledger = %v, want %v", loaded, ledger)
	}
}

func TestLoadLedgerEmptyOnFirstRun(t *testing.T) {
	s := openTestStore(t)

	ledger, err := s.LoadLedger(context.Background())
	if err != nil {
		t.Fatalf("LoadLedger: %v", err)
	}
	if len(ledger) != 0 {
		t.Fatalf("fresh store ledger has %d entries, want 0", len(ledger))
	}
}

func TestLoadLedgerDegradesOnCorruptRecord(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.put(ctx, keyAttendance, []byte("{not json")); err != nil {
		t.Fatalf("put: %v", err)
	}

	ledger, err := s.LoadLedger(ctx)
	if err != nil {
		t.Fatalf("LoadLedger returned error for corrupt record: %v", err)
	}
	if len(ledger) != 0 {
		t.Fatalf("corrupt record produced %d entries, want empty ledger", len(ledger))
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if first != nil {
		t.Fatalf("fresh store settings = %+v, want nil", first)
	}

	want := model.Settings{MessName: "Annapurna Mess", DailyFullCost: 120}
	if err := s.SaveSettings(ctx, want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	got, err := s.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if got == nil || *got != want {
		t.Fatalf("loaded settings = %+v, want %+v", got, want)
	}
}

func TestClearLedgerLeavesSettings(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveSettings(ctx, model.Settings{MessName: "Mess", DailyFullCost: 80}); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if err := s.SaveLedger(ctx, model.Ledger{"2025-06-01": {Status: model.StatusFull}}); err != nil {
		t.Fatalf("SaveLedger: %v", err)
	}

	if err := s.ClearLedger(ctx); err != nil {
		t.Fatalf("ClearLedger: %v", err)
	}

	ledger, _ := s.LoadLedger(ctx)
	if len(ledger) != 0 {
		t.Fatalf("ledger has %d entries after clear, want 0", len(ledger))
	}
	settings, _ := s.LoadSettings(ctx)
	if settings == nil {
		t.Fatal("settings were removed by ClearLedger")
	}
}

func TestClearAllRemovesBothRecords(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveSettings(ctx, model.Settings{MessName: "Mess", DailyFullCost: 80}); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if err := s.SaveLedger(ctx, model.Ledger{"2025-06-01": {Status: model.StatusFull}}); err != nil {
		t.Fatalf("SaveLedger: %v", err)
	}

	if err := s.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}

	settings, _ := s.LoadSettings(ctx)
	if settings != nil {
		t.Fatalf("settings = %+v after ClearAll, want nil", settings)
	}
	ledger, _ := s.LoadLedger(ctx)
	if len(ledger) != 0 {
		t.Fatalf("ledger has %d entries after ClearAll, want 0", len(ledger))
	}
}

func TestSaveIsDeterministic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ledger := model.Ledger{
		"2025-06-10": {Status: model.StatusFull},
		"2025-06-02": {Status: model.StatusHalf},
	}
	if err := s.SaveLedger(ctx, ledger); err != nil {
		t.Fatalf("SaveLedger: %v", err)
	}
	first, _, _ := s.get(ctx, keyAttendance)

	if err := s.SaveLedger(ctx, ledger.Clone()); err != nil {
		t.Fatalf("SaveLedger: %v", err)
	}
	second, _, _ := s.get(ctx, keyAttendance)

	if string(first) != string(second) {
		t.Fatalf("repeated saves produced different bytes:\n%s\n%s", first, second)
	}
}

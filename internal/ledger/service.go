// Package ledger owns the attendance state: it loads the ledger and
// settings, backfills forgotten days, and applies user marks. All mutation
// goes through a single Service so writes never race each other.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"messmate/internal/dateutil"
	"messmate/internal/model"
)

// CutoffHour is the local hour at which an unmarked today is assumed taken.
// The daily reminder fires at the same hour.
const CutoffHour = 21

// ErrFutureDate rejects marking attendance for a day after today.
var ErrFutureDate = errors.New("cannot mark attendance for a future date")

// Storage is the persistence contract the service writes through.
// Implemented by the sqlite store; tests substitute an in-memory fake.
type Storage interface {
	LoadSettings(ctx context.Context) (*model.Settings, error)
	SaveSettings(ctx context.Context, settings model.Settings) error
	LoadLedger(ctx context.Context) (model.Ledger, error)
	SaveLedger(ctx context.Context, ledger model.Ledger) error
	ClearLedger(ctx context.Context) error
	ClearAll(ctx context.Context) error
}

// Service coordinates the ledger, settings, and reconciliation. Every
// mutating operation is a serialized read-modify-write under one mutex.
type Service struct {
	storage Storage
	log     *slog.Logger
	now     func() time.Time

	mu       sync.Mutex
	settings *model.Settings
	ledger   model.Ledger
	loaded   bool
}

// NewService returns a service backed by the given storage.
func NewService(storage Storage) *Service {
	return &Service{
		storage: storage,
		log:     slog.Default(),
		now:     time.Now,
		ledger:  model.Ledger{},
	}
}

// Load reads settings and the ledger from storage, then runs reconciliation
// once. The updated ledger is persisted only if reconciliation inserted
// anything. Callers bound the wait with ctx; on timeout the UI proceeds
// unloaded while this finishes in the background.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.storage.LoadSettings(ctx)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	ledger, err := s.storage.LoadLedger(ctx)
	if err != nil {
		return fmt.Errorf("loading ledger: %w", err)
	}

	s.settings = settings
	s.ledger = ledger

	if inserted := reconcile(s.ledger, s.now()); inserted > 0 {
		s.log.Info("backfilled unmarked days as full", "count", inserted)
		if err := s.storage.SaveLedger(ctx, s.ledger); err != nil {
			s.log.Warn("persisting reconciled ledger failed", "err", err)
		}
	}

	s.loaded = true
	return nil
}

// reconcile backfills unmarked days of the current month as full: every day
// from the 1st up to yesterday, and today once the cutoff hour has passed.
// Existing entries are never overwritten, prior months and future days are
// never touched. Returns the number of inserted entries; idempotent for a
// fixed clock.
func reconcile(ledger model.Ledger, now time.Time) int {
	inserted := 0

	for day := 1; day < now.Day(); day++ {
		key := dateutil.Key(now.Year(), now.Month(), day)
		if _, ok := ledger[key]; !ok {
			ledger[key] = model.Entry{Status: model.StatusFull}
			inserted++
		}
	}

	if now.Hour() >= CutoffHour {
		key := dateutil.KeyFor(now)
		if _, ok := ledger[key]; !ok {
			ledger[key] = model.Entry{Status: model.StatusFull}
			inserted++
		}
	}

	return inserted
}

// Loaded reports whether the initial load has completed.
func (s *Service) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Configured reports whether first-run setup has been completed.
func (s *Service) Configured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings != nil
}

// Settings returns a copy of the current settings, or nil before setup.
func (s *Service) Settings() *model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		return nil
	}
	copy := *s.settings
	return &copy
}

// Ledger returns a snapshot copy of the attendance ledger.
func (s *Service) Ledger() model.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Clone()
}

// Status returns the recorded status for a date key, if any.
func (s *Service) Status(key string) (model.Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.ledger[key]
	return entry.Status, ok
}

// MarkDay advances the given day one step around the mark cycle
// (unset/absent -> half -> full -> absent) and persists the ledger.
// Days after today are rejected with ErrFutureDate and nothing changes.
func (s *Service) MarkDay(ctx context.Context, key string) (model.Status, error) {
	year, month, day, err := dateutil.ParseKey(key)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	requested := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	if requested.After(dateutil.StartOfDay(now)) {
		return "", ErrFutureDate
	}

	entry, ok := s.ledger[key]
	next := model.NextStatus(entry.Status, ok)
	s.ledger[key] = model.Entry{Status: next}
	s.persistLedger(ctx)
	return next, nil
}

// QuickMark sets today's entry to an explicit status, bypassing the cycle.
// Always targets today, so no future-date check applies.
func (s *Service) QuickMark(ctx context.Context, status model.Status) (string, error) {
	if !status.Valid() {
		return "", fmt.Errorf("unknown attendance status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := dateutil.KeyFor(s.now())
	s.ledger[key] = model.Entry{Status: status}
	s.persistLedger(ctx)
	return key, nil
}

// persistLedger writes the full ledger through to storage. Failures are
// logged and the in-memory state is kept; there is no rollback.
func (s *Service) persistLedger(ctx context.Context) {
	if err := s.storage.SaveLedger(ctx, s.ledger); err != nil {
		s.log.Warn("persisting ledger failed", "err", err)
	}
}

// UpdateSettings validates and persists new mess settings.
func (s *Service) UpdateSettings(ctx context.Context, settings model.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.SaveSettings(ctx, settings); err != nil {
		return err
	}
	s.settings = &settings
	return nil
}

// ClearAttendance removes all attendance entries, keeping settings.
func (s *Service) ClearAttendance(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.ClearLedger(ctx); err != nil {
		return err
	}
	s.ledger = model.Ledger{}
	return nil
}

// ResetAll removes settings and attendance, returning to first-run setup.
func (s *Service) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.ClearAll(ctx); err != nil {
		return err
	}
	s.settings = nil
	s.ledger = model.Ledger{}
	return nil
}

// Package reminder provides the background daemon that nudges the user to
// mark attendance before the 21:00 auto-fill cutoff. Purely advisory: it
// never writes to the ledger.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"messmate/internal/dateutil"
	"messmate/internal/ledger"
	"messmate/internal/model"
)

// LedgerReader is the read-only slice of storage the reminder needs.
type LedgerReader interface {
	LoadLedger(ctx context.Context) (model.Ledger, error)
}

// Config controls the reminder runtime behavior.
type Config struct {
	Hour   int // local hour to fire, default ledger.CutoffHour
	Minute int
}

// Service fires a daily reminder when today is still unmarked.
type Service struct {
	cfg     Config
	ledgers LedgerReader
	log     *slog.Logger
	now     func() time.Time
	notify  func(title, body string) error
}

// New returns a reminder service with the provided config.
func New(cfg Config, ledgers LedgerReader) *Service {
	if cfg.Hour == 0 {
		cfg.Hour = ledger.CutoffHour
	}
	return &Service{
		cfg:     cfg,
		ledgers: ledgers,
		log:     slog.Default(),
		now:     time.Now,
		notify:  desktopNotify,
	}
}

// Run fires the reminder at the configured time every day until ctx is
// canceled.
func (s *Service) Run(ctx context.Context) error {
	for {
		next := s.nextTrigger(s.now())
		s.log.Info("reminder scheduled", "at", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			s.fireOnce(ctx)
		}
	}
}

// nextTrigger returns the next firing time strictly after now.
func (s *Service) nextTrigger(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.cfg.Hour, s.cfg.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// fireOnce sends the reminder if today has no attendance entry yet.
// A marked today means there is nothing to nudge about.
func (s *Service) fireOnce(ctx context.Context) {
	led, err := s.ledgers.LoadLedger(ctx)
	if err != nil {
		s.log.Warn("reminder could not read ledger", "err", err)
		return
	}

	today := dateutil.KeyFor(s.now())
	if _, marked := led[today]; marked {
		s.log.Info("attendance already marked, skipping reminder", "date", today)
		return
	}

	body := "Have you marked your attendance today? If not, it will be marked as Full."
	if err := s.notify("Mess Attendance", body); err != nil {
		// No notification daemon available; the log line is the reminder.
		s.log.Info("mess attendance reminder", "date", today, "msg", body)
	}
}

// desktopNotify sends a best-effort desktop notification via notify-send.
func desktopNotify(title, body string) error {
	path, err := exec.LookPath("notify-send")
	if err != nil {
		return fmt.Errorf("notify-send not found: %w", err)
	}
	return exec.Command(path, title, body).Run()
}

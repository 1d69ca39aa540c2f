// Package store persists the attendance ledger and mess settings as two
// independent JSON records in a SQLite-backed key-value table.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"messmate/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const (
	keySettings   = "settings"
	keyAttendance = "attendance"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
    key     TEXT PRIMARY KEY,
    value   TEXT NOT NULL
);
`

// Store provides SQLite-backed record persistence.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens or creates the attendance database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening attendance db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, log: slog.Default()}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM records WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *Store) put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO records (key, value) VALUES (?, ?)", key, string(value))
	return err
}

func (s *Store) remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE key = ?", key)
	return err
}

// LoadSettings reads the stored mess settings. A nil result with nil error
// means first run: nothing stored yet. Read and decode failures degrade to
// nil with a logged warning; settings loss must never crash the app.
func (s *Store) LoadSettings(ctx context.Context) (*model.Settings, error) {
	data, ok, err := s.get(ctx, keySettings)
	if err != nil {
		s.log.Warn("loading settings failed", "err", err)
		return nil, nil
	}
	if !ok {
		return nil, nil
	}

	var settings model.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		s.log.Warn("decoding settings failed", "err", err)
		return nil, nil
	}
	return &settings, nil
}

// SaveSettings persists the mess settings record.
func (s *Store) SaveSettings(ctx context.Context, settings model.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := s.put(ctx, keySettings, data); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// LoadLedger reads the full attendance ledger. Read and decode failures
// degrade to an empty ledger with a logged warning rather than propagating;
// the reconciliation engine heals past days on the next startup.
func (s *Store) LoadLedger(ctx context.Context) (model.Ledger, error) {
	data, ok, err := s.get(ctx, keyAttendance)
	if err != nil {
		s.log.Warn("loading attendance failed", "err", err)
		return model.Ledger{}, nil
	}
	if !ok {
		return model.Ledger{}, nil
	}

	var ledger model.Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		s.log.Warn("decoding attendance failed", "err", err)
		return model.Ledger{}, nil
	}
	if ledger == nil {
		ledger = model.Ledger{}
	}
	return ledger, nil
}

// SaveLedger persists the full attendance ledger. The whole ledger is
// serialized on every save, not a delta; encoding/json emits map keys in
// sorted order so repeated saves of the same ledger produce the same bytes.
func (s *Store) SaveLedger(ctx context.Context, ledger model.Ledger) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("encoding attendance: %w", err)
	}
	if err := s.put(ctx, keyAttendance, data); err != nil {
		return fmt.Errorf("saving attendance: %w", err)
	}
	return nil
}

// ClearLedger removes the attendance record, leaving settings untouched.
func (s *Store) ClearLedger(ctx context.Context) error {
	if err := s.remove(ctx, keyAttendance); err != nil {
		return fmt.Errorf("clearing attendance: %w", err)
	}
	return nil
}

// ClearAll removes both records, returning the app to first-run setup.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.remove(ctx, keyAttendance); err != nil {
		return fmt.Errorf("clearing attendance: %w", err)
	}
	if err := s.remove(ctx, keySettings); err != nil {
		return fmt.Errorf("clearing settings: %w", err)
	}
	return nil
}

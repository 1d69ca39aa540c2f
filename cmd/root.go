package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"messmate/internal/config"
	"messmate/internal/ledger"
	"messmate/internal/model"
	"messmate/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagMonth   int
	flagYear    int
)

var rootCmd = &cobra.Command{
	Use:   "messmate",
	Short: "Mess attendance and billing tracker",
	Long:  "Track daily mess attendance and see what you owe at the end of the month.",
	RunE:  runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (defaults to XDG data dir)")
	rootCmd.PersistentFlags().IntVarP(&flagMonth, "month", "m", 0, "Month to report on (1-12, default current)")
	rootCmd.PersistentFlags().IntVarP(&flagYear, "year", "y", 0, "Year to report on (default current)")
}

// loadConfig reads the config file, falling back to defaults if unreadable.
// The --data-dir flag overrides the configured data directory.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Config unreadable, using defaults: %v\n", err)
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	return cfg
}

// openService is the shared startup path for non-TUI commands: open the
// store, then load settings and the ledger, reconciling missed days.
// The caller owns the returned store and must Close it.
func openService(ctx context.Context, cfg config.Config) (*ledger.Service, *store.Store, error) {
	st, err := store.Open(filepath.Join(config.DataDir(cfg), "messmate.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}

	svc := ledger.NewService(st)

	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := svc.Load(loadCtx); err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("loading attendance data: %w", err)
	}

	return svc, st, nil
}

// requireSettings guards commands that need first-run setup to be done.
func requireSettings(svc *ledger.Service) (model.Settings, error) {
	settings := svc.Settings()
	if settings == nil {
		return model.Settings{}, errors.New("not set up yet, run `messmate setup` first")
	}
	return *settings, nil
}

// reportPeriod resolves the --month/--year flags to a concrete period,
// defaulting to the current month.
func reportPeriod() (int, time.Month, error) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if flagYear != 0 {
		year = flagYear
	}
	if flagMonth != 0 {
		if flagMonth < 1 || flagMonth > 12 {
			return 0, 0, fmt.Errorf("invalid month %d, want 1-12", flagMonth)
		}
		month = time.Month(flagMonth)
	}

	return year, month, nil
}

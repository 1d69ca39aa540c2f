package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"messmate/internal/dateutil"
	"messmate/internal/ledger"
	"messmate/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagMarkFull   bool
	flagMarkHalf   bool
	flagMarkAbsent bool
)

var markCmd = &cobra.Command{
	Use:   "mark [date]",
	Short: "Mark attendance for a day (default today)",
	Long: "Without a status flag, each invocation advances the day one step\n" +
		"around the cycle: unset/absent -> half -> full -> absent.\n" +
		"Dates use YYYY-MM-DD.",
	Args: cobra.MaximumNArgs(1),
	RunE: runMark,
}

func init() {
	markCmd.Flags().BoolVar(&flagMarkFull, "full", false, "Set the day to full (2 meals)")
	markCmd.Flags().BoolVar(&flagMarkHalf, "half", false, "Set the day to half (1 meal)")
	markCmd.Flags().BoolVar(&flagMarkAbsent, "absent", false, "Set the day to absent")
	rootCmd.AddCommand(markCmd)
}

func runMark(_ *cobra.Command, args []string) error {
	status, err := markStatusFlag()
	if err != nil {
		return err
	}

	key := dateutil.KeyFor(time.Now())
	if len(args) == 1 {
		if _, _, _, err := dateutil.ParseKey(args[0]); err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", args[0])
		}
		key = args[0]
	}

	cfg := loadConfig()
	svc, st, err := openService(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if status != "" {
		if key != dateutil.KeyFor(time.Now()) {
			return errors.New("status flags only apply to today, use `mark <date>` to cycle past days")
		}
		if _, err := svc.QuickMark(context.Background(), status); err != nil {
			return err
		}
		fmt.Printf("  %s → %s\n", key, status)
		return nil
	}

	next, err := svc.MarkDay(context.Background(), key)
	if err != nil {
		if errors.Is(err, ledger.ErrFutureDate) {
			return fmt.Errorf("%s is in the future, marks only apply up to today", key)
		}
		return err
	}

	fmt.Printf("  %s → %s\n", key, next)
	return nil
}

func markStatusFlag() (model.Status, error) {
	set := 0
	var status model.Status
	if flagMarkFull {
		set++
		status = model.StatusFull
	}
	if flagMarkHalf {
		set++
		status = model.StatusHalf
	}
	if flagMarkAbsent {
		set++
		status = model.StatusAbsent
	}
	if set > 1 {
		return "", errors.New("pick at most one of --full, --half, --absent")
	}
	return status, nil
}

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	flagResetAll bool
	flagResetYes bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear attendance data (with --all, settings too)",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetAll, "all", false, "Also remove settings, returning to first-run state")
	resetCmd.Flags().BoolVar(&flagResetYes, "yes", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	what := "all attendance entries"
	if flagResetAll {
		what = "all attendance entries AND settings"
	}

	if !flagResetYes {
		fmt.Printf("  This removes %s. Continue? [y/N] ", what)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			return errors.New("aborted")
		}
	}

	cfg := loadConfig()
	svc, st, err := openService(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if flagResetAll {
		if err := svc.ResetAll(context.Background()); err != nil {
			return err
		}
		fmt.Println("  Reset complete. Run `messmate setup` to start over.")
		return nil
	}

	if err := svc.ClearAttendance(context.Background()); err != nil {
		return err
	}
	fmt.Println("  Attendance cleared. Settings kept.")
	return nil
}

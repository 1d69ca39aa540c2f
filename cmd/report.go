package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"messmate/internal/billing"
	"messmate/internal/tui/components"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var (
	flagReportCopy     bool
	flagReportOut      string
	flagReportCalendar bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Plain-text monthly report, shareable with the mess owner",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&flagReportCopy, "copy", false, "Copy the report to the clipboard")
	reportCmd.Flags().StringVarP(&flagReportOut, "out", "o", "", "Write the report to a file")
	reportCmd.Flags().BoolVar(&flagReportCalendar, "calendar", false, "Append the month's calendar grid")
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	year, month, err := reportPeriod()
	if err != nil {
		return err
	}

	cfg := loadConfig()
	svc, st, err := openService(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	settings, err := requireSettings(svc)
	if err != nil {
		return err
	}

	ledgerSnap := svc.Ledger()
	agg := billing.Aggregate(ledgerSnap, year, month, settings.DailyFullCost)
	report := billing.FormatReport(agg, settings.MessName, cfg.General.Currency)

	if flagReportCalendar {
		now := time.Now()
		today := 0
		if now.Year() == year && now.Month() == month {
			today = now.Day()
		}
		report += "\n" + components.RenderCalendar(components.CalendarParams{
			Year:   year,
			Month:  month,
			Ledger: ledgerSnap,
			Today:  today,
		}) + "\n"
	}

	if flagReportOut != "" {
		if err := os.WriteFile(flagReportOut, []byte(report), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("  Report written to %s\n", flagReportOut)
		return nil
	}

	fmt.Print(report)

	if flagReportCopy {
		if err := clipboard.WriteAll(report); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, "\n  Copied to clipboard.")
	}

	return nil
}

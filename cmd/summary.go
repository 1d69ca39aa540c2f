package cmd

import (
	"context"
	"fmt"
	"strconv"

	"messmate/internal/billing"
	"messmate/internal/cli"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly attendance and billing summary",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
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

	agg := billing.Aggregate(svc.Ledger(), year, month, settings.DailyFullCost)
	currency := cfg.General.Currency

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", settings.MessName, cli.MonthTitle(month, year))))
	fmt.Println()

	table := cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Full days (2 meals)", strconv.Itoa(agg.FullDays)},
			{"Half days (1 meal)", strconv.Itoa(agg.HalfDays)},
			{"Absent days", strconv.Itoa(agg.AbsentDays)},
			{"---"},
			{"Full-day equivalents", cli.FormatMealUnits(agg.MealUnits)},
			{"Daily full cost", cli.FormatMoney(settings.DailyFullCost, currency)},
			{"---"},
			{"Total amount due", cli.FormatMoney(agg.TotalCost, currency)},
		},
	}

	fmt.Print(cli.RenderTable(table))
	return nil
}

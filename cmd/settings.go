package cmd

import (
	"context"
	"fmt"

	"messmate/internal/cli"
	"messmate/internal/config"

	"github.com/spf13/cobra"
)

var (
	flagSetName string
	flagSetCost float64
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or update mess settings",
	RunE:  runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&flagSetName, "name", "", "Set the mess name")
	settingsCmd.Flags().Float64Var(&flagSetCost, "cost", 0, "Set the daily full cost")
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, _ []string) error {
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

	changed := false
	if cmd.Flags().Changed("name") {
		settings.MessName = flagSetName
		changed = true
	}
	if cmd.Flags().Changed("cost") {
		settings.DailyFullCost = flagSetCost
		changed = true
	}

	if changed {
		if err := svc.UpdateSettings(context.Background(), settings); err != nil {
			return err
		}
		fmt.Println("  Settings updated.")
	}

	fmt.Println()
	fmt.Printf("  Mess name:       %s\n", settings.MessName)
	fmt.Printf("  Daily full cost: %s\n", cli.FormatMoney(settings.DailyFullCost, cfg.General.Currency))
	fmt.Printf("  Theme:           %s\n", cfg.Appearance.Theme)
	fmt.Printf("  Currency:        %s\n", cfg.General.Currency)
	fmt.Printf("  Data dir:        %s\n", config.DataDir(cfg))
	fmt.Printf("  Config:          %s\n", config.ConfigPath())
	fmt.Println()

	return nil
}

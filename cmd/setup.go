package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"messmate/internal/config"
	"messmate/internal/model"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	cfg := loadConfig()
	svc, st, err := openService(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	existing := svc.Settings()

	fmt.Println()
	fmt.Println("  Welcome to messmate!")
	fmt.Println()

	// 1. Mess name
	fmt.Println("  1. Mess name")
	if existing != nil {
		fmt.Printf("     Current: %s\n", existing.MessName)
	}
	fmt.Print("     > ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" && existing != nil {
		name = existing.MessName
	}
	fmt.Println()

	// 2. Daily full cost
	fmt.Println("  2. Daily full cost (price of a full day, 2 meals)")
	if existing != nil {
		fmt.Printf("     Current: %s\n", strconv.FormatFloat(existing.DailyFullCost, 'f', -1, 64))
	}
	fmt.Print("     > ")
	costStr, _ := reader.ReadString('\n')
	costStr = strings.TrimSpace(costStr)

	cost := 0.0
	if costStr == "" && existing != nil {
		cost = existing.DailyFullCost
	} else {
		cost, err = strconv.ParseFloat(costStr, 64)
		if err != nil {
			return fmt.Errorf("daily cost must be a number, got %q", costStr)
		}
	}
	fmt.Println()

	// 3. Theme
	fmt.Println("  3. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	settings := model.Settings{MessName: name, DailyFullCost: cost}
	if err := svc.UpdateSettings(context.Background(), settings); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved. Config at %s\n", config.ConfigPath())
	fmt.Println("  Run `messmate` to open the dashboard, or `messmate setup` to reconfigure.")
	fmt.Println()

	return nil
}

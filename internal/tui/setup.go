package tui

import (
	"errors"
	"strconv"
	"strings"

	"messmate/internal/model"

	"github.com/charmbracelet/huh"
)

// setupValues collects first-run setup input before it becomes Settings.
type setupValues struct {
	messName string
	cost     string
}

func (v setupValues) toSettings() (model.Settings, error) {
	cost, err := strconv.ParseFloat(strings.TrimSpace(v.cost), 64)
	if err != nil {
		return model.Settings{}, model.ErrInvalidSettings
	}
	settings := model.Settings{
		MessName:      strings.TrimSpace(v.messName),
		DailyFullCost: cost,
	}
	return settings, settings.Validate()
}

// newSetupForm builds the first-run setup form: mess name and the cost of
// one full attendance day. Validation runs per field so invalid input
// never reaches the store.
func newSetupForm(vals *setupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to messmate!").
				Description("Track your mess attendance and monthly bill.\nA couple of details to get started."),
			huh.NewInput().
				Title("Mess name").
				Placeholder("e.g. Annapurna Mess").
				Value(&vals.messName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("mess name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Daily full cost").
				Description("Price of one full day (2 meals). Half days cost half.").
				Placeholder("e.g. 120").
				Value(&vals.cost).
				Validate(func(s string) error {
					cost, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || cost <= 0 {
						return errors.New("enter a positive number")
					}
					return nil
				}),
		),
	)
}

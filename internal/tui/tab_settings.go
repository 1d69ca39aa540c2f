package tui

import (
	"context"
	"strconv"
	"strings"

	"messmate/internal/cli"
	"messmate/internal/config"
	"messmate/internal/model"
	"messmate/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldName = iota
	settingsFieldCost
	settingsFieldTheme
	settingsFieldCurrency
	settingsFieldClear
	settingsFieldReset
	settingsFieldCount // sentinel
)

const (
	confirmNone = iota
	confirmClear
	confirmReset
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor     int
	editing    bool
	confirming int
	input      textinput.Model
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 32
	return ti
}

func (a App) updateSettingsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "enter":
		return a.settingsActivate()
	}
	return a, nil
}

func (a App) settingsActivate() (tea.Model, tea.Cmd) {
	switch a.settings.cursor {
	case settingsFieldClear:
		a.settings.confirming = confirmClear
		return a, nil
	case settingsFieldReset:
		a.settings.confirming = confirmReset
		return a, nil
	}

	ti := newSettingsInput()
	settings := a.svc.Settings()

	switch a.settings.cursor {
	case settingsFieldName:
		ti.Placeholder = "mess name"
		if settings != nil {
			ti.SetValue(settings.MessName)
		}
	case settingsFieldCost:
		ti.Placeholder = "120"
		if settings != nil {
			ti.SetValue(strconv.FormatFloat(settings.DailyFullCost, 'f', -1, 64))
		}
	case settingsFieldTheme:
		ti.Placeholder = themeNames()
		ti.SetValue(a.cfg.Appearance.Theme)
	case settingsFieldCurrency:
		ti.Placeholder = "₹"
		ti.SetValue(a.cfg.General.Currency)
	}

	ti.Focus()
	a.settings.editing = true
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.settings.confirming != confirmNone {
		switch key {
		case "y", "Y":
			return a.settingsConfirm()
		case "n", "N", "esc":
			a.settings.confirming = confirmNone
			return a, nil
		}
		return a, nil
	}

	switch key {
	case "enter":
		return a.settingsSave()
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a App) settingsConfirm() (tea.Model, tea.Cmd) {
	which := a.settings.confirming
	a.settings.confirming = confirmNone

	switch which {
	case confirmClear:
		if err := a.svc.ClearAttendance(context.Background()); err != nil {
			a.setFlashError(err.Error())
		} else {
			a.refreshSnapshot()
			a.setFlash("Attendance cleared")
		}
	case confirmReset:
		if err := a.svc.ResetAll(context.Background()); err != nil {
			a.setFlashError(err.Error())
			return a, a.flashExpireCmd()
		}
		a.refreshSnapshot()
		a.needSetup = true
		a.setupVals = setupValues{}
		a.setupForm = newSetupForm(&a.setupVals)
		if a.width > 0 {
			a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
		}
		a.activeTab = tabCalendar
		return a, a.setupForm.Init()
	}
	return a, a.flashExpireCmd()
}

func (a App) settingsSave() (tea.Model, tea.Cmd) {
	a.settings.editing = false
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldName, settingsFieldCost:
		updated := model.Settings{}
		if current := a.svc.Settings(); current != nil {
			updated = *current
		}
		if a.settings.cursor == settingsFieldName {
			updated.MessName = val
		} else {
			cost, err := strconv.ParseFloat(val, 64)
			if err != nil {
				a.setFlashError("Daily cost must be a number")
				return a, a.flashExpireCmd()
			}
			updated.DailyFullCost = cost
		}
		if err := a.svc.UpdateSettings(context.Background(), updated); err != nil {
			a.setFlashError(err.Error())
			return a, a.flashExpireCmd()
		}

	case settingsFieldTheme:
		found := false
		for _, t := range theme.All {
			if t.Name == val {
				found = true
				break
			}
		}
		if !found {
			a.setFlashError("Unknown theme: " + val)
			return a, a.flashExpireCmd()
		}
		theme.SetActive(val)
		a.cfg.Appearance.Theme = val
		if err := config.Save(a.cfg); err != nil {
			a.setFlashError(err.Error())
			return a, a.flashExpireCmd()
		}

	case settingsFieldCurrency:
		if val == "" {
			a.setFlashError("Currency symbol cannot be empty")
			return a, a.flashExpireCmd()
		}
		a.cfg.General.Currency = val
		if err := config.Save(a.cfg); err != nil {
			a.setFlashError(err.Error())
			return a, a.flashExpireCmd()
		}
	}

	a.setFlash("Saved")
	return a, a.flashExpireCmd()
}

func (a App) viewSettingsTab() string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selected := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	danger := lipgloss.NewStyle().Foreground(t.Red)

	settings := a.svc.Settings()
	name, cost := "-", "-"
	if settings != nil {
		name = settings.MessName
		cost = cli.FormatMoney(settings.DailyFullCost, a.cfg.General.Currency)
	}

	fields := []struct {
		label string
		value string
	}{
		{"Mess name", name},
		{"Daily full cost", cost},
		{"Theme", a.cfg.Appearance.Theme},
		{"Currency", a.cfg.General.Currency},
		{"Clear attendance", "remove all marked days"},
		{"Reset app", "remove attendance and settings"},
	}

	var lines []string
	for i, f := range fields {
		cursor := "  "
		ls := label
		if i == a.settings.cursor {
			cursor = selected.Render("> ")
			ls = selected
		}

		line := "  " + cursor + ls.Render(padRight(f.label, 18))
		switch {
		case a.settings.editing && i == a.settings.cursor:
			line += a.settings.input.View()
		case i >= settingsFieldClear:
			line += danger.Render(f.value)
		default:
			line += value.Render(f.value)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	switch a.settings.confirming {
	case confirmClear:
		lines = append(lines, danger.Render("  Clear all attendance entries? [y/n]"))
	case confirmReset:
		lines = append(lines, danger.Render("  Reset everything and return to setup? [y/n]"))
	default:
		lines = append(lines, label.Render("  j/k to move, enter to edit, esc to cancel"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func themeNames() string {
	names := make([]string, 0, len(theme.All))
	for _, t := range theme.All {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

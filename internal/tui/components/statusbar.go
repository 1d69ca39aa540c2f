package components

import (
	"messmate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. A non-empty flash is shown
// on the right, styled as an error when isErr is set.
func RenderStatusBar(width int, flash string, isErr bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().Foreground(t.TextMuted).Width(width)

	left := " [?]help  [q]uit"
	right := ""
	if flash != "" {
		flashStyle := lipgloss.NewStyle().Foreground(t.Accent)
		if isErr {
			flashStyle = lipgloss.NewStyle().Foreground(t.Red)
		}
		right = flashStyle.Render(flash) + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}

package components

import (
	"strings"

	"messmate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Calendar", Key: 'c'},
	{Name: "Summary", Key: 's'},
	{Name: "Settings", Key: 'x'},
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tab.Name))
			continue
		}
		name := tab.Name
		if idx := strings.IndexRune(strings.ToLower(name), tab.Key); idx == 0 {
			parts = append(parts, dimStyle.Render("[")+keyStyle.Render(string(name[0]))+dimStyle.Render("]")+inactiveStyle.Render(name[1:]))
		} else {
			parts = append(parts, inactiveStyle.Render(name)+dimStyle.Render("[")+keyStyle.Render(string(tab.Key))+dimStyle.Render("]"))
		}
	}

	return " " + strings.Join(parts, "  ")
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}

// Package tui provides the interactive Bubble Tea dashboard for messmate.
package tui

import (
	"context"
	"errors"
	"time"

	"messmate/internal/cli"
	"messmate/internal/config"
	"messmate/internal/dateutil"
	"messmate/internal/ledger"
	"messmate/internal/model"
	"messmate/internal/tui/components"
	"messmate/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabCalendar = iota
	tabSummary
	tabSettings
)

// loadWait bounds how long the UI blocks on the initial load before
// proceeding in a degraded state. The load itself is not cancelled.
const loadWait = 5 * time.Second

const flashDuration = 3 * time.Second

// loadDoneMsg is sent when load + reconciliation finishes.
type loadDoneMsg struct{ err error }

// loadTimeoutMsg fires if the initial load takes longer than loadWait.
type loadTimeoutMsg struct{}

// flashExpiredMsg clears a transient status bar message.
type flashExpiredMsg struct{ id int }

// App is the root Bubble Tea model.
type App struct {
	svc *ledger.Service
	cfg config.Config

	width    int
	height   int
	loaded   bool
	degraded bool // load timed out, UI running without data
	showHelp bool

	activeTab int

	// Calendar view state
	viewYear  int
	viewMonth time.Month
	cursorDay int

	// Snapshot of the ledger for rendering, refreshed after mutations.
	ledgerSnap model.Ledger

	// Transient status bar message
	flash    string
	flashErr bool
	flashID  int

	spinner spinner.Model
	loadSub chan tea.Msg

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	settings settingsState

	now func() time.Time
}

// NewApp creates a new TUI app model around the ledger service.
func NewApp(svc *ledger.Service, cfg config.Config) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	now := time.Now()
	return App{
		svc:        svc,
		cfg:        cfg,
		viewYear:   now.Year(),
		viewMonth:  now.Month(),
		cursorDay:  now.Day(),
		ledgerSnap: model.Ledger{},
		spinner:    sp,
		loadSub:    make(chan tea.Msg, 1),
		now:        time.Now,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		startLoadCmd(a.svc, a.loadSub),
		waitForLoadCmd(a.loadSub),
		tea.Tick(loadWait, func(time.Time) tea.Msg { return loadTimeoutMsg{} }),
	)
}

// startLoadCmd kicks off load + reconciliation in the background. The
// result arrives through sub so the timeout can abandon the wait without
// cancelling the work.
func startLoadCmd(svc *ledger.Service, sub chan<- tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			sub <- loadDoneMsg{err: svc.Load(context.Background())}
		}()
		return nil
	}
}

func waitForLoadCmd(sub <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case loadDoneMsg:
		a.loaded = true
		a.degraded = false
		a.refreshSnapshot()
		if msg.err != nil {
			a.setFlashError("Load failed: " + msg.err.Error())
		}
		if !a.svc.Configured() {
			a.needSetup = true
			a.setupForm = newSetupForm(&a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case loadTimeoutMsg:
		if !a.loaded {
			a.degraded = true
		}
		return a, nil

	case flashExpiredMsg:
		if msg.id == a.flashID {
			a.flash = ""
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded && !a.degraded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if !a.loaded && !a.degraded {
		return a, nil
	}

	// First-run setup form intercepts all keys.
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Settings tab editing intercepts all keys.
	if a.activeTab == tabSettings && (a.settings.editing || a.settings.confirming != confirmNone) {
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if key == "q" {
		return a, tea.Quit
	}

	// Tab switching
	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}
	switch key {
	case "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	}

	switch a.activeTab {
	case tabCalendar:
		return a.updateCalendarKey(key)
	case tabSummary:
		switch key {
		case "[", "pgup":
			a.gotoMonth(-1)
		case "]", "pgdown":
			a.gotoMonth(1)
		}
		return a, nil
	case tabSettings:
		return a.updateSettingsKey(key)
	}

	return a, nil
}

func (a *App) refreshSnapshot() {
	a.ledgerSnap = a.svc.Ledger()
}

// gotoMonth moves the viewed month by delta months and clamps the cursor.
func (a *App) gotoMonth(delta int) {
	t := time.Date(a.viewYear, a.viewMonth, 1, 0, 0, 0, 0, time.Local).AddDate(0, delta, 0)
	a.viewYear = t.Year()
	a.viewMonth = t.Month()
	if days := dateutil.DaysInMonth(a.viewMonth, a.viewYear); a.cursorDay > days {
		a.cursorDay = days
	}
}

func (a *App) setFlash(msg string) {
	a.flash = msg
	a.flashErr = false
	a.flashID++
}

func (a *App) setFlashError(msg string) {
	a.flash = msg
	a.flashErr = true
	a.flashID++
}

func (a App) flashExpireCmd() tea.Cmd {
	id := a.flashID
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashExpiredMsg{id: id} })
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		settings, err := a.setupVals.toSettings()
		if err == nil {
			err = a.svc.UpdateSettings(context.Background(), settings)
		}
		if err != nil {
			a.setFlashError(err.Error())
		} else {
			a.setFlash("Welcome to " + settings.MessName + "!")
		}
		a.needSetup = false
		a.setupForm = nil
		return a, a.flashExpireCmd()
	}

	if a.setupForm.State == huh.StateAborted {
		return a, tea.Quit
	}

	return a, cmd
}

// markCursorDay advances the selected day one step around the mark cycle.
func (a App) markCursorDay() (tea.Model, tea.Cmd) {
	key := dateutil.Key(a.viewYear, a.viewMonth, a.cursorDay)
	status, err := a.svc.MarkDay(context.Background(), key)
	if err != nil {
		if errors.Is(err, ledger.ErrFutureDate) {
			a.setFlashError("Cannot mark attendance for future dates")
		} else {
			a.setFlashError(err.Error())
		}
		return a, a.flashExpireCmd()
	}

	a.refreshSnapshot()
	a.setFlash(key + " → " + string(status))
	return a, a.flashExpireCmd()
}

// quickMark sets today's entry directly, bypassing the cycle.
func (a App) quickMark(status model.Status) (tea.Model, tea.Cmd) {
	key, err := a.svc.QuickMark(context.Background(), status)
	if err != nil {
		a.setFlashError(err.Error())
		return a, a.flashExpireCmd()
	}

	a.refreshSnapshot()
	a.setFlash("Today (" + key + ") → " + string(status))
	return a, a.flashExpireCmd()
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if !a.loaded && !a.degraded {
		return a.viewLoading()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewLoading() string {
	t := theme.Active

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(a.spinner.View() + " Loading attendance...")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewHelp() string {
	t := theme.Active
	title := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	key := lipgloss.NewStyle().Foreground(t.TextPrimary)
	desc := lipgloss.NewStyle().Foreground(t.TextMuted)

	lines := []string{
		"",
		title.Render("  messmate keys"),
		"",
		key.Render("  arrows      ") + desc.Render("move day cursor"),
		key.Render("  enter/space ") + desc.Render("cycle mark: unset/absent → half → full → absent"),
		key.Render("  f / h / a   ") + desc.Render("quick-mark today full / half / absent"),
		key.Render("  [ / ]       ") + desc.Render("previous / next month"),
		key.Render("  t           ") + desc.Render("jump to today"),
		key.Render("  c / s / x   ") + desc.Render("calendar / summary / settings tab"),
		key.Render("  q           ") + desc.Render("quit"),
		"",
		desc.Render("  Unmarked past days are auto-filled as Full on startup,"),
		desc.Render("  and today is auto-filled after 21:00."),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a App) viewMain() string {
	var content string
	switch a.activeTab {
	case tabCalendar:
		content = a.viewCalendarTab()
	case tabSummary:
		content = a.viewSummaryTab()
	case tabSettings:
		content = a.viewSettingsTab()
	}

	header := a.viewHeader()
	tabbar := components.RenderTabBar(a.activeTab)
	status := components.RenderStatusBar(a.width, a.flash, a.flashErr)

	body := lipgloss.JoinVertical(lipgloss.Left, header, tabbar, "", content)

	gap := a.height - lipgloss.Height(body) - 1
	for i := 0; i < gap; i++ {
		body += "\n"
	}

	return body + status
}

func (a App) viewHeader() string {
	t := theme.Active
	name := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)

	title := "messmate"
	sub := ""
	if settings := a.svc.Settings(); settings != nil {
		title = settings.MessName
		sub = "  Full day: " + cli.FormatMoney(settings.DailyFullCost, a.cfg.General.Currency)
	}
	if a.degraded && !a.loaded {
		sub += "  (still loading...)"
	}

	return " " + name.Render(title) + muted.Render(sub)
}

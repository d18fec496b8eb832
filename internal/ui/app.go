package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/edwardstark/taglock/internal/access"
	"github.com/edwardstark/taglock/internal/config"
	"github.com/edwardstark/taglock/internal/store"
	"github.com/edwardstark/taglock/internal/ui/components"
)

// --- Tab Constants ---

const (
	tabMonitor    = 0
	tabTags       = 1
	tabConnection = 2
	tabCount      = 3
)

var tabNames = []string{"Monitor", "Tags", "Connection"}

// --- Messages ---

type clearToastMsg struct{}

type appToast struct {
	level string
	text  string
}

// --- App Model ---

// App is the root TUI model that routes between tabs.
type App struct {
	config *config.Config
	store  *store.Store

	tab         int
	width       int
	height      int
	helpOpen    bool
	quitConfirm bool
	toast       *appToast

	monitor    MonitorModel
	tags       TagsModel
	connection ConnectionModel
}

// NewApp creates the root application model.
func NewApp(cfg *config.Config, s *store.Store) App {
	ctrl := access.NewController(s, nil)
	return App{
		config:     cfg,
		store:      s,
		tab:        tabMonitor,
		monitor:    NewMonitorModel(ctrl, cfg),
		tags:       NewTagsModel(s),
		connection: NewConnectionModel(cfg),
	}
}

func (a App) Init() tea.Cmd {
	return a.monitor.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.monitor.width = msg.Width
		a.monitor.height = msg.Height
		a.tags.width = msg.Width
		a.tags.height = msg.Height
		a.connection.width = msg.Width
		a.connection.height = msg.Height
		return a, nil

	case clearToastMsg:
		a.toast = nil
		return a, nil

	case linkOpenedMsg, resetScanMsg:
		var cmd tea.Cmd
		a.monitor, cmd = a.monitor.Update(msg)
		a.syncConnection()
		return a, cmd

	case tagAddedMsg:
		var cmd tea.Cmd
		a.tags, _ = a.tags.Update(msg)
		if msg.persistErr != nil {
			a.monitor.recordActivity(activityError, fmt.Sprintf("Tag %s added, save failed: %v", msg.tag, msg.persistErr))
			cmd = a.setToast("warning", fmt.Sprintf("Tag added; saving failed: %v", msg.persistErr))
		} else {
			a.monitor.recordActivity(activityInfo, "Tag added: "+msg.tag)
			cmd = a.setToast("success", "Tag added: "+msg.tag)
		}
		return a, cmd

	case tagRemovedMsg:
		var cmd tea.Cmd
		a.tags, _ = a.tags.Update(msg)
		if msg.persistErr != nil {
			a.monitor.recordActivity(activityError, fmt.Sprintf("Tag %s removed, save failed: %v", msg.tag, msg.persistErr))
			cmd = a.setToast("warning", fmt.Sprintf("Tag removed; saving failed: %v", msg.persistErr))
		} else {
			a.monitor.recordActivity(activityInfo, "Tag removed: "+msg.tag)
			cmd = a.setToast("success", "Tag removed: "+msg.tag)
		}
		return a, cmd

	case portSavedMsg:
		var cmd tea.Cmd
		a.connection, _ = a.connection.Update(msg)
		if msg.err == nil {
			cmd = a.setToast("success", "Port set to "+msg.port)
		}
		return a, cmd

	case tea.KeyMsg:
		return a.handleKeys(msg)
	}

	return a.delegate(msg)
}

func (a App) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.quitConfirm {
		switch {
		case isKey(msg, "y"):
			a.monitor.closeLink()
			return a, tea.Quit
		case isKey(msg, "n"), isBack(msg):
			a.quitConfirm = false
		}
		return a, nil
	}

	// While a scan session is live, the reader owns the keyboard: digits
	// and Enter go to the buffer, and tab-switch keys must not fire in
	// the middle of a tag ID. Quit keys still work; tag IDs are digits
	// only, so q can never be part of one.
	if a.tab == tabMonitor && a.monitor.capturesKeys() {
		if isQuit(msg) {
			a.quitConfirm = true
			return a, nil
		}
		var cmd tea.Cmd
		a.monitor, cmd = a.monitor.Update(msg)
		a.syncConnection()
		return a, cmd
	}

	if a.helpOpen {
		if isBack(msg) || isKey(msg, "?") {
			a.helpOpen = false
		}
		return a, nil
	}

	// Dialogs on the tags tab take the keyboard before global keys.
	if a.tab == tabTags && (a.tags.adding || a.tags.confirming != "") {
		var cmd tea.Cmd
		a.tags, cmd = a.tags.Update(msg)
		return a, cmd
	}

	// Global keys
	if isKey(msg, "?") {
		a.helpOpen = true
		return a, nil
	}
	if isQuit(msg) {
		if a.monitor.scanning {
			a.quitConfirm = true
			return a, nil
		}
		a.monitor.closeLink()
		return a, tea.Quit
	}

	switch {
	case isKey(msg, "1"):
		return a.switchTab(tabMonitor)
	case isKey(msg, "2"):
		return a.switchTab(tabTags)
	case isKey(msg, "3"):
		return a.switchTab(tabConnection)
	case isKey(msg, "left"):
		return a.switchTab((a.tab - 1 + tabCount) % tabCount)
	case isKey(msg, "right"):
		return a.switchTab((a.tab + 1) % tabCount)
	}

	return a.delegate(msg)
}

func (a App) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.tab {
	case tabMonitor:
		a.monitor, cmd = a.monitor.Update(msg)
		a.syncConnection()
	case tabTags:
		a.tags, cmd = a.tags.Update(msg)
	case tabConnection:
		a.connection, cmd = a.connection.Update(msg)
	}
	return a, cmd
}

func (a *App) switchTab(newTab int) (App, tea.Cmd) {
	oldTab := a.tab
	a.tab = newTab
	if oldTab == newTab {
		return *a, nil
	}
	switch newTab {
	case tabMonitor:
		return *a, a.monitor.Init()
	case tabTags:
		a.tags.refresh()
		return *a, nil
	case tabConnection:
		return *a, a.connection.Init()
	}
	return *a, nil
}

// syncConnection mirrors the monitor's link state onto the connection tab.
func (a *App) syncConnection() {
	a.connection.connectedPort = a.monitor.ConnectedPort()
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

// --- View ---

func (a App) View() string {
	banner := centerBlock(RenderBanner(), a.width)
	tabs := centerBlock(a.renderTabs(), a.width)

	var content string
	switch a.tab {
	case tabMonitor:
		content = a.monitor.View()
	case tabTags:
		content = a.tags.View()
	case tabConnection:
		content = a.connection.View()
	}
	if a.quitConfirm {
		content = a.renderQuitConfirm()
	} else if a.helpOpen {
		content = a.renderHelp()
	}
	content = centerBlock(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.toast != nil {
		feedback = "\n\n" + centerBlock(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s%s", banner, tabs, content, hints, feedback)
}

func (a App) renderTabs() string {
	segments := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if i == a.tab {
			segments = append(segments, TabActiveStyle.Render(name))
		} else {
			segments = append(segments, TabInactiveStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func (a App) renderQuitConfirm() string {
	return components.ConfirmDialog("Quit", "Scanning is active. Stop and quit?")
}

func (a App) renderHelp() string {
	body := MutedStyle.Render("esc to close") + "\n\n" +
		components.Indent(strings.Join(a.statusHints(), "\n"), 2)
	return components.TitledBox("Help", body, a.width)
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Success"
	case "warning":
		title = "Warning"
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

func (a App) statusHints() []string {
	if a.quitConfirm {
		return []string{
			components.Hint("y", "Confirm"),
			components.Hint("n", "Cancel"),
		}
	}
	if a.helpOpen {
		return []string{
			components.Hint("esc", "Back"),
		}
	}

	var tabHints []string
	switch a.tab {
	case tabMonitor:
		tabHints = a.monitor.statusHints()
		if a.monitor.capturesKeys() {
			// The reader owns the keyboard; global hints would lie.
			return tabHints
		}
	case tabTags:
		tabHints = a.tags.statusHints()
		if a.tags.adding || a.tags.confirming != "" {
			return tabHints
		}
	case tabConnection:
		tabHints = a.connection.statusHints()
	}

	base := []string{
		components.Hint("1-3", "Tabs"),
		components.Hint("?", "Help"),
		components.Hint("q", "Quit"),
	}
	return append(tabHints, base...)
}

func centerBlock(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/edwardstark/taglock/internal/access"
	"github.com/edwardstark/taglock/internal/config"
	"github.com/edwardstark/taglock/internal/device"
	"github.com/edwardstark/taglock/internal/ui/components"
)

// --- Messages ---

type linkOpenedMsg struct {
	link device.Link
	port string
	err  error
}

type resetScanMsg struct{}

// resultHold is how long a grant/deny stays on screen before the display
// returns to "scanning".
const resultHold = 2 * time.Second

// maxActivity caps the recent-activity feed.
const maxActivity = 6

type activityLevel int

const (
	activityInfo activityLevel = iota
	activitySuccess
	activityError
)

type activityEntry struct {
	when  time.Time
	level activityLevel
	text  string
}

// --- Monitor Model ---

// MonitorModel is the scan screen: it owns the scanning session, the digit
// buffer fed by the keyboard-wedge reader, and the serial link to the lock.
type MonitorModel struct {
	ctrl *access.Controller
	cfg  *config.Config

	// dial is swapped for a fake in tests.
	dial func(port string, baud int) (device.Link, error)

	link       device.Link
	linkPort   string
	scanning   bool
	connecting bool
	buffer     string
	result     *access.Result
	errText    string
	activity   []activityEntry

	width  int
	height int
}

// NewMonitorModel builds the monitor screen.
func NewMonitorModel(ctrl *access.Controller, cfg *config.Config) MonitorModel {
	return MonitorModel{
		ctrl: ctrl,
		cfg:  cfg,
		dial: func(port string, baud int) (device.Link, error) {
			return device.Dial(port, baud)
		},
	}
}

func (m MonitorModel) Init() tea.Cmd {
	return nil
}

// capturesKeys reports whether the monitor wants raw keys ahead of global
// handling. While scanning, digits and Enter belong to the reader, so tab
// switching and quit keys must not fire.
func (m MonitorModel) capturesKeys() bool {
	return m.scanning || m.connecting
}

// Connected reports the open link's port, empty when disconnected.
func (m MonitorModel) ConnectedPort() string {
	if m.link == nil {
		return ""
	}
	return m.linkPort
}

func (m MonitorModel) Update(msg tea.Msg) (MonitorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case linkOpenedMsg:
		m.connecting = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			m.recordActivity(activityError, "Connection failed: "+msg.err.Error())
			return m, nil
		}
		m.link = msg.link
		m.linkPort = msg.port
		m.scanning = true
		m.errText = ""
		m.ctrl.SetLink(msg.link)
		m.recordActivity(activitySuccess, "Scanning started on "+msg.port)
		return m, nil

	case resetScanMsg:
		m.result = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m MonitorModel) handleKeys(msg tea.KeyMsg) (MonitorModel, tea.Cmd) {
	if m.connecting {
		return m, nil
	}

	if !m.scanning {
		if isKey(msg, "s") || isEnter(msg) {
			return m.startScanning()
		}
		return m, nil
	}

	switch {
	case isBack(msg), isKey(msg, "s"):
		m = m.stopScanning()
		return m, nil
	case isEnter(msg):
		return m.submitBuffer()
	default:
		if d, ok := isDigit(msg); ok {
			m.buffer += string(d)
		}
		// Anything else from the reader is dropped, as the original
		// event filter did.
	}
	return m, nil
}

func (m MonitorModel) startScanning() (MonitorModel, tea.Cmd) {
	if m.cfg.Port == "" {
		m.errText = "no serial port configured: pick one on the Connection tab"
		return m, nil
	}
	m.connecting = true
	m.errText = ""
	port, baud := m.cfg.Port, m.cfg.Baud
	dial := m.dial
	return m, func() tea.Msg {
		link, err := dial(port, baud)
		return linkOpenedMsg{link: link, port: port, err: err}
	}
}

func (m MonitorModel) stopScanning() MonitorModel {
	m.closeLink()
	m.scanning = false
	m.buffer = ""
	m.result = nil
	m.recordActivity(activityInfo, "Scanning stopped")
	return m
}

// closeLink releases the serial port. Also called by the app on quit.
func (m *MonitorModel) closeLink() {
	if m.link != nil {
		m.link.Close()
		m.link = nil
		m.linkPort = ""
	}
	m.ctrl.SetLink(nil)
}

func (m MonitorModel) submitBuffer() (MonitorModel, tea.Cmd) {
	tag := m.buffer
	m.buffer = ""

	res := m.ctrl.Check(tag)
	m.result = &res

	switch res.Outcome {
	case access.OutcomeEmpty:
		m.recordActivity(activityError, "Empty tag")
	case access.OutcomeGranted:
		m.recordActivity(activitySuccess, "Access granted: "+res.Tag)
		if res.UnlockErr != nil {
			m.recordActivity(activityError, "Unlock write failed: "+res.UnlockErr.Error())
		}
	case access.OutcomeDenied:
		m.recordActivity(activityError, "Access denied: "+res.Tag)
	}

	return m, tea.Tick(resultHold, func(time.Time) tea.Msg {
		return resetScanMsg{}
	})
}

func (m *MonitorModel) recordActivity(level activityLevel, text string) {
	entry := activityEntry{when: time.Now(), level: level, text: components.SanitizeOneLine(text)}
	m.activity = append([]activityEntry{entry}, m.activity...)
	if len(m.activity) > maxActivity {
		m.activity = m.activity[:maxActivity]
	}
}

// --- View ---

func (m MonitorModel) View() string {
	var b strings.Builder

	b.WriteString(components.TitledBox("Scanner", m.renderStatusCard(), m.width))
	b.WriteString("\n\n")
	b.WriteString(components.TitledBox("Recent Activity", m.renderActivity(), m.width))

	if m.errText != "" {
		b.WriteString("\n\n")
		b.WriteString(components.ErrorBox("Error", m.errText, m.width))
	}

	return b.String()
}

func (m MonitorModel) renderStatusCard() string {
	var b strings.Builder

	if port := m.ConnectedPort(); port != "" {
		b.WriteString(SuccessStyle.Render("● Connected") + MutedStyle.Render(" "+port))
	} else if m.connecting {
		b.WriteString(WarningStyle.Render("● Connecting..."))
	} else {
		b.WriteString(ErrorStyle.Render("● Disconnected"))
		if m.cfg.Port != "" {
			b.WriteString("\n")
			b.WriteString(components.InfoRow("Port", m.cfg.Port))
		}
	}
	b.WriteString("\n\n")

	switch {
	case m.result != nil:
		b.WriteString(m.renderResult())
	case m.scanning:
		b.WriteString(AccentStyle.Render("SCANNING..."))
		b.WriteString("\n")
		if m.buffer != "" {
			b.WriteString(NormalStyle.Render(m.buffer) + AccentStyle.Render("█"))
		} else {
			b.WriteString(MutedStyle.Render("waiting for reader input"))
		}
	default:
		b.WriteString(NormalStyle.Render("READY TO SCAN"))
		b.WriteString("\n")
		b.WriteString(MutedStyle.Render("press s to start scanning"))
	}

	return b.String()
}

func (m MonitorModel) renderResult() string {
	res := m.result
	switch res.Outcome {
	case access.OutcomeGranted:
		return SuccessStyle.Render("ACCESS GRANTED") + "\n" + SuccessStyle.Render(res.Tag)
	case access.OutcomeDenied:
		return ErrorStyle.Render("ACCESS DENIED") + "\n" + ErrorStyle.Render(res.Tag)
	default:
		return ErrorStyle.Render("EMPTY TAG")
	}
}

func (m MonitorModel) renderActivity() string {
	if len(m.activity) == 0 {
		return MutedStyle.Render("no activity yet")
	}
	lines := make([]string, 0, len(m.activity))
	for _, e := range m.activity {
		stamp := MutedStyle.Render(e.when.Format("[15:04:05] "))
		var text string
		switch e.level {
		case activitySuccess:
			text = SuccessStyle.Render(e.text)
		case activityError:
			text = ErrorStyle.Render(e.text)
		default:
			text = NormalStyle.Render(e.text)
		}
		lines = append(lines, stamp+text)
	}
	return strings.Join(lines, "\n")
}

func (m MonitorModel) statusHints() []string {
	if m.scanning {
		return []string{
			components.Hint("0-9", "Tag"),
			components.Hint("enter", "Submit"),
			components.Hint("esc", "Stop"),
		}
	}
	return []string{
		components.Hint("s", "Scan"),
	}
}

package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/edwardstark/taglock/internal/config"
	"github.com/edwardstark/taglock/internal/device"
	"github.com/edwardstark/taglock/internal/ui/components"
)

// --- Messages ---

type portsLoadedMsg struct {
	ports []device.PortInfo
	err   error
}

type portSavedMsg struct {
	port string
	err  error
}

// --- Connection Model ---

// ConnectionModel picks the serial port the lock controller is attached to
// and persists the choice to the config file.
type ConnectionModel struct {
	cfg *config.Config

	// test seams
	listPorts  func() ([]device.PortInfo, error)
	saveConfig func(*config.Config) error

	ports   []device.PortInfo
	list    *components.List
	loading bool
	errText string

	// connectedPort is synced by the app from the monitor's link state.
	connectedPort string

	width  int
	height int
}

// NewConnectionModel builds the connection screen.
func NewConnectionModel(cfg *config.Config) ConnectionModel {
	return ConnectionModel{
		cfg:        cfg,
		listPorts:  device.ListPorts,
		saveConfig: (*config.Config).Save,
		list:       components.NewList(6),
		loading:    true,
	}
}

func (m ConnectionModel) Init() tea.Cmd {
	return m.loadPorts()
}

func (m ConnectionModel) loadPorts() tea.Cmd {
	listPorts := m.listPorts
	return func() tea.Msg {
		ports, err := listPorts()
		return portsLoadedMsg{ports: ports, err: err}
	}
}

func (m ConnectionModel) Update(msg tea.Msg) (ConnectionModel, tea.Cmd) {
	switch msg := msg.(type) {
	case portsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.ports = msg.ports
		labels := make([]string, 0, len(msg.ports))
		for _, p := range msg.ports {
			labels = append(labels, p.Label())
		}
		m.list.SetItems(labels)
		return m, nil

	case portSavedMsg:
		if msg.err != nil {
			m.errText = fmt.Sprintf("save config: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case isUp(msg):
			m.list.Up()
		case isDown(msg):
			m.list.Down()
		case isKey(msg, "r"):
			m.loading = true
			m.errText = ""
			return m, m.loadPorts()
		case isEnter(msg):
			return m.selectPort()
		}
	}
	return m, nil
}

func (m ConnectionModel) selectPort() (ConnectionModel, tea.Cmd) {
	idx := m.list.Selected()
	if idx < 0 || idx >= len(m.ports) {
		return m, nil
	}
	m.cfg.Port = m.ports[idx].Name
	cfg, save := m.cfg, m.saveConfig
	return m, func() tea.Msg {
		return portSavedMsg{port: cfg.Port, err: save(cfg)}
	}
}

// --- View ---

func (m ConnectionModel) View() string {
	var b strings.Builder

	status := "disconnected"
	if m.connectedPort != "" {
		status = "connected to " + m.connectedPort
	}
	port := m.cfg.Port
	if port == "" {
		port = "-"
	}
	rows := []components.TableRow{
		{Label: "Port", Value: port},
		{Label: "Baud", Value: fmt.Sprintf("%d", m.cfg.Baud)},
		{Label: "Status", Value: status},
	}
	b.WriteString(components.Table("Connection", rows, m.width))
	b.WriteString("\n\n")
	b.WriteString(components.TitledBox("Available Ports", m.renderPorts(), m.width))

	if m.errText != "" {
		b.WriteString("\n\n")
		b.WriteString(components.ErrorBox("Error", m.errText, m.width))
	}
	return b.String()
}

func (m ConnectionModel) renderPorts() string {
	if m.loading {
		return MutedStyle.Render("scanning ports...")
	}
	if len(m.ports) == 0 {
		return MutedStyle.Render("no ports available (r to refresh)")
	}
	var b strings.Builder
	for i, label := range m.list.Visible() {
		abs := m.list.RelToAbs(i)
		marker := "  "
		if abs < len(m.ports) && m.ports[abs].Name == m.cfg.Port {
			marker = AccentStyle.Render("* ")
		}
		if m.list.IsSelected(abs) {
			b.WriteString(SelectedStyle.Render("> ") + marker + SelectedStyle.Render(label))
		} else {
			b.WriteString("  " + marker + NormalStyle.Render(label))
		}
		if i < len(m.list.Visible())-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m ConnectionModel) statusHints() []string {
	return []string{
		components.Hint("↑/↓", "Scroll"),
		components.Hint("enter", "Select"),
		components.Hint("r", "Refresh"),
	}
}

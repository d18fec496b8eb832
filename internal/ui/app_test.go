package ui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwardstark/taglock/internal/config"
	"github.com/edwardstark/taglock/internal/device"
	"github.com/edwardstark/taglock/internal/store"
	"github.com/edwardstark/taglock/internal/ui/components"
)

func testApp(t *testing.T) App {
	s, err := store.Open(filepath.Join(t.TempDir(), "allowed_tags.json"))
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Port = "/dev/ttyUSB0"

	a := NewApp(cfg, s)
	a.connection.listPorts = func() ([]device.PortInfo, error) { return nil, nil }
	a.connection.saveConfig = func(*config.Config) error { return nil }
	a.monitor.dial = func(port string, baud int) (device.Link, error) {
		return &fakeLink{}, nil
	}
	model, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return model.(App)
}

func update(a App, msg tea.Msg) (App, tea.Cmd) {
	model, cmd := a.Update(msg)
	return model.(App), cmd
}

func appStartScan(t *testing.T, a App) App {
	a, cmd := update(a, key("s"))
	require.NotNil(t, cmd)
	a, _ = update(a, cmd())
	require.True(t, a.monitor.scanning)
	return a
}

func TestAppSwitchesTabsWithNumberKeys(t *testing.T) {
	a := testApp(t)
	assert.Equal(t, tabMonitor, a.tab)

	a, _ = update(a, key("2"))
	assert.Equal(t, tabTags, a.tab)

	a, _ = update(a, key("3"))
	assert.Equal(t, tabConnection, a.tab)

	a, _ = update(a, key("1"))
	assert.Equal(t, tabMonitor, a.tab)
}

func TestAppArrowTabNavigationWraps(t *testing.T) {
	a := testApp(t)

	a, _ = update(a, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, tabConnection, a.tab)

	a, _ = update(a, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, tabMonitor, a.tab)
}

func TestAppDigitKeysFeedBufferWhileScanning(t *testing.T) {
	a := testApp(t)
	a = appStartScan(t, a)

	// Tag IDs can contain 1-3; those must buffer, not switch tabs.
	for _, k := range []string{"1", "2", "3"} {
		a, _ = update(a, key(k))
	}
	assert.Equal(t, tabMonitor, a.tab)
	assert.Equal(t, "123", a.monitor.buffer)
}

func TestAppQuitImmediateWhenIdle(t *testing.T) {
	a := testApp(t)

	_, cmd := update(a, key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestAppQuitConfirmWhileScanning(t *testing.T) {
	a := testApp(t)
	a = appStartScan(t, a)

	a, cmd := update(a, key("ctrl+c"))
	assert.Nil(t, cmd)
	assert.True(t, a.quitConfirm)

	out := components.SanitizeText(a.View())
	assert.Contains(t, out, "Scanning is active")

	// n returns to the app.
	a, _ = update(a, key("n"))
	assert.False(t, a.quitConfirm)

	// y quits.
	a, _ = update(a, key("ctrl+c"))
	_, cmd = update(a, key("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestAppQKeyRaisesQuitConfirmWhileScanning(t *testing.T) {
	a := testApp(t)
	a = appStartScan(t, a)

	a, cmd := update(a, key("q"))
	assert.Nil(t, cmd)
	assert.True(t, a.quitConfirm)
	assert.True(t, a.monitor.scanning)
	assert.Empty(t, a.monitor.buffer)
}

func TestAppTagEventsLandInActivityAndToast(t *testing.T) {
	a := testApp(t)
	a, _ = update(a, key("2"))

	a, _ = update(a, key("a"))
	for _, k := range []string{"5", "5", "5"} {
		a, _ = update(a, key(k))
	}
	a, cmd := update(a, key("enter"))
	require.NotNil(t, cmd)
	a, _ = update(a, cmd())

	require.NotNil(t, a.toast)
	assert.Contains(t, a.toast.text, "Tag added: 555")
	require.NotEmpty(t, a.monitor.activity)
	assert.Contains(t, a.monitor.activity[0].text, "Tag added: 555")
}

func TestAppToastClears(t *testing.T) {
	a := testApp(t)
	a.toast = &appToast{level: "info", text: "hello"}

	a, _ = update(a, clearToastMsg{})
	assert.Nil(t, a.toast)
}

func TestAppHelpOverlayToggles(t *testing.T) {
	a := testApp(t)

	a, _ = update(a, key("?"))
	assert.True(t, a.helpOpen)
	out := components.SanitizeText(a.View())
	assert.Contains(t, out, "Help")

	a, _ = update(a, key("esc"))
	assert.False(t, a.helpOpen)
}

func TestAppConnectionStatusFollowsLink(t *testing.T) {
	a := testApp(t)
	a = appStartScan(t, a)
	assert.Equal(t, "/dev/ttyUSB0", a.connection.connectedPort)

	a, _ = update(a, key("esc"))
	assert.Empty(t, a.connection.connectedPort)
}

func TestAppViewShowsBannerAndTabs(t *testing.T) {
	a := testApp(t)
	out := components.SanitizeText(a.View())
	assert.Contains(t, out, "RFID Access Control")
	for _, name := range tabNames {
		assert.Contains(t, out, name)
	}
}

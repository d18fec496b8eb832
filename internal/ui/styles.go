package ui

import "github.com/charmbracelet/lipgloss"

// --- Theme Colors ---
//
// The palette follows the controller hardware's status LEDs: blue while
// idle/scanning, green on a grant, red on a deny.

var (
	ColorPrimary    = lipgloss.Color("#5352ed") // indigo
	ColorAccent     = lipgloss.Color("#70a1ff") // light blue
	ColorBackground = lipgloss.Color("#12121c") // dark
	ColorText       = lipgloss.Color("#dcdde1") // main text
	ColorMuted      = lipgloss.Color("#8f95b2") // muted text
	ColorSuccess    = lipgloss.Color("#1dd1a1") // grant green
	ColorError      = lipgloss.Color("#ff4757") // deny red
	ColorWarning    = lipgloss.Color("#eccc68") // warning
	ColorBorder     = lipgloss.Color("#2f3542") // border
)

// --- Reusable Styles ---

var (
	BannerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorBackground).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			PaddingBottom(1)
)

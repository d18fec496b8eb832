package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/edwardstark/taglock/internal/cmd"
	"github.com/edwardstark/taglock/internal/config"
	"github.com/edwardstark/taglock/internal/store"
	"github.com/edwardstark/taglock/internal/ui"
)

func main() {
	root := &cobra.Command{
		Use:   "taglock",
		Short: "taglock - RFID access control",
		Long:  "Taglock checks scanned RFID tags against a local allow-list and signals the lock controller over a serial port.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.TagsCmd())
	root.AddCommand(cmd.PortsCmd())
	root.AddCommand(cmd.CheckCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI() error {
	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return fmt.Errorf("not a terminal; use 'taglock tags' or 'taglock check' for scripting")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s, err := store.Open(cfg.TagsFile)
	if err != nil {
		// The store fell back to defaults but could not write them;
		// still usable for this session.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	app := ui.NewApp(cfg, s)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

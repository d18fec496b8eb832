package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edwardstark/taglock/internal/device"
)

// PortsCmd returns the `taglock ports` command.
func PortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List serial ports on this machine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ports, err := device.ListPorts()
			if err != nil {
				return err
			}
			if len(ports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no ports available")
				return nil
			}
			for _, p := range ports {
				fmt.Fprintln(cmd.OutOrStdout(), p.Label())
			}
			return nil
		},
	}
}

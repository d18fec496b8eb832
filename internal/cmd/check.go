package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edwardstark/taglock/internal/access"
	"github.com/edwardstark/taglock/internal/config"
	"github.com/edwardstark/taglock/internal/device"
)

// CheckCmd returns the `taglock check` command: a one-shot access check for
// scripting. Exit code 0 means granted.
func CheckCmd() *cobra.Command {
	var (
		tagsFile string
		unlock   bool
		port     string
	)

	cmd := &cobra.Command{
		Use:   "check <tag>",
		Short: "Check a tag against the allow-list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(tagsFile)
			if err != nil {
				return err
			}

			var link device.Link
			if unlock {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				if port == "" {
					port = cfg.Port
				}
				l, err := device.Dial(port, cfg.Baud)
				if err != nil {
					return err
				}
				defer l.Close()
				link = l
			}

			res := access.NewController(s, link).Check(args[0])
			switch res.Outcome {
			case access.OutcomeGranted:
				fmt.Fprintf(cmd.OutOrStdout(), "access granted: %s\n", res.Tag)
				if res.UnlockErr != nil {
					return fmt.Errorf("unlock: %w", res.UnlockErr)
				}
				return nil
			case access.OutcomeDenied:
				return fmt.Errorf("access denied: %s", res.Tag)
			default:
				return fmt.Errorf("empty tag")
			}
		},
	}

	cmd.Flags().StringVar(&tagsFile, "tags-file", "", "path to the tags file (default from config)")
	cmd.Flags().BoolVar(&unlock, "unlock", false, "send the unlock command on a grant")
	cmd.Flags().StringVar(&port, "port", "", "serial port for --unlock (default from config)")
	return cmd
}

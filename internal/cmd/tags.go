// Package cmd holds the headless subcommands: allow-list management, port
// listing, and one-shot access checks for scripting.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edwardstark/taglock/internal/config"
	"github.com/edwardstark/taglock/internal/store"
)

// openStore resolves the tags file (flag override first, then config) and
// opens it.
func openStore(tagsFile string) (*store.Store, error) {
	if tagsFile == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		tagsFile = cfg.TagsFile
	}
	s, err := store.Open(tagsFile)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// TagsCmd returns the `taglock tags` command group.
func TagsCmd() *cobra.Command {
	var tagsFile string

	root := &cobra.Command{
		Use:   "tags",
		Short: "Manage the allow-list without the TUI",
	}
	root.PersistentFlags().StringVar(&tagsFile, "tags-file", "", "path to the tags file (default from config)")

	list := &cobra.Command{
		Use:   "list",
		Short: "Print all authorized tags in order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStore(tagsFile)
			if err != nil {
				return err
			}
			for _, tag := range s.Tags() {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <tag>",
		Short: "Add a tag to the allow-list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(tagsFile)
			if err != nil {
				return err
			}
			added, err := s.Add(args[0])
			if err != nil {
				return err
			}
			if !added {
				return fmt.Errorf("tag %q is already in the list", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", args[0])
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <tag>",
		Short: "Remove a tag from the allow-list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(tagsFile)
			if err != nil {
				return err
			}
			removed, err := s.Remove(args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("tag %q is not in the list", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}

	root.AddCommand(list, add, remove)
	return root
}

package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newReleaseCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Commands for managing releases",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <artist> <name> <year>",
		Short: "Register a new release",
		Long: `Register a new release. The artist needs to be registered already.

Example:
  mlog release add "Boards of Canada" "Geogaddi" 2002`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.ParseUint(args[2], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid year %q: must be a non-negative integer", args[2])
			}
			return a.handler.AddRelease(args[0], args[1], uint(year))
		},
	})

	var artist string
	list := &cobra.Command{
		Use:   "list",
		Short: "List releases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handler.ListReleases(artist)
		},
	}
	list.Flags().StringVar(&artist, "artist", "", "List releases for this artist")
	cmd.AddCommand(list)

	return cmd
}

package commands

import "github.com/spf13/cobra"

func newArtistCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artist",
		Short: "Commands for managing artists",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Register a new artist",
		Long:  "Register a new artist. The name must be unique.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handler.AddArtist(args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all artists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handler.ListArtists()
		},
	})

	return cmd
}

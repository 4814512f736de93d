package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"music-log/internal/parser"
)

// dateFlag parses --date as it is set, so a bad date fails flag parsing
type dateFlag struct {
	date *parser.DateInput
}

func (f *dateFlag) String() string {
	if f.date == nil {
		return ""
	}
	return f.date.String()
}

func (f *dateFlag) Set(s string) error {
	d, err := parser.ParseDate(s)
	if err != nil {
		return err
	}
	f.date = &d
	return nil
}

func (f *dateFlag) Type() string {
	return "YYYY-M-D"
}

func newLogCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Commands for managing logs",
	}

	var date dateFlag
	add := &cobra.Command{
		Use:   "add <release>",
		Short: "Log a listen of a release",
		Long: `Log a listen of a release, now or on the day given with --date.

If several releases share the name, you are asked to pick one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handler.AddLog(args[0], date.date)
		},
	}
	add.Flags().Var(&date, "date", "When the log is for, e.g. 2025-01-12 (default now)")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handler.ListLog()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a log",
		Long:  "Delete a log by id. The log is shown and has to be confirmed first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid log id %q", args[0])
			}
			return a.handler.DeleteLog(id)
		},
	})

	var csvFile string
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import listens from a CSV file",
		Long: `Import a listening history from a CSV file with the columns date, artist, release, year.

The header row is optional. Dates may be RFC 3339 timestamps, YYYY-MM-DD or UNIX
timestamps. Artists and releases that are not registered yet are added; releases
are matched by name and artist. Nothing is imported if any row is invalid.

Example:
  mlog log import --file listens.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handler.ImportLogs(csvFile)
		},
	}
	importCmd.Flags().StringVarP(&csvFile, "file", "f", "", "Path to CSV file (required)")
	importCmd.MarkFlagRequired("file")
	cmd.AddCommand(importCmd)

	return cmd
}

package commands

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"music-log/internal/config"
	"music-log/internal/database"
	"music-log/internal/logging"
)

// app carries the resources of a single invocation
// Everything is opened in PersistentPreRunE and released by close
type app struct {
	dbPath  string
	verbose bool

	db        database.DB
	logCloser io.Closer
	handler   *Handler
}

// Execute builds the command tree, runs it against os.Args and releases
// the database afterwards, whether or not the command failed
func Execute() error {
	root, a := newRootCommand()
	err := root.Execute()
	return errors.Join(err, a.close())
}

func newRootCommand() (*cobra.Command, *app) {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Track the music you listen to",
		Long: `mlog keeps a personal record of artists, their releases and every time
you listened to one of them, in a local SQLite database.

Register an artist, add their releases, then log listens:
  mlog artist add "Boards of Canada"
  mlog release add "Boards of Canada" "Geogaddi" 2002
  mlog log add "Geogaddi"
  mlog log list

The database lives in ~/.config/mlog/mlog.db unless MLOG_DB_PATH or --db says otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return a.open(cmd)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&a.dbPath, "db", "d", "", config.DatabaseFileDescription)
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newArtistCommand(a))
	rootCmd.AddCommand(newReleaseCommand(a))
	rootCmd.AddCommand(newLogCommand(a))
	rootCmd.AddCommand(newQueryCommand(a))

	return rootCmd, a
}

// open resolves configuration, sets up logging and opens the database
func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load(a.dbPath)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg, cmd.ErrOrStderr(), a.verbose)
	if err != nil {
		return err
	}
	a.logCloser = closer

	logger.Debug("opening database", "path", cfg.DBPath)
	db, err := database.Initialize(cfg.DBPath)
	if err != nil {
		return err
	}
	a.db = db

	a.handler = NewHandler(db, NewConsolePrompter(cmd.InOrStdin(), cmd.ErrOrStderr()), cmd.OutOrStdout())
	a.handler.logger = logger
	return nil
}

// close releases whatever open managed to acquire
func (a *app) close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
		a.db = nil
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
		a.logCloser = nil
	}
	return errors.Join(errs...)
}

// Package cli implements worktimectl, the operator tool that exports,
// imports and migrates a worktime database without running the server.
package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/worktime/internal/common"
	"github.com/dmitrijs2005/worktime/internal/logging"
	"github.com/dmitrijs2005/worktime/internal/server/storage"
	"github.com/spf13/cobra"
)

type options struct {
	dsn      string
	logLevel string
}

// NewRootCommand builds the worktimectl command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "worktimectl",
		Short: "Maintenance tool for the worktime database",
		Long: `worktimectl works directly on the database the worktime server uses.
It can export a full snapshot, replace the data from a snapshot, and apply
schema migrations.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.dsn, "db", envDSN(), "database DSN (SQLite path or postgres:// URL)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level")

	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newImportCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))

	return cmd
}

// Execute runs the root command with the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func envDSN() string {
	for _, key := range []string{"WORKTIME_DATABASE_DSN", "DB_PATH"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return common.DefaultDatabaseDSN
}

// openStorage opens the database with logs going to the command's stderr.
func (o *options) openStorage(cmd *cobra.Command) (*storage.Storage, logging.Logger, error) {
	logger, _, err := logging.New(logging.Options{Level: o.logLevel, Stdout: cmd.ErrOrStderr()})
	if err != nil {
		return nil, nil, err
	}

	st, err := storage.Open(cmd.Context(), o.dsn, logger)
	if err != nil {
		return nil, nil, err
	}
	return st, logger, nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/worktime/internal/models"
	"github.com/dmitrijs2005/worktime/internal/server/services"
	"github.com/spf13/cobra"
)

func newExportCommand(opts *options) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all entries and settings as JSON",
		Example: `  # Print the snapshot
  worktimectl export

  # Back up a specific database
  worktimectl --db /srv/worktime.db export --out backup.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, logger, err := opts.openStorage(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			snap, err := services.NewTransferService(st.DB, st.Repos, logger).Export(cmd.Context())
			if err != nil {
				return err
			}

			if outFile == "" {
				return writeSnapshot(cmd.OutOrStdout(), snap)
			}

			if err := writeSnapshotFile(outFile, snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d entries and %d settings to %s\n",
				len(snap.Entries), len(snap.Settings), outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	return cmd
}

func writeSnapshot(w io.Writer, snap *models.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// writeSnapshotFile fails when the file cannot be flushed on close, so a
// truncated backup is never reported as written.
func writeSnapshotFile(path string, snap *models.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := writeSnapshot(f, snap); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

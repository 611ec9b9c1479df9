package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/worktime/internal/models"
	"github.com/dmitrijs2005/worktime/internal/server/services"
	"github.com/spf13/cobra"
)

// snapshotFile is what export writes. Extra fields of exported entries (id,
// created_at) are ignored; settings keep their raw JSON.
type snapshotFile struct {
	Entries  []models.EntryInput        `json:"entries"`
	Settings map[string]json.RawMessage `json:"settings"`
}

func newImportCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace all entries (and merge settings) from a snapshot file",
		Long: `import deletes every entry and inserts the entries of FILE in one
transaction. Settings present in FILE are merged into the stored ones. If
anything fails, the database is left exactly as it was.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var snap snapshotFile
			if err := json.Unmarshal(data, &snap); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			req := models.ImportRequest{Entries: snap.Entries}
			if snap.Settings != nil {
				req.Settings = make(map[string]any, len(snap.Settings))
				for k, v := range snap.Settings {
					req.Settings[k] = v
				}
			}

			st, logger, err := opts.openStorage(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			list, err := services.NewTransferService(st.DB, st.Repos, logger).Import(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries\n", len(list))
			return nil
		},
	}
}

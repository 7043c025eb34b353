package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/horae/internal/artifact"
	"github.com/alexanderramin/horae/internal/wbs"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a work breakdown structure into the schedule",
		Long: "Fetches the configured WBS artifact (or reads a local file with --file),\n" +
			"converts its leaf rows into schedule items grouped by top-level section,\n" +
			"and merges them into the current schedule.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var data []byte
			switch {
			case file != "":
				var err error
				data, err = os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("reading %s: %w", file, err)
				}
			default:
				stored, err := app.Store.Get(ctx, app.Config.WBSKey)
				if errors.Is(err, artifact.ErrNotFound) {
					return fmt.Errorf("no WBS artifact under key %q", app.Config.WBSKey)
				}
				if err != nil {
					return fmt.Errorf("fetching WBS: %w", err)
				}
				data = stored.Data
			}

			ctrl, err := app.loadController(ctx)
			if err != nil {
				return err
			}

			stats, err := ctrl.ImportWBS(data)
			if errors.Is(err, wbs.ErrNotWBS) {
				return fmt.Errorf("the payload is not a work breakdown structure")
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"Imported %d items (%d phases added, %d reused, %d items renamed)\n",
				stats.ItemsAdded, stats.PhasesAdded, stats.PhasesReused, stats.ItemsRenamed)
			if !ctrl.Dirty() {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import.")
				return nil
			}
			return saveAndReport(app, ctrl, cmd)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Read the WBS from a local file instead of the store")

	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/horae/internal/cli/formatter"
	"github.com/alexanderramin/horae/internal/layout"
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	var weeks, startWeek int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the schedule as a gantt chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !layout.ValidPageSize(weeks) {
				return fmt.Errorf("unsupported page size %d weeks (valid: %v)", weeks, layout.PageSizes)
			}

			ctrl, err := app.loadController(context.Background())
			if err != nil {
				return err
			}

			out := formatter.FormatGantt(formatter.GanttData{
				Doc:     ctrl.Document(),
				Anchor:  ctrl.Anchor(),
				Window:  layout.PageWindow(startWeek, weeks),
				Metrics: layout.DefaultMetrics(),
				Today:   app.now(),
			})
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&weeks, "weeks", 4, "Page width in weeks (1, 4, 12, 36 or 52)")
	cmd.Flags().IntVar(&startWeek, "week", 0, "First visible week, counted from the anchor Monday")

	return cmd
}

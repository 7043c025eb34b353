package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/horae/internal/cli/formatter"
	"github.com/alexanderramin/horae/internal/docjson"
	"github.com/alexanderramin/horae/internal/layout"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var weeks, startWeek int

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export the schedule to a file",
		Long: "Exports the schedule document. The format follows the file extension:\n" +
			".json writes the canonical document, .svg renders the current page\n" +
			"as a gantt chart with dependency connectors.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := app.loadController(context.Background())
			if err != nil {
				return err
			}

			path := args[0]
			var data []byte
			switch {
			case strings.HasSuffix(path, ".svg"):
				if !layout.ValidPageSize(weeks) {
					return fmt.Errorf("unsupported page size %d weeks (valid: %v)", weeks, layout.PageSizes)
				}
				window := layout.PageWindow(startWeek, weeks)
				data = []byte(formatter.FormatSVG(ctrl.Document(), ctrl.Anchor(), window, app.now()))
			case strings.HasSuffix(path, ".json"):
				data, err = docjson.Encode(ctrl.Document())
				if err != nil {
					return fmt.Errorf("serializing schedule: %w", err)
				}
			default:
				return fmt.Errorf("unsupported export format %q (want .json or .svg)", path)
			}

			// Atomic write so a crash never leaves a half-written export.
			if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d bytes)\n", path, len(data))
			return nil
		},
	}

	cmd.Flags().IntVar(&weeks, "weeks", 12, "SVG page width in weeks (1, 4, 12, 36 or 52)")
	cmd.Flags().IntVar(&startWeek, "week", 0, "First visible week for SVG export")

	return cmd
}

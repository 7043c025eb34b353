package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	var readOnly bool

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the schedule interactively",
		Long: "Opens a full-screen gantt editor. Bars are dragged with the mouse to\n" +
			"reschedule items; dragging the right edge resizes. Changes stay local\n" +
			"until saved.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("edit requires an interactive terminal")
			}

			ctrl, err := app.loadController(context.Background())
			if err != nil {
				return err
			}

			model := newGanttModel(app, ctrl)
			model.readOnly = readOnly

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running editor: %w", err)
			}

			if ctrl.Dirty() {
				fmt.Fprintln(cmd.OutOrStdout(), "Unsaved changes were discarded.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Browse without editing")

	return cmd
}

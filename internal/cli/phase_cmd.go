package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/horae/internal/cli/formatter"
	"github.com/alexanderramin/horae/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage schedule phases",
	}

	cmd.AddCommand(
		newPhaseAddCmd(app),
		newPhaseListCmd(app),
		newPhaseRemoveCmd(app),
	)

	return cmd
}

func newPhaseAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := app.loadController(context.Background())
			if err != nil {
				return err
			}
			if ctrl.Document().PhaseByName(args[0]) != nil {
				return fmt.Errorf("phase %q already exists", args[0])
			}
			ctrl.Mutate(func(doc *domain.ScheduleDocument) bool {
				doc.AddPhase(&domain.Phase{ID: uuid.New().String(), Name: args[0]})
				return true
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Added phase %q\n", args[0])
			return saveAndReport(app, ctrl, cmd)
		},
	}
}

func newPhaseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List phases",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := app.loadController(context.Background())
			if err != nil {
				return err
			}
			doc := ctrl.Document()
			if len(doc.Phases) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No phases.")
				return nil
			}
			for _, p := range doc.Phases {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-30s %s\n",
					shortPhaseID(p.ID), p.Name,
					formatter.Dim(fmt.Sprintf("%d items", len(doc.ItemsByPhase(p.ID)))))
			}
			return nil
		},
	}
}

func newPhaseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm PHASE",
		Short: "Delete a phase and all of its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := app.loadController(context.Background())
			if err != nil {
				return err
			}
			phase, err := resolvePhase(ctrl.Document(), args[0])
			if err != nil {
				return err
			}
			removed := len(ctrl.Document().ItemsByPhase(phase.ID))
			ctrl.Mutate(func(doc *domain.ScheduleDocument) bool {
				return doc.DeletePhase(phase.ID)
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted phase %q and %d items\n", phase.Name, removed)
			return saveAndReport(app, ctrl, cmd)
		},
	}
}

func shortPhaseID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/horae/internal/cli/formatter"
	"github.com/alexanderramin/horae/internal/domain"
	"github.com/alexanderramin/horae/internal/editor"
	"github.com/alexanderramin/horae/internal/timegrid"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// resolveItemID matches input against item ids (exact, then prefix) and
// item names (exact, case-insensitive).
func resolveItemID(doc *domain.ScheduleDocument, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("item ID is required")
	}
	for _, item := range doc.Items {
		if item.ID == input {
			return item.ID, nil
		}
	}
	for _, item := range doc.Items {
		if strings.EqualFold(item.Name, input) {
			return item.ID, nil
		}
	}

	var matches []string
	for _, item := range doc.Items {
		if strings.HasPrefix(item.ID, input) {
			matches = append(matches, item.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("item not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("item ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolvePhase matches input against phase ids then names.
func resolvePhase(doc *domain.ScheduleDocument, input string) (*domain.Phase, error) {
	if p := doc.PhaseByID(input); p != nil {
		return p, nil
	}
	if p := doc.PhaseByName(input); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("phase not found: %q", input)
}

func saveAndReport(app *App, ctrl *editor.Controller, cmd *cobra.Command) error {
	if err := ctrl.Save(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Saved."))
	return nil
}

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage schedule items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemListCmd(app),
		newItemSetCmd(app),
		newItemRemoveCmd(app),
		newItemDepCmd(app),
	)

	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var name, phaseStr, kindStr, start, end, statusStr, notes string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to the schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := app.loadController(context.Background())
			if err != nil {
				return err
			}
			doc := ctrl.Document()

			// Flag-less interactive mode runs the add form.
			if name == "" && app.interactive() {
				if err := runItemForm(doc, &name, &phaseStr, &kindStr, &start, &end, &statusStr); err != nil {
					return err
				}
			}
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			phase, err := resolvePhase(doc, phaseStr)
			if err != nil {
				return err
			}

			kind := domain.ItemKind(kindStr)
			if !domain.ValidItemKinds[kind] {
				return fmt.Errorf("invalid kind %q", kindStr)
			}
			status := domain.ItemStatus(statusStr)
			if !domain.ValidItemStatuses[status] {
				return fmt.Errorf("invalid status %q", statusStr)
			}

			startDate, ok := timegrid.ParseDate(start)
			if !ok {
				return fmt.Errorf("invalid start date %q (want YYYY-MM-DD)", start)
			}

			item := &domain.Item{
				ID:      uuid.New().String(),
				PhaseID: phase.ID,
				Kind:    kind,
				Name:    name,
				Start:   startDate,
				Status:  status,
				Notes:   notes,
			}
			if end != "" {
				endDate, ok := timegrid.ParseDate(end)
				if !ok {
					return fmt.Errorf("invalid end date %q (want YYYY-MM-DD)", end)
				}
				item.End = &endDate
			}

			ctrl.Mutate(func(doc *domain.ScheduleDocument) bool {
				doc.AddItem(item)
				return true
			})

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q to %s\n", kind, name, phase.Name)
			return saveAndReport(app, ctrl, cmd)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&phaseStr, "phase", "", "Phase name or ID")
	cmd.Flags().StringVar(&kindStr, "kind", string(domain.KindTask), "Item kind (milestone, task, deliverable)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD, ignored for milestones)")
	cmd.Flags().StringVar(&statusStr, "status", string(domain.StatusOnTrack), "Status (on_track, at_risk, delayed, done)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all items by phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := app.loadController(context.Background())
			if err != nil {
				return err
			}
			if len(ctrl.Document().Items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No items.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatItemTable(ctrl.Document()))
			return nil
		},
	}
}

func newItemSetCmd(app *App) *cobra.Command {
	var name, phaseStr, kindStr, start, end, statusStr, notes string

	cmd := &cobra.Command{
		Use:   "set ID",
		Short: "Update fields of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := app.loadController(context.Background())
			if err != nil {
				return err
			}
			doc := ctrl.Document()

			id, err := resolveItemID(doc, args[0])
			if err != nil {
				return err
			}

			var patch domain.ItemPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}
			if cmd.Flags().Changed("phase") {
				phase, err := resolvePhase(doc, phaseStr)
				if err != nil {
					return err
				}
				patch.PhaseID = &phase.ID
			}
			if cmd.Flags().Changed("kind") {
				kind := domain.ItemKind(kindStr)
				if !domain.ValidItemKinds[kind] {
					return fmt.Errorf("invalid kind %q", kindStr)
				}
				patch.Kind = &kind
			}
			if cmd.Flags().Changed("status") {
				status := domain.ItemStatus(statusStr)
				if !domain.ValidItemStatuses[status] {
					return fmt.Errorf("invalid status %q", statusStr)
				}
				patch.Status = &status
			}
			if cmd.Flags().Changed("start") {
				startDate, ok := timegrid.ParseDate(start)
				if !ok {
					return fmt.Errorf("invalid start date %q (want YYYY-MM-DD)", start)
				}
				patch.Start = &startDate
			}
			if cmd.Flags().Changed("end") {
				endDate, ok := timegrid.ParseDate(end)
				if !ok {
					return fmt.Errorf("invalid end date %q (want YYYY-MM-DD)", end)
				}
				patch.End = &endDate
			}

			changed := ctrl.Mutate(func(doc *domain.ScheduleDocument) bool {
				return doc.ItemByID(id).ApplyPatch(patch)
			})
			if !changed {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
				return nil
			}
			return saveAndReport(app, ctrl, cmd)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&phaseStr, "phase", "", "Phase name or ID")
	cmd.Flags().StringVar(&kindStr, "kind", "", "Item kind")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&statusStr, "status", "", "Status")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := app.loadController(context.Background())
			if err != nil {
				return err
			}
			id, err := resolveItemID(ctrl.Document(), args[0])
			if err != nil {
				return err
			}
			ctrl.Mutate(func(doc *domain.ScheduleDocument) bool {
				return doc.DeleteItem(id)
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted item %s\n", id)
			return saveAndReport(app, ctrl, cmd)
		},
	}
}

func newItemDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage item dependencies",
	}

	add := &cobra.Command{
		Use:   "add ITEM PREDECESSOR",
		Short: "Add a finish-to-start dependency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDep(app, cmd, args, true)
		},
	}
	rm := &cobra.Command{
		Use:   "rm ITEM PREDECESSOR",
		Short: "Remove a dependency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDep(app, cmd, args, false)
		},
	}

	cmd.AddCommand(add, rm)
	return cmd
}

func editDep(app *App, cmd *cobra.Command, args []string, add bool) error {
	ctrl, err := app.loadController(context.Background())
	if err != nil {
		return err
	}
	doc := ctrl.Document()

	itemID, err := resolveItemID(doc, args[0])
	if err != nil {
		return err
	}
	predID, err := resolveItemID(doc, args[1])
	if err != nil {
		return err
	}
	if itemID == predID {
		return fmt.Errorf("an item cannot depend on itself")
	}

	changed := ctrl.Mutate(func(doc *domain.ScheduleDocument) bool {
		item := doc.ItemByID(itemID)
		if add {
			return item.AddDependency(predID)
		}
		return item.RemoveDependency(predID)
	})
	if !changed {
		fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
		return nil
	}
	return saveAndReport(app, ctrl, cmd)
}

package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/horae/internal/domain"
	"github.com/alexanderramin/horae/internal/timegrid"
	"github.com/charmbracelet/huh"
)

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateDate(s string) error {
	if _, ok := timegrid.ParseDate(s); !ok {
		return fmt.Errorf("want YYYY-MM-DD")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	return validateDate(s)
}

// dateInput returns a huh.Input for a date field with YYYY-MM-DD validation.
func dateInput(title string, value *string, optional bool) *huh.Input {
	validate := validateDate
	if optional {
		validate = validateOptionalDate
	}
	return huh.NewInput().
		Title(title).
		Placeholder("2025-06-30").
		Value(value).
		Validate(validate)
}

func phaseOptions(doc *domain.ScheduleDocument) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(doc.Phases))
	for _, p := range doc.Phases {
		opts = append(opts, huh.NewOption(p.Name, p.ID))
	}
	return opts
}

// runItemForm collects the fields of a new item interactively.
func runItemForm(doc *domain.ScheduleDocument, name, phase, kind, start, end, status *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(name).Validate(validateRequired),
			huh.NewSelect[string]().Title("Phase").Options(phaseOptions(doc)...).Value(phase),
			huh.NewSelect[string]().Title("Kind").
				Options(
					huh.NewOption("Task", string(domain.KindTask)),
					huh.NewOption("Milestone", string(domain.KindMilestone)),
					huh.NewOption("Deliverable", string(domain.KindDeliverable)),
				).
				Value(kind),
			dateInput("Start (YYYY-MM-DD)", start, false),
			dateInput("End (YYYY-MM-DD, blank for single day)", end, true),
			huh.NewSelect[string]().Title("Status").
				Options(
					huh.NewOption("On track", string(domain.StatusOnTrack)),
					huh.NewOption("At risk", string(domain.StatusAtRisk)),
					huh.NewOption("Delayed", string(domain.StatusDelayed)),
					huh.NewOption("Done", string(domain.StatusDone)),
				).
				Value(status),
		),
	).WithShowHelp(false)

	return form.Run()
}

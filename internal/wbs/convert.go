package wbs

import (
	"strings"
	"time"

	"github.com/alexanderramin/horae/internal/domain"
	"github.com/alexanderramin/horae/internal/timegrid"
	"github.com/google/uuid"
)

// Convert flattens a WBS row list into a standalone schedule document:
// one phase per distinct top-level ancestor label (first-seen order),
// one item per leaf row. The source carries only due dates, so every
// imported item starts at the project start date; an item's end is its
// due date when parseable, clamped to the project finish date when one
// is supplied.
func Convert(rows []Row, projectStart time.Time, projectFinish *time.Time) *domain.ScheduleDocument {
	doc := domain.NewScheduleDocument()
	if len(rows) == 0 {
		return doc
	}

	start := timegrid.Truncate(projectStart)

	// Walk the indent structure with a level-keyed stack; the stack
	// bottom after each push is the row's top-level ancestor.
	type stacked struct {
		row Row
	}
	var stack []stacked
	ancestorOf := make(map[string]Row, len(rows))
	for _, row := range rows {
		for len(stack) > 0 && stack[len(stack)-1].row.Level >= row.Level {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, stacked{row: row})
		ancestorOf[row.ID] = stack[0].row
	}

	// One phase per distinct ancestor label, preserving first-seen order.
	phaseByLabel := make(map[string]*domain.Phase)
	for _, row := range rows {
		label := strings.TrimSpace(ancestorOf[row.ID].Title)
		if _, ok := phaseByLabel[label]; ok {
			continue
		}
		phase := &domain.Phase{ID: uuid.New().String(), Name: label}
		phaseByLabel[label] = phase
		doc.AddPhase(phase)
	}

	leaf := make(map[string]bool, len(rows))
	for i, row := range rows {
		// A row is a leaf when its subtree is empty: the next row, if
		// any, sits at its level or shallower.
		leaf[row.ID] = i+1 >= len(rows) || rows[i+1].Level <= row.Level
	}

	for _, row := range rows {
		if !leaf[row.ID] {
			continue // structural rows are phases only
		}
		phase := phaseByLabel[strings.TrimSpace(ancestorOf[row.ID].Title)]

		end := start
		if due, ok := timegrid.ParseDate(row.DueDate); ok {
			end = due
		}
		if projectFinish != nil && end.After(*projectFinish) {
			end = timegrid.Truncate(*projectFinish)
		}
		endCopy := end

		item := &domain.Item{
			ID:      row.ID,
			PhaseID: phase.ID,
			Kind:    domain.KindTask,
			Name:    row.Title,
			Start:   start,
			End:     &endCopy,
			Status:  mapStatus(row.Status),
			Notes:   joinNotes(row.Description, row.AcceptanceCriteria),
		}
		if row.Predecessor != "" && leaf[row.Predecessor] {
			item.AddDependency(row.Predecessor)
		}
		doc.AddItem(item)
	}

	// A source with content must never import as nothing: without any
	// leaf rows, emit one milestone per phase instead.
	if len(doc.Items) == 0 {
		for _, phase := range doc.Phases {
			doc.AddItem(&domain.Item{
				ID:      uuid.New().String(),
				PhaseID: phase.ID,
				Kind:    domain.KindMilestone,
				Name:    phase.Name,
				Start:   start,
				Status:  domain.StatusOnTrack,
			})
		}
	}

	return doc
}

func mapStatus(s string) domain.ItemStatus {
	switch s {
	case "done":
		return domain.StatusDone
	case "blocked":
		return domain.StatusAtRisk
	case "in_progress":
		return domain.StatusOnTrack
	default:
		return domain.StatusOnTrack
	}
}

func joinNotes(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, "\n\n")
}

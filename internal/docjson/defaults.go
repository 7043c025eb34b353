package docjson

import (
	"time"

	"github.com/alexanderramin/horae/internal/domain"
	"github.com/alexanderramin/horae/internal/timegrid"
	"github.com/google/uuid"
)

// DefaultDocument seeds a fresh schedule: two phases with two sample
// items placed inside the current week so a new document is never an
// empty screen.
func DefaultDocument(now time.Time) *domain.ScheduleDocument {
	anchor := timegrid.StartOfWeek(now)

	doc := domain.NewScheduleDocument()
	doc.AnchorDate = &anchor

	planning := &domain.Phase{ID: uuid.New().String(), Name: "Planning"}
	execution := &domain.Phase{ID: uuid.New().String(), Name: "Execution"}
	doc.AddPhase(planning)
	doc.AddPhase(execution)

	scopeEnd := anchor.AddDate(0, 0, 4)
	doc.AddItem(&domain.Item{
		ID:      uuid.New().String(),
		PhaseID: planning.ID,
		Kind:    domain.KindTask,
		Name:    "Define scope",
		Start:   anchor,
		End:     &scopeEnd,
		Status:  domain.StatusOnTrack,
	})
	doc.AddItem(&domain.Item{
		ID:      uuid.New().String(),
		PhaseID: execution.ID,
		Kind:    domain.KindMilestone,
		Name:    "Kickoff",
		Start:   anchor.AddDate(0, 0, 7),
		Status:  domain.StatusOnTrack,
	})

	return doc
}

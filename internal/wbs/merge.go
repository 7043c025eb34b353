package wbs

import (
	"github.com/alexanderramin/horae/internal/domain"
	"github.com/google/uuid"
)

// MergeStats summarizes a merge for user feedback.
type MergeStats struct {
	PhasesAdded  int
	PhasesReused int
	ItemsAdded   int
	ItemsRenamed int
}

// Merge folds an imported document into dst. Phases are matched by
// case-insensitive trimmed name and reused when found. Item ids are
// kept unless they collide with an existing item, in which case a fresh
// id is generated; all dependency references inside the import are
// remapped through the same translation table, so dependency integrity
// survives renaming.
func Merge(dst, src *domain.ScheduleDocument) MergeStats {
	var stats MergeStats

	phaseIDs := make(map[string]string, len(src.Phases))
	for _, p := range src.Phases {
		if existing := dst.PhaseByName(p.Name); existing != nil {
			phaseIDs[p.ID] = existing.ID
			stats.PhasesReused++
			continue
		}
		id := p.ID
		if dst.PhaseByID(id) != nil {
			id = uuid.New().String()
		}
		dst.AddPhase(&domain.Phase{ID: id, Name: p.Name})
		phaseIDs[p.ID] = id
		stats.PhasesAdded++
	}

	itemIDs := make(map[string]string, len(src.Items))
	for _, i := range src.Items {
		id := i.ID
		if dst.ItemByID(id) != nil {
			id = uuid.New().String()
			stats.ItemsRenamed++
		}
		itemIDs[i.ID] = id
	}

	for _, i := range src.Items {
		item := i.Clone()
		item.ID = itemIDs[i.ID]
		if mapped, ok := phaseIDs[i.PhaseID]; ok {
			item.PhaseID = mapped
		}
		deps := item.Dependencies[:0]
		for _, dep := range item.Dependencies {
			if mapped, ok := itemIDs[dep]; ok {
				dep = mapped
			}
			deps = append(deps, dep)
		}
		item.Dependencies = deps
		dst.AddItem(item)
		stats.ItemsAdded++
	}

	return stats
}

package domain

import (
	"strings"
	"time"
)

func normalizePhaseName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Phase is a named grouping of items. Phase order in the document is
// display order.
type Phase struct {
	ID   string
	Name string
}

// ScheduleDocument is the normalized in-memory schedule: an ordered list
// of phases and the items that belong to them, linked by finish-to-start
// dependencies. The document is exclusively owned by one editing session;
// all derived state (lanes, geometry, connector paths) is computed from
// it on demand and never stored back.
type ScheduleDocument struct {
	// AnchorDate defines day index zero as the Monday of its week.
	// Nil means unset; callers fall back to the project start date.
	AnchorDate *time.Time

	Phases []*Phase
	Items  []*Item
}

// NewScheduleDocument returns an empty document.
func NewScheduleDocument() *ScheduleDocument {
	return &ScheduleDocument{}
}

// PhaseByID returns the phase with the given id, or nil.
func (d *ScheduleDocument) PhaseByID(id string) *Phase {
	for _, p := range d.Phases {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PhaseByName returns the first phase whose name matches case-insensitively
// after trimming whitespace, or nil.
func (d *ScheduleDocument) PhaseByName(name string) *Phase {
	want := normalizePhaseName(name)
	for _, p := range d.Phases {
		if normalizePhaseName(p.Name) == want {
			return p
		}
	}
	return nil
}

// ItemByID returns the item with the given id, or nil.
func (d *ScheduleDocument) ItemByID(id string) *Item {
	for _, i := range d.Items {
		if i.ID == id {
			return i
		}
	}
	return nil
}

// ItemsByPhase returns the items belonging to the given phase, in
// document order. Document order carries no meaning; display order is
// derived by the layout sort.
func (d *ScheduleDocument) ItemsByPhase(phaseID string) []*Item {
	var items []*Item
	for _, i := range d.Items {
		if i.PhaseID == phaseID {
			items = append(items, i)
		}
	}
	return items
}

// AddPhase appends a phase. The caller supplies the id.
func (d *ScheduleDocument) AddPhase(p *Phase) {
	d.Phases = append(d.Phases, p)
}

// AddItem appends an item after restoring its invariants.
func (d *ScheduleDocument) AddItem(i *Item) {
	i.Normalize()
	d.Items = append(d.Items, i)
}

// DeleteItem removes the item and strips its id from every other item's
// dependency list. Deleting an unknown id is a no-op.
func (d *ScheduleDocument) DeleteItem(id string) bool {
	idx := -1
	for n, i := range d.Items {
		if i.ID == id {
			idx = n
			break
		}
	}
	if idx < 0 {
		return false
	}
	d.Items = append(d.Items[:idx], d.Items[idx+1:]...)
	for _, i := range d.Items {
		i.RemoveDependency(id)
	}
	return true
}

// DeletePhase removes the phase and cascades: every item in the phase is
// deleted, and the deleted item ids are stripped from the remaining
// items' dependency lists.
func (d *ScheduleDocument) DeletePhase(id string) bool {
	idx := -1
	for n, p := range d.Phases {
		if p.ID == id {
			idx = n
			break
		}
	}
	if idx < 0 {
		return false
	}
	d.Phases = append(d.Phases[:idx], d.Phases[idx+1:]...)

	removed := make(map[string]bool)
	kept := d.Items[:0]
	for _, i := range d.Items {
		if i.PhaseID == id {
			removed[i.ID] = true
			continue
		}
		kept = append(kept, i)
	}
	d.Items = kept

	for _, i := range d.Items {
		for dep := range removed {
			i.RemoveDependency(dep)
		}
	}
	return true
}

// LiveDependencies returns the item's predecessor ids filtered to ids
// that still resolve to a live item. Persisted documents may carry
// dangling ids after deletions; readers prune them lazily.
func (d *ScheduleDocument) LiveDependencies(i *Item) []string {
	var deps []string
	for _, dep := range i.Dependencies {
		if dep == i.ID {
			continue
		}
		if d.ItemByID(dep) != nil {
			deps = append(deps, dep)
		}
	}
	return deps
}

// Clone returns a deep copy of the document.
func (d *ScheduleDocument) Clone() *ScheduleDocument {
	c := &ScheduleDocument{}
	if d.AnchorDate != nil {
		anchor := *d.AnchorDate
		c.AnchorDate = &anchor
	}
	c.Phases = make([]*Phase, len(d.Phases))
	for n, p := range d.Phases {
		phase := *p
		c.Phases[n] = &phase
	}
	c.Items = make([]*Item, len(d.Items))
	for n, i := range d.Items {
		c.Items[n] = i.Clone()
	}
	return c
}

package domain

import "time"

// Item is a single schedule entry: a milestone, task, or deliverable.
// Start and End are calendar dates (UTC midnight). A milestone has no End;
// it is a zero-duration point at Start. Start may be the zero time when a
// persisted date failed to parse; layout treats such items as unplaced
// rather than failing.
type Item struct {
	ID           string
	PhaseID      string
	Kind         ItemKind
	Name         string
	Start        time.Time
	End          *time.Time
	Status       ItemStatus
	Notes        string
	Dependencies []string
}

// Normalize enforces the item invariants after any mutation:
//   - milestones never carry an End date
//   - non-milestones always carry an End date, defaulted to Start and
//     clamped so End >= Start
//   - the dependency list never contains the item's own id or duplicates
func (i *Item) Normalize() {
	if i.Kind == KindMilestone {
		i.End = nil
	} else {
		if i.End == nil {
			end := i.Start
			i.End = &end
		}
		if i.End.Before(i.Start) {
			end := i.Start
			i.End = &end
		}
	}

	seen := make(map[string]bool, len(i.Dependencies))
	deps := i.Dependencies[:0]
	for _, dep := range i.Dependencies {
		if dep == "" || dep == i.ID || seen[dep] {
			continue
		}
		seen[dep] = true
		deps = append(deps, dep)
	}
	i.Dependencies = deps
}

// EffectiveEnd returns the item's end date for interval purposes.
// Milestones end on their start date.
func (i *Item) EffectiveEnd() time.Time {
	if i.Kind == KindMilestone || i.End == nil {
		return i.Start
	}
	return *i.End
}

// AddDependency records a finish-to-start predecessor. Self-references
// and duplicates are silently dropped. Reports whether the list changed.
func (i *Item) AddDependency(id string) bool {
	if id == "" || id == i.ID {
		return false
	}
	for _, dep := range i.Dependencies {
		if dep == id {
			return false
		}
	}
	i.Dependencies = append(i.Dependencies, id)
	return true
}

// RemoveDependency drops a predecessor reference if present. Reports
// whether the list changed.
func (i *Item) RemoveDependency(id string) bool {
	deps := i.Dependencies[:0]
	for _, dep := range i.Dependencies {
		if dep != id {
			deps = append(deps, dep)
		}
	}
	changed := len(deps) != len(i.Dependencies)
	i.Dependencies = deps
	return changed
}

// DependsOn reports whether id is a recorded predecessor of the item.
func (i *Item) DependsOn(id string) bool {
	for _, dep := range i.Dependencies {
		if dep == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the item.
func (i *Item) Clone() *Item {
	c := *i
	if i.End != nil {
		end := *i.End
		c.End = &end
	}
	c.Dependencies = append([]string(nil), i.Dependencies...)
	return &c
}

// ItemPatch is a partial update to an item. Nil fields are left unchanged.
// ApplyPatch re-runs Normalize, so patches cannot break the invariants
// (setting End on a milestone is discarded, End < Start snaps to Start).
type ItemPatch struct {
	PhaseID      *string
	Kind         *ItemKind
	Name         *string
	Start        *time.Time
	End          *time.Time
	Status       *ItemStatus
	Notes        *string
	Dependencies *[]string
}

// ApplyPatch applies the non-nil fields of p to the item and restores
// the item invariants. It reports whether anything changed.
func (i *Item) ApplyPatch(p ItemPatch) bool {
	before := i.Clone()

	if p.PhaseID != nil {
		i.PhaseID = *p.PhaseID
	}
	if p.Kind != nil {
		i.Kind = *p.Kind
	}
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Start != nil {
		i.Start = *p.Start
	}
	if p.End != nil {
		end := *p.End
		i.End = &end
	}
	if p.Status != nil {
		i.Status = *p.Status
	}
	if p.Notes != nil {
		i.Notes = *p.Notes
	}
	if p.Dependencies != nil {
		i.Dependencies = append([]string(nil), (*p.Dependencies)...)
	}

	i.Normalize()
	return !i.Equal(before)
}

// Equal reports whether two items have identical field values.
func (i *Item) Equal(o *Item) bool {
	if i.ID != o.ID || i.PhaseID != o.PhaseID || i.Kind != o.Kind ||
		i.Name != o.Name || i.Status != o.Status || i.Notes != o.Notes {
		return false
	}
	if !i.Start.Equal(o.Start) {
		return false
	}
	if (i.End == nil) != (o.End == nil) {
		return false
	}
	if i.End != nil && !i.End.Equal(*o.End) {
		return false
	}
	if len(i.Dependencies) != len(o.Dependencies) {
		return false
	}
	for n, dep := range i.Dependencies {
		if dep != o.Dependencies[n] {
			return false
		}
	}
	return true
}

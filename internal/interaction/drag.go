// Package interaction turns pointer movement into day-granular schedule
// edits. A drag session exists between pointer-down and pointer-up on
// one item; each move event reapplies the cumulative delta to the
// session's fixed origin, so repeated or re-delivered deltas can never
// accumulate drift.
package interaction

import (
	"math"
	"time"

	"github.com/alexanderramin/horae/internal/domain"
	"github.com/alexanderramin/horae/internal/timegrid"
)

type Mode string

const (
	// ModeMove shifts the whole item.
	ModeMove Mode = "move"
	// ModeResizeEnd moves only the end date. Milestones ignore resizes.
	ModeResizeEnd Mode = "resize_end"
)

// Session is the transient state of one in-progress drag, keyed by
// pointer id. Never persisted.
type Session struct {
	Mode           Mode
	ItemID         string
	PointerID      int
	OriginStartDay int
	OriginEndDay   int
	StartX         int
	HasMoved       bool
}

// Tracker owns the active drag sessions, at most one per pointer id.
// Multi-touch is structurally supported: a second pointer starts an
// independent session under its own id.
type Tracker struct {
	sessions map[int]*Session
}

func NewTracker() *Tracker {
	return &Tracker{sessions: make(map[int]*Session)}
}

// Active returns the session for the pointer id, or nil.
func (t *Tracker) Active(pointerID int) *Session {
	return t.sessions[pointerID]
}

// Begin starts a drag session on the item under the pointer. It captures
// the item's original day interval so later deltas are computed from a
// fixed origin. Returns false (no session) when the item does not exist,
// its start date never parsed, or the document is read-only.
func (t *Tracker) Begin(doc *domain.ScheduleDocument, anchor time.Time, mode Mode, itemID string, pointerID, x int, readOnly bool) bool {
	if readOnly {
		return false
	}
	item := doc.ItemByID(itemID)
	if item == nil || item.Start.IsZero() {
		return false
	}
	t.sessions[pointerID] = &Session{
		Mode:           mode,
		ItemID:         itemID,
		PointerID:      pointerID,
		OriginStartDay: timegrid.DayIndex(anchor, item.Start),
		OriginEndDay:   timegrid.DayIndex(anchor, item.EffectiveEnd()),
		StartX:         x,
	}
	return true
}

// Move applies the pointer's cumulative horizontal delta to the dragged
// item and reports whether the document changed. The delta is rounded
// to whole days; values are always derived from the session origin, not
// from the item's live (already-shifted) dates.
//
// A move against a since-deleted item silently ends the session: pointer
// events can race with document mutation and must never crash.
func (t *Tracker) Move(doc *domain.ScheduleDocument, anchor time.Time, pointerID, x, dayWidth int) bool {
	s := t.sessions[pointerID]
	if s == nil || dayWidth <= 0 {
		return false
	}
	item := doc.ItemByID(s.ItemID)
	if item == nil {
		delete(t.sessions, pointerID)
		return false
	}

	delta := int(math.Round(float64(x-s.StartX) / float64(dayWidth)))
	if delta >= 1 || delta <= -1 {
		s.HasMoved = true
	}

	var patch domain.ItemPatch
	switch s.Mode {
	case ModeMove:
		start := timegrid.DateFromDayIndex(anchor, s.OriginStartDay+delta)
		patch.Start = &start
		if item.Kind != domain.KindMilestone {
			end := timegrid.DateFromDayIndex(anchor, s.OriginEndDay+delta)
			patch.End = &end
		}
	case ModeResizeEnd:
		if item.Kind == domain.KindMilestone {
			return false
		}
		endDay := s.OriginEndDay + delta
		if endDay < s.OriginStartDay {
			endDay = s.OriginStartDay
		}
		end := timegrid.DateFromDayIndex(anchor, endDay)
		patch.End = &end
	default:
		return false
	}

	return item.ApplyPatch(patch)
}

// End finishes the session on pointer-up and reports whether the drag
// produced a real move. Callers suppress the click action that follows
// a real drag so a drag never also selects or opens the item.
func (t *Tracker) End(pointerID int) (hasMoved bool) {
	s := t.sessions[pointerID]
	if s == nil {
		return false
	}
	delete(t.sessions, pointerID)
	return s.HasMoved
}

// Cancel discards the session without any undo: the document was
// mutated live and the dirty flag was already set by the first
// mutating move.
func (t *Tracker) Cancel(pointerID int) {
	delete(t.sessions, pointerID)
}

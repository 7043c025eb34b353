package testutil

import (
	"time"

	"github.com/alexanderramin/horae/internal/domain"
)

// Anchor is the Monday all fixture dates are relative to.
var Anchor = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

// Day returns the fixture date n days after the anchor.
func Day(n int) time.Time {
	return Anchor.AddDate(0, 0, n)
}

// DayPtr is Day for optional date fields.
func DayPtr(n int) *time.Time {
	d := Day(n)
	return &d
}

// ItemOption mutates a fixture item before insertion.
type ItemOption func(*domain.Item)

func WithEnd(n int) ItemOption {
	return func(i *domain.Item) { i.End = DayPtr(n) }
}

func WithKind(k domain.ItemKind) ItemOption {
	return func(i *domain.Item) { i.Kind = k }
}

func WithStatus(s domain.ItemStatus) ItemOption {
	return func(i *domain.Item) { i.Status = s }
}

func WithDeps(ids ...string) ItemOption {
	return func(i *domain.Item) { i.Dependencies = ids }
}

// Item builds a fixture task starting at Day(startDay).
func Item(id, phaseID, name string, startDay int, opts ...ItemOption) *domain.Item {
	item := &domain.Item{
		ID:      id,
		PhaseID: phaseID,
		Kind:    domain.KindTask,
		Name:    name,
		Start:   Day(startDay),
		Status:  domain.StatusOnTrack,
	}
	for _, opt := range opts {
		opt(item)
	}
	return item
}

// Document builds a single-phase fixture document with the given items.
func Document(items ...*domain.Item) *domain.ScheduleDocument {
	doc := domain.NewScheduleDocument()
	anchor := Anchor
	doc.AnchorDate = &anchor
	doc.AddPhase(&domain.Phase{ID: "phase-1", Name: "Build"})
	for _, i := range items {
		if i.PhaseID == "" {
			i.PhaseID = "phase-1"
		}
		doc.AddItem(i)
	}
	return doc
}

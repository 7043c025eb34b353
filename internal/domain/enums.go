package domain

type ItemKind string

const (
	KindMilestone   ItemKind = "milestone"
	KindTask        ItemKind = "task"
	KindDeliverable ItemKind = "deliverable"
)

type ItemStatus string

const (
	StatusOnTrack ItemStatus = "on_track"
	StatusAtRisk  ItemStatus = "at_risk"
	StatusDelayed ItemStatus = "delayed"
	StatusDone    ItemStatus = "done"
)

// ValidItemKinds is the canonical set of accepted item kinds.
var ValidItemKinds = map[ItemKind]bool{
	KindMilestone: true, KindTask: true, KindDeliverable: true,
}

// ValidItemStatuses is the canonical set of accepted item statuses.
var ValidItemStatuses = map[ItemStatus]bool{
	StatusOnTrack: true, StatusAtRisk: true, StatusDelayed: true, StatusDone: true,
}

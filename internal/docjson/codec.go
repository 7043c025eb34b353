// Package docjson is the boundary between persisted JSON and the strict
// in-memory document. Decoding coerces every field defensively and falls
// back to a freshly seeded default document for unrecognized shapes;
// unchecked external values never flow into the layout engine.
package docjson

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/alexanderramin/horae/internal/domain"
	"github.com/alexanderramin/horae/internal/timegrid"
	"github.com/google/uuid"
)

// DocVersion is the only persisted shape this codec recognizes. Legacy
// or foreign shapes are discarded, not migrated.
const DocVersion = 1

// DocType tags the artifact content.
const DocType = "schedule"

type fileDocument struct {
	Version    int         `json:"version"`
	Type       string      `json:"type"`
	AnchorDate string      `json:"anchor_date"`
	Phases     []filePhase `json:"phases"`
	Items      []fileItem  `json:"items"`
}

type filePhase struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type fileItem struct {
	ID           string   `json:"id"`
	PhaseID      string   `json:"phaseId"`
	Type         string   `json:"type"`
	Name         string   `json:"name"`
	Start        string   `json:"start"`
	End          string   `json:"end"`
	Status       string   `json:"status"`
	Notes        string   `json:"notes"`
	Dependencies []string `json:"dependencies"`
}

// Decode normalizes arbitrary persisted JSON into a canonical document.
// Anything that is not an exact version-1 schedule yields the seeded
// default document; within a recognized document, every field is
// coerced to its expected type and invalid enum values fall back to
// safe defaults. Decode never fails.
func Decode(data []byte, now time.Time) *domain.ScheduleDocument {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return DefaultDocument(now)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return DefaultDocument(now)
	}
	if asInt(obj["version"]) != DocVersion || asString(obj["type"]) != DocType {
		return DefaultDocument(now)
	}

	doc := domain.NewScheduleDocument()
	if anchor, ok := timegrid.ParseDate(asString(obj["anchor_date"])); ok {
		doc.AnchorDate = &anchor
	}

	for _, v := range asSlice(obj["phases"]) {
		p, ok := v.(map[string]any)
		if !ok {
			continue
		}
		id := asString(p["id"])
		if id == "" {
			id = uuid.New().String()
		}
		doc.AddPhase(&domain.Phase{ID: id, Name: asString(p["name"])})
	}

	for _, v := range asSlice(obj["items"]) {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		id := asString(m["id"])
		if id == "" {
			id = uuid.New().String()
		}

		kind := domain.ItemKind(asString(m["type"]))
		if !domain.ValidItemKinds[kind] {
			kind = domain.KindTask
		}
		status := domain.ItemStatus(asString(m["status"]))
		if !domain.ValidItemStatuses[status] {
			status = domain.StatusOnTrack
		}

		item := &domain.Item{
			ID:      id,
			PhaseID: asString(m["phaseId"]),
			Kind:    kind,
			Name:    asString(m["name"]),
			Status:  status,
			Notes:   asString(m["notes"]),
		}
		// An unparsable start stays the zero time: layout fails open
		// on such items instead of dropping user data.
		if start, ok := timegrid.ParseDate(asString(m["start"])); ok {
			item.Start = start
		}
		if end, ok := timegrid.ParseDate(asString(m["end"])); ok {
			item.End = &end
		}
		for _, d := range asSlice(m["dependencies"]) {
			if dep := asString(d); dep != "" {
				item.Dependencies = append(item.Dependencies, dep)
			}
		}
		doc.AddItem(item)
	}

	return doc
}

// Encode serializes the canonical document: phases and items only, all
// derived state dropped. Field order is fixed by the wire structs, so
// equal documents always produce identical bytes.
func Encode(doc *domain.ScheduleDocument) ([]byte, error) {
	out := fileDocument{
		Version: DocVersion,
		Type:    DocType,
		Phases:  make([]filePhase, 0, len(doc.Phases)),
		Items:   make([]fileItem, 0, len(doc.Items)),
	}
	if doc.AnchorDate != nil {
		out.AnchorDate = timegrid.FormatDate(*doc.AnchorDate)
	}
	for _, p := range doc.Phases {
		out.Phases = append(out.Phases, filePhase{ID: p.ID, Name: p.Name})
	}
	for _, i := range doc.Items {
		fi := fileItem{
			ID:           i.ID,
			PhaseID:      i.PhaseID,
			Type:         string(i.Kind),
			Name:         i.Name,
			Start:        timegrid.FormatDate(i.Start),
			Status:       string(i.Status),
			Notes:        i.Notes,
			Dependencies: append([]string{}, i.Dependencies...),
		}
		if i.End != nil {
			fi.End = timegrid.FormatDate(*i.End)
		}
		out.Items = append(out.Items, fi)
	}
	return json.Marshal(out)
}

// Fingerprint identifies a serialized document for the hydration-race
// check. Compared by equality only.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	// encoding/json decodes all numbers as float64.
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return int(f)
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

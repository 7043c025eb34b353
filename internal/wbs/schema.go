// Package wbs imports an external work-breakdown-structure document
// into schedule phases and items: leaf rows flatten into tasks, top
// level ancestors group into phases, and the result merges into an
// existing schedule without id collisions.
package wbs

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// ErrNotWBS indicates the payload is not a recognizable WBS row document.
var ErrNotWBS = errors.New("not a wbs document")

// Row is one entry of the hierarchical source document. Level is the
// indent depth; Predecessor is at most one row id (the source format
// carries a single finish-to-start link per row).
type Row struct {
	ID                 string
	Level              int
	Title              string
	Status             string
	DueDate            string
	Predecessor        string
	Description        string
	AcceptanceCriteria string
}

// DecodeRows parses a WBS payload, coercing every field defensively.
// The payload must be a JSON object with a "rows" array; each row that
// is an object is kept, with missing ids generated so later merge
// bookkeeping always has a key.
func DecodeRows(data []byte) ([]Row, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrNotWBS
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotWBS
	}
	entries, ok := obj["rows"].([]any)
	if !ok {
		return nil, ErrNotWBS
	}

	var rows []Row
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		row := Row{
			ID:                 asString(m["id"]),
			Level:              asInt(m["level"]),
			Title:              asString(m["title"]),
			Status:             asString(m["status"]),
			DueDate:            asString(m["due_date"]),
			Predecessor:        asString(m["predecessor"]),
			Description:        asString(m["description"]),
			AcceptanceCriteria: asString(m["acceptance_criteria"]),
		}
		if row.ID == "" {
			row.ID = uuid.New().String()
		}
		if row.Level < 0 {
			row.Level = 0
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return int(f)
}

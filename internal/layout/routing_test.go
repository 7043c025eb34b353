package layout

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/horae/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisiblePairs_FiltersInvisibleAndDangling(t *testing.T) {
	doc := domain.NewScheduleDocument()
	doc.AddPhase(&domain.Phase{ID: "p", Name: "P"})
	doc.AddItem(&domain.Item{ID: "a", PhaseID: "p", Kind: domain.KindTask, Name: "A", Start: day(0)})
	doc.AddItem(&domain.Item{ID: "b", PhaseID: "p", Kind: domain.KindTask, Name: "B", Start: day(2), Dependencies: []string{"a", "ghost"}})
	doc.AddItem(&domain.Item{ID: "c", PhaseID: "p", Kind: domain.KindTask, Name: "C", Start: day(4), Dependencies: []string{"b"}})

	visible := map[string]bool{"a": true, "b": true} // c hidden (collapsed phase, offscreen, ...)

	pairs := VisiblePairs(doc, visible)

	assert.Equal(t, []Pair{{PredecessorID: "a", SuccessorID: "b"}}, pairs)
}

func TestVisiblePairs_CapIsSilent(t *testing.T) {
	doc := domain.NewScheduleDocument()
	doc.AddPhase(&domain.Phase{ID: "p", Name: "P"})
	visible := make(map[string]bool)

	// One hub item depended on by far more successors than the cap.
	doc.AddItem(&domain.Item{ID: "hub", PhaseID: "p", Kind: domain.KindTask, Name: "Hub", Start: day(0)})
	visible["hub"] = true
	for i := 0; i < MaxDependencyPairs+100; i++ {
		id := fmt.Sprintf("s%04d", i)
		doc.AddItem(&domain.Item{ID: id, PhaseID: "p", Kind: domain.KindTask, Name: id, Start: day(1), Dependencies: []string{"hub"}})
		visible[id] = true
	}

	pairs := VisiblePairs(doc, visible)

	assert.Len(t, pairs, MaxDependencyPairs, "pairs beyond the cap are dropped, not an error")
}

func TestRoutePaths_AnchorsAndElbow(t *testing.T) {
	boxes := map[string]Box{
		"a": {X: 10, Y: 20, W: 30, H: 8},
		"b": {X: 60, Y: 50, W: 20, H: 8},
	}
	bounds := Rect{X: 0, Y: 0, W: 200, H: 200}

	paths := RoutePaths([]Pair{{PredecessorID: "a", SuccessorID: "b"}}, boxes, bounds, 6)
	require.Len(t, paths, 1)
	p := paths[0]

	assert.Equal(t, 40, p.X1, "predecessor right edge")
	assert.Equal(t, 24, p.Y1, "predecessor vertical center")
	assert.Equal(t, 60, p.X2, "successor left edge")
	assert.Equal(t, 54, p.Y2)
	assert.Equal(t, []Point{{40, 24}, {46, 24}, {46, 54}, {60, 54}}, p.Points)
	assert.Equal(t, 1, p.Arrow, "forward edge points right")
}

func TestRoutePaths_FeedbackEdgePointsLeft(t *testing.T) {
	boxes := map[string]Box{
		"late":  {X: 100, Y: 10, W: 30, H: 8},
		"early": {X: 5, Y: 40, W: 30, H: 8},
	}
	bounds := Rect{X: 0, Y: 0, W: 200, H: 200}

	paths := RoutePaths([]Pair{{PredecessorID: "late", SuccessorID: "early"}}, boxes, bounds, 6)
	require.Len(t, paths, 1)
	assert.Equal(t, -1, paths[0].Arrow, "edge running backward in time points left")
}

func TestRoutePaths_CullsWhenBothAnchorsOffscreen(t *testing.T) {
	boxes := map[string]Box{
		"a": {X: 500, Y: 500, W: 10, H: 8},
		"b": {X: 600, Y: 600, W: 10, H: 8},
	}
	bounds := Rect{X: 0, Y: 0, W: 100, H: 100}

	paths := RoutePaths([]Pair{{PredecessorID: "a", SuccessorID: "b"}}, boxes, bounds, 6)
	assert.Empty(t, paths)
}

func TestRoutePaths_SkipsMissingBoxes(t *testing.T) {
	boxes := map[string]Box{"a": {X: 10, Y: 10, W: 10, H: 8}}
	bounds := Rect{X: 0, Y: 0, W: 100, H: 100}

	paths := RoutePaths([]Pair{{PredecessorID: "a", SuccessorID: "gone"}}, boxes, bounds, 6)
	assert.Empty(t, paths)
}

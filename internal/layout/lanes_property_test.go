package layout

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexanderramin/horae/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAssignLanes_Invariants_NoOverlapAndMinimal property-tests the two
// packing guarantees: items sharing a lane never overlap in time, and
// the lane count equals the maximum number of simultaneously overlapping
// intervals (the classical minimum-rooms bound).
func TestAssignLanes_Invariants_NoOverlapAndMinimal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 300; trial++ {
		numItems := rng.Intn(20) + 1
		doc := domain.NewScheduleDocument()
		doc.AddPhase(&domain.Phase{ID: "p", Name: "P"})

		starts := make(map[string]int, numItems)
		ends := make(map[string]int, numItems)
		for i := 0; i < numItems; i++ {
			id := fmt.Sprintf("i%02d", i)
			startDay := rng.Intn(60)
			dur := rng.Intn(14)
			starts[id] = startDay
			ends[id] = startDay + dur
			doc.AddItem(&domain.Item{
				ID:      id,
				PhaseID: "p",
				Kind:    domain.KindTask,
				Name:    id,
				Start:   day(startDay),
				End:     dayPtr(startDay + dur),
			})
		}

		a := AssignLanes(doc, anchor)

		// Invariant 1: no two items in the same lane overlap.
		for _, x := range doc.Items {
			for _, y := range doc.Items {
				if x.ID >= y.ID || a.LaneOf[x.ID] != a.LaneOf[y.ID] {
					continue
				}
				overlap := starts[x.ID] <= ends[y.ID] && starts[y.ID] <= ends[x.ID]
				require.False(t, overlap,
					"trial %d: %s [%d,%d] and %s [%d,%d] share lane %d",
					trial, x.ID, starts[x.ID], ends[x.ID], y.ID, starts[y.ID], ends[y.ID], a.LaneOf[x.ID])
			}
		}

		// Invariant 2: lane count equals the maximum overlap depth.
		maxDepth := 0
		for d := 0; d < 80; d++ {
			depth := 0
			for id := range starts {
				if starts[id] <= d && d <= ends[id] {
					depth++
				}
			}
			if depth > maxDepth {
				maxDepth = depth
			}
		}
		assert.Equal(t, maxDepth, a.LaneCount["p"],
			"trial %d: greedy start-order packing must hit the minimum-rooms bound", trial)

		// Invariant 3: lanes are contiguous from zero.
		used := make(map[int]bool)
		for id := range starts {
			used[a.LaneOf[id]] = true
		}
		for lane := 0; lane < a.LaneCount["p"]; lane++ {
			assert.True(t, used[lane], "trial %d: lane %d unused", trial, lane)
		}
	}
}

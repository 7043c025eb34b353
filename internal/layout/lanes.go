// Package layout derives render-ready geometry from a schedule document:
// per-phase lane assignments, pixel boxes for a visible window, and
// routed dependency connectors. Everything here is a pure function of
// (document, viewport, collapsed set) and is recomputed on demand;
// nothing in this package is a source of truth.
package layout

import (
	"sort"
	"time"

	"github.com/alexanderramin/horae/internal/domain"
	"github.com/alexanderramin/horae/internal/timegrid"
)

// Assignment maps items to lanes within their phase. LaneCount is at
// least 1 per phase so empty phases still reserve one row.
type Assignment struct {
	LaneOf    map[string]int
	LaneCount map[string]int
}

type interval struct {
	item     *domain.Item
	startDay int
	endDay   int // inclusive; milestones occupy a single day
}

// AssignLanes performs greedy interval packing per phase: items are
// sorted by (start ascending, duration descending, name ascending) and
// each is placed in the first lane that ended before it starts. The
// start-order sort makes the greedy assignment use the minimum number
// of lanes for the phase's interval graph.
//
// Items whose start date failed to parse get lane 0 and are excluded
// from overlap reasoning, so a bad date can never break layout.
func AssignLanes(doc *domain.ScheduleDocument, anchor time.Time) Assignment {
	a := Assignment{
		LaneOf:    make(map[string]int),
		LaneCount: make(map[string]int),
	}

	for _, phase := range doc.Phases {
		var ivs []interval
		for _, item := range doc.ItemsByPhase(phase.ID) {
			if item.Start.IsZero() {
				a.LaneOf[item.ID] = 0
				continue
			}
			ivs = append(ivs, interval{
				item:     item,
				startDay: timegrid.DayIndex(anchor, item.Start),
				endDay:   timegrid.DayIndex(anchor, item.EffectiveEnd()),
			})
		}

		sort.SliceStable(ivs, func(i, j int) bool {
			x, y := ivs[i], ivs[j]
			if x.startDay != y.startDay {
				return x.startDay < y.startDay
			}
			dx, dy := x.endDay-x.startDay, y.endDay-y.startDay
			if dx != dy {
				return dx > dy // longer bars above shorter ones
			}
			return x.item.Name < y.item.Name
		})

		var laneEndDay []int
		for _, iv := range ivs {
			placed := false
			for lane := range laneEndDay {
				if laneEndDay[lane] < iv.startDay {
					a.LaneOf[iv.item.ID] = lane
					laneEndDay[lane] = iv.endDay
					placed = true
					break
				}
			}
			if !placed {
				a.LaneOf[iv.item.ID] = len(laneEndDay)
				laneEndDay = append(laneEndDay, iv.endDay)
			}
		}

		count := len(laneEndDay)
		if count < 1 {
			count = 1
		}
		a.LaneCount[phase.ID] = count
	}

	return a
}

package layout

import (
	"time"

	"github.com/alexanderramin/horae/internal/domain"
	"github.com/alexanderramin/horae/internal/timegrid"
)

// PageSizes are the supported page widths in weeks.
var PageSizes = []int{1, 4, 12, 36, 52}

// ValidPageSize reports whether weeks is a supported page width.
func ValidPageSize(weeks int) bool {
	for _, n := range PageSizes {
		if n == weeks {
			return true
		}
	}
	return false
}

// milestoneMarkerSize is the nominal milestone marker width in grid
// units, before clamping into a Metrics' milestone bounds.
const milestoneMarkerSize = 12

// Metrics holds the pixel constants of the rendered grid. The rendering
// layer picks the values; the transform only does arithmetic on them.
type Metrics struct {
	DayWidth     int
	BarHeight    int
	LaneGap      int
	HeaderOffset int
	InnerMargin  int
	LeftPadding  int
	MinBarWidth  int
	MilestoneMin int
	MilestoneMax int
	MinRowHeight int
	BottomPad    int
	CollapsedRow int
}

// DefaultMetrics returns metrics sized for a cell-based terminal grid.
func DefaultMetrics() Metrics {
	return Metrics{
		DayWidth:     2,
		BarHeight:    1,
		LaneGap:      0,
		HeaderOffset: 1,
		InnerMargin:  0,
		LeftPadding:  0,
		MinBarWidth:  1,
		MilestoneMin: 1,
		MilestoneMax: 3,
		MinRowHeight: 2,
		BottomPad:    0,
		CollapsedRow: 1,
	}
}

// Window is the visible day range, inclusive on both ends.
type Window struct {
	FirstDay int
	LastDay  int
}

// PageWindow returns the window for a contiguous page of weeks starting
// at the given week index.
func PageWindow(startWeek, weeks int) Window {
	first := startWeek * 7
	return Window{FirstDay: first, LastDay: first + weeks*7 - 1}
}

// RangeWindow returns the window covering an explicit date range. The
// bounds clamp to the supported grid horizon.
func RangeWindow(anchor, from, to time.Time) Window {
	first := timegrid.ClampGridDay(timegrid.DayIndex(anchor, from))
	last := timegrid.ClampGridDay(timegrid.DayIndex(anchor, to))
	if last < first {
		last = first
	}
	return Window{FirstDay: first, LastDay: last}
}

// Days returns the number of days the window spans.
func (w Window) Days() int {
	return w.LastDay - w.FirstDay + 1
}

// Box is a positioned rectangle in window-relative pixels. Y is relative
// to the top of the owning phase row; the caller stacks phase rows.
type Box struct {
	X, Y, W, H int
}

// ItemBox maps an item with its assigned lane into pixel geometry for
// the window. The second return is false when the item's interval is
// entirely outside the window or its start date never parsed.
func ItemBox(item *domain.Item, lane int, w Window, m Metrics, anchor time.Time) (Box, bool) {
	if item.Start.IsZero() {
		return Box{}, false
	}
	startDay := timegrid.DayIndex(anchor, item.Start)
	endDay := timegrid.DayIndex(anchor, item.EffectiveEnd())
	if endDay < w.FirstDay || startDay > w.LastDay {
		return Box{}, false
	}

	clampedStart := max(startDay, w.FirstDay)
	clampedEnd := min(endDay, w.LastDay)

	box := Box{
		X: (clampedStart-w.FirstDay)*m.DayWidth + m.LeftPadding,
		Y: m.HeaderOffset + lane*(m.BarHeight+m.LaneGap),
		H: m.BarHeight,
	}

	if item.Kind == domain.KindMilestone {
		// Fixed marker size regardless of zoom, clamped into the
		// configured bounds so it stays visible at every day width.
		box.W = clampInt(milestoneMarkerSize, m.MilestoneMin, m.MilestoneMax)
		return box, true
	}

	width := (clampedEnd-clampedStart+1)*m.DayWidth - m.InnerMargin
	if width < m.MinBarWidth {
		width = m.MinBarWidth
	}
	box.W = width
	return box, true
}

// PhaseRowHeight sizes a phase's row for its lane count. Collapsed
// phases use a fixed compact height.
func PhaseRowHeight(laneCount int, collapsed bool, m Metrics) int {
	if collapsed {
		return m.CollapsedRow
	}
	h := m.HeaderOffset + laneCount*(m.BarHeight+m.LaneGap) + m.BottomPad
	if h < m.MinRowHeight {
		h = m.MinRowHeight
	}
	return h
}

// TodayOffset returns the X offset of the today indicator, computed as
// a zero-duration point. The second return is false when today falls
// outside the window.
func TodayOffset(today time.Time, w Window, m Metrics, anchor time.Time) (int, bool) {
	d := timegrid.DayIndex(anchor, today)
	if d < w.FirstDay || d > w.LastDay {
		return 0, false
	}
	return (d-w.FirstDay)*m.DayWidth + m.LeftPadding, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

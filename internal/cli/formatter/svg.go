package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/horae/internal/domain"
	"github.com/alexanderramin/horae/internal/layout"
	"github.com/alexanderramin/horae/internal/timegrid"
)

// SVGMetrics returns pixel metrics sized for SVG export.
func SVGMetrics() layout.Metrics {
	return layout.Metrics{
		DayWidth:     14,
		BarHeight:    18,
		LaneGap:      6,
		HeaderOffset: 26,
		InnerMargin:  2,
		LeftPadding:  150,
		MinBarWidth:  4,
		MilestoneMin: 10,
		MilestoneMax: 16,
		MinRowHeight: 50,
		BottomPad:    8,
		CollapsedRow: 24,
	}
}

const (
	svgHeaderHeight = 28
	svgStub         = 8
)

// FormatSVG renders the schedule for the given window as a standalone
// SVG document, including dependency connectors.
func FormatSVG(doc *domain.ScheduleDocument, anchor time.Time, w layout.Window, today time.Time) string {
	m := SVGMetrics()
	lanes := layout.AssignLanes(doc, anchor)

	width := m.LeftPadding + w.Days()*m.DayWidth + 20

	// Stack phase rows top to bottom and collect absolute item boxes.
	boxes := make(map[string]layout.Box)
	visible := make(map[string]bool)
	type phaseRow struct {
		phase *domain.Phase
		top   int
	}
	var phaseRows []phaseRow
	top := svgHeaderHeight
	for _, phase := range doc.Phases {
		phaseRows = append(phaseRows, phaseRow{phase: phase, top: top})
		for _, item := range doc.ItemsByPhase(phase.ID) {
			box, ok := layout.ItemBox(item, lanes.LaneOf[item.ID], w, m, anchor)
			if !ok {
				continue
			}
			box.Y += top
			boxes[item.ID] = box
			visible[item.ID] = true
		}
		top += layout.PhaseRowHeight(lanes.LaneCount[phase.ID], false, m)
	}
	height := top + 20

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif" font-size="11">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#282828"/>`+"\n", width, height)

	// Week gridlines and labels.
	for day := w.FirstDay; day <= w.LastDay; day += 7 {
		x := m.LeftPadding + (day-w.FirstDay)*m.DayWidth
		fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#3c3836"/>`+"\n",
			x, svgHeaderHeight, x, height-20)
		label := timegrid.DateFromDayIndex(anchor, day).Format("Jan 02")
		fmt.Fprintf(&b, `<text x="%d" y="18" fill="#928374">%s</text>`+"\n", x+2, label)
	}

	// Today indicator.
	if x, ok := layout.TodayOffset(today, w, m, anchor); ok {
		fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#d3869b" stroke-dasharray="4 3"/>`+"\n",
			x, svgHeaderHeight, x, height-20)
	}

	// Phase labels and item bars.
	for _, pr := range phaseRows {
		fmt.Fprintf(&b, `<text x="8" y="%d" fill="#fe8019" font-weight="bold">%s</text>`+"\n",
			pr.top+16, escape(pr.phase.Name))
		for _, item := range doc.ItemsByPhase(pr.phase.ID) {
			box, ok := boxes[item.ID]
			if !ok {
				continue
			}
			fill := svgStatusFill(item.Status)
			if item.Kind == domain.KindMilestone {
				cx := box.X + box.W/2
				cy := box.Y + box.H/2
				r := box.W / 2
				fmt.Fprintf(&b, `<polygon points="%d,%d %d,%d %d,%d %d,%d" fill="%s"/>`+"\n",
					cx, cy-r, cx+r, cy, cx, cy+r, cx-r, cy, fill)
			} else {
				fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" rx="3" fill="%s"/>`+"\n",
					box.X, box.Y, box.W, box.H, fill)
			}
			fmt.Fprintf(&b, `<text x="%d" y="%d" fill="#ebdbb2">%s</text>`+"\n",
				box.X+box.W+4, box.Y+box.H-5, escape(item.Name))
		}
	}

	// Dependency connectors.
	pairs := layout.VisiblePairs(doc, visible)
	bounds := layout.Rect{X: 0, Y: 0, W: width, H: height}
	for _, path := range layout.RoutePaths(pairs, boxes, bounds, svgStub) {
		points := make([]string, len(path.Points))
		for i, p := range path.Points {
			points[i] = fmt.Sprintf("%d,%d", p.X, p.Y)
		}
		fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="#928374" stroke-width="1.5"/>`+"\n",
			strings.Join(points, " "))
		fmt.Fprintf(&b, `<polygon points="%d,%d %d,%d %d,%d" fill="#928374"/>`+"\n",
			path.X2, path.Y2, path.X2-path.Arrow*6, path.Y2-3, path.X2-path.Arrow*6, path.Y2+3)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// Package formatter renders schedule views for the terminal and for
// SVG export. All layout arithmetic lives in the layout package; this
// package only turns boxes and paths into styled output.
package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/horae/internal/domain"
	"github.com/alexanderramin/horae/internal/layout"
	"github.com/alexanderramin/horae/internal/timegrid"
	"github.com/charmbracelet/lipgloss"
)

// LabelWidth is the fixed width of the left-hand name column.
const LabelWidth = 22

var (
	styleBarText   = lipgloss.NewStyle().Foreground(lipgloss.Color("#282828"))
	styleSelected  = lipgloss.NewStyle().Foreground(lipgloss.Color("#282828")).Background(ColorHeader).Bold(true)
	stylePhaseName = StyleHeader
	styleToday     = StylePurple
)

// GanttData carries everything a gantt render needs.
type GanttData struct {
	Doc       *domain.ScheduleDocument
	Anchor    time.Time
	Window    layout.Window
	Metrics   layout.Metrics
	Collapsed map[string]bool
	Today     time.Time
	Selected  string
}

// FormatGantt renders the schedule as a cell-based gantt chart: a week
// header, then one row block per phase with its packed lanes.
func FormatGantt(d GanttData) string {
	lanes := layout.AssignLanes(d.Doc, d.Anchor)
	gridWidth := d.Window.Days() * d.Metrics.DayWidth

	var b strings.Builder
	b.WriteString(weekHeader(d.Anchor, d.Window, d.Metrics))
	b.WriteString("\n")
	if line, ok := todayLine(d.Today, d.Window, d.Metrics, d.Anchor, gridWidth); ok {
		b.WriteString(line)
		b.WriteString("\n")
	}

	for _, phase := range d.Doc.Phases {
		b.WriteString(phaseBlock(d, phase, lanes, gridWidth))
	}
	return b.String()
}

func weekHeader(anchor time.Time, w layout.Window, m layout.Metrics) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", LabelWidth))
	weekWidth := 7 * m.DayWidth
	for day := w.FirstDay; day <= w.LastDay; day += 7 {
		label := timegrid.DateFromDayIndex(anchor, day).Format("Jan 02")
		b.WriteString(Dim(pad(label, weekWidth)))
	}
	return b.String()
}

func todayLine(today time.Time, w layout.Window, m layout.Metrics, anchor time.Time, gridWidth int) (string, bool) {
	offset, ok := layout.TodayOffset(today, w, m, anchor)
	if !ok {
		return "", false
	}
	line := strings.Repeat(" ", LabelWidth+offset) + styleToday.Render("▼")
	return line, true
}

func phaseBlock(d GanttData, phase *domain.Phase, lanes layout.Assignment, gridWidth int) string {
	items := d.Doc.ItemsByPhase(phase.ID)
	collapsed := d.Collapsed[phase.ID]

	var b strings.Builder
	marker := "▾"
	if collapsed {
		marker = "▸"
	}
	b.WriteString(stylePhaseName.Render(pad(marker+" "+phase.Name, LabelWidth)))
	b.WriteString(Dim(fmt.Sprintf(" %d items", len(items))))
	b.WriteString("\n")
	if collapsed {
		return b.String()
	}

	laneCount := lanes.LaneCount[phase.ID]
	rows := make([][]cell, laneCount)
	for i := range rows {
		rows[i] = make([]cell, 0, 4)
	}
	for _, item := range items {
		box, ok := layout.ItemBox(item, lanes.LaneOf[item.ID], d.Window, d.Metrics, d.Anchor)
		if !ok {
			continue
		}
		lane := lanes.LaneOf[item.ID]
		rows[lane] = append(rows[lane], cell{item: item, box: box})
	}

	for _, row := range rows {
		b.WriteString(laneRow(row, gridWidth, d.Selected))
		b.WriteString("\n")
	}
	return b.String()
}

// cell is one rendered bar within a lane row.
type cell struct {
	item *domain.Item
	box  layout.Box
}

// laneRow renders the bars of a single lane. Bars in one lane never
// overlap, so a left-to-right walk with gap fill is enough.
func laneRow(cells []cell, gridWidth int, selected string) string {
	ordered := append([]cell(nil), cells...)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].box.X < ordered[j-1].box.X; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", LabelWidth))
	x := 0
	for _, c := range ordered {
		if c.box.X > x {
			b.WriteString(strings.Repeat(" ", c.box.X-x))
			x = c.box.X
		}
		b.WriteString(renderBar(c, selected))
		x += c.box.W
	}
	if x < gridWidth {
		b.WriteString(strings.Repeat(" ", gridWidth-x))
	}
	return b.String()
}

func renderBar(c cell, selected string) string {
	style := styleBarText.Background(StatusStyle(c.item.Status).GetForeground())
	if c.item.ID == selected {
		style = styleSelected
	}
	if c.item.Kind == domain.KindMilestone {
		if c.item.ID == selected {
			return style.Render(pad("◆", c.box.W))
		}
		return StatusStyle(c.item.Status).Render(pad("◆", c.box.W))
	}
	return style.Render(pad(c.item.Name, c.box.W))
}

// pad truncates or right-pads s to exactly width cells.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		runes = runes[:width]
		return string(runes)
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// FormatItemTable renders a plain listing of all items for shell use.
func FormatItemTable(doc *domain.ScheduleDocument) string {
	var b strings.Builder
	for _, phase := range doc.Phases {
		b.WriteString(stylePhaseName.Render(phase.Name))
		b.WriteString("\n")
		for _, item := range doc.ItemsByPhase(phase.ID) {
			span := timegrid.FormatDate(item.Start)
			if item.Kind != domain.KindMilestone {
				span += " .. " + timegrid.FormatDate(item.EffectiveEnd())
			}
			b.WriteString(fmt.Sprintf("  %-10s %-10s %-30s %-24s %s\n",
				shortID(item.ID), item.Kind, pad(item.Name, 30), span, StatusLabel(item.Status)))
		}
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

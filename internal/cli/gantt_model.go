package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/horae/internal/cli/formatter"
	"github.com/alexanderramin/horae/internal/domain"
	"github.com/alexanderramin/horae/internal/editor"
	"github.com/alexanderramin/horae/internal/interaction"
	"github.com/alexanderramin/horae/internal/layout"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// mousePointer is the single pointer id terminals provide.
const mousePointer = 0

type keyMap struct {
	PrevPage key.Binding
	NextPage key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Next     key.Binding
	Prev     key.Binding
	Collapse key.Binding
	Save     key.Binding
	Delete   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevPage: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev page")),
		NextPage: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next page")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		Next:     key.NewBinding(key.WithKeys("tab", "j", "down"), key.WithHelp("tab", "next item")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "k", "up"), key.WithHelp("shift+tab", "prev item")),
		Collapse: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse phase")),
		Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Delete:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete item")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// barHit is the clickable horizontal extent of one rendered bar.
type barHit struct {
	itemID string
	x0, x1 int // inclusive cell range, relative to the grid origin
}

// hitRow maps one screen row of the gantt body to what it renders.
type hitRow struct {
	phaseID string   // set on phase title rows
	bars    []barHit // set on lane rows
}

type saveResultMsg struct{ err error }

// ganttModel is the bubbletea Model for the interactive gantt editor.
type ganttModel struct {
	app     *App
	ctrl    *editor.Controller
	tracker *interaction.Tracker
	keys    keyMap
	metrics layout.Metrics

	weeks     int
	startWeek int
	collapsed map[string]bool
	selected  string
	readOnly  bool

	status   string
	saving   bool
	width    int
	quitting bool
}

func newGanttModel(app *App, ctrl *editor.Controller) ganttModel {
	return ganttModel{
		app:       app,
		ctrl:      ctrl,
		tracker:   interaction.NewTracker(),
		keys:      defaultKeyMap(),
		metrics:   layout.DefaultMetrics(),
		weeks:     4,
		collapsed: make(map[string]bool),
	}
}

func (m ganttModel) Init() tea.Cmd {
	return nil
}

func (m ganttModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case saveResultMsg:
		m.saving = false
		if msg.err != nil {
			m.status = formatter.StyleRed.Render(msg.err.Error())
		} else {
			m.status = formatter.Dim("Saved.")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m ganttModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.PrevPage):
		if m.startWeek > 0 {
			m.startWeek -= m.weeks
			if m.startWeek < 0 {
				m.startWeek = 0
			}
		}
	case key.Matches(msg, m.keys.NextPage):
		m.startWeek += m.weeks

	case key.Matches(msg, m.keys.ZoomIn):
		m.weeks = zoomStep(m.weeks, -1)
	case key.Matches(msg, m.keys.ZoomOut):
		m.weeks = zoomStep(m.weeks, 1)

	case key.Matches(msg, m.keys.Next):
		m.selected = m.cycleSelection(1)
	case key.Matches(msg, m.keys.Prev):
		m.selected = m.cycleSelection(-1)

	case key.Matches(msg, m.keys.Collapse):
		if phaseID := m.selectedPhase(); phaseID != "" {
			m.collapsed[phaseID] = !m.collapsed[phaseID]
		}

	case key.Matches(msg, m.keys.Delete):
		if m.selected != "" && !m.readOnly {
			id := m.selected
			m.ctrl.Mutate(func(doc *domain.ScheduleDocument) bool {
				return doc.DeleteItem(id)
			})
			m.selected = ""
			m.status = formatter.Dim("Deleted.")
		}

	case key.Matches(msg, m.keys.Save):
		if !m.saving {
			m.saving = true
			m.status = formatter.Dim("Saving…")
			ctrl := m.ctrl
			return m, func() tea.Msg {
				return saveResultMsg{err: ctrl.Save(context.Background())}
			}
		}
	}
	return m, nil
}

func (m ganttModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	gridX := msg.X - formatter.LabelWidth

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		rows := m.hitRows()
		if msg.Y < 0 || msg.Y >= len(rows) {
			return m, nil
		}
		row := rows[msg.Y]
		if row.phaseID != "" {
			m.collapsed[row.phaseID] = !m.collapsed[row.phaseID]
			return m, nil
		}
		for _, bar := range row.bars {
			if gridX < bar.x0 || gridX > bar.x1 {
				continue
			}
			mode := interaction.ModeMove
			if gridX == bar.x1 {
				mode = interaction.ModeResizeEnd
			}
			m.tracker.Begin(m.ctrl.Document(), m.ctrl.Anchor(), mode, bar.itemID, mousePointer, gridX, m.readOnly)
			return m, nil
		}

	case tea.MouseActionMotion:
		if m.tracker.Active(mousePointer) == nil {
			return m, nil
		}
		// Applied through Mutate so a save never snapshots a half-moved
		// item.
		anchor := m.ctrl.Anchor()
		m.ctrl.Mutate(func(doc *domain.ScheduleDocument) bool {
			return m.tracker.Move(doc, anchor, mousePointer, gridX, m.metrics.DayWidth)
		})

	case tea.MouseActionRelease:
		session := m.tracker.Active(mousePointer)
		if session == nil {
			return m, nil
		}
		itemID := session.ItemID
		if moved := m.tracker.End(mousePointer); !moved {
			// A press-release without movement is a click: select.
			m.selected = itemID
		}
	}
	return m, nil
}

// hitRows mirrors the row structure FormatGantt produces so mouse
// coordinates can be resolved back to phases and bars.
func (m ganttModel) hitRows() []hitRow {
	doc := m.ctrl.Document()
	anchor := m.ctrl.Anchor()
	window := m.window()
	lanes := layout.AssignLanes(doc, anchor)

	rows := []hitRow{{}} // week header
	if _, ok := layout.TodayOffset(m.app.now(), window, m.metrics, anchor); ok {
		rows = append(rows, hitRow{})
	}

	for _, phase := range doc.Phases {
		rows = append(rows, hitRow{phaseID: phase.ID})
		if m.collapsed[phase.ID] {
			continue
		}
		laneRows := make([][]barHit, lanes.LaneCount[phase.ID])
		for _, item := range doc.ItemsByPhase(phase.ID) {
			box, ok := layout.ItemBox(item, lanes.LaneOf[item.ID], window, m.metrics, anchor)
			if !ok {
				continue
			}
			lane := lanes.LaneOf[item.ID]
			laneRows[lane] = append(laneRows[lane], barHit{
				itemID: item.ID,
				x0:     box.X,
				x1:     box.X + box.W - 1,
			})
		}
		for _, bars := range laneRows {
			rows = append(rows, hitRow{bars: bars})
		}
	}
	return rows
}

func (m ganttModel) window() layout.Window {
	return layout.PageWindow(m.startWeek, m.weeks)
}

// cycleSelection walks the flattened item order by delta.
func (m ganttModel) cycleSelection(delta int) string {
	doc := m.ctrl.Document()
	var ids []string
	for _, phase := range doc.Phases {
		for _, item := range doc.ItemsByPhase(phase.ID) {
			ids = append(ids, item.ID)
		}
	}
	if len(ids) == 0 {
		return ""
	}
	idx := -1
	for i, id := range ids {
		if id == m.selected {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(ids)) % len(ids)
	return ids[idx]
}

func (m ganttModel) selectedPhase() string {
	doc := m.ctrl.Document()
	if item := doc.ItemByID(m.selected); item != nil {
		return item.PhaseID
	}
	if len(doc.Phases) > 0 {
		return doc.Phases[0].ID
	}
	return ""
}

func (m ganttModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.FormatGantt(formatter.GanttData{
		Doc:       m.ctrl.Document(),
		Anchor:    m.ctrl.Anchor(),
		Window:    m.window(),
		Metrics:   m.metrics,
		Collapsed: m.collapsed,
		Today:     m.app.now(),
		Selected:  m.selected,
	}))

	b.WriteString("\n")
	if m.ctrl.Dirty() {
		b.WriteString(formatter.StyleYellow.Render("● unsaved changes"))
	} else {
		b.WriteString(formatter.Dim("○ saved"))
	}
	if m.status != "" {
		b.WriteString("  " + m.status)
	}
	b.WriteString("\n")
	b.WriteString(formatter.Dim(fmt.Sprintf(
		"%d weeks from week %d · drag bars to move, drag right edge to resize · s save · c collapse · q quit",
		m.weeks, m.startWeek)))
	return b.String()
}

// zoomStep moves through the supported page sizes.
func zoomStep(current, delta int) int {
	for i, n := range layout.PageSizes {
		if n == current {
			j := i + delta
			if j < 0 || j >= len(layout.PageSizes) {
				return current
			}
			return layout.PageSizes[j]
		}
	}
	return layout.PageSizes[1]
}

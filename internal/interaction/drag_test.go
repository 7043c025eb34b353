package interaction

import (
	"testing"
	"time"

	"github.com/alexanderramin/horae/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anchor = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC) // a Monday

func day(n int) time.Time {
	return anchor.AddDate(0, 0, n)
}

func dayPtr(n int) *time.Time {
	d := day(n)
	return &d
}

func taskDoc() *domain.ScheduleDocument {
	doc := domain.NewScheduleDocument()
	doc.AddPhase(&domain.Phase{ID: "p", Name: "P"})
	doc.AddItem(&domain.Item{ID: "t", PhaseID: "p", Kind: domain.KindTask, Name: "Task", Start: day(5), End: dayPtr(8)})
	doc.AddItem(&domain.Item{ID: "m", PhaseID: "p", Kind: domain.KindMilestone, Name: "Gate", Start: day(10)})
	return doc
}

const dayWidth = 10

func TestMove_ShiftsStartAndEnd(t *testing.T) {
	doc := taskDoc()
	tr := NewTracker()
	require.True(t, tr.Begin(doc, anchor, ModeMove, "t", 0, 100, false))

	// Several intermediate events; only the cumulative delta matters.
	tr.Move(doc, anchor, 0, 108, dayWidth)
	tr.Move(doc, anchor, 0, 117, dayWidth)
	changed := tr.Move(doc, anchor, 0, 130, dayWidth) // +3 days

	assert.True(t, changed)
	item := doc.ItemByID("t")
	assert.Equal(t, day(8), item.Start)
	assert.Equal(t, day(11), *item.End, "delta is applied to the fixed origin, not incrementally")
	assert.True(t, tr.End(0))
}

func TestMove_RepeatedSameDeltaIsIdempotent(t *testing.T) {
	doc := taskDoc()
	tr := NewTracker()
	require.True(t, tr.Begin(doc, anchor, ModeMove, "t", 0, 100, false))

	assert.True(t, tr.Move(doc, anchor, 0, 120, dayWidth))
	assert.False(t, tr.Move(doc, anchor, 0, 120, dayWidth), "re-delivery of the same delta changes nothing")
	assert.Equal(t, day(7), doc.ItemByID("t").Start)
}

func TestMove_NegativeDelta(t *testing.T) {
	doc := taskDoc()
	tr := NewTracker()
	require.True(t, tr.Begin(doc, anchor, ModeMove, "t", 0, 100, false))

	tr.Move(doc, anchor, 0, 80, dayWidth)

	item := doc.ItemByID("t")
	assert.Equal(t, day(3), item.Start)
	assert.Equal(t, day(6), *item.End)
}

func TestMove_MilestoneShiftsStartOnly(t *testing.T) {
	doc := taskDoc()
	tr := NewTracker()
	require.True(t, tr.Begin(doc, anchor, ModeMove, "m", 0, 0, false))

	tr.Move(doc, anchor, 0, 20, dayWidth)

	item := doc.ItemByID("m")
	assert.Equal(t, day(12), item.Start)
	assert.Nil(t, item.End)
}

func TestResizeEnd_MovesOnlyEnd(t *testing.T) {
	doc := taskDoc()
	tr := NewTracker()
	require.True(t, tr.Begin(doc, anchor, ModeResizeEnd, "t", 0, 0, false))

	tr.Move(doc, anchor, 0, 20, dayWidth)

	item := doc.ItemByID("t")
	assert.Equal(t, day(5), item.Start)
	assert.Equal(t, day(10), *item.End)
}

func TestResizeEnd_ClampsAtStart(t *testing.T) {
	doc := taskDoc()
	tr := NewTracker()
	require.True(t, tr.Begin(doc, anchor, ModeResizeEnd, "t", 0, 0, false))

	tr.Move(doc, anchor, 0, -200, dayWidth)

	item := doc.ItemByID("t")
	assert.Equal(t, day(5), item.Start)
	assert.Equal(t, day(5), *item.End, "end never precedes start")
}

func TestResizeEnd_MilestoneIsNoop(t *testing.T) {
	doc := taskDoc()
	tr := NewTracker()
	require.True(t, tr.Begin(doc, anchor, ModeResizeEnd, "m", 0, 0, false))

	assert.False(t, tr.Move(doc, anchor, 0, 50, dayWidth))
	assert.Equal(t, day(10), doc.ItemByID("m").Start)
}

func TestHasMoved_RequiresWholeDay(t *testing.T) {
	doc := taskDoc()
	tr := NewTracker()
	require.True(t, tr.Begin(doc, anchor, ModeMove, "t", 0, 100, false))

	tr.Move(doc, anchor, 0, 104, dayWidth) // rounds to 0 days
	assert.False(t, tr.End(0), "sub-day jitter never suppresses the click")
}

func TestBegin_ReadOnlyAndMissing(t *testing.T) {
	doc := taskDoc()
	tr := NewTracker()

	assert.False(t, tr.Begin(doc, anchor, ModeMove, "t", 0, 0, true), "read-only blocks dragging")
	assert.False(t, tr.Begin(doc, anchor, ModeMove, "nope", 0, 0, false))
	assert.Nil(t, tr.Active(0))
}

func TestMove_DeletedItemEndsSessionSilently(t *testing.T) {
	doc := taskDoc()
	tr := NewTracker()
	require.True(t, tr.Begin(doc, anchor, ModeMove, "t", 0, 0, false))

	doc.DeleteItem("t")

	assert.False(t, tr.Move(doc, anchor, 0, 50, dayWidth))
	assert.Nil(t, tr.Active(0), "a drag targeting a deleted item is a silent no-op")
}

func TestIndependentSessionsPerPointer(t *testing.T) {
	doc := taskDoc()
	tr := NewTracker()
	require.True(t, tr.Begin(doc, anchor, ModeMove, "t", 1, 0, false))
	require.True(t, tr.Begin(doc, anchor, ModeMove, "m", 2, 0, false))

	tr.Move(doc, anchor, 1, 10, dayWidth)
	tr.Move(doc, anchor, 2, 30, dayWidth)

	assert.Equal(t, day(6), doc.ItemByID("t").Start)
	assert.Equal(t, day(13), doc.ItemByID("m").Start)

	tr.Cancel(1)
	assert.Nil(t, tr.Active(1))
	assert.NotNil(t, tr.Active(2))
}

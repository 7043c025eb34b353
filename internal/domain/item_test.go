package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestNormalize_MilestoneClearsEnd(t *testing.T) {
	i := &Item{
		ID:    "m1",
		Kind:  KindMilestone,
		Start: date(2024, 3, 10),
		End:   datePtr(2024, 3, 20),
	}
	i.Normalize()
	assert.Nil(t, i.End, "milestone must never carry an end date")
	assert.Equal(t, date(2024, 3, 10), i.EffectiveEnd())
}

func TestNormalize_TaskDefaultsEndToStart(t *testing.T) {
	i := &Item{ID: "t1", Kind: KindTask, Start: date(2024, 3, 10)}
	i.Normalize()
	require.NotNil(t, i.End)
	assert.Equal(t, date(2024, 3, 10), *i.End)
}

func TestNormalize_EndBeforeStartSnapsToStart(t *testing.T) {
	i := &Item{
		ID:    "t1",
		Kind:  KindTask,
		Start: date(2024, 3, 10),
		End:   datePtr(2024, 3, 5),
	}
	i.Normalize()
	require.NotNil(t, i.End)
	assert.Equal(t, date(2024, 3, 10), *i.End, "negative-duration interval must snap end := start")
}

func TestNormalize_DropsSelfAndDuplicateDependencies(t *testing.T) {
	i := &Item{
		ID:           "t1",
		Kind:         KindTask,
		Start:        date(2024, 3, 10),
		Dependencies: []string{"t2", "t1", "t2", "", "t3"},
	}
	i.Normalize()
	assert.Equal(t, []string{"t2", "t3"}, i.Dependencies)
}

func TestApplyPatch_MilestoneIgnoresEnd(t *testing.T) {
	i := &Item{ID: "m1", Kind: KindMilestone, Start: date(2024, 3, 10)}
	i.Normalize()

	changed := i.ApplyPatch(ItemPatch{End: datePtr(2024, 3, 20)})
	assert.False(t, changed, "patching end on a milestone is a no-op after normalization")
	assert.Nil(t, i.End)
}

func TestApplyPatch_KindChangeToMilestoneDropsEnd(t *testing.T) {
	i := &Item{ID: "t1", Kind: KindTask, Start: date(2024, 3, 10), End: datePtr(2024, 3, 14)}
	kind := KindMilestone
	changed := i.ApplyPatch(ItemPatch{Kind: &kind})
	assert.True(t, changed)
	assert.Nil(t, i.End)
}

func TestApplyPatch_EndClamp(t *testing.T) {
	i := &Item{ID: "t1", Kind: KindTask, Start: date(2024, 3, 10), End: datePtr(2024, 3, 14)}
	changed := i.ApplyPatch(ItemPatch{End: datePtr(2024, 3, 1)})
	assert.True(t, changed)
	require.NotNil(t, i.End)
	assert.Equal(t, date(2024, 3, 10), *i.End)
}

func TestApplyPatch_NoopReportsUnchanged(t *testing.T) {
	i := &Item{ID: "t1", Kind: KindTask, Name: "Draft", Start: date(2024, 3, 10)}
	i.Normalize()
	name := "Draft"
	assert.False(t, i.ApplyPatch(ItemPatch{Name: &name}))
}

func TestAddDependency_RejectsSelf(t *testing.T) {
	i := &Item{ID: "t1", Kind: KindTask, Start: date(2024, 3, 10)}
	assert.False(t, i.AddDependency("t1"))
	assert.Empty(t, i.Dependencies)

	assert.True(t, i.AddDependency("t2"))
	assert.False(t, i.AddDependency("t2"), "duplicates report no change")
	assert.Equal(t, []string{"t2"}, i.Dependencies)
}

func TestRemoveDependency_ReportsChange(t *testing.T) {
	i := &Item{ID: "t1", Kind: KindTask, Start: date(2024, 3, 10), Dependencies: []string{"t2", "t3"}}

	assert.True(t, i.RemoveDependency("t2"))
	assert.Equal(t, []string{"t3"}, i.Dependencies)
	assert.False(t, i.RemoveDependency("t2"), "absent predecessors report no change")
}

func TestValidEnumSets(t *testing.T) {
	assert.True(t, ValidItemKinds[KindDeliverable])
	assert.False(t, ValidItemKinds[ItemKind("epic")])
	assert.True(t, ValidItemStatuses[StatusAtRisk])
	assert.False(t, ValidItemStatuses[ItemStatus("blocked")])
}

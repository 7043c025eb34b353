package editor

import (
	"time"

	"github.com/alexanderramin/horae/internal/domain"
	"github.com/alexanderramin/horae/internal/wbs"
)

// ImportWBS converts a fetched WBS payload and merges it into the
// session document. Imported items all start at the project start date
// (falling back to the session anchor when no bounds are supplied) and
// their ends are clamped to the project finish. The document is left
// unmodified when the payload is not a WBS document.
func (c *Controller) ImportWBS(data []byte) (wbs.MergeStats, error) {
	rows, err := wbs.DecodeRows(data)
	if err != nil {
		return wbs.MergeStats{}, err
	}

	start := c.Anchor()
	var finish *time.Time
	if c.bounds != nil {
		if !c.bounds.Start.IsZero() {
			start = c.bounds.Start
		}
		finish = c.bounds.Finish
	}

	src := wbs.Convert(rows, start, finish)
	var stats wbs.MergeStats
	c.Mutate(func(doc *domain.ScheduleDocument) bool {
		stats = wbs.Merge(doc, src)
		return stats.ItemsAdded > 0 || stats.PhasesAdded > 0
	})
	return stats, nil
}

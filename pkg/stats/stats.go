package stats

import (
	"time"

	"github.com/weekbrief/weekbrief/pkg/category"
)

// DayBucket holds the categorized events starting on one calendar date and
// that date's time totals. Time spent by events spanning midnight is split
// across the buckets of the days it covers.
type DayBucket struct {
	Date             time.Time
	Events           []category.CategorizedEvent
	MeetingCount     int
	TotalTime        time.Duration
	WorkingHoursTime time.Duration
	AfterHoursTime   time.Duration
}

// CategoryStats accumulates duration and count for one category across the
// whole week.
type CategoryStats struct {
	Category  category.Category
	Count     int
	TotalTime time.Duration
}

// WeekSummary owns the aggregates of one analyzed week: seven contiguous
// day buckets in the configured timezone, per-category totals, and overall
// totals. Created fresh per analysis run, never persisted.
type WeekSummary struct {
	StartDate        time.Time
	EndDate          time.Time
	Days             []DayBucket
	Categories       []CategoryStats
	TotalEvents      int
	TotalTime        time.Duration
	WorkingHoursTime time.Duration
	AfterHoursTime   time.Duration
}

// CategoryTotal returns the stats entry for the given category, if present.
func (s WeekSummary) CategoryTotal(c category.Category) (CategoryStats, bool) {
	for _, cs := range s.Categories {
		if cs.Category == c {
			return cs, true
		}
	}
	return CategoryStats{}, false
}

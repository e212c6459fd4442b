package report

import (
	"time"

	"github.com/weekbrief/weekbrief/pkg/insight"
	"github.com/weekbrief/weekbrief/pkg/preview"
	"github.com/weekbrief/weekbrief/pkg/stats"
)

// Report is the single artifact handed to the messaging sink: the analyzed
// week, ordered insights, optional narrative, and the upcoming preview.
// Immutable once assembled.
type Report struct {
	Id          string
	GeneratedAt time.Time
	Week        stats.WeekSummary
	Insights    []insight.Insight
	Narrative   string
	Upcoming    preview.UpcomingPreview
}

// Assemble is a pure merge of the pipeline outputs. No validation beyond
// shape; an empty narrative means none was generated.
func Assemble(id string, generatedAt time.Time, week stats.WeekSummary, insights []insight.Insight, narrative string, upcoming preview.UpcomingPreview) Report {
	return Report{
		Id:          id,
		GeneratedAt: generatedAt,
		Week:        week,
		Insights:    insights,
		Narrative:   narrative,
		Upcoming:    upcoming,
	}
}

package insight

import (
	"context"

	"github.com/weekbrief/weekbrief/pkg/stats"
)

// Summarizer is the external narrative-generation capability. It turns the
// aggregated week and already-derived insights into one free-text paragraph.
// On failure the narrative is simply omitted from the report; it never
// blocks report assembly.
type Summarizer interface {
	Summarize(ctx context.Context, summary stats.WeekSummary, insights []Insight) (string, error)
}

// StubSummarizer is a scripted Summarizer for tests.
type StubSummarizer struct {
	Text string
	Err  error
}

func (s *StubSummarizer) Summarize(_ context.Context, _ stats.WeekSummary, _ []Insight) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Text, nil
}

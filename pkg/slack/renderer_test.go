package slack

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weekbrief/weekbrief/pkg/calendar"
	"github.com/weekbrief/weekbrief/pkg/category"
	"github.com/weekbrief/weekbrief/pkg/insight"
	"github.com/weekbrief/weekbrief/pkg/preview"
	"github.com/weekbrief/weekbrief/pkg/report"
	"github.com/weekbrief/weekbrief/pkg/stats"
)

var weekStart = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

func sampleReport() report.Report {
	week := stats.WeekSummary{
		StartDate:        weekStart,
		EndDate:          weekStart.AddDate(0, 0, 7).Add(-time.Nanosecond),
		TotalEvents:      6,
		TotalTime:        195 * time.Minute,
		WorkingHoursTime: 195 * time.Minute,
		Categories: []stats.CategoryStats{
			{Category: category.Standup, Count: 5, TotalTime: 75 * time.Minute},
			{Category: category.Planning, Count: 1, TotalTime: 120 * time.Minute},
		},
	}
	for i := 0; i < 7; i++ {
		day := stats.DayBucket{Date: weekStart.AddDate(0, 0, i)}
		if i < 5 {
			day.MeetingCount = 1
			day.TotalTime = 15 * time.Minute
		}
		week.Days = append(week.Days, day)
	}

	upcoming := preview.UpcomingPreview{
		StartDate:   weekStart.AddDate(0, 0, 7),
		EndDate:     weekStart.AddDate(0, 0, 14).Add(-time.Nanosecond),
		TotalEvents: 1,
		KeyMeetings: []category.CategorizedEvent{
			{
				Event: calendar.Event{
					Title:         "Quarterly Review",
					StartTime:     weekStart.AddDate(0, 0, 9).Add(10 * time.Hour),
					Duration:      2 * time.Hour,
					AttendeeCount: 8,
				},
				Category: category.Review,
			},
		},
		FocusDays: []time.Time{weekStart.AddDate(0, 0, 8)},
	}

	return report.Report{
		Id:          "report-1",
		GeneratedAt: weekStart.AddDate(0, 0, 7).Add(9 * time.Hour),
		Week:        week,
		Insights: []insight.Insight{
			{Text: "🎯 Planning meetings dominate your week: 62% of total meeting time", Kind: insight.KindDistribution},
		},
		Upcoming: upcoming,
	}
}

func blockTexts(blocks []Block) []string {
	var texts []string
	for _, b := range blocks {
		if b.Text != nil {
			texts = append(texts, b.Text.Text)
		}
	}
	return texts
}

func TestRenderReport_ContainsAllSections(t *testing.T) {
	renderer := NewRenderer()

	blocks := renderer.RenderReport(sampleReport())

	texts := blockTexts(blocks)
	require.NotEmpty(t, texts)
	joined := ""
	for _, text := range texts {
		joined += text + "\n"
	}
	assert.Contains(t, joined, "Past Week Analysis")
	assert.Contains(t, joined, "*Total Meetings:* 6")
	assert.Contains(t, joined, "*Total Meeting Time:* 3h 15m")
	assert.Contains(t, joined, "Standup: 5 meetings (1h 15m)")
	assert.Contains(t, joined, "Planning: 1 meetings (2h 0m)")
	assert.Contains(t, joined, "Key Insights")
	assert.Contains(t, joined, "Upcoming Week Preview")
	assert.Contains(t, joined, "Quarterly Review")
	assert.Contains(t, joined, "Focus Opportunities")
}

func TestRenderReport_OmitsNarrativeWhenAbsent(t *testing.T) {
	renderer := NewRenderer()
	r := sampleReport()
	r.Narrative = ""

	blocks := renderer.RenderReport(r)

	for _, text := range blockTexts(blocks) {
		assert.NotContains(t, text, "Written Summary")
	}
}

func TestRenderReport_IncludesNarrativeWhenPresent(t *testing.T) {
	renderer := NewRenderer()
	r := sampleReport()
	r.Narrative = "This week you had a balanced schedule."

	blocks := renderer.RenderReport(r)

	found := false
	for _, text := range blockTexts(blocks) {
		if text == "📝 *Written Summary*\nThis week you had a balanced schedule." {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRenderReport_Deterministic(t *testing.T) {
	renderer := NewRenderer()
	r := sampleReport()

	first := renderer.RenderReport(r)
	second := renderer.RenderReport(r)

	assert.Equal(t, first, second)
}

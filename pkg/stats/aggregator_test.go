package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/weekbrief/weekbrief/pkg/calendar"
	"github.com/weekbrief/weekbrief/pkg/category"
)

var location, _ = time.LoadLocation("Europe/Warsaw")

// Monday of an arbitrary week.
var weekStart = time.Date(2024, time.March, 4, 0, 0, 0, 0, location)

func meeting(id string, c category.Category, start time.Time, duration time.Duration) category.CategorizedEvent {
	return category.CategorizedEvent{
		Event: calendar.Event{
			Id:        id,
			Title:     string(c),
			StartTime: start,
			EndTime:   start.Add(duration),
			Duration:  duration,
		},
		Category: c,
	}
}

func TestAggregate_SplitsWorkingAndAfterHours(t *testing.T) {
	aggregator := NewAggregator(9, 17, location)

	// given - 08:00-10:00 with a 09:00-17:00 working window
	events := []category.CategorizedEvent{
		meeting("1", category.Technical, weekStart.Add(8*time.Hour), 2*time.Hour),
	}

	// when
	summary := aggregator.Aggregate(events, weekStart)

	// then - one hour on each side of the window boundary
	assert.Equal(t, time.Hour, summary.WorkingHoursTime)
	assert.Equal(t, time.Hour, summary.AfterHoursTime)
	assert.Equal(t, 2*time.Hour, summary.TotalTime)
}

func TestAggregate_EventInsideWorkingWindow(t *testing.T) {
	aggregator := NewAggregator(9, 17, location)

	events := []category.CategorizedEvent{
		meeting("1", category.Standup, weekStart.Add(9*time.Hour), 15*time.Minute),
	}

	summary := aggregator.Aggregate(events, weekStart)

	assert.Equal(t, 15*time.Minute, summary.WorkingHoursTime)
	assert.Equal(t, time.Duration(0), summary.AfterHoursTime)
}

func TestAggregate_EventSpanningMidnightIsSplitAcrossDays(t *testing.T) {
	aggregator := NewAggregator(9, 17, location)

	// 23:00 Monday to 01:00 Tuesday
	events := []category.CategorizedEvent{
		meeting("1", category.Technical, weekStart.Add(23*time.Hour), 2*time.Hour),
	}

	summary := aggregator.Aggregate(events, weekStart)

	assert.Equal(t, time.Hour, summary.Days[0].TotalTime)
	assert.Equal(t, time.Hour, summary.Days[1].TotalTime)
	assert.Equal(t, 2*time.Hour, summary.TotalTime)
	assert.Equal(t, time.Duration(0), summary.WorkingHoursTime)
	// The event itself is listed once, on its start day.
	assert.Equal(t, 1, summary.Days[0].MeetingCount)
	assert.Equal(t, 0, summary.Days[1].MeetingCount)
}

func TestAggregate_DurationConservation(t *testing.T) {
	aggregator := NewAggregator(9, 17, location)

	events := []category.CategorizedEvent{
		meeting("1", category.Standup, weekStart.Add(9*time.Hour), 15*time.Minute),
		meeting("2", category.Planning, weekStart.AddDate(0, 0, 1).Add(10*time.Hour), 2*time.Hour),
		meeting("3", category.Technical, weekStart.AddDate(0, 0, 2).Add(23*time.Hour), 3*time.Hour),
		meeting("4", category.Social, weekStart.AddDate(0, 0, 4).Add(12*time.Hour), 90*time.Minute),
	}

	summary := aggregator.Aggregate(events, weekStart)

	var wantTotal time.Duration
	for _, e := range events {
		wantTotal += e.Duration
	}

	var dayTotal time.Duration
	for _, day := range summary.Days {
		dayTotal += day.TotalTime
	}
	var categoryTotal time.Duration
	for _, cs := range summary.Categories {
		categoryTotal += cs.TotalTime
	}

	assert.Equal(t, wantTotal, summary.TotalTime)
	assert.Equal(t, wantTotal, dayTotal)
	assert.Equal(t, wantTotal, categoryTotal)
	assert.Equal(t, summary.TotalTime, summary.WorkingHoursTime+summary.AfterHoursTime)
}

func TestAggregate_CategoryTotalsAccumulateAcrossDays(t *testing.T) {
	aggregator := NewAggregator(9, 17, location)

	var events []category.CategorizedEvent
	for i := 0; i < 5; i++ {
		events = append(events, meeting(
			"standup-"+string(rune('a'+i)),
			category.Standup,
			weekStart.AddDate(0, 0, i).Add(9*time.Hour),
			15*time.Minute,
		))
	}

	summary := aggregator.Aggregate(events, weekStart)

	standups, ok := summary.CategoryTotal(category.Standup)
	assert.True(t, ok)
	assert.Equal(t, 5, standups.Count)
	assert.Equal(t, 75*time.Minute, standups.TotalTime)
}

func TestAggregate_SevenContiguousDays(t *testing.T) {
	aggregator := NewAggregator(9, 17, location)

	summary := aggregator.Aggregate(nil, weekStart)

	assert.Len(t, summary.Days, 7)
	for i, day := range summary.Days {
		assert.Equal(t, weekStart.AddDate(0, 0, i), day.Date)
		assert.Equal(t, time.Duration(0), day.TotalTime)
	}
	assert.Equal(t, weekStart, summary.StartDate)
	assert.Equal(t, weekStart.AddDate(0, 0, 7).Add(-time.Nanosecond), summary.EndDate)
}

func TestAggregate_IgnoresEventOutsideWeek(t *testing.T) {
	aggregator := NewAggregator(9, 17, location)

	events := []category.CategorizedEvent{
		meeting("late", category.Planning, weekStart.AddDate(0, 0, 9), time.Hour),
	}

	summary := aggregator.Aggregate(events, weekStart)

	assert.Equal(t, 0, summary.TotalEvents)
	assert.Equal(t, time.Duration(0), summary.TotalTime)
}

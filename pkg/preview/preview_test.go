package preview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/weekbrief/weekbrief/pkg/calendar"
	"github.com/weekbrief/weekbrief/pkg/category"
)

var weekStart = time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)

func upcoming(id string, start time.Time, duration time.Duration, attendees int) category.CategorizedEvent {
	return category.CategorizedEvent{
		Event: calendar.Event{
			Id:            id,
			Title:         id,
			StartTime:     start,
			EndTime:       start.Add(duration),
			Duration:      duration,
			AttendeeCount: attendees,
		},
		Category: category.Other,
	}
}

func TestBuild_RanksByDurationThenAttendeesThenStart(t *testing.T) {
	builder := NewBuilder(3, time.Hour, time.UTC)

	events := []category.CategorizedEvent{
		upcoming("short", weekStart.Add(9*time.Hour), 30*time.Minute, 10),
		upcoming("long", weekStart.Add(15*time.Hour), 2*time.Hour, 2),
		upcoming("crowded", weekStart.AddDate(0, 0, 1).Add(10*time.Hour), time.Hour, 8),
		upcoming("small", weekStart.AddDate(0, 0, 1).Add(12*time.Hour), time.Hour, 3),
	}

	preview := builder.Build(events, weekStart, 7)

	assert.Len(t, preview.KeyMeetings, 3)
	assert.Equal(t, "long", preview.KeyMeetings[0].Id)
	assert.Equal(t, "crowded", preview.KeyMeetings[1].Id)
	assert.Equal(t, "small", preview.KeyMeetings[2].Id)
}

func TestBuild_EqualDurationAndAttendeesBreaksTieByEarlierStart(t *testing.T) {
	builder := NewBuilder(2, time.Hour, time.UTC)

	later := upcoming("later", weekStart.AddDate(0, 0, 2).Add(14*time.Hour), time.Hour, 5)
	earlier := upcoming("earlier", weekStart.Add(9*time.Hour), time.Hour, 5)

	preview := builder.Build([]category.CategorizedEvent{later, earlier}, weekStart, 7)

	assert.Equal(t, "earlier", preview.KeyMeetings[0].Id)
	assert.Equal(t, "later", preview.KeyMeetings[1].Id)
}

func TestBuild_EmptyDayIsAlwaysAFocusDay(t *testing.T) {
	// Zero threshold still marks days with no scheduled time.
	builder := NewBuilder(5, 0, time.UTC)

	events := []category.CategorizedEvent{
		upcoming("busy", weekStart.Add(9*time.Hour), 4*time.Hour, 5),
	}

	preview := builder.Build(events, weekStart, 7)

	// Six empty days qualify, Monday does not.
	assert.Len(t, preview.FocusDays, 6)
	for _, day := range preview.FocusDays {
		assert.NotEqual(t, weekStart, day)
	}
}

func TestBuild_FocusDaysAreChronologicalAndUnique(t *testing.T) {
	builder := NewBuilder(5, time.Hour, time.UTC)

	events := []category.CategorizedEvent{
		upcoming("light", weekStart.Add(9*time.Hour), 30*time.Minute, 2),
		upcoming("heavy-1", weekStart.AddDate(0, 0, 1).Add(9*time.Hour), 3*time.Hour, 4),
		upcoming("heavy-2", weekStart.AddDate(0, 0, 1).Add(14*time.Hour), 2*time.Hour, 4),
	}

	preview := builder.Build(events, weekStart, 7)

	// Monday (30m <= 1h) and the five empty days; Tuesday is excluded.
	assert.Len(t, preview.FocusDays, 6)
	for i := 1; i < len(preview.FocusDays); i++ {
		assert.True(t, preview.FocusDays[i-1].Before(preview.FocusDays[i]))
	}
	seen := map[time.Time]bool{}
	for _, day := range preview.FocusDays {
		assert.False(t, seen[day])
		seen[day] = true
	}
}

func TestBuild_ThresholdIsInclusive(t *testing.T) {
	builder := NewBuilder(5, time.Hour, time.UTC)

	events := []category.CategorizedEvent{
		upcoming("exactly-one-hour", weekStart.Add(9*time.Hour), time.Hour, 2),
	}

	preview := builder.Build(events, weekStart, 1)

	assert.Len(t, preview.FocusDays, 1)
}

func TestBuild_IgnoresEventsOutsideWindow(t *testing.T) {
	builder := NewBuilder(5, time.Hour, time.UTC)

	events := []category.CategorizedEvent{
		upcoming("before", weekStart.AddDate(0, 0, -1), time.Hour, 2),
		upcoming("inside", weekStart.Add(9*time.Hour), time.Hour, 2),
		upcoming("after", weekStart.AddDate(0, 0, 8), time.Hour, 2),
	}

	preview := builder.Build(events, weekStart, 7)

	assert.Equal(t, 1, preview.TotalEvents)
	assert.Len(t, preview.Days, 7)
	assert.Equal(t, 1, preview.Days[0].MeetingCount)
}

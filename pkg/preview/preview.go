package preview

import (
	"sort"
	"time"

	"github.com/weekbrief/weekbrief/internal/utils"
	"github.com/weekbrief/weekbrief/pkg/category"
)

// DaySchedule is one forward-window day with its scheduled load.
type DaySchedule struct {
	Date         time.Time
	Events       []category.CategorizedEvent
	MeetingCount int
	TotalTime    time.Duration
}

// UpcomingPreview summarizes the forward-looking window: the highest-impact
// meetings and the days light enough to protect for focus work.
type UpcomingPreview struct {
	StartDate   time.Time
	EndDate     time.Time
	TotalEvents int
	Days        []DaySchedule
	KeyMeetings []category.CategorizedEvent
	FocusDays   []time.Time
}

// Builder ranks forward-looking events and detects focus days.
type Builder struct {
	maxKeyMeetings int
	focusThreshold time.Duration
	location       *time.Location
}

func NewBuilder(maxKeyMeetings int, focusThreshold time.Duration, location *time.Location) *Builder {
	return &Builder{
		maxKeyMeetings: maxKeyMeetings,
		focusThreshold: focusThreshold,
		location:       location,
	}
}

// Build produces the preview for [from, from+days). Key meetings are ranked
// by duration, then attendee count, then earlier start. A day whose total
// scheduled time is at or below the focus threshold is a focus day; days
// with nothing scheduled always qualify.
func (b *Builder) Build(events []category.CategorizedEvent, from time.Time, days int) UpcomingPreview {
	windowStart := utils.StartOfDay(from.In(b.location))
	windowEnd := windowStart.AddDate(0, 0, days)

	preview := UpcomingPreview{
		StartDate: windowStart,
		EndDate:   windowEnd.Add(-time.Nanosecond),
	}

	schedule := make([]DaySchedule, days)
	for i := range schedule {
		schedule[i].Date = windowStart.AddDate(0, 0, i)
	}

	for _, event := range events {
		if event.StartTime.Before(windowStart) || !event.StartTime.Before(windowEnd) {
			continue
		}
		for i := range schedule {
			if utils.SameDay(event.StartTime, schedule[i].Date, b.location) {
				schedule[i].Events = append(schedule[i].Events, event)
				schedule[i].MeetingCount++
				schedule[i].TotalTime += event.Duration
				preview.TotalEvents++
				break
			}
		}
	}

	preview.Days = schedule
	preview.KeyMeetings = b.rankKeyMeetings(schedule)

	for _, day := range schedule {
		if day.TotalTime <= b.focusThreshold {
			preview.FocusDays = append(preview.FocusDays, day.Date)
		}
	}

	return preview
}

func (b *Builder) rankKeyMeetings(schedule []DaySchedule) []category.CategorizedEvent {
	var all []category.CategorizedEvent
	for _, day := range schedule {
		all = append(all, day.Events...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Duration != all[j].Duration {
			return all[i].Duration > all[j].Duration
		}
		if all[i].AttendeeCount != all[j].AttendeeCount {
			return all[i].AttendeeCount > all[j].AttendeeCount
		}
		return all[i].StartTime.Before(all[j].StartTime)
	})

	if len(all) > b.maxKeyMeetings {
		all = all[:b.maxKeyMeetings]
	}
	return all
}

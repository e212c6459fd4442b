package stats

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/weekbrief/weekbrief/internal/utils"
	"github.com/weekbrief/weekbrief/pkg/category"
)

const daysPerWeek = 7

// Aggregator buckets categorized events by calendar date and splits each
// event's time into working-hours and after-hours portions.
type Aggregator struct {
	workStart int
	workEnd   int
	location  *time.Location
}

func NewAggregator(workStart int, workEnd int, location *time.Location) *Aggregator {
	return &Aggregator{
		workStart: workStart,
		workEnd:   workEnd,
		location:  location,
	}
}

// Aggregate builds the WeekSummary for the seven days starting at weekStart
// (midnight in the target timezone). The sum of all day totals equals the
// sum of all per-category totals; portions of an event outside the analyzed
// week are not counted anywhere.
func (a *Aggregator) Aggregate(events []category.CategorizedEvent, weekStart time.Time) WeekSummary {
	weekStart = utils.StartOfDay(weekStart.In(a.location))
	weekEnd := weekStart.AddDate(0, 0, daysPerWeek)

	days := make([]DayBucket, daysPerWeek)
	for i := range days {
		days[i].Date = weekStart.AddDate(0, 0, i)
	}

	categoryTime := make(map[category.Category]time.Duration)
	categoryCount := make(map[category.Category]int)

	summary := WeekSummary{
		StartDate: weekStart,
		EndDate:   weekEnd.Add(-time.Nanosecond),
	}

	for _, event := range events {
		if !event.StartTime.Before(weekEnd) || !event.EndTime.After(weekStart) {
			log.Debugf("event %q (%s) lies outside the analyzed week, skipping", event.Title, event.Id)
			continue
		}

		summary.TotalEvents++
		categoryCount[event.Category]++

		startIdx := a.dayIndex(event.StartTime, weekStart)
		days[startIdx].Events = append(days[startIdx].Events, event)
		days[startIdx].MeetingCount++

		// Split the event's span across the days it covers.
		for i := range days {
			dayStart := days[i].Date
			dayEnd := dayStart.AddDate(0, 0, 1)
			dayTime := overlap(event.StartTime, event.EndTime, dayStart, dayEnd)
			if dayTime == 0 {
				continue
			}

			windowStart := time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), a.workStart, 0, 0, 0, a.location)
			windowEnd := time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), a.workEnd, 0, 0, 0, a.location)
			working := overlap(event.StartTime, event.EndTime, maxTime(windowStart, dayStart), minTime(windowEnd, dayEnd))

			days[i].TotalTime += dayTime
			days[i].WorkingHoursTime += working
			days[i].AfterHoursTime += dayTime - working

			categoryTime[event.Category] += dayTime
		}
	}

	for _, day := range days {
		summary.TotalTime += day.TotalTime
		summary.WorkingHoursTime += day.WorkingHoursTime
		summary.AfterHoursTime += day.AfterHoursTime
	}

	// Stable category order, only categories that occurred.
	for _, c := range category.AllCategories {
		if categoryCount[c] == 0 {
			continue
		}
		summary.Categories = append(summary.Categories, CategoryStats{
			Category:  c,
			Count:     categoryCount[c],
			TotalTime: categoryTime[c],
		})
	}

	summary.Days = days
	return summary
}

// dayIndex returns the bucket index for the event's start date, clamped to
// the analyzed week.
func (a *Aggregator) dayIndex(t time.Time, weekStart time.Time) int {
	for i := 0; i < daysPerWeek-1; i++ {
		if t.Before(weekStart.AddDate(0, 0, i+1)) {
			return i
		}
	}
	return daysPerWeek - 1
}

func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := maxTime(aStart, bStart)
	end := minTime(aEnd, bEnd)
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

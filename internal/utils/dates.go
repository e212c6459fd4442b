package utils

import "time"

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the most recent firstDay at midnight, not after t.
func StartOfWeek(t time.Time, firstDay time.Weekday) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) - int(firstDay) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// PreviousWeekStart returns the start of the week before the one containing t.
func PreviousWeekStart(t time.Time, firstDay time.Weekday) time.Time {
	return StartOfWeek(t, firstDay).AddDate(0, 0, -7)
}

func SameDay(date1, date2 time.Time, loc *time.Location) bool {
	year1, month1, day1 := date1.In(loc).Date()
	year2, month2, day2 := date2.In(loc).Date()
	return year1 == year2 && month1 == month2 && day1 == day2
}

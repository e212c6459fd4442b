package calendar

import (
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
)

// Filters controls which raw events survive normalization.
type Filters struct {
	IncludePrivate bool
	IncludeAllDay  bool
}

// Normalizer converts raw provider events into normalized Events in the
// target timezone. Malformed events are dropped and logged, never failing
// the whole batch.
type Normalizer struct {
	filters  Filters
	location *time.Location
}

func NewNormalizer(filters Filters, location *time.Location) *Normalizer {
	return &Normalizer{
		filters:  filters,
		location: location,
	}
}

// Normalize filters, converts, and sorts raw events by start time.
func (n *Normalizer) Normalize(rawEvents []RawEvent) []Event {
	events := make([]Event, 0, len(rawEvents))
	for _, raw := range rawEvents {
		if raw.Cancelled {
			log.Tracef("skipping cancelled event: %s", raw.Title)
			continue
		}
		if raw.Private && !n.filters.IncludePrivate {
			log.Tracef("skipping private event: %s", raw.Id)
			continue
		}
		if raw.AllDay && !n.filters.IncludeAllDay {
			log.Tracef("skipping all-day event: %s", raw.Title)
			continue
		}
		if raw.EndTime.Before(raw.StartTime) {
			log.Warnf("dropping malformed event %q (%s): end %s before start %s",
				raw.Title, raw.Id, raw.EndTime, raw.StartTime)
			continue
		}

		start := raw.StartTime.In(n.location)
		end := raw.EndTime.In(n.location)
		duration := end.Sub(start)
		if raw.AllDay {
			duration = roundToWholeDays(duration)
		}

		events = append(events, Event{
			Id:            raw.Id,
			Title:         raw.Title,
			Description:   raw.Description,
			StartTime:     start,
			EndTime:       end,
			Duration:      duration,
			AllDay:        raw.AllDay,
			Private:       raw.Private,
			AttendeeCount: raw.AttendeeCount,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})

	return events
}

func roundToWholeDays(d time.Duration) time.Duration {
	days := (d + 12*time.Hour) / (24 * time.Hour)
	if days < 1 {
		days = 1
	}
	return days * 24 * time.Hour
}

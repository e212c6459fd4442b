package google

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/weekbrief/weekbrief/pkg/calendar"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CalendarSource fetches raw events from the Google Calendar API and adapts
// them to the engine's provider-neutral shape.
type CalendarSource struct {
	auth     *Auth
	location *time.Location
}

func NewCalendarSource(auth *Auth, location *time.Location) *CalendarSource {
	return &CalendarSource{
		auth:     auth,
		location: location,
	}
}

func (s *CalendarSource) FetchEvents(ctx context.Context, calendarId string, from time.Time, to time.Time) ([]calendar.RawEvent, error) {
	service, err := s.prepareService(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", calendar.ErrSourceUnavailable, err)
	}

	log.Infof("Fetching events from %s to %s", from.Format(time.RFC3339), to.Format(time.RFC3339))
	googleEvents, err := service.Events.List(calendarId).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		log.Errorf("unable to retrieve events from Google Calendar: %v", err)
		return nil, fmt.Errorf("%w: %v", calendar.ErrSourceUnavailable, err)
	}
	log.Infof("Retrieved %d events", len(googleEvents.Items))

	return s.googleEventsToRawEvents(googleEvents.Items), nil
}

func (s *CalendarSource) prepareService(ctx context.Context) (*gcal.Service, error) {
	client, err := s.auth.getClient(ctx)
	if err != nil {
		return nil, err
	}
	service, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to create Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}
	return service, nil
}

func (s *CalendarSource) googleEventsToRawEvents(googleEvents []*gcal.Event) []calendar.RawEvent {
	events := make([]calendar.RawEvent, 0, len(googleEvents))
	for _, item := range googleEvents {
		startTime, endTime, allDay, err := parseEventTimes(item, s.location)
		if err != nil {
			log.Warnf("skipping Google event %q with unparseable times: %v", item.Summary, err)
			continue
		}

		events = append(events, calendar.RawEvent{
			Id:            item.Id,
			Title:         item.Summary,
			Description:   item.Description,
			StartTime:     startTime,
			EndTime:       endTime,
			AllDay:        allDay,
			Private:       item.Visibility == "private",
			Cancelled:     item.Status == "cancelled",
			AttendeeCount: len(item.Attendees),
		})
	}
	return events
}

// parseEventTimes handles the two Google representations: timed events carry
// DateTime, all-day events carry a bare Date.
func parseEventTimes(item *gcal.Event, location *time.Location) (time.Time, time.Time, bool, error) {
	if item.Start == nil || item.End == nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("event has no start or end")
	}

	if item.Start.DateTime != "" {
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return time.Time{}, time.Time{}, false, err
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return time.Time{}, time.Time{}, false, err
		}
		return start, end, false, nil
	}

	start, err := time.ParseInLocation("2006-01-02", item.Start.Date, location)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	end, err := time.ParseInLocation("2006-01-02", item.End.Date, location)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	return start, end, true, nil
}

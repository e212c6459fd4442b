package calendar

import (
	"context"
	"fmt"
	"time"
)

var ErrSourceUnavailable = fmt.Errorf("calendar source is unavailable")

// RawEvent is a provider event record before normalization. Adapters
// (pkg/google) translate their wire format into this shape.
type RawEvent struct {
	Id            string
	Title         string
	Description   string
	StartTime     time.Time
	EndTime       time.Time
	AllDay        bool
	Private       bool
	Cancelled     bool
	AttendeeCount int
}

// Event is a normalized calendar event. Immutable once produced by the
// Normalizer; later pipeline stages only read it.
type Event struct {
	Id            string
	Title         string
	Description   string
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	AllDay        bool
	Private       bool
	AttendeeCount int
}

// EventSource provides raw events for a time range. A failed fetch aborts
// the current analysis run; retrying belongs to the outer trigger loop.
type EventSource interface {
	FetchEvents(ctx context.Context, calendarId string, from time.Time, to time.Time) ([]RawEvent, error)
}

package calendar

import (
	"context"
	"sort"
	"time"
)

// StubSource is an in-memory EventSource for tests.
type StubSource struct {
	data map[string]RawEvent
	err  error
}

func NewStubSource() *StubSource {
	return &StubSource{data: map[string]RawEvent{}}
}

func (s *StubSource) AddEvent(event RawEvent) {
	s.data[event.Id] = event
}

// FailWith makes every subsequent fetch return the given error.
func (s *StubSource) FailWith(err error) {
	s.err = err
}

func (s *StubSource) FetchEvents(_ context.Context, _ string, from time.Time, to time.Time) ([]RawEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	var events []RawEvent
	for _, event := range s.data {
		if event.StartTime.Before(to) && event.EndTime.After(from) {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})
	return events, nil
}

func (s *StubSource) Cleanup() {
	s.data = map[string]RawEvent{}
	s.err = nil
}

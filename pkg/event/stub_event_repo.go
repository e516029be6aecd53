package event

import (
	"context"
	"sync"

	"github.com/sheetcal/sheetcal/pkg/calendar"
)

type StubEventRepository struct {
	mu        sync.Mutex
	Events    []Event
	AppendErr error
	loads     int
}

func (s *StubEventRepository) Append(_ context.Context, date calendar.DateKey, name string, time string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AppendErr != nil {
		return s.AppendErr
	}
	s.Events = append(s.Events, Event{Date: date, Name: name, Time: time})
	return nil
}

func (s *StubEventRepository) LoadAll(_ context.Context) Events {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	events := Events{}
	for _, e := range s.Events {
		events[e.Date] = append(events[e.Date], e)
	}
	return events
}

func (s *StubEventRepository) Appended() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.Events...)
}

func (s *StubEventRepository) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

func (s *StubEventRepository) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = []Event{}
	s.AppendErr = nil
	s.loads = 0
}

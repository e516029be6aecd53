package event

import (
	"github.com/sheetcal/sheetcal/pkg/calendar"
)

// Event is one row of the events table. Time is free text and is not
// checked against a clock format.
type Event struct {
	Date calendar.DateKey
	Name string
	Time string
}

// Events groups events by day, keeping table order within a day.
type Events map[calendar.DateKey][]Event

// Marked reports which days have at least one event.
func (e Events) Marked() map[calendar.DateKey]bool {
	marked := make(map[calendar.DateKey]bool, len(e))
	for key, events := range e {
		if len(events) > 0 {
			marked[key] = true
		}
	}
	return marked
}

package event_bus

// CalendarEventAdded is published after an event row was appended.
type CalendarEventAdded struct {
	ChatId  int64
	DateKey string
	Name    string
	Time    string
}

// DateSelected is published after a chat picked a date.
type DateSelected struct {
	ChatId  int64
	DateKey string
}

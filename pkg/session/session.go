package session

import (
	"context"
	"time"

	"github.com/sheetcal/sheetcal/pkg/calendar"
)

// Selection is the date a chat picked last, and when it did.
type Selection struct {
	Date       calendar.Date
	SelectedAt time.Time
}

// Store remembers the selected date per chat. Writes are last-write-wins and
// selections never expire.
type Store interface {
	SetSelectedDate(ctx context.Context, chatId int64, date calendar.Date) error
	GetSelectedDate(ctx context.Context, chatId int64) (Selection, bool, error)
}

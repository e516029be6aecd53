package bot

import (
	"context"

	"github.com/sheetcal/sheetcal/pkg/calendar"
)

// Message is an outbound chat message. Text may use <b> markup; Buttons
// is an optional grid of rows, each button carrying a callback token.
type Message struct {
	Text    string
	Buttons [][]calendar.Button
}

type Messenger interface {
	SendMessage(ctx context.Context, chatId int64, msg Message) error
}

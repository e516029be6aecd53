package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sheetcal/sheetcal/pkg/bot"
)

type Messenger struct {
	client Client
}

func NewMessenger(client Client) *Messenger {
	return &Messenger{client: client}
}

func (m *Messenger) SendMessage(_ context.Context, chatId int64, msg bot.Message) error {
	out := tgbotapi.NewMessage(chatId, msg.Text)
	out.ParseMode = tgbotapi.ModeHTML
	if len(msg.Buttons) > 0 {
		out.ReplyMarkup = keyboard(msg)
	}

	if _, err := m.client.Send(out); err != nil {
		return fmt.Errorf("unable to send message to chat %d: %w", chatId, err)
	}
	return nil
}

func keyboard(msg bot.Message) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(msg.Buttons))
	for _, buttons := range msg.Buttons {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(buttons))
		for _, b := range buttons {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Payload))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

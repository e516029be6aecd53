package bot

import (
	"context"
	"sync"
)

type SentMessage struct {
	ChatId int64
	Message
}

type MessengerStub struct {
	mu      sync.Mutex
	sent    []SentMessage
	SendErr error
}

func NewMessengerStub() *MessengerStub {
	return &MessengerStub{}
}

func (m *MessengerStub) SendMessage(_ context.Context, chatId int64, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return m.SendErr
	}
	m.sent = append(m.sent, SentMessage{ChatId: chatId, Message: msg})
	return nil
}

func (m *MessengerStub) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMessage(nil), m.sent...)
}

func (m *MessengerStub) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	texts := make([]string, 0, len(m.sent))
	for _, s := range m.sent {
		texts = append(texts, s.Text)
	}
	return texts
}

func (m *MessengerStub) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
	m.SendErr = nil
}

package telegram

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// RawRequest is a Bot API call made through MakeRequest.
type RawRequest struct {
	Endpoint string
	Params   tgbotapi.Params
}

type ClientStub struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	raw      []RawRequest
	updates  chan tgbotapi.Update
	stopped  bool
	SendErr  error
}

func NewClientStub() *ClientStub {
	return &ClientStub{updates: make(chan tgbotapi.Update, 16)}
}

func (c *ClientStub) Send(chattable tgbotapi.Chattable) (tgbotapi.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SendErr != nil {
		return tgbotapi.Message{}, c.SendErr
	}
	c.sent = append(c.sent, chattable)
	return tgbotapi.Message{}, nil
}

func (c *ClientStub) Request(chattable tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, chattable)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (c *ClientStub) MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.raw = append(c.raw, RawRequest{Endpoint: endpoint, Params: params})
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (c *ClientStub) GetUpdatesChan(_ tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return c.updates
}

func (c *ClientStub) StopReceivingUpdates() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
}

// Deliver feeds an update to the polling loop.
func (c *ClientStub) Deliver(update tgbotapi.Update) {
	c.updates <- update
}

func (c *ClientStub) Sent() []tgbotapi.Chattable {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]tgbotapi.Chattable(nil), c.sent...)
}

func (c *ClientStub) Requests() []tgbotapi.Chattable {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]tgbotapi.Chattable(nil), c.requests...)
}

func (c *ClientStub) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

func (c *ClientStub) RawRequests() []RawRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]RawRequest(nil), c.raw...)
}

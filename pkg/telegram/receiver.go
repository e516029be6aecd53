package telegram

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/sheetcal/sheetcal/pkg/bot"
	log "github.com/sirupsen/logrus"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, u bot.Update) bool
}

// Receiver turns Telegram updates into dispatcher updates. Updates of one
// chat are handled in arrival order; a handler always runs to completion
// even when the receiving context is cancelled.
type Receiver struct {
	client     Client
	dispatcher Dispatcher
	queue      *ChatQueue
	secret     string
}

// NewReceiver builds a receiver. Webhook deliveries must carry
// webhookSecret in the SecretTokenHeader; with an empty secret every
// delivery is refused.
func NewReceiver(client Client, dispatcher Dispatcher, webhookSecret string) *Receiver {
	return &Receiver{client: client, dispatcher: dispatcher, queue: NewChatQueue(), secret: webhookSecret}
}

// SecretTokenHeader carries the secret_token given to setWebhook.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// Poll long-polls for updates until ctx is done, then waits for in-flight
// handlers.
func (r *Receiver) Poll(ctx context.Context, timeout int) error {
	if _, err := r.client.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("unable to remove webhook before polling: %w", err)
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = timeout
	updates := r.client.GetUpdatesChan(updateConfig)
	log.Info("Bot is running, polling for updates")

	for {
		select {
		case <-ctx.Done():
			r.client.StopReceivingUpdates()
			r.queue.Wait()
			return nil
		case update, ok := <-updates:
			if !ok {
				r.queue.Wait()
				return nil
			}
			r.Receive(ctx, update)
		}
	}
}

// RegisterWebhook points Telegram at url and hands it the receiver's secret.
func (r *Receiver) RegisterWebhook(url string) error {
	if r.secret == "" {
		return fmt.Errorf("refusing to register webhook %s without a secret", url)
	}
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("invalid webhook url %s: %w", url, err)
	}

	params := tgbotapi.Params{}
	params["url"] = wh.URL.String()
	params["secret_token"] = r.secret
	if _, err := r.client.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("unable to register webhook: %w", err)
	}
	log.Infof("Registered webhook %s", url)
	return nil
}

// ServeHTTP accepts webhook deliveries. The update is queued and Telegram
// gets its 200 right away.
func (r *Receiver) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if !r.validSecret(req.Header.Get(SecretTokenHeader)) {
		log.Warnf("rejected webhook delivery from %s: bad secret token", req.RemoteAddr)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(req.Body).Decode(&update); err != nil {
		log.Warnf("unable to decode webhook update: %v", err)
		http.Error(w, "invalid update", http.StatusBadRequest)
		return
	}
	r.Receive(req.Context(), update)
	w.WriteHeader(http.StatusOK)
}

func (r *Receiver) validSecret(token string) bool {
	if r.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(r.secret)) == 1
}

// Wait blocks until queued updates are handled.
func (r *Receiver) Wait() {
	r.queue.Wait()
}

// Receive queues one update for its chat. Updates the bot does not handle
// are dropped.
func (r *Receiver) Receive(ctx context.Context, update tgbotapi.Update) {
	u, callbackId, ok := toUpdate(update)
	if !ok {
		log.Tracef("ignoring update %d", update.UpdateID)
		return
	}

	ctx = context.WithoutCancel(ctx)
	r.queue.Submit(u.ChatId, func() {
		logger := log.WithFields(log.Fields{"update": uuid.NewString(), "chat": u.ChatId})
		logger.Debugf("handling update kind %d", u.Kind)

		authorized := r.dispatcher.Dispatch(ctx, u)
		if !authorized {
			logger.Debug("dropped update from unauthorized chat")
			return
		}
		if callbackId != "" {
			if _, err := r.client.Request(tgbotapi.NewCallback(callbackId, "")); err != nil {
				logger.Warnf("unable to answer callback query: %v", err)
			}
		}
	})
}

func toUpdate(update tgbotapi.Update) (bot.Update, string, bool) {
	if q := update.CallbackQuery; q != nil {
		if q.Message == nil || q.Message.Chat == nil {
			return bot.Update{}, "", false
		}
		return bot.Update{Kind: bot.ButtonUpdate, ChatId: q.Message.Chat.ID, Text: q.Data}, q.ID, true
	}

	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return bot.Update{}, "", false
	}
	if msg.IsCommand() && bot.IsCommand(msg.Command()) {
		return bot.Update{Kind: bot.CommandUpdate, ChatId: msg.Chat.ID, Text: msg.Command()}, "", true
	}
	return bot.Update{Kind: bot.TextUpdate, ChatId: msg.Chat.ID, Text: msg.Text}, "", true
}

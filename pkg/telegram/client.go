package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sheetcal/sheetcal/internal/config"
	log "github.com/sirupsen/logrus"
)

// Client is the part of the Bot API the transport uses. *tgbotapi.BotAPI
// satisfies it.
type Client interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

func NewClient(cfg config.Telegram) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to Telegram: %w", err)
	}
	api.Debug = cfg.Debug
	log.Infof("Authorized on Telegram as @%s", api.Self.UserName)
	return api, nil
}

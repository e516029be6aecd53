package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sheetcal/sheetcal/internal/config"
	"github.com/sheetcal/sheetcal/internal/database"
	"github.com/sheetcal/sheetcal/internal/event_bus"
	"github.com/sheetcal/sheetcal/internal/utils"
	"github.com/sheetcal/sheetcal/pkg/access"
	"github.com/sheetcal/sheetcal/pkg/bot"
	"github.com/sheetcal/sheetcal/pkg/event"
	"github.com/sheetcal/sheetcal/pkg/session"
	"github.com/sheetcal/sheetcal/pkg/sheets"
	"github.com/sheetcal/sheetcal/pkg/telegram"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds the wired components of the bot.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	Store           sheets.Store
	EventRepository event.EventRepository
	Gate            *access.Gate
	Sessions        session.Store
	DB              *pgxpool.Pool

	TelegramClient telegram.Client
	Messenger      *telegram.Messenger
	Dispatcher     *bot.Dispatcher
	Receiver       *telegram.Receiver
}

// BuildDependencies wires every component on top of an already connected
// tabular store and Telegram client.
func BuildDependencies(ctx context.Context, cfg config.Application, store sheets.Store, client telegram.Client) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Clock = utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()
	subscribeAuditLog(deps.EventBus)

	deps.Store = store
	deps.EventRepository = event.NewSheetsEventRepository(store, cfg.Sheets.EventsTable, cfg.Sheets.EventsRange)
	deps.Gate = access.NewGate(store, cfg.Sheets.AccessTable, cfg.Sheets.AccessRange, cfg.Access.CacheTTL, deps.Clock)

	switch cfg.Session.Backend {
	case config.SessionMemory, "":
		deps.Sessions = session.NewMemoryStore(deps.Clock)
	case config.SessionPostgres:
		if err := database.Migrate(ctx, cfg.Database); err != nil {
			return nil, err
		}
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		deps.DB = db
		deps.Sessions = session.NewPostgresStore(db, deps.Clock)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
	log.Infof("Using %s session store", cfg.Session.Backend)

	deps.TelegramClient = client
	deps.Messenger = telegram.NewMessenger(client)
	deps.Dispatcher = bot.NewDispatcher(deps.Gate, deps.EventRepository, deps.Sessions, deps.Messenger,
		deps.EventBus, deps.Clock, cfg.Location())
	deps.Receiver = telegram.NewReceiver(client, deps.Dispatcher, webhookSecret(cfg.Telegram))

	return deps, nil
}

func webhookSecret(cfg config.Telegram) string {
	if cfg.Mode != config.ModeWebhook {
		return ""
	}
	if cfg.WebhookSecret != "" {
		return cfg.WebhookSecret
	}
	log.Info("No webhook secret configured, generating one for this run")
	return uuid.NewString()
}

func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}

func subscribeAuditLog(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped(bus, event_bus.CalendarEventAddedType, func(_ context.Context, e event_bus.CalendarEventAdded) error {
		log.WithField("chat", e.ChatId).Infof("event added for %s", e.DateKey)
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.DateSelectedType, func(_ context.Context, e event_bus.DateSelected) error {
		log.WithField("chat", e.ChatId).Debugf("date %s selected", e.DateKey)
		return nil
	})
}

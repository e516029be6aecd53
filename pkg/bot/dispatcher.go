package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/sheetcal/sheetcal/internal/event_bus"
	"github.com/sheetcal/sheetcal/internal/utils"
	"github.com/sheetcal/sheetcal/pkg/calendar"
	"github.com/sheetcal/sheetcal/pkg/callback"
	"github.com/sheetcal/sheetcal/pkg/event"
	"github.com/sheetcal/sheetcal/pkg/session"
	log "github.com/sirupsen/logrus"
)

const (
	WelcomeText       = "Welcome! Use /calendar to see the current month's calendar."
	SelectDateFirst   = "Please select a date first."
	InvalidFormatText = "Invalid format. Please use: Event Name, HH:MM"
	AddEventPrompt    = "Would you like to add an event? Reply with Event Name, HH:MM"
	NoEventsText      = "No events scheduled."
	DeleteUnsupported = "Deleting events is not supported yet."
	SessionReadFailed = "Error reading the selected date. Please try again later."

	eventSeparator = ","
)

var ErrMissingSeparator = errors.New("event name and time must be separated by a comma")

type UpdateKind int

const (
	CommandUpdate UpdateKind = iota
	TextUpdate
	ButtonUpdate
)

// Update is one inbound transport event. For commands Text is the command
// name without the leading slash; for button presses it is the callback token.
type Update struct {
	Kind   UpdateKind
	ChatId int64
	Text   string
}

var commands = map[string]bool{"start": true, "calendar": true, "today": true, "time": true}

// IsCommand reports whether name is a command the dispatcher handles. Other
// slash-prefixed input is free text.
func IsCommand(name string) bool {
	return commands[name]
}

type Authorizer interface {
	IsAuthorized(ctx context.Context, chatId int64) bool
}

// Dispatcher routes updates to the calendar, session and event components.
// It holds no per-chat state of its own and is safe for concurrent use;
// ordering of updates within one chat is the caller's concern.
type Dispatcher struct {
	gate      Authorizer
	events    event.EventRepository
	sessions  session.Store
	messenger Messenger
	bus       *event_bus.EventBus
	clock     utils.Clock
	location  *time.Location
}

func NewDispatcher(
	gate Authorizer,
	events event.EventRepository,
	sessions session.Store,
	messenger Messenger,
	bus *event_bus.EventBus,
	clock utils.Clock,
	location *time.Location,
) *Dispatcher {
	return &Dispatcher{
		gate:      gate,
		events:    events,
		sessions:  sessions,
		messenger: messenger,
		bus:       bus,
		clock:     clock,
		location:  location,
	}
}

// Dispatch handles a single update. It returns false when the chat is not
// authorized, in which case nothing was sent.
func (d *Dispatcher) Dispatch(ctx context.Context, u Update) bool {
	if !d.gate.IsAuthorized(ctx, u.ChatId) {
		return false
	}

	switch u.Kind {
	case CommandUpdate:
		d.handleCommand(ctx, u.ChatId, u.Text)
	case TextUpdate:
		d.handleText(ctx, u.ChatId, u.Text)
	case ButtonUpdate:
		d.handleButton(ctx, u.ChatId, u.Text)
	default:
		log.Warnf("unknown update kind %d for chat %d", u.Kind, u.ChatId)
	}
	return true
}

func (d *Dispatcher) handleCommand(ctx context.Context, chatId int64, command string) {
	switch command {
	case "start":
		d.send(ctx, chatId, Message{Text: WelcomeText})
	case "calendar", "today":
		now := d.now()
		d.sendCalendar(ctx, chatId, now.Year(), int(now.Month())-1)
	case "time":
		now := d.now()
		d.send(ctx, chatId, Message{
			Text: fmt.Sprintf("Current time is: %s %s", now.Format(time.TimeOnly), calendar.DateOf(now).Key()),
		})
	default:
		d.handleText(ctx, chatId, "/"+command)
	}
}

func (d *Dispatcher) handleText(ctx context.Context, chatId int64, text string) {
	selection, ok, err := d.sessions.GetSelectedDate(ctx, chatId)
	if err != nil {
		log.Errorf("unable to read selected date for chat %d: %v", chatId, err)
		d.send(ctx, chatId, Message{Text: SessionReadFailed})
		return
	}
	if !ok {
		d.send(ctx, chatId, Message{Text: SelectDateFirst})
		return
	}

	name, at, err := parseEventInput(text)
	if err != nil {
		log.Debugf("rejected event input from chat %d: %v", chatId, err)
		d.send(ctx, chatId, Message{Text: InvalidFormatText})
		return
	}

	key := selection.Date.Key()
	if err := d.events.Append(ctx, key, name, at); err != nil {
		d.send(ctx, chatId, Message{Text: fmt.Sprintf("Error saving event for %s. Please try again later.", key)})
		return
	}

	d.publish(ctx, event_bus.CalendarEventAddedType, event_bus.CalendarEventAdded{
		ChatId: chatId, DateKey: string(key), Name: name, Time: at,
	})
	d.send(ctx, chatId, Message{
		Text: fmt.Sprintf("✅ Event saved for %s: %s at %s", key, html.EscapeString(name), html.EscapeString(at)),
	})
}

func (d *Dispatcher) handleButton(ctx context.Context, chatId int64, token string) {
	action, err := callback.Decode(token)
	if err != nil {
		log.Warnf("ignoring button press from chat %d: %v", chatId, err)
		return
	}

	switch action.Kind {
	case callback.KindPrev:
		d.sendCalendar(ctx, chatId, action.Year, action.Month-1)
	case callback.KindNext:
		d.sendCalendar(ctx, chatId, action.Year, action.Month+1)
	case callback.KindToday:
		d.sendEventsForDate(ctx, chatId, calendar.DateOf(d.now()))
	case callback.KindDate:
		date := calendar.NewDate(action.Year, time.Month(action.Month), action.Day)
		if err := d.sessions.SetSelectedDate(ctx, chatId, date); err != nil {
			d.send(ctx, chatId, Message{Text: fmt.Sprintf("Error selecting date %s. Please try again later.", date.Key())})
			return
		}
		d.publish(ctx, event_bus.DateSelectedType, event_bus.DateSelected{ChatId: chatId, DateKey: string(date.Key())})
		d.sendEventsForDate(ctx, chatId, date)
	case callback.KindDelete:
		d.send(ctx, chatId, Message{Text: DeleteUnsupported})
	case callback.KindIgnore:
	}
}

func (d *Dispatcher) sendCalendar(ctx context.Context, chatId int64, year, month int) {
	view := calendar.Render(year, month, d.events.LoadAll(ctx).Marked())
	d.send(ctx, chatId, Message{
		Text:    fmt.Sprintf("Here is the calendar for %s:", view.Title()),
		Buttons: view.Rows,
	})
}

func (d *Dispatcher) sendEventsForDate(ctx context.Context, chatId int64, date calendar.Date) {
	key := date.Key()
	d.send(ctx, chatId, Message{Text: FormatEvents(key, d.events.LoadAll(ctx)[key])})
	d.send(ctx, chatId, Message{Text: AddEventPrompt})
}

// FormatEvents renders the event list of one day.
func FormatEvents(key calendar.DateKey, events []event.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 <b>Events for %s:</b>\n", key)
	if len(events) == 0 {
		b.WriteString(NoEventsText)
		return b.String()
	}
	for i, e := range events {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "• <b>%s</b> at %s", html.EscapeString(e.Name), html.EscapeString(e.Time))
	}
	return b.String()
}

// parseEventInput splits "name, time" on the first comma.
func parseEventInput(text string) (string, string, error) {
	name, at, found := strings.Cut(text, eventSeparator)
	if !found {
		return "", "", ErrMissingSeparator
	}
	return strings.TrimSpace(name), strings.TrimSpace(at), nil
}

func (d *Dispatcher) now() time.Time {
	return d.clock.Now().In(d.location)
}

func (d *Dispatcher) send(ctx context.Context, chatId int64, msg Message) {
	if err := d.messenger.SendMessage(ctx, chatId, msg); err != nil {
		log.Errorf("unable to send message to chat %d: %v", chatId, err)
	}
}

func (d *Dispatcher) publish(ctx context.Context, eventType event_bus.EventType, payload any) {
	if d.bus == nil {
		return
	}
	if err := d.bus.Publish(event_bus.NewEvent(ctx, eventType, d.clock.Now(), payload)); err != nil {
		log.Warnf("unable to publish %s: %v", eventType, err)
	}
}

package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"

	"votebot/entity"
	"votebot/internal/lib/sl"
)

// MessageHandler receives every text message the bot is sent. Username is
// the Telegram chat id rendered as digits, the same form it has in storage.
type MessageHandler interface {
	IncomingMessage(ctx context.Context, username, body, userType string) error
}

// Bot runs the Telegram side of the votebot: a long-polling listener that
// feeds incoming text into the conversation engine, plus outbound delivery.
type Bot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string
	adminId     int64
	handler     MessageHandler
}

func NewBot(botName, apiKey string, adminId int64, log *slog.Logger) (*Bot, error) {
	b := &Bot{
		log:         log.With(sl.Module("telegram")),
		adminId:     adminId,
		botUsername: botName,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %w", err)
	}
	b.api = api

	return b, nil
}

func (b *Bot) SetHandler(handler MessageHandler) {
	b.handler = handler
}

// Start begins long polling. Blocks until the updater stops.
func (b *Bot) Start() error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(bot *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			b.log.Error("handling update", sl.Err(err))
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})

	dispatcher.AddHandler(handlers.NewMessage(nil, b.onMessage))

	updater := ext.NewUpdater(dispatcher, nil)

	err := updater.StartPolling(b.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("starting polling: %w", err)
	}

	updater.Idle()
	return nil
}

func (b *Bot) onMessage(bot *tgbotapi.Bot, ctx *ext.Context) error {
	msg := ctx.EffectiveMessage
	if msg == nil || msg.Text == "" || b.handler == nil {
		return nil
	}
	b.handleText(msg.Chat.Id, msg.Text)
	return nil
}

// handleText feeds one incoming chat message into the conversation engine,
// keyed by the chat id rendered as digits.
func (b *Bot) handleText(chatID int64, text string) {
	username := strconv.FormatInt(chatID, 10)
	if err := b.handler.IncomingMessage(context.Background(), username, text, entity.UserTypeTelegram); err != nil {
		b.log.With(
			slog.String("chat_id", username),
		).Error("handling incoming message", sl.Err(err))
	}
}

// SendText delivers an outbound conversation message to a Telegram chat.
func (b *Bot) SendText(chatID, text string) error {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return err
	}
	_, err = b.api.SendMessage(id, text, &tgbotapi.SendMessageOpts{})
	return err
}

// SendMessage forwards a line to the admin chat. Satisfies the logger's
// AlertSender so high-severity log records reach the operator.
func (b *Bot) SendMessage(msg string) {
	if b.adminId == 0 {
		return
	}
	if _, err := b.api.SendMessage(b.adminId, msg, &tgbotapi.SendMessageOpts{}); err != nil {
		b.log.Warn("sending admin message", sl.Err(err))
	}
}

package core

import (
	"context"
	"log/slog"

	"votebot/entity"
	"votebot/internal/lib/sl"
)

// Broadcaster receives every stored message (the dashboard ws hub).
type Broadcaster interface {
	MessageStored(msg *entity.Message)
	BroadcastConversationClosed(conversationID string)
}

// Messenger delivers outbound text on one transport, keyed by user type.
// SMS has no in-process messenger; its gateway watches the message store.
type Messenger interface {
	SendText(chatID, text string) error
}

func (h *Handler) SetHub(hub Broadcaster) {
	h.hub = hub
}

func (h *Handler) SetBotUserID(id string) {
	h.botUserID = id
}

// SetMessenger registers a transport for a user type ("telegram", ...).
func (h *Handler) SetMessenger(userType string, m Messenger) {
	if h.messengers == nil {
		h.messengers = make(map[string]Messenger)
	}
	h.messengers[userType] = m
}

// MessageStored implements convo.MessageListener: fan stored messages out to
// the dashboard feed and, for bot-authored messages, to each recipient's
// transport.
func (h *Handler) MessageStored(msg *entity.Message) {
	if h.hub != nil {
		h.hub.MessageStored(msg)
	}

	if msg.UserID != h.botUserID {
		return
	}

	ctx := context.Background()
	conversation, err := h.repo.GetConversation(ctx, msg.ConversationID)
	if err != nil || conversation == nil {
		h.log.Warn("delivery: conversation lookup failed",
			slog.String("conversation_id", msg.ConversationID))
		return
	}

	for _, recipientID := range conversation.Recipients {
		user, err := h.repo.GetUser(ctx, recipientID)
		if err != nil || user == nil {
			h.log.Warn("delivery: recipient lookup failed",
				slog.String("user_id", recipientID))
			continue
		}
		m, ok := h.messengers[user.Type]
		if !ok {
			// e.g. SMS: the gateway picks stored messages up itself
			continue
		}
		if err := m.SendText(user.Username, msg.Body); err != nil {
			h.log.Error("delivery failed",
				slog.String("user_id", recipientID),
				slog.String("type", user.Type),
				sl.Err(err),
			)
		}
	}
}

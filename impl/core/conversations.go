package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"votebot/bot/convo"
	"votebot/bot/vote"
	"votebot/entity"
	"votebot/internal/lib/sl"
)

// IncomingMessage handles one inbound message from any transport. Unknown
// senders get a user record and a fresh registration dialogue; known senders
// advance whatever conversation they were last part of.
func (h *Handler) IncomingMessage(ctx context.Context, username, body, userType string) error {
	user, err := h.ensureUser(ctx, username, userType)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}

	conversation, err := h.repo.GetRecentConversationByUser(ctx, user.UUID)
	if err != nil {
		return fmt.Errorf("loading conversation: %w", err)
	}

	if conversation == nil {
		_, err := h.engine.Start(ctx, vote.ChainName, user.UUID, nil)
		return err
	}

	message, err := h.repo.CreateMessage(ctx, entity.NewMessage(user.UUID, conversation.UUID, body))
	if err != nil {
		return fmt.Errorf("storing message: %w", err)
	}

	h.engine.Advance(ctx, user.UUID, conversation, message)
	return nil
}

// StartConversation opens a bot-initiated registration dialogue with a user,
// optionally at a specific step.
func (h *Handler) StartConversation(ctx context.Context, username, startStep string) (*entity.Conversation, error) {
	user, err := h.ensureUser(ctx, username, entity.UserTypeSMS)
	if err != nil {
		return nil, err
	}

	var opts *convo.StartOptions
	if startStep != "" {
		opts = &convo.StartOptions{StartStep: convo.StepID(startStep)}
	}
	return h.engine.Start(ctx, vote.ChainName, user.UUID, opts)
}

// CreateConversation starts a person-to-person conversation with the given
// recipients and opening message. Each recipient also gets a referred
// registration dialogue, which is the whole point of sharing the bot.
func (h *Handler) CreateConversation(ctx context.Context, userID string, recipients []string, body string) (*entity.Conversation, error) {
	users := make([]*entity.User, 0, len(recipients))
	for _, username := range recipients {
		user, err := h.ensureUser(ctx, username, entity.UserTypeSMS)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.UUID
	}

	conversation := entity.NewConversation(userID, entity.ConversationP2P, entity.ConversationState{}, ids)
	if err := h.repo.CreateConversation(ctx, conversation); err != nil {
		return nil, err
	}
	if _, err := h.repo.CreateMessage(ctx, entity.NewMessage(userID, conversation.UUID, body)); err != nil {
		return nil, err
	}

	for _, u := range users {
		if _, err := h.engine.Start(ctx, vote.ChainName, u.UUID,
			&convo.StartOptions{StartStep: vote.StepIntroRefer}); err != nil {
			h.log.Error("starting referred conversation",
				slog.String("user_id", u.UUID), sl.Err(err))
		}
	}
	return conversation, nil
}

// SendMessage appends an operator message to an existing conversation.
func (h *Handler) SendMessage(ctx context.Context, userID, conversationID, body string) (*entity.Message, error) {
	conversation, err := h.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("conversation %s not found", conversationID)
	}
	return h.repo.CreateMessage(ctx, entity.NewMessage(userID, conversationID, body))
}

const (
	pollWindow   = 30 * time.Second
	pollInterval = 2 * time.Second
)

// PollMessages waits up to pollWindow for messages with Seq > afterSeq,
// checking the store every pollInterval. Returns an empty slice on timeout.
func (h *Handler) PollMessages(ctx context.Context, conversationID string, afterSeq int64) ([]entity.Message, error) {
	deadline := time.Now().Add(pollWindow)
	for {
		messages, err := h.repo.ListMessagesSince(ctx, conversationID, afterSeq)
		if err != nil {
			return nil, err
		}
		if len(messages) > 0 {
			return messages, nil
		}
		if time.Now().After(deadline) {
			return []entity.Message{}, nil
		}
		select {
		case <-ctx.Done():
			return []entity.Message{}, nil
		case <-time.After(pollInterval):
		}
	}
}

package conversation

import (
	"context"

	"votebot/entity"
)

// Core is the application-service surface the conversation handlers need.
type Core interface {
	CreateConversation(ctx context.Context, userID string, recipients []string, body string) (*entity.Conversation, error)
	SendMessage(ctx context.Context, userID, conversationID, body string) (*entity.Message, error)
	IncomingMessage(ctx context.Context, username, body, userType string) error
	PollMessages(ctx context.Context, conversationID string, afterSeq int64) ([]entity.Message, error)
	StartConversation(ctx context.Context, username, startStep string) (*entity.Conversation, error)
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single turn in a conversation, inbound or outbound.
// Seq is a per-conversation monotonic counter used by the poll endpoint.
type Message struct {
	UUID           string    `json:"uuid" bson:"uuid"`
	UserID         string    `json:"user_id" bson:"user_id"`
	ConversationID string    `json:"conversation_id" bson:"conversation_id"`
	Body           string    `json:"body" bson:"body"`
	Seq            int64     `json:"seq" bson:"seq"`
	Created        time.Time `json:"created" bson:"created"`
}

func NewMessage(userID, conversationID, body string) *Message {
	return &Message{
		UUID:           uuid.NewString(),
		UserID:         userID,
		ConversationID: conversationID,
		Body:           body,
		Created:        time.Now(),
	}
}

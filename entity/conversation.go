package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationState is where the dialogue left off: which chain is running
// and which step the next incoming message will be validated against.
type ConversationState struct {
	Type string `json:"type" bson:"type"`
	Step string `json:"step" bson:"step"`
}

// Conversation is one dialogue between the bot and a set of recipients.
// Conversations are never deleted; Close marks them inactive.
type Conversation struct {
	UUID       string            `json:"uuid" bson:"uuid"`
	UserID     string            `json:"user_id" bson:"user_id"`
	Type       string            `json:"type" bson:"type"`
	State      ConversationState `json:"state" bson:"state"`
	Recipients []string          `json:"recipients" bson:"recipients"`
	Active     bool              `json:"active" bson:"active"`
	Complete   bool              `json:"complete" bson:"complete"`
	Created    time.Time         `json:"created" bson:"created"`
	Updated    time.Time         `json:"updated" bson:"updated"`
}

const (
	ConversationP2P = "p2p"
	ConversationBot = "bot"
)

func NewConversation(userID, convoType string, state ConversationState, recipients []string) *Conversation {
	return &Conversation{
		UUID:       uuid.NewString(),
		UserID:     userID,
		Type:       convoType,
		State:      state,
		Recipients: recipients,
		Active:     true,
		Created:    time.Now(),
		Updated:    time.Now(),
	}
}

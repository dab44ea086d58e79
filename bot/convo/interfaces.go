package convo

import (
	"context"

	"votebot/entity"
)

// UserStore loads and persists user records. Get returns (nil, nil) when the
// user does not exist.
type UserStore interface {
	GetUser(ctx context.Context, id string) (*entity.User, error)
	UpdateUser(ctx context.Context, user *entity.User) error
}

// ConversationStore persists conversation position between turns. Close marks
// a conversation inactive; the record itself is never removed.
type ConversationStore interface {
	CreateConversation(ctx context.Context, conversation *entity.Conversation) error
	UpdateConversation(ctx context.Context, conversation *entity.Conversation) error
	CloseConversation(ctx context.Context, id string) error
}

// MessageStore records a message in a conversation. The surrounding system
// watches this store to deliver outbound messages to the transport.
type MessageStore interface {
	CreateMessage(ctx context.Context, message *entity.Message) (*entity.Message, error)
}

// ZipLookup resolves a zip code to its places. Absent codes are reported as
// entity.ErrZipNotFound; any other error means the lookup itself failed and
// is not the user's fault.
type ZipLookup interface {
	FindZip(ctx context.Context, code string) (*entity.Zip, error)
}

// MessageListener is notified of every message the engine stores, so the
// live feed can broadcast traffic without the engine importing transports.
type MessageListener interface {
	MessageStored(message *entity.Message)
}

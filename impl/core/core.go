package core

import (
	"context"
	"log/slog"

	"votebot/bot/convo"
	"votebot/entity"
	"votebot/internal/lib/sl"
)

// Repository is the storage surface the core service needs. The Mongo client
// in internal/database implements all of it.
type Repository interface {
	GetUser(ctx context.Context, id string) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	UpsertUser(ctx context.Context, user *entity.User) error
	UpdateUser(ctx context.Context, user *entity.User) error
	WipeUser(ctx context.Context, username string) error

	CreateConversation(ctx context.Context, conversation *entity.Conversation) error
	GetConversation(ctx context.Context, id string) (*entity.Conversation, error)
	GetRecentConversationByUser(ctx context.Context, userID string) (*entity.Conversation, error)
	UpdateConversation(ctx context.Context, conversation *entity.Conversation) error
	CloseConversation(ctx context.Context, id string) error

	CreateMessage(ctx context.Context, message *entity.Message) (*entity.Message, error)
	ListMessagesSince(ctx context.Context, conversationID string, afterSeq int64) ([]entity.Message, error)

	FindZip(ctx context.Context, code string) (*entity.Zip, error)
}

// Engine is the conversation turn engine surface used by the service.
type Engine interface {
	Start(ctx context.Context, chainName convo.ChainID, userID string, opts *convo.StartOptions) (*entity.Conversation, error)
	Advance(ctx context.Context, userID string, conversation *entity.Conversation, message *entity.Message)
	Goto(ctx context.Context, userID string, conversation *entity.Conversation, stepName convo.StepID) error
}

// Handler is the application service behind the HTTP API and the chat
// transports: it owns user lookup/creation, hands turns to the engine, and
// answers the dashboard queries.
type Handler struct {
	repo       Repository
	engine     Engine
	hub        Broadcaster
	messengers map[string]Messenger
	botUserID  string
	authKey    string
	log        *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log.With(sl.Module("core")),
	}
}

func (h *Handler) SetRepository(repo Repository) {
	h.repo = repo
}

func (h *Handler) SetEngine(engine Engine) {
	h.engine = engine
}

func (h *Handler) SetAuthKey(key string) {
	h.authKey = key
}

// CheckApiKey implements the authenticate middleware contract.
func (h *Handler) CheckApiKey(key string) bool {
	return h.authKey != "" && key == h.authKey
}

// WipeUser removes a user and all of their conversation data. Used by the
// admin API to honor deletion requests.
func (h *Handler) WipeUser(ctx context.Context, username string) error {
	username = entity.NormalizeUsername(username)
	if err := h.repo.WipeUser(ctx, username); err != nil {
		return err
	}
	h.log.Info("wiped user data", slog.String("username", username))
	return nil
}

// ensureUser finds a user by username, creating one on first contact.
func (h *Handler) ensureUser(ctx context.Context, username, userType string) (*entity.User, error) {
	username = entity.NormalizeUsername(username)
	user, err := h.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = entity.NewUser(username, userType)
	if err := h.repo.UpsertUser(ctx, user); err != nil {
		return nil, err
	}
	h.log.Info("created user",
		slog.String("username", user.Username),
		slog.String("type", userType),
	)
	return user, nil
}

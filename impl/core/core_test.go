package core

import (
	"context"
	"io"
	"log/slog"

	"votebot/bot/convo"
	"votebot/entity"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	usersByName   map[string]*entity.User
	conversations map[string]*entity.Conversation
	recent        *entity.Conversation
	messages      []*entity.Message

	upserted     []*entity.User
	userUpdates  int
	convoUpdates int
	wiped        []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		usersByName:   make(map[string]*entity.User),
		conversations: make(map[string]*entity.Conversation),
	}
}

func (r *fakeRepo) addUser(u *entity.User) {
	r.usersByName[u.Username] = u
}

func (r *fakeRepo) GetUser(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.usersByName {
		if u.UUID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.usersByName[entity.NormalizeUsername(username)], nil
}

func (r *fakeRepo) UpsertUser(_ context.Context, user *entity.User) error {
	r.usersByName[user.Username] = user
	r.upserted = append(r.upserted, user)
	return nil
}

func (r *fakeRepo) UpdateUser(_ context.Context, user *entity.User) error {
	r.userUpdates++
	return nil
}

func (r *fakeRepo) WipeUser(_ context.Context, username string) error {
	delete(r.usersByName, username)
	r.wiped = append(r.wiped, username)
	return nil
}

func (r *fakeRepo) CreateConversation(_ context.Context, c *entity.Conversation) error {
	r.conversations[c.UUID] = c
	return nil
}

func (r *fakeRepo) GetConversation(_ context.Context, id string) (*entity.Conversation, error) {
	return r.conversations[id], nil
}

func (r *fakeRepo) GetRecentConversationByUser(_ context.Context, _ string) (*entity.Conversation, error) {
	return r.recent, nil
}

func (r *fakeRepo) UpdateConversation(_ context.Context, _ *entity.Conversation) error {
	r.convoUpdates++
	return nil
}

func (r *fakeRepo) CloseConversation(_ context.Context, _ string) error {
	return nil
}

func (r *fakeRepo) CreateMessage(_ context.Context, m *entity.Message) (*entity.Message, error) {
	m.Seq = int64(len(r.messages) + 1)
	r.messages = append(r.messages, m)
	return m, nil
}

func (r *fakeRepo) ListMessagesSince(_ context.Context, _ string, afterSeq int64) ([]entity.Message, error) {
	var out []entity.Message
	for _, m := range r.messages {
		if m.Seq > afterSeq {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindZip(_ context.Context, _ string) (*entity.Zip, error) {
	return &entity.Zip{}, nil
}

// fakeEngine records the calls the service hands to the turn engine.
type fakeEngine struct {
	started  []string
	advanced []*entity.Message
	gotos    []convo.StepID
}

func (e *fakeEngine) Start(_ context.Context, chainName convo.ChainID, userID string, _ *convo.StartOptions) (*entity.Conversation, error) {
	e.started = append(e.started, userID)
	return entity.NewConversation("bot", entity.ConversationBot,
		entity.ConversationState{Type: string(chainName)}, []string{userID}), nil
}

func (e *fakeEngine) Advance(_ context.Context, _ string, _ *entity.Conversation, message *entity.Message) {
	e.advanced = append(e.advanced, message)
}

func (e *fakeEngine) Goto(_ context.Context, _ string, _ *entity.Conversation, stepName convo.StepID) error {
	e.gotos = append(e.gotos, stepName)
	return nil
}

func testHandler(repo *fakeRepo, engine *fakeEngine) *Handler {
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.SetRepository(repo)
	h.SetEngine(engine)
	return h
}

package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"votebot/entity"
)

func TestIncomingMessageFromStrangerStartsRegistration(t *testing.T) {
	repo := newFakeRepo()
	engine := &fakeEngine{}
	h := testHandler(repo, engine)

	err := h.IncomingMessage(context.Background(), "+1 (555) 000-1111", "hi", entity.UserTypeSMS)
	require.NoError(t, err)

	// the sender got a user record with a normalized username
	require.Len(t, repo.upserted, 1)
	assert.Equal(t, "15550001111", repo.upserted[0].Username)

	require.Len(t, engine.started, 1)
	assert.Empty(t, engine.advanced)
}

func TestIncomingMessageAdvancesExistingConversation(t *testing.T) {
	repo := newFakeRepo()
	engine := &fakeEngine{}
	h := testHandler(repo, engine)

	user := entity.NewUser("15550001111", entity.UserTypeSMS)
	repo.addUser(user)
	repo.recent = entity.NewConversation("bot", entity.ConversationBot,
		entity.ConversationState{Type: "vote_1", Step: "zip"}, []string{user.UUID})

	err := h.IncomingMessage(context.Background(), user.Username, "94110", entity.UserTypeSMS)
	require.NoError(t, err)

	assert.Empty(t, engine.started)
	require.Len(t, engine.advanced, 1)
	assert.Equal(t, "94110", engine.advanced[0].Body)
	// the inbound message was stored before the turn ran
	require.Len(t, repo.messages, 1)
	assert.Equal(t, user.UUID, repo.messages[0].UserID)
}

func TestCreateConversationStartsReferredDialogues(t *testing.T) {
	repo := newFakeRepo()
	engine := &fakeEngine{}
	h := testHandler(repo, engine)

	conversation, err := h.CreateConversation(context.Background(), "operator",
		[]string{"15550001111", "15550002222"}, "go register!")
	require.NoError(t, err)

	assert.Equal(t, entity.ConversationP2P, conversation.Type)
	assert.Len(t, conversation.Recipients, 2)
	// the opening message plus one referred registration dialogue per recipient
	require.Len(t, repo.messages, 1)
	assert.Equal(t, "go register!", repo.messages[0].Body)
	assert.Len(t, engine.started, 2)
}

func TestWipeUserNormalizesAndDeletes(t *testing.T) {
	repo := newFakeRepo()
	h := testHandler(repo, &fakeEngine{})

	user := entity.NewUser("15550001111", entity.UserTypeSMS)
	repo.addUser(user)

	err := h.WipeUser(context.Background(), "+1 (555) 000-1111")
	require.NoError(t, err)

	assert.Equal(t, []string{"15550001111"}, repo.wiped)
	assert.NotContains(t, repo.usersByName, "15550001111")
}

func TestSendMessageUnknownConversation(t *testing.T) {
	repo := newFakeRepo()
	h := testHandler(repo, &fakeEngine{})

	_, err := h.SendMessage(context.Background(), "operator", "ghost", "hello")
	require.Error(t, err)
}

func TestPollMessagesReturnsNewOnes(t *testing.T) {
	repo := newFakeRepo()
	h := testHandler(repo, &fakeEngine{})

	for _, body := range []string{"one", "two", "three"} {
		_, err := repo.CreateMessage(context.Background(), entity.NewMessage("u", "c", body))
		require.NoError(t, err)
	}

	messages, err := h.PollMessages(context.Background(), "c", 1)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "two", messages[0].Body)
	assert.Equal(t, "three", messages[1].Body)
}

package telegram

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"votebot/entity"
)

type capturedMessage struct {
	username string
	body     string
	userType string
}

type fakeHandler struct {
	received []capturedMessage
}

func (f *fakeHandler) IncomingMessage(_ context.Context, username, body, userType string) error {
	f.received = append(f.received, capturedMessage{username, body, userType})
	return nil
}

func TestHandleTextTagsUserTypeTelegram(t *testing.T) {
	handler := &fakeHandler{}
	b := &Bot{
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		handler: handler,
	}

	b.handleText(987654321, "hello")

	require.Len(t, handler.received, 1)
	assert.Equal(t, "987654321", handler.received[0].username)
	assert.Equal(t, "hello", handler.received[0].body)
	assert.Equal(t, entity.UserTypeTelegram, handler.received[0].userType)
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messaging-backend/internal/model"
)

func TestSendRequiresMembership(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", model.RoleMember)
	env.register(t, "bob", model.RoleMember)
	require.NoError(t, env.channelService.CreateChannel(t.Context(), "games", "alice"))

	_, err := env.messageService.Send(t.Context(), "bob", "games", "let me in")
	assert.ErrorIs(t, err, ErrNotMember)

	// The rejected send appended nothing.
	messages, err := env.messageService.ListByChannel(t.Context(), "games")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestSendAppendsInOrder(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", model.RoleMember)
	env.register(t, "bob", model.RoleMember)

	first, err := env.messageService.Send(t.Context(), "alice", model.GeneralChannel, "one")
	require.NoError(t, err)
	second, err := env.messageService.Send(t.Context(), "bob", model.GeneralChannel, "two")
	require.NoError(t, err)
	assert.Less(t, first.ID, second.ID)

	messages, err := env.messageService.ListByChannel(t.Context(), model.GeneralChannel)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "one", messages[0].Text)
	assert.Equal(t, "two", messages[1].Text)
}

func TestSendPublishesEvent(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", model.RoleMember)

	publisher := &capturePublisher{}
	env.messageService.publisher = publisher

	message, err := env.messageService.Send(t.Context(), "alice", model.GeneralChannel, "hello")
	require.NoError(t, err)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, message.ID, publisher.events[0].ID)

	// A failing publisher never fails the append.
	publisher.fail = true
	_, err = env.messageService.Send(t.Context(), "alice", model.GeneralChannel, "again")
	require.NoError(t, err)

	messages, err := env.messageService.ListByChannel(t.Context(), model.GeneralChannel)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestLatest(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", model.RoleMember)

	latest, err := env.messageService.Latest(t.Context(), model.GeneralChannel)
	require.NoError(t, err)
	assert.Nil(t, latest)

	_, err = env.messageService.Send(t.Context(), "alice", model.GeneralChannel, "one")
	require.NoError(t, err)
	last, err := env.messageService.Send(t.Context(), "alice", model.GeneralChannel, "two")
	require.NoError(t, err)

	latest, err = env.messageService.Latest(t.Context(), model.GeneralChannel)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, last.ID, latest.ID)
}

func TestLatestForRequiresMembership(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", model.RoleMember)
	env.register(t, "bob", model.RoleMember)
	require.NoError(t, env.channelService.CreateChannel(t.Context(), "games", "alice"))

	_, err := env.messageService.LatestFor(t.Context(), "bob", "games")
	assert.ErrorIs(t, err, ErrNotMember)

	latest, err := env.messageService.LatestFor(t.Context(), "alice", "games")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestDeleteRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "root", model.RoleAdmin)
	env.register(t, "alice", model.RoleMember)

	message, err := env.messageService.Send(t.Context(), "alice", model.GeneralChannel, "regret")
	require.NoError(t, err)

	// The gate runs before any mutation: the message survives.
	err = env.messageService.Delete(t.Context(), "alice", message.ID)
	assert.ErrorIs(t, err, ErrNotAdmin)
	messages, err := env.messageService.ListByChannel(t.Context(), model.GeneralChannel)
	require.NoError(t, err)
	assert.Len(t, messages, 1)

	require.NoError(t, env.messageService.Delete(t.Context(), "root", message.ID))
	messages, err = env.messageService.ListByChannel(t.Context(), model.GeneralChannel)
	require.NoError(t, err)
	assert.Empty(t, messages)

	err = env.messageService.Delete(t.Context(), "root", message.ID)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

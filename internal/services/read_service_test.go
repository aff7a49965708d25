package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"messaging-backend/internal/model"
)

func TestUnreadLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", model.RoleMember)
	env.register(t, "bob", model.RoleMember)

	unread, err := env.readService.UnreadChannels(t.Context(), "alice")
	require.NoError(t, err)
	assert.Empty(t, unread)

	message, err := env.messageService.Send(t.Context(), "bob", model.GeneralChannel, "hi")
	require.NoError(t, err)

	// Everyone is behind, the sender included.
	for _, username := range []string{"alice", "bob"} {
		unread, err = env.readService.UnreadChannels(t.Context(), username)
		require.NoError(t, err)
		assert.Equal(t, []string{model.GeneralChannel}, unread, username)
	}

	require.NoError(t, env.readService.MarkSeen(t.Context(), "alice", model.GeneralChannel, message.ID))
	unread, err = env.readService.UnreadChannels(t.Context(), "alice")
	require.NoError(t, err)
	assert.Empty(t, unread)

	// bob's view is untouched by alice's marker.
	unread, err = env.readService.UnreadChannels(t.Context(), "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{model.GeneralChannel}, unread)

	// A new message reopens the channel for alice.
	_, err = env.messageService.Send(t.Context(), "bob", model.GeneralChannel, "again")
	require.NoError(t, err)
	unread, err = env.readService.UnreadChannels(t.Context(), "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{model.GeneralChannel}, unread)
}

func TestMarkSeenRegression(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", model.RoleMember)

	require.NoError(t, env.readService.MarkSeen(t.Context(), "alice", model.GeneralChannel, 9))
	require.NoError(t, env.readService.MarkSeen(t.Context(), "alice", model.GeneralChannel, 3))

	seen, err := env.readService.LastSeen(t.Context(), "alice", model.GeneralChannel)
	require.NoError(t, err)
	assert.Equal(t, int64(3), seen)
}

// A channel is unread exactly when its newest message id exceeds the
// user's marker, whatever sequence of sends and acks got us there.
func TestUnreadMatchesMarkers(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		env := newTestEnv(t)
		env.register(t, "alice", model.RoleMember)
		env.register(t, "bob", model.RoleMember)

		channels := []string{model.GeneralChannel, "games", "random"}
		for _, name := range channels[1:] {
			require.NoError(t, env.channelService.CreateChannel(t.Context(), name, "alice"))
			require.NoError(t, env.channelService.JoinChannel(t.Context(), name, "bob"))
		}

		maxID := map[string]int64{}
		marker := map[string]int64{}

		steps := rapid.IntRange(1, 25).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			channel := rapid.SampledFrom(channels).Draw(rt, "channel")
			if rapid.Bool().Draw(rt, "send") {
				message, err := env.messageService.Send(t.Context(), "bob", channel, "x")
				require.NoError(rt, err)
				maxID[channel] = message.ID
			} else {
				id := maxID[channel]
				if id == 0 {
					continue
				}
				require.NoError(rt, env.readService.MarkSeen(t.Context(), "alice", channel, id))
				marker[channel] = id
			}
		}

		var want []string
		for _, name := range channels {
			if maxID[name] > marker[name] {
				want = append(want, name)
			}
		}
		unread, err := env.readService.UnreadChannels(t.Context(), "alice")
		require.NoError(rt, err)
		assert.ElementsMatch(rt, want, unread)
	})
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messaging-backend/internal/model"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", model.RoleMember)

	user, err := env.userService.Login(t.Context(), "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, model.RoleMember, user.Role)
	// Stored credential is a hash, never the plaintext.
	assert.NotEqual(t, "password123", user.Password)

	// Registration lands the user in General.
	ok, err := env.authz.IsMember(t.Context(), "alice", model.GeneralChannel)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginRejections(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", model.RoleMember)

	_, err := env.userService.Login(t.Context(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrAuthentication)

	// Unknown user fails identically to a wrong password.
	_, err = env.userService.Login(t.Context(), "mallory", "password123")
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestRegisterInvalidRole(t *testing.T) {
	env := newTestEnv(t)

	err := env.userService.Register(t.Context(), "alice", "password123", "OWNER")
	assert.ErrorIs(t, err, ErrInvalidRole)

	// The rejected registration left no row behind.
	_, err = env.userService.FindByUsername(t.Context(), "alice")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", model.RoleMember)

	err := env.userService.Register(t.Context(), "alice", "other", model.RoleMember)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestSetRole(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "root", model.RoleAdmin)
	env.register(t, "alice", model.RoleMember)

	// A member cannot grant roles, and the target is untouched.
	err := env.userService.SetRole(t.Context(), "alice", "root", model.RoleMember)
	assert.ErrorIs(t, err, ErrNotAdmin)
	root, err := env.userService.FindByUsername(t.Context(), "root")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, root.Role)

	require.NoError(t, env.userService.SetRole(t.Context(), "root", "alice", model.RoleAdmin))
	alice, err := env.userService.FindByUsername(t.Context(), "alice")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, alice.Role)

	err = env.userService.SetRole(t.Context(), "root", "nobody", model.RoleMember)
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = env.userService.SetRole(t.Context(), "root", "alice", "OWNER")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestSearchUsers(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", model.RoleMember)
	env.register(t, "Albert", model.RoleMember)
	env.register(t, "bob", model.RoleMember)

	users, err := env.userService.SearchUsers(t.Context(), "al")
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = env.userService.SearchUsers(t.Context(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, users)
}

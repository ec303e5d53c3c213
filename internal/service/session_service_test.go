package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/repository"
)

func TestSession_LoginLogout(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	ss, err := NewSessionService(ctx, kv, nil)
	require.NoError(t, err)
	assert.False(t, ss.IsLoggedIn(ctx))

	id, err := ss.Login(ctx, "  Jane  ")
	require.NoError(t, err)
	assert.Equal(t, "Jane", id.Name)
	assert.True(t, ss.IsLoggedIn(ctx))

	raw, ok, _ := kv.Get(ctx, repository.KeyUser)
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"Jane"}`, raw)

	// a second instance over the same storage sees the identity
	again, err := NewSessionService(ctx, kv, nil)
	require.NoError(t, err)
	cur, ok := again.Current(ctx)
	require.True(t, ok)
	assert.Equal(t, "Jane", cur.Name)

	require.NoError(t, ss.Logout(ctx))
	assert.False(t, ss.IsLoggedIn(ctx))
	_, ok, _ = kv.Get(ctx, repository.KeyUser)
	assert.False(t, ok)
}

func TestSession_BlankNameRejected(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	ss, _ := NewSessionService(ctx, kv, nil)
	_, err := ss.Login(ctx, "Jane")
	require.NoError(t, err)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := ss.Login(ctx, name)
		assert.True(t, errors.Is(err, ErrInvalidInput), "name %q", name)
	}
	cur, ok := ss.Current(ctx)
	require.True(t, ok)
	assert.Equal(t, "Jane", cur.Name, "rejected login must not change the identity")
}

func TestSession_CorruptRecordIsCleared(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, repository.KeyUser, "{name:"))

	ss, err := NewSessionService(ctx, kv, nil)
	require.NoError(t, err)
	assert.False(t, ss.IsLoggedIn(ctx))
	_, ok, _ := kv.Get(ctx, repository.KeyUser)
	assert.False(t, ok, "corrupt record should be removed")
}

func TestSession_LoginPrompted(t *testing.T) {
	ctx := context.Background()
	ss, _ := NewSessionService(ctx, repository.NewMemoryKV(), nil)
	prompted, err := ss.LoginPrompted(ctx)
	require.NoError(t, err)
	assert.False(t, prompted)

	require.NoError(t, ss.MarkLoginPrompted(ctx))
	prompted, _ = ss.LoginPrompted(ctx)
	assert.True(t, prompted)
}

func TestAdmin_Gate(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	as := NewAdminService(kv, AdminCredentials{}, nil)
	assert.False(t, as.IsAuthenticated(ctx))

	err := as.Login(ctx, "admin", "wrong")
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.False(t, as.IsAuthenticated(ctx))

	require.NoError(t, as.Login(ctx, "admin", "admin123"))
	assert.True(t, as.IsAuthenticated(ctx))
	raw, _, _ := kv.Get(ctx, repository.KeyAdminAuthenticated)
	assert.Equal(t, "true", raw)

	require.NoError(t, as.Logout(ctx))
	assert.False(t, as.IsAuthenticated(ctx))

	custom := NewAdminService(kv, AdminCredentials{Username: "ops", Password: "s3cret"}, nil)
	assert.Error(t, custom.Login(ctx, "admin", "admin123"))
	assert.NoError(t, custom.Login(ctx, "ops", "s3cret"))
}

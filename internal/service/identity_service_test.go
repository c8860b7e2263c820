package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vedran77/chatbin/internal/domain"
)

func TestNextSequenceCoversFullRange(t *testing.T) {
	e := newEnv(nil)

	for i := 1; i <= 9999; i++ {
		got, err := e.identity.NextSequence()
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("%04d", i), got)
	}

	_, err := e.identity.NextSequence()
	require.ErrorIs(t, err, ErrSequenceExhausted)
}

func TestGetOrAssignHandleIsStable(t *testing.T) {
	e := newEnv(nil)

	handle := e.identity.GetOrAssignHandle()
	require.Equal(t, "anonymous 0001", handle)

	// Repeated calls return the stored handle without minting again.
	require.Equal(t, handle, e.identity.GetOrAssignHandle())
	counter, _ := e.local.Get(lastNumberKey)
	require.Equal(t, "1", counter)
}

func TestFallbackHandleNotPersisted(t *testing.T) {
	e := newEnv(nil)
	require.NoError(t, e.local.Set(lastNumberKey, "9999"))

	require.Equal(t, fallbackHandle, e.identity.GetOrAssignHandle())

	_, stored := e.local.Get(handleKey)
	require.False(t, stored)

	// Once the counter has room again, the next call mints for real.
	require.NoError(t, e.local.Set(lastNumberKey, "0"))
	require.Equal(t, "anonymous 0001", e.identity.GetOrAssignHandle())
}

func TestEffectiveUsernameAdminOverride(t *testing.T) {
	e := newEnv(nil)
	ctx := context.Background()

	handle := e.identity.GetOrAssignHandle()
	require.Equal(t, handle, e.identity.EffectiveUsername(ctx))

	name := "boss"
	doc := e.repo.Load(ctx)
	doc.Admin.IsLoggedIn = true
	doc.Admin.CustomUsername = &name
	require.NoError(t, e.repo.Save(ctx, doc))

	require.Equal(t, "boss", e.identity.EffectiveUsername(ctx))

	// Logged out, the override no longer applies.
	doc = e.repo.Load(ctx)
	doc.Admin.IsLoggedIn = false
	require.NoError(t, e.repo.Save(ctx, doc))

	require.Equal(t, handle, e.identity.EffectiveUsername(ctx))
}

func TestEffectiveUsernameLoggedInWithoutOverride(t *testing.T) {
	e := newEnv(nil)
	ctx := context.Background()

	doc := domain.DefaultDocument()
	doc.Admin.IsLoggedIn = true
	require.NoError(t, e.repo.Save(ctx, doc))

	require.Equal(t, "anonymous 0001", e.identity.EffectiveUsername(ctx))
}

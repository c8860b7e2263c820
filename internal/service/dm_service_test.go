package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartDMSymmetric(t *testing.T) {
	ctx := context.Background()
	alice := newEnv(nil).withHandle("anonymous 0001")
	bob := newEnv(alice.backend).withHandle("anonymous 0002")

	fromAlice, err := alice.dms.Start(ctx, "anonymous 0002")
	require.NoError(t, err)

	fromBob, err := bob.dms.Start(ctx, "anonymous 0001")
	require.NoError(t, err)

	require.Equal(t, fromAlice.ID, fromBob.ID)
	require.Equal(t, fromAlice.Participants, fromBob.Participants)

	// No duplicate conversation was created.
	doc := alice.repo.Load(ctx)
	require.Len(t, doc.DirectMessages, 1)
}

func TestStartDMIdempotentSameSide(t *testing.T) {
	ctx := context.Background()
	alice := newEnv(nil).withHandle("anonymous 0001")

	first, err := alice.dms.Start(ctx, "anonymous 0002")
	require.NoError(t, err)

	second, err := alice.dms.Start(ctx, "anonymous 0002")
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Len(t, alice.repo.Load(ctx).DirectMessages, 1)
}

func TestListMineFiltersByParticipant(t *testing.T) {
	ctx := context.Background()
	alice := newEnv(nil).withHandle("anonymous 0001")
	carol := newEnv(alice.backend).withHandle("anonymous 0003")

	_, err := alice.dms.Start(ctx, "anonymous 0002")
	require.NoError(t, err)
	_, err = carol.dms.Start(ctx, "anonymous 0004")
	require.NoError(t, err)

	mine := alice.dms.ListMine(ctx)
	require.Len(t, mine, 1)
	require.Contains(t, mine[0].Participants, "anonymous 0001")
}

func TestPostDMMessage(t *testing.T) {
	ctx := context.Background()
	alice := newEnv(nil).withHandle("anonymous 0001")

	conv, err := alice.dms.Start(ctx, "anonymous 0002")
	require.NoError(t, err)

	msg, err := alice.dms.PostMessage(ctx, conv.ID, "hey")
	require.NoError(t, err)
	require.Equal(t, "anonymous 0001", msg.Username)

	doc := alice.repo.Load(ctx)
	require.Len(t, doc.DirectMessages[0].Messages, 1)
	require.Equal(t, "hey", doc.DirectMessages[0].Messages[0].Text)
}

func TestPostDMMessageUnknownConversation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(nil).withHandle("anonymous 0001")

	_, err := e.dms.PostMessage(ctx, "dm_nope", "hey")
	require.ErrorIs(t, err, ErrConversationNotFound)
}

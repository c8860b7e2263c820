package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vedran77/chatbin/internal/domain"
)

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	e := newEnv(nil)

	ok, err := e.admin.Login(ctx, "nope")
	require.NoError(t, err)
	require.False(t, ok)
	require.False(t, e.admin.IsLoggedIn(ctx))
}

func TestLoginPersistsAcrossClients(t *testing.T) {
	ctx := context.Background()
	e := newEnv(nil)

	ok, err := e.admin.Login(ctx, domain.DefaultAdminPassword)
	require.NoError(t, err)
	require.True(t, ok)

	// The flag is a durable document field: another client over the same
	// backend sees the session.
	other := newEnv(e.backend)
	require.True(t, other.admin.IsLoggedIn(ctx))

	require.NoError(t, e.admin.Logout(ctx))
	require.False(t, other.admin.IsLoggedIn(ctx))
}

func TestChangePasswordRequiresLogin(t *testing.T) {
	ctx := context.Background()
	e := newEnv(nil)

	// Not logged in wins over input validity, valid or not.
	require.ErrorIs(t, e.admin.ChangePassword(ctx, "newpass", "newpass"), ErrNotLoggedIn)
	require.ErrorIs(t, e.admin.ChangePassword(ctx, "a", "b"), ErrNotLoggedIn)
}

func TestChangePasswordValidation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(nil)

	ok, err := e.admin.Login(ctx, domain.DefaultAdminPassword)
	require.NoError(t, err)
	require.True(t, ok)

	require.ErrorIs(t, e.admin.ChangePassword(ctx, "ab", "ab"), ErrPasswordTooShort)
	require.ErrorIs(t, e.admin.ChangePassword(ctx, "abc", "abd"), ErrPasswordMismatch)

	require.NoError(t, e.admin.ChangePassword(ctx, "abc", "abc"))

	ok, err = e.admin.Login(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = e.admin.Login(ctx, domain.DefaultAdminPassword)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSetCustomUsername(t *testing.T) {
	ctx := context.Background()
	e := newEnv(nil).withHandle("anonymous 0001")

	require.ErrorIs(t, e.admin.SetCustomUsername(ctx, "boss"), ErrNotLoggedIn)

	ok, err := e.admin.Login(ctx, domain.DefaultAdminPassword)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, e.admin.SetCustomUsername(ctx, "boss"))
	require.Equal(t, "boss", e.identity.EffectiveUsername(ctx))

	// Future writes carry the override; past authorship is untouched.
	ch, err := e.channels.Create(ctx, CreateChannelInput{Name: "general"})
	require.NoError(t, err)
	require.Equal(t, "boss", ch.Creator)
}

func TestAdminJoinBypassesPassword(t *testing.T) {
	ctx := context.Background()
	alice := newEnv(nil).withHandle("anonymous 0001")

	ch, err := alice.channels.Create(ctx, CreateChannelInput{Name: "vault", Type: domain.ChannelTypePrivate, Password: strptr("xyz")})
	require.NoError(t, err)

	admin := newEnv(alice.backend).withHandle("anonymous 0009")

	_, err = admin.admin.JoinChannel(ctx, ch.ID)
	require.ErrorIs(t, err, ErrNotLoggedIn)

	ok, err := admin.admin.Login(ctx, domain.DefaultAdminPassword)
	require.NoError(t, err)
	require.True(t, ok)

	joined, err := admin.admin.JoinChannel(ctx, ch.ID)
	require.NoError(t, err)
	require.True(t, joined.HasMember("anonymous 0009"))

	// Idempotent, like the regular join.
	joined, err = admin.admin.JoinChannel(ctx, ch.ID)
	require.NoError(t, err)
	require.Len(t, joined.Members, 2)

	_, err = admin.admin.JoinChannel(ctx, "channel_nope")
	require.ErrorIs(t, err, ErrChannelNotFound)
}

func TestCreateAnnouncementRequiresLogin(t *testing.T) {
	ctx := context.Background()
	e := newEnv(nil)

	_, err := e.admin.CreateAnnouncement(ctx, CreateAnnouncementInput{Title: "hi"})
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestCreateAnnouncement(t *testing.T) {
	ctx := context.Background()
	e := newEnv(nil).withHandle("anonymous 0001")

	ok, err := e.admin.Login(ctx, domain.DefaultAdminPassword)
	require.NoError(t, err)
	require.True(t, ok)

	ann, err := e.admin.CreateAnnouncement(ctx, CreateAnnouncementInput{
		Title:    "Maintenance",
		Message:  "Back in an hour",
		ImageURL: "https://example.com/img.png",
	})
	require.NoError(t, err)
	require.Equal(t, "anonymous 0001", ann.CreatedBy)
	require.NotNil(t, ann.ImageURL)
	require.Nil(t, ann.VideoURL)
}

func TestListAnnouncementsNewestFirst(t *testing.T) {
	ctx := context.Background()
	e := newEnv(nil)

	t0 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	doc := e.repo.Load(ctx)
	doc.Announcements = []domain.Announcement{
		{ID: "ann_1", Title: "oldest", CreatedAt: t0},
		{ID: "ann_2", Title: "newest", CreatedAt: t0.Add(2 * time.Hour)},
		{ID: "ann_3", Title: "middle", CreatedAt: t0.Add(time.Hour)},
		{ID: "ann_4", Title: "oldest tie", CreatedAt: t0},
	}
	require.NoError(t, e.repo.Save(ctx, doc))

	got := e.admin.ListAnnouncements(ctx)
	require.Len(t, got, 4)
	require.Equal(t, "ann_2", got[0].ID)
	require.Equal(t, "ann_3", got[1].ID)
	// Equal timestamps keep insertion order.
	require.Equal(t, "ann_1", got[2].ID)
	require.Equal(t, "ann_4", got[3].ID)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vedran77/chatbin/internal/domain"
	"github.com/vedran77/chatbin/internal/repository"
)

var (
	ErrNotLoggedIn      = errors.New("not logged in as admin")
	ErrPasswordTooShort = errors.New("password must be at least 3 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// AdminService gates document mutations behind the shared admin password.
// The password is stored and compared in plaintext and the login flag is a
// durable document field with no expiry. Both are part of the external
// contract; hashing or expiring them would break existing documents.
type AdminService struct {
	repo     *repository.DocumentRepository
	identity *IdentityService
}

func NewAdminService(repo *repository.DocumentRepository, identity *IdentityService) *AdminService {
	return &AdminService{repo: repo, identity: identity}
}

// Login compares the password against the stored one and, on match, sets
// the durable login flag. The bool is the match result; the error reports
// only persistence failures.
func (s *AdminService) Login(ctx context.Context, password string) (bool, error) {
	doc := s.repo.Load(ctx)

	if doc.Admin.Password != password {
		return false, nil
	}

	doc.Admin.IsLoggedIn = true
	if err := s.repo.Save(ctx, doc); err != nil {
		return true, fmt.Errorf("persisting login: %w", err)
	}
	return true, nil
}

func (s *AdminService) Logout(ctx context.Context) error {
	doc := s.repo.Load(ctx)
	doc.Admin.IsLoggedIn = false
	if err := s.repo.Save(ctx, doc); err != nil {
		return fmt.Errorf("persisting logout: %w", err)
	}
	return nil
}

func (s *AdminService) IsLoggedIn(ctx context.Context) bool {
	return s.repo.Load(ctx).Admin.IsLoggedIn
}

// ChangePassword overwrites the stored password. The login check comes
// first: input validity is never reported to a logged-out caller.
func (s *AdminService) ChangePassword(ctx context.Context, newPassword, confirm string) error {
	doc := s.repo.Load(ctx)

	if !doc.Admin.IsLoggedIn {
		return ErrNotLoggedIn
	}
	if len(newPassword) < 3 {
		return ErrPasswordTooShort
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	doc.Admin.Password = newPassword
	if err := s.repo.Save(ctx, doc); err != nil {
		return fmt.Errorf("changing password: %w", err)
	}
	return nil
}

// SetCustomUsername sets the admin display-name override, which immediately
// changes the effective username for future writes. Past messages keep
// their stored author.
func (s *AdminService) SetCustomUsername(ctx context.Context, name string) error {
	doc := s.repo.Load(ctx)

	if !doc.Admin.IsLoggedIn {
		return ErrNotLoggedIn
	}

	doc.Admin.CustomUsername = &name
	if err := s.repo.Save(ctx, doc); err != nil {
		return fmt.Errorf("setting username: %w", err)
	}
	return nil
}

// JoinChannel adds the acting identity to any channel, bypassing its
// password. Membership semantics match ChannelService.Join.
func (s *AdminService) JoinChannel(ctx context.Context, channelID string) (*domain.Channel, error) {
	doc := s.repo.Load(ctx)

	if !doc.Admin.IsLoggedIn {
		return nil, ErrNotLoggedIn
	}

	ch := findChannel(doc.Channels, channelID)
	if ch == nil {
		return nil, ErrChannelNotFound
	}

	username := s.identity.EffectiveUsernameIn(doc)
	if !ch.HasMember(username) {
		ch.Members = append(ch.Members, username)
		if err := s.repo.Save(ctx, doc); err != nil {
			return nil, fmt.Errorf("joining channel: %w", err)
		}
	}

	joined := *ch
	return &joined, nil
}

type CreateAnnouncementInput struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl"`
	VideoURL string `json:"videoUrl"`
}

// CreateAnnouncement appends an announcement authored by the acting
// identity. The title is required; the caller validates it.
func (s *AdminService) CreateAnnouncement(ctx context.Context, input CreateAnnouncementInput) (*domain.Announcement, error) {
	doc := s.repo.Load(ctx)

	if !doc.Admin.IsLoggedIn {
		return nil, ErrNotLoggedIn
	}

	ann := domain.Announcement{
		ID:        domain.NewID("ann"),
		Title:     input.Title,
		Message:   input.Message,
		ImageURL:  optional(input.ImageURL),
		VideoURL:  optional(input.VideoURL),
		CreatedAt: time.Now().UTC(),
		CreatedBy: s.identity.EffectiveUsernameIn(doc),
	}

	doc.Announcements = append(doc.Announcements, ann)
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("creating announcement: %w", err)
	}
	return &ann, nil
}

// ListAnnouncements returns all announcements newest first. Equal
// timestamps keep their insertion order.
func (s *AdminService) ListAnnouncements(ctx context.Context) []domain.Announcement {
	doc := s.repo.Load(ctx)

	anns := make([]domain.Announcement, len(doc.Announcements))
	copy(anns, doc.Announcements)
	sort.SliceStable(anns, func(i, j int) bool {
		return anns[i].CreatedAt.After(anns[j].CreatedAt)
	})
	return anns
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

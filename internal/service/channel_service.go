package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vedran77/chatbin/internal/domain"
	"github.com/vedran77/chatbin/internal/repository"
)

var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrWrongPassword   = errors.New("incorrect password")
)

type ChannelService struct {
	repo     *repository.DocumentRepository
	identity *IdentityService
}

func NewChannelService(repo *repository.DocumentRepository, identity *IdentityService) *ChannelService {
	return &ChannelService{repo: repo, identity: identity}
}

type CreateChannelInput struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Password *string `json:"password"`
}

// Create makes a new channel with the acting identity as creator and sole
// member. Names are not checked for uniqueness; creation always succeeds.
func (s *ChannelService) Create(ctx context.Context, input CreateChannelInput) (*domain.Channel, error) {
	doc := s.repo.Load(ctx)
	username := s.identity.EffectiveUsernameIn(doc)

	chType := input.Type
	if chType == "" {
		chType = domain.ChannelTypePublic
	}

	ch := domain.Channel{
		ID:        domain.NewID("channel"),
		Name:      input.Name,
		Type:      chType,
		Password:  input.Password,
		Creator:   username,
		Members:   []string{username},
		Messages:  []domain.Message{},
		CreatedAt: time.Now().UTC(),
	}

	doc.Channels = append(doc.Channels, ch)
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("creating channel: %w", err)
	}
	return &ch, nil
}

// ListPublic returns public channels in creation order.
func (s *ChannelService) ListPublic(ctx context.Context) []domain.Channel {
	doc := s.repo.Load(ctx)
	public := []domain.Channel{}
	for _, ch := range doc.Channels {
		if ch.Type == domain.ChannelTypePublic {
			public = append(public, ch)
		}
	}
	return public
}

// ListAll returns every channel in creation order (used by the admin panel).
func (s *ChannelService) ListAll(ctx context.Context) []domain.Channel {
	doc := s.repo.Load(ctx)
	return doc.Channels
}

// Join adds the acting identity to the channel's members. Joining a channel
// you are already a member of is a no-op and does not write. A nil password
// only passes on channels without one.
func (s *ChannelService) Join(ctx context.Context, channelID string, password *string) (*domain.Channel, error) {
	doc := s.repo.Load(ctx)
	username := s.identity.EffectiveUsernameIn(doc)

	ch := findChannel(doc.Channels, channelID)
	if ch == nil {
		return nil, ErrChannelNotFound
	}

	if ch.Password != nil && (password == nil || *password != *ch.Password) {
		return nil, ErrWrongPassword
	}

	if !ch.HasMember(username) {
		ch.Members = append(ch.Members, username)
		if err := s.repo.Save(ctx, doc); err != nil {
			return nil, fmt.Errorf("joining channel: %w", err)
		}
	}

	joined := *ch
	return &joined, nil
}

// JoinPrivateByName resolves a private channel by case-insensitive name and
// joins it. If several private channels share a name, the first in document
// order wins; name uniqueness is not enforced anywhere.
func (s *ChannelService) JoinPrivateByName(ctx context.Context, name, password string) (*domain.Channel, error) {
	doc := s.repo.Load(ctx)

	for _, ch := range doc.Channels {
		if ch.Type == domain.ChannelTypePrivate && strings.EqualFold(ch.Name, name) {
			return s.Join(ctx, ch.ID, &password)
		}
	}
	return nil, ErrChannelNotFound
}

// PostMessage appends a message authored by the acting identity. There is
// no membership check: a non-member can post. That matches the shipped
// behavior and is not a security boundary.
func (s *ChannelService) PostMessage(ctx context.Context, channelID, text string) (*domain.Message, error) {
	doc := s.repo.Load(ctx)
	username := s.identity.EffectiveUsernameIn(doc)

	ch := findChannel(doc.Channels, channelID)
	if ch == nil {
		return nil, ErrChannelNotFound
	}

	msg := domain.Message{
		ID:        domain.NewID("msg"),
		Username:  username,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}

	ch.Messages = append(ch.Messages, msg)
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("posting message: %w", err)
	}
	return &msg, nil
}

func findChannel(channels []domain.Channel, id string) *domain.Channel {
	for i := range channels {
		if channels[i].ID == id {
			return &channels[i]
		}
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vedran77/chatbin/internal/domain"
	"github.com/vedran77/chatbin/internal/repository"
)

var ErrConversationNotFound = errors.New("conversation not found")

type DMService struct {
	repo     *repository.DocumentRepository
	identity *IdentityService
}

func NewDMService(repo *repository.DocumentRepository, identity *IdentityService) *DMService {
	return &DMService{repo: repo, identity: identity}
}

// Start finds or creates the conversation between the acting identity and
// otherUsername. The conversation id is derived from the sorted pair of
// usernames, so starting the same DM from either side returns the same
// conversation instead of a duplicate.
func (s *DMService) Start(ctx context.Context, otherUsername string) (*domain.Conversation, error) {
	doc := s.repo.Load(ctx)
	current := s.identity.EffectiveUsernameIn(doc)

	id, participants := domain.ConversationID(current, otherUsername)

	for i := range doc.DirectMessages {
		if doc.DirectMessages[i].ID == id {
			existing := doc.DirectMessages[i]
			return &existing, nil
		}
	}

	conv := domain.Conversation{
		ID:           id,
		Participants: participants,
		Messages:     []domain.Message{},
		CreatedAt:    time.Now().UTC(),
	}

	doc.DirectMessages = append(doc.DirectMessages, conv)
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("starting conversation: %w", err)
	}
	return &conv, nil
}

// ListMine returns the conversations the acting identity participates in.
func (s *DMService) ListMine(ctx context.Context) []domain.Conversation {
	doc := s.repo.Load(ctx)
	current := s.identity.EffectiveUsernameIn(doc)

	mine := []domain.Conversation{}
	for _, conv := range doc.DirectMessages {
		if conv.HasParticipant(current) {
			mine = append(mine, conv)
		}
	}
	return mine
}

// PostMessage appends a message to the conversation, authored by the
// acting identity.
func (s *DMService) PostMessage(ctx context.Context, conversationID, text string) (*domain.Message, error) {
	doc := s.repo.Load(ctx)
	username := s.identity.EffectiveUsernameIn(doc)

	var conv *domain.Conversation
	for i := range doc.DirectMessages {
		if doc.DirectMessages[i].ID == conversationID {
			conv = &doc.DirectMessages[i]
			break
		}
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	msg := domain.Message{
		ID:        domain.NewID("msg"),
		Username:  username,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}

	conv.Messages = append(conv.Messages, msg)
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("posting message: %w", err)
	}
	return &msg, nil
}

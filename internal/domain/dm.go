package domain

import (
	"regexp"
	"strings"
	"time"
)

// Conversation is a direct-message thread between exactly two usernames.
// Its identity is derived from the participants, so looking one up is
// idempotent from either side.
type Conversation struct {
	ID           string    `json:"id"`
	Participants []string  `json:"participants"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"createdAt"`
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// ConversationID computes the deterministic id for a pair of usernames:
// lexicographically sorted, joined with underscores, whitespace collapsed.
// ConversationID(a, b) == ConversationID(b, a).
func ConversationID(user1, user2 string) (string, []string) {
	participants := []string{user1, user2}
	if participants[0] > participants[1] {
		participants[0], participants[1] = participants[1], participants[0]
	}
	id := "dm_" + whitespaceRe.ReplaceAllString(strings.Join(participants, "_"), "_")
	return id, participants
}

// HasParticipant reports whether username is one of the two participants.
func (c *Conversation) HasParticipant(username string) bool {
	for _, p := range c.Participants {
		if p == username {
			return true
		}
	}
	return false
}

package domain

import "time"

const (
	ChannelTypePublic  = "public"
	ChannelTypePrivate = "private"
)

type Channel struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Password  *string   `json:"password"`
	Creator   string    `json:"creator"`
	Members   []string  `json:"members"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasMember reports whether username is already in the member list.
func (c *Channel) HasMember(username string) bool {
	for _, m := range c.Members {
		if m == username {
			return true
		}
	}
	return false
}

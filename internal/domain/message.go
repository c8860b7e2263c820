package domain

import "time"

// Message is append-only; there is no edit or delete. Text is stored raw,
// escaping is a presentation concern.
type Message struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

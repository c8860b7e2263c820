package domain

import "github.com/google/uuid"

// NewID returns an opaque unique token with a type prefix, e.g.
// "msg_6f1c...". The prefix keeps ids recognizable in the raw document.
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

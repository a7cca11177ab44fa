package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one chat conversation thread
type Session struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Archived    bool      `json:"archived"`
	LastMessage string    `json:"last_message,omitempty"`
}

// ParseSessionID validates a session identifier before it is used for
// navigation or a message fetch. Anything that is not a UUID is rejected
// without touching the network.
func ParseSessionID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidSessionID
	}
	return id, nil
}

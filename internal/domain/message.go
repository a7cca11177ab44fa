package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies the author of a chat message
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message represents one chat turn. The ID is client-generated for optimistic
// messages and replaced by a server-assigned value once confirmed.
type Message struct {
	ID        string    `json:"id"`
	SessionID uuid.UUID `json:"session_id,omitempty"`
	Sender    Sender    `json:"sender"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLocalMessage creates an optimistic user message before server confirmation
func NewLocalMessage(sessionID uuid.UUID, content, imageURL string) Message {
	return Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Sender:    SenderUser,
		Content:   content,
		ImageURL:  imageURL,
		CreatedAt: time.Now(),
	}
}

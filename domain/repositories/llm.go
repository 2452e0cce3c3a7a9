package repositories

import "context"

// ChatCompleter abstracts a chat-completion inference backend
type ChatCompleter interface {
	// Complete sends the messages and returns the whole assistant reply
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
	// Stream sends the messages and calls onDelta for every content fragment, in order
	Stream(ctx context.Context, messages []ChatMessage, onDelta func(delta string) error) error
}

// ChatMessage represents a single message in a prompt
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Role defines the type of message sender
type Role string

const (
	SystemRole Role = "system"
	UserRole   Role = "user"
)

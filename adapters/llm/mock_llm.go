package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/satriahrh/starlight/domain/repositories"
)

// MockLLM is a placeholder ChatCompleter for local development
type MockLLM struct{}

// NewMockLLM creates a new mock completer
func NewMockLLM() repositories.ChatCompleter {
	return &MockLLM{}
}

func (m *MockLLM) reply(messages []repositories.ChatMessage) string {
	coords := "an unknown position"
	for _, msg := range messages {
		if msg.Role == repositories.UserRole {
			coords = strings.TrimPrefix(msg.Content, "Star coordinates: ")
		}
	}
	return fmt.Sprintf("The star at %s is a main-sequence star of about one solar radius with an absolute magnitude of 4.8, yellow-white in color, lying roughly 10 light years from Earth; no exoplanets are known [].", coords)
}

// Complete implements repositories.ChatCompleter
func (m *MockLLM) Complete(ctx context.Context, messages []repositories.ChatMessage) (string, error) {
	return m.reply(messages), nil
}

// Stream implements repositories.ChatCompleter, one word per delta
func (m *MockLLM) Stream(ctx context.Context, messages []repositories.ChatMessage, onDelta func(delta string) error) error {
	words := strings.SplitAfter(m.reply(messages), " ")
	for _, word := range words {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := onDelta(word); err != nil {
			return err
		}
	}
	return nil
}

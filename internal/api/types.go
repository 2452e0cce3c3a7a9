package api

import (
	"context"

	"github.com/satriahrh/starlight/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DescriptionResponse is the namesToDesc success body
type DescriptionResponse struct {
	Success bool                `json:"success"`
	Data    *domain.Description `json:"data"`
}

// DescriptionErrorResponse is the namesToDesc failure body
type DescriptionErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// TranscriptionResponse is the speechToText success body
type TranscriptionResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// HealthResponse is the /health body
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// textRequest is the JSON body accepted by descToSpeech
type textRequest struct {
	Text string `json:"text"`
}

// DescriptionGenerator produces star descriptions, whole or streamed
type DescriptionGenerator interface {
	Describe(ctx context.Context, coords domain.Coordinates) (*domain.Description, error)
	DescribeStream(ctx context.Context, coords domain.Coordinates, onDelta func(delta string) error) (*domain.Description, error)
}

// SpeechConverter converts between text and audio
type SpeechConverter interface {
	CheckRecognitionCredentials() error
	TextToSpeech(ctx context.Context, text string) ([]byte, error)
	SpeechToText(ctx context.Context, audioData []byte, language string) (string, error)
}

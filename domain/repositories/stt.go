package repositories

import (
	"context"
	"errors"
	"time"
)

// ErrMissingCredentials is returned when a speech provider has no key or region
var ErrMissingCredentials = errors.New("missing speech credentials")

// RecognitionEngine opens speech recognition sessions over a finite audio buffer
type RecognitionEngine interface {
	NewRecognitionSession(audioData []byte, config RecognitionConfig) (RecognitionSession, error)
}

// RecognitionSession runs continuous recognition and reports through handlers.
// Handlers may be called from any goroutine.
type RecognitionSession interface {
	StartContinuous(ctx context.Context, handlers RecognitionHandlers) error
	StopContinuous() error
	Close() error
}

// RecognitionHandlers are the session callbacks
type RecognitionHandlers struct {
	// Recognized receives the text of each final recognition result
	Recognized func(text string)
	// Canceled reports a backend cancellation with its details
	Canceled func(details string)
	// SessionStopped reports the natural end of the audio
	SessionStopped func()
}

// RecognitionConfig represents audio configuration for speech recognition
type RecognitionConfig struct {
	Language              string        `json:"language"`
	InitialSilenceTimeout time.Duration `json:"initial_silence_timeout"`
	EndSilenceTimeout     time.Duration `json:"end_silence_timeout"`
}

// CredentialChecker is implemented by engines that can report missing
// credentials before any audio is sent
type CredentialChecker interface {
	CheckCredentials() error
}

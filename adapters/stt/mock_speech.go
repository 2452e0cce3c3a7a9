package stt

import (
	"context"

	"go.uber.org/zap"

	"github.com/satriahrh/starlight/domain/repositories"
)

// MockSpeechToText is a placeholder implementation for speech recognition
type MockSpeechToText struct {
	logger *zap.Logger
}

// NewMockSpeechToText creates a new mock speech-to-text service
func NewMockSpeechToText(logger *zap.Logger) repositories.RecognitionEngine {
	return &MockSpeechToText{
		logger: logger,
	}
}

// NewRecognitionSession implements repositories.RecognitionEngine
func (s *MockSpeechToText) NewRecognitionSession(audioData []byte, config repositories.RecognitionConfig) (repositories.RecognitionSession, error) {
	s.logger.Info("Initializing mock recognition session",
		zap.Int("audioSize", len(audioData)),
		zap.String("language", config.Language))

	return &MockSpeechToTextStream{logger: s.logger, audioSize: len(audioData)}, nil
}

// MockSpeechToTextStream emits canned phrases based on the audio size
type MockSpeechToTextStream struct {
	logger    *zap.Logger
	audioSize int
}

// phrases returns the mock transcription, one phrase per utterance
func (m *MockSpeechToTextStream) phrases() []string {
	switch {
	case m.audioSize > 10000:
		return []string{"Tell me about the brightest star", "and how far away it is"}
	case m.audioSize > 5000:
		return []string{"What is that red star?"}
	case m.audioSize > 1000:
		return []string{"Hello"}
	default:
		return nil
	}
}

func (m *MockSpeechToTextStream) StartContinuous(ctx context.Context, handlers repositories.RecognitionHandlers) error {
	go func() {
		for _, phrase := range m.phrases() {
			handlers.Recognized(phrase)
		}
		handlers.SessionStopped()
	}()
	return nil
}

func (m *MockSpeechToTextStream) StopContinuous() error {
	m.logger.Info("Ending mock recognition stream")
	return nil
}

func (m *MockSpeechToTextStream) Close() error {
	return nil
}

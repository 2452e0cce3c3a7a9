package tts

import (
	"context"

	"go.uber.org/zap"

	"github.com/satriahrh/starlight/domain/repositories"
)

// MockTextToSpeech is a placeholder implementation for text-to-speech
type MockTextToSpeech struct {
	logger *zap.Logger
}

// NewMockTextToSpeech creates a new mock text-to-speech service
func NewMockTextToSpeech(logger *zap.Logger) repositories.SynthesisEngine {
	return &MockTextToSpeech{
		logger: logger,
	}
}

// NewSynthesisSession implements repositories.SynthesisEngine
func (t *MockTextToSpeech) NewSynthesisSession(config repositories.VoiceConfig) (repositories.SynthesisSession, error) {
	return &mockSynthesisSession{logger: t.logger, voice: config}, nil
}

type mockSynthesisSession struct {
	logger *zap.Logger
	voice  repositories.VoiceConfig
}

func (m *mockSynthesisSession) SpeakText(ctx context.Context, text string, onResult func(repositories.SynthesisResult), onError func(error)) {
	m.logger.Info("Processing mock text-to-speech",
		zap.Int("textLength", len(text)),
		zap.String("voice", m.voice.Voice))

	// Mock audio data - generate based on text length, behind an ID3 tag
	mockAudio := make([]byte, 10+len(text)*100)
	copy(mockAudio, "ID3\x04\x00\x00\x00\x00\x00\x00")
	for i := 10; i < len(mockAudio); i++ {
		mockAudio[i] = byte(i % 256)
	}

	go onResult(repositories.SynthesisResult{
		Reason:    repositories.ReasonSynthesizingAudioCompleted,
		AudioData: mockAudio,
	})
}

func (m *mockSynthesisSession) Close() error {
	return nil
}

package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/starlight/domain/repositories"
)

const (
	DefaultVoice          = "en-US-JennyNeural"
	DefaultOutputFormat   = "audio-16khz-32kbitrate-mono-mp3"
	DefaultLanguage       = "en-US"
	initialSilenceTimeout = 20 * time.Second
	endSilenceTimeout     = 5 * time.Second
)

// SpeechService connects the speech routes to the configured engines
type SpeechService struct {
	synthesis   repositories.SynthesisEngine
	recognition repositories.RecognitionEngine
	voice       repositories.VoiceConfig
	timeout     time.Duration
	logger      *zap.Logger
}

// NewSpeechService creates a new speech service
func NewSpeechService(
	synthesis repositories.SynthesisEngine,
	recognition repositories.RecognitionEngine,
	voice repositories.VoiceConfig,
	logger *zap.Logger,
) *SpeechService {
	if voice.Voice == "" {
		voice.Voice = DefaultVoice
	}
	if voice.OutputFormat == "" {
		voice.OutputFormat = DefaultOutputFormat
	}
	return &SpeechService{
		synthesis:   synthesis,
		recognition: recognition,
		voice:       voice,
		timeout:     RecognitionTimeout,
		logger:      logger,
	}
}

// SetRecognitionTimeout overrides the recognition ceiling
func (s *SpeechService) SetRecognitionTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// CheckRecognitionCredentials reports missing recognition credentials when the engine can tell
func (s *SpeechService) CheckRecognitionCredentials() error {
	if checker, ok := s.recognition.(repositories.CredentialChecker); ok {
		return checker.CheckCredentials()
	}
	return nil
}

// TextToSpeech converts text into MP3 audio
func (s *SpeechService) TextToSpeech(ctx context.Context, text string) ([]byte, error) {
	s.logger.Info("Processing text-to-speech",
		zap.Int("textLength", len(text)),
		zap.String("voice", s.voice.Voice))

	audio, err := Synthesize(ctx, s.synthesis, text, s.voice)
	if err != nil {
		return nil, err
	}

	s.logger.Info("TTS completed", zap.Int("audioSize", len(audio)))
	return audio, nil
}

// SpeechToText transcribes WAV audio in the given language
func (s *SpeechService) SpeechToText(ctx context.Context, audioData []byte, language string) (string, error) {
	s.logger.Info("Processing speech-to-text",
		zap.Int("audioSize", len(audioData)),
		zap.String("language", language))

	config := repositories.RecognitionConfig{
		Language:              language,
		InitialSilenceTimeout: initialSilenceTimeout,
		EndSilenceTimeout:     endSilenceTimeout,
	}

	transcript, err := RecognizeWithTimeout(ctx, s.recognition, audioData, config, s.timeout)
	if err != nil {
		return "", err
	}

	s.logger.Info("Transcription completed", zap.String("text", transcript))
	return transcript, nil
}

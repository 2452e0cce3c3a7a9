package tts

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/starlight/domain/repositories"
)

// AzureConfig holds the speech resource credentials
type AzureConfig struct {
	Key      string // SPEECH_KEY
	Region   string // SPEECH_REGION, e.g. eastus
	Endpoint string // Optional: overrides https://{region}.tts.speech.microsoft.com
}

// AzureSynthesizer implements SynthesisEngine with the Azure text-to-speech REST API
type AzureSynthesizer struct {
	config AzureConfig
	client *http.Client
	logger *zap.Logger
}

var _ repositories.SynthesisEngine = (*AzureSynthesizer)(nil)

// NewAzureSynthesizer creates the engine; sessions fail while credentials are missing
func NewAzureSynthesizer(config AzureConfig, logger *zap.Logger) *AzureSynthesizer {
	config.Region = strings.ToLower(strings.TrimSpace(config.Region))
	if config.Endpoint == "" && config.Region != "" {
		config.Endpoint = fmt.Sprintf("https://%s.tts.speech.microsoft.com", config.Region)
	}
	return &AzureSynthesizer{
		config: config,
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

// NewSynthesisSession implements repositories.SynthesisEngine
func (a *AzureSynthesizer) NewSynthesisSession(config repositories.VoiceConfig) (repositories.SynthesisSession, error) {
	if a.config.Key == "" || a.config.Region == "" {
		return nil, repositories.ErrMissingCredentials
	}
	return &azureSynthesisSession{engine: a, voice: config}, nil
}

type azureSynthesisSession struct {
	engine *AzureSynthesizer
	voice  repositories.VoiceConfig

	mu     sync.Mutex
	cancel context.CancelFunc
}

func (s *azureSynthesisSession) SpeakText(ctx context.Context, text string, onResult func(repositories.SynthesisResult), onError func(error)) {
	requestCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		result, err := s.speak(requestCtx, text)
		if err != nil {
			onError(err)
			return
		}
		onResult(result)
	}()
}

func (s *azureSynthesisSession) speak(ctx context.Context, text string) (repositories.SynthesisResult, error) {
	logger := s.engine.logger

	body := buildSSML(text, s.voice)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.engine.config.Endpoint+"/cognitiveservices/v1", strings.NewReader(body))
	if err != nil {
		return repositories.SynthesisResult{}, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", s.engine.config.Key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", s.voice.OutputFormat)
	req.Header.Set("User-Agent", "starlight")

	logger.Debug("Sending request to Azure speech synthesis",
		zap.String("voice", s.voice.Voice),
		zap.String("outputFormat", s.voice.OutputFormat))

	resp, err := s.engine.client.Do(req)
	if err != nil {
		return repositories.SynthesisResult{}, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		logger.Error("Azure speech synthesis returned error",
			zap.Int("statusCode", resp.StatusCode),
			zap.String("response", string(errorBody)))
		return repositories.SynthesisResult{
			Reason:       repositories.ReasonCanceled,
			ErrorDetails: fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(errorBody))),
		}, nil
	}

	var audio bytes.Buffer
	if _, err := io.Copy(&audio, resp.Body); err != nil {
		return repositories.SynthesisResult{}, fmt.Errorf("failed to read audio: %w", err)
	}

	return repositories.SynthesisResult{
		Reason:    repositories.ReasonSynthesizingAudioCompleted,
		AudioData: audio.Bytes(),
	}, nil
}

func (s *azureSynthesisSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// buildSSML wraps text in a single-voice SSML document
func buildSSML(text string, voice repositories.VoiceConfig) string {
	language := voice.Language
	if language == "" {
		language = languageFromVoice(voice.Voice)
	}

	var escaped bytes.Buffer
	xml.EscapeText(&escaped, []byte(text))

	var attr bytes.Buffer
	xml.EscapeText(&attr, []byte(voice.Voice))

	return fmt.Sprintf("<speak version='1.0' xml:lang='%s'><voice name='%s'>%s</voice></speak>",
		language, attr.String(), escaped.String())
}

// languageFromVoice takes "en-US" out of "en-US-JennyNeural"
func languageFromVoice(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) < 3 {
		return "en-US"
	}
	return parts[0] + "-" + parts[1]
}

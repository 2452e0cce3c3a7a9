package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
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
	Endpoint string // Optional: overrides https://{region}.stt.speech.microsoft.com
}

// AzureSpeechToText implements RecognitionEngine with the Azure speech REST API
type AzureSpeechToText struct {
	config AzureConfig
	client *http.Client
	logger *zap.Logger
}

var (
	_ repositories.RecognitionEngine = (*AzureSpeechToText)(nil)
	_ repositories.CredentialChecker = (*AzureSpeechToText)(nil)
)

// azureRecognitionResponse is the simple-format recognition result
type azureRecognitionResponse struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
	Offset            int64  `json:"Offset"`
	Duration          int64  `json:"Duration"`
}

// NewAzureSpeechToText creates the engine. Missing credentials are reported
// per session so the route can answer with a configuration error.
func NewAzureSpeechToText(config AzureConfig, logger *zap.Logger) *AzureSpeechToText {
	config.Region = strings.ToLower(strings.TrimSpace(config.Region))
	if config.Endpoint == "" && config.Region != "" {
		config.Endpoint = fmt.Sprintf("https://%s.stt.speech.microsoft.com", config.Region)
	}
	return &AzureSpeechToText{
		config: config,
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

// CheckCredentials implements repositories.CredentialChecker
func (a *AzureSpeechToText) CheckCredentials() error {
	if a.config.Key == "" || a.config.Region == "" {
		return repositories.ErrMissingCredentials
	}
	return nil
}

// NewRecognitionSession implements repositories.RecognitionEngine
func (a *AzureSpeechToText) NewRecognitionSession(audioData []byte, config repositories.RecognitionConfig) (repositories.RecognitionSession, error) {
	if err := a.CheckCredentials(); err != nil {
		return nil, err
	}
	return &azureRecognitionSession{
		engine: a,
		audio:  audioData,
		config: config,
	}, nil
}

type azureRecognitionSession struct {
	engine *AzureSpeechToText
	audio  []byte
	config repositories.RecognitionConfig

	mu       sync.Mutex
	cancel   context.CancelFunc
	stopping bool
}

func (s *azureRecognitionSession) StartContinuous(ctx context.Context, handlers repositories.RecognitionHandlers) error {
	requestURL, err := url.Parse(s.engine.config.Endpoint + "/speech/recognition/conversation/cognitiveservices/v1")
	if err != nil {
		return fmt.Errorf("invalid speech endpoint: %w", err)
	}
	query := requestURL.Query()
	query.Set("language", s.config.Language)
	query.Set("format", "simple")
	requestURL.RawQuery = query.Encode()

	requestCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, requestURL.String(), bytes.NewReader(s.audio))
	if err != nil {
		cancel()
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", s.engine.config.Key)
	req.Header.Set("Content-Type", "audio/wav; codecs=audio/pcm")
	req.Header.Set("Accept", "application/json")

	go s.run(req, handlers)
	return nil
}

func (s *azureRecognitionSession) run(req *http.Request, handlers repositories.RecognitionHandlers) {
	logger := s.engine.logger

	resp, err := s.engine.client.Do(req)
	if err != nil {
		if s.isStopping() || errors.Is(err, context.Canceled) {
			handlers.SessionStopped()
			return
		}
		handlers.Canceled(err.Error())
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		logger.Error("Azure speech API returned error",
			zap.Int("statusCode", resp.StatusCode),
			zap.String("response", string(errorBody)))
		handlers.Canceled(fmt.Sprintf("speech service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(errorBody))))
		return
	}

	var result azureRecognitionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		handlers.Canceled(fmt.Sprintf("failed to decode recognition result: %v", err))
		return
	}

	logger.Info("Azure recognition finished",
		zap.String("status", result.RecognitionStatus),
		zap.Int("textLength", len(result.DisplayText)))

	switch result.RecognitionStatus {
	case "Success":
		handlers.Recognized(result.DisplayText)
		handlers.SessionStopped()
	case "NoMatch", "InitialSilenceTimeout", "BabbleTimeout":
		handlers.SessionStopped()
	default:
		handlers.Canceled("recognition status " + result.RecognitionStatus)
	}
}

func (s *azureRecognitionSession) isStopping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopping
}

func (s *azureRecognitionSession) StopContinuous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopping = true
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

func (s *azureRecognitionSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

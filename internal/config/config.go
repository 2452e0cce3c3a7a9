package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Provider names accepted in *_PROVIDER variables
const (
	ProviderAzure      = "azure"
	ProviderElevenLabs = "elevenlabs"
	ProviderGoogle     = "google"
	ProviderElastic    = "elastic"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

// Config holds the server settings read from the environment
type Config struct {
	Port   string
	AppEnv string

	SpeechKey    string
	SpeechRegion string
	SpeechVoice  string

	TTSProvider string
	STTProvider string

	InferenceProvider string
	ElasticNode       string
	ElasticAPIKey     string
	ElasticLLMID      string
	GeminiAPIKey      string
	GeminiModel       string

	CoordsLookupURL string
}

// Load reads .env when present, then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from the current environment, applying defaults
func FromEnv() *Config {
	return &Config{
		Port:   getEnv("PORT", "3000"),
		AppEnv: getEnv("APP_ENV", "production"),

		SpeechKey:    getEnv("SPEECH_KEY", ""),
		SpeechRegion: strings.ToLower(getEnv("SPEECH_REGION", "")),
		SpeechVoice:  getEnv("SPEECH_VOICE", "en-US-JennyNeural"),

		TTSProvider: strings.ToLower(getEnv("TTS_PROVIDER", ProviderAzure)),
		STTProvider: strings.ToLower(getEnv("STT_PROVIDER", ProviderAzure)),

		InferenceProvider: strings.ToLower(getEnv("INFERENCE_PROVIDER", ProviderElastic)),
		ElasticNode:       getEnv("ELASTIC_NODE", ""),
		ElasticAPIKey:     getEnv("ELASTIC_API_KEY", ""),
		ElasticLLMID:      getEnv("ELASTIC_LLM_ID", ".rainbow-sprinkles-elastic"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		CoordsLookupURL: getEnv("COORDS_LOOKUP_URL", ""),
	}
}

// Validate rejects unknown providers and missing settings for the selected ones
func (c *Config) Validate() error {
	if !oneOf(c.TTSProvider, ProviderAzure, ProviderElevenLabs, ProviderMock) {
		return fmt.Errorf("unknown TTS_PROVIDER %q", c.TTSProvider)
	}
	if !oneOf(c.STTProvider, ProviderAzure, ProviderGoogle, ProviderMock) {
		return fmt.Errorf("unknown STT_PROVIDER %q", c.STTProvider)
	}
	if !oneOf(c.InferenceProvider, ProviderElastic, ProviderGemini, ProviderMock) {
		return fmt.Errorf("unknown INFERENCE_PROVIDER %q", c.InferenceProvider)
	}
	if c.InferenceProvider == ProviderElastic && c.ElasticNode == "" {
		return fmt.Errorf("ELASTIC_NODE is required when INFERENCE_PROVIDER is %s", ProviderElastic)
	}
	return nil
}

// IsDevelopment reports whether APP_ENV selects development logging
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func oneOf(value string, options ...string) bool {
	for _, option := range options {
		if value == option {
			return true
		}
	}
	return false
}

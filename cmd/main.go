package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/starlight/adapters/llm"
	"github.com/satriahrh/starlight/adapters/lookup"
	"github.com/satriahrh/starlight/adapters/stt"
	"github.com/satriahrh/starlight/adapters/tts"
	"github.com/satriahrh/starlight/domain/repositories"
	"github.com/satriahrh/starlight/internal/api"
	"github.com/satriahrh/starlight/internal/config"
	"github.com/satriahrh/starlight/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Initialize adapters
	synthesis, err := newSynthesisEngine(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create speech synthesis engine", zap.Error(err))
	}

	recognition, closeRecognition, err := newRecognitionEngine(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create speech recognition engine", zap.Error(err))
	}
	defer closeRecognition()

	completer, err := newChatCompleter(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create inference client", zap.Error(err))
	}

	coordinateLookup, err := lookup.New(cfg.CoordsLookupURL, logger)
	if err != nil {
		logger.Fatal("Failed to create coordinate lookup", zap.Error(err))
	}

	// Initialize usecase services
	speechService := usecase.NewSpeechService(synthesis, recognition, repositories.VoiceConfig{
		Voice:        cfg.SpeechVoice,
		OutputFormat: usecase.DefaultOutputFormat,
	}, logger)
	descriptionService := usecase.NewDescriptionService(completer, logger)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	api.UseMiddleware(e, logger)

	// Initialize API routes
	api.InitRoutes(e, api.Services{
		Lookup:       coordinateLookup,
		Descriptions: descriptionService,
		Speech:       speechService,
	}, logger)

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.String("port", cfg.Port),
		zap.String("ttsProvider", cfg.TTSProvider),
		zap.String("sttProvider", cfg.STTProvider),
		zap.String("inferenceProvider", cfg.InferenceProvider))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newSynthesisEngine(cfg *config.Config, logger *zap.Logger) (repositories.SynthesisEngine, error) {
	switch cfg.TTSProvider {
	case config.ProviderElevenLabs:
		return tts.NewElevenLabsTTS(tts.NewElevenLabsConfigFromEnv(), logger)
	case config.ProviderMock:
		return tts.NewMockTextToSpeech(logger), nil
	default:
		return tts.NewAzureSynthesizer(tts.AzureConfig{
			Key:    cfg.SpeechKey,
			Region: cfg.SpeechRegion,
		}, logger), nil
	}
}

func newRecognitionEngine(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.RecognitionEngine, func(), error) {
	switch cfg.STTProvider {
	case config.ProviderGoogle:
		engine, err := stt.NewGoogleSpeechToText(ctx, logger)
		if err != nil {
			return nil, nil, err
		}
		return engine, func() {
			if err := engine.Close(); err != nil {
				logger.Warn("Failed to close speech client", zap.Error(err))
			}
		}, nil
	case config.ProviderMock:
		return stt.NewMockSpeechToText(logger), func() {}, nil
	default:
		return stt.NewAzureSpeechToText(stt.AzureConfig{
			Key:    cfg.SpeechKey,
			Region: cfg.SpeechRegion,
		}, logger), func() {}, nil
	}
}

func newChatCompleter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.ChatCompleter, error) {
	switch cfg.InferenceProvider {
	case config.ProviderGemini:
		return llm.NewGeminiLLM(ctx, llm.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		}, logger)
	case config.ProviderMock:
		return llm.NewMockLLM(), nil
	default:
		return llm.NewElasticInference(llm.ElasticConfig{
			Node:    cfg.ElasticNode,
			APIKey:  cfg.ElasticAPIKey,
			ModelID: cfg.ElasticLLMID,
		}, logger)
	}
}

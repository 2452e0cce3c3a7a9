package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/starlight/domain/repositories"
	"github.com/satriahrh/starlight/internal/wav"
	"github.com/satriahrh/starlight/usecase"
)

const missingCredentials = "Missing SPEECH_KEY or SPEECH_REGION (e.g., eastus)."

func speechToText(speech SpeechConverter, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := speech.CheckRecognitionCredentials(); err != nil {
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: missingCredentials})
		}

		contentType := c.Request().Header.Get(echo.HeaderContentType)
		if !strings.Contains(contentType, "audio/wav") && !strings.Contains(contentType, "audio/x-wav") {
			return c.JSON(http.StatusUnsupportedMediaType, ErrorResponse{
				Error: "Send raw WAV audio with Content-Type: audio/wav.",
			})
		}

		audio, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return err
		}
		if len(audio) == 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No audio data received."})
		}
		if !wav.IsWAV(audio) {
			return c.JSON(http.StatusUnsupportedMediaType, ErrorResponse{
				Error: "Invalid WAV header. Provide RIFF/WAVE PCM WAV (e.g., 16kHz mono PCM).",
			})
		}

		language := strings.TrimSpace(c.QueryParam("lang"))
		if language == "" {
			language = usecase.DefaultLanguage
		}

		transcript, err := speech.SpeechToText(c.Request().Context(), audio, language)
		if err != nil {
			logger.Error("Speech-to-text error", zap.Error(err))
			if errors.Is(err, repositories.ErrMissingCredentials) {
				return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: missingCredentials})
			}
			return c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "Speech-to-text conversion error: " + recognitionDetails(err),
			})
		}

		if transcript == "" {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "No speech recognized (silence or unsupported audio).",
			})
		}
		return c.JSON(http.StatusOK, TranscriptionResponse{Text: transcript, Language: language})
	}
}

// recognitionDetails prefers the backend's cancellation details over the wrapped message
func recognitionDetails(err error) string {
	var canceled *usecase.RecognitionCanceledError
	if errors.As(err, &canceled) {
		return canceled.Details
	}
	return err.Error()
}

package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/starlight/usecase"
)

// requestText reads the text to speak from the query, a JSON body or a plain text body
func requestText(c echo.Context) (string, error) {
	if text := c.QueryParam("text"); text != "" {
		return text, nil
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return "", err
	}
	if len(body) == 0 {
		return "", nil
	}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	switch {
	case strings.HasPrefix(contentType, echo.MIMEApplicationJSON):
		var req textRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return "", nil
		}
		return req.Text, nil
	case strings.HasPrefix(contentType, echo.MIMETextPlain):
		return strings.TrimSpace(string(body)), nil
	}
	return "", nil
}

func descToSpeech(speech SpeechConverter, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger.Info("Processing speech request", zap.String("uri", c.Request().RequestURI))

		text, err := requestText(c)
		if err != nil {
			return err
		}
		if text == "" {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing text input."})
		}

		audio, err := speech.TextToSpeech(c.Request().Context(), text)
		if errors.Is(err, usecase.ErrSynthesisFailed) {
			logger.Warn("Speech synthesis failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Speech synthesis failed."})
		}
		if err != nil {
			logger.Error("Speech synthesis error", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Azure Speech synthesis error."})
		}

		header := c.Response().Header()
		header.Set(echo.HeaderContentDisposition, `inline; filename="speech.mp3"`)
		header.Set(echo.HeaderAccessControlAllowOrigin, "*")
		return c.Blob(http.StatusOK, "audio/mpeg", audio)
	}
}

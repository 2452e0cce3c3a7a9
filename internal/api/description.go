package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/starlight/internal/websocket"
)

var missingRA = ErrorResponse{
	Error:   "Missing RA parameter",
	Message: "RA (Right Ascension) is required",
}

func namesToDesc(descriptions DescriptionGenerator, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		setHeaders(c, descriptionHeaders)

		coords, ok := descriptionCoordinates(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, missingRA)
		}

		description, err := descriptions.Describe(c.Request().Context(), coords)
		if err != nil {
			logger.Error("LLM completion failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, DescriptionErrorResponse{
				Success: false,
				Error:   "LLM completion failed",
				Message: err.Error(),
			})
		}

		return c.JSON(http.StatusOK, DescriptionResponse{Success: true, Data: description})
	}
}

// namesToDescStream validates like namesToDesc, then hands the connection to the websocket stream
func namesToDescStream(descriptions DescriptionGenerator, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		coords, ok := descriptionCoordinates(c)
		if !ok {
			setHeaders(c, descriptionHeaders)
			return c.JSON(http.StatusBadRequest, missingRA)
		}
		return websocket.ServeDescriptionStream(c, descriptions, coords, logger)
	}
}

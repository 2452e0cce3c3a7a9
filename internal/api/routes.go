package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/satriahrh/starlight/domain"
	"github.com/satriahrh/starlight/domain/repositories"
)

// speechBodyLimit caps raw WAV uploads
const speechBodyLimit = "10M"

// Services are the backends the routes mediate
type Services struct {
	Lookup       repositories.CoordinateLookup
	Descriptions DescriptionGenerator
	Speech       SpeechConverter
}

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, services Services, logger *zap.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{
			Status:    "OK",
			Timestamp: domain.Timestamp(time.Now()),
		})
	})

	routes := e.Group("/api")

	coords := coordsToName(services.Lookup, logger)
	routes.GET("/coordsToName", coords)
	routes.POST("/coordsToName", coords)
	routes.OPTIONS("/coordsToName", preflight(coordsHeaders))

	speech := descToSpeech(services.Speech, logger)
	routes.GET("/descToSpeech", speech)
	routes.POST("/descToSpeech", speech)

	routes.GET("/namesToDesc", namesToDesc(services.Descriptions, logger))
	routes.OPTIONS("/namesToDesc", preflight(descriptionHeaders))
	routes.GET("/namesToDesc/stream", namesToDescStream(services.Descriptions, logger))

	routes.POST("/speechToText", speechToText(services.Speech, logger), middleware.BodyLimit(speechBodyLimit))
}

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/starlight/domain"
	"github.com/satriahrh/starlight/domain/repositories"
)

var (
	// coordsHeaders are set on every coordsToName response
	coordsHeaders = map[string]string{
		echo.HeaderAccessControlAllowOrigin:  "*",
		echo.HeaderAccessControlAllowMethods: "GET,POST,OPTIONS",
		echo.HeaderAccessControlAllowHeaders: "Content-Type",
	}

	// descriptionHeaders are set on every namesToDesc response
	descriptionHeaders = map[string]string{
		echo.HeaderAccessControlAllowOrigin:  "*",
		echo.HeaderAccessControlAllowMethods: "GET,POST,OPTIONS",
		echo.HeaderAccessControlAllowHeaders: "Content-Type, Authorization",
	}
)

func setHeaders(c echo.Context, headers map[string]string) {
	for k, v := range headers {
		c.Response().Header().Set(k, v)
	}
}

// preflight answers OPTIONS with 204 and the route's CORS headers
func preflight(headers map[string]string) echo.HandlerFunc {
	return func(c echo.Context) error {
		setHeaders(c, headers)
		return c.NoContent(http.StatusNoContent)
	}
}

// queryOrDefault returns the trimmed query value, or fallback when it is absent or blank
func queryOrDefault(c echo.Context, name, fallback string) string {
	if v := strings.TrimSpace(c.QueryParam(name)); v != "" {
		return v
	}
	return fallback
}

// parseRadius reads the radius query parameter. Absent or blank gives the default.
func parseRadius(c echo.Context) (float64, bool) {
	raw := strings.TrimSpace(c.QueryParam("radius"))
	if raw == "" {
		return domain.DefaultRadius, true
	}
	radius, err := strconv.ParseFloat(raw, 64)
	if err != nil || radius <= 0 {
		return 0, false
	}
	return radius, true
}

// descriptionCoordinates reads RA and Declination for the description routes.
// An RA parameter that is present but blank is rejected.
func descriptionCoordinates(c echo.Context) (domain.Coordinates, bool) {
	if values, ok := c.QueryParams()["RA"]; ok && (len(values) == 0 || strings.TrimSpace(values[0]) == "") {
		return domain.Coordinates{}, false
	}
	return domain.Coordinates{
		RA:  queryOrDefault(c, "RA", domain.DefaultRA),
		Dec: queryOrDefault(c, "Declination", domain.DefaultDeclination),
	}, true
}

func coordsToName(lookup repositories.CoordinateLookup, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		setHeaders(c, coordsHeaders)

		radius, ok := parseRadius(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid radius parameter",
				Message: "radius must be a positive number",
			})
		}

		coords := domain.Coordinates{
			RA:     queryOrDefault(c, "RA", domain.DefaultRA),
			Dec:    queryOrDefault(c, "Declination", domain.DefaultDeclination),
			Radius: radius,
		}

		name, err := lookup.Lookup(c.Request().Context(), coords)
		if errors.Is(err, repositories.ErrNotImplemented) {
			return c.JSON(http.StatusNotImplemented, ErrorResponse{
				Error: "Coordinate lookup is not implemented",
			})
		}
		if err != nil {
			logger.Error("coordsToName error",
				zap.String("ra", coords.RA),
				zap.String("dec", coords.Dec),
				zap.Float64("radius", coords.Radius),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: errInternalServer})
		}

		return c.String(http.StatusOK, name)
	}
}

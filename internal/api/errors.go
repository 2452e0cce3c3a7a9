package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	errRouteNotFound  = "Route not found"
	errInternalServer = "Internal Server Error"
)

// NewHTTPErrorHandler renders unhandled errors as JSON. Unknown routes and
// methods answer 404, echo errors keep their status and anything else is a 500.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := ErrorResponse{Error: errInternalServer}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			switch {
			case he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed:
				status = http.StatusNotFound
				body.Error = errRouteNotFound
			case he.Code < http.StatusInternalServerError:
				status = he.Code
				body.Error = fmt.Sprint(he.Message)
			}
		}

		if status >= http.StatusInternalServerError {
			logger.Error("Server Error",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}

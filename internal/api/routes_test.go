package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHealth(t *testing.T) {
	e := newTestServer(Services{})

	rec := serve(e, http.MethodGet, "/health", nil, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "OK" {
		t.Errorf("Expected status OK, got %v", body["status"])
	}
	if ts, _ := body["timestamp"].(string); len(ts) != len("2006-01-02T15:04:05.000Z") {
		t.Errorf("Unexpected timestamp %v", body["timestamp"])
	}
}

func TestRouteNotFound(t *testing.T) {
	e := newTestServer(Services{})

	tests := []struct {
		name   string
		method string
		target string
	}{
		{"unknown path", http.MethodGet, "/api/unknown"},
		{"root", http.MethodGet, "/"},
		{"unregistered method", http.MethodDelete, "/api/coordsToName"},
		{"get on post-only route", http.MethodGet, "/api/speechToText"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, tt.method, tt.target, nil, "")
			assertError(t, rec, http.StatusNotFound, "Route not found")
		})
	}
}

func TestPanicRecovered(t *testing.T) {
	e := newTestServer(Services{})
	e.GET("/boom", func(c echo.Context) error {
		panic("boom")
	})

	rec := serve(e, http.MethodGet, "/boom", nil, "")
	assertError(t, rec, http.StatusInternalServerError, "Internal Server Error")
}

func TestUnhandledErrorIsInternal(t *testing.T) {
	e := newTestServer(Services{})
	e.GET("/fail", func(c echo.Context) error {
		return errors.New("database exploded")
	})

	rec := serve(e, http.MethodGet, "/fail", nil, "")
	assertError(t, rec, http.StatusInternalServerError, "Internal Server Error")
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	e := newTestServer(Services{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:5173")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "*" {
		t.Errorf("Expected Access-Control-Allow-Origin *, got %q", got)
	}
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Error("Expected a request id header")
	}
}

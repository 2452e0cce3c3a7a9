package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/starlight/domain"
)

type fakeLookup struct {
	name   string
	err    error
	coords domain.Coordinates
	calls  int
}

func (f *fakeLookup) Lookup(ctx context.Context, coords domain.Coordinates) (string, error) {
	f.calls++
	f.coords = coords
	return f.name, f.err
}

type fakeDescriptions struct {
	text   string
	err    error
	coords domain.Coordinates
	calls  int
}

func (f *fakeDescriptions) Describe(ctx context.Context, coords domain.Coordinates) (*domain.Description, error) {
	f.calls++
	f.coords = coords
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Description{
		LLMResponse: f.text,
		Coordinates: coords,
		Timestamp:   "2024-01-01T00:00:00.000Z",
	}, nil
}

func (f *fakeDescriptions) DescribeStream(ctx context.Context, coords domain.Coordinates, onDelta func(delta string) error) (*domain.Description, error) {
	if err := onDelta(f.text); err != nil {
		return nil, err
	}
	return f.Describe(ctx, coords)
}

type fakeSpeech struct {
	credErr error

	audio    []byte
	ttsErr   error
	ttsCalls int
	text     string

	transcript string
	sttErr     error
	sttCalls   int
	language   string
}

func (f *fakeSpeech) CheckRecognitionCredentials() error { return f.credErr }

func (f *fakeSpeech) TextToSpeech(ctx context.Context, text string) ([]byte, error) {
	f.ttsCalls++
	f.text = text
	return f.audio, f.ttsErr
}

func (f *fakeSpeech) SpeechToText(ctx context.Context, audioData []byte, language string) (string, error) {
	f.sttCalls++
	f.language = language
	return f.transcript, f.sttErr
}

func newTestServer(services Services) *echo.Echo {
	if services.Lookup == nil {
		services.Lookup = &fakeLookup{}
	}
	if services.Descriptions == nil {
		services.Descriptions = &fakeDescriptions{}
	}
	if services.Speech == nil {
		services.Speech = &fakeSpeech{}
	}

	e := echo.New()
	logger := zap.NewNop()
	UseMiddleware(e, logger)
	InitRoutes(e, services, logger)
	return e
}

func serve(e *echo.Echo, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Response is not JSON: %v (%s)", err, rec.Body.String())
	}
	return body
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rec.Code != status {
		t.Errorf("Expected status %d, got %d (%s)", status, rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["error"] != message {
		t.Errorf("Expected error %q, got %v", message, body["error"])
	}
}


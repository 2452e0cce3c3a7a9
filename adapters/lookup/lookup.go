package lookup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/starlight/domain"
	"github.com/satriahrh/starlight/domain/repositories"
)

// Unconfigured is the lookup used while no backend URL is set
type Unconfigured struct{}

var _ repositories.CoordinateLookup = Unconfigured{}

// Lookup always reports repositories.ErrNotImplemented
func (Unconfigured) Lookup(ctx context.Context, coords domain.Coordinates) (string, error) {
	return "", repositories.ErrNotImplemented
}

// HTTPLookup GETs a configured URL with the coordinates as query parameters
type HTTPLookup struct {
	endpoint *url.URL
	client   *http.Client
	logger   *zap.Logger
}

var _ repositories.CoordinateLookup = (*HTTPLookup)(nil)

// NewHTTPLookup parses endpoint once
func NewHTTPLookup(endpoint string, logger *zap.Logger) (*HTTPLookup, error) {
	u, err := url.ParseRequestURI(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid lookup URL %q: %w", endpoint, err)
	}
	return &HTTPLookup{
		endpoint: u,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}, nil
}

// New picks HTTPLookup when endpoint is set
func New(endpoint string, logger *zap.Logger) (repositories.CoordinateLookup, error) {
	if endpoint == "" {
		logger.Warn("COORDS_LOOKUP_URL not set, coordinate lookup is disabled")
		return Unconfigured{}, nil
	}
	return NewHTTPLookup(endpoint, logger)
}

// Lookup implements repositories.CoordinateLookup
func (h *HTTPLookup) Lookup(ctx context.Context, coords domain.Coordinates) (string, error) {
	u := *h.endpoint
	query := u.Query()
	query.Set("RA", coords.RA)
	query.Set("Declination", coords.Dec)
	query.Set("radius", strconv.FormatFloat(coords.Radius, 'f', -1, 64))
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read lookup response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		h.logger.Error("Coordinate lookup returned error",
			zap.Int("statusCode", resp.StatusCode),
			zap.String("response", string(body)))
		return "", fmt.Errorf("lookup returned error %d", resp.StatusCode)
	}

	return string(body), nil
}

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"github.com/satriahrh/starlight/domain/repositories"
	"github.com/satriahrh/starlight/internal/sse"
)

const defaultElasticModelID = ".rainbow-sprinkles-elastic"

// ElasticConfig holds configuration for the Elastic inference adapter
// Required fields:
// - Node: Elasticsearch endpoint URL
// Optional fields with defaults:
// - APIKey: Elastic API key, passed through as is
// - ModelID: inference endpoint id (default: ".rainbow-sprinkles-elastic")
type ElasticConfig struct {
	Node    string
	APIKey  string
	ModelID string
}

// ElasticInference implements ChatCompleter over the Elastic inference streaming API
type ElasticInference struct {
	client  *elasticsearch.Client
	modelID string
	logger  *zap.Logger
}

var _ repositories.ChatCompleter = (*ElasticInference)(nil)

type chatCompletionRequest struct {
	Messages []repositories.ChatMessage `json:"messages"`
}

// ValidateElasticConfig validates the ElasticConfig
func ValidateElasticConfig(config ElasticConfig) error {
	if config.Node == "" {
		return fmt.Errorf("elastic node URL is required")
	}
	if _, err := url.ParseRequestURI(config.Node); err != nil {
		return fmt.Errorf("invalid elastic node URL %q: %w", config.Node, err)
	}
	return nil
}

// NewElasticInference creates the client once; it is reused for every request
func NewElasticInference(config ElasticConfig, logger *zap.Logger) (*ElasticInference, error) {
	if err := ValidateElasticConfig(config); err != nil {
		return nil, err
	}

	modelID := config.ModelID
	if modelID == "" {
		modelID = defaultElasticModelID
		logger.Info("Using default inference model", zap.String("modelID", modelID))
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{config.Node},
		APIKey:    config.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	return &ElasticInference{
		client:  client,
		modelID: modelID,
		logger:  logger,
	}, nil
}

// Complete reads the whole event stream and extracts the assistant text
func (e *ElasticInference) Complete(ctx context.Context, messages []repositories.ChatMessage) (string, error) {
	body, err := e.openStream(ctx, messages)
	if err != nil {
		return "", err
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read inference stream: %w", err)
	}

	e.logger.Debug("Inference stream received", zap.Int("bytes", len(raw)))
	return sse.ExtractText(string(raw)), nil
}

// Stream forwards each content fragment as the backend emits it
func (e *ElasticInference) Stream(ctx context.Context, messages []repositories.ChatMessage, onDelta func(delta string) error) error {
	body, err := e.openStream(ctx, messages)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := sse.Decode(body, onDelta); err != nil {
		return fmt.Errorf("failed to read inference stream: %w", err)
	}
	return nil
}

func (e *ElasticInference) openStream(ctx context.Context, messages []repositories.ChatMessage) (io.ReadCloser, error) {
	requestBody, err := json.Marshal(chatCompletionRequest{Messages: messages})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	path := "/_inference/chat_completion/" + url.PathEscape(e.modelID) + "/_stream"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, path, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	e.logger.Info("Sending request to Elastic inference",
		zap.String("modelID", e.modelID),
		zap.Int("messages", len(messages)))

	resp, err := e.client.Perform(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		errorBody, _ := io.ReadAll(resp.Body)
		e.logger.Error("Elastic inference returned error",
			zap.Int("statusCode", resp.StatusCode),
			zap.String("response", string(errorBody)))
		return nil, fmt.Errorf("inference API returned error %d: %s", resp.StatusCode, string(errorBody))
	}

	return resp.Body, nil
}

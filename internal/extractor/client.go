package extractor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go-id-extractor/internal/config"
	apperrors "go-id-extractor/internal/errors"
)

// ServiceStatus describes the reachability of the external model service
type ServiceStatus string

const (
	StatusHealthy   ServiceStatus = "healthy"
	StatusDegraded  ServiceStatus = "degraded"
	StatusUnhealthy ServiceStatus = "unhealthy"
)

// Client talks to the external vision-language model service. The service is
// consumed as an opaque free-text generator; all structure is recovered by
// the response parser.
type Client struct {
	endpoint       string
	healthEndpoint string
	model          string
	apiKey         string
	httpClient     *http.Client
}

// NewClient creates a client from the VLM configuration
func NewClient(cfg config.VLMConfig) *Client {
	return &Client{
		endpoint:       cfg.Endpoint,
		healthEndpoint: cfg.HealthEndpoint,
		model:          cfg.Model,
		apiKey:         cfg.APIKey,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
	}
}

// NewClientWithEndpoint creates a client pointing at a custom endpoint (for testing)
func NewClientWithEndpoint(cfg config.VLMConfig, endpoint, healthEndpoint string) *Client {
	c := NewClient(cfg)
	c.endpoint = endpoint
	c.healthEndpoint = healthEndpoint
	return c
}

// Model returns the configured model identifier
func (c *Client) Model() string {
	return c.model
}

// generateRequest is the outbound payload for the generation endpoint
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Images  []string        `json:"images"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

// generateResponse is the inbound payload from the generation endpoint
type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Extract sends the processed image to the model service and returns the raw
// free-text response. The context is the cancellation token: it is checked
// before the call and aborts an in-flight request; a cancelled call surfaces
// apperrors.ErrCancelled, never a plain network error.
func (c *Client) Extract(ctx context.Context, imageData []byte, opts ExtractionOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", cancellation(err)
	}

	reqBody := generateRequest{
		Model:  c.model,
		Prompt: BuildPrompt(opts),
		Images: []string{base64.StdEncoding.EncodeToString(imageData)},
		Stream: false,
		Options: generateOptions{
			Temperature: opts.Temperature,
			NumPredict:  opts.MaxTokens,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperrors.NewInternalError("marshaling extraction request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", apperrors.NewInternalError("creating extraction request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				return "", apperrors.NewTimeoutError("model service call timed out", err)
			}
			return "", cancellation(ctxErr)
		}
		return "", apperrors.NewNetworkError("calling model service", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewNetworkError("reading model service response", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("model service error (status %d): %s", resp.StatusCode, truncate(string(respBody), 200))
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", apperrors.NewRateLimitError("model service rate limited", baseErr)
		}
		return "", apperrors.NewNetworkError("model service request failed", baseErr)
	}

	var decoded generateResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", apperrors.NewInvalidResponseError(
			"unexpected model service envelope", truncate(string(respBody), rawExcerptLimit), err)
	}
	if decoded.Response == "" {
		return "", apperrors.NewInvalidResponseError(
			"empty response from model service", truncate(string(respBody), rawExcerptLimit), nil)
	}
	return decoded.Response, nil
}

// tagsResponse models the health endpoint's model listing
type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Health probes whether the model service is reachable and whether the
// configured model identifier is loaded. Unreachable means unhealthy; a
// reachable service without the expected model is degraded.
func (c *Client) Health(ctx context.Context) (ServiceStatus, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthEndpoint, nil)
	if err != nil {
		return StatusUnhealthy, "invalid health endpoint"
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return StatusUnhealthy, "model service unreachable"
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return StatusUnhealthy, fmt.Sprintf("model service returned status %d", resp.StatusCode)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return StatusDegraded, "model listing unreadable"
	}
	for _, m := range tags.Models {
		if m.Name == c.model || strings.HasPrefix(m.Name, c.model+":") {
			return StatusHealthy, ""
		}
	}
	return StatusDegraded, fmt.Sprintf("model %q is not loaded", c.model)
}

func cancellation(cause error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrCancelled, cause)
}

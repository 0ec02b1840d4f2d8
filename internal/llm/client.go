package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/RichardoC/chatbot-core/internal/models"
)

const (
	// DefaultEndpoint is the chat completions endpoint of the hosted API.
	DefaultEndpoint = "https://api.intelligence.io.solutions/api/v1/chat/completions"
	DefaultTimeout  = 60 * time.Second

	maxErrorBody    = 512
	// maxResponseBody caps how much of any response is read into memory.
	maxResponseBody = 8 << 20
)

// ErrMalformedResponse is returned when a 200 response does not carry
// choices[0].message.content.
var ErrMalformedResponse = errors.New("malformed completion response")

// StatusError reports a non-200 answer from the remote endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("completion request failed: status=%d body=%s", e.StatusCode, e.Body)
}

// Completer performs one request/response exchange with a remote model and
// returns the first choice's message.
type Completer interface {
	Complete(ctx context.Context, apiKey string, model models.Model, messages []models.Payload) (models.Payload, error)
}

// HTTPClient talks to an OpenAI-compatible chat completions endpoint.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
}

type Option func(*HTTPClient)

func WithEndpoint(endpoint string) Option {
	return func(c *HTTPClient) { c.endpoint = endpoint }
}

// WithTimeout bounds every exchange, including reading the response body.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) { c.httpClient.Timeout = timeout }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = httpClient }
}

func NewHTTPClient(opts ...Option) *HTTPClient {
	c := &HTTPClient{
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatRequest struct {
	Model    models.Model     `json:"model"`
	Messages []models.Payload `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message *struct {
			Role    models.Role `json:"role"`
			Content *string     `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *HTTPClient) Complete(ctx context.Context, apiKey string, model models.Model, messages []models.Payload) (models.Payload, error) {
	payload, err := json.Marshal(chatRequest{Model: model, Messages: messages})
	if err != nil {
		return models.Payload{}, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return models.Payload{}, fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Payload{}, fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return models.Payload{}, fmt.Errorf("failed reading completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return models.Payload{}, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return models.Payload{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message == nil || parsed.Choices[0].Message.Content == nil {
		return models.Payload{}, fmt.Errorf("%w: missing choices[0].message.content", ErrMalformedResponse)
	}

	msg := parsed.Choices[0].Message
	role := msg.Role
	if role == "" {
		role = models.RoleAssistant
	}
	return models.Payload{Role: role, Content: *msg.Content}, nil
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}

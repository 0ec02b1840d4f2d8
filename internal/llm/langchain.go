package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/RichardoC/chatbot-core/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrUnsupportedRole is returned when a history entry has a role that the
// langchaingo message model cannot carry as plain text.
var ErrUnsupportedRole = errors.New("role not supported by langchain backend")

// LangChainClient runs the exchange through langchaingo's OpenAI client.
// It targets the same endpoint as HTTPClient, addressed by its base URL.
//
// langchaingo only sends tool messages that answer a tool call, so a history
// holding a plain-text tool message cannot be sent through this client: every
// later turn of that session fails with ErrUnsupportedRole until the history
// is cleared. Use HTTPClient for sessions that append tool messages.
type LangChainClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewLangChainClient accepts either a base URL or a full chat completions
// endpoint; the trailing /chat/completions is dropped.
func NewLangChainClient(endpoint string, httpClient *http.Client) *LangChainClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &LangChainClient{
		baseURL:    strings.TrimSuffix(strings.TrimSuffix(endpoint, "/"), "/chat/completions"),
		httpClient: httpClient,
	}
}

func (c *LangChainClient) Complete(ctx context.Context, apiKey string, model models.Model, messages []models.Payload) (models.Payload, error) {
	recorder := &statusRecorder{doer: c.httpClient}
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(c.baseURL),
		openai.WithModel(model.String()),
		openai.WithHTTPClient(recorder),
	)
	if err != nil {
		return models.Payload{}, fmt.Errorf("failed to initialize langchain client: %w", err)
	}

	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		msgType, err := messageType(m.Role)
		if err != nil {
			return models.Payload{}, err
		}
		content = append(content, llms.TextParts(msgType, m.Content))
	}

	resp, err := llm.GenerateContent(ctx, content)
	if err != nil {
		if recorder.status != 0 && recorder.status != http.StatusOK {
			return models.Payload{}, &StatusError{StatusCode: recorder.status, Body: truncate(recorder.body, maxErrorBody)}
		}
		return models.Payload{}, fmt.Errorf("failed to generate completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.Payload{}, fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}
	choice := resp.Choices[0]
	if choice.Content == "" && choice.FuncCall == nil && len(choice.ToolCalls) == 0 {
		return models.Payload{}, fmt.Errorf("%w: missing choices[0].message.content", ErrMalformedResponse)
	}
	return models.Payload{Role: models.RoleAssistant, Content: choice.Content}, nil
}

// statusRecorder keeps the status and body of a non-200 answer, which
// langchaingo folds into a plain error string. One recorder serves one call.
type statusRecorder struct {
	doer   *http.Client
	status int
	body   string
}

func (r *statusRecorder) Do(req *http.Request) (*http.Response, error) {
	resp, err := r.doer.Do(req)
	if err != nil {
		return nil, err
	}
	r.status = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("failed reading completion response: %w", readErr)
		}
		r.body = string(body)
		resp.Body = io.NopCloser(bytes.NewReader(body))
		return resp, nil
	}
	resp.Body = limitedBody{Reader: io.LimitReader(resp.Body, maxResponseBody), Closer: resp.Body}
	return resp, nil
}

type limitedBody struct {
	io.Reader
	io.Closer
}

func messageType(role models.Role) (llms.ChatMessageType, error) {
	switch role {
	case models.RoleSystem:
		return llms.ChatMessageTypeSystem, nil
	case models.RoleUser:
		return llms.ChatMessageTypeHuman, nil
	case models.RoleAssistant:
		return llms.ChatMessageTypeAI, nil
	case models.RoleFunction:
		return llms.ChatMessageTypeFunction, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedRole, role)
	}
}

package ranker

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Junyu06/DynamicDo-Backend/internal/ranking"
)

const defaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"

// OpenAIRanker calls an OpenAI-compatible chat completions endpoint with a
// schema-constrained response format. It also serves self-hosted backends
// that speak the same wire protocol.
type OpenAIRanker struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

func NewOpenAIRanker(endpoint, apiKey, model string) *OpenAIRanker {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = defaultOpenAIEndpoint
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIRanker{
		endpoint: endpoint,
		apiKey:   strings.TrimSpace(apiKey),
		model:    model,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type       string           `json:"type"`
	JSONSchema jsonSchemaFormat `json:"json_schema"`
}

type jsonSchemaFormat struct {
	Name   string          `json:"name"`
	Schema json.RawMessage `json:"schema"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *OpenAIRanker) Rank(ctx context.Context, req ranking.Request) ([]ranking.Entry, error) {
	model := req.Model
	if model == "" {
		model = o.model
	}
	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Temperature: rankTemperature,
		ResponseFormat: &responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchemaFormat{
				Name:   "reminder_rankings",
				Schema: json.RawMessage(req.Mode.SchemaJSON()),
			},
		},
	})
	if err != nil {
		return nil, gatewayErr("openai", "encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, gatewayErr("openai", "build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if o.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, gatewayErr("openai", "call completions endpoint: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, gatewayErr("openai", "completions endpoint returned %s", resp.Status)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, gatewayErr("openai", "read response: %w", err)
	}

	var decoded chatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, gatewayErr("openai", "decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return nil, gatewayErr("openai", "response carried no choices")
	}
	entries, err := ranking.ParseEntries([]byte(decoded.Choices[0].Message.Content), req.Mode)
	if err != nil {
		return nil, &GatewayError{Provider: "openai", Err: err}
	}
	return entries, nil
}

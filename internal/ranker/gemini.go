package ranker

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Junyu06/DynamicDo-Backend/internal/ranking"
)

// GeminiRanker ranks through the Google GenAI API using native structured
// output, so the response schema is enforced on the provider side as well as
// validated locally.
type GeminiRanker struct {
	client *genai.Client
	model  string
}

func NewGeminiRanker(ctx context.Context, apiKey, model string) (*GeminiRanker, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiRanker{client: client, model: model}, nil
}

func (g *GeminiRanker) Rank(ctx context.Context, req ranking.Request) ([]ranking.Entry, error) {
	model := req.Model
	if model == "" {
		model = g.model
	}
	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](rankTemperature),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    geminiSchema(req.Mode),
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(req.User), config)
	if err != nil {
		return nil, gatewayErr("gemini", "generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return nil, gatewayErr("gemini", "response carried no text")
	}
	entries, err := ranking.ParseEntries([]byte(text), req.Mode)
	if err != nil {
		return nil, &GatewayError{Provider: "gemini", Err: err}
	}
	return entries, nil
}

func geminiSchema(mode ranking.Mode) *genai.Schema {
	entry := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":       {Type: genai.TypeString},
			"rank":     {Type: genai.TypeNumber},
			"priority": {Type: genai.TypeString},
		},
		Required: []string{"id", "rank", "priority"},
	}
	if mode == ranking.ModeDebug {
		entry.Properties["reasoning"] = &genai.Schema{Type: genai.TypeString}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"rankings": {Type: genai.TypeArray, Items: entry},
		},
		Required: []string{"rankings"},
	}
}

package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client generates assistant replies.
type Client interface {
	Generate(ctx context.Context, prompt string) (reply string, tokens int, err error)
	Close() error
}

// GeminiClient is the production Client over Google's Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient connects to Gemini with the configured model, system
// prompt and output cap.
func NewGeminiClient(ctx context.Context, apiKey, model, systemPrompt string, maxTokens int) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	gm := client.GenerativeModel(model)
	if systemPrompt != "" {
		gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	}
	if maxTokens > 0 {
		gm.SetMaxOutputTokens(int32(maxTokens))
	}
	return &GeminiClient{client: client, model: gm}, nil
}

// Generate produces one reply for a prompt.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, int, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", 0, fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", 0, fmt.Errorf("gemini generate: empty response")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	tokens := 0
	if resp.UsageMetadata != nil {
		tokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return sb.String(), tokens, nil
}

// Close releases the underlying connection.
func (g *GeminiClient) Close() error {
	return g.client.Close()
}

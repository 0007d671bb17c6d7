// internal/llm/groq.go
package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// Groq exposes an OpenAI-compatible API, so the standard client works
// with a swapped base URL.
const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqBackend implements the chat strategy against Groq-hosted models.
type GroqBackend struct {
	client *openai.Client
	model  string
}

func NewGroqBackend(apiKey, model string) *GroqBackend {
	b := &GroqBackend{model: model}
	if apiKey != "" {
		clientConfig := openai.DefaultConfig(apiKey)
		clientConfig.BaseURL = groqBaseURL
		b.client = openai.NewClientWithConfig(clientConfig)
	}
	return b
}

func (g *GroqBackend) Name() string  { return "groq" }
func (g *GroqBackend) Model() string { return g.model }

func (g *GroqBackend) GenerateSQL(ctx context.Context, src SchemaSource, question string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("%w: GROQ_API_KEY not set", ErrGenerationUnavailable)
	}

	snapshot, err := src.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	customLog.Printf("LLM: Groq request, model=%s, tables=%d", g.model, len(snapshot))

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: ChatSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: ChatUserPrompt(snapshot, question)},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		customLog.Warnf("LLM: Groq request failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrGeneration)
	}
	return resp.Choices[0].Message.Content, nil
}

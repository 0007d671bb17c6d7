// internal/llm/anthropic.go
package llm

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

// AnthropicBackend implements the chat strategy against Claude models.
type AnthropicBackend struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicBackend(apiKey, model string) *AnthropicBackend {
	b := &AnthropicBackend{model: model}
	if apiKey != "" {
		b.client = anthropic.NewClient(apiKey)
	}
	return b
}

func (a *AnthropicBackend) Name() string  { return "anthropic" }
func (a *AnthropicBackend) Model() string { return a.model }

func (a *AnthropicBackend) GenerateSQL(ctx context.Context, src SchemaSource, question string) (string, error) {
	if a.client == nil {
		return "", fmt.Errorf("%w: ANTHROPIC_API_KEY not set", ErrGenerationUnavailable)
	}

	snapshot, err := src.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	customLog.Printf("LLM: Anthropic request, model=%s, tables=%d", a.model, len(snapshot))

	temperature := float32(defaultTemperature)
	resp, err := a.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:  anthropic.Model(a.model),
		System: ChatSystemPrompt,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(ChatUserPrompt(snapshot, question)),
		},
		MaxTokens:   defaultMaxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		customLog.Warnf("LLM: Anthropic request failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	text := resp.GetFirstContentText()
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrGeneration)
	}
	return text, nil
}

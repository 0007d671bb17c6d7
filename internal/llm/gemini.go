// internal/llm/gemini.go
package llm

import (
	"context"
	"fmt"

	ai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiBackend implements the two-phase strategy: the model first names
// the tables the question touches, then generates SQL from only those
// tables' schemas. Keeps the second prompt small on wide databases.
type GeminiBackend struct {
	apiKey string
	model  string
}

func NewGeminiBackend(apiKey, model string) *GeminiBackend {
	return &GeminiBackend{apiKey: apiKey, model: model}
}

func (g *GeminiBackend) Name() string  { return "gemini" }
func (g *GeminiBackend) Model() string { return g.model }

func (g *GeminiBackend) GenerateSQL(ctx context.Context, src SchemaSource, question string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("%w: GEMINI_API_KEY not set", ErrGenerationUnavailable)
	}

	client, err := ai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(defaultTemperature)
	model.SetMaxOutputTokens(defaultMaxTokens)

	// Phase one: table extraction from the free-text question.
	extracted, err := g.generate(ctx, model, TableExtractionPrompt(question))
	if err != nil {
		return "", err
	}
	tables := ParseTableList(extracted)
	if len(tables) == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoTablesDetected, question)
	}
	customLog.Printf("LLM: Gemini extracted tables: %v", tables)

	// Phase two: schema-only SQL generation. A table the model invented
	// fails the schema fetch here rather than producing broken SQL.
	snapshot, err := src.TableSchemas(ctx, tables)
	if err != nil {
		return "", err
	}
	return g.generate(ctx, model, SQLFromSchemaPrompt(snapshot, question))
}

func (g *GeminiBackend) generate(ctx context.Context, model *ai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, ai.Text(prompt))
	if err != nil {
		customLog.Warnf("LLM: Gemini request failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	var out string
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(ai.Text); ok {
				out += string(t)
			}
		}
	}
	if out == "" {
		return "", fmt.Errorf("%w: empty response", ErrGeneration)
	}
	return out, nil
}

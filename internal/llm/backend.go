// Package llm holds the SQL-generation backends and their prompt formats.
// Every provider implements Backend; the rest of the pipeline never knows
// which one is configured.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/asklytics/asklytics-backend/config"
	"github.com/asklytics/asklytics-backend/internal/logger"
	"github.com/asklytics/asklytics-backend/internal/schema"
)

var (
	customLog = logger.NewLogger()

	// ErrGenerationUnavailable means no credential or endpoint is
	// configured for the selected backend.
	ErrGenerationUnavailable = errors.New("sql generation backend not configured")
	// ErrGeneration wraps transport or provider failures. No retry policy
	// is applied; the failure surfaces to the caller immediately.
	ErrGeneration = errors.New("sql generation failed")
	// ErrNoTablesDetected means the two-phase pipeline's extraction step
	// produced an empty table list.
	ErrNoTablesDetected = errors.New("no tables detected in question")
)

// Decoding parameters shared by the chat backends.
const (
	defaultTemperature = 0.1
	defaultMaxTokens   = 512
)

// SchemaSource lets a backend fetch the live schema it needs: the chat and
// seq2seq strategies take a full snapshot, the two-phase strategy fetches
// only the tables its extraction step named.
type SchemaSource interface {
	Snapshot(ctx context.Context) (schema.Snapshot, error)
	TableSchemas(ctx context.Context, tables []string) (schema.Snapshot, error)
}

// Backend turns a natural-language question into raw generated text. The
// result still carries whatever markdown noise the model emitted; the
// sanitizer deals with that.
type Backend interface {
	Name() string
	Model() string
	GenerateSQL(ctx context.Context, src SchemaSource, question string) (string, error)
}

// NewBackend builds the configured backend. Missing credentials do not
// fail startup; they surface per request as ErrGenerationUnavailable, so
// the health endpoint stays reachable on a misconfigured box.
func NewBackend(cfg *config.Config) (Backend, error) {
	switch cfg.Backend {
	case config.BackendGroq:
		return NewGroqBackend(cfg.GroqAPIKey, cfg.GroqModel), nil
	case config.BackendAnthropic:
		return NewAnthropicBackend(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case config.BackendGemini:
		return NewGeminiBackend(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	case config.BackendSeq2Seq:
		return NewSeq2SeqBackend(cfg.Seq2SeqEndpoint, cfg.Seq2SeqBeams), nil
	default:
		return nil, fmt.Errorf("unsupported backend %q", cfg.Backend)
	}
}

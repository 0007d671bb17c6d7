// internal/llm/seq2seq.go
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Seq2SeqBackend posts the tagged translation prompt to a locally hosted
// text2text inference endpoint (HF-style: {"inputs": ...} in,
// [{"generated_text": ...}] out).
type Seq2SeqBackend struct {
	endpoint string
	beams    int
	httpc    *http.Client
}

func NewSeq2SeqBackend(endpoint string, beams int) *Seq2SeqBackend {
	return &Seq2SeqBackend{
		endpoint: endpoint,
		beams:    beams,
		httpc:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *Seq2SeqBackend) Name() string  { return "seq2seq" }
func (s *Seq2SeqBackend) Model() string { return s.endpoint }

type seq2seqRequest struct {
	Inputs     string            `json:"inputs"`
	Parameters seq2seqParameters `json:"parameters"`
}

type seq2seqParameters struct {
	MaxNewTokens int `json:"max_new_tokens"`
	NumBeams     int `json:"num_beams"`
}

type seq2seqResult struct {
	GeneratedText string `json:"generated_text"`
}

func (s *Seq2SeqBackend) GenerateSQL(ctx context.Context, src SchemaSource, question string) (string, error) {
	if s.endpoint == "" {
		return "", fmt.Errorf("%w: SEQ2SEQ_ENDPOINT not set", ErrGenerationUnavailable)
	}

	snapshot, err := src.Snapshot(ctx)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(seq2seqRequest{
		Inputs: Seq2SeqPrompt(snapshot, question),
		Parameters: seq2seqParameters{
			MaxNewTokens: defaultMaxTokens,
			NumBeams:     s.beams,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpc.Do(req)
	if err != nil {
		customLog.Warnf("LLM: seq2seq request failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: inference endpoint returned %d: %s", ErrGeneration, resp.StatusCode, bytes.TrimSpace(body))
	}

	var results []seq2seqResult
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("%w: malformed inference response: %v", ErrGeneration, err)
	}
	if len(results) == 0 || results[0].GeneratedText == "" {
		return "", fmt.Errorf("%w: empty response", ErrGeneration)
	}
	return results[0].GeneratedText, nil
}

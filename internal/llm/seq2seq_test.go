// internal/llm/seq2seq_test.go
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/asklytics/asklytics-backend/internal/schema"
)

// fixedSchemaSource serves a canned snapshot without a database.
type fixedSchemaSource struct {
	snapshot schema.Snapshot
	err      error
}

func (f *fixedSchemaSource) Snapshot(context.Context) (schema.Snapshot, error) {
	return f.snapshot, f.err
}

func (f *fixedSchemaSource) TableSchemas(_ context.Context, tables []string) (schema.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	filtered := make(schema.Snapshot, 0, len(tables))
	for _, name := range tables {
		for _, ts := range f.snapshot {
			if ts.Name == name {
				filtered = append(filtered, ts)
			}
		}
	}
	return filtered, nil
}

func TestSeq2SeqGenerateSQL(t *testing.T) {
	var received seq2seqRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decoding inference request: %v", err)
		}
		_ = json.NewEncoder(w).Encode([]seq2seqResult{{GeneratedText: "SELECT * FROM customers"}})
	}))
	defer server.Close()

	backend := NewSeq2SeqBackend(server.URL, 5)
	src := &fixedSchemaSource{snapshot: sampleSnapshot()}

	got, err := backend.GenerateSQL(context.Background(), src, "list all customers")
	if err != nil {
		t.Fatalf("GenerateSQL: %v", err)
	}
	if got != "SELECT * FROM customers" {
		t.Errorf("GenerateSQL = %q", got)
	}

	if !strings.HasPrefix(received.Inputs, "translate English to SQL: list all customers | CREATE TABLE customers") {
		t.Errorf("unexpected inputs: %q", received.Inputs)
	}
	if received.Parameters.NumBeams != 5 {
		t.Errorf("num_beams = %d; want 5", received.Parameters.NumBeams)
	}
	if received.Parameters.MaxNewTokens != defaultMaxTokens {
		t.Errorf("max_new_tokens = %d; want %d", received.Parameters.MaxNewTokens, defaultMaxTokens)
	}
}

func TestSeq2SeqEndpointErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model is loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	backend := NewSeq2SeqBackend(server.URL, 5)
	_, err := backend.GenerateSQL(context.Background(), &fixedSchemaSource{snapshot: sampleSnapshot()}, "anything")
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("status code should be reported: %v", err)
	}
}

func TestSeq2SeqUnconfigured(t *testing.T) {
	backend := NewSeq2SeqBackend("", 5)
	_, err := backend.GenerateSQL(context.Background(), &fixedSchemaSource{}, "anything")
	if !errors.Is(err, ErrGenerationUnavailable) {
		t.Fatalf("expected ErrGenerationUnavailable, got %v", err)
	}
}

func TestSeq2SeqSchemaFailurePropagates(t *testing.T) {
	backend := NewSeq2SeqBackend("http://localhost:1", 5)
	schemaErr := &schema.FetchError{Table: "orders", Err: errors.New("boom")}
	_, err := backend.GenerateSQL(context.Background(), &fixedSchemaSource{err: schemaErr}, "anything")
	var fe *schema.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("schema errors must pass through untouched, got %v", err)
	}
}

func TestSeq2SeqMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"generated_text": "not wrapped in a list"}`))
	}))
	defer server.Close()

	backend := NewSeq2SeqBackend(server.URL, 5)
	_, err := backend.GenerateSQL(context.Background(), &fixedSchemaSource{snapshot: sampleSnapshot()}, "anything")
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

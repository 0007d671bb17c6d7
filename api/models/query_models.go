// api/models/query_models.go
package models

import "github.com/asklytics/asklytics-backend/internal/core"

// --- NL->SQL Request Structs ---

// ConnectionRequest carries only a connection descriptor
// (/test-connection and /schema).
type ConnectionRequest struct {
	Connection core.ConnectionDescriptor `json:"connection"`
}

// QueryRequest is the core NL->SQL request body.
type QueryRequest struct {
	Prompt     string                    `json:"prompt"`
	Connection core.ConnectionDescriptor `json:"connection"`
}

// ExecuteSQLRequest runs caller-written SQL without LLM involvement.
type ExecuteSQLRequest struct {
	SQL        string                    `json:"sql"`
	Connection core.ConnectionDescriptor `json:"connection"`
}

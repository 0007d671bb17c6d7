// internal/storage/execute.go
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/asklytics/asklytics-backend/internal/core"
)

// ErrExecution wraps the driver's error when the generated SQL fails.
// The message is surfaced verbatim to the caller; this service trades
// backend-detail leakage for debuggability.
var ErrExecution = errors.New("query execution failed")

// Row preserves the result set's column order through JSON serialization,
// which a plain map would scramble.
type Row struct {
	Columns []string
	Values  []any
}

func (r Row) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, col := range r.Columns {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.Values[i])
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}

// Get returns the value for a column, for tests and history bookkeeping.
func (r Row) Get(column string) (any, bool) {
	for i, col := range r.Columns {
		if col == column {
			return r.Values[i], true
		}
	}
	return nil, false
}

// QueryResult is the shaped outcome of one executed statement.
type QueryResult struct {
	IsRead       bool
	Rows         []Row
	RowsAffected int64
}

// ExecuteSQL runs sanitized SQL inside a single transaction, committing on
// success and rolling back on any execution error. SELECT and SHOW
// materialize every row; other verbs return the affected-row count.
func ExecuteSQL(ctx context.Context, db *sql.DB, sqlText string) (*QueryResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecution, err)
	}

	if core.IsReadStatement(sqlText) {
		rows, err := tx.QueryContext(ctx, sqlText)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("%w: %v", ErrExecution, err)
		}
		result, err := materializeRows(rows)
		rows.Close()
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("%w: %v", ErrExecution, err)
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExecution, err)
		}
		return result, nil
	}

	res, err := tx.ExecContext(ctx, sqlText)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", ErrExecution, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", ErrExecution, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecution, err)
	}
	return &QueryResult{RowsAffected: affected}, nil
}

func materializeRows(rows *sql.Rows) (*QueryResult, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &QueryResult{IsRead: true, Rows: []Row{}}
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, err
		}
		for i, v := range values {
			// MySQL text-protocol results arrive as []byte; render
			// them as strings so JSON output is readable.
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, Row{Columns: columns, Values: values})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

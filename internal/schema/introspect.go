// internal/schema/introspect.go
package schema

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asklytics/asklytics-backend/internal/core"
)

// ColumnInfo mirrors one DESCRIBE row. Nullable and Key keep the driver's
// raw values ("YES"/"NO", "PRI"/"UNI"/"MUL"/"") because both the API
// response and the LLM prompt surface them verbatim.
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable string `json:"nullable"`
	Key      string `json:"key"`
}

// TableSchema is one table with its columns in definition order.
type TableSchema struct {
	Name    string       `json:"table"`
	Columns []ColumnInfo `json:"columns"`
}

// Snapshot is a point-in-time enumeration of the target database's tables,
// in the order the server reports them. Rebuilt fresh on every request.
type Snapshot []TableSchema

// FetchError reports which table broke introspection. A snapshot never
// partially succeeds; the first failing table aborts the whole fetch.
type FetchError struct {
	Table string
	Err   error
}

func (e *FetchError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("failed to fetch schema: %v", e.Err)
	}
	return fmt.Sprintf("failed to fetch schema for table '%s': %v", e.Table, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Introspector enumerates tables and columns of an open target connection.
type Introspector struct {
	db *sql.DB
}

func NewIntrospector(db *sql.DB) *Introspector {
	return &Introspector{db: db}
}

// Snapshot lists every table in the active database and describes each one.
func (i *Introspector) Snapshot(ctx context.Context) (Snapshot, error) {
	tables, err := i.listTables(ctx)
	if err != nil {
		return nil, err
	}
	return i.TableSchemas(ctx, tables)
}

// TableSchemas describes only the named tables, preserving the given order.
// Used by the two-phase pipeline after table extraction; an unknown or
// malformed name fails the whole call.
func (i *Introspector) TableSchemas(ctx context.Context, tables []string) (Snapshot, error) {
	snapshot := make(Snapshot, 0, len(tables))
	for _, table := range tables {
		ts, err := i.describe(ctx, table)
		if err != nil {
			return nil, err
		}
		snapshot = append(snapshot, ts)
	}
	return snapshot, nil
}

func (i *Introspector) listTables(ctx context.Context) ([]string, error) {
	rows, err := i.db.QueryContext(ctx, "SHOW TABLES")
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &FetchError{Err: err}
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, &FetchError{Err: err}
	}
	return tables, nil
}

func (i *Introspector) describe(ctx context.Context, table string) (TableSchema, error) {
	// Table names cannot be bound as placeholders in DESCRIBE; reject
	// anything that is not a plain identifier before interpolating.
	if !core.IsValidIdentifier(table) {
		return TableSchema{}, &FetchError{Table: table, Err: fmt.Errorf("invalid table name")}
	}

	rows, err := i.db.QueryContext(ctx, fmt.Sprintf("DESCRIBE %s", table))
	if err != nil {
		return TableSchema{}, &FetchError{Table: table, Err: err}
	}
	defer rows.Close()

	ts := TableSchema{Name: table}
	for rows.Next() {
		var (
			field, colType, null string
			key                  sql.NullString
			dflt, extra          sql.NullString
		)
		if err := rows.Scan(&field, &colType, &null, &key, &dflt, &extra); err != nil {
			return TableSchema{}, &FetchError{Table: table, Err: err}
		}
		ts.Columns = append(ts.Columns, ColumnInfo{
			Name:     field,
			Type:     colType,
			Nullable: null,
			Key:      key.String,
		})
	}
	if err := rows.Err(); err != nil {
		return TableSchema{}, &FetchError{Table: table, Err: err}
	}
	return ts, nil
}

// internal/storage/history_repo.go
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asklytics/asklytics-backend/internal/domain"
)

// InsertQueryRecord appends one NL->SQL round trip to a user's history.
func InsertQueryRecord(ctx context.Context, db *sql.DB, rec domain.QueryRecord) error {
	sqlStatement := `INSERT INTO query_history (user_id, prompt, sql_text, db_name, row_count) VALUES (?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, sqlStatement, rec.UserID, rec.Prompt, rec.SQL, rec.Database, rec.RowCount)
	if err != nil {
		customLog.Warnf("Storage: Failed to insert history record for user %s: %v", rec.UserID, err)
		return fmt.Errorf("database error recording query history: %w", err)
	}
	return nil
}

// ListQueryRecords returns a user's most recent queries, newest first.
func ListQueryRecords(ctx context.Context, db *sql.DB, userID string, limit int) ([]domain.QueryRecord, error) {
	sqlStatement := `SELECT id, user_id, prompt, sql_text, db_name, row_count, created_at
		FROM query_history WHERE user_id = ? ORDER BY id DESC LIMIT ?`
	rows, err := db.QueryContext(ctx, sqlStatement, userID, limit)
	if err != nil {
		customLog.Warnf("Storage: Failed to list history for user %s: %v", userID, err)
		return nil, fmt.Errorf("database error listing query history: %w", err)
	}
	defer rows.Close()

	records := make([]domain.QueryRecord, 0)
	for rows.Next() {
		var rec domain.QueryRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Prompt, &rec.SQL, &rec.Database, &rec.RowCount, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed processing query history: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading query history: %w", err)
	}
	return records, nil
}

// ClearQueryHistory deletes all of a user's history records.
func ClearQueryHistory(ctx context.Context, db *sql.DB, userID string) (int64, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM query_history WHERE user_id = ?`, userID)
	if err != nil {
		customLog.Warnf("Storage: Failed to clear history for user %s: %v", userID, err)
		return 0, fmt.Errorf("database error clearing query history: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("database error clearing query history: %w", err)
	}
	return deleted, nil
}

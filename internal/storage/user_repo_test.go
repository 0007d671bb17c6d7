// internal/storage/user_repo_test.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/asklytics/asklytics-backend/config"
	"github.com/asklytics/asklytics-backend/internal/domain"
)

func newTestAuthDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := &config.Config{
		AuthDB: config.AuthDBConfig{
			SQLiteDir:  t.TempDir(),
			SQLiteFile: "repo_test.db",
		},
	}
	db, err := ConnectAuthDB(cfg)
	if err != nil {
		t.Fatalf("ConnectAuthDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustCreateUser(t *testing.T, db *sql.DB, email, mobile string) string {
	t.Helper()
	id := uuid.New().String()
	if err := CreateUser(context.Background(), db, id, "Test User", mobile, email, "hash"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return id
}

func TestCreateAndFindUser(t *testing.T) {
	db := newTestAuthDB(t)
	ctx := context.Background()

	id := mustCreateUser(t, db, "ada@example.com", "9876543210")

	user, err := FindActiveUserByEmail(ctx, db, "ada@example.com")
	if err != nil {
		t.Fatalf("FindActiveUserByEmail: %v", err)
	}
	if user.ID != id || user.Mobile != "9876543210" || !user.IsActive {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.LastLogin != nil {
		t.Error("LastLogin should be nil before first login")
	}

	if _, err := FindActiveUserByEmail(ctx, db, "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDuplicateUserDetection(t *testing.T) {
	db := newTestAuthDB(t)
	ctx := context.Background()

	mustCreateUser(t, db, "ada@example.com", "9876543210")

	err := CreateUser(ctx, db, uuid.New().String(), "Other", "1234567890", "ada@example.com", "hash")
	if !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("duplicate email: expected ErrDuplicateUser, got %v", err)
	}

	err = CreateUser(ctx, db, uuid.New().String(), "Other", "9876543210", "other@example.com", "hash")
	if !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("duplicate mobile: expected ErrDuplicateUser, got %v", err)
	}
}

func TestUpdateLastLoginAndPassword(t *testing.T) {
	db := newTestAuthDB(t)
	ctx := context.Background()

	id := mustCreateUser(t, db, "ada@example.com", "9876543210")

	at := time.Now().UTC().Truncate(time.Second)
	if err := UpdateLastLogin(ctx, db, id, at); err != nil {
		t.Fatalf("UpdateLastLogin: %v", err)
	}
	if err := UpdatePasswordHash(ctx, db, id, "new-hash"); err != nil {
		t.Fatalf("UpdatePasswordHash: %v", err)
	}

	user, err := FindUserByID(ctx, db, id)
	if err != nil {
		t.Fatalf("FindUserByID: %v", err)
	}
	if user.LastLogin == nil {
		t.Fatal("LastLogin not recorded")
	}
	if user.PasswordHash != "new-hash" {
		t.Errorf("PasswordHash = %q", user.PasswordHash)
	}
}

func TestUpdateProfileCollision(t *testing.T) {
	db := newTestAuthDB(t)
	ctx := context.Background()

	id := mustCreateUser(t, db, "ada@example.com", "9876543210")
	mustCreateUser(t, db, "grace@example.com", "1234567890")

	err := UpdateProfile(ctx, db, id, "Ada", "grace@example.com", "9876543210")
	if !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("expected ErrDuplicateUser, got %v", err)
	}

	if err := UpdateProfile(ctx, db, id, "Ada L", "ada.l@example.com", "9876543210"); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	user, err := FindUserByID(ctx, db, id)
	if err != nil {
		t.Fatalf("FindUserByID: %v", err)
	}
	if user.Name != "Ada L" || user.Email != "ada.l@example.com" {
		t.Errorf("profile not updated: %+v", user)
	}
}

func TestQueryHistoryRoundTrip(t *testing.T) {
	db := newTestAuthDB(t)
	ctx := context.Background()

	id := mustCreateUser(t, db, "ada@example.com", "9876543210")

	for i := 1; i <= 4; i++ {
		rec := domain.QueryRecord{
			UserID:   id,
			Prompt:   "question",
			SQL:      "SELECT 1",
			Database: "sales",
			RowCount: i,
		}
		if err := InsertQueryRecord(ctx, db, rec); err != nil {
			t.Fatalf("InsertQueryRecord: %v", err)
		}
	}

	records, err := ListQueryRecords(ctx, db, id, 3)
	if err != nil {
		t.Fatalf("ListQueryRecords: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d; want 3", len(records))
	}
	if records[0].RowCount != 4 {
		t.Errorf("newest record should come first: %+v", records[0])
	}

	deleted, err := ClearQueryHistory(ctx, db, id)
	if err != nil {
		t.Fatalf("ClearQueryHistory: %v", err)
	}
	if deleted != 4 {
		t.Errorf("deleted = %d; want 4", deleted)
	}
}

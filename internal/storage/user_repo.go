// internal/storage/user_repo.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"

	"github.com/asklytics/asklytics-backend/internal/domain"
)

// Specific errors for auth store operations
var (
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser covers both email and mobile collisions.
	ErrDuplicateUser = errors.New("user with this email or mobile already exists")
	// ErrInvalidCredentials is deliberately shared between "no such user"
	// and "wrong password" so responses cannot be used to enumerate
	// registered emails.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const mysqlDuplicateEntry = 1062

// isDuplicateErr recognizes unique-constraint violations from either
// auth-store driver.
func isDuplicateErr(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return false
}

// CreateUser inserts a new user into the auth database.
func CreateUser(ctx context.Context, db *sql.DB, id, name, mobile, email, passwordHash string) error {
	sqlStatement := `INSERT INTO users (id, name, mobile, email, password_hash, is_active) VALUES (?, ?, ?, ?, ?, 1)`
	_, err := db.ExecContext(ctx, sqlStatement, id, name, mobile, email, passwordHash)
	if err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicateUser
		}
		customLog.Warnf("Storage: Failed to insert user %s: %v", email, err)
		return fmt.Errorf("database error during user creation: %w", err)
	}
	return nil
}

const userColumns = `id, name, email, mobile, password_hash, is_active, created_at, last_login`

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var lastLogin sql.NullTime
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Mobile,
		&user.PasswordHash, &user.IsActive, &user.CreatedAt, &lastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error finding user: %w", err)
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}
	return &user, nil
}

// FindActiveUserByEmail retrieves an active user by email.
func FindActiveUserByEmail(ctx context.Context, db *sql.DB, email string) (*domain.User, error) {
	sqlStatement := `SELECT ` + userColumns + ` FROM users WHERE email = ? AND is_active = 1 LIMIT 1`
	return scanUser(db.QueryRowContext(ctx, sqlStatement, email))
}

// FindActiveUserByEmailAndMobile requires an exact match of both fields,
// the forgot-password identity check.
func FindActiveUserByEmailAndMobile(ctx context.Context, db *sql.DB, email, mobile string) (*domain.User, error) {
	sqlStatement := `SELECT ` + userColumns + ` FROM users WHERE email = ? AND mobile = ? AND is_active = 1 LIMIT 1`
	return scanUser(db.QueryRowContext(ctx, sqlStatement, email, mobile))
}

// FindUserByID retrieves a user by primary key.
func FindUserByID(ctx context.Context, db *sql.DB, id string) (*domain.User, error) {
	sqlStatement := `SELECT ` + userColumns + ` FROM users WHERE id = ? LIMIT 1`
	return scanUser(db.QueryRowContext(ctx, sqlStatement, id))
}

// UpdateLastLogin stamps a successful login.
func UpdateLastLogin(ctx context.Context, db *sql.DB, id string, at time.Time) error {
	sqlStatement := `UPDATE users SET last_login = ? WHERE id = ?`
	if _, err := db.ExecContext(ctx, sqlStatement, at, id); err != nil {
		customLog.Warnf("Storage: Failed to update last_login for user %s: %v", id, err)
		return fmt.Errorf("database error updating last login: %w", err)
	}
	return nil
}

// UpdatePasswordHash overwrites the stored hash.
func UpdatePasswordHash(ctx context.Context, db *sql.DB, id, passwordHash string) error {
	sqlStatement := `UPDATE users SET password_hash = ? WHERE id = ?`
	if _, err := db.ExecContext(ctx, sqlStatement, passwordHash, id); err != nil {
		customLog.Warnf("Storage: Failed to update password for user %s: %v", id, err)
		return fmt.Errorf("database error updating password: %w", err)
	}
	return nil
}

// UpdateProfile updates name, email, and mobile. An email or mobile
// collision with another user surfaces as ErrDuplicateUser.
func UpdateProfile(ctx context.Context, db *sql.DB, id, name, email, mobile string) error {
	sqlStatement := `UPDATE users SET name = ?, email = ?, mobile = ? WHERE id = ?`
	if _, err := db.ExecContext(ctx, sqlStatement, name, email, mobile, id); err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicateUser
		}
		customLog.Warnf("Storage: Failed to update profile for user %s: %v", id, err)
		return fmt.Errorf("database error updating profile: %w", err)
	}
	return nil
}

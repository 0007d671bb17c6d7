// internal/domain/models.go
package domain

import "time"

// User defines the structure for user data in the auth database.
type User struct {
	ID           string
	Name         string
	Email        string
	Mobile       string
	PasswordHash string // Never serialized; handlers expose PublicUser instead.
	IsActive     bool
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// PublicUser is the subset of User returned by the API.
type PublicUser struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Mobile    string     `json:"mobile"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// Public converts a stored user to its API representation.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Mobile:    u.Mobile,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

// QueryRecord is one entry in a user's natural-language query history.
type QueryRecord struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"-"`
	Prompt    string    `json:"prompt"`
	SQL       string    `json:"sql"`
	Database  string    `json:"database"`
	RowCount  int       `json:"rowCount"`
	CreatedAt time.Time `json:"created_at"`
}

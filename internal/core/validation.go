// internal/core/validation.go
package core

import (
	"regexp"
	"strings"
)

// Regular expression for valid table/column identifiers (alphanumeric + underscore)
var nameValidationRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ConnectionDescriptor carries caller-supplied credentials for the target
// database. Built fresh from every request body and never persisted.
type ConnectionDescriptor struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// MissingFieldsError lists every absent connection field, not just the first.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing connection fields: " + strings.Join(e.Fields, ", ")
}

// ValidateConnection checks that all descriptor fields are present.
// requirePassword controls whether an empty password counts as missing;
// both behaviors exist in the field, so the choice is a config flag.
func ValidateConnection(conn ConnectionDescriptor, requirePassword bool) error {
	var missing []string
	if conn.Host == "" {
		missing = append(missing, "host")
	}
	if conn.Port == 0 {
		missing = append(missing, "port")
	}
	if conn.User == "" {
		missing = append(missing, "user")
	}
	if requirePassword && conn.Password == "" {
		missing = append(missing, "password")
	}
	if conn.Database == "" {
		missing = append(missing, "database")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// IsValidIdentifier checks if a string is a valid table/column identifier.
// Table names extracted from LLM output pass through here before being
// interpolated into a DESCRIBE statement.
func IsValidIdentifier(name string) bool {
	return nameValidationRegex.MatchString(name) && len(name) > 0 && len(name) <= 64
}

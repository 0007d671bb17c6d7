// internal/core/validation_test.go
package core

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestValidateConnectionMissingFields(t *testing.T) {
	full := ConnectionDescriptor{Host: "db.example.com", Port: 3306, User: "root", Password: "secret", Database: "shop"}

	testCases := []struct {
		name        string
		mutate      func(*ConnectionDescriptor)
		wantMissing []string
	}{
		{"all present", func(c *ConnectionDescriptor) {}, nil},
		{"missing host", func(c *ConnectionDescriptor) { c.Host = "" }, []string{"host"}},
		{"missing port", func(c *ConnectionDescriptor) { c.Port = 0 }, []string{"port"}},
		{"missing user", func(c *ConnectionDescriptor) { c.User = "" }, []string{"user"}},
		{"missing database", func(c *ConnectionDescriptor) { c.Database = "" }, []string{"database"}},
		{"missing host and user", func(c *ConnectionDescriptor) { c.Host = ""; c.User = "" }, []string{"host", "user"}},
		{"everything missing", func(c *ConnectionDescriptor) { *c = ConnectionDescriptor{} },
			[]string{"host", "port", "user", "database"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conn := full
			tc.mutate(&conn)
			err := ValidateConnection(conn, false)
			if tc.wantMissing == nil {
				if err != nil {
					t.Fatalf("ValidateConnection() unexpected error: %v", err)
				}
				return
			}
			var missing *MissingFieldsError
			if !errors.As(err, &missing) {
				t.Fatalf("ValidateConnection() error = %T; want *MissingFieldsError", err)
			}
			// Every missing field must be named, not just the first.
			if !reflect.DeepEqual(missing.Fields, tc.wantMissing) {
				t.Errorf("missing fields = %v; want %v", missing.Fields, tc.wantMissing)
			}
			for _, f := range tc.wantMissing {
				if !strings.Contains(err.Error(), f) {
					t.Errorf("error message %q does not name field %q", err.Error(), f)
				}
			}
		})
	}
}

func TestValidateConnectionEmptyPassword(t *testing.T) {
	conn := ConnectionDescriptor{Host: "db.example.com", Port: 3306, User: "root", Password: "", Database: "shop"}

	if err := ValidateConnection(conn, false); err != nil {
		t.Errorf("lenient mode: empty password should validate, got %v", err)
	}

	err := ValidateConnection(conn, true)
	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("strict mode: expected *MissingFieldsError, got %v", err)
	}
	if !reflect.DeepEqual(missing.Fields, []string{"password"}) {
		t.Errorf("strict mode missing fields = %v; want [password]", missing.Fields)
	}
}

func TestIsValidIdentifier(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid simple", "customers", true},
		{"valid with numbers", "table_123", true},
		{"valid uppercase", "ORDERS", true},
		{"valid long (64 chars)", strings.Repeat("a", 64), true},
		{"invalid empty", "", false},
		{"invalid space", "my table", false},
		{"invalid hyphen", "my-table", false},
		{"invalid semicolon", "customers; DROP TABLE x", false},
		{"invalid backtick", "`customers`", false},
		{"invalid too long", strings.Repeat("a", 65), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidIdentifier(tc.input); got != tc.want {
				t.Errorf("IsValidIdentifier(%q) = %v; want %v", tc.input, got, tc.want)
			}
		})
	}
}

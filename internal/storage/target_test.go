// internal/storage/target_test.go
package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"

	"github.com/asklytics/asklytics-backend/config"
	"github.com/asklytics/asklytics-backend/internal/core"
)

func TestTargetDSNRoundTripsPassword(t *testing.T) {
	testCases := []struct {
		name     string
		password string
	}{
		{"plain", "hunter2"},
		{"at sign", "p@ssw0rd"},
		{"hash and slash", "p#ss/w:rd"},
		{"spaces and percent", "my pass %40"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dsn := TargetDSN(core.ConnectionDescriptor{
				Host:     "db.internal",
				Port:     3307,
				User:     "analyst",
				Password: tc.password,
				Database: "sales",
			})
			parsed, err := mysql.ParseDSN(dsn)
			if err != nil {
				t.Fatalf("ParseDSN(%q): %v", dsn, err)
			}
			if parsed.Passwd != tc.password {
				t.Errorf("password mangled: got %q, want %q", parsed.Passwd, tc.password)
			}
			if parsed.Addr != "db.internal:3307" {
				t.Errorf("addr = %q", parsed.Addr)
			}
			if parsed.DBName != "sales" || parsed.User != "analyst" {
				t.Errorf("identity lost: %q / %q", parsed.User, parsed.DBName)
			}
			if !parsed.ParseTime {
				t.Error("ParseTime should be enabled")
			}
		})
	}
}

func TestNewTargetOpenerValidatesBeforeDialing(t *testing.T) {
	open := NewTargetOpener(&config.Config{RequireDBPassword: false})

	_, err := open(context.Background(), core.ConnectionDescriptor{
		Host: "db.internal",
		User: "analyst",
	})
	var missing *core.MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *core.MissingFieldsError, got %v", err)
	}
	want := []string{"port", "database"}
	if len(missing.Fields) != len(want) {
		t.Fatalf("Fields = %v; want %v", missing.Fields, want)
	}
	for i, f := range want {
		if missing.Fields[i] != f {
			t.Errorf("Fields[%d] = %q; want %q", i, missing.Fields[i], f)
		}
	}
}

func TestNewTargetOpenerStrictPassword(t *testing.T) {
	open := NewTargetOpener(&config.Config{RequireDBPassword: true})

	_, err := open(context.Background(), core.ConnectionDescriptor{
		Host:     "db.internal",
		Port:     3306,
		User:     "analyst",
		Database: "sales",
	})
	var missing *core.MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *core.MissingFieldsError, got %v", err)
	}
	if len(missing.Fields) != 1 || missing.Fields[0] != "password" {
		t.Errorf("Fields = %v; want [password]", missing.Fields)
	}
}

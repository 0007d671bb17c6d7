// internal/core/query_params_test.go
package core

import (
	"net/url"
	"testing"
)

func TestParseHistoryLimit(t *testing.T) {
	testCases := []struct {
		name    string
		query   string
		want    int
		wantErr bool
	}{
		{"default when absent", "", DefaultHistoryLimit, false},
		{"explicit value", "limit=25", 25, false},
		{"capped at maximum", "limit=9999", MaxHistoryLimit, false},
		{"minimum accepted", "limit=1", 1, false},
		{"zero rejected", "limit=0", 0, true},
		{"negative rejected", "limit=-5", 0, true},
		{"non-numeric rejected", "limit=fifty", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params, err := url.ParseQuery(tc.query)
			if err != nil {
				t.Fatalf("ParseQuery: %v", err)
			}
			got, err := ParseHistoryLimit(params)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHistoryLimit(%q): %v", tc.query, err)
			}
			if got != tc.want {
				t.Errorf("ParseHistoryLimit(%q) = %d; want %d", tc.query, got, tc.want)
			}
		})
	}
}

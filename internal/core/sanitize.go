// internal/core/sanitize.go
package core

import "strings"

// AllowedVerbs is the fixed set of leading SQL keywords accepted for
// execution. A leading-keyword check is a safety valve against the model
// returning prose or commands outside the set; it is NOT a general
// SQL-injection defense.
var AllowedVerbs = []string{"SELECT", "INSERT", "UPDATE", "DELETE", "SHOW"}

// InvalidSQLError carries the offending generated text for the caller.
type InvalidSQLError struct {
	Text string
}

func (e *InvalidSQLError) Error() string {
	return "generated invalid SQL: " + e.Text
}

// CleanSQL strips markdown code fences (with an optional sql language tag)
// and collapses internal newlines to single spaces. Idempotent: cleaning
// already-clean SQL returns the identical string.
func CleanSQL(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		lines := strings.Split(s, "\n")
		switch {
		case len(lines) > 2:
			s = strings.Join(lines[1:len(lines)-1], "\n")
		case len(lines) == 2:
			s = lines[1]
		}
	}
	s = strings.ReplaceAll(s, "```sql", "")
	s = strings.ReplaceAll(s, "```", "")

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// SanitizeSQL cleans generated text and enforces the verb allow-list,
// returning an InvalidSQLError when the result does not start with an
// allowed keyword.
func SanitizeSQL(raw string) (string, error) {
	s := CleanSQL(raw)
	upper := strings.ToUpper(s)
	for _, verb := range AllowedVerbs {
		if strings.HasPrefix(upper, verb) {
			return s, nil
		}
	}
	return "", &InvalidSQLError{Text: s}
}

// IsReadStatement reports whether the sanitized SQL returns a row set
// (SELECT or SHOW) rather than an affected-row count.
func IsReadStatement(sql string) bool {
	upper := strings.ToUpper(strings.TrimSpace(sql))
	return strings.HasPrefix(upper, "SELECT") || strings.HasPrefix(upper, "SHOW")
}

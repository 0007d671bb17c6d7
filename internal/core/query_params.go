// internal/core/query_params.go
package core

import (
	"fmt"
	"net/url"
	"strconv"
)

// Limits for the query-history listing endpoint.
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// ParseHistoryLimit extracts and bounds the 'limit' query parameter.
func ParseHistoryLimit(queryParams url.Values) (int, error) {
	limitStr := queryParams.Get("limit")
	if limitStr == "" {
		return DefaultHistoryLimit, nil
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return 0, fmt.Errorf("invalid 'limit' parameter: must be an integer")
	}
	if limit < 1 {
		return 0, fmt.Errorf("invalid 'limit' parameter: must be at least 1")
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return limit, nil
}

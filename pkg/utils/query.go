package utils

import (
	"net/http"
	"strconv"
)

// QueryInt reads an integer query parameter, returning fallback when the
// parameter is missing or malformed.
func QueryInt(r *http.Request, key string, fallback int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return i
}

// QueryString reads an optional string query parameter; nil when absent.
func QueryString(r *http.Request, key string) *string {
	if !r.URL.Query().Has(key) {
		return nil
	}
	val := r.URL.Query().Get(key)
	return &val
}

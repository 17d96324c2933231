package registry

import (
	"errors"
	"net/http"
	"net/url"
	"time"
)

const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when a crate or resource doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for registry requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// URLEncode percent-encodes a string for use in URL query parameters.
func URLEncode(s string) string { return url.QueryEscape(s) }

package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// APIError is a non-2xx response. Message is the human-readable text the
// server supplied, or the HTTP status text when it supplied none.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type errorBody struct {
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
}

type errorDetail struct {
	Message string `json:"message"`
}

func newAPIError(code int, status string, body []byte) *APIError {
	return &APIError{StatusCode: code, Message: errorMessage(code, status, body)}
}

// errorMessage prefers "message", then "detail.message", then the status text.
func errorMessage(code int, status string, body []byte) string {
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		if eb.Message != "" {
			return eb.Message
		}
		var d errorDetail
		if len(eb.Detail) > 0 && json.Unmarshal(eb.Detail, &d) == nil && d.Message != "" {
			return d.Message
		}
	}
	return statusText(code, status)
}

// statusText strips the numeric code from a status line such as "401 Unauthorized".
func statusText(code int, status string) string {
	if text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code))); text != "" {
		return text
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return strconv.Itoa(code)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsAuthError reports whether err is a 401 or 403 from the API.
func IsAuthError(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

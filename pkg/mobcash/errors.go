package mobcash

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ResponseError represents a non-2xx answer from the backend.
//
// The backend speaks Django REST framework: an error body is either
// {"detail": "..."}, {"error": "..."} or a map of field name to messages.
type ResponseError struct {
	StatusCode int                 `json:"status_code" yaml:"status_code"`
	Detail     string              `json:"detail"      yaml:"detail"`
	Fields     map[string][]string `json:"fields"      yaml:"fields"`
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (status: %d)", e.Detail, e.StatusCode)
	}

	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s (status: %d)", e.FieldSummary(), e.StatusCode)
	}

	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// FieldSummary renders field errors as "field: msg; other: msg" in field order.
func (e *ResponseError) FieldSummary() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}

	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], ", "))
	}

	return strings.Join(parts, "; ")
}

// Message returns the text shown to a user for this error.
func (e *ResponseError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}

	if len(e.Fields) > 0 {
		return e.FieldSummary()
	}

	return http.StatusText(e.StatusCode)
}

// ParseResponseError builds a ResponseError from a status code and raw body.
// Bodies that are not JSON objects keep only the status code.
func ParseResponseError(statusCode int, body []byte) *ResponseError {
	respErr := &ResponseError{StatusCode: statusCode}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return respErr
	}

	for name, value := range raw {
		switch name {
		case "detail", "error", "message":
			var text string
			if err := json.Unmarshal(value, &text); err == nil && respErr.Detail == "" {
				respErr.Detail = text

				continue
			}
		}

		if messages := decodeMessages(value); len(messages) > 0 {
			if respErr.Fields == nil {
				respErr.Fields = make(map[string][]string)
			}

			respErr.Fields[name] = messages
		}
	}

	return respErr
}

func decodeMessages(value json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(value, &list); err == nil {
		return list
	}

	var text string
	if err := json.Unmarshal(value, &text); err == nil {
		return []string{text}
	}

	return nil
}

// TransportError wraps a failure to reach the backend at all.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Common static errors that can be wrapped with context.
var (
	ErrValidation        = errors.New("validation failed")
	ErrUpload            = errors.New("upload failed")
	ErrUnexpectedShape   = errors.New("unexpected response shape")
	ErrConfigRequired    = errors.New("config is required")
	ErrBaseURLRequired   = errors.New("base URL is required")
	ErrNATSURLRequired   = errors.New("NATS URL is required for nats cache")
	ErrCacheKeyNotFound  = errors.New("key not found")
	ErrCacheEntryExpired = errors.New("entry expired")
	ErrEmptyUploadURL    = errors.New("upload returned no URL")
)

// IsTransport reports whether err is a connection-level failure.
func IsTransport(err error) bool {
	var transportErr *TransportError

	return errors.As(err, &transportErr)
}

// StatusCode returns the HTTP status of a backend error or 0.
func StatusCode(err error) int {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}

	return 0
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsValidation reports client-side validation failures and backend 400s.
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidation) {
		return true
	}

	return StatusCode(err) == http.StatusBadRequest
}

// IsClientError reports backend 4xx failures, which retrying cannot fix.
func IsClientError(err error) bool {
	code := StatusCode(err)

	return code >= http.StatusBadRequest && code < http.StatusInternalServerError && code != http.StatusTooManyRequests
}

// UserMessage returns the text to show a user for err.
func UserMessage(err error) string {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.Message()
	}

	if IsTransport(err) {
		return "Erreur de connexion au serveur"
	}

	return err.Error()
}

// Package aerr defines the typed errors surfaced by providers and the
// fallback chain. Every error carries the originating provider's name so
// callers can render per-provider diagnostics without re-querying anything.
package aerr

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ProviderError is the base error for a single provider failure.
// It is an immutable value object created per call and discarded after use.
type ProviderError struct {
	// Provider is the name of the provider that produced the error.
	Provider string
	// Message is the human-readable failure description. For non-zero exits
	// this carries stderr (or stdout if stderr was empty) so diagnostic text
	// is never silently dropped.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *ProviderError) Error() string {
	if e.Provider == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError creates a ProviderError for the given provider.
func NewProviderError(provider, message string, cause error) *ProviderError {
	return &ProviderError{Provider: provider, Message: message, Cause: cause}
}

// NotAvailableError indicates the provider's tool is missing from PATH or
// mis-configured. It is also used for configuration errors caught before any
// process or network activity (empty prompt, non-positive timeout).
type NotAvailableError struct {
	ProviderError
}

// NewNotAvailableError creates a NotAvailableError for the given provider.
func NewNotAvailableError(provider, message string) *NotAvailableError {
	return &NotAvailableError{ProviderError{Provider: provider, Message: message}}
}

// TimeoutError indicates a bounded wait was exceeded and the in-flight
// process or request was terminated. Callers treat timeouts as
// maybe-transient and move on to the next provider in the chain.
type TimeoutError struct {
	ProviderError
	// Timeout is the budget that was exceeded.
	Timeout time.Duration
	// Operation labels what timed out (e.g. "generateCommitMessage").
	Operation string
}

// NewTimeoutError creates a TimeoutError for the given operation.
func NewTimeoutError(provider, operation string, timeout time.Duration) *TimeoutError {
	return &TimeoutError{
		ProviderError: ProviderError{
			Provider: provider,
			Message:  fmt.Sprintf("%s timed out after %s (hint: increase timeout in config)", operation, timeout),
			Cause:    context.DeadlineExceeded,
		},
		Timeout:   timeout,
		Operation: operation,
	}
}

// WithProvider returns a copy of the error re-attributed to the given
// provider and operation, preserving the original timeout and cause.
func (e *TimeoutError) WithProvider(provider, operation string) *TimeoutError {
	out := NewTimeoutError(provider, operation, e.Timeout)
	out.Cause = e.Cause
	return out
}

// APIError indicates a non-2xx response from an API-backed provider.
type APIError struct {
	ProviderError
	// StatusCode is the HTTP status, 0 if the request never completed.
	StatusCode int
	// APIMessage is the response body or error payload, if any.
	APIMessage string
}

// NewAPIError creates an APIError for the given provider.
func NewAPIError(provider string, statusCode int, apiMessage string, cause error) *APIError {
	msg := fmt.Sprintf("API request failed (status %d)", statusCode)
	if statusCode == 0 {
		msg = "API request failed"
	}
	if apiMessage != "" {
		msg = fmt.Sprintf("%s: %s", msg, apiMessage)
	}
	return &APIError{
		ProviderError: ProviderError{Provider: provider, Message: msg, Cause: cause},
		StatusCode:    statusCode,
		APIMessage:    apiMessage,
	}
}

// MalformedOutputError indicates the tool ran and exited cleanly but its
// output failed parsing or minimal-format validation.
type MalformedOutputError struct {
	ProviderError
}

// NewMalformedOutputError creates a MalformedOutputError for the given provider.
func NewMalformedOutputError(provider, message string) *MalformedOutputError {
	return &MalformedOutputError{ProviderError{Provider: provider, Message: message}}
}

// ChainError aggregates the failures of every provider in an exhausted
// fallback chain. Errs[i] is the failure of AttemptedProviders[i]; the two
// slices always have equal length and attempt order.
type ChainError struct {
	AttemptedProviders []string
	Errs               []error
}

func (e *ChainError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "all %d providers failed:", len(e.AttemptedProviders))
	for i, name := range e.AttemptedProviders {
		fmt.Fprintf(&b, "\n  %d. %s: %v", i+1, name, e.Errs[i])
	}
	return b.String()
}

// Unwrap exposes the per-provider errors to errors.Is and errors.As.
func (e *ChainError) Unwrap() []error {
	return e.Errs
}

// Package testutil provides test utilities and helpers for aicommit tests.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ariel-frischer/aicommit/internal/provider"
)

// CallRecord records a single generate call with metadata.
type CallRecord struct {
	Provider  string
	Prompt    string
	Timestamp time.Time
	Response  string
	Error     error
}

// MockProviderBuilder provides a fluent API for configuring mock provider behavior.
type MockProviderBuilder struct {
	name         string
	available    bool
	availDelay   time.Duration
	responses    []mockResponse
	currentIndex int
	calls        []CallRecord
	probes       int
	mu           sync.Mutex
	t            *testing.T
}

type mockResponse struct {
	response    string
	responseErr error
	delay       time.Duration
}

// NewMockProviderBuilder creates a new MockProviderBuilder for configuring mock behavior.
func NewMockProviderBuilder(t *testing.T, name string) *MockProviderBuilder {
	t.Helper()

	return &MockProviderBuilder{
		name:      name,
		available: true,
		responses: make([]mockResponse, 0),
		calls:     make([]CallRecord, 0),
		t:         t,
	}
}

// WithResponse adds a successful response to the response queue.
func (b *MockProviderBuilder) WithResponse(response string) *MockProviderBuilder {
	b.responses = append(b.responses, mockResponse{response: response})
	return b
}

// WithError adds an error response to the response queue.
func (b *MockProviderBuilder) WithError(err error) *MockProviderBuilder {
	b.responses = append(b.responses, mockResponse{responseErr: err})
	return b
}

// ThenResponse adds another response to be returned on subsequent calls.
func (b *MockProviderBuilder) ThenResponse(response string) *MockProviderBuilder {
	return b.WithResponse(response)
}

// ThenError adds an error to be returned on subsequent calls.
func (b *MockProviderBuilder) ThenError(err error) *MockProviderBuilder {
	return b.WithError(err)
}

// WithDelay adds a delay before returning the last queued response.
func (b *MockProviderBuilder) WithDelay(d time.Duration) *MockProviderBuilder {
	if len(b.responses) > 0 {
		b.responses[len(b.responses)-1].delay = d
	}
	return b
}

// Unavailable makes IsAvailable report false.
func (b *MockProviderBuilder) Unavailable() *MockProviderBuilder {
	b.available = false
	return b
}

// WithAvailabilityDelay adds a delay to each IsAvailable probe.
func (b *MockProviderBuilder) WithAvailabilityDelay(d time.Duration) *MockProviderBuilder {
	b.availDelay = d
	return b
}

// Build returns the configured mock provider.
func (b *MockProviderBuilder) Build() *MockProvider {
	return &MockProvider{builder: b}
}

// Calls returns a copy of all recorded generate calls.
func (b *MockProviderBuilder) Calls() []CallRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]CallRecord, len(b.calls))
	copy(out, b.calls)
	return out
}

// CallCount returns the number of generate calls made so far.
func (b *MockProviderBuilder) CallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

// AvailabilityProbes returns the number of IsAvailable calls made so far.
func (b *MockProviderBuilder) AvailabilityProbes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.probes
}

// MockProvider implements provider.Provider with scripted behavior.
type MockProvider struct {
	builder *MockProviderBuilder
}

var _ provider.Provider = (*MockProvider)(nil)

func (m *MockProvider) Name() string        { return m.builder.name }
func (m *MockProvider) Kind() provider.Kind { return provider.KindCLI }

func (m *MockProvider) IsAvailable(ctx context.Context) bool {
	b := m.builder
	b.mu.Lock()
	b.probes++
	delay := b.availDelay
	avail := b.available
	b.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return false
		}
	}
	return avail
}

func (m *MockProvider) GenerateCommitMessage(ctx context.Context, prompt string, opts provider.GenerateOptions) (string, error) {
	b := m.builder
	b.mu.Lock()
	var resp mockResponse
	if b.currentIndex < len(b.responses) {
		resp = b.responses[b.currentIndex]
		b.currentIndex++
	}
	b.mu.Unlock()

	if resp.delay > 0 {
		select {
		case <-time.After(resp.delay):
		case <-ctx.Done():
			resp.responseErr = ctx.Err()
		}
	}

	b.mu.Lock()
	b.calls = append(b.calls, CallRecord{
		Provider:  b.name,
		Prompt:    prompt,
		Timestamp: time.Now(),
		Response:  resp.response,
		Error:     resp.responseErr,
	})
	b.mu.Unlock()

	if resp.responseErr != nil {
		return "", resp.responseErr
	}
	return resp.response, nil
}

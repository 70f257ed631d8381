package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ariel-frischer/aicommit/internal/aerr"
	"github.com/ariel-frischer/aicommit/internal/clean"
)

// maxAPIResponseBytes caps how much of an API response is read.
const maxAPIResponseBytes = 1 << 20

// API is a network-backed provider: a single POST with a bearer credential
// and a JSON body carrying the prompt. It shares the error taxonomy and
// timeout discipline of the CLI providers but performs an HTTP request
// instead of spawning a process.
type API struct {
	name       string
	endpoint   string
	credential string
	model      string
	timeout    time.Duration
	client     *http.Client

	minLength         int
	conventionalTypes []string
}

// NewAPI creates an API provider for the given endpoint and credential.
func NewAPI(name, endpoint, credential string) *API {
	if name == "" {
		name = "api"
	}
	return &API{
		name:       name,
		endpoint:   endpoint,
		credential: credential,
		client:     &http.Client{},
	}
}

type apiRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// Name returns the provider's configured name.
func (a *API) Name() string { return a.name }

// Kind returns KindAPI.
func (a *API) Kind() Kind { return KindAPI }

// IsAvailable reports whether the provider is configured with a usable
// endpoint and credential. No request is made: a speculative network call
// per probe would spend quota on a read-only check.
func (a *API) IsAvailable(ctx context.Context) bool {
	if a.credential == "" {
		return false
	}
	u, err := url.Parse(a.endpoint)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// GenerateCommitMessage POSTs the prompt and extracts the message field
// from the JSON response.
func (a *API) GenerateCommitMessage(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if err := validateInputs(a.name, prompt, opts); err != nil {
		return "", err
	}
	if !a.IsAvailable(ctx) {
		return "", aerr.NewNotAvailableError(a.name, "API endpoint or credential not configured")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = a.timeout
	}
	if timeout <= 0 {
		timeout = DefaultAPITimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(apiRequest{Prompt: prompt, Model: a.model})
	if err != nil {
		return "", aerr.NewProviderError(a.name, "marshaling request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", aerr.NewProviderError(a.name, "creating request", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.credential)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", aerr.NewTimeoutError(a.name, "generateCommitMessage", timeout)
		}
		return "", aerr.NewAPIError(a.name, 0, "", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseBytes))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", aerr.NewTimeoutError(a.name, "generateCommitMessage", timeout)
		}
		return "", aerr.NewAPIError(a.name, resp.StatusCode, "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", aerr.NewAPIError(a.name, resp.StatusCode, strings.TrimSpace(string(payload)), nil)
	}

	text, ok := clean.ParseStructured(string(payload))
	if !ok {
		return "", aerr.NewMalformedOutputError(a.name,
			fmt.Sprintf("response has no message field: %s", truncate(string(payload), 200)))
	}

	text, err = clean.Parse(text, clean.Options{MinLength: a.minLength})
	if err != nil {
		return "", aerr.NewMalformedOutputError(a.name, err.Error())
	}
	if a.conventionalTypes != nil {
		if err := clean.ValidateConventional(text, a.conventionalTypes); err != nil {
			return "", aerr.NewMalformedOutputError(a.name, err.Error())
		}
	}
	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

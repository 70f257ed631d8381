// Package clean normalizes heterogeneous AI tool output into a single
// commit message string. Tools emit plain text, JSON envelopes, fenced code
// blocks, diagnostic noise, and sentinel-delimited payloads; this package
// reduces all of them to the text the user should see and validates that
// the result is a plausible message.
//
// Cleaning is idempotent: applying Parse to its own output yields the same
// string.
package clean

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kaptinlin/jsonrepair"
)

// structuredFields are the envelope field names tried in priority order
// when output is structured. The API provider reads its response body with
// the same precedence.
var structuredFields = []string{"message", "result", "content", "text", "response"}

// Options configures a single Parse call.
type Options struct {
	// ExpectStructured forces a structured decode attempt even when the
	// output does not start with an opening brace.
	ExpectStructured bool

	// AllowEmpty skips minimal-format validation. Used by callers that
	// apply their own stricter policy afterwards.
	AllowEmpty bool

	// PreserveWhitespace disables surrounding-whitespace trimming so
	// byte-exact round-tripping remains possible.
	PreserveWhitespace bool

	// MinLength overrides the minimal-format length threshold.
	// Zero means DefaultMinLength.
	MinLength int
}

// Parse normalizes raw tool output into a clean message string.
// Structured output is decoded and a known text field extracted; any decode
// failure silently falls through to plain-text handling, because tools are
// not guaranteed to honor structured-output requests.
func Parse(raw string, opts Options) (string, error) {
	text := raw
	if opts.ExpectStructured || strings.HasPrefix(strings.TrimSpace(raw), "{") {
		if extracted, ok := ParseStructured(raw); ok {
			text = extracted
		}
	}

	text = StripArtifacts(text)
	text = ParsePlainText(text, opts.PreserveWhitespace)

	if !opts.AllowEmpty {
		if err := ValidateMinimalFormat(text, opts.MinLength); err != nil {
			return "", err
		}
	}
	return text, nil
}

// ParseStructured decodes a JSON envelope and extracts the first known text
// field. Malformed JSON gets one repair attempt before giving up; the
// boolean result is false when no usable field was found.
func ParseStructured(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)

	var envelope map[string]any
	if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(trimmed)
		if repairErr != nil {
			return "", false
		}
		if err := json.Unmarshal([]byte(repaired), &envelope); err != nil {
			return "", false
		}
	}

	for _, field := range structuredFields {
		if value, ok := envelope[field]; ok {
			if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
				return s, true
			}
		}
	}
	return "", false
}

// ParsePlainText removes fenced code-block delimiters, normalizes line
// endings, and optionally trims surrounding whitespace.
func ParsePlainText(text string, preserveWhitespace bool) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if fencePattern.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	text = strings.Join(kept, "\n")

	if !preserveWhitespace {
		text = strings.TrimSpace(text)
	}
	return text
}

// ValidateMinimalFormat rejects output that, after cleaning, is empty,
// shorter than the minimum length, or contains no alphanumeric content.
// A tool that ran but produced garbage must surface as a hard failure.
func ValidateMinimalFormat(message string, minLength int) error {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}

	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return fmt.Errorf("message is empty after cleaning")
	}
	// Counted in runes, not bytes, so non-ASCII messages are measured the
	// way a reader would count them.
	if length := utf8.RuneCountInString(trimmed); length < minLength {
		return fmt.Errorf("message is too short: %d characters (minimum %d)", length, minLength)
	}
	if !alnumPattern.MatchString(trimmed) {
		return fmt.Errorf("message contains no alphanumeric content: %q", trimmed)
	}
	return nil
}

package clean

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultMinLength is the minimal-format length threshold. Kept
// configurable (config `min_message_length`) rather than hard-coded at
// call sites.
const DefaultMinLength = 5

// DefaultConventionalTypes is the conventional-commit type vocabulary.
// Configurable via `conventional_types`.
var DefaultConventionalTypes = []string{
	"feat", "fix", "docs", "style", "refactor", "perf", "test", "chore", "build", "ci",
}

// ValidateConventional checks that the first line of a message matches
// `type(scope)?: description` with a lowercase type drawn from the given
// vocabulary (nil means DefaultConventionalTypes). Scope, if present, must
// be non-empty parenthesized text, and the description must be non-empty
// after the colon. Only the first line of a multi-line message is checked.
func ValidateConventional(message string, types []string) error {
	if len(types) == 0 {
		types = DefaultConventionalTypes
	}

	firstLine := message
	if idx := strings.IndexByte(message, '\n'); idx != -1 {
		firstLine = message[:idx]
	}
	firstLine = strings.TrimSpace(firstLine)

	pattern := conventionalPattern(types)
	if !pattern.MatchString(firstLine) {
		return fmt.Errorf("first line %q does not match conventional format type(scope)?: description (types: %s)",
			firstLine, strings.Join(types, ", "))
	}
	return nil
}

// conventionalPattern builds the first-line matcher for the vocabulary.
// Types are matched case-sensitively; "FEAT:" must fail.
func conventionalPattern(types []string) *regexp.Regexp {
	escaped := make([]string, len(types))
	for i, t := range types {
		escaped[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`^(?:` + strings.Join(escaped, "|") + `)(?:\([^)]+\))?!?: \S.*$`)
}

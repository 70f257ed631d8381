package clean

import (
	"regexp"
	"strings"
)

// Sentinel markers some providers are instructed to emit around the payload.
const (
	SentinelStart = "<<<COMMIT_MESSAGE_START>>>"
	SentinelEnd   = "<<<COMMIT_MESSAGE_END>>>"
)

var (
	fencePattern = regexp.MustCompile("^\\s*```[a-zA-Z0-9_-]*\\s*$")
	alnumPattern = regexp.MustCompile(`[a-zA-Z0-9]`)

	// Explanatory preambles observed across tools.
	preamblePattern = regexp.MustCompile(`(?i)^\s*(here\s+(?:is|'s)\s+(?:the\s+|a\s+|your\s+)?commit\s+message[:.]?|looking\s+at\s+the\s+(?:changes|diff)\b.*|based\s+on\s+the\s+(?:diff|changes)\b.*)\s*$`)

	// Internal reasoning blocks delimited by a thinking-tag convention.
	thinkingPattern = regexp.MustCompile(`(?s)<think(?:ing)?>.*?</think(?:ing)?>`)

	// Tool activity and metadata log lines: leading timestamps and
	// key-value echoes of model, provider, config, or working directory.
	timestampPattern = regexp.MustCompile(`^\s*\[?\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}(?::\d{2})?`)
	metadataPattern  = regexp.MustCompile(`(?i)^\s*(model|provider|config|working directory|cwd|session|duration|tokens? used)\s*[:=]`)
)

// Transform is a single pattern-based cleaning step. Provider-specific
// cleaning rules are expressed as an ordered list of transforms layered on
// top of the shared baseline rather than as subclass overrides.
type Transform func(string) string

// StripArtifacts removes the fixed catalogue of noise patterns observed
// across tools: sentinel-delimited payload markers, thinking blocks,
// explanatory preambles, and activity log lines.
func StripArtifacts(text string) string {
	text = extractSentinelPayload(text)
	text = thinkingPattern.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if preamblePattern.MatchString(line) {
			continue
		}
		if timestampPattern.MatchString(line) || metadataPattern.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// extractSentinelPayload keeps only the text strictly between the start and
// end sentinels. When just one sentinel is present the text is returned
// untouched: a half-delimited payload is a malformed signal, not something
// to guess at.
func extractSentinelPayload(text string) string {
	start := strings.Index(text, SentinelStart)
	end := strings.Index(text, SentinelEnd)
	if start == -1 || end == -1 || end < start {
		return text
	}
	return text[start+len(SentinelStart) : end]
}

// Apply runs the provider-specific transforms in order after the shared
// baseline has already been applied.
func Apply(text string, transforms []Transform) string {
	for _, t := range transforms {
		text = t(text)
	}
	return text
}

// StripLinesMatching returns a Transform that drops whole lines matching
// the pattern. Used by providers whose CLIs interleave their own status
// lines with the payload.
func StripLinesMatching(pattern *regexp.Regexp) Transform {
	return func(text string) string {
		lines := strings.Split(text, "\n")
		kept := lines[:0]
		for _, line := range lines {
			if pattern.MatchString(line) {
				continue
			}
			kept = append(kept, line)
		}
		return strings.Join(kept, "\n")
	}
}

// StripPrefix returns a Transform that removes a literal prefix from the
// start of the (whitespace-trimmed) output.
func StripPrefix(prefix string) Transform {
	return func(text string) string {
		trimmed := strings.TrimSpace(text)
		if strings.HasPrefix(trimmed, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, prefix))
		}
		return text
	}
}

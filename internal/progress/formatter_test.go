package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAttemptMessage(t *testing.T) {
	assert.Equal(t, "[1/3] generating with claude", buildAttemptMessage("claude", 1, 3))
	assert.Equal(t, "[2/2] generating with gemini", buildAttemptMessage("gemini", 2, 2))
}

func TestCheckmarkColoring(t *testing.T) {
	unicode := Symbols{Checkmark: "✓", Failure: "✗"}
	ascii := Symbols{Checkmark: "[OK]", Failure: "[FAIL]"}

	assert.Equal(t, "\033[32m✓\033[0m", checkmark(unicode, true))
	assert.Equal(t, "✓", checkmark(unicode, false))
	assert.Equal(t, "[OK]", checkmark(ascii, true), "ASCII marks are never colored")

	assert.Equal(t, "\033[31m✗\033[0m", failureMark(unicode, true))
	assert.Equal(t, "[FAIL]", failureMark(ascii, true))
}

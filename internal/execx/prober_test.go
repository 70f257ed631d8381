package execx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckAvailable(t *testing.T) {
	tests := map[string]struct {
		command string
		want    bool
	}{
		"empty command":       {command: "", want: false},
		"missing command":     {command: "definitely-not-a-real-binary-xyz", want: false},
		"responds to version": {command: "git", want: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := CheckAvailable(context.Background(), tt.command)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckAvailableNeverPanicsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A dead context must degrade to unavailable, never to a panic or error.
	assert.False(t, CheckAvailable(ctx, "git"))
}

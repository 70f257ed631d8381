// Package progress renders a spinner while a provider runs. Output goes to
// stderr so stdout stays reserved for the generated message.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Display orchestrates progress indicators across provider attempts.
type Display struct {
	capabilities TerminalCapabilities
	spinner      *spinner.Spinner
	symbols      Symbols
}

// NewDisplay creates a progress display for the given terminal capabilities.
func NewDisplay(caps TerminalCapabilities) *Display {
	return &Display{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
	}
}

// Attempt begins displaying progress for one provider attempt.
func (d *Display) Attempt(providerName string, attempt, total int) {
	msg := buildAttemptMessage(providerName, attempt, total)

	if d.capabilities.IsTTY {
		d.spinner = spinner.New(
			spinner.CharSets[d.symbols.SpinnerSet],
			100*time.Millisecond,
		)
		d.spinner.Writer = os.Stderr
		d.spinner.Suffix = " " + msg
		d.spinner.Start()
		return
	}
	fmt.Fprintln(os.Stderr, msg)
}

// Success stops the spinner and shows a success mark for the provider.
func (d *Display) Success(providerName string) {
	d.stop()
	fmt.Fprintf(os.Stderr, "%s %s\n", d.checkmark(), providerName)
}

// Failure stops the spinner and shows the provider's failure.
func (d *Display) Failure(providerName string, err error) {
	d.stop()
	fmt.Fprintf(os.Stderr, "%s %s: %v\n", d.failureMark(), providerName, err)
}

// Stop halts the spinner without a completion or failure mark.
func (d *Display) Stop() {
	d.stop()
}

func (d *Display) stop() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}

func (d *Display) checkmark() string {
	return checkmark(d.symbols, d.capabilities.SupportsColor)
}

func (d *Display) failureMark() string {
	return failureMark(d.symbols, d.capabilities.SupportsColor)
}

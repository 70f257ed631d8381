package progress

import "fmt"

// formatAttemptCounter returns the [N/Total] attempt counter string.
func formatAttemptCounter(attempt, total int) string {
	return fmt.Sprintf("[%d/%d]", attempt, total)
}

// buildAttemptMessage constructs the message shown while a provider runs.
func buildAttemptMessage(providerName string, attempt, total int) string {
	return fmt.Sprintf("%s generating with %s", formatAttemptCounter(attempt, total), providerName)
}

// checkmark returns the success mark, green when the terminal supports it.
func checkmark(symbols Symbols, supportsColor bool) string {
	mark := symbols.Checkmark
	if supportsColor && mark == "✓" {
		mark = "\033[32m" + mark + "\033[0m"
	}
	return mark
}

// failureMark returns the failure mark, red when the terminal supports it.
func failureMark(symbols Symbols, supportsColor bool) string {
	mark := symbols.Failure
	if supportsColor && mark == "✗" {
		mark = "\033[31m" + mark + "\033[0m"
	}
	return mark
}

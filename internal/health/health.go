// Package health runs diagnostic checks over the configured providers and
// the git prerequisite, for the doctor command.
package health

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/ariel-frischer/aicommit/internal/execx"
	"github.com/ariel-frischer/aicommit/internal/progress"
	"github.com/ariel-frischer/aicommit/internal/provider"
)

// CheckResult represents the result of a single health check.
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// Report contains all health check results.
type Report struct {
	Checks []CheckResult
	Passed bool
}

// RunChecks probes git and every registered provider and returns a
// report. Each provider is probed exactly once, through the registry's
// availability scan; Passed is true when git works and at least one
// provider is available.
func RunChecks(ctx context.Context, reg *provider.Registry) *Report {
	report := &Report{}

	gitCheck := CheckGit()
	report.Checks = append(report.Checks, gitCheck)

	available := make(map[string]bool)
	for _, p := range reg.Available(ctx) {
		available[p.Name()] = true
	}

	for _, name := range reg.List() {
		p := reg.Get(name)
		report.Checks = append(report.Checks, checkProvider(ctx, p, available[name]))
	}

	report.Passed = gitCheck.Passed && len(available) > 0
	return report
}

// checkProvider builds the check result for one provider whose
// availability is already known, adding the tool version for CLI providers.
func checkProvider(ctx context.Context, p provider.Provider, available bool) CheckResult {
	name := fmt.Sprintf("%s (%s)", p.Name(), p.Kind())
	if !available {
		return CheckResult{
			Name:    name,
			Passed:  false,
			Message: "not available",
		}
	}

	msg := "available"
	if p.Kind() == provider.KindCLI {
		if version := probeVersion(ctx, p.Name()); version != "" {
			msg = version
		}
	}
	return CheckResult{Name: name, Passed: true, Message: msg}
}

// CheckGit checks that git is installed.
func CheckGit() CheckResult {
	if _, err := exec.LookPath("git"); err != nil {
		return CheckResult{
			Name:    "git",
			Passed:  false,
			Message: "git not found in PATH",
		}
	}
	return CheckResult{Name: "git", Passed: true, Message: "found"}
}

// probeVersion returns the first line of `<cmd> --version`, or empty.
func probeVersion(ctx context.Context, command string) string {
	result, err := execx.Execute(ctx, execx.Spec{
		Command: command,
		Args:    []string{"--version"},
		Timeout: 5 * time.Second,
	})
	if err != nil || result.TimedOut || result.ExitCode != 0 {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(result.Stdout), "\n")
	return line
}

// FormatReport formats the report for console output using the same
// symbol selection as the progress display, so doctor output degrades to
// ASCII marks on the same terminals the spinner does.
func FormatReport(report *Report, symbols progress.Symbols) string {
	var b strings.Builder
	for _, check := range report.Checks {
		mark := symbols.Checkmark
		if !check.Passed {
			mark = symbols.Failure
		}
		fmt.Fprintf(&b, "%s %s: %s\n", mark, check.Name, check.Message)
	}
	return b.String()
}

// Package gitx collects the staged-change context a commit message is
// generated from: diff statistics, a name-status listing, the unified diff
// body, and recent commit subjects for convention mining. The output is
// consumed as opaque strings embedded into the prompt; no diff parsing
// happens here or downstream.
package gitx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ariel-frischer/aicommit/internal/execx"
)

// gitTimeout bounds each git invocation. Diff collection against a large
// repository is still expected to complete well under this.
const gitTimeout = 15 * time.Second

// Context holds the staged-change information embedded into prompts.
type Context struct {
	Branch        string
	DiffStat      string
	NameStatus    string
	Diff          string
	RecentCommits []string
}

// Git runs a git subcommand in repoRoot and returns its stdout.
func Git(ctx context.Context, repoRoot string, args ...string) (string, error) {
	spec := execx.Spec{
		Command: "git",
		Args:    args,
		Dir:     repoRoot,
		Timeout: gitTimeout,
	}
	out, err := execx.Run(ctx, spec)
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return out, nil
}

// IsRepository reports whether dir is inside a git work tree.
func IsRepository(ctx context.Context, dir string) bool {
	result, err := execx.Execute(ctx, execx.Spec{
		Command: "git",
		Args:    []string{"rev-parse", "--git-dir"},
		Dir:     dir,
		Timeout: gitTimeout,
	})
	return err == nil && !result.TimedOut && result.ExitCode == 0
}

// HasStagedChanges reports whether the index differs from HEAD.
func HasStagedChanges(ctx context.Context, repoRoot string) bool {
	result, err := execx.Execute(ctx, execx.Spec{
		Command: "git",
		Args:    []string{"diff", "--staged", "--quiet"},
		Dir:     repoRoot,
		Timeout: gitTimeout,
	})
	// Exit 1 means the index has changes; 0 means clean.
	return err == nil && !result.TimedOut && result.ExitCode == 1
}

// CurrentBranch returns the current branch name.
func CurrentBranch(ctx context.Context, repoRoot string) (string, error) {
	out, err := Git(ctx, repoRoot, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RecentCommitSubjects returns the subjects of the last n commits,
// newest first. An empty repository yields an empty slice, not an error.
func RecentCommitSubjects(ctx context.Context, repoRoot string, n int) []string {
	if n <= 0 {
		return nil
	}
	out, err := Git(ctx, repoRoot, "log", fmt.Sprintf("-n%d", n), "--pretty=format:%s")
	if err != nil {
		return nil
	}
	return splitNonEmptyLines(out)
}

// StagedContext collects the full staged-change context for prompt
// assembly. The unified diff is truncated to maxFiles files to keep the
// prompt within tool input limits.
func StagedContext(ctx context.Context, repoRoot string, maxFiles int) (*Context, error) {
	if maxFiles <= 0 {
		maxFiles = 10
	}

	nameStatus, err := Git(ctx, repoRoot, "diff", "--staged", "--name-status")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(nameStatus) == "" {
		return nil, fmt.Errorf("no staged changes (stage files with 'git add' first)")
	}

	stat, err := Git(ctx, repoRoot, "diff", "--staged", "--stat")
	if err != nil {
		return nil, err
	}

	files := nameStatusPaths(nameStatus)
	if len(files) > maxFiles {
		files = files[:maxFiles]
	}

	diffArgs := append([]string{"diff", "--staged", "--"}, files...)
	diff, err := Git(ctx, repoRoot, diffArgs...)
	if err != nil {
		return nil, err
	}

	branch, _ := CurrentBranch(ctx, repoRoot)

	return &Context{
		Branch:        branch,
		DiffStat:      strings.TrimRight(stat, "\n"),
		NameStatus:    strings.TrimRight(nameStatus, "\n"),
		Diff:          diff,
		RecentCommits: RecentCommitSubjects(ctx, repoRoot, 10),
	}, nil
}

// nameStatusPaths extracts the file paths from a name-status listing.
// Renames report two paths; the destination is kept.
func nameStatusPaths(nameStatus string) []string {
	var paths []string
	for _, line := range splitNonEmptyLines(nameStatus) {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		paths = append(paths, fields[len(fields)-1])
	}
	return paths
}

func splitNonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Package promptx assembles the prompt handed to a provider. The diff
// context is embedded as opaque text; the instruction block asks the tool
// to bracket its answer with the sentinel markers the cleaner extracts.
package promptx

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/aicommit/internal/clean"
	"github.com/ariel-frischer/aicommit/internal/gitx"
)

// Options controls prompt assembly.
type Options struct {
	// Conventional asks the tool for a conventional-commit first line.
	Conventional bool
	// Types is the conventional type vocabulary to advertise.
	// Nil means the default vocabulary.
	Types []string
	// Instructions is free-form user guidance appended to the prompt.
	Instructions string
}

// Build constructs the full generation prompt from the staged-change
// context.
func Build(gc *gitx.Context, opts Options) string {
	var b strings.Builder

	b.WriteString("You are writing a git commit message for the staged changes below.\n")
	b.WriteString("Analyze the changes, identify their purpose, and write a succinct commit message.\n")
	b.WriteString("Follow the style of the recent commits when they show a clear convention.\n")
	b.WriteString("Do not include issue references, tags, or author names.\n\n")

	if opts.Conventional {
		types := opts.Types
		if len(types) == 0 {
			types = clean.DefaultConventionalTypes
		}
		fmt.Fprintf(&b, "The first line MUST follow the conventional format type(scope)?: description, with type one of: %s.\n\n",
			strings.Join(types, ", "))
	}

	if gc.Branch != "" {
		fmt.Fprintf(&b, "# BRANCH\n%s\n\n", gc.Branch)
	}

	if len(gc.RecentCommits) > 0 {
		b.WriteString("# RECENT COMMITS\n")
		for _, subject := range gc.RecentCommits {
			fmt.Fprintf(&b, "- %s\n", subject)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "# CHANGED FILES\n%s\n\n", gc.NameStatus)
	fmt.Fprintf(&b, "# DIFF STAT\n%s\n\n", gc.DiffStat)
	fmt.Fprintf(&b, "# DIFF\n%s\n\n", gc.Diff)

	if opts.Instructions != "" {
		fmt.Fprintf(&b, "# ADDITIONAL INSTRUCTIONS\n%s\n\n", opts.Instructions)
	}

	fmt.Fprintf(&b, "Respond with ONLY the commit message between the markers %s and %s, nothing else.\n",
		clean.SentinelStart, clean.SentinelEnd)

	return b.String()
}

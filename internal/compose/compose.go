// Package compose derives a minimal commit message from the name-status
// listing alone. It is the rule-based fallback used when every AI provider
// in the chain has failed, so the tool still produces something usable
// offline.
package compose

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// Fallback builds a rule-based message from a name-status listing.
// The shape is `<verb> <area>` with a conventional prefix, where the verb
// comes from the dominant change kind and the area from the common
// directory of the changed files.
func Fallback(nameStatus string) string {
	var added, modified, deleted int
	var files []string

	for _, line := range strings.Split(nameStatus, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0][0] {
		case 'A':
			added++
		case 'D':
			deleted++
		default:
			modified++
		}
		files = append(files, fields[len(fields)-1])
	}

	if len(files) == 0 {
		return "chore: update files"
	}

	verb := "update"
	switch {
	case added > 0 && modified == 0 && deleted == 0:
		verb = "add"
	case deleted > 0 && modified == 0 && added == 0:
		verb = "remove"
	}

	return fmt.Sprintf("chore: %s %s", verb, describeArea(files))
}

// describeArea names what changed: the file itself for a single change,
// the shared directory when one exists, otherwise a file count.
func describeArea(files []string) string {
	if len(files) == 1 {
		return files[0]
	}

	if dir := commonDir(files); dir != "" {
		return dir
	}
	return fmt.Sprintf("%d files", len(files))
}

// commonDir returns the deepest directory containing every file, or empty
// if they only share the repository root.
func commonDir(files []string) string {
	dirs := make([]string, len(files))
	for i, f := range files {
		dirs[i] = path.Dir(f)
	}
	sort.Strings(dirs)

	first := strings.Split(dirs[0], "/")
	last := strings.Split(dirs[len(dirs)-1], "/")

	var common []string
	for i := 0; i < len(first) && i < len(last); i++ {
		if first[i] != last[i] {
			break
		}
		common = append(common, first[i])
	}

	joined := strings.Join(common, "/")
	if joined == "." || joined == "" {
		return ""
	}
	return joined
}

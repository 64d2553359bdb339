// Package discover locates Claude Code session transcript files on disk.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultPattern is the glob pattern used when no --pattern flag is given:
// every *.jsonl file under any project directory in the Claude Code
// projects root.
const DefaultPattern = "~/.claude/projects/**/*.jsonl"

// Files resolves pattern to a sorted, deduplicated list of absolute file
// paths. pattern may be a concrete file (returned as a singleton), a
// directory (searched recursively for *.jsonl), or a glob supporting a
// leading "~" for the user's home directory and a single "**" path segment
// meaning "any number of directory levels", since filepath.Glob itself has
// no recursive-wildcard support.
func Files(pattern string) ([]string, error) {
	expanded, err := expandHome(pattern)
	if err != nil {
		return nil, err
	}

	if info, err := os.Stat(expanded); err == nil {
		if info.Mode().IsRegular() {
			abs, err := filepath.Abs(expanded)
			if err != nil {
				abs = expanded
			}
			return []string{abs}, nil
		}
		if info.IsDir() {
			expanded = filepath.Join(expanded, "**", "*.jsonl")
		}
	}

	var matches []string
	if idx := strings.Index(expanded, "**"); idx >= 0 {
		matches, err = globRecursive(expanded)
	} else {
		matches, err = filepath.Glob(expanded)
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		abs, err := filepath.Abs(m)
		if err != nil {
			abs = m
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || info.IsDir() {
			continue
		}
		seen[abs] = struct{}{}
		out = append(out, abs)
	}

	sort.Strings(out)
	return out, nil
}

// expandHome replaces a leading "~" (or "~/...") with the user's home
// directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// globRecursive implements a single "**" path segment by walking every
// directory beneath the prefix before the "**" and globbing the suffix
// pattern within each.
func globRecursive(pattern string) ([]string, error) {
	parts := strings.SplitN(pattern, "**", 2)
	root := strings.TrimSuffix(parts[0], string(filepath.Separator))
	suffix := strings.TrimPrefix(parts[1], string(filepath.Separator))
	if root == "" {
		root = "."
	}

	var dirs []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries rather than aborting discovery
		}
		if info.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, dir := range dirs {
		m, err := filepath.Glob(filepath.Join(dir, suffix))
		if err != nil {
			return nil, err
		}
		matches = append(matches, m...)
	}
	return matches, nil
}

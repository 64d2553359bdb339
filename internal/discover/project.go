package discover

import (
	"path/filepath"
	"strings"
)

// NormalizeProjectPath cleans path for project_path prefix comparisons:
// it expands a leading "~", resolves "." and "..", and strips any trailing
// separator so "/home/me/proj" and "/home/me/proj/" compare equal.
func NormalizeProjectPath(path string) string {
	expanded, err := expandHome(path)
	if err != nil {
		expanded = path
	}
	cleaned := filepath.Clean(expanded)
	return strings.TrimSuffix(cleaned, string(filepath.Separator))
}

// MatchesProjectPath reports whether a message's cwd falls under prefix,
// per the project_path filter's directory-prefix semantics: an exact match
// or any deeper path beneath it.
func MatchesProjectPath(cwd, prefix string) bool {
	if prefix == "" {
		return true
	}
	nc := NormalizeProjectPath(cwd)
	np := NormalizeProjectPath(prefix)
	if nc == np {
		return true
	}
	return strings.HasPrefix(nc, np+string(filepath.Separator))
}

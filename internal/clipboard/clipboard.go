// Package clipboard wraps the system clipboard for the Copy(kind) command.
package clipboard

import "github.com/atotto/clipboard"

// Copy writes text to the system clipboard. The caller turns a non-nil
// error into a transient "⚠ clipboard unavailable" banner rather than
// aborting.
func Copy(text string) error {
	return clipboard.WriteAll(text)
}

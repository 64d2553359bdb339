// Package search implements the parallel search engine over a corpus of
// discovered JSONL transcript files: per-file parsing and caching, query
// evaluation, metadata filtering, and deterministic global ordering.
package search

import "time"

// Role filters results to one message type.
type Role string

const (
	RoleAny       Role = ""
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleSummary   Role = "summary"
)

// Options configures a single Search call.
type Options struct {
	Role        Role
	SessionID   string
	ProjectPath string
	Before      *time.Time
	After       *time.Time
	MaxResults  int
	Verbose     bool
}

// SearchResult is one matched message with enough metadata for display and
// copy operations.
type SearchResult struct {
	UUID        string    `json:"uuid"`
	Timestamp   time.Time `json:"timestamp"`
	SessionID   string    `json:"session_id"`
	Role        string    `json:"role"`
	Text        string    `json:"text"`
	HasTools    bool      `json:"has_tools"`
	HasThinking bool      `json:"has_thinking"`
	MessageType string    `json:"message_type"`
	File        string    `json:"file"`
	CWD         string    `json:"cwd"`
	ProjectPath string    `json:"project_path"`
	Query       string    `json:"query"`
	RawJSON     string    `json:"raw_json,omitempty"`

	fileIndex int
	msgIndex  int
}

// Result is the full output of a Search call.
type Result struct {
	Results    []SearchResult
	Duration   time.Duration
	TotalCount int
}

// Summary is the aggregate portion of the external JSON output shape.
type Summary struct {
	DurationMS     int64 `json:"duration_ms"`
	TotalCount     int   `json:"total_count"`
	ReturnedCount  int   `json:"returned_count"`
	UniqueSessions int   `json:"unique_sessions"`
	UniqueFiles    int   `json:"unique_files"`
}

// FileInfo summarizes one discovered file's contribution to a result set.
type FileInfo struct {
	Path         string `json:"path"`
	MessageCount int    `json:"message_count"`
	SessionID    string `json:"session_id"`
}

// SessionInfo summarizes one session's contribution to a result set.
type SessionInfo struct {
	SessionID    string `json:"session_id"`
	MessageCount int    `json:"message_count"`
}

package search

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/ccsearch/ccsearch/internal/query"
)

func writeSession(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func mustParse(t *testing.T, q string) query.Node {
	t.Helper()
	tree, err := query.Parse(q)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", q, err)
	}
	return tree
}

// TestBooleanGrouping covers a single file with three user messages,
// queried with a grouped boolean expression.
func TestBooleanGrouping(t *testing.T) {
	dir := t.TempDir()
	content := `{"type":"user","uuid":"m1","timestamp":"2024-06-01T10:00:00Z","sessionId":"s1","message":{"role":"user","content":"error in login"}}
{"type":"user","uuid":"m2","timestamp":"2024-06-01T10:01:00Z","sessionId":"s1","message":{"role":"user","content":"warning about login"}}
{"type":"user","uuid":"m3","timestamp":"2024-06-01T10:02:00Z","sessionId":"s1","message":{"role":"user","content":"error NOT login"}}
`
	writeSession(t, filepath.Join(dir, "s1.jsonl"), content)

	e := New()
	tree := mustParse(t, "(error OR warning) AND login")
	result, err := e.Search(context.Background(), filepath.Join(dir, "*.jsonl"), "(error OR warning) AND login", tree, Options{})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(result.Results) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(result.Results))
	}

	tree2 := mustParse(t, "(error OR warning) AND login AND NOT /not/i")
	result2, err := e.Search(context.Background(), filepath.Join(dir, "*.jsonl"), "", tree2, Options{})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(result2.Results) != 2 {
		t.Fatalf("expected 2 matches excluding message 3, got %d", len(result2.Results))
	}
}

// TestRegexFlags covers case-sensitive vs case-insensitive regex matching.
func TestRegexFlags(t *testing.T) {
	dir := t.TempDir()
	content := `{"type":"user","uuid":"m1","timestamp":"2024-06-01T10:00:00Z","sessionId":"s1","message":{"role":"user","content":"Error: 42"}}
`
	writeSession(t, filepath.Join(dir, "s1.jsonl"), content)
	e := New()
	pattern := filepath.Join(dir, "*.jsonl")

	caseInsensitive := mustParse(t, "/^error:.*\\d+/i")
	r1, err := e.Search(context.Background(), pattern, "", caseInsensitive, Options{})
	if err != nil || len(r1.Results) != 1 {
		t.Fatalf("expected case-insensitive match, got %d results, err=%v", len(r1.Results), err)
	}

	caseSensitive := mustParse(t, "/^error:.*\\d+/")
	r2, err := e.Search(context.Background(), pattern, "", caseSensitive, Options{})
	if err != nil || len(r2.Results) != 0 {
		t.Fatalf("expected no case-sensitive match, got %d results, err=%v", len(r2.Results), err)
	}
}

// TestRoleCyclingEmptyQuery covers cycling the role filter with an empty
// query, over a mix of summary/system/user/assistant messages.
func TestRoleCyclingEmptyQuery(t *testing.T) {
	dir := t.TempDir()
	content := `{"type":"summary","summary":"a summary","leafUuid":"l1"}
{"type":"system","uuid":"sy1","timestamp":"2024-06-01T09:00:00Z","sessionId":"s1","content":"sys"}
{"type":"user","uuid":"u1","timestamp":"2024-06-01T10:00:00Z","sessionId":"s1","message":{"role":"user","content":"hi"}}
{"type":"assistant","uuid":"a1","timestamp":"2024-06-01T10:01:00Z","sessionId":"s1","message":{"role":"assistant","content":[{"type":"text","text":"hello"}]}}
`
	writeSession(t, filepath.Join(dir, "s1.jsonl"), content)
	e := New()
	pattern := filepath.Join(dir, "*.jsonl")

	roles := []Role{RoleAny, RoleUser, RoleAssistant, RoleSystem, RoleSummary}
	wantCounts := []int{4, 1, 1, 1, 1}
	literalEmpty := query.Literal{Text: ""}

	for i, role := range roles {
		r, err := e.Search(context.Background(), pattern, "", literalEmpty, Options{Role: role})
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(r.Results) != wantCounts[i] {
			t.Errorf("role %q: expected %d results, got %d", role, wantCounts[i], len(r.Results))
		}
	}
}

// TestSummaryTimestampFallback covers a summary message's effective
// timestamp falling back to the file's first non-summary timestamp.
func TestSummaryTimestampFallback(t *testing.T) {
	dir := t.TempDir()
	content := `{"type":"summary","summary":"a summary","leafUuid":"l1"}
{"type":"user","uuid":"u1","timestamp":"2024-06-01T10:00:00Z","sessionId":"s1","message":{"role":"user","content":"hi"}}
{"type":"user","uuid":"u2","timestamp":"2024-06-01T12:00:00Z","sessionId":"s1","message":{"role":"user","content":"bye"}}
`
	writeSession(t, filepath.Join(dir, "s1.jsonl"), content)
	e := New()
	tree := query.Literal{Text: ""}
	r, err := e.Search(context.Background(), filepath.Join(dir, "*.jsonl"), "", tree, Options{})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(r.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(r.Results))
	}

	var summaryResult *SearchResult
	for i := range r.Results {
		if r.Results[i].MessageType == "summary" {
			summaryResult = &r.Results[i]
		}
	}
	if summaryResult == nil {
		t.Fatal("expected a summary result")
	}
	want := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	if !summaryResult.Timestamp.Equal(want) {
		t.Errorf("expected summary timestamp %v, got %v", want, summaryResult.Timestamp)
	}

	// newest-first ordering
	for i := 1; i < len(r.Results); i++ {
		if r.Results[i].Timestamp.After(r.Results[i-1].Timestamp) {
			t.Errorf("results not sorted newest-first at index %d", i)
		}
	}
}

// TestCacheInvalidationOnMtimeChange covers a rewritten file with a bumped
// mtime invalidating the cached entry.
func TestCacheInvalidationOnMtimeChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s1.jsonl")
	content := `{"type":"user","uuid":"u1","timestamp":"2024-06-01T10:00:00Z","sessionId":"s1","message":{"role":"user","content":"keepme removeme"}}
{"type":"user","uuid":"u2","timestamp":"2024-06-01T10:01:00Z","sessionId":"s1","message":{"role":"user","content":"keepme only"}}
`
	writeSession(t, path, content)
	e := New()
	tree := mustParse(t, "removeme")
	pattern := filepath.Join(dir, "*.jsonl")

	r1, err := e.Search(context.Background(), pattern, "removeme", tree, Options{})
	if err != nil || len(r1.Results) != 1 {
		t.Fatalf("expected 1 match before edit, got %d, err=%v", len(r1.Results), err)
	}

	// bump mtime forward to guarantee a change is observed regardless of fs timestamp resolution
	newContent := `{"type":"user","uuid":"u2","timestamp":"2024-06-01T10:01:00Z","sessionId":"s1","message":{"role":"user","content":"keepme only"}}
`
	writeSession(t, path, newContent)
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	r2, err := e.Search(context.Background(), pattern, "removeme", tree, Options{})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(r2.Results) != 0 {
		t.Fatalf("expected 0 matches after removal, got %d", len(r2.Results))
	}
}

func TestMaxResultsCap(t *testing.T) {
	dir := t.TempDir()
	var content string
	for i := 0; i < 10; i++ {
		n := strconv.Itoa(i)
		content += `{"type":"user","uuid":"u` + n + `","timestamp":"2024-06-01T10:00:0` + n + `Z","sessionId":"s1","message":{"role":"user","content":"match"}}` + "\n"
	}
	writeSession(t, filepath.Join(dir, "s1.jsonl"), content)
	e := New()
	tree := mustParse(t, "match")
	r, err := e.Search(context.Background(), filepath.Join(dir, "*.jsonl"), "match", tree, Options{MaxResults: 5})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(r.Results) != 5 {
		t.Errorf("expected 5 results, got %d", len(r.Results))
	}
	if r.TotalCount != 10 {
		t.Errorf("expected total count 10, got %d", r.TotalCount)
	}
}

func TestEmptyDiscoverySetIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	e := New()
	tree := mustParse(t, "anything")
	r, err := e.Search(context.Background(), filepath.Join(dir, "*.jsonl"), "anything", tree, Options{})
	if err != nil {
		t.Fatalf("expected no error for empty discovery, got %v", err)
	}
	if r.TotalCount != 0 || len(r.Results) != 0 {
		t.Errorf("expected empty result set, got %+v", r)
	}
}

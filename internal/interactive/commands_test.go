package interactive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ccsearch/ccsearch/internal/search"
)

func TestExecuteSearchTagsResultWithID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s1.jsonl")
	content := `{"type":"user","uuid":"u1","timestamp":"2024-06-01T10:00:00Z","sessionId":"s1","message":{"role":"user","content":"hello world"}}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	deps := Deps{Engine: search.New()}
	cmd := ExecuteSearch(deps, filepath.Join(dir, "*.jsonl"), "hello", search.Options{}, 7)
	msg := cmd()

	completed, ok := msg.(SearchCompletedMsg)
	if !ok {
		t.Fatalf("expected SearchCompletedMsg, got %T", msg)
	}
	if completed.ID != 7 {
		t.Errorf("expected ID 7, got %d", completed.ID)
	}
	if completed.Err != nil {
		t.Fatalf("unexpected error: %v", completed.Err)
	}
	if len(completed.Result.Results) != 1 {
		t.Fatalf("expected 1 match, got %d", len(completed.Result.Results))
	}
}

func TestExecuteSearchReportsBadQuery(t *testing.T) {
	deps := Deps{Engine: search.New()}
	cmd := ExecuteSearch(deps, "*.jsonl", "(unclosed", search.Options{}, 1)
	msg := cmd()

	completed, ok := msg.(SearchCompletedMsg)
	if !ok {
		t.Fatalf("expected SearchCompletedMsg, got %T", msg)
	}
	if completed.Err == nil {
		t.Error("expected a parse error for an unclosed group")
	}
}

func TestLoadSessionParsesMessages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s1.jsonl")
	content := `{"type":"user","uuid":"u1","timestamp":"2024-06-01T10:00:00Z","sessionId":"s1","message":{"role":"user","content":"hi"}}
{"type":"user","uuid":"u2","timestamp":"2024-06-01T10:01:00Z","sessionId":"s1","message":{"role":"user","content":"bye"}}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := LoadSession(path, "s1")
	msg := cmd()
	loaded, ok := msg.(SessionLoadedMsg)
	if !ok {
		t.Fatalf("expected SessionLoadedMsg, got %T", msg)
	}
	if loaded.Err != nil {
		t.Fatalf("unexpected error: %v", loaded.Err)
	}
	if len(loaded.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(loaded.Messages))
	}
}

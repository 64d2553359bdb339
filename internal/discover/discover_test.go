package discover

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFilesRecursiveGlob(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "proj-a", "session1.jsonl"))
	writeFile(t, filepath.Join(root, "proj-b", "nested", "session2.jsonl"))
	writeFile(t, filepath.Join(root, "proj-a", "notes.txt"))

	pattern := filepath.Join(root, "**", "*.jsonl")
	got, err := Files(pattern)
	if err != nil {
		t.Fatalf("Files error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(got), got)
	}
	for _, f := range got {
		if filepath.Ext(f) != ".jsonl" {
			t.Errorf("unexpected match %q", f)
		}
	}
}

func TestFilesDeduplicatesAndSorts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.jsonl"))
	writeFile(t, filepath.Join(root, "a.jsonl"))

	got, err := Files(filepath.Join(root, "*.jsonl"))
	if err != nil {
		t.Fatalf("Files error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2, got %d", len(got))
	}
	if filepath.Base(got[0]) != "a.jsonl" || filepath.Base(got[1]) != "b.jsonl" {
		t.Errorf("expected sorted order, got %v", got)
	}
}

func TestFilesSkipsDirectoriesMatchingGlob(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "looks.jsonl"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "real.jsonl"))

	got, err := Files(filepath.Join(root, "*.jsonl"))
	if err != nil {
		t.Fatalf("Files error: %v", err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "real.jsonl" {
		t.Errorf("expected only real.jsonl, got %v", got)
	}
}

func TestMatchesProjectPath(t *testing.T) {
	tests := []struct {
		name   string
		cwd    string
		prefix string
		want   bool
	}{
		{"exact match", "/home/me/proj", "/home/me/proj", true},
		{"trailing slash on prefix", "/home/me/proj", "/home/me/proj/", true},
		{"deeper path under prefix", "/home/me/proj/sub", "/home/me/proj", true},
		{"sibling path not matched", "/home/me/project-other", "/home/me/proj", false},
		{"unrelated path", "/var/foo", "/home/me/proj", false},
		{"empty prefix matches everything", "/anything", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesProjectPath(tt.cwd, tt.prefix); got != tt.want {
				t.Errorf("MatchesProjectPath(%q, %q) = %v, want %v", tt.cwd, tt.prefix, got, tt.want)
			}
		})
	}
}

package interactive

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ccsearch/ccsearch/internal/search"
)

func TestIDGatingDropsStaleCompletion(t *testing.T) {
	m := New("*.jsonl", true, Deps{}, nil)

	m, cmd := Update(m, QueryChangedMsg{Text: "a"})
	if cmd == nil {
		t.Fatal("expected a debounce command")
	}
	idA := m.Search.CurrentSearchID
	if idA != 1 {
		t.Fatalf("expected debounce id 1 after first keystroke, got %d", idA)
	}

	m, cmd = Update(m, QueryChangedMsg{Text: "ab"})
	if cmd == nil {
		t.Fatal("expected a debounce command")
	}
	idAB := m.Search.CurrentSearchID
	if idAB != 2 {
		t.Fatalf("expected debounce id 2 after second keystroke, got %d", idAB)
	}

	// "a"'s debounce fires late; it is stale against the current id and
	// must not dispatch a search or change state.
	before := m.Search.CurrentSearchID
	m, cmd = Update(m, DebounceFireMsg{ID: idA, Query: "a"})
	if cmd != nil {
		t.Error("stale debounce firing must not dispatch a command")
	}
	if m.Search.CurrentSearchID != before {
		t.Error("stale debounce firing must not change CurrentSearchID")
	}

	// "ab"'s debounce fires and matches the current id: a search is
	// requested, allocating a fresh search id.
	m, cmd = Update(m, DebounceFireMsg{ID: idAB, Query: "ab"})
	if cmd == nil {
		t.Fatal("expected ExecuteSearch command on matching debounce")
	}
	searchID := m.Search.CurrentSearchID
	if searchID <= idAB {
		t.Fatalf("expected a fresh search id beyond %d, got %d", idAB, searchID)
	}
	if m.Search.Query != "ab" {
		t.Errorf("expected query %q, got %q", "ab", m.Search.Query)
	}

	// A completion for the "a" search (an older id) must be dropped.
	staleResult := search.Result{Results: []search.SearchResult{{UUID: "stale"}}}
	m, cmd = Update(m, SearchCompletedMsg{ID: idA, Result: staleResult})
	if cmd != nil {
		t.Error("stale completion should not emit a command")
	}
	if len(m.Search.Results) != 0 {
		t.Error("stale completion must not populate results")
	}

	// The completion for "ab" (the current id) is applied.
	freshResult := search.Result{Results: []search.SearchResult{{UUID: "fresh"}}, TotalCount: 1}
	m, _ = Update(m, SearchCompletedMsg{ID: searchID, Result: freshResult})
	if len(m.Search.Results) != 1 || m.Search.Results[0].UUID != "fresh" {
		t.Errorf("expected fresh results to be applied, got %+v", m.Search.Results)
	}
}

func TestModeStackInvariants(t *testing.T) {
	m := New("*.jsonl", true, Deps{}, nil)
	if m.CurrentMode() != ModeSearch {
		t.Fatalf("expected initial mode Search, got %v", m.CurrentMode())
	}

	// PopScreen from Search alone is a no-op.
	popped, _ := Update(m, PopScreenMsg{})
	if popped.CurrentMode() != ModeSearch {
		t.Error("popping with only Search on the stack should be a no-op")
	}
	if len(popped.ModeStack) != 1 {
		t.Error("mode stack should still have exactly one entry")
	}

	pushed := m.Push(ModeSessionViewer)
	if pushed.CurrentMode() != ModeSessionViewer {
		t.Fatalf("expected SessionViewer after push, got %v", pushed.CurrentMode())
	}

	back := pushed.Pop()
	if back.CurrentMode() != ModeSearch {
		t.Errorf("pop(push(m, s)) should return to the original mode, got %v", back.CurrentMode())
	}
	if len(back.ModeStack) != len(m.ModeStack) {
		t.Error("pop(push(m, s)) should restore the original stack depth")
	}
}

func TestRequestQuitRequiresSecondPressWithinGrace(t *testing.T) {
	m := New("*.jsonl", true, Deps{}, nil)
	t0 := time.Now()

	m, cmd := Update(m, RequestQuitMsg{Now: t0})
	if cmd != nil {
		t.Error("first RequestQuit should not quit immediately")
	}
	if m.Quitting {
		t.Error("first RequestQuit should not set Quitting")
	}
	if m.UI.Message == "" {
		t.Error("first RequestQuit should set a transient banner")
	}

	m, cmd = Update(m, RequestQuitMsg{Now: t0.Add(2 * time.Second)})
	if m.Quitting {
		t.Error("a second RequestQuit outside the grace window should not quit")
	}
	_ = cmd

	m, cmd = Update(m, RequestQuitMsg{Now: t0.Add(2*time.Second + 200*time.Millisecond)})
	if cmd == nil {
		t.Fatal("a second RequestQuit within the grace window should emit a Quit command")
	}
	if !m.Quitting {
		t.Error("expected Quitting to be set")
	}
	msg := cmd()
	if _, ok := msg.(QuitMsg); !ok {
		t.Errorf("expected QuitMsg from the quit command, got %T", msg)
	}
}

func TestNavigateClampsSelection(t *testing.T) {
	m := New("*.jsonl", true, Deps{}, nil)
	m.Search.Results = make([]search.SearchResult, 3)

	m, _ = Update(m, NavigateMsg{Direction: NavUp})
	if m.Search.SelectedIndex != 0 {
		t.Errorf("expected selection clamped to 0, got %d", m.Search.SelectedIndex)
	}

	m, _ = Update(m, NavigateMsg{Direction: NavEnd})
	if m.Search.SelectedIndex != 2 {
		t.Errorf("expected End to select the last result, got %d", m.Search.SelectedIndex)
	}

	m, _ = Update(m, NavigateMsg{Direction: NavDown})
	if m.Search.SelectedIndex != 2 {
		t.Errorf("expected Down past the end to clamp at 2, got %d", m.Search.SelectedIndex)
	}
}

var _ tea.Msg = QuitMsg{}

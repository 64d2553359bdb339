package interactive

import (
	"bufio"
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ccsearch/ccsearch/internal/clipboard"
	"github.com/ccsearch/ccsearch/internal/message"
	"github.com/ccsearch/ccsearch/internal/query"
	"github.com/ccsearch/ccsearch/internal/search"
)

const searchDebounce = 300 * time.Millisecond

// ScheduleSearch returns a Cmd that fires a DebounceFireMsg after the
// debounce window elapses. id must be compared against the model's
// CurrentSearchID-equivalent debounce version when it arrives; a stale
// firing (superseded by further typing) is dropped by the caller.
func ScheduleSearch(q string, id int) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return DebounceFireMsg{ID: id, Query: q}
	})
}

// ExecuteSearch parses q and runs it against the corpus, tagging the
// result with id so the caller can discard it if stale.
func ExecuteSearch(deps Deps, pattern, q string, opts search.Options, id int) tea.Cmd {
	return func() tea.Msg {
		tree, err := query.Parse(q)
		if err != nil {
			return SearchCompletedMsg{ID: id, Err: err}
		}
		if err := query.Validate(tree); err != nil {
			return SearchCompletedMsg{ID: id, Err: err}
		}
		result, err := deps.Engine.Search(context.Background(), pattern, q, tree, opts)
		return SearchCompletedMsg{ID: id, Result: result, Err: err}
	}
}

// LoadSession reads a session transcript's raw lines and parses them for
// the session viewer.
func LoadSession(path, sessionID string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return SessionLoadedMsg{SessionID: sessionID, FilePath: path, Err: err}
		}
		defer f.Close()

		var rawLines []string
		var messages []message.Message
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			rawLines = append(rawLines, line)
			msg, ok := message.Parse([]byte(line))
			if !ok {
				messages = append(messages, message.Message{})
				continue
			}
			messages = append(messages, msg)
		}
		if err := scanner.Err(); err != nil {
			return SessionLoadedMsg{SessionID: sessionID, FilePath: path, Err: err}
		}
		return SessionLoadedMsg{SessionID: sessionID, FilePath: path, Messages: messages, RawLines: rawLines}
	}
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return CopyResultMsg{Err: clipboard.Copy(text)}
	}
}

// WatchCorpus listens on a watcher's change channel and turns the next
// event into a CorpusChangedMsg. The driver re-issues this Cmd after
// each firing to keep listening.
func WatchCorpus(w *search.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.Events(); !ok {
			return nil
		}
		return CorpusChangedMsg{}
	}
}

// quitGrace is how long a second RequestQuit must follow the first within
// to actually terminate the program.
const quitGrace = 1 * time.Second

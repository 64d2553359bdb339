package interactive

import (
	"time"

	"github.com/ccsearch/ccsearch/internal/message"
	"github.com/ccsearch/ccsearch/internal/search"
)

// NavDirection enumerates the cursor movements Navigate understands.
type NavDirection int

const (
	NavUp NavDirection = iota
	NavDown
	NavHome
	NavEnd
	NavPageUp
	NavPageDown
	NavHalfPageUp
	NavHalfPageDown
)

// CopyKind enumerates what Copy sends to the clipboard.
type CopyKind int

const (
	CopyContent CopyKind = iota
	CopyJSON
	CopySessionID
	CopyFilePath
	CopyProjectPath
)

// QueryChangedMsg is emitted on every keystroke in the search box.
type QueryChangedMsg struct{ Text string }

// DebounceFireMsg arrives when a ScheduleSearch timer elapses. ID must
// match the current debounce version or the firing is stale and ignored.
type DebounceFireMsg struct {
	ID    int
	Query string
}

// SearchRequestedMsg asks the driver to allocate a new search id and
// dispatch ExecuteSearch.
type SearchRequestedMsg struct{}

// SearchCompletedMsg carries a finished search. Only applied if ID equals
// the model's CurrentSearchID at the time it arrives.
type SearchCompletedMsg struct {
	ID     int
	Result search.Result
	Err    error
}

// NavigateMsg moves the cursor in whichever list is active.
type NavigateMsg struct{ Direction NavDirection }

// EnterMessageDetailMsg pushes ModeMessageDetail for the selected result.
type EnterMessageDetailMsg struct{}

// EnterSessionViewerMsg pushes ModeSessionViewer and triggers LoadSession
// for the selected result's session.
type EnterSessionViewerMsg struct{}

// SessionLoadedMsg carries a loaded session transcript.
type SessionLoadedMsg struct {
	SessionID string
	FilePath  string
	Messages  []message.Message
	RawLines  []string
	Err       error
}

// PopScreenMsg leaves the current mode.
type PopScreenMsg struct{}

// CycleRoleFilterMsg advances the role filter and re-requests a search.
type CycleRoleFilterMsg struct{}

// ToggleTruncationMsg flips ui.truncation_enabled.
type ToggleTruncationMsg struct{}

// CopyMsg asks for a value of the given kind to be copied.
type CopyMsg struct{ Kind CopyKind }

// CopyResultMsg carries the outcome of a clipboard write.
type CopyResultMsg struct{ Err error }

// RequestQuitMsg is emitted on the quit key (ctrl+c); a second one within a second
// of the first actually quits.
type RequestQuitMsg struct{ Now time.Time }

// QuitMsg terminates the program.
type QuitMsg struct{}

// CorpusChangedMsg arrives from the background fsnotify watcher.
type CorpusChangedMsg struct{}

// ReloadMsg clears the cache and re-runs the current search.
type ReloadMsg struct{}

// LoadMoreMsg raises the search page size and re-dispatches.
type LoadMoreMsg struct{}

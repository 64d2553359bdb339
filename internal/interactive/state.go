// Package interactive implements the MVU (Model-View-Update) state machine
// for ccsearch's terminal UI: a flat ranked result list with drill-down
// into a session transcript viewer.
package interactive

import (
	"time"

	"github.com/ccsearch/ccsearch/internal/message"
	"github.com/ccsearch/ccsearch/internal/search"
)

// Deps bundles the interactive driver's external collaborators so that
// commands.go's Cmd constructors never need globals.
type Deps struct {
	Engine  *search.Engine
	Watcher *search.Watcher
}

func (d Deps) corpusWatcher() *search.Watcher {
	return d.Watcher
}

// Mode is one screen in the navigation stack.
type Mode int

const (
	ModeSearch Mode = iota
	ModeSessionList
	ModeMessageDetail
	ModeSessionViewer
	ModeHelp
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeSessionList:
		return "sessions"
	case ModeMessageDetail:
		return "detail"
	case ModeSessionViewer:
		return "viewer"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// SessionOrder controls message ordering within the session viewer.
type SessionOrder int

const (
	OrderDesc SessionOrder = iota
	OrderAsc
	OrderFileOrder
)

// SearchState holds everything about the live search screen.
type SearchState struct {
	Query               string
	PendingQuery        string
	RoleFilter          search.Role
	Results             []search.SearchResult
	SelectedIndex       int
	ScrollOffset        int
	IsSearching         bool
	CurrentSearchID     int
	LastQueryChangeTime time.Time
	MaxResults          int
	TotalCount          int
}

const (
	initialPageSize = 100
	pageIncrement    = 100
	loadMoreMargin   = 10
)

// ClampSelected keeps SelectedIndex within [0, len(Results)).
func (s *SearchState) ClampSelected() {
	if len(s.Results) == 0 {
		s.SelectedIndex = 0
		s.ScrollOffset = 0
		return
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	if s.SelectedIndex >= len(s.Results) {
		s.SelectedIndex = len(s.Results) - 1
	}
	if s.ScrollOffset > s.SelectedIndex {
		s.ScrollOffset = s.SelectedIndex
	}
}

// EnsureVisible adjusts ScrollOffset so SelectedIndex stays within a
// viewport of the given height.
func (s *SearchState) EnsureVisible(viewportHeight int) {
	if viewportHeight <= 0 {
		return
	}
	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	}
	if s.SelectedIndex >= s.ScrollOffset+viewportHeight {
		s.ScrollOffset = s.SelectedIndex - viewportHeight + 1
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

// NeedsMore reports whether the selection has come within loadMoreMargin
// of the loaded tail and more results may exist beyond MaxResults.
func (s *SearchState) NeedsMore() bool {
	if s.MaxResults == 0 {
		return false
	}
	if s.TotalCount <= len(s.Results) {
		return false
	}
	return s.SelectedIndex >= len(s.Results)-loadMoreMargin
}

// SessionState holds the session transcript viewer's navigation state.
type SessionState struct {
	SessionID       string
	FilePath        string
	Messages        []message.Message
	RawLines        []string
	FilteredIndices []int
	SelectedIndex   int
	ScrollOffset    int
	Query           string
	Order           SessionOrder
	RoleFilter      search.Role
	Loading         bool
	LoadErr         string
}

// ClampSelected keeps SelectedIndex within the filtered index list.
func (s *SessionState) ClampSelected() {
	if len(s.FilteredIndices) == 0 {
		s.SelectedIndex = 0
		s.ScrollOffset = 0
		return
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	if s.SelectedIndex >= len(s.FilteredIndices) {
		s.SelectedIndex = len(s.FilteredIndices) - 1
	}
	if s.ScrollOffset > s.SelectedIndex {
		s.ScrollOffset = s.SelectedIndex
	}
}

// EnsureVisible adjusts ScrollOffset to keep SelectedIndex in view.
func (s *SessionState) EnsureVisible(viewportHeight int) {
	if viewportHeight <= 0 {
		return
	}
	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	}
	if s.SelectedIndex >= s.ScrollOffset+viewportHeight {
		s.ScrollOffset = s.SelectedIndex - viewportHeight + 1
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

// CurrentMessageIndex returns the index into Messages that the current
// selection refers to, or -1 if there is nothing selected.
func (s *SessionState) CurrentMessageIndex() int {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.FilteredIndices) {
		return -1
	}
	return s.FilteredIndices[s.SelectedIndex]
}

// UIState holds cross-cutting display state.
type UIState struct {
	TruncationEnabled  bool
	DetailScrollOffset int
	SelectedResult     *search.SearchResult
	Message            string
	MessageExpiry      time.Time
}

// Model is the full application state.
type Model struct {
	ModeStack []Mode
	Search    SearchState
	Session   SessionState
	UI        UIState

	Pattern     string
	ProjectPath string

	Width, Height int

	LastQuitRequest time.Time
	Quitting        bool

	Deps   Deps
	KeyMap KeyMap
}

// New builds the initial Model: mode stack bottomed at Search, truncation
// set from truncationByDefault, first page size set to the interactive
// default, and
// keybindings are the built-in defaults with keymapOverrides (from the
// user's config file) layered on top.
func New(pattern string, truncationByDefault bool, deps Deps, keymapOverrides map[string]string) Model {
	km := DefaultKeyMap()
	km.ApplyOverrides(keymapOverrides)
	return Model{
		ModeStack: []Mode{ModeSearch},
		Search: SearchState{
			MaxResults: initialPageSize,
		},
		UI: UIState{
			TruncationEnabled: truncationByDefault,
		},
		Pattern: pattern,
		Deps:    deps,
		KeyMap:  km,
	}
}

// CurrentMode returns the top of the mode stack.
func (m Model) CurrentMode() Mode {
	return m.ModeStack[len(m.ModeStack)-1]
}

// Push enters a new mode, preserving the stack underneath it.
func (m Model) Push(mode Mode) Model {
	m.ModeStack = append(append([]Mode{}, m.ModeStack...), mode)
	return m
}

// Pop leaves the current mode, unless Search is the only entry left on the
// stack, in which case it is a no-op.
func (m Model) Pop() Model {
	if len(m.ModeStack) <= 1 {
		return m
	}
	m.ModeStack = m.ModeStack[:len(m.ModeStack)-1]
	return m
}

// nextRole cycles the role filter in the documented order.
func nextRole(r search.Role) search.Role {
	order := []search.Role{search.RoleAny, search.RoleUser, search.RoleAssistant, search.RoleSystem, search.RoleSummary}
	for i, v := range order {
		if v == r {
			return order[(i+1)%len(order)]
		}
	}
	return search.RoleAny
}

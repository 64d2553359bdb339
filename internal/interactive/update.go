package interactive

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ccsearch/ccsearch/internal/message"
	"github.com/ccsearch/ccsearch/internal/search"
)

// Update is the pure state transition function: (state, message) ->
// (state', optional command). Side effects (file I/O, clipboard, timers)
// live in the returned tea.Cmd, with one exception: ReloadMsg clears the
// engine's message cache here, before the new search is dispatched.
func Update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	case QueryChangedMsg:
		m.Search.PendingQuery = msg.Text
		m.Search.LastQueryChangeTime = time.Now()
		m.Search.CurrentSearchID++
		id := m.Search.CurrentSearchID
		return m, ScheduleSearch(msg.Text, id)

	case DebounceFireMsg:
		if msg.ID != m.Search.CurrentSearchID {
			return m, nil
		}
		return requestSearch(m, msg.Query)

	case SearchRequestedMsg:
		return requestSearch(m, m.Search.PendingQuery)

	case SearchCompletedMsg:
		if msg.ID != m.Search.CurrentSearchID {
			return m, nil
		}
		m.Search.IsSearching = false
		if msg.Err != nil {
			m.UI.Message = msg.Err.Error()
			m.UI.MessageExpiry = time.Now().Add(5 * time.Second)
			return m, nil
		}
		m.Search.Results = msg.Result.Results
		m.Search.TotalCount = msg.Result.TotalCount
		m.Search.ClampSelected()
		return m, nil

	case LoadMoreMsg:
		if !m.Search.NeedsMore() {
			return m, nil
		}
		m.Search.MaxResults += pageIncrement
		return requestSearch(m, m.Search.Query)

	case NavigateMsg:
		return navigate(m, msg.Direction)

	case EnterMessageDetailMsg:
		if m.CurrentMode() != ModeSearch || len(m.Search.Results) == 0 {
			return m, nil
		}
		r := m.Search.Results[m.Search.SelectedIndex]
		m.UI.SelectedResult = &r
		return m.Push(ModeMessageDetail), nil

	case EnterSessionViewerMsg:
		if m.CurrentMode() != ModeSearch || len(m.Search.Results) == 0 {
			return m, nil
		}
		r := m.Search.Results[m.Search.SelectedIndex]
		m.Session = SessionState{
			SessionID: r.SessionID,
			FilePath:  r.File,
			Loading:   true,
		}
		return m.Push(ModeSessionViewer), LoadSession(r.File, r.SessionID)

	case SessionLoadedMsg:
		m.Session.Loading = false
		if msg.Err != nil {
			m.Session.LoadErr = msg.Err.Error()
			return m, nil
		}
		m.Session.Messages = msg.Messages
		m.Session.RawLines = msg.RawLines
		recomputeFilteredIndices(&m.Session)
		return m, nil

	case PopScreenMsg:
		return m.Pop(), nil

	case CycleRoleFilterMsg:
		m.Search.RoleFilter = nextRole(m.Search.RoleFilter)
		return requestSearch(m, m.Search.Query)

	case ToggleTruncationMsg:
		m.UI.TruncationEnabled = !m.UI.TruncationEnabled
		return m, nil

	case CopyMsg:
		text, ok := copyText(m, msg.Kind)
		if !ok {
			return m, nil
		}
		return m, CopyToClipboard(text)

	case CopyResultMsg:
		if msg.Err != nil {
			m.UI.Message = "⚠ clipboard unavailable"
		} else {
			m.UI.Message = "copied"
		}
		m.UI.MessageExpiry = time.Now().Add(2 * time.Second)
		return m, nil

	case RequestQuitMsg:
		if !m.LastQuitRequest.IsZero() && msg.Now.Sub(m.LastQuitRequest) <= quitGrace {
			m.Quitting = true
			return m, func() tea.Msg { return QuitMsg{} }
		}
		m.LastQuitRequest = msg.Now
		m.UI.Message = "Press Ctrl+C again to exit"
		m.UI.MessageExpiry = msg.Now.Add(quitGrace)
		return m, nil

	case CorpusChangedMsg:
		m.UI.Message = "files changed — press r to reload"
		m.UI.MessageExpiry = time.Now().Add(10 * time.Second)
		return m, WatchCorpus(m.Deps.corpusWatcher())

	case ReloadMsg:
		if m.Deps.Engine != nil {
			m.Deps.Engine.Reload()
		}
		return requestSearch(m, m.Search.Query)
	}

	return m, nil
}

// requestSearch allocates a new search id and dispatches ExecuteSearch.
func requestSearch(m Model, q string) (Model, tea.Cmd) {
	m.Search.Query = q
	m.Search.PendingQuery = q
	m.Search.IsSearching = true
	m.Search.CurrentSearchID++
	id := m.Search.CurrentSearchID

	opts := search.Options{
		Role:        m.Search.RoleFilter,
		ProjectPath: m.ProjectPath,
		MaxResults:  m.Search.MaxResults,
	}
	return m, ExecuteSearch(m.Deps, m.Pattern, q, opts, id)
}

func navigate(m Model, dir NavDirection) (Model, tea.Cmd) {
	switch m.CurrentMode() {
	case ModeSearch:
		navigateSearch(&m.Search, dir)
		if m.Search.NeedsMore() {
			nm, cmd := Update(m, LoadMoreMsg{})
			return nm, cmd
		}
		return m, nil
	case ModeSessionViewer:
		navigateSession(&m.Session, dir)
		return m, nil
	default:
		return m, nil
	}
}

const pageStep = 10

func navigateSearch(s *SearchState, dir NavDirection) {
	switch dir {
	case NavUp:
		s.SelectedIndex--
	case NavDown:
		s.SelectedIndex++
	case NavHome:
		s.SelectedIndex = 0
	case NavEnd:
		s.SelectedIndex = len(s.Results) - 1
	case NavPageDown:
		s.SelectedIndex += pageStep
	case NavPageUp:
		s.SelectedIndex -= pageStep
	case NavHalfPageDown:
		s.SelectedIndex += pageStep / 2
	case NavHalfPageUp:
		s.SelectedIndex -= pageStep / 2
	}
	s.ClampSelected()
}

func navigateSession(s *SessionState, dir NavDirection) {
	switch dir {
	case NavUp:
		s.SelectedIndex--
	case NavDown:
		s.SelectedIndex++
	case NavHome:
		s.SelectedIndex = 0
	case NavEnd:
		s.SelectedIndex = len(s.FilteredIndices) - 1
	case NavPageDown:
		s.SelectedIndex += pageStep
	case NavPageUp:
		s.SelectedIndex -= pageStep
	case NavHalfPageDown:
		s.SelectedIndex += pageStep / 2
	case NavHalfPageUp:
		s.SelectedIndex -= pageStep / 2
	}
	s.ClampSelected()
}

// recomputeFilteredIndices rebuilds FilteredIndices from Session.Query and
// Session.RoleFilter, honoring Order.
func recomputeFilteredIndices(s *SessionState) {
	s.FilteredIndices = s.FilteredIndices[:0]
	for i := range s.Messages {
		msg := &s.Messages[i]
		if s.RoleFilter != search.RoleAny && string(msg.Type) != string(s.RoleFilter) {
			continue
		}
		if s.Query != "" {
			text := message.SearchableText(msg)
			if !strings.Contains(strings.ToLower(text), strings.ToLower(s.Query)) {
				continue
			}
		}
		s.FilteredIndices = append(s.FilteredIndices, i)
	}
	if s.Order == OrderDesc {
		for l, r := 0, len(s.FilteredIndices)-1; l < r; l, r = l+1, r-1 {
			s.FilteredIndices[l], s.FilteredIndices[r] = s.FilteredIndices[r], s.FilteredIndices[l]
		}
	}
	s.ClampSelected()
}

func copyText(m Model, kind CopyKind) (string, bool) {
	switch kind {
	case CopyContent, CopyJSON, CopySessionID, CopyFilePath, CopyProjectPath:
	default:
		return "", false
	}

	var r *search.SearchResult
	if m.UI.SelectedResult != nil {
		r = m.UI.SelectedResult
	} else if len(m.Search.Results) > 0 && m.Search.SelectedIndex < len(m.Search.Results) {
		r = &m.Search.Results[m.Search.SelectedIndex]
	}
	if r == nil {
		return "", false
	}

	switch kind {
	case CopyContent:
		return r.Text, true
	case CopyJSON:
		return r.RawJSON, r.RawJSON != ""
	case CopySessionID:
		return r.SessionID, true
	case CopyFilePath:
		return r.File, true
	case CopyProjectPath:
		return r.ProjectPath, true
	}
	return "", false
}

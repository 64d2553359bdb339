package interactive

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Program wraps Model in a bubbletea tea.Model, translating raw terminal
// events into the semantic messages Update understands.
type Program struct {
	model Model
}

// NewProgram builds a bubbletea program around an interactive Model.
func NewProgram(m Model) *tea.Program {
	return tea.NewProgram(Program{model: m}, tea.WithAltScreen())
}

func (p Program) Init() tea.Cmd {
	var cmds []tea.Cmd
	if w := p.model.Deps.Watcher; w != nil {
		if cmd := WatchCorpus(w); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (p Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.model.Width = msg.Width
		p.model.Height = msg.Height
		return p, nil

	case tea.KeyMsg:
		semantic, handled := p.translateKey(msg)
		if !handled {
			return p, nil
		}
		if semantic == nil {
			return p, nil
		}
		m, cmd := Update(p.model, semantic)
		p.model = m
		return p, cmd

	case QuitMsg:
		return p, tea.Quit

	default:
		m, cmd := Update(p.model, msg)
		p.model = m
		return p, cmd
	}
}

func (p Program) View() string {
	return View(p.model)
}

// translateKey maps a raw key event to a semantic Msg given the current
// mode. The bool return is false when the key has no meaning in the
// current mode and should be ignored outright.
func (p *Program) translateKey(msg tea.KeyMsg) (tea.Msg, bool) {
	km := p.model.KeyMap
	if key.Matches(msg, km.Quit) {
		return RequestQuitMsg{Now: time.Now()}, true
	}

	switch p.model.CurrentMode() {
	case ModeSearch:
		return p.translateSearchKey(msg)
	case ModeSessionViewer:
		return translateListKey(km, msg)
	case ModeMessageDetail:
		return translateDetailKey(km, msg)
	case ModeHelp:
		return PopScreenMsg{}, true
	}
	return nil, false
}

func (p *Program) translateSearchKey(msg tea.KeyMsg) (tea.Msg, bool) {
	km := p.model.KeyMap
	switch {
	case key.Matches(msg, km.Back):
		return PopScreenMsg{}, true
	case key.Matches(msg, km.EnterDetail):
		return EnterMessageDetailMsg{}, true
	case key.Matches(msg, km.EnterSession):
		return EnterSessionViewerMsg{}, true
	case key.Matches(msg, km.CycleRole):
		return CycleRoleFilterMsg{}, true
	case key.Matches(msg, km.ToggleTruncation):
		return ToggleTruncationMsg{}, true
	case msg.Type == tea.KeyCtrlY:
		return CopyMsg{Kind: CopyContent}, true
	case key.Matches(msg, km.Up):
		return NavigateMsg{Direction: NavUp}, true
	case key.Matches(msg, km.Down):
		return NavigateMsg{Direction: NavDown}, true
	case key.Matches(msg, km.Home):
		return NavigateMsg{Direction: NavHome}, true
	case key.Matches(msg, km.End):
		return NavigateMsg{Direction: NavEnd}, true
	case key.Matches(msg, km.PageUp):
		return NavigateMsg{Direction: NavPageUp}, true
	case key.Matches(msg, km.PageDown):
		return NavigateMsg{Direction: NavPageDown}, true
	case key.Matches(msg, km.HalfPageUp):
		return NavigateMsg{Direction: NavHalfPageUp}, true
	case key.Matches(msg, km.HalfPageDown):
		return NavigateMsg{Direction: NavHalfPageDown}, true
	case key.Matches(msg, km.Backspace):
		text := p.model.Search.PendingQuery
		if len(text) == 0 {
			return nil, true
		}
		runes := []rune(text)
		return QueryChangedMsg{Text: string(runes[:len(runes)-1])}, true
	case msg.Type == tea.KeyRunes:
		if p.model.Search.PendingQuery == "" && key.Matches(msg, km.Reload) {
			return ReloadMsg{}, true
		}
		if p.model.Search.PendingQuery == "" && key.Matches(msg, km.Help) {
			p.model = p.model.Push(ModeHelp)
			return nil, true
		}
		text := p.model.Search.PendingQuery + string(msg.Runes)
		return QueryChangedMsg{Text: text}, true
	}
	return nil, false
}

func translateListKey(km KeyMap, msg tea.KeyMsg) (tea.Msg, bool) {
	switch {
	case key.Matches(msg, km.Back):
		return PopScreenMsg{}, true
	case key.Matches(msg, km.Up):
		return NavigateMsg{Direction: NavUp}, true
	case key.Matches(msg, km.Down):
		return NavigateMsg{Direction: NavDown}, true
	case key.Matches(msg, km.Home):
		return NavigateMsg{Direction: NavHome}, true
	case key.Matches(msg, km.End):
		return NavigateMsg{Direction: NavEnd}, true
	case key.Matches(msg, km.PageUp):
		return NavigateMsg{Direction: NavPageUp}, true
	case key.Matches(msg, km.PageDown):
		return NavigateMsg{Direction: NavPageDown}, true
	case msg.Type == tea.KeyCtrlY:
		return CopyMsg{Kind: CopyContent}, true
	}
	return nil, false
}

func translateDetailKey(km KeyMap, msg tea.KeyMsg) (tea.Msg, bool) {
	switch {
	case key.Matches(msg, km.Back):
		return PopScreenMsg{}, true
	case key.Matches(msg, km.ToggleTruncation):
		return ToggleTruncationMsg{}, true
	case key.Matches(msg, km.CopyContent):
		return CopyMsg{Kind: CopyContent}, true
	case key.Matches(msg, km.CopyJSON):
		return CopyMsg{Kind: CopyJSON}, true
	}
	return nil, false
}

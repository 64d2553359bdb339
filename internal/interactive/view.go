package interactive

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ccsearch/ccsearch/internal/message"
	"github.com/ccsearch/ccsearch/internal/render"
	"github.com/ccsearch/ccsearch/internal/search"
)

// mdRenderer and jsonHL are package-level singletons: both cache
// terminal-capability-dependent state (glamour's word-wrap width, chroma's
// lexer/formatter/style) that is wasteful to reconstruct every frame.
var (
	mdRenderer = &render.MarkdownRenderer{}
	jsonHL     = render.NewJSONHighlighter(true)
)

// View renders the current mode to a string. Dispatches on the top of the
// mode stack; lower stack entries are not rendered underneath (no
// translucent layering, unlike a modal overlay).
func View(m Model) string {
	if m.Quitting {
		return ""
	}

	var body string
	switch m.CurrentMode() {
	case ModeSearch:
		body = viewSearch(m)
	case ModeSessionViewer:
		body = viewSessionViewer(m)
	case ModeMessageDetail:
		body = viewMessageDetail(m)
	case ModeHelp:
		body = viewHelp(m)
	default:
		body = viewSearch(m)
	}

	if m.UI.Message != "" && time.Now().Before(m.UI.MessageExpiry) {
		body += "\n" + styleBanner.Render(m.UI.Message)
	}
	return body
}

func viewSearch(m Model) string {
	var b strings.Builder

	b.WriteString(styleMuted.Render("Search: "))
	query := m.Search.PendingQuery
	if m.Search.IsSearching {
		query += " " + styleSubtle.Render("(searching…)")
	}
	b.WriteString(query)
	b.WriteString("\n")

	roleLabel := string(m.Search.RoleFilter)
	if roleLabel == "" {
		roleLabel = "any"
	}
	b.WriteString(styleSubtle.Render(fmt.Sprintf("role: %s   %d results", roleLabel, m.Search.TotalCount)))
	b.WriteString("\n\n")

	viewportHeight := m.Height - 6
	if viewportHeight < 1 {
		viewportHeight = 10
	}
	m.Search.EnsureVisible(viewportHeight)

	if len(m.Search.Results) == 0 {
		if m.Search.PendingQuery == "" {
			b.WriteString(styleMuted.Render("Type to search."))
		} else {
			b.WriteString(styleMuted.Render("No matches."))
		}
		b.WriteString("\n")
	} else {
		end := m.Search.ScrollOffset + viewportHeight
		if end > len(m.Search.Results) {
			end = len(m.Search.Results)
		}
		for i := m.Search.ScrollOffset; i < end; i++ {
			selected := i == m.Search.SelectedIndex
			b.WriteString(renderResultLine(m.Search.Results[i], m.Search.Query, selected, m.Width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styleHelp.Render("[↑↓ nav] [enter detail] [→ session] [tab role] [ctrl+y copy] [? help] [ctrl+c quit]"))
	return b.String()
}

func renderResultLine(r search.SearchResult, q string, selected bool, width int) string {
	ts := r.Timestamp.Local().Format("2006-01-02 15:04")
	role := r.Role
	preview := strings.ReplaceAll(strings.TrimSpace(r.Text), "\n", " ")

	prefixWidth := len(ts) + len(role) + 4
	previewWidth := width - prefixWidth
	if previewWidth < 10 {
		previewWidth = 10
	}
	if runes := []rune(preview); len(runes) > previewWidth {
		preview = string(runes[:previewWidth-1]) + "…"
	}

	line := fmt.Sprintf("%s [%s] %s", ts, role, preview)
	if selected {
		return styleSelected.Render(padTo(line, width))
	}

	highlighted := fmt.Sprintf("%s [%s] %s",
		styleSubtle.Render(ts), styleMuted.Render(role), highlightAllMatches(preview, q))
	return highlighted
}

func viewSessionViewer(m Model) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Session " + m.Session.SessionID))
	b.WriteString("\n")

	if m.Session.Loading {
		b.WriteString(styleMuted.Render("Loading…"))
		return b.String()
	}
	if m.Session.LoadErr != "" {
		b.WriteString(styleError.Render(m.Session.LoadErr))
		return b.String()
	}

	viewportHeight := m.Height - 4
	if viewportHeight < 1 {
		viewportHeight = 10
	}
	m.Session.EnsureVisible(viewportHeight)

	if len(m.Session.FilteredIndices) == 0 {
		b.WriteString(styleMuted.Render("No messages."))
		b.WriteString("\n")
	} else {
		end := m.Session.ScrollOffset + viewportHeight
		if end > len(m.Session.FilteredIndices) {
			end = len(m.Session.FilteredIndices)
		}
		for i := m.Session.ScrollOffset; i < end; i++ {
			idx := m.Session.FilteredIndices[i]
			msg := &m.Session.Messages[idx]
			selected := i == m.Session.SelectedIndex
			b.WriteString(renderSessionLine(msg, selected, m.Width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styleHelp.Render("[↑↓ nav] [esc back] [ctrl+y copy]"))
	return b.String()
}

func renderSessionLine(msg *message.Message, selected bool, width int) string {
	ts := ""
	if msg.HasTime {
		ts = msg.Timestamp.Local().Format("15:04:05")
	}
	text := strings.ReplaceAll(strings.TrimSpace(message.SearchableText(msg)), "\n", " ")
	previewWidth := width - len(ts) - len(string(msg.Type)) - 4
	if previewWidth < 10 {
		previewWidth = 10
	}
	if runes := []rune(text); len(runes) > previewWidth {
		text = string(runes[:previewWidth-1]) + "…"
	}
	line := fmt.Sprintf("%s [%s] %s", ts, msg.Type, text)
	if selected {
		return styleSelected.Render(padTo(line, width))
	}
	return styleMuted.Render(ts) + " " + styleSubtle.Render("["+string(msg.Type)+"]") + " " + text
}

func viewMessageDetail(m Model) string {
	if m.UI.SelectedResult == nil {
		return styleMuted.Render("Nothing selected.")
	}
	r := m.UI.SelectedResult
	var b strings.Builder
	b.WriteString(styleTitle.Render(fmt.Sprintf("%s — %s", r.Role, r.Timestamp.Local().Format(time.RFC3339))))
	b.WriteString("\n\n")

	width := m.Width - 4
	if width < 20 {
		width = 76
	}
	text := r.Text
	if !m.UI.TruncationEnabled {
		text = mdRenderer.Render(text, width)
	}
	b.WriteString(text)
	b.WriteString("\n\n")
	b.WriteString(styleSubtle.Render("session: " + r.SessionID))
	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("file: " + r.File))

	if r.RawJSON != "" && !m.UI.TruncationEnabled {
		if highlighted, ok := jsonHL.Highlight(r.RawJSON); ok {
			b.WriteString("\n\n")
			b.WriteString(styleSubtle.Render("raw:"))
			b.WriteString("\n")
			b.WriteString(highlighted)
		}
	}

	b.WriteString("\n\n")
	b.WriteString(styleHelp.Render("[esc back] [c copy content] [j copy json] [ctrl+t toggle rendering]"))
	return b.String()
}

func viewHelp(m Model) string {
	lines := []string{
		"↑/↓        move selection",
		"enter      open message detail",
		"→          open session viewer",
		"tab        cycle role filter",
		"ctrl+t     toggle truncation",
		"ctrl+y     copy content",
		"r          reload (clear cache)",
		"esc        back",
		"ctrl+c     quit (press twice)",
	}
	return styleTitle.Render("Keys") + "\n\n" + strings.Join(lines, "\n")
}

// highlightAllMatches highlights every case-insensitive occurrence of q in
// text, rune-safe for multi-byte characters.
func highlightAllMatches(text, q string) string {
	if q == "" {
		return styleMuted.Render(text)
	}
	runes := []rune(text)
	queryRunes := []rune(q)
	runeLen := len(runes)
	queryLen := len(queryRunes)
	if queryLen == 0 || queryLen > runeLen {
		return styleMuted.Render(text)
	}

	lowerText := []rune(strings.ToLower(text))
	lowerQuery := []rune(strings.ToLower(q))

	var matches [][2]int
	for i := 0; i <= runeLen-queryLen; i++ {
		found := true
		for j := 0; j < queryLen; j++ {
			if lowerText[i+j] != lowerQuery[j] {
				found = false
				break
			}
		}
		if found {
			matches = append(matches, [2]int{i, i + queryLen})
			i += queryLen - 1
		}
	}
	if len(matches) == 0 {
		return styleMuted.Render(text)
	}

	var b strings.Builder
	pos := 0
	for _, mm := range matches {
		start, end := mm[0], mm[1]
		if pos < start {
			b.WriteString(styleMuted.Render(string(runes[pos:start])))
		}
		b.WriteString(styleHighlight.Render(string(runes[start:end])))
		pos = end
	}
	if pos < runeLen {
		b.WriteString(styleMuted.Render(string(runes[pos:])))
	}
	return b.String()
}

func padTo(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

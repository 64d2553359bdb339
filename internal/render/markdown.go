package render

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// MarkdownRenderer caches a glamour terminal renderer at a specific width,
// recreating it only when the width changes (the session viewer and
// message detail panes resize as the terminal resizes).
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// autoStyle picks a glamour style based on terminal capability and
// background, with the document margin zeroed so the caller's lipgloss
// container owns its own padding.
func autoStyle() ansi.StyleConfig {
	var style ansi.StyleConfig
	switch {
	case !term.IsTerminal(int(os.Stdout.Fd())):
		style = styles.NoTTYStyleConfig
	case termenv.HasDarkBackground():
		style = styles.DarkStyleConfig
	default:
		style = styles.LightStyleConfig
	}
	margin := uint(0)
	style.Document.Margin = &margin
	return style
}

// Render renders markdown content for terminal display at the given
// width, returning the original content unchanged on any renderer error.
func (r *MarkdownRenderer) Render(content string, width int) string {
	if width <= 0 {
		return content
	}
	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStyles(autoStyle()),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		r.renderer = renderer
		r.width = width
	}
	out, err := r.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

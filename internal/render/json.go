// Package render provides terminal rendering helpers for the interactive
// message detail and session viewer screens: JSON syntax highlighting and
// markdown rendering.
package render

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/colorprofile"
)

// JSONHighlighter syntax-highlights a raw JSONL line for the message
// detail view's "copy as json" preview. Constructed once per interactive
// session; its chroma objects are safe to reuse across renders.
type JSONHighlighter struct {
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

// NewJSONHighlighter creates a highlighter. hasDarkBg selects the chroma
// style (dracula on dark backgrounds, github otherwise).
func NewJSONHighlighter(hasDarkBg bool) *JSONHighlighter {
	lexer := chroma.Coalesce(lexers.Get("json"))

	styleName := "github"
	if hasDarkBg {
		styleName = "dracula"
	}

	profile := colorprofile.Detect(os.Stdout, os.Environ())
	return &JSONHighlighter{
		lexer:     lexer,
		formatter: formatters.Get(chromaFormatterName(profile)),
		style:     styles.Get(styleName),
	}
}

// Highlight pretty-prints and syntax-highlights s. Returns (s, false)
// unchanged if s is not valid JSON, so the caller can fall back to plain
// text rendering.
func (h *JSONHighlighter) Highlight(s string) (string, bool) {
	raw := []byte(s)
	if !json.Valid(raw) {
		return s, false
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return s, false
	}

	iterator, err := h.lexer.Tokenise(nil, buf.String())
	if err != nil {
		return s, false
	}

	var out bytes.Buffer
	if err := h.formatter.Format(&out, h.style, iterator); err != nil {
		return s, false
	}
	return out.String(), true
}

func chromaFormatterName(profile colorprofile.Profile) string {
	switch profile {
	case colorprofile.TrueColor:
		return "terminal16m"
	case colorprofile.ANSI256:
		return "terminal256"
	case colorprofile.ANSI:
		return "terminal16"
	default:
		return "terminal"
	}
}

package interactive

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorMuted     = lipgloss.Color("#6B7280")
	colorSubtle    = lipgloss.Color("#4B5563")
	colorHighlight = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorBg        = lipgloss.Color("#111827")
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9FAFB"))

	styleMuted = lipgloss.NewStyle().Foreground(colorMuted)
	styleSubtle = lipgloss.NewStyle().Foreground(colorSubtle)

	styleSelected = lipgloss.NewStyle().Background(colorPrimary).Foreground(lipgloss.Color("#F9FAFB"))

	styleBanner = lipgloss.NewStyle().Foreground(colorHighlight)
	styleError  = lipgloss.NewStyle().Foreground(colorError)

	styleHighlight = lipgloss.NewStyle().Background(colorHighlight).Foreground(colorBg).Bold(true)

	styleHelp = lipgloss.NewStyle().Foreground(colorSubtle)
)

package cmd

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/bianoble/canvas-sync/internal/engine"
)

var (
	cGreen  = lipgloss.Color("118")
	cRed    = lipgloss.Color("196")
	cOrange = lipgloss.Color("208")
	cGray   = lipgloss.Color("240")
	cCyan   = lipgloss.Color("39")

	styleSuccess = lipgloss.NewStyle().Foreground(cGreen).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(cRed)
	styleWarn    = lipgloss.NewStyle().Foreground(cOrange)
	styleMuted   = lipgloss.NewStyle().Foreground(cGray)
	styleHeader  = lipgloss.NewStyle().Foreground(cCyan).Bold(true)
)

// styled renders s with style unless --no-color is set.
func styled(style lipgloss.Style, s string) string {
	if noColor {
		return s
	}
	return style.Render(s)
}

// noticeStyle picks the colour for an engine notice and whether it belongs
// on stderr.
func noticeStyle(level engine.Level) (lipgloss.Style, bool) {
	switch level {
	case engine.LevelSuccess:
		return styleSuccess, false
	case engine.LevelWarn:
		return styleWarn, false
	case engine.LevelError:
		return styleError, true
	}
	return styleMuted, false
}

// renderMarkdown renders a document for the terminal, falling back to the
// raw text when the renderer cannot be built.
func renderMarkdown(doc string, width int) string {
	style := "dark"
	if noColor {
		style = "notty"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return doc
	}
	out, err := r.Render(doc)
	if err != nil {
		return doc
	}
	return out
}

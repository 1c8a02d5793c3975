package tui

import (
	"github.com/JPM1118/sheetcut/internal/slicer"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	colorEligible   = lipgloss.Color("2")  // green
	colorIneligible = lipgloss.Color("8")  // dim gray
	colorFallback   = lipgloss.Color("3")  // yellow
	colorHeader     = lipgloss.Color("12") // bright blue
	colorMuted      = lipgloss.Color("8")  // dim
	colorCursor     = lipgloss.Color("6")  // cyan

	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHeader)

	subheaderStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorCursor).
			Bold(true)

	columnHeaderStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Underline(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")).
			Bold(true)
)

// scoreStyle returns the style for a row of the selector table.
func scoreStyle(s slicer.Score) lipgloss.Style {
	switch {
	case s.Fallback:
		return lipgloss.NewStyle().Foreground(colorFallback)
	case s.Eligible:
		return lipgloss.NewStyle().Foreground(colorEligible)
	default:
		return lipgloss.NewStyle().Foreground(colorIneligible)
	}
}

// scoreLabel returns the display text for a row's eligibility.
func scoreLabel(s slicer.Score) string {
	switch {
	case s.Fallback:
		return "fallback"
	case s.Eligible:
		return "ok"
	default:
		return "too small"
	}
}

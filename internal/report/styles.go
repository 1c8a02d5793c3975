package report

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorHeader  = lipgloss.Color("12") // bright blue
	colorSuccess = lipgloss.Color("2")  // green
	colorWarning = lipgloss.Color("3")  // yellow
	colorError   = lipgloss.Color("1")  // red
	colorMuted   = lipgloss.Color("8")  // dim gray
)

type styles struct {
	header  lipgloss.Style
	rule    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header: r.NewStyle().
			Bold(true).
			Foreground(colorHeader),
		rule: r.NewStyle().
			Foreground(colorMuted),
		success: r.NewStyle().
			Foreground(colorSuccess).
			Bold(true),
		warning: r.NewStyle().
			Foreground(colorWarning),
		err: r.NewStyle().
			Foreground(colorError).
			Bold(true),
		muted: r.NewStyle().
			Foreground(colorMuted),
	}
}

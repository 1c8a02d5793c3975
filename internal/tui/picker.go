package tui

import (
	"fmt"
	"strings"

	"github.com/JPM1118/sheetcut/internal/slicer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	colGrid     = 10
	colCell     = 12
	colScore    = 8
	colStatus   = 12
	minWidth    = 48
	minHeight   = 10
	headerLines = 4 // header + subheader + column header + separator
	footerLines = 2 // preview line + status bar
)

// Picker is a Bubble Tea model for choosing one grid from the selector's
// table. The selector's own choice is preselected.
type Picker struct {
	title     string
	scores    []slicer.Score
	suggested int
	cursor    int
	chosen    int
	width     int
	height    int
	// preview returns the number of content-bearing cells for a grid.
	preview func(slicer.Grid) int
}

// Option configures a Picker.
type Option func(*Picker)

// WithPreview shows the content-bearing cell count for the highlighted grid.
func WithPreview(fn func(slicer.Grid) int) Option {
	return func(p *Picker) {
		p.preview = fn
	}
}

// NewPicker creates a picker over scores with the cursor on suggested.
func NewPicker(title string, scores []slicer.Score, suggested int, opts ...Option) Picker {
	if suggested < 0 || suggested >= len(scores) {
		suggested = 0
	}
	p := Picker{
		title:     title,
		scores:    scores,
		suggested: suggested,
		cursor:    suggested,
		chosen:    -1,
		width:     minWidth,
		height:    minHeight,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Choice returns the grid confirmed with Enter. ok is false if the user quit.
func (p Picker) Choice() (g slicer.Grid, ok bool) {
	if p.chosen < 0 {
		return slicer.Grid{}, false
	}
	return p.scores[p.chosen].Grid, true
}

// Init has nothing to load; the table is computed before the program starts.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return p.handleKey(msg)

	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil
	}

	return p, nil
}

func (p Picker) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return p, tea.Quit

	case "j", "down":
		if p.cursor < len(p.scores)-1 {
			p.cursor++
		}
		return p, nil

	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
		}
		return p, nil

	case "enter":
		if len(p.scores) == 0 {
			return p, nil
		}
		p.chosen = p.cursor
		return p, tea.Quit

	case "s":
		p.cursor = p.suggested
		return p, nil

	case "G":
		if len(p.scores) > 0 {
			p.cursor = len(p.scores) - 1
		}
		return p, nil

	case "g":
		p.cursor = 0
		return p, nil
	}

	return p, nil
}

// View renders the picker.
func (p Picker) View() string {
	if p.width < minWidth || p.height < minHeight {
		return fmt.Sprintf("\n  Terminal too small (need %dx%d, got %dx%d)\n", minWidth, minHeight, p.width, p.height)
	}

	var b strings.Builder

	b.WriteString(p.renderHeader())
	b.WriteString("\n")
	b.WriteString(subheaderStyle.Render(p.title))
	b.WriteString("\n")
	b.WriteString(p.renderColumnHeaders())
	b.WriteString("\n")
	b.WriteString(p.renderSeparator())
	b.WriteString("\n")

	listHeight := p.height - headerLines - footerLines
	b.WriteString(p.renderScoreList(listHeight))

	b.WriteString(p.renderPreview())
	b.WriteString("\n")
	b.WriteString(statusBarStyle.Render("  j/k:navigate  s:suggested  Enter:extract  q:quit"))

	return b.String()
}

func (p Picker) renderHeader() string {
	title := headerStyle.Render("Grid Picker")

	right := ""
	if len(p.scores) > 0 {
		right = badgeStyle.Render(fmt.Sprintf("[suggested %s]", p.scores[p.suggested].Grid))
	}

	gap := p.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return title + strings.Repeat(" ", gap) + right
}

func (p Picker) renderColumnHeaders() string {
	header := padRight("GRID", colGrid) +
		padRight("CELL", colCell) +
		padRight("SCORE", colScore) +
		padRight("STATUS", colStatus)
	return columnHeaderStyle.Render(header)
}

func (p Picker) renderSeparator() string {
	sep := padRight(strings.Repeat("─", colGrid-1), colGrid) +
		padRight(strings.Repeat("─", colCell-1), colCell) +
		padRight(strings.Repeat("─", colScore-1), colScore) +
		strings.Repeat("─", colStatus-1)
	return subheaderStyle.Render(sep)
}

func (p Picker) renderScoreList(height int) string {
	if len(p.scores) == 0 {
		return padLines("  No candidate grids.\n", height)
	}

	// Calculate visible range (scroll if needed)
	start := 0
	if p.cursor >= height {
		start = p.cursor - height + 1
	}
	end := start + height
	if end > len(p.scores) {
		end = len(p.scores)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		s := p.scores[i]

		prefix := "  "
		if i == p.cursor {
			prefix = cursorStyle.Render("▸ ")
		}

		grid := padRight(s.Grid.String(), colGrid-2) // -2 for prefix
		cell := padRight(fmt.Sprintf("%dx%d", s.CellWidth, s.CellHeight), colCell)
		score := padRight(fmt.Sprintf("%d", s.Score), colScore)
		label := scoreLabel(s)
		if i == p.suggested {
			label += " *"
		}
		status := scoreStyle(s).Render(padRight(label, colStatus))

		b.WriteString(prefix + grid + cell + score + status)
		b.WriteString("\n")
	}

	rendered := end - start
	for i := rendered; i < height; i++ {
		b.WriteString("\n")
	}

	return b.String()
}

func (p Picker) renderPreview() string {
	if p.preview == nil || len(p.scores) == 0 {
		return ""
	}
	g := p.scores[p.cursor].Grid
	return subheaderStyle.Render(fmt.Sprintf("  %s: %d of %d cells have content", g, p.preview(g), g.Len()))
}

// Helpers

func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLines(content string, height int) string {
	lines := strings.Count(content, "\n")
	padding := height - lines
	if padding > 0 {
		content += strings.Repeat("\n", padding)
	}
	return content
}

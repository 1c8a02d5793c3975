package report

import (
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/JPM1118/sheetcut/internal/sheet"
	"github.com/JPM1118/sheetcut/internal/slicer"
	"github.com/charmbracelet/lipgloss"
)

// Reporter prints extraction progress for a human reading the console.
// It is the only output channel; nothing is machine-readable.
type Reporter struct {
	w  io.Writer
	st styles
}

var _ slicer.Listener = (*Reporter)(nil)

// New creates a Reporter writing to w. Colour is used only when w is a terminal.
func New(w io.Writer) *Reporter {
	return &Reporter{
		w:  w,
		st: newStyles(lipgloss.NewRenderer(w)),
	}
}

func (r *Reporter) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

// Banner prints the program title underlined to its width.
func (r *Reporter) Banner(title string) {
	r.printf("%s\n%s\n", r.st.header.Render(title), r.st.rule.Render(strings.Repeat("=", lipgloss.Width(title))))
}

// Found announces the input picked by the file probe.
func (r *Reporter) Found(path string) {
	r.printf("Found image file: %s\n", path)
}

// NotFound lists the candidate names the user can save their sheet as.
func (r *Reporter) NotFound(candidates []string) {
	r.printf("%s\n", r.st.err.Render("Could not find sprite sheet image."))
	r.printf("Please save your sprite sheet as one of these names:\n")
	for _, name := range candidates {
		r.printf("  - %s\n", name)
	}
}

// SheetLoaded prints the decoded sheet's size and channel layout.
func (r *Reporter) SheetLoaded(s *sheet.Sheet) {
	r.printf("Loaded sprite sheet: %s (%s)\n", s.Size(), s.Layout)
}

// GridChosen prints the grid in use and its cell size.
func (r *Reporter) GridChosen(g slicer.Grid, cellWidth, cellHeight int) {
	r.printf("Using grid configuration: %s\n", g)
	r.printf("Sprite dimensions: %dx%d\n", cellWidth, cellHeight)
}

// SpriteSaved prints one saved-sprite confirmation.
func (r *Reporter) SpriteSaved(index int, path string) {
	r.printf("Saved sprite %d: %s\n", index, path)
}

// CellSkipped notes a zero-sized cell that was not written.
func (r *Reporter) CellSkipped(index int, cell image.Rectangle) {
	r.printf("%s\n", r.st.warning.Render(fmt.Sprintf("Skipped sprite %d: empty cell %v", index, cell)))
}

// Summary prints the final count, comparing it with the expected number
// of sprites.
func (r *Reporter) Summary(res slicer.Result, expected int, dir string) {
	n := res.Count()
	r.printf("\n")
	if res.Truncated {
		r.printf("%s\n", r.st.warning.Render(fmt.Sprintf(
			"Found %d sprites; only the first %d were saved.", res.Detected, n)))
	}
	if len(res.Skipped) > 0 {
		r.printf("%s\n", r.st.warning.Render(fmt.Sprintf(
			"Skipped %d empty cells; the sheet is too small for a %s grid.", len(res.Skipped), res.Grid)))
	}

	switch {
	case n == expected:
		r.printf("%s\n", r.st.success.Render(fmt.Sprintf("Perfect! Extracted all %d sprites!", n)))
		r.printf("Check the '%s' directory for your individual sprites.\n", dir)
	case n > 0:
		r.printf("%s\n", r.st.warning.Render(fmt.Sprintf("Extracted %d sprites (expected %d)", n, expected)))
	default:
		r.printf("%s\n", r.st.err.Render("Failed to extract sprites"))
	}
}

// Failure prints err, distinguishing a bad input file from a failure
// while writing sprites.
func (r *Reporter) Failure(err error) {
	var (
		nf *sheet.NotFoundError
		de *sheet.DecodeError
		se *slicer.SaveError
	)
	switch {
	case errors.As(err, &nf):
		r.NotFound(nf.Candidates)
	case errors.As(err, &de):
		r.printf("%s\n", r.st.err.Render(fmt.Sprintf("Error reading input image '%s': %v", de.Path, de.Err)))
	case errors.As(err, &se):
		r.printf("%s\n", r.st.err.Render(fmt.Sprintf("Error writing sprites: %v", se)))
	default:
		r.printf("%s\n", r.st.err.Render(fmt.Sprintf("Error processing image: %v", err)))
	}
}

// Muted prints a dim informational line.
func (r *Reporter) Muted(format string, args ...any) {
	r.printf("%s\n", r.st.muted.Render(fmt.Sprintf(format, args...)))
}

package slicer

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Grid is a column/row layout laid over a sprite sheet.
type Grid struct {
	Columns int
	Rows    int
}

// DefaultGrid is the layout used by the fixed extractor and as the
// selector's fallback.
var DefaultGrid = Grid{Columns: 8, Rows: 4}

// DefaultCandidates are tried in order by the smart extractor.
// Earlier entries win ties.
var DefaultCandidates = []Grid{
	{Columns: 8, Rows: 4},
	{Columns: 10, Rows: 3},
	{Columns: 13, Rows: 2},
	{Columns: 26, Rows: 1},
}

// DefaultMinCell is the minimum-useful cell size: a candidate is only
// eligible when both cell sides are strictly larger. Heuristic.
const DefaultMinCell = 16

func (g Grid) String() string {
	return fmt.Sprintf("%dx%d", g.Columns, g.Rows)
}

// ParseGrid parses "COLSxROWS", e.g. "8x4".
func ParseGrid(s string) (Grid, error) {
	cols, rows, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Grid{}, fmt.Errorf("invalid grid %q: want COLSxROWS", s)
	}
	c, err := strconv.Atoi(cols)
	if err != nil {
		return Grid{}, fmt.Errorf("invalid grid %q: columns: %w", s, err)
	}
	r, err := strconv.Atoi(rows)
	if err != nil {
		return Grid{}, fmt.Errorf("invalid grid %q: rows: %w", s, err)
	}
	g := Grid{Columns: c, Rows: r}
	if !g.Valid() {
		return Grid{}, fmt.Errorf("invalid grid %q: columns and rows must be positive", s)
	}
	return g, nil
}

// Valid reports whether the grid has at least one column and one row.
func (g Grid) Valid() bool {
	return g.Columns > 0 && g.Rows > 0
}

// Len returns the number of cells in the grid.
func (g Grid) Len() int {
	return g.Columns * g.Rows
}

// CellSize returns the cell width and height for a w×h sheet.
// Remainders are truncated at the right and bottom edges.
func (g Grid) CellSize(w, h int) (cw, ch int) {
	if !g.Valid() {
		return 0, 0
	}
	return w / g.Columns, h / g.Rows
}

// Cell returns the rectangle of the cell at (col, row).
func (g Grid) Cell(w, h, col, row int) image.Rectangle {
	cw, ch := g.CellSize(w, h)
	return image.Rect(col*cw, row*ch, col*cw+cw, row*ch+ch)
}

// Cells returns every cell in row-major order: all columns of row 0,
// then row 1, and so on.
func (g Grid) Cells(w, h int) []image.Rectangle {
	if !g.Valid() {
		return nil
	}
	cells := make([]image.Rectangle, 0, g.Len())
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			cells = append(cells, g.Cell(w, h, col, row))
		}
	}
	return cells
}

// Score is one row of the selector's table.
type Score struct {
	Grid       Grid
	CellWidth  int
	CellHeight int
	// Score is min(CellWidth, CellHeight).
	Score    int
	Eligible bool
	// Fallback marks the default layout appended when no candidate is eligible.
	Fallback bool
}

// Selector chooses a grid among candidates by cell size.
type Selector struct {
	Candidates []Grid
	MinCell    int
	Fallback   Grid
}

// DefaultSelector returns a Selector with the stock candidates.
func DefaultSelector() Selector {
	return Selector{
		Candidates: DefaultCandidates,
		MinCell:    DefaultMinCell,
		Fallback:   DefaultGrid,
	}
}

// Table scores every candidate for a w×h sheet and returns the index of
// the chosen row. When no candidate is eligible the fallback is appended
// as the last row and chosen.
func (s Selector) Table(w, h int) ([]Score, int) {
	scores := make([]Score, 0, len(s.Candidates)+1)
	best, bestScore := -1, 0
	for _, g := range s.Candidates {
		if !g.Valid() {
			continue
		}
		cw, ch := g.CellSize(w, h)
		sc := Score{
			Grid:       g,
			CellWidth:  cw,
			CellHeight: ch,
			Score:      min(cw, ch),
			Eligible:   cw > s.MinCell && ch > s.MinCell,
		}
		// Strictly greater: earlier candidates win ties.
		if sc.Eligible && sc.Score > bestScore {
			best, bestScore = len(scores), sc.Score
		}
		scores = append(scores, sc)
	}

	if best < 0 {
		cw, ch := s.Fallback.CellSize(w, h)
		scores = append(scores, Score{
			Grid:       s.Fallback,
			CellWidth:  cw,
			CellHeight: ch,
			Score:      min(cw, ch),
			Eligible:   cw > s.MinCell && ch > s.MinCell,
			Fallback:   true,
		})
		best = len(scores) - 1
	}
	return scores, best
}

// Select returns the candidate with the largest min(cell width, cell
// height) among those whose cells exceed MinCell on both axes. It never
// fails: with no eligible candidate it returns Fallback.
func (s Selector) Select(w, h int) Grid {
	scores, best := s.Table(w, h)
	return scores[best].Grid
}

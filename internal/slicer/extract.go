package slicer

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"github.com/JPM1118/sheetcut/internal/sheet"
)

const (
	// DefaultLimit caps how many sprites the smart extractor writes.
	DefaultLimit = 26

	// DefaultTail is the number of centred sprites in the last row of the fixed layout.
	DefaultTail = 2

	// DefaultPrefix names output files: pokeball_01.png, pokeball_02.png, ...
	DefaultPrefix = "pokeball_"
)

// FixedLayout is a grid whose rows are full except the last, which holds
// Tail sprites centred horizontally.
type FixedLayout struct {
	Grid Grid
	Tail int
}

// DefaultFixedLayout is 8x4 with two sprites centred in the bottom row.
func DefaultFixedLayout() FixedLayout {
	return FixedLayout{Grid: DefaultGrid, Tail: DefaultTail}
}

// Len returns the number of sprites in the layout.
func (l FixedLayout) Len() int {
	if !l.Grid.Valid() {
		return 0
	}
	return l.Grid.Columns*(l.Grid.Rows-1) + l.Tail
}

// Cells returns the layout's cells in output order: every cell of the full
// rows row-major, then the tail cells left to right.
func (l FixedLayout) Cells(w, h int) []image.Rectangle {
	if !l.Grid.Valid() {
		return nil
	}
	cw, ch := l.Grid.CellSize(w, h)
	cells := make([]image.Rectangle, 0, l.Len())
	for row := 0; row < l.Grid.Rows-1; row++ {
		for col := 0; col < l.Grid.Columns; col++ {
			cells = append(cells, l.Grid.Cell(w, h, col, row))
		}
	}

	top := (l.Grid.Rows - 1) * ch
	left := CenterOffset(w, cw, l.Tail)
	for i := 0; i < l.Tail; i++ {
		x := left + i*cw
		cells = append(cells, image.Rect(x, top, x+cw, top+ch))
	}
	return cells
}

// CenterOffset returns the left edge of n cells of width cw placed side by
// side and centred in a row of width w.
func CenterOffset(w, cw, n int) int {
	return (w - n*cw) / 2
}

// Saved describes one written sprite.
type Saved struct {
	Index int
	Path  string
	Cell  image.Rectangle
}

// Result summarises one extraction run. A Result is returned alongside a
// *SaveError, describing what was written before the failure.
type Result struct {
	Grid       Grid
	CellWidth  int
	CellHeight int
	Saved      []Saved
	// Skipped lists output indices whose cell had zero width or height.
	Skipped []int
	// Detected is the number of content-bearing cells before the limit.
	Detected int
	// Truncated is set when Detected exceeded the limit and sprites were dropped.
	Truncated bool
}

// Count returns the number of sprites written.
func (r Result) Count() int {
	return len(r.Saved)
}

// SaveError reports a sprite that could not be written. Index 0 means the
// output directory itself could not be prepared.
type SaveError struct {
	Index int
	Path  string
	Err   error
}

func (e *SaveError) Error() string {
	if e.Index == 0 {
		return fmt.Sprintf("prepare %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("save sprite %d to %s: %v", e.Index, e.Path, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// Listener observes extraction progress. report.Reporter implements it.
type Listener interface {
	GridChosen(g Grid, cellWidth, cellHeight int)
	SpriteSaved(index int, path string)
	CellSkipped(index int, cell image.Rectangle)
}

type nopListener struct{}

func (nopListener) GridChosen(Grid, int, int)        {}
func (nopListener) SpriteSaved(int, string)          {}
func (nopListener) CellSkipped(int, image.Rectangle) {}

// Extractor crops sheets and writes sprites through a Codec.
type Extractor struct {
	Codec      sheet.Codec
	OutputDir  string
	Prefix     string
	Thresholds Thresholds
	// Limit caps the smart extractor's output. Zero or negative means no cap.
	Limit    int
	Listener Listener
}

// NewExtractor returns an Extractor with the stock prefix, thresholds and limit.
func NewExtractor(codec sheet.Codec, outputDir string) *Extractor {
	return &Extractor{
		Codec:      codec,
		OutputDir:  outputDir,
		Prefix:     DefaultPrefix,
		Thresholds: DefaultThresholds(),
		Limit:      DefaultLimit,
	}
}

// OutputPath returns the file path for sprite index, e.g. dir/pokeball_07.png.
func (e *Extractor) OutputPath(index int) string {
	return filepath.Join(e.OutputDir, fmt.Sprintf("%s%02d.png", e.Prefix, index))
}

func (e *Extractor) listener() Listener {
	if e.Listener == nil {
		return nopListener{}
	}
	return e.Listener
}

func (e *Extractor) prepare() error {
	if err := e.Codec.MkdirAll(e.OutputDir); err != nil {
		return &SaveError{Path: e.OutputDir, Err: err}
	}
	return nil
}

func (e *Extractor) save(img image.Image, index int, cell image.Rectangle, res *Result) error {
	path := e.OutputPath(index)
	if err := e.Codec.Save(img, path); err != nil {
		return &SaveError{Index: index, Path: path, Err: err}
	}
	res.Saved = append(res.Saved, Saved{Index: index, Path: path, Cell: cell})
	e.listener().SpriteSaved(index, path)
	return nil
}

// ExtractFixed writes every cell of layout unconditionally, numbered from 1
// in output order. Cells with zero width or height are skipped but still
// consume their index.
func (e *Extractor) ExtractFixed(ctx context.Context, s *sheet.Sheet, layout FixedLayout) (Result, error) {
	w, h := s.Width(), s.Height()
	cw, ch := layout.Grid.CellSize(w, h)
	res := Result{Grid: layout.Grid, CellWidth: cw, CellHeight: ch}
	e.listener().GridChosen(layout.Grid, cw, ch)

	if err := e.prepare(); err != nil {
		return res, err
	}

	for i, cell := range layout.Cells(w, h) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		index := i + 1
		if cell.Empty() {
			res.Skipped = append(res.Skipped, index)
			e.listener().CellSkipped(index, cell)
			continue
		}
		if err := e.save(s.Crop(cell), index, cell, &res); err != nil {
			return res, err
		}
	}
	res.Detected = res.Count()
	return res, nil
}

// ExtractSmart scans every cell of g row-major and writes the ones that
// pass the content test, numbered from 1. Content-bearing cells beyond
// Limit are counted in Detected but not written, and Truncated is set.
func (e *Extractor) ExtractSmart(ctx context.Context, s *sheet.Sheet, g Grid) (Result, error) {
	w, h := s.Width(), s.Height()
	cw, ch := g.CellSize(w, h)
	res := Result{Grid: g, CellWidth: cw, CellHeight: ch}
	e.listener().GridChosen(g, cw, ch)

	if err := e.prepare(); err != nil {
		return res, err
	}

	for _, cell := range g.Cells(w, h) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		sprite := s.Crop(cell)
		if !HasContent(sprite, s.Layout, e.Thresholds) {
			continue
		}
		res.Detected++
		if e.Limit > 0 && res.Detected > e.Limit {
			res.Truncated = true
			continue
		}
		if err := e.save(sprite, res.Detected, cell, &res); err != nil {
			return res, err
		}
	}
	return res, nil
}

// ContentCells returns the cells of g that pass the content test, without
// writing anything.
func ContentCells(s *sheet.Sheet, g Grid, th Thresholds) []image.Rectangle {
	var cells []image.Rectangle
	for _, cell := range g.Cells(s.Width(), s.Height()) {
		if HasContent(s.Crop(cell), s.Layout, th) {
			cells = append(cells, cell)
		}
	}
	return cells
}

package slicer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/JPM1118/sheetcut/internal/sheet"
	"github.com/JPM1118/sheetcut/internal/testutil"
)

func TestFixedLayout_FullRowsTile(t *testing.T) {
	layout := DefaultFixedLayout()
	w, h := 810, 403
	cells := layout.Cells(w, h)
	if len(cells) != 26 {
		t.Fatalf("len(cells) = %d, want 26", len(cells))
	}

	cw, ch := w/8, h/4
	full := cells[:24]
	for i, c := range full {
		if c.Dx() != cw || c.Dy() != ch {
			t.Errorf("cell %d size = %dx%d, want %dx%d", i, c.Dx(), c.Dy(), cw, ch)
		}
		if c.Min.Y >= 3*ch {
			t.Errorf("full-row cell %d starts in the last row: %v", i, c)
		}
		for j := i + 1; j < len(full); j++ {
			if c.Overlaps(full[j]) {
				t.Errorf("cells %d and %d overlap", i, j)
			}
		}
	}

	// No gaps: the 24 cells cover rows 0..2 exactly.
	area := 0
	for _, c := range full {
		area += c.Dx() * c.Dy()
	}
	if area != 8*cw*3*ch {
		t.Errorf("covered area = %d, want %d", area, 8*cw*3*ch)
	}
}

func TestFixedLayout_TailCentred(t *testing.T) {
	for _, w := range []int{800, 801, 803, 810, 97} {
		layout := DefaultFixedLayout()
		cells := layout.Cells(w, 400)
		tail := cells[24:]
		cw := w / 8

		wantLeft := (w - 2*cw) / 2
		if tail[0].Min.X != wantLeft {
			t.Errorf("w=%d: tail starts at %d, want %d", w, tail[0].Min.X, wantLeft)
		}
		if tail[1].Min.X != tail[0].Max.X {
			t.Errorf("w=%d: tail cells should be adjacent, got %v %v", w, tail[0], tail[1])
		}
		leftGap := tail[0].Min.X
		rightGap := w - tail[1].Max.X
		if d := rightGap - leftGap; d < 0 || d > 1 {
			t.Errorf("w=%d: gaps %d/%d not centred within 1px", w, leftGap, rightGap)
		}
		if tail[0].Min.Y != 3*(400/4) {
			t.Errorf("w=%d: tail row at y=%d, want %d", w, tail[0].Min.Y, 3*(400/4))
		}
	}
}

func TestCenterOffset(t *testing.T) {
	if got := CenterOffset(800, 100, 2); got != 300 {
		t.Errorf("CenterOffset(800, 100, 2) = %d, want 300", got)
	}
	if got := CenterOffset(801, 100, 2); got != 300 {
		t.Errorf("CenterOffset(801, 100, 2) = %d, want 300", got)
	}
}

func TestFixedLayout_Len(t *testing.T) {
	if got := DefaultFixedLayout().Len(); got != 26 {
		t.Errorf("Len() = %d, want 26", got)
	}
	single := FixedLayout{Grid: Grid{5, 1}, Tail: 3}
	if got := single.Len(); got != 3 {
		t.Errorf("single-row Len() = %d, want 3", got)
	}
	if cells := single.Cells(500, 100); len(cells) != 3 || cells[0].Min.X != 100 {
		t.Errorf("single-row cells = %v, want 3 cells starting at x=100", cells)
	}
}

func TestExtractFixed_WritesAllCells(t *testing.T) {
	s := testutil.PokeballSheet(800, 400)
	codec := testutil.NewMockCodec(s)
	ex := NewExtractor(codec, "out")

	res, err := ex.ExtractFixed(context.Background(), s, DefaultFixedLayout())
	if err != nil {
		t.Fatalf("ExtractFixed: %v", err)
	}
	if res.Count() != 26 {
		t.Fatalf("Count() = %d, want 26", res.Count())
	}
	if res.CellWidth != 100 || res.CellHeight != 100 {
		t.Errorf("cell size = %dx%d, want 100x100", res.CellWidth, res.CellHeight)
	}

	paths := codec.SavedPaths()
	for i, p := range paths {
		want := filepath.Join("out", fmt.Sprintf("pokeball_%02d.png", i+1))
		if p != want {
			t.Errorf("path %d = %q, want %q", i, p, want)
		}
	}
	if len(codec.Dirs) != 1 || codec.Dirs[0] != "out" {
		t.Errorf("output dir should be created once, got %v", codec.Dirs)
	}
	if res.Saved[24].Cell != image.Rect(300, 300, 400, 400) {
		t.Errorf("sprite 25 cell = %v, want (300,300)-(400,400)", res.Saved[24].Cell)
	}
}

func TestExtractFixed_NoContentTest(t *testing.T) {
	s := testutil.GraySheet(800, 400)
	codec := testutil.NewMockCodec(s)

	res, err := NewExtractor(codec, "out").ExtractFixed(context.Background(), s, DefaultFixedLayout())
	if err != nil {
		t.Fatalf("ExtractFixed: %v", err)
	}
	if res.Count() != 26 {
		t.Errorf("fixed path should save empty cells too, got %d", res.Count())
	}
}

func TestExtractFixed_DegenerateCellsSkipped(t *testing.T) {
	s := testutil.GraySheet(7, 3)
	codec := testutil.NewMockCodec(s)

	res, err := NewExtractor(codec, "out").ExtractFixed(context.Background(), s, DefaultFixedLayout())
	if err != nil {
		t.Fatalf("degenerate cells should not fail: %v", err)
	}
	if res.Count() != 0 {
		t.Errorf("Count() = %d, want 0", res.Count())
	}
	if len(res.Skipped) != 26 {
		t.Errorf("Skipped = %d indices, want 26", len(res.Skipped))
	}
	if len(codec.SavedPaths()) != 0 {
		t.Errorf("no files should be written, got %v", codec.SavedPaths())
	}
}

func TestExtractSmart_SavesContentCells(t *testing.T) {
	s := testutil.PokeballSheet(800, 400)
	codec := testutil.NewMockCodec(s)
	ex := NewExtractor(codec, "out")

	g := DefaultSelector().Select(s.Width(), s.Height())
	res, err := ex.ExtractSmart(context.Background(), s, g)
	if err != nil {
		t.Fatalf("ExtractSmart: %v", err)
	}
	if res.Count() != 26 || res.Detected != 26 {
		t.Fatalf("Count() = %d, Detected = %d, want 26/26", res.Count(), res.Detected)
	}
	if res.Truncated {
		t.Error("exactly 26 sprites should not be truncated")
	}
	// The bottom row's sprites sit in columns 3 and 4.
	if res.Saved[24].Cell != image.Rect(300, 300, 400, 400) || res.Saved[25].Cell != image.Rect(400, 300, 500, 400) {
		t.Errorf("bottom sprites = %v %v", res.Saved[24].Cell, res.Saved[25].Cell)
	}
}

func TestExtractSmart_RowMajorNumbering(t *testing.T) {
	s := testutil.GraySheet(400, 200) // 8x4 of 50x50 cells
	for _, cell := range []image.Rectangle{
		image.Rect(310, 10, 320, 20),   // row 0, col 6
		image.Rect(60, 60, 70, 70),     // row 1, col 1
		image.Rect(360, 160, 370, 170), // row 3, col 7
	} {
		testutil.Fill(s.Image, cell, testutil.Red)
	}
	codec := testutil.NewMockCodec(s)

	res, err := NewExtractor(codec, "out").ExtractSmart(context.Background(), s, Grid{8, 4})
	if err != nil {
		t.Fatalf("ExtractSmart: %v", err)
	}
	want := []image.Rectangle{
		image.Rect(300, 0, 350, 50),
		image.Rect(50, 50, 100, 100),
		image.Rect(350, 150, 400, 200),
	}
	if res.Count() != len(want) {
		t.Fatalf("Count() = %d, want %d", res.Count(), len(want))
	}
	for i, sv := range res.Saved {
		if sv.Index != i+1 {
			t.Errorf("saved[%d].Index = %d, want %d", i, sv.Index, i+1)
		}
		if sv.Cell != want[i] {
			t.Errorf("saved[%d].Cell = %v, want %v", i, sv.Cell, want[i])
		}
	}
}

func TestExtractSmart_LimitTruncates(t *testing.T) {
	s := testutil.PokeballSheet(800, 400)
	codec := testutil.NewMockCodec(s)
	ex := NewExtractor(codec, "out")
	ex.Limit = 5

	res, err := ex.ExtractSmart(context.Background(), s, Grid{8, 4})
	if err != nil {
		t.Fatalf("ExtractSmart: %v", err)
	}
	if res.Count() != 5 {
		t.Errorf("Count() = %d, want 5", res.Count())
	}
	if res.Detected != 26 {
		t.Errorf("Detected = %d, want 26", res.Detected)
	}
	if !res.Truncated {
		t.Error("Truncated should be set when more sprites than the limit are found")
	}
	if len(codec.SavedPaths()) != 5 {
		t.Errorf("wrote %d files, want 5", len(codec.SavedPaths()))
	}
}

func TestExtractSmart_NoLimit(t *testing.T) {
	s := testutil.PokeballSheet(800, 400)
	ex := NewExtractor(testutil.NewMockCodec(s), "out")
	ex.Limit = 0

	res, err := ex.ExtractSmart(context.Background(), s, Grid{8, 4})
	if err != nil {
		t.Fatal(err)
	}
	if res.Count() != 26 || res.Truncated {
		t.Errorf("Count() = %d, Truncated = %v; want 26, false", res.Count(), res.Truncated)
	}
}

func TestExtractSmart_DegenerateSheet(t *testing.T) {
	s := testutil.GraySheet(7, 3)
	codec := testutil.NewMockCodec(s)

	g := DefaultSelector().Select(s.Width(), s.Height())
	res, err := NewExtractor(codec, "out").ExtractSmart(context.Background(), s, g)
	if err != nil {
		t.Fatalf("degenerate sheet should not fail: %v", err)
	}
	if res.Count() != 0 || res.Detected != 0 {
		t.Errorf("Count() = %d, Detected = %d; want 0", res.Count(), res.Detected)
	}
}

func TestExtract_SaveErrorStopsRun(t *testing.T) {
	s := testutil.PokeballSheet(800, 400)
	codec := testutil.NewMockCodec(s)
	codec.SaveErr = errors.New("disk full")
	codec.FailAt = 3

	res, err := NewExtractor(codec, "out").ExtractSmart(context.Background(), s, Grid{8, 4})
	var se *SaveError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SaveError", err)
	}
	if se.Index != 3 {
		t.Errorf("SaveError.Index = %d, want 3", se.Index)
	}
	if !errors.Is(err, codec.SaveErr) {
		t.Error("SaveError should wrap the codec error")
	}
	if res.Count() != 2 {
		t.Errorf("partial Count() = %d, want 2", res.Count())
	}
}

func TestExtract_OutputDirError(t *testing.T) {
	s := testutil.PokeballSheet(800, 400)
	codec := testutil.NewMockCodec(s)
	codec.DirErr = errors.New("read-only filesystem")

	_, err := NewExtractor(codec, "out").ExtractFixed(context.Background(), s, DefaultFixedLayout())
	var se *SaveError
	if !errors.As(err, &se) || se.Index != 0 {
		t.Fatalf("err = %v, want *SaveError with Index 0", err)
	}
	if len(codec.SavedPaths()) != 0 {
		t.Error("nothing should be written when the output dir fails")
	}
}

func TestExtract_ContextCancelled(t *testing.T) {
	s := testutil.PokeballSheet(800, 400)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractor(testutil.NewMockCodec(s), "out").ExtractSmart(ctx, s, Grid{8, 4})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

type recordingListener struct {
	grid    Grid
	saved   []int
	skipped []int
}

func (r *recordingListener) GridChosen(g Grid, _, _ int)              { r.grid = g }
func (r *recordingListener) SpriteSaved(index int, _ string)          { r.saved = append(r.saved, index) }
func (r *recordingListener) CellSkipped(index int, _ image.Rectangle) { r.skipped = append(r.skipped, index) }

func TestExtract_NotifiesListener(t *testing.T) {
	s := testutil.PokeballSheet(800, 400)
	l := &recordingListener{}
	ex := NewExtractor(testutil.NewMockCodec(s), "out")
	ex.Listener = l

	if _, err := ex.ExtractSmart(context.Background(), s, Grid{8, 4}); err != nil {
		t.Fatal(err)
	}
	if l.grid != (Grid{8, 4}) {
		t.Errorf("listener grid = %v, want 8x4", l.grid)
	}
	if len(l.saved) != 26 || l.saved[0] != 1 || l.saved[25] != 26 {
		t.Errorf("listener saw %v", l.saved)
	}
}

func TestContentCells(t *testing.T) {
	s := testutil.PokeballSheet(800, 400)
	if got := len(ContentCells(s, Grid{8, 4}, DefaultThresholds())); got != 26 {
		t.Errorf("ContentCells = %d, want 26", got)
	}
}

// writeSheet encodes s as a PNG file under dir.
func writeSheet(t *testing.T, dir string, s *sheet.Sheet) string {
	t.Helper()
	path := filepath.Join(dir, "pokeballs.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, s.Image); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEndToEnd_GridAndSmart(t *testing.T) {
	dir := t.TempDir()
	input := writeSheet(t, dir, testutil.PokeballSheet(800, 400))

	codec := &sheet.FileCodec{}
	s, err := codec.Load(input)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	gridOut := filepath.Join(dir, "final_pokeball_sprites")
	res, err := NewExtractor(codec, gridOut).ExtractFixed(context.Background(), s, DefaultFixedLayout())
	if err != nil {
		t.Fatalf("ExtractFixed: %v", err)
	}
	if res.Count() != 26 {
		t.Errorf("grid extractor saved %d, want 26", res.Count())
	}
	for i := 1; i <= 26; i++ {
		p := filepath.Join(gridOut, fmt.Sprintf("pokeball_%02d.png", i))
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing %s", p)
		}
	}
	entries, err := os.ReadDir(gridOut)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 26 {
		t.Errorf("grid output has %d files, want 26", len(entries))
	}

	smartOut := filepath.Join(dir, "user_pokeball_sprites")
	g := DefaultSelector().Select(s.Width(), s.Height())
	res, err = NewExtractor(codec, smartOut).ExtractSmart(context.Background(), s, g)
	if err != nil {
		t.Fatalf("ExtractSmart: %v", err)
	}
	if res.Grid != (Grid{8, 4}) {
		t.Errorf("smart grid = %v, want 8x4", res.Grid)
	}
	if res.Count() != 26 {
		t.Errorf("smart extractor saved %d, want 26", res.Count())
	}

	sprite, err := codec.Load(filepath.Join(smartOut, "pokeball_26.png"))
	if err != nil {
		t.Fatalf("reload sprite: %v", err)
	}
	if sprite.Size() != "100x100" {
		t.Errorf("sprite size = %s, want 100x100", sprite.Size())
	}
}

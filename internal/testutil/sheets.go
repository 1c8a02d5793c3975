package testutil

import (
	"image"
	"image/color"

	"github.com/JPM1118/sheetcut/internal/sheet"
)

var (
	// Gray is the backdrop assumed for colour-only sheets.
	Gray = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	// Red is a sprite colour far from Gray.
	Red = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
)

// Fill paints r on img with c.
func Fill(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// PokeballSheet builds a w×h RGBA sheet laid out as an 8x4 grid: three
// full rows of sprites and two sprites centred in the bottom row. Each
// sprite is an opaque square inset from its cell; the rest is transparent.
func PokeballSheet(w, h int) *sheet.Sheet {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cw, ch := w/8, h/4
	for row := 0; row < 3; row++ {
		for col := 0; col < 8; col++ {
			Fill(img, inset(image.Rect(col*cw, row*ch, col*cw+cw, row*ch+ch)), Red)
		}
	}
	left := (w - 2*cw) / 2
	for i := 0; i < 2; i++ {
		x := left + i*cw
		Fill(img, inset(image.Rect(x, 3*ch, x+cw, 4*ch)), Red)
	}
	return &sheet.Sheet{Path: "pokeballs.png", Format: "png", Image: img, Layout: sheet.LayoutRGBA}
}

// GraySheet builds a colour-only sheet filled with the gray backdrop.
func GraySheet(w, h int) *sheet.Sheet {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	Fill(img, img.Rect, Gray)
	return &sheet.Sheet{Path: "gray.png", Format: "png", Image: img, Layout: sheet.LayoutRGB}
}

func inset(r image.Rectangle) image.Rectangle {
	dx, dy := r.Dx()/5, r.Dy()/5
	return image.Rect(r.Min.X+dx, r.Min.Y+dy, r.Max.X-dx, r.Max.Y-dy)
}

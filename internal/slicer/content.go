package slicer

import (
	"image"
	"image/color"

	"github.com/JPM1118/sheetcut/internal/sheet"
)

// Thresholds tune the content test. They are heuristics, not guarantees:
// a faint sprite on a near-background colour can be missed.
type Thresholds struct {
	// Alpha: an RGBA cell has content when any pixel's alpha exceeds this (0-255).
	Alpha int
	// Deviation: an RGB cell has content when any pixel's summed absolute
	// per-channel distance from Background exceeds this (0-765).
	Deviation int
	// Background is the assumed backdrop of colour-only sheets.
	Background color.NRGBA
}

const (
	DefaultAlphaThreshold     = 50
	DefaultDeviationThreshold = 50
)

// DefaultBackground is the mid-gray backdrop assumed for colour-only sheets.
var DefaultBackground = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

// DefaultThresholds returns the stock content-test thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Alpha:      DefaultAlphaThreshold,
		Deviation:  DefaultDeviationThreshold,
		Background: DefaultBackground,
	}
}

// HasContent reports whether img holds anything other than background.
// For RGBA layouts only alpha is considered; for RGB layouts only colour.
// An empty image has no content.
func HasContent(img *image.NRGBA, layout sheet.Layout, th Thresholds) bool {
	b := img.Rect
	if b.Empty() {
		return false
	}

	bg := th.Background
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		row := img.Pix[off : off+b.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			if layout == sheet.LayoutRGBA {
				if int(row[i+3]) > th.Alpha {
					return true
				}
				continue
			}
			d := absDiff(row[i], bg.R) + absDiff(row[i+1], bg.G) + absDiff(row[i+2], bg.B)
			if d > th.Deviation {
				return true
			}
		}
	}
	return false
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

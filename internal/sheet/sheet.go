package sheet

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Layout describes which channels a decoded sheet carries.
type Layout int

const (
	// LayoutRGB is colour only. Content is found by distance from a background colour.
	LayoutRGB Layout = iota
	// LayoutRGBA is colour plus transparency. Content is found by alpha.
	LayoutRGBA
)

func (l Layout) String() string {
	if l == LayoutRGBA {
		return "RGBA"
	}
	return "RGB"
}

// Channels returns the number of channels in the layout.
func (l Layout) Channels() int {
	if l == LayoutRGBA {
		return 4
	}
	return 3
}

// Sheet is a decoded sprite sheet. Pixels are held as 8-bit
// non-premultiplied RGBA with the origin at (0, 0).
type Sheet struct {
	Path   string
	Format string
	Image  *image.NRGBA
	Layout Layout
}

// Width returns the sheet width in pixels.
func (s *Sheet) Width() int {
	return s.Image.Rect.Dx()
}

// Height returns the sheet height in pixels.
func (s *Sheet) Height() int {
	return s.Image.Rect.Dy()
}

// Size formats the sheet dimensions as "WxH".
func (s *Sheet) Size() string {
	return fmt.Sprintf("%dx%d", s.Width(), s.Height())
}

// Crop copies the region r into a new image with its origin at (0, 0).
// Parts of r outside the sheet are dropped; a region that does not overlap
// the sheet yields an empty image.
func (s *Sheet) Crop(r image.Rectangle) *image.NRGBA {
	r = r.Intersect(s.Image.Rect)
	if r.Empty() {
		return image.NewNRGBA(image.Rectangle{})
	}
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Copy(dst, image.Point{}, s.Image, r, draw.Src, nil)
	return dst
}

// New wraps an already decoded image as a Sheet.
func New(path string, img image.Image) *Sheet {
	return &Sheet{
		Path:   path,
		Image:  toNRGBA(img),
		Layout: layoutOf(img),
	}
}

// Decode reads an image in any registered format (PNG, JPEG, GIF, BMP,
// TIFF, WebP). path is recorded on the Sheet and in errors only.
func Decode(r io.Reader, path string) (*Sheet, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	s := New(path, img)
	s.Format = format
	return s, nil
}

// layoutOf reports RGBA for images that store straight alpha, and for any
// other image that is not fully opaque. Everything else is colour only.
func layoutOf(img image.Image) Layout {
	switch img.(type) {
	case *image.NRGBA, *image.NRGBA64:
		return LayoutRGBA
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && !o.Opaque() {
		return LayoutRGBA
	}
	return LayoutRGB
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, img, b, draw.Src, nil)
	return dst
}

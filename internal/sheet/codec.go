package sheet

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
)

// Codec loads sprite sheets and writes cropped sprites.
// FileCodec implements this interface. Tests can provide in-memory implementations.
type Codec interface {
	Load(path string) (*Sheet, error)
	Save(img image.Image, path string) error
	MkdirAll(dir string) error
}

// FileCodec reads and writes images on the local filesystem.
// Sprites are always written as PNG.
type FileCodec struct {
	// Compression selects the PNG compression level. Zero is png.DefaultCompression.
	Compression png.CompressionLevel
}

var _ Codec = (*FileCodec)(nil)

// DecodeError reports a sheet that could not be opened or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Load opens and decodes the image at path.
func (c *FileCodec) Load(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	return Decode(f, path)
}

// Save encodes img as PNG at path. The file is closed before Save returns.
func (c *FileCodec) Save(img image.Image, path string) (err error) {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("save %s: empty image (%dx%d)", path, b.Dx(), b.Dy())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	enc := png.Encoder{CompressionLevel: c.Compression}
	if err := enc.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// MkdirAll creates dir and any missing parents.
func (c *FileCodec) MkdirAll(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

// ErrNotFound is matched by errors.Is when none of the candidate inputs exist.
var ErrNotFound = errors.New("no input image found")

// NotFoundError lists the candidate paths that were probed.
type NotFoundError struct {
	Candidates []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s (tried %d candidates)", ErrNotFound, len(e.Candidates))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FindInput returns the first candidate that exists as a regular file,
// checked in order.
func FindInput(candidates []string) (string, error) {
	for _, name := range candidates {
		info, err := os.Stat(name)
		if err != nil || info.IsDir() {
			continue
		}
		return name, nil
	}
	return "", &NotFoundError{Candidates: candidates}
}

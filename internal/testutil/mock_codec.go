package testutil

import (
	"image"
	"sync"

	"github.com/JPM1118/sheetcut/internal/sheet"
)

// MockCodec implements sheet.Codec in memory for testing.
type MockCodec struct {
	mu      sync.Mutex
	Sheets  map[string]*sheet.Sheet
	LoadErr error
	SaveErr error
	DirErr  error
	// FailAt makes the Nth Save call (1-based) return SaveErr.
	// Zero fails every call while SaveErr is set.
	FailAt    int
	Paths     []string
	Images    map[string]image.Image
	Dirs      []string
	saveCalls int
}

var _ sheet.Codec = (*MockCodec)(nil)

// NewMockCodec returns a codec that serves the given sheets by path.
func NewMockCodec(sheets ...*sheet.Sheet) *MockCodec {
	m := &MockCodec{
		Sheets: make(map[string]*sheet.Sheet, len(sheets)),
		Images: make(map[string]image.Image),
	}
	for _, s := range sheets {
		m.Sheets[s.Path] = s
	}
	return m
}

func (m *MockCodec) Load(path string) (*sheet.Sheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, &sheet.DecodeError{Path: path, Err: m.LoadErr}
	}
	s, ok := m.Sheets[path]
	if !ok {
		return nil, &sheet.DecodeError{Path: path, Err: sheet.ErrNotFound}
	}
	return s, nil
}

func (m *MockCodec) Save(img image.Image, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	if m.SaveErr != nil && (m.FailAt == 0 || m.FailAt == m.saveCalls) {
		return m.SaveErr
	}
	if m.Images == nil {
		m.Images = make(map[string]image.Image)
	}
	m.Paths = append(m.Paths, path)
	m.Images[path] = img
	return nil
}

func (m *MockCodec) MkdirAll(dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DirErr != nil {
		return m.DirErr
	}
	m.Dirs = append(m.Dirs, dir)
	return nil
}

// SavedPaths returns the saved paths in write order.
func (m *MockCodec) SavedPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Paths...)
}

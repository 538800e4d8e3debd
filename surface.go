package gridimg

import (
	"image"
	"sync"

	"github.com/fogleman/gg"
)

// Surface is the pixel buffer a render draws on. Each render builds a fresh
// buffer and swaps it in, so readers always see a complete frame and nothing
// from an earlier render survives into the next one.
type Surface struct {
	drawMu sync.Mutex // serializes renders (faces are not concurrency safe)
	faces  *faceCache

	mu sync.RWMutex
	dc *gg.Context
}

// NewSurface creates an empty surface; it gets its size from the first render
func NewSurface() *Surface {
	return &Surface{faces: newFaceCache(DefaultFaceCacheSize)}
}

// Bounds returns the size of the last rendered frame (zero before the first render)
func (s *Surface) Bounds() Bounds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dc == nil {
		return Bounds{}
	}
	return Bounds{Width: s.dc.Width(), Height: s.dc.Height()}
}

// Image returns the last rendered frame or nil before the first render.
// The returned image is never written to again; treat it as read-only.
func (s *Surface) Image() *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dc == nil {
		return nil
	}
	if rgba, ok := s.dc.Image().(*image.RGBA); ok {
		return rgba
	}
	return nil
}

// Ready reports whether a frame has been rendered
func (s *Surface) Ready() bool {
	return s.Image() != nil
}

// swap installs a finished frame
func (s *Surface) swap(dc *gg.Context) {
	s.mu.Lock()
	s.dc = dc
	s.mu.Unlock()
}

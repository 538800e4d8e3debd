package gridimg

import (
	"fmt"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Constants for label fonts
const (
	DefaultFaceCacheSize = 16   // Maximum number of cached font faces per surface
	CaptionFontSize      = 16.0 // Placeholder caption size in pixels
	minFontSize          = 1.0
)

var (
	labelFont     *truetype.Font
	labelFontErr  error
	labelFontOnce sync.Once
)

// loadLabelFont parses the embedded Go Regular font once
func loadLabelFont() (*truetype.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = truetype.Parse(goregular.TTF)
		if labelFontErr != nil {
			labelFontErr = fmt.Errorf("failed to parse label font: %w", labelFontErr)
		}
	})
	return labelFont, labelFontErr
}

// faceCache keeps recently used faces keyed by size with LRU eviction.
// Faces hold glyph caches and are not safe for concurrent use, so every
// Surface owns its own cache.
type faceCache struct {
	faces       map[float64]font.Face
	accessOrder []float64 // most recently used first
	maxSize     int
}

func newFaceCache(size int) *faceCache {
	if size <= 0 {
		size = DefaultFaceCacheSize
	}
	return &faceCache{
		faces:   make(map[float64]font.Face),
		maxSize: size,
	}
}

// face returns a face for the given pixel size, creating it on a miss
func (fc *faceCache) face(size float64) (font.Face, error) {
	// Quantize so that tiny float differences share a face
	size = math.Max(math.Round(size*4)/4, minFontSize)

	if f, ok := fc.faces[size]; ok {
		fc.touch(size)
		return f, nil
	}

	ttf, err := loadLabelFont()
	if err != nil {
		return nil, err
	}

	for len(fc.faces) >= fc.maxSize {
		fc.evictLRU()
	}

	f := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	fc.faces[size] = f
	fc.accessOrder = append([]float64{size}, fc.accessOrder...)
	return f, nil
}

// touch moves size to the front of the access order
func (fc *faceCache) touch(size float64) {
	for i, s := range fc.accessOrder {
		if s == size {
			fc.accessOrder = append(fc.accessOrder[:i], fc.accessOrder[i+1:]...)
			break
		}
	}
	fc.accessOrder = append([]float64{size}, fc.accessOrder...)
}

// evictLRU removes the least recently used face
func (fc *faceCache) evictLRU() {
	if len(fc.accessOrder) == 0 {
		return
	}
	lru := fc.accessOrder[len(fc.accessOrder)-1]
	fc.accessOrder = fc.accessOrder[:len(fc.accessOrder)-1]
	if f, ok := fc.faces[lru]; ok {
		f.Close()
	}
	delete(fc.faces, lru)
}

// len returns the number of cached faces
func (fc *faceCache) len() int {
	return len(fc.faces)
}

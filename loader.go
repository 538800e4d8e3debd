package gridimg

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Limits guarding against pathological inputs
const (
	MaxDimension = 16384            // Maximum width or height in pixels
	MaxPixels    = 64 * 1024 * 1024 // Maximum total pixel count
	MaxFileSize  = 256 << 20        // Maximum encoded size in bytes
)

// SourceImage is a decoded image together with its natural size
type SourceImage struct {
	Width  int
	Height int
	Image  image.Image
	Format string
}

// NewSourceImage wraps an already decoded image
func NewSourceImage(img image.Image) *SourceImage {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	return &SourceImage{Width: b.Dx(), Height: b.Dy(), Image: img}
}

// MIMEType returns the image/* type of the decoded format
func (si *SourceImage) MIMEType() string {
	if si == nil || si.Format == "" {
		return ""
	}
	return "image/" + si.Format
}

// Decode reads an encoded image from r. Every failure wraps ErrDecode.
func Decode(r io.Reader) (*SourceImage, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", ErrDecode)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrDecode, MaxFileSize)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := checkDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	si := NewSourceImage(img)
	si.Format = format
	if si.Width <= 0 || si.Height <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrDecode, ErrInvalidImage)
	}
	return si, nil
}

func checkDimensions(w, h int) error {
	switch {
	case w <= 0 || h <= 0:
		return fmt.Errorf("%w: %w: %dx%d", ErrDecode, ErrInvalidImage, w, h)
	case w > MaxDimension || h > MaxDimension:
		return fmt.Errorf("%w: %dx%d exceeds %d pixels per side", ErrDecode, w, h, MaxDimension)
	case w*h > MaxPixels:
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrDecode, w, h, MaxPixels)
	}
	return nil
}

// IsImageFile reports whether the file name has an image extension we can decode
func IsImageFile(path string) bool {
	if _, err := imaging.FormatFromFilename(path); err == nil {
		return true
	}
	return strings.EqualFold(filepath.Ext(path), ".webp")
}

// OpenFile decodes the image at path
func OpenFile(path string) (*SourceImage, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrDecode)
	}
	if !IsImageFile(path) {
		return nil, fmt.Errorf("%w: %s is not an image file", ErrDecode, filepath.Base(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open file: %v", ErrDecode, err)
	}
	defer f.Close()
	return Decode(f)
}

// LoadResult is the completion of one asynchronous decode
type LoadResult struct {
	Seq   uint64
	Image *SourceImage
	Err   error
}

// Loader decodes images in the background. Every request is numbered; only
// the most recent request is current, older completions are stale and should
// be dropped by the consumer.
type Loader struct {
	seq atomic.Uint64
}

// Load starts decoding r and returns a channel that yields exactly one result
func (l *Loader) Load(r io.Reader) <-chan LoadResult {
	return l.start(func() (*SourceImage, error) { return Decode(r) })
}

// LoadFile starts decoding the file at path
func (l *Loader) LoadFile(path string) <-chan LoadResult {
	return l.start(func() (*SourceImage, error) { return OpenFile(path) })
}

func (l *Loader) start(decode func() (*SourceImage, error)) <-chan LoadResult {
	seq := l.seq.Add(1)
	ch := make(chan LoadResult, 1)
	go func() {
		defer close(ch)
		img, err := decode()
		ch <- LoadResult{Seq: seq, Image: img, Err: err}
	}()
	return ch
}

// Pending returns the sequence number of the latest request
func (l *Loader) Pending() uint64 {
	return l.seq.Load()
}

// IsCurrent reports whether seq belongs to the latest request
func (l *Loader) IsCurrent(seq uint64) bool {
	return seq == l.seq.Load()
}

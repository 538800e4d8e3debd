package gridimg

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// DownloadFilename is the name exported PNG files are saved under
const DownloadFilename = "grid-overlay-image.png"

// EncodePNG encodes the last rendered frame. The surface is only read.
func EncodePNG(s *Surface) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: %w", ErrExport, ErrSurfaceUnavailable)
	}
	img := s.Image()
	if img == nil {
		return nil, fmt.Errorf("%w: nothing rendered yet", ErrExport)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.DefaultCompression)); err != nil {
		return nil, fmt.Errorf("%w: failed to encode png: %v", ErrExport, err)
	}
	return buf.Bytes(), nil
}

// SavePNG writes the frame to dir/DownloadFilename and returns the path.
// The file is written to a temporary name first so a failed export never
// leaves a truncated image behind.
func SavePNG(s *Surface, dir string) (string, error) {
	data, err := EncodePNG(s)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, ".gridimg-*.png")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}

	path := filepath.Join(dir, DownloadFilename)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}
	return path, nil
}

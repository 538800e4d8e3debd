package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"

	"github.com/makeworld-the-better-one/dither/v2"
	"github.com/mattn/go-sixel"
	"github.com/soniakeys/quant/median"
)

// SixelRenderer implements the Sixel protocol
type SixelRenderer struct{}

// Protocol returns the protocol type
func (r *SixelRenderer) Protocol() Protocol {
	return Sixel
}

// Render encodes img as a sixel image
func (r *SixelRenderer) Render(img image.Image, opts Options) (string, error) {
	maxW, maxH := pixelBox(cellBox(opts))
	processed := fitImage(img, maxW, maxH)

	switch {
	case opts.OptimizePalette:
		processed = optimizePalette(processed, opts.Palette)
	case opts.Dither:
		processed = ditherImage(processed, palette.WebSafe, dither.FloydSteinberg)
	}

	var buf bytes.Buffer
	enc := sixel.NewEncoder(&buf)
	if opts.Palette > 0 {
		enc.Colors = min(max(opts.Palette, 2), 256)
	}
	// palette work above already dithered the image
	enc.Dither = opts.Dither && !opts.OptimizePalette

	if err := enc.Encode(processed); err != nil {
		return "", fmt.Errorf("failed to encode sixel: %w", err)
	}
	if buf.Len() == 0 {
		return "", fmt.Errorf("sixel encoding produced empty output")
	}
	return wrapTmuxPassthrough(buf.String()), nil
}

// optimizePalette reduces img to a median cut palette with Stucki dithering
func optimizePalette(img image.Image, size int) image.Image {
	if size <= 0 {
		size = 256
	}
	pal := median.Quantizer(size).Palette(img).ColorPalette()
	return ditherImage(img, pal, dither.Stucki)
}

func ditherImage(img image.Image, pal []color.Color, matrix dither.ErrorDiffusionMatrix) image.Image {
	if len(pal) == 0 {
		return img
	}
	d := dither.NewDitherer(pal)
	d.Matrix = matrix
	if out := d.Dither(img); out != nil {
		return out
	}
	return img
}

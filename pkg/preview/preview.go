/*
Package preview shows rendered grid images inline in the terminal using the
Kitty, Sixel or iTerm2 graphics protocols, or unicode halfblocks as a fallback.

	out, err := preview.Render(surface.Image(), preview.Options{Width: 80, Height: 40})
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Print(out)
*/
package preview

import (
	"fmt"
	"image"
	"io"
)

// Options controls how an image is placed in the terminal
type Options struct {
	Width    int // target width in character cells, 0 for the window width
	Height   int // target height in character cells, 0 for the window height
	Protocol Protocol
	Dither   bool

	// Sixel palette size (2-256) and median cut optimization
	Palette         int
	OptimizePalette bool
}

// Renderer is implemented by every protocol
type Renderer interface {
	// Render generates the escape sequence for displaying the image
	Render(img image.Image, opts Options) (string, error)
	// Protocol returns the protocol type
	Protocol() Protocol
}

// GetRenderer returns a renderer for the specified protocol
func GetRenderer(protocol Protocol) (Renderer, error) {
	switch protocol {
	case Auto:
		return GetRenderer(DetectProtocol())
	case Kitty:
		return &KittyRenderer{}, nil
	case Sixel:
		return &SixelRenderer{}, nil
	case ITerm2:
		return &ITerm2Renderer{}, nil
	case Halfblocks:
		return &HalfblocksRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported protocol: %s", protocol)
	}
}

// Render renders img with the protocol chosen in opts
func Render(img image.Image, opts Options) (string, error) {
	if img == nil {
		return "", fmt.Errorf("no image to preview")
	}
	r, err := GetRenderer(opts.Protocol)
	if err != nil {
		return "", err
	}
	return r.Render(img, opts)
}

// Print renders img and writes it to w
func Print(w io.Writer, img image.Image, opts Options) error {
	out, err := Render(img, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// KittyRenderer implements the kitty graphics protocol (direct PNG transmission)
type KittyRenderer struct{}

// Protocol returns the protocol type
func (r *KittyRenderer) Protocol() Protocol {
	return Kitty
}

// Render transmits img as PNG in base64 chunks and places it at the cursor
func (r *KittyRenderer) Render(img image.Image, opts Options) (string, error) {
	maxW, maxH := pixelBox(cellBox(opts))
	fitted := fitImage(img, maxW, maxH)

	var buf bytes.Buffer
	if err := png.Encode(&buf, fitted); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	b := fitted.Bounds()
	c, rr := cellsFor(b.Dx(), b.Dy())
	chunks := ChunkedBase64Encode(buf.Bytes(), RawChunkSize)

	var out strings.Builder
	for i, chunk := range chunks {
		more := 0
		if i < len(chunks)-1 {
			more = 1
		}
		var seq string
		if i == 0 {
			seq = fmt.Sprintf("\x1b_Ga=T,f=100,q=2,c=%d,r=%d,m=%d;%s\x1b\\", c, rr, more, chunk)
		} else {
			seq = fmt.Sprintf("\x1b_Gm=%d;%s\x1b\\", more, chunk)
		}
		out.WriteString(wrapTmuxPassthrough(seq))
	}
	return out.String(), nil
}

// ClearAll returns the sequence deleting every visible kitty image
func (r *KittyRenderer) ClearAll() string {
	return wrapTmuxPassthrough("\x1b_Ga=d,q=2\x1b\\")
}

package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// ITerm2Renderer implements the iTerm2 inline images protocol
type ITerm2Renderer struct{}

// Protocol returns the protocol type
func (r *ITerm2Renderer) Protocol() Protocol {
	return ITerm2
}

// Render sends img as an inline PNG file. PNG keeps the thin grid lines crisp.
func (r *ITerm2Renderer) Render(img image.Image, opts Options) (string, error) {
	maxW, maxH := pixelBox(cellBox(opts))
	fitted := fitImage(img, maxW, maxH)

	var buf bytes.Buffer
	if err := png.Encode(&buf, fitted); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	data := buf.Bytes()
	b := fitted.Bounds()

	params := []string{
		"inline=1",
		fmt.Sprintf("size=%d", len(data)),
		fmt.Sprintf("width=%dpx", b.Dx()),
		fmt.Sprintf("height=%dpx", b.Dy()),
		"preserveAspectRatio=1",
	}
	seq := fmt.Sprintf("\x1b]1337;File=%s:%s\x07", strings.Join(params, ";"), Base64Encode(data))
	return wrapTmuxPassthrough(seq), nil
}

package preview

import (
	"image"

	"github.com/charmbracelet/x/mosaic"
)

// HalfblocksRenderer draws images with unicode half blocks via mosaic
type HalfblocksRenderer struct{}

// Protocol returns the protocol type
func (r *HalfblocksRenderer) Protocol() Protocol {
	return Halfblocks
}

// Render fits img into the cell box. Each cell shows one pixel column and
// two pixel rows, so the height budget is doubled before fitting.
func (r *HalfblocksRenderer) Render(img image.Image, opts Options) (string, error) {
	cols, rows := halfblockCells(img.Bounds(), opts)
	m := mosaic.New().Dither(opts.Dither).Width(cols).Height(rows)
	return m.Render(img), nil
}

func halfblockCells(b image.Rectangle, opts Options) (cols, rows int) {
	maxCols, maxRows := cellBox(opts)
	srcW, srcH := float64(b.Dx()), float64(b.Dy())
	if srcW <= 0 || srcH <= 0 {
		return maxCols, maxRows
	}
	ratio := min(float64(maxCols)/srcW, float64(maxRows)*2/srcH)
	cols = max(int(srcW*ratio), 1)
	rows = max(int(srcH*ratio/2), 1)
	return cols, rows
}

package preview

import (
	"image"

	"github.com/blacktop/go-gridimg/pkg/csi"
	"github.com/nfnt/resize"
)

// cellBox resolves the requested size in cells, defaulting to the window
func cellBox(opts Options) (cols, rows int) {
	cols, rows = opts.Width, opts.Height
	if cols <= 0 || rows <= 0 {
		winCols, winRows := csi.WindowSize()
		if cols <= 0 {
			cols = winCols
		}
		if rows <= 0 {
			rows = winRows
		}
	}
	return cols, rows
}

// pixelBox converts a cell box into pixels using the terminal font size
func pixelBox(cols, rows int) (width, height int) {
	cellW, cellH := csi.CellSize()
	return cols * cellW, rows * cellH
}

// fitImage shrinks img to fit inside maxW x maxH keeping its aspect ratio.
// Images that already fit are returned unchanged.
func fitImage(img image.Image, maxW, maxH int) image.Image {
	if maxW <= 0 || maxH <= 0 {
		return img
	}
	b := img.Bounds()
	interp := resize.NearestNeighbor
	if b.Dx()*b.Dy() > maxW*maxH*4 {
		interp = resize.Bilinear
	}
	return resize.Thumbnail(uint(maxW), uint(maxH), img, interp)
}

// cellsFor returns how many cells an image of the given pixel size occupies
func cellsFor(width, height int) (cols, rows int) {
	cellW, cellH := csi.CellSize()
	return (width + cellW - 1) / cellW, (height + cellH - 1) / cellH
}

package gridimg

import (
	"fmt"
	"math"
	"strconv"
)

// DefaultCanvas is the canvas used when stretch mode has no image to size from
var DefaultCanvas = Bounds{Width: 300, Height: 300}

// Bounds is a width/height pair in pixels
type Bounds struct {
	Width  int
	Height int
}

func (b Bounds) String() string {
	return fmt.Sprintf("%dx%d", b.Width, b.Height)
}

// Valid reports whether both sides are positive
func (b Bounds) Valid() bool {
	return b.Width > 0 && b.Height > 0
}

// Point is a position on the output canvas
type Point struct {
	X, Y float64
}

// Orientation of a grid line
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// GridLine is a single straight grid line. Coordinate is the x of a vertical
// line or the y of a horizontal one; From/To are its end points.
type GridLine struct {
	Orientation Orientation
	Coordinate  float64
	From, To    Point
}

// DiagonalSegment runs from the top-left to the bottom-right corner of a cell
type DiagonalSegment struct {
	Row, Col   int
	Start, End Point
}

// Label is a 1-based cell number anchored at the cell's center
type Label struct {
	Text     string
	Row, Col int
	Center   Point
}

// Geometry is the fully resolved layout of one render. It is derived from
// its inputs every time and never updated in place.
type Geometry struct {
	OutputWidth  int
	OutputHeight int
	CellWidth    float64
	CellHeight   float64
	OffsetX      float64
	OffsetY      float64
	FontSize     float64
	GridSize     int
	FitMode      FitMode
}

// ComputeGeometry lays out the canvas and grid for img (nil means no image)
// inside container using p. The grid size is clamped to [1,10] and the output
// never exceeds MaxDimension per side or MaxPixels in total.
func ComputeGeometry(img *SourceImage, container Bounds, p Params) (Geometry, error) {
	n := min(max(p.GridSize, MinGridSize), MaxGridSize)
	if img != nil && (img.Width <= 0 || img.Height <= 0) {
		return Geometry{}, fmt.Errorf("%w: %dx%d", ErrInvalidImage, img.Width, img.Height)
	}

	g := Geometry{GridSize: n, FitMode: p.FitMode}

	switch p.FitMode {
	case FitContain:
		if !container.Valid() {
			container = DefaultCanvas
		}
		container = limitBounds(container)
		if img == nil {
			g.OutputWidth, g.OutputHeight = container.Width, container.Height
		} else {
			scale := math.Min(
				float64(container.Width)/float64(img.Width),
				float64(container.Height)/float64(img.Height),
			)
			g.OutputWidth = max(int(math.Round(float64(img.Width)*scale)), 1)
			g.OutputHeight = max(int(math.Round(float64(img.Height)*scale)), 1)
		}
		cell := float64(min(g.OutputWidth, g.OutputHeight)) / float64(n)
		g.CellWidth, g.CellHeight = cell, cell
		g.OffsetX = (float64(g.OutputWidth) - cell*float64(n)) / 2
		g.OffsetY = (float64(g.OutputHeight) - cell*float64(n)) / 2
		g.FontSize = cell / 3
	default:
		out := DefaultCanvas
		if img != nil {
			out = limitBounds(Bounds{Width: img.Width, Height: img.Height})
		}
		g.OutputWidth, g.OutputHeight = out.Width, out.Height
		g.CellWidth = float64(g.OutputWidth) / float64(n)
		g.CellHeight = float64(g.OutputHeight) / float64(n)
		g.FontSize = math.Min(g.CellWidth, g.CellHeight) / 3
	}

	return g, nil
}

// limitBounds shrinks b, keeping its aspect ratio, until it fits within
// MaxDimension per side and MaxPixels in total
func limitBounds(b Bounds) Bounds {
	scale := math.Min(1, math.Min(
		float64(MaxDimension)/float64(b.Width),
		float64(MaxDimension)/float64(b.Height),
	))
	if area := float64(b.Width) * float64(b.Height) * scale * scale; area > MaxPixels {
		scale *= math.Sqrt(MaxPixels / area)
	}
	if scale >= 1 {
		return b
	}
	// the epsilon absorbs float error so exact limits are not lost to truncation
	return Bounds{
		Width:  max(int(math.Floor(float64(b.Width)*scale+1e-6)), 1),
		Height: max(int(math.Floor(float64(b.Height)*scale+1e-6)), 1),
	}
}

// Scale returns the factor applied to an image of the given natural width
func (g Geometry) Scale(naturalWidth int) float64 {
	if naturalWidth <= 0 {
		return 1
	}
	return float64(g.OutputWidth) / float64(naturalWidth)
}

// GridWidth is the horizontal extent covered by the cells
func (g Geometry) GridWidth() float64 { return g.CellWidth * float64(g.GridSize) }

// GridHeight is the vertical extent covered by the cells
func (g Geometry) GridHeight() float64 { return g.CellHeight * float64(g.GridSize) }

// lineRange returns the first and last line index for the fit mode. Contain
// draws the border lines too; stretch only draws lines between cells.
func (g Geometry) lineRange() (first, last int) {
	if g.FitMode == FitContain {
		return 0, g.GridSize
	}
	return 1, g.GridSize - 1
}

// VerticalLines returns the vertical grid lines from left to right
func (g Geometry) VerticalLines() []GridLine {
	first, last := g.lineRange()
	lines := make([]GridLine, 0, max(last-first+1, 0))
	for i := first; i <= last; i++ {
		x := g.OffsetX + float64(i)*g.CellWidth
		lines = append(lines, GridLine{
			Orientation: Vertical,
			Coordinate:  x,
			From:        Point{X: x, Y: g.OffsetY},
			To:          Point{X: x, Y: g.OffsetY + g.GridHeight()},
		})
	}
	return lines
}

// HorizontalLines returns the horizontal grid lines from top to bottom
func (g Geometry) HorizontalLines() []GridLine {
	first, last := g.lineRange()
	lines := make([]GridLine, 0, max(last-first+1, 0))
	for i := first; i <= last; i++ {
		y := g.OffsetY + float64(i)*g.CellHeight
		lines = append(lines, GridLine{
			Orientation: Horizontal,
			Coordinate:  y,
			From:        Point{X: g.OffsetX, Y: y},
			To:          Point{X: g.OffsetX + g.GridWidth(), Y: y},
		})
	}
	return lines
}

// Lines returns all vertical lines followed by all horizontal lines
func (g Geometry) Lines() []GridLine {
	return append(g.VerticalLines(), g.HorizontalLines()...)
}

// CellOrigin returns the top-left corner of cell (row, col)
func (g Geometry) CellOrigin(row, col int) Point {
	return Point{
		X: g.OffsetX + float64(col)*g.CellWidth,
		Y: g.OffsetY + float64(row)*g.CellHeight,
	}
}

// CellCenter returns the midpoint of cell (row, col)
func (g Geometry) CellCenter(row, col int) Point {
	o := g.CellOrigin(row, col)
	return Point{X: o.X + g.CellWidth/2, Y: o.Y + g.CellHeight/2}
}

// Diagonals returns one top-left to bottom-right segment per cell in row-major order
func (g Geometry) Diagonals() []DiagonalSegment {
	segs := make([]DiagonalSegment, 0, g.GridSize*g.GridSize)
	for row := range g.GridSize {
		for col := range g.GridSize {
			start := g.CellOrigin(row, col)
			segs = append(segs, DiagonalSegment{
				Row:   row,
				Col:   col,
				Start: start,
				End:   Point{X: start.X + g.CellWidth, Y: start.Y + g.CellHeight},
			})
		}
	}
	return segs
}

// Labels returns the cell numbers 1..n² in row-major order
func (g Geometry) Labels() []Label {
	labels := make([]Label, 0, g.GridSize*g.GridSize)
	for row := range g.GridSize {
		for col := range g.GridSize {
			labels = append(labels, Label{
				Text:   strconv.Itoa(row*g.GridSize + col + 1),
				Row:    row,
				Col:    col,
				Center: g.CellCenter(row, col),
			})
		}
	}
	return labels
}

package gridimg

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sourceOf(w, h int) *SourceImage {
	return &SourceImage{Width: w, Height: h}
}

func paramsWith(n int, mode FitMode) Params {
	p := DefaultParams()
	p.GridSize = n
	p.FitMode = mode
	return p
}

func TestComputeGeometry(t *testing.T) {
	tests := []struct {
		name       string
		img        *SourceImage
		container  Bounds
		params     Params
		wantWidth  int
		wantHeight int
		wantCellW  float64
		wantCellH  float64
		wantOffX   float64
		wantOffY   float64
		wantFont   float64
	}{
		{
			name:       "Stretch uses natural size",
			img:        sourceOf(800, 400),
			params:     paramsWith(4, FitStretch),
			wantWidth:  800,
			wantHeight: 400,
			wantCellW:  200,
			wantCellH:  100,
			wantFont:   100.0 / 3,
		},
		{
			name:       "Stretch placeholder canvas",
			params:     paramsWith(4, FitStretch),
			wantWidth:  300,
			wantHeight: 300,
			wantCellW:  75,
			wantCellH:  75,
			wantFont:   25,
		},
		{
			name:       "Contain landscape image in square container",
			img:        sourceOf(800, 400),
			container:  Bounds{Width: 400, Height: 400},
			params:     paramsWith(4, FitContain),
			wantWidth:  400,
			wantHeight: 200,
			wantCellW:  50,
			wantCellH:  50,
			wantOffX:   100,
			wantOffY:   0,
			wantFont:   50.0 / 3,
		},
		{
			name:       "Contain portrait image",
			img:        sourceOf(300, 600),
			container:  Bounds{Width: 500, Height: 300},
			params:     paramsWith(3, FitContain),
			wantWidth:  150,
			wantHeight: 300,
			wantCellW:  50,
			wantCellH:  50,
			wantOffX:   0,
			wantOffY:   75,
			wantFont:   50.0 / 3,
		},
		{
			name:       "Contain upscales small image",
			img:        sourceOf(100, 100),
			container:  Bounds{Width: 400, Height: 200},
			params:     paramsWith(2, FitContain),
			wantWidth:  200,
			wantHeight: 200,
			wantCellW:  100,
			wantCellH:  100,
			wantFont:   100.0 / 3,
		},
		{
			name:       "Contain without image fills container",
			container:  Bounds{Width: 400, Height: 200},
			params:     paramsWith(4, FitContain),
			wantWidth:  400,
			wantHeight: 200,
			wantCellW:  50,
			wantCellH:  50,
			wantOffX:   100,
			wantFont:   50.0 / 3,
		},
		{
			name:       "Contain with invalid container falls back",
			params:     paramsWith(3, FitContain),
			wantWidth:  300,
			wantHeight: 300,
			wantCellW:  100,
			wantCellH:  100,
			wantFont:   100.0 / 3,
		},
		{
			name:       "Grid size below one treated as one",
			img:        sourceOf(120, 60),
			params:     paramsWith(0, FitStretch),
			wantWidth:  120,
			wantHeight: 60,
			wantCellW:  120,
			wantCellH:  60,
			wantFont:   20,
		},
		{
			name:       "Grid size above ten treated as ten",
			img:        sourceOf(200, 100),
			params:     paramsWith(1000, FitStretch),
			wantWidth:  200,
			wantHeight: 100,
			wantCellW:  20,
			wantCellH:  10,
			wantFont:   10.0 / 3,
		},
		{
			name:       "Contain wide container capped per side",
			img:        sourceOf(1000, 1),
			container:  Bounds{Width: 100000, Height: 100},
			params:     paramsWith(1, FitContain),
			wantWidth:  16000,
			wantHeight: 16,
			wantCellW:  16,
			wantCellH:  16,
			wantOffX:   (16000 - 16) / 2,
			wantFont:   16.0 / 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ComputeGeometry(tt.img, tt.container, tt.params)
			require.NoError(t, err)

			assert.Equal(t, tt.wantWidth, g.OutputWidth)
			assert.Equal(t, tt.wantHeight, g.OutputHeight)
			assert.InDelta(t, tt.wantCellW, g.CellWidth, 1e-9)
			assert.InDelta(t, tt.wantCellH, g.CellHeight, 1e-9)
			assert.InDelta(t, tt.wantOffX, g.OffsetX, 1e-9)
			assert.InDelta(t, tt.wantOffY, g.OffsetY, 1e-9)
			assert.InDelta(t, tt.wantFont, g.FontSize, 1e-9)
		})
	}
}

func TestComputeGeometryInvalidImage(t *testing.T) {
	for _, img := range []*SourceImage{sourceOf(0, 100), sourceOf(100, 0), sourceOf(-1, -1)} {
		_, err := ComputeGeometry(img, Bounds{Width: 100, Height: 100}, DefaultParams())
		assert.ErrorIs(t, err, ErrInvalidImage)
	}
}

func TestLineCounts(t *testing.T) {
	for n := MinGridSize; n <= MaxGridSize; n++ {
		stretch, err := ComputeGeometry(sourceOf(640, 480), Bounds{}, paramsWith(n, FitStretch))
		require.NoError(t, err)
		assert.Len(t, stretch.VerticalLines(), n-1, "stretch vertical n=%d", n)
		assert.Len(t, stretch.HorizontalLines(), n-1, "stretch horizontal n=%d", n)

		contain, err := ComputeGeometry(sourceOf(640, 480), Bounds{Width: 500, Height: 500}, paramsWith(n, FitContain))
		require.NoError(t, err)
		assert.Len(t, contain.VerticalLines(), n+1, "contain vertical n=%d", n)
		assert.Len(t, contain.HorizontalLines(), n+1, "contain horizontal n=%d", n)
		assert.Len(t, contain.Lines(), 2*(n+1))
	}
}

func TestStretchLinesSpanCanvas(t *testing.T) {
	g, err := ComputeGeometry(nil, Bounds{}, paramsWith(4, FitStretch))
	require.NoError(t, err)

	v := g.VerticalLines()
	require.Len(t, v, 3)
	for i, l := range v {
		x := float64(i+1) * 75
		assert.Equal(t, Vertical, l.Orientation)
		assert.InDelta(t, x, l.Coordinate, 1e-9)
		assert.Equal(t, Point{X: x, Y: 0}, l.From)
		assert.Equal(t, Point{X: x, Y: 300}, l.To)
	}

	h := g.HorizontalLines()
	require.Len(t, h, 3)
	for i, l := range h {
		y := float64(i+1) * 75
		assert.Equal(t, Horizontal, l.Orientation)
		assert.Equal(t, Point{X: 0, Y: y}, l.From)
		assert.Equal(t, Point{X: 300, Y: y}, l.To)
	}
}

func TestContainLinesCoverSquareGrid(t *testing.T) {
	g, err := ComputeGeometry(sourceOf(800, 400), Bounds{Width: 400, Height: 400}, paramsWith(4, FitContain))
	require.NoError(t, err)

	v := g.VerticalLines()
	require.Len(t, v, 5)
	assert.InDelta(t, 100, v[0].Coordinate, 1e-9)
	assert.InDelta(t, 300, v[4].Coordinate, 1e-9)
	for _, l := range v {
		assert.InDelta(t, 0, l.From.Y, 1e-9)
		assert.InDelta(t, 200, l.To.Y, 1e-9)
	}

	h := g.HorizontalLines()
	require.Len(t, h, 5)
	assert.InDelta(t, 0, h[0].Coordinate, 1e-9)
	assert.InDelta(t, 200, h[4].Coordinate, 1e-9)
	for _, l := range h {
		assert.InDelta(t, 100, l.From.X, 1e-9)
		assert.InDelta(t, 300, l.To.X, 1e-9)
	}
}

func TestContainGridFitsCanvas(t *testing.T) {
	images := []*SourceImage{sourceOf(800, 400), sourceOf(333, 777), sourceOf(1, 1000), sourceOf(1920, 1080)}
	containers := []Bounds{{Width: 400, Height: 400}, {Width: 1024, Height: 300}, {Width: 37, Height: 911}}

	for _, img := range images {
		for _, c := range containers {
			for n := MinGridSize; n <= MaxGridSize; n++ {
				g, err := ComputeGeometry(img, c, paramsWith(n, FitContain))
				require.NoError(t, err)

				side := float64(min(g.OutputWidth, g.OutputHeight))
				assert.LessOrEqual(t, g.CellWidth*float64(n), side+1e-9)
				assert.Equal(t, g.CellWidth, g.CellHeight)
				assert.GreaterOrEqual(t, g.OffsetX, 0.0)
				assert.GreaterOrEqual(t, g.OffsetY, 0.0)
				assert.LessOrEqual(t, g.OutputWidth, c.Width)
				assert.LessOrEqual(t, g.OutputHeight, c.Height)
			}
		}
	}
}

func TestContainPreservesAspectRatio(t *testing.T) {
	g, err := ComputeGeometry(sourceOf(1600, 900), Bounds{Width: 800, Height: 800}, paramsWith(4, FitContain))
	require.NoError(t, err)

	assert.Equal(t, 800, g.OutputWidth)
	assert.Equal(t, 450, g.OutputHeight)
	assert.InDelta(t, 0.5, g.Scale(1600), 1e-9)
}

func TestDiagonals(t *testing.T) {
	g, err := ComputeGeometry(sourceOf(300, 150), Bounds{}, paramsWith(3, FitStretch))
	require.NoError(t, err)

	d := g.Diagonals()
	require.Len(t, d, 9)
	for i, seg := range d {
		assert.Equal(t, i/3, seg.Row)
		assert.Equal(t, i%3, seg.Col)
		assert.InDelta(t, g.CellWidth, seg.End.X-seg.Start.X, 1e-9)
		assert.InDelta(t, g.CellHeight, seg.End.Y-seg.Start.Y, 1e-9)
	}
	assert.Equal(t, Point{X: 0, Y: 0}, d[0].Start)
	assert.Equal(t, Point{X: 300, Y: 150}, d[8].End)
}

func TestLabels(t *testing.T) {
	g, err := ComputeGeometry(sourceOf(800, 400), Bounds{Width: 400, Height: 400}, paramsWith(2, FitContain))
	require.NoError(t, err)

	labels := g.Labels()
	require.Len(t, labels, 4)

	want := []struct {
		text   string
		center Point
	}{
		{"1", Point{X: 150, Y: 50}},
		{"2", Point{X: 250, Y: 50}},
		{"3", Point{X: 150, Y: 150}},
		{"4", Point{X: 250, Y: 150}},
	}
	for i, w := range want {
		assert.Equal(t, w.text, labels[i].Text)
		assert.InDelta(t, w.center.X, labels[i].Center.X, 1e-9)
		assert.InDelta(t, w.center.Y, labels[i].Center.Y, 1e-9)
	}

	g, err = ComputeGeometry(nil, Bounds{}, paramsWith(MaxGridSize, FitStretch))
	require.NoError(t, err)
	labels = g.Labels()
	require.Len(t, labels, 100)
	assert.Equal(t, "100", labels[99].Text)
	assert.Equal(t, 9, labels[99].Row)
	assert.Equal(t, 9, labels[99].Col)
}

func TestBounds(t *testing.T) {
	assert.Equal(t, "800x600", Bounds{Width: 800, Height: 600}.String())
	assert.True(t, Bounds{Width: 1, Height: 1}.Valid())
	assert.False(t, Bounds{Width: 0, Height: 1}.Valid())
	assert.False(t, Bounds{}.Valid())
}

func TestSingleCellGrid(t *testing.T) {
	g, err := ComputeGeometry(sourceOf(90, 60), Bounds{}, paramsWith(1, FitStretch))
	require.NoError(t, err)

	assert.Empty(t, g.Lines())
	require.Len(t, g.Diagonals(), 1)
	assert.Equal(t, Point{X: 90, Y: 60}, g.Diagonals()[0].End)
	require.Len(t, g.Labels(), 1)
	assert.Equal(t, "1", g.Labels()[0].Text)
	assert.Equal(t, Point{X: 45, Y: 30}, g.Labels()[0].Center)
}

func TestLabelsAreRowMajor(t *testing.T) {
	for n := MinGridSize; n <= MaxGridSize; n++ {
		g, err := ComputeGeometry(sourceOf(500, 400), Bounds{Width: 300, Height: 300}, paramsWith(n, FitContain))
		require.NoError(t, err)

		labels := g.Labels()
		require.Len(t, labels, n*n)
		seen := make(map[string]bool, n*n)
		for i, l := range labels {
			assert.Equal(t, strconv.Itoa(i+1), l.Text)
			assert.Equal(t, i/n, l.Row)
			assert.Equal(t, i%n, l.Col)
			seen[l.Text] = true
		}
		assert.Len(t, seen, n*n)
		assert.InDelta(t, g.CellWidth/3, g.FontSize, 1e-9)
	}
}

func TestContainAspectRatioWithinRounding(t *testing.T) {
	for _, img := range []*SourceImage{sourceOf(1024, 768), sourceOf(333, 777), sourceOf(4000, 3)} {
		g, err := ComputeGeometry(img, Bounds{Width: 640, Height: 480}, paramsWith(4, FitContain))
		require.NoError(t, err)

		want := float64(img.Width) / float64(img.Height)
		got := float64(g.OutputWidth) / float64(g.OutputHeight)
		// one pixel of rounding on the short side
		tol := want / float64(min(g.OutputWidth, g.OutputHeight))
		assert.InDelta(t, want, got, tol+1e-9, "%dx%d", img.Width, img.Height)
	}
}

func TestComputeGeometryLimitsOutput(t *testing.T) {
	tests := []struct {
		name      string
		img       *SourceImage
		container Bounds
		mode      FitMode
	}{
		{name: "Huge container without image", container: Bounds{Width: 100000, Height: 100000}, mode: FitContain},
		{name: "Tiny image upscaled into huge container", img: sourceOf(1, 1), container: Bounds{Width: 100000, Height: 100000}, mode: FitContain},
		{name: "Tall container", img: sourceOf(3, 4), container: Bounds{Width: 20000, Height: 80000}, mode: FitContain},
		{name: "Oversized image in stretch mode", img: sourceOf(20000, 20000), mode: FitStretch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ComputeGeometry(tt.img, tt.container, paramsWith(4, tt.mode))
			require.NoError(t, err)

			assert.Positive(t, g.OutputWidth)
			assert.Positive(t, g.OutputHeight)
			assert.LessOrEqual(t, g.OutputWidth, MaxDimension)
			assert.LessOrEqual(t, g.OutputHeight, MaxDimension)
			assert.LessOrEqual(t, g.OutputWidth*g.OutputHeight, MaxPixels)
			// still close to the limit, not collapsed
			assert.Greater(t, g.OutputWidth*g.OutputHeight, MaxPixels/8)
		})
	}
}

func TestLimitBoundsKeepsAspectRatio(t *testing.T) {
	b := limitBounds(Bounds{Width: 40000, Height: 20000})
	assert.InDelta(t, 2.0, float64(b.Width)/float64(b.Height), 0.01)
	assert.LessOrEqual(t, b.Width*b.Height, MaxPixels)

	small := Bounds{Width: 800, Height: 600}
	assert.Equal(t, small, limitBounds(small))
}

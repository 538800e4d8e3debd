package gridimg

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertRGB(t *testing.T, want color.RGBA, got color.RGBA, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 8, msgAndArgs...)
	assert.InDelta(t, want.G, got.G, 8, msgAndArgs...)
	assert.InDelta(t, want.B, got.B, 8, msgAndArgs...)
}

func TestRenderStretchImage(t *testing.T) {
	src := NewSourceImage(createSolidImage(200, 100, blue))
	p := paramsWith(2, FitStretch)
	p.LineWidth = 4

	s := NewSurface()
	g, err := RenderFrame(s, src, Bounds{}, p)
	require.NoError(t, err)
	assert.Equal(t, Bounds{Width: 200, Height: 100}, s.Bounds())
	assert.Equal(t, 200, g.OutputWidth)

	img := s.Image()
	require.NotNil(t, img)
	assertRGB(t, blue, img.RGBAAt(20, 20), "image pixel")
	assertRGB(t, red, img.RGBAAt(100, 20), "vertical line")
	assertRGB(t, red, img.RGBAAt(20, 50), "horizontal line")
	// no border lines in stretch mode
	assertRGB(t, blue, img.RGBAAt(0, 20), "left edge")
	assertRGB(t, blue, img.RGBAAt(20, 0), "top edge")
}

func TestRenderContainDrawsBorder(t *testing.T) {
	src := NewSourceImage(createSolidImage(800, 400, blue))
	p := paramsWith(4, FitContain)
	p.LineWidth = 2
	p.GridColor = "#00FF00"

	s := NewSurface()
	g, err := RenderFrame(s, src, Bounds{Width: 400, Height: 400}, p)
	require.NoError(t, err)
	assert.Equal(t, Bounds{Width: 400, Height: 200}, s.Bounds())
	assert.InDelta(t, 100, g.OffsetX, 1e-9)

	img := s.Image()
	green := color.RGBA{G: 255, A: 255}
	assertRGB(t, green, img.RGBAAt(100, 25), "left border")
	assertRGB(t, green, img.RGBAAt(150, 25), "inner line")
	assertRGB(t, blue, img.RGBAAt(50, 25), "outside grid")
	assertRGB(t, blue, img.RGBAAt(125, 25), "inside cell")
}

func TestRenderPlaceholder(t *testing.T) {
	s := NewSurface()
	_, err := RenderFrame(s, nil, Bounds{}, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, DefaultCanvas, s.Bounds())

	img := s.Image()
	assertRGB(t, color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 255}, img.RGBAAt(5, 5), "background")

	// caption sits on the horizontal center line
	var dark int
	for x := range img.Bounds().Dx() {
		for y := 134; y < 156; y++ {
			if img.RGBAAt(x, y).G < 0x80 && img.RGBAAt(x, y).R < 0x80 {
				dark++
			}
		}
	}
	assert.Positive(t, dark, "expected caption pixels")
}

func TestRenderIsIdempotent(t *testing.T) {
	src := NewSourceImage(createSolidImage(160, 90, blue))
	p := paramsWith(5, FitStretch)
	p.ShowDiagonal = true
	p.ShowNumbers = true
	p.LineWidth = 3

	s := NewSurface()
	_, err := RenderFrame(s, src, Bounds{}, p)
	require.NoError(t, err)
	first := append([]byte(nil), s.Image().Pix...)

	_, err = RenderFrame(s, src, Bounds{}, p)
	require.NoError(t, err)
	assert.Equal(t, first, s.Image().Pix)
}

func TestRenderDoesNotAccumulate(t *testing.T) {
	src := NewSourceImage(createSolidImage(120, 120, blue))
	p := paramsWith(3, FitStretch)

	fresh := NewSurface()
	_, err := RenderFrame(fresh, src, Bounds{}, p)
	require.NoError(t, err)

	s := NewSurface()
	busy := p
	busy.ShowDiagonal = true
	busy.ShowNumbers = true
	busy.GridSize = 7
	_, err = RenderFrame(s, src, Bounds{}, busy)
	require.NoError(t, err)
	assert.NotEqual(t, fresh.Image().Pix, s.Image().Pix)

	_, err = RenderFrame(s, src, Bounds{}, p)
	require.NoError(t, err)
	assert.Equal(t, fresh.Image().Pix, s.Image().Pix)
}

func TestRenderOverlays(t *testing.T) {
	src := NewSourceImage(createSolidImage(300, 300, blue))
	p := paramsWith(2, FitStretch)
	p.LineWidth = 4

	plain := NewSurface()
	_, err := RenderFrame(plain, src, Bounds{}, p)
	require.NoError(t, err)
	assertRGB(t, blue, plain.Image().RGBAAt(75, 75))

	p.ShowDiagonal = true
	diag := NewSurface()
	_, err = RenderFrame(diag, src, Bounds{}, p)
	require.NoError(t, err)
	assertRGB(t, red, diag.Image().RGBAAt(75, 75), "diagonal through cell 1")

	p.ShowDiagonal = false
	p.ShowNumbers = true
	nums := NewSurface()
	_, err = RenderFrame(nums, src, Bounds{}, p)
	require.NoError(t, err)
	assert.NotEqual(t, plain.Image().Pix, nums.Image().Pix)
}

func TestRenderErrors(t *testing.T) {
	g, err := ComputeGeometry(nil, Bounds{}, DefaultParams())
	require.NoError(t, err)

	assert.ErrorIs(t, Render(nil, nil, g, DefaultParams()), ErrSurfaceUnavailable)
	assert.ErrorIs(t, Render(NewSurface(), nil, Geometry{GridSize: 1}, DefaultParams()), ErrInvalidImage)

	_, err = RenderFrame(NewSurface(), sourceOf(0, 0), Bounds{}, DefaultParams())
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestSurfaceBeforeRender(t *testing.T) {
	s := NewSurface()
	assert.False(t, s.Ready())
	assert.Nil(t, s.Image())
	assert.Equal(t, Bounds{}, s.Bounds())
}

package gridimg

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// Placeholder appearance when no image is loaded
const (
	PlaceholderCaption    = "Upload an image to start"
	PlaceholderBackground = "#f0f0f0"
	PlaceholderForeground = "#333333"
)

// Render draws one complete frame onto s: the image (or placeholder), then the
// grid lines, then the diagonals and finally the cell numbers. Later layers
// are painted over earlier ones.
func Render(s *Surface, img *SourceImage, g Geometry, p Params) error {
	if s == nil {
		return ErrSurfaceUnavailable
	}
	if g.OutputWidth <= 0 || g.OutputHeight <= 0 {
		return fmt.Errorf("%w: output %dx%d", ErrInvalidImage, g.OutputWidth, g.OutputHeight)
	}

	s.drawMu.Lock()
	defer s.drawMu.Unlock()

	dc := gg.NewContext(g.OutputWidth, g.OutputHeight)

	if img != nil && img.Image != nil {
		drawFitted(dc, img.Image)
	} else if err := drawPlaceholder(dc, s.faces); err != nil {
		return err
	}

	lineWidth := p.LineWidth
	if !(lineWidth > 0) {
		lineWidth = DefaultLineWidth
	}
	dc.SetColor(p.Color())
	dc.SetLineWidth(lineWidth)
	dc.SetLineCap(gg.LineCapButt)

	for _, l := range g.Lines() {
		dc.DrawLine(l.From.X, l.From.Y, l.To.X, l.To.Y)
		dc.Stroke()
	}

	if p.ShowDiagonal {
		for _, d := range g.Diagonals() {
			dc.DrawLine(d.Start.X, d.Start.Y, d.End.X, d.End.Y)
			dc.Stroke()
		}
	}

	if p.ShowNumbers {
		face, err := s.faces.face(g.FontSize)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
		for _, l := range g.Labels() {
			dc.DrawStringAnchored(l.Text, l.Center.X, l.Center.Y, 0.5, 0.5)
		}
	}

	s.swap(dc)
	return nil
}

// drawFitted scales src into the whole output rectangle
func drawFitted(dc *gg.Context, src image.Image) {
	dst, ok := dc.Image().(*image.RGBA)
	if !ok {
		dc.DrawImage(src, 0, 0)
		return
	}
	sb := src.Bounds()
	if sb.Dx() == dst.Bounds().Dx() && sb.Dy() == dst.Bounds().Dy() {
		xdraw.Copy(dst, image.Point{}, src, sb, xdraw.Src, nil)
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)
}

// drawPlaceholder paints the "no image" background and caption
func drawPlaceholder(dc *gg.Context, faces *faceCache) error {
	dc.SetHexColor(PlaceholderBackground)
	dc.Clear()

	face, err := faces.face(CaptionFontSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetHexColor(PlaceholderForeground)
	dc.DrawStringAnchored(PlaceholderCaption, float64(dc.Width())/2, float64(dc.Height())/2, 0.5, 0)
	return nil
}

// RenderFrame computes the geometry for the inputs and renders it onto s
func RenderFrame(s *Surface, img *SourceImage, container Bounds, p Params) (Geometry, error) {
	g, err := ComputeGeometry(img, container, p)
	if err != nil {
		return Geometry{}, err
	}
	if err := Render(s, img, g, p); err != nil {
		return g, err
	}
	return g, nil
}

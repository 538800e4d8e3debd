package gridimg

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Parameter bounds
const (
	MinGridSize  = 1
	MaxGridSize  = 10
	MinLineWidth = 1.0
	MaxLineWidth = 10.0

	DefaultGridSize  = 4
	DefaultGridColor = "#FF0000"
	DefaultLineWidth = 1.0
)

// FitMode defines how the output canvas is sized relative to the source image
type FitMode int

const (
	// FitStretch uses the image's natural size and stretches the grid over it
	FitStretch FitMode = iota
	// FitContain scales the image into the container keeping its aspect ratio
	// and centers a square grid on it
	FitContain
)

func (m FitMode) String() string {
	switch m {
	case FitStretch:
		return "stretch"
	case FitContain:
		return "contain"
	default:
		return fmt.Sprintf("FitMode(%d)", int(m))
	}
}

// ParseFitMode converts a mode name into a FitMode
func ParseFitMode(s string) (FitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stretch", "":
		return FitStretch, nil
	case "contain", "fit":
		return FitContain, nil
	default:
		return FitStretch, fmt.Errorf("unknown fit mode %q (expected stretch or contain)", s)
	}
}

// Params is an immutable snapshot of everything a render needs besides the image
type Params struct {
	GridSize     int
	GridColor    string
	LineWidth    float64
	ShowDiagonal bool
	ShowNumbers  bool
	FitMode      FitMode
}

// DefaultParams returns the parameters a fresh session starts with
func DefaultParams() Params {
	return Params{
		GridSize:  DefaultGridSize,
		GridColor: DefaultGridColor,
		LineWidth: DefaultLineWidth,
		FitMode:   FitStretch,
	}
}

// Normalize clamps every numeric field into its valid range and replaces an
// unparseable color with the default. The returned Params are always usable;
// the error (wrapping ErrInvalidParameter) lists what had to be corrected.
func (p Params) Normalize() (Params, error) {
	var errs []error

	if p.GridSize < MinGridSize || p.GridSize > MaxGridSize {
		errs = append(errs, fmt.Errorf("%w: grid size %d outside [%d,%d]", ErrInvalidParameter, p.GridSize, MinGridSize, MaxGridSize))
		p.GridSize = min(max(p.GridSize, MinGridSize), MaxGridSize)
	}

	switch {
	case math.IsNaN(p.LineWidth):
		errs = append(errs, fmt.Errorf("%w: line width is NaN", ErrInvalidParameter))
		p.LineWidth = DefaultLineWidth
	case p.LineWidth < MinLineWidth || p.LineWidth > MaxLineWidth:
		errs = append(errs, fmt.Errorf("%w: line width %g outside [%g,%g]", ErrInvalidParameter, p.LineWidth, MinLineWidth, MaxLineWidth))
		p.LineWidth = math.Min(math.Max(p.LineWidth, MinLineWidth), MaxLineWidth)
	}

	if _, err := ParseColor(p.GridColor); err != nil {
		errs = append(errs, err)
		p.GridColor = DefaultGridColor
	}

	if p.FitMode != FitStretch && p.FitMode != FitContain {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidParameter, p.FitMode))
		p.FitMode = FitStretch
	}

	return p, errors.Join(errs...)
}

// Color returns the parsed grid color, falling back to the default red
func (p Params) Color() color.Color {
	c, err := ParseColor(p.GridColor)
	if err != nil {
		c, _ = ParseColor(DefaultGridColor)
	}
	return c
}

// ParseColor accepts "#rgb", "#rrggbb" (with or without the hash) and
// SVG/CSS color keywords such as "red" or "cornflowerblue"
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("%w: empty color", ErrInvalidParameter)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex := s
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalidParameter, s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

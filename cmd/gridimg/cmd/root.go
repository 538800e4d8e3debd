/*
Copyright © 2024 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	"github.com/blacktop/go-gridimg"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	gridSize     int
	gridColor    string
	lineWidth    float64
	showDiagonal bool
	showNumbers  bool
	fitMode      string
	container    string
)

func init() {
	log.SetHandler(clihander.Default)

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "V", false, "Enable verbose logging")
	pf.IntVarP(&gridSize, "grid", "g", gridimg.DefaultGridSize, "Number of rows and columns (1-10)")
	pf.StringVarP(&gridColor, "color", "c", gridimg.DefaultGridColor, "Line and number color (hex or color name)")
	pf.Float64VarP(&lineWidth, "line-width", "w", gridimg.DefaultLineWidth, "Line width in pixels (1-10)")
	pf.BoolVarP(&showDiagonal, "diagonal", "d", false, "Draw a diagonal in every cell")
	pf.BoolVarP(&showNumbers, "numbers", "n", false, "Number the cells")
	pf.StringVarP(&fitMode, "fit", "f", "stretch", "Fit mode: stretch (image size) or contain (scale into --container)")
	pf.StringVar(&container, "container", "", "Container size WxH for contain mode")

	rootCmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gridimg [image]",
	Short: "Overlay a grid on an image",
	Long: `Overlay a configurable grid (with optional diagonals and cell numbers)
on an image and save, print or preview the result. Without an image a
placeholder canvas is gridded.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
	RunE: runRender,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

// paramsFromFlags builds the render parameters, clamping out of range values
func paramsFromFlags() (gridimg.Params, error) {
	mode, err := gridimg.ParseFitMode(fitMode)
	if err != nil {
		return gridimg.Params{}, err
	}
	p := gridimg.Params{
		GridSize:     gridSize,
		GridColor:    gridColor,
		LineWidth:    lineWidth,
		ShowDiagonal: showDiagonal,
		ShowNumbers:  showNumbers,
		FitMode:      mode,
	}
	p, err = p.Normalize()
	if err != nil {
		log.WithError(err).Warn("adjusted parameters")
	}
	return p, nil
}

// parseContainer parses a WxH size
func parseContainer(s string) (gridimg.Bounds, error) {
	if s == "" {
		return gridimg.Bounds{}, nil
	}
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return gridimg.Bounds{}, fmt.Errorf("invalid container %q: expected WxH", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return gridimg.Bounds{}, fmt.Errorf("invalid container width %q: %w", w, err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return gridimg.Bounds{}, fmt.Errorf("invalid container height %q: %w", h, err)
	}
	b := gridimg.Bounds{Width: width, Height: height}
	if !b.Valid() {
		return gridimg.Bounds{}, fmt.Errorf("invalid container %q: sides must be positive", s)
	}
	if width > gridimg.MaxDimension || height > gridimg.MaxDimension || width*height > gridimg.MaxPixels {
		return gridimg.Bounds{}, fmt.Errorf("invalid container %q: exceeds %d pixels per side or %d pixels total",
			s, gridimg.MaxDimension, gridimg.MaxPixels)
	}
	return b, nil
}

// newSession builds a session from the flags and, if args names an image,
// waits for it to load. fallback supplies the container when --container is unset.
func newSession(args []string, fallback func() gridimg.Bounds) (*gridimg.Session, error) {
	p, err := paramsFromFlags()
	if err != nil {
		return nil, err
	}
	bounds, err := parseContainer(container)
	if err != nil {
		return nil, err
	}
	if !bounds.Valid() && fallback != nil && p.FitMode == gridimg.FitContain {
		bounds = fallback()
	}

	session := gridimg.NewSession(gridimg.NewStore(p), bounds)
	if len(args) == 0 {
		if p.FitMode == gridimg.FitContain && !bounds.Valid() && fallback == nil {
			log.Warnf("contain mode without --container, using %s", gridimg.DefaultCanvas)
		}
		return session, nil
	}

	res := <-session.OpenFile(args[0])
	if res.Err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to open image: %w", res.Err)
	}
	log.Debugf("Image Info: %dx%d %s", res.Image.Width, res.Image.Height, res.Image.Format)

	if p.FitMode == gridimg.FitContain && !bounds.Valid() {
		natural := gridimg.Bounds{Width: res.Image.Width, Height: res.Image.Height}
		log.WithField("container", natural.String()).Warn("contain mode without --container, using the image size")
		if err := session.SetContainer(natural); err != nil {
			session.Close()
			return nil, err
		}
	}
	return session, nil
}

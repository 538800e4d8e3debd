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
	"github.com/apex/log"
	"github.com/blacktop/go-gridimg"
	"github.com/spf13/cobra"
)

var outDir string

func init() {
	renderCmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [image]",
	Short: "Render the grid overlay and save it as " + gridimg.DownloadFilename,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	session, err := newSession(args, nil)
	if err != nil {
		return err
	}
	defer session.Close()

	path, err := gridimg.SavePNG(session.Surface(), outDir)
	if err != nil {
		return err
	}
	g := session.Geometry()
	log.WithFields(log.Fields{
		"width":  g.OutputWidth,
		"height": g.OutputHeight,
		"grid":   g.GridSize,
	}).Info("saved " + path)
	return nil
}

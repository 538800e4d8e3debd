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

	"github.com/blacktop/go-gridimg"
	"github.com/blacktop/go-gridimg/pkg/csi"
	"github.com/blacktop/go-gridimg/pkg/preview"
	"github.com/spf13/cobra"
)

var (
	protocolName string
	previewCols  int
	previewRows  int
)

func init() {
	previewCmd.Flags().StringVarP(&protocolName, "protocol", "p", "auto", "Terminal graphics protocol (auto, kitty, sixel, iterm2, halfblocks)")
	previewCmd.Flags().IntVarP(&previewCols, "width", "W", 0, "Preview width in cells (0 = terminal width)")
	previewCmd.Flags().IntVarP(&previewRows, "height", "H", 0, "Preview height in cells (0 = terminal height)")
	tuiCmd.Flags().StringVarP(&protocolName, "protocol", "p", "auto", "Terminal graphics protocol (auto, kitty, sixel, iterm2, halfblocks)")
	rootCmd.AddCommand(previewCmd)
}

// terminalContainer sizes contain mode to the visible terminal
func terminalContainer() gridimg.Bounds {
	w, h := csi.TextAreaPixels(2)
	return gridimg.Bounds{Width: w, Height: h}
}

var previewCmd = &cobra.Command{
	Use:   "preview [image]",
	Short: "Show the grid overlay in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		protocol, err := preview.ParseProtocol(protocolName)
		if err != nil {
			return err
		}
		session, err := newSession(args, terminalContainer)
		if err != nil {
			return err
		}
		defer session.Close()

		if err := preview.Print(os.Stdout, session.Surface().Image(), preview.Options{
			Width:    previewCols,
			Height:   previewRows,
			Protocol: protocol,
		}); err != nil {
			return err
		}
		fmt.Println()
		return nil
	},
}

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
	"github.com/blacktop/go-gridimg"
	"github.com/blacktop/go-gridimg/internal/tui"
	"github.com/blacktop/go-gridimg/pkg/preview"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func init() {
	tuiCmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory for saved images")
	rootCmd.AddCommand(tuiCmd)
}

var tuiCmd = &cobra.Command{
	Use:   "tui [image]",
	Short: "Adjust the grid interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		protocol, err := preview.ParseProtocol(protocolName)
		if err != nil {
			return err
		}
		session, err := newSession(nil, nil)
		if err != nil {
			return err
		}
		defer session.Close()

		opts := tui.Options{
			Protocol: protocol,
			OutDir:   outDir,
			Printer:  gridimg.LPPrinter{},
		}
		if len(args) > 0 {
			opts.Path = args[0]
		}
		_, err = tea.NewProgram(tui.New(session, opts), tea.WithAltScreen()).Run()
		return err
	},
}

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
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/blacktop/go-gridimg"
	"github.com/spf13/cobra"
)

var (
	documentPath string
	printerName  string
	printTimeout time.Duration
)

func init() {
	printCmd.Flags().StringVar(&documentPath, "document", "", "Write an HTML print document to this path instead of spooling to lp")
	printCmd.Flags().StringVarP(&printerName, "printer", "P", "", "Destination printer (lp -d)")
	printCmd.Flags().DurationVar(&printTimeout, "timeout", 30*time.Second, "Give up on the print job after this long")
	rootCmd.AddCommand(printCmd)
}

var printCmd = &cobra.Command{
	Use:   "print [image]",
	Short: "Render the grid overlay and send it to the printer",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(args, nil)
		if err != nil {
			return err
		}
		defer session.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), printTimeout)
		defer cancel()

		var printer gridimg.Printer = gridimg.LPPrinter{Destination: printerName}
		if documentPath != "" {
			f, err := os.Create(documentPath)
			if err != nil {
				return fmt.Errorf("%w: %v", gridimg.ErrExport, err)
			}
			defer f.Close()
			printer = gridimg.DocumentPrinter{W: f}
		}

		if err := gridimg.Print(ctx, session.Surface(), printer); err != nil {
			return err
		}
		if documentPath != "" {
			log.Info("wrote print document " + documentPath)
		} else {
			log.Info("sent to printer")
		}
		return nil
	},
}

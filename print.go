package gridimg

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"io"
	"os/exec"
	"strings"
)

// DefaultPrintTitle is used when a job has no title
const DefaultPrintTitle = "Print Grid Image"

// PrintJob is an encoded frame ready to be handed to a print pipeline
type PrintJob struct {
	Title string
	PNG   []byte
}

// NewPrintJob encodes the current frame of s
func NewPrintJob(s *Surface) (PrintJob, error) {
	data, err := EncodePNG(s)
	if err != nil {
		return PrintJob{}, err
	}
	return PrintJob{Title: DefaultPrintTitle, PNG: data}, nil
}

// Document returns a minimal HTML page embedding the image that opens the
// print dialog on load and closes itself afterwards
func (j PrintJob) Document() []byte {
	title := j.Title
	if title == "" {
		title = DefaultPrintTitle
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("<style>body{margin:0}img{max-width:100%}</style>\n</head>\n")
	b.WriteString("<body>\n<img src=\"data:image/png;base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(j.PNG))
	b.WriteString("\" onload=\"window.print();window.close()\">\n</body>\n</html>\n")
	return []byte(b.String())
}

// Printer hands a job to a print pipeline
type Printer interface {
	Print(ctx context.Context, job PrintJob) error
}

// LPPrinter spools jobs to the system print queue through lp(1)
type LPPrinter struct {
	Command     string // defaults to "lp"
	Destination string // printer name, empty for the default printer
}

// Print pipes the PNG into lp
func (p LPPrinter) Print(ctx context.Context, job PrintJob) error {
	if len(job.PNG) == 0 {
		return fmt.Errorf("%w: empty print job", ErrExport)
	}
	command := p.Command
	if command == "" {
		command = "lp"
	}
	title := job.Title
	if title == "" {
		title = DefaultPrintTitle
	}

	args := []string{"-t", title}
	if p.Destination != "" {
		args = append(args, "-d", p.Destination)
	}
	args = append(args, "-")

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdin = bytes.NewReader(job.PNG)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s: %v: %s", ErrExport, command, err, msg)
		}
		return fmt.Errorf("%w: %s: %v", ErrExport, command, err)
	}
	return nil
}

// DocumentPrinter writes the HTML print document to W, for printing from a browser
type DocumentPrinter struct {
	W io.Writer
}

// Print writes the document
func (p DocumentPrinter) Print(ctx context.Context, job PrintJob) error {
	if p.W == nil {
		return fmt.Errorf("%w: no document writer", ErrExport)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	if _, err := p.W.Write(job.Document()); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	return nil
}

// Print encodes the frame of s and submits it to printer
func Print(ctx context.Context, s *Surface, printer Printer) error {
	if printer == nil {
		return fmt.Errorf("%w: no printer", ErrExport)
	}
	job, err := NewPrintJob(s)
	if err != nil {
		return err
	}
	return printer.Print(ctx, job)
}

/*
Package csi measures the terminal in pixels using CSI window reports, so that
a rendered canvas can be fitted to the visible text area.
*/
package csi

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// QueryTimeout is the default timeout for CSI queries
const QueryTimeout = 100 * time.Millisecond

// Fallback sizes when the terminal cannot be queried
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
	DefaultCols       = 80
	DefaultRows       = 24
)

var (
	cellOnce         sync.Once
	cachedCellWidth  int
	cachedCellHeight int
)

// query writes seq to the controlling terminal in raw mode and hands the
// reply to parse. It gives up after QueryTimeout.
func query(seq string, parse func(string) (int, int, bool)) (int, int, bool) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return 0, 0, false
	}
	defer tty.Close()

	oldState, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		return 0, 0, false
	}
	defer term.Restore(int(tty.Fd()), oldState)

	if _, err := tty.WriteString(wrapTmuxPassthrough(seq)); err != nil {
		return 0, 0, false
	}

	responseChan := make(chan [3]int, 1)
	go func() {
		buf := make([]byte, 64)
		n, err := tty.Read(buf)
		if err != nil || n == 0 {
			responseChan <- [3]int{}
			return
		}
		w, h, ok := parse(string(buf[:n]))
		if !ok {
			responseChan <- [3]int{}
			return
		}
		responseChan <- [3]int{w, h, 1}
	}()

	select {
	case r := <-responseChan:
		return r[0], r[1], r[2] == 1
	case <-time.After(QueryTimeout):
		return 0, 0, false
	}
}

// ParseReport parses a window report of the form ESC [ kind ; height ; width t
// and returns width, height
func ParseReport(response string, kind int) (width, height int, ok bool) {
	prefix := "[" + strconv.Itoa(kind) + ";"
	start := strings.Index(response, prefix)
	if start == -1 {
		return 0, 0, false
	}
	rest := response[start+len(prefix):]
	end := strings.IndexByte(rest, 't')
	if end == -1 {
		return 0, 0, false
	}
	parts := strings.Split(rest[:end], ";")
	if len(parts) < 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h <= 0 {
		return 0, 0, false
	}
	w, err := strconv.Atoi(parts[1])
	if err != nil || w <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// QueryTextAreaSizeInPixels queries text area size in pixels using CSI 14t
func QueryTextAreaSizeInPixels() (width, height int, ok bool) {
	return query("\x1b[14t", func(s string) (int, int, bool) { return ParseReport(s, 4) })
}

// QueryCharacterCellSizeInPixels queries character cell size in pixels using CSI 16t
func QueryCharacterCellSizeInPixels() (width, height int, ok bool) {
	return query("\x1b[16t", func(s string) (int, int, bool) { return ParseReport(s, 6) })
}

// QuerySupported checks if a terminal likely answers CSI queries
func QuerySupported() bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "Apple_Terminal", "vscode":
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// CellSize returns the character cell size in pixels, cached after the first call
func CellSize() (width, height int) {
	cellOnce.Do(func() {
		if QuerySupported() {
			if w, h, ok := QueryCharacterCellSizeInPixels(); ok {
				cachedCellWidth, cachedCellHeight = w, h
				return
			}
		}
		cachedCellWidth, cachedCellHeight = FallbackCellSize()
	})
	return cachedCellWidth, cachedCellHeight
}

// FallbackCellSize guesses the cell size from the terminal program
func FallbackCellSize() (width, height int) {
	termProgram := os.Getenv("TERM_PROGRAM")
	switch {
	case termProgram == "vscode":
		return 7, 14
	case termProgram == "WezTerm":
		return 8, 18
	case termProgram == "Alacritty":
		return 7, 15
	case strings.Contains(os.Getenv("TERM"), "xterm"):
		return 7, 14
	default:
		return DefaultCellWidth, DefaultCellHeight
	}
}

// WindowSize returns the terminal size in cells, defaulting to 80x24
func WindowSize() (cols, rows int) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return DefaultCols, DefaultRows
	}
	return cols, rows
}

// TextAreaPixels returns the pixel size of the terminal's text area minus
// reservedRows rows (for status lines). It falls back to cells times cell size.
func TextAreaPixels(reservedRows int) (width, height int) {
	cols, rows := WindowSize()
	cellW, cellH := CellSize()

	if QuerySupported() {
		if w, h, ok := QueryTextAreaSizeInPixels(); ok {
			return w, max(h-reservedRows*(h/rows), cellH)
		}
	}
	return cols * cellW, max(rows-reservedRows, 1) * cellH
}

func inTmux() bool {
	return os.Getenv("TMUX") != "" || os.Getenv("TERM_PROGRAM") == "tmux"
}

// wrapTmuxPassthrough wraps an escape sequence for tmux passthrough if needed
func wrapTmuxPassthrough(output string) string {
	if !inTmux() || !strings.HasPrefix(output, "\x1b") {
		return output
	}
	return "\x1bPtmux;\x1b" + strings.ReplaceAll(output, "\x1b", "\x1b\x1b") + "\x1b\\"
}

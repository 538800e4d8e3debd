package preview

import (
	"os"
	"os/exec"
	"strings"
	"sync"
)

var tmuxPassthroughOnce sync.Once

// inTmux checks if running inside tmux
func inTmux() bool {
	return os.Getenv("TMUX") != "" || os.Getenv("TERM_PROGRAM") == "tmux"
}

// enableTmuxPassthrough asks tmux to forward graphics escapes for the current pane
func enableTmuxPassthrough() {
	tmuxPassthroughOnce.Do(func() {
		cmd := exec.Command("tmux", "set", "-p", "allow-passthrough", "on")
		cmd.Stdin, cmd.Stdout, cmd.Stderr = nil, nil, nil
		_ = cmd.Run()
	})
}

// wrapTmuxPassthrough wraps an escape sequence for tmux passthrough if needed.
// All ESC characters inside the payload must be doubled.
func wrapTmuxPassthrough(output string) string {
	if !inTmux() || !strings.HasPrefix(output, "\x1b") {
		return output
	}
	enableTmuxPassthrough()
	return "\x1bPtmux;\x1b" + strings.ReplaceAll(output, "\x1b", "\x1b\x1b") + "\x1b\\"
}

package preview

import (
	"fmt"
	"os"
	"strings"
)

// Protocol is a terminal graphics protocol
type Protocol int

const (
	// Auto picks the best protocol the terminal advertises
	Auto Protocol = iota
	Kitty
	Sixel
	ITerm2
	// Halfblocks draws with unicode half blocks and works everywhere
	Halfblocks
)

func (p Protocol) String() string {
	switch p {
	case Auto:
		return "auto"
	case Kitty:
		return "kitty"
	case Sixel:
		return "sixel"
	case ITerm2:
		return "iterm2"
	case Halfblocks:
		return "halfblocks"
	default:
		return fmt.Sprintf("Protocol(%d)", int(p))
	}
}

// ParseProtocol converts a protocol name into a Protocol
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "kitty":
		return Kitty, nil
	case "sixel":
		return Sixel, nil
	case "iterm2", "iterm":
		return ITerm2, nil
	case "halfblocks", "blocks", "ansi":
		return Halfblocks, nil
	default:
		return Auto, fmt.Errorf("unknown protocol %q", s)
	}
}

// DetectProtocol returns the best protocol for the current terminal based on
// its environment. Halfblocks is the fallback.
func DetectProtocol() Protocol {
	switch {
	case KittySupported():
		return Kitty
	case ITerm2Supported():
		return ITerm2
	case SixelSupported():
		return Sixel
	default:
		return Halfblocks
	}
}

// KittySupported checks the environment for terminals speaking the kitty graphics protocol
func KittySupported() bool {
	termProgram := os.Getenv("TERM_PROGRAM")
	switch {
	case os.Getenv("KITTY_WINDOW_ID") != "":
		return true
	case strings.Contains(strings.ToLower(os.Getenv("TERM")), "kitty"):
		return true
	case termProgram == "ghostty" || termProgram == "WezTerm" || termProgram == "rio":
		return true
	case strings.Contains(os.Getenv("TERMINFO"), "Ghostty"): // tmux
		return true
	default:
		return false
	}
}

// ITerm2Supported checks the environment for terminals speaking the iTerm2 inline image protocol
func ITerm2Supported() bool {
	termProgram := os.Getenv("TERM_PROGRAM")
	switch {
	case termProgram == "iTerm.app" || os.Getenv("LC_TERMINAL") == "iTerm2":
		return true
	case termProgram == "vscode" && os.Getenv("TERM_PROGRAM_VERSION") != "":
		return true
	case termProgram == "mintty" || termProgram == "WarpTerminal":
		return true
	default:
		return false
	}
}

// SixelSupported checks the environment for sixel capable terminals
func SixelSupported() bool {
	termName := strings.ToLower(os.Getenv("TERM"))
	for _, name := range []string{"sixel", "mlterm", "foot", "yaft", "contour"} {
		if strings.Contains(termName, name) {
			return true
		}
	}
	return false
}

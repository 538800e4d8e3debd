// Package tui is an interactive terminal front end for adjusting grid
// parameters while watching the rendered image.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/blacktop/go-gridimg"
	"github.com/blacktop/go-gridimg/pkg/csi"
	"github.com/blacktop/go-gridimg/pkg/preview"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// reservedRows is the space kept below the image for status and help
const reservedRows = 4

const printTimeout = 30 * time.Second

// Palette cycled by the color key
var Palette = []string{"#FF0000", "#00FF00", "#0000FF", "#FFFF00", "#FFFFFF", "#000000"}

// Options configures the front end
type Options struct {
	Path     string           // image to open on start
	Protocol preview.Protocol // terminal graphics protocol
	OutDir   string           // where saved PNGs go
	Printer  gridimg.Printer  // print pipeline, nil disables printing
}

type loadedMsg gridimg.LoadResult

type printedMsg struct{ err error }

// Model is the bubbletea model
type Model struct {
	session *gridimg.Session
	opts    Options

	keys    keyMap
	help    help.Model
	input   textinput.Model
	opening bool

	width  int
	height int
	frame  string
	status string
	err    error
}

// New creates a model driving session
func New(session *gridimg.Session, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "path/to/image.png"
	ti.Prompt = "open: "
	ti.CharLimit = 4096

	return Model{
		session: session,
		opts:    opts,
		keys:    defaultKeyMap(),
		help:    help.New(),
		input:   ti,
	}
}

// Init opens the initial image, if any
func (m Model) Init() tea.Cmd {
	if m.opts.Path != "" {
		return openCmd(m.session, m.opts.Path)
	}
	return nil
}

func openCmd(session *gridimg.Session, path string) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg(<-session.OpenFile(path))
	}
}

func printCmd(session *gridimg.Session, printer gridimg.Printer) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), printTimeout)
		defer cancel()
		return printedMsg{err: gridimg.Print(ctx, session.Surface(), printer)}
	}
}

// Update handles input and load completions
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		cellW, cellH := csi.CellSize()
		m.session.SetContainer(gridimg.Bounds{
			Width:  msg.Width * cellW,
			Height: max(msg.Height-reservedRows, 1) * cellH,
		})
		m.refresh()
		return m, nil

	case loadedMsg:
		switch {
		case !m.session.IsCurrent(msg.Seq):
			return m, nil
		case msg.Err != nil:
			m.setError(msg.Err)
		case msg.Image != nil:
			m.setStatus(fmt.Sprintf("loaded %dx%d %s", msg.Image.Width, msg.Image.Height, msg.Image.Format))
		}
		m.refresh()
		return m, nil

	case printedMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus("sent to printer")
		}
		return m, nil

	case tea.KeyMsg:
		if m.opening {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		path := strings.TrimSpace(m.input.Value())
		m.opening = false
		m.input.Reset()
		m.input.Blur()
		if path == "" {
			return m, nil
		}
		m.setStatus("loading " + path)
		return m, openCmd(m.session, path)
	case tea.KeyEsc:
		m.opening = false
		m.input.Reset()
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	store := m.session.Store()
	p := store.Params()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.GridUp):
		store.SetGridSize(p.GridSize + 1)
	case key.Matches(msg, m.keys.GridDown):
		store.SetGridSize(p.GridSize - 1)
	case key.Matches(msg, m.keys.WidthUp):
		store.SetLineWidth(p.LineWidth + 1)
	case key.Matches(msg, m.keys.WidthDown):
		store.SetLineWidth(p.LineWidth - 1)
	case key.Matches(msg, m.keys.Color):
		store.SetGridColor(nextColor(p.GridColor))
	case key.Matches(msg, m.keys.Diagonal):
		store.SetShowDiagonal(!p.ShowDiagonal)
	case key.Matches(msg, m.keys.Numbers):
		store.SetShowNumbers(!p.ShowNumbers)
	case key.Matches(msg, m.keys.Fit):
		if p.FitMode == gridimg.FitContain {
			store.SetFitMode(gridimg.FitStretch)
		} else {
			store.SetFitMode(gridimg.FitContain)
		}
	case key.Matches(msg, m.keys.Open):
		m.opening = true
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Save):
		path, err := gridimg.SavePNG(m.session.Surface(), m.opts.OutDir)
		if err != nil {
			m.setError(err)
		} else {
			m.setStatus("saved " + path)
		}
		return m, nil
	case key.Matches(msg, m.keys.Print):
		if m.opts.Printer == nil {
			m.setError(fmt.Errorf("%w: printing is not configured", gridimg.ErrExport))
			return m, nil
		}
		m.setStatus("printing...")
		return m, printCmd(m.session, m.opts.Printer)
	default:
		return m, nil
	}

	m.refresh()
	return m, nil
}

// nextColor returns the palette entry after c
func nextColor(c string) string {
	for i, pc := range Palette {
		if strings.EqualFold(pc, c) {
			return Palette[(i+1)%len(Palette)]
		}
	}
	return Palette[0]
}

func (m *Model) setStatus(s string) {
	m.status, m.err = s, nil
}

func (m *Model) setError(err error) {
	log.WithError(err).Debug("tui")
	m.status, m.err = "", err
}

// refresh re-encodes the current frame for the terminal
func (m *Model) refresh() {
	surface := m.session.Surface()
	if surface == nil || !surface.Ready() {
		m.frame = ""
		return
	}
	out, err := preview.Render(surface.Image(), preview.Options{
		Width:    m.width,
		Height:   max(m.height-reservedRows, 1),
		Protocol: m.opts.Protocol,
	})
	if err != nil {
		m.setError(err)
		m.frame = ""
		return
	}
	m.frame = out
}

// View draws the frame, the parameter line, the status and the help
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.frame)
	b.WriteString("\n")

	p := m.session.Store().Params()
	b.WriteString(titleStyle.Render("gridimg"))
	b.WriteString(paramStyle.Render(fmt.Sprintf("%dx%d  %s  width %g  diag %s  nums %s  %s",
		p.GridSize, p.GridSize, p.GridColor, p.LineWidth, onOff(p.ShowDiagonal), onOff(p.ShowNumbers), p.FitMode)))
	b.WriteString("\n")

	switch {
	case m.opening:
		b.WriteString(m.input.View())
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(okStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

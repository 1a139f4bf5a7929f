// Package ui is the interactive terminal viewer. It drives the engine's
// frame loop from bubbletea ticks, maps terminal mouse events onto the
// interaction controller, and rasterizes each frame into half-block cells
// so the graph renders in any truecolor terminal.
package ui

import (
	"fmt"
	"time"

	"git.sr.ht/~sbinet/gg"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/impgraph/pkg/debug"
	"github.com/vanderheijden86/impgraph/pkg/engine"
	"github.com/vanderheijden86/impgraph/pkg/metrics"
	"github.com/vanderheijden86/impgraph/pkg/model"
	"github.com/vanderheijden86/impgraph/pkg/watcher"
)

// statusDuration is how long transient status messages stay visible.
const statusDuration = 3 * time.Second

type frameMsg time.Time

// FileChangedMsg signals that the watched graph file changed on disk.
type FileChangedMsg struct{}

type clearStatusMsg struct{}

// Options configures the viewer.
type Options struct {
	Scheduler  *engine.Scheduler
	SourcePath string
	FPS        int

	// Reload re-reads the source and returns a fresh payload. Nil
	// disables the reload key and file watching.
	Reload func() (*model.Payload, error)

	// Watcher, when set, triggers automatic reloads.
	Watcher *watcher.Watcher
}

// Model is the bubbletea model for the viewer.
type Model struct {
	sched   *engine.Scheduler
	keys    KeyMap
	opts    Options
	fps     int
	dc      *gg.Context
	cellsW  int
	cellsH  int
	ready    bool
	paused   bool
	showHelp bool
	status   string
	lastTick time.Time
}

// NewModel builds the viewer model.
func NewModel(opts Options) Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}
	return Model{
		sched: opts.Scheduler,
		keys:  DefaultKeyMap(),
		opts:  opts,
		fps:   fps,
	}
}

func (m Model) frameTickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func watchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

func clearStatusCmd() tea.Cmd {
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// Init starts the frame loop and, when configured, the file watch.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.frameTickCmd()}
	if m.opts.Watcher != nil {
		cmds = append(cmds, watchFileCmd(m.opts.Watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles input, resize, and frame ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.cellsW = msg.Width
		m.cellsH = msg.Height - 1 // bottom row is the status bar
		if m.cellsH < 1 {
			m.cellsH = 1
		}
		pw, ph := m.cellsW, m.cellsH*2
		m.dc = gg.NewContext(pw, ph)
		m.sched.Enqueue(engine.Resize(float64(pw), float64(ph)))
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case frameMsg:
		now := time.Time(msg)
		dt := 1.0 / float64(m.fps)
		if !m.lastTick.IsZero() {
			dt = now.Sub(m.lastTick).Seconds()
		}
		m.lastTick = now
		if !m.paused && m.ready {
			if !m.sched.Frame(dt) {
				return m, tea.Quit
			}
		}
		return m, m.frameTickCmd()

	case FileChangedMsg:
		cmd := m.reload()
		if m.opts.Watcher != nil {
			return m, tea.Batch(cmd, watchFileCmd(m.opts.Watcher))
		}
		return m, cmd

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.sched.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keys.ResetView):
		cam := m.sched.Camera()
		cam.Pan = r2.Vec{}
		cam.Zoom = 1
		return m, nil

	case key.Matches(msg, m.keys.ZoomIn):
		m.sched.Enqueue(engine.Wheel(m.center(), -1))
		return m, nil

	case key.Matches(msg, m.keys.ZoomOut):
		m.sched.Enqueue(engine.Wheel(m.center(), 1))
		return m, nil

	case key.Matches(msg, m.keys.Yank):
		if slot := m.sched.Controller().Highlight().HoveredSlot; slot >= 0 {
			id := m.sched.Engine().Node(slot).ID
			if err := clipboard.WriteAll(id); err != nil {
				m.status = fmt.Sprintf("copy failed: %v", err)
			} else {
				m.status = fmt.Sprintf("copied %s", id)
			}
			return m, clearStatusCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		cmd := m.reload()
		return m, cmd
	}
	return m, nil
}

// handleMouse maps a terminal mouse event onto the pixel-space
// controller. Cells are one pixel wide and two pixels tall.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	pos := r2.Vec{X: float64(msg.X), Y: float64(msg.Y*2 + 1)}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.sched.Enqueue(engine.Wheel(pos, -1))
		return
	case tea.MouseButtonWheelDown:
		m.sched.Enqueue(engine.Wheel(pos, 1))
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.sched.Enqueue(engine.PointerDown(pos))
		}
	case tea.MouseActionMotion:
		m.sched.Enqueue(engine.PointerMove(pos))
	case tea.MouseActionRelease:
		m.sched.Enqueue(engine.PointerUp())
	}
}

func (m Model) center() r2.Vec {
	return r2.Vec{X: float64(m.cellsW) / 2, Y: float64(m.cellsH)}
}

func (m *Model) reload() tea.Cmd {
	if m.opts.Reload == nil {
		return nil
	}
	p, err := m.opts.Reload()
	if err != nil {
		m.status = fmt.Sprintf("reload failed: %v", err)
		return clearStatusCmd()
	}
	if err := m.sched.Reload(p); err != nil {
		m.status = fmt.Sprintf("reload failed: %v", err)
		return clearStatusCmd()
	}
	debug.Log("reloaded %s: %d nodes", m.opts.SourcePath, len(p.Nodes))
	m.status = fmt.Sprintf("reloaded: %d nodes, %d links", len(p.Nodes), len(p.Links))
	return clearStatusCmd()
}

// View renders the frame raster plus a one-line status bar.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.showHelp {
		return lipgloss.Place(m.cellsW, m.cellsH, lipgloss.Center, lipgloss.Center,
			renderHelp(m.cellsW)) + "\n" + m.statusBar()
	}

	m.sched.Draw(m.dc)
	done := metrics.Timer(metrics.Rasterize)
	raster := rasterize(m.dc.Image())
	done()
	return raster + "\n" + m.statusBar()
}

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d8dee9")).
			Background(lipgloss.Color("#3b4252"))
	statusDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#81a1c1")).
			Background(lipgloss.Color("#3b4252"))
)

func (m Model) statusBar() string {
	eng := m.sched.Engine()
	cam := m.sched.Camera()

	left := fmt.Sprintf(" %s  %d nodes  %d links  %.1fx",
		m.opts.SourcePath, eng.Len(), len(eng.Edges()), cam.Zoom)
	if m.paused {
		left += "  [paused]"
	}
	if m.status != "" {
		left += "  " + m.status
	} else if slot := m.sched.Controller().Highlight().HoveredSlot; slot >= 0 {
		left += "  " + eng.Node(slot).ID
	}

	right := "? help  q quit "
	gap := m.cellsW - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		left = runewidth.Truncate(left, m.cellsW-runewidth.StringWidth(right)-1, "…")
		gap = m.cellsW - runewidth.StringWidth(left) - runewidth.StringWidth(right)
		if gap < 0 {
			gap = 0
		}
	}
	return statusStyle.Render(left+spaces(gap)) + statusDimStyle.Render(right)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

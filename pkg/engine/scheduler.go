// Package engine ties the simulation, interaction, and rendering layers
// into a frame loop. The Scheduler owns the per-frame ordering: queued
// input first, then physics, then highlight animation, then the render
// hook. Input can be enqueued from any goroutine; frames must be driven
// from one.
package engine

import (
	"fmt"
	"io"
	"sync"

	"git.sr.ht/~sbinet/gg"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/impgraph/pkg/metrics"
	"github.com/vanderheijden86/impgraph/pkg/model"
	"github.com/vanderheijden86/impgraph/pkg/render"
	"github.com/vanderheijden86/impgraph/pkg/sim"
	"github.com/vanderheijden86/impgraph/pkg/view"
)

// maxFrameDT caps a single frame step so a stalled loop resumes without a
// physics explosion.
const maxFrameDT = 0.1

type inputKind int

const (
	inputPointerDown inputKind = iota
	inputPointerMove
	inputPointerUp
	inputPointerLeave
	inputWheel
	inputResize
)

// Input is one queued interaction event.
type Input struct {
	kind   inputKind
	pos    r2.Vec
	deltaY float64
	width  float64
	height float64
}

func PointerDown(pos r2.Vec) Input  { return Input{kind: inputPointerDown, pos: pos} }
func PointerMove(pos r2.Vec) Input  { return Input{kind: inputPointerMove, pos: pos} }
func PointerUp() Input              { return Input{kind: inputPointerUp} }
func PointerLeave() Input           { return Input{kind: inputPointerLeave} }
func Wheel(pos r2.Vec, deltaY float64) Input {
	return Input{kind: inputWheel, pos: pos, deltaY: deltaY}
}
func Resize(width, height float64) Input {
	return Input{kind: inputResize, width: width, height: height}
}

// Options configures a Scheduler.
type Options struct {
	Payload       *model.Payload
	Width, Height float64
	Params        sim.Params
	Scale         view.ScaleConfig
	Theme         render.Theme
	ClusterColors map[string]string

	// OnFrame runs at the end of every frame, after state has advanced.
	// Nil is fine for headless use.
	OnFrame func(*Scheduler)
}

// Scheduler drives the engine one frame at a time.
type Scheduler struct {
	engine     *sim.Engine
	camera     *view.Camera
	controller *view.Controller
	renderer   *render.Renderer
	scale      view.ScaleConfig
	params     sim.Params
	onFrame    func(*Scheduler)

	mu      sync.Mutex
	queue   []Input
	stopped bool

	flowTime float64
	frames   uint64
}

// New builds a scheduler around the given payload. The payload is
// validated by the simulation engine.
func New(opts Options) (*Scheduler, error) {
	eng, err := sim.New(opts.Payload, opts.Width, opts.Height, opts.Params)
	if err != nil {
		return nil, fmt.Errorf("engine setup: %w", err)
	}
	camera := view.NewCamera()
	s := &Scheduler{
		engine:     eng,
		camera:     camera,
		controller: view.NewController(eng, camera, opts.Scale),
		renderer:   render.New(opts.Theme, opts.Scale, opts.ClusterColors, opts.Width, opts.Height),
		scale:      opts.Scale,
		params:     opts.Params,
		onFrame:    opts.OnFrame,
	}
	return s, nil
}

// Enqueue adds an input event for the next frame. Events enqueued after
// Stop are dropped.
func (s *Scheduler) Enqueue(in Input) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.queue = append(s.queue, in)
}

// Frame advances the world by dt seconds: drain queued input, step the
// simulation, advance highlight fades and ambient animation, then invoke
// the frame hook. Returns false once the scheduler is stopped, without
// doing any work.
func (s *Scheduler) Frame(dt float64) bool {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return false
	}
	pending := s.queue
	s.queue = nil
	s.mu.Unlock()

	if dt > maxFrameDT {
		dt = maxFrameDT
	}

	for _, in := range pending {
		s.apply(in)
	}

	tick := metrics.Timer(metrics.SimTick)
	s.engine.Tick(dt)
	tick()
	s.controller.Highlight().Tick(dt)
	s.renderer.TickParticles(dt)
	s.flowTime += dt
	s.frames++

	if s.onFrame != nil {
		s.onFrame(s)
	}
	return true
}

func (s *Scheduler) apply(in Input) {
	switch in.kind {
	case inputPointerDown:
		s.controller.PointerDown(in.pos)
	case inputPointerMove:
		s.controller.PointerMove(in.pos)
	case inputPointerUp:
		s.controller.PointerUp()
	case inputPointerLeave:
		s.controller.PointerLeave()
	case inputWheel:
		s.controller.Wheel(in.pos, in.deltaY)
	case inputResize:
		s.engine.Resize(in.width, in.height)
		s.renderer.Resize(in.width, in.height)
	}
}

// Stop makes the scheduler terminal: pending input is discarded and every
// later Frame call is a no-op. Stop is idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.queue = nil
}

// Stopped reports whether Stop has been called.
func (s *Scheduler) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// Reload swaps in a new payload, keeping the camera where the user left
// it. Interaction state resets because node slots change.
func (s *Scheduler) Reload(p *model.Payload) error {
	width, height := s.engine.Size()
	eng, err := sim.New(p, width, height, s.params)
	if err != nil {
		return fmt.Errorf("engine reload: %w", err)
	}
	s.mu.Lock()
	s.queue = nil
	s.mu.Unlock()
	s.engine = eng
	s.controller = view.NewController(eng, s.camera, s.scale)
	return nil
}

// Settle runs the simulation headless for n fixed steps, useful before a
// static export.
func (s *Scheduler) Settle(n int, dt float64) {
	for i := 0; i < n; i++ {
		if !s.Frame(dt) {
			return
		}
	}
}

// frame assembles the render input for the current state.
func (s *Scheduler) frame() render.Frame {
	return render.Frame{
		Engine:    s.engine,
		Camera:    s.camera,
		Scaled:    view.NewScaledValues(s.scale, s.camera.Zoom),
		Highlight: s.controller.Highlight(),
		FlowTime:  s.flowTime,
	}
}

// Draw renders the current state onto a gg context.
func (s *Scheduler) Draw(dc *gg.Context) {
	defer metrics.Timer(metrics.FrameDraw)()
	s.renderer.Draw(dc, s.frame())
}

// WriteSVG renders the current state as an SVG document.
func (s *Scheduler) WriteSVG(w io.Writer) error {
	defer metrics.Timer(metrics.SVGRender)()
	width, height := s.engine.Size()
	return s.renderer.WriteSVG(w, s.frame(), int(width), int(height))
}

// Accessors for the composed parts.
func (s *Scheduler) Engine() *sim.Engine          { return s.engine }
func (s *Scheduler) Camera() *view.Camera         { return s.camera }
func (s *Scheduler) Controller() *view.Controller { return s.controller }
func (s *Scheduler) Renderer() *render.Renderer   { return s.renderer }

// Frames returns how many frames have run.
func (s *Scheduler) Frames() uint64 { return s.frames }

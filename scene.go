package reveal

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// EventSink is the interface for optional event forwarding (see the ecs
// module). When set on a Scene, every trigger event and replay is emitted.
type EventSink interface {
	EmitReveal(event RevealEvent)
}

// RevealEvent reports one observer event or replay for a section.
type RevealEvent struct {
	Section  string
	Kind     EventKind
	Progress float64
	Scroll   float64
}

// Scene is the top-level object that owns the node tree, the viewport, the
// coordinator registry and the optional replay hook. Everything runs on the
// goroutine that calls Step.
type Scene struct {
	root     *Node
	viewport *Viewport
	registry *Registry
	replay   *ReplayHook
	sink     EventSink
	log      *log.Logger
	debug    bool

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color

	// WheelStep is the world distance scrolled per mouse-wheel notch.
	WheelStep float64

	now        float64
	frame      uint64
	updateFunc func() error
	stepBuf    []*Coordinator

	// Scripted input (see inject.go and testrunner.go)
	injectQueue []syntheticInput
	testRunner  *TestRunner
}

const defaultWheelStep = 48

// NewScene creates a scene with a pre-created root container and a viewport
// of the given screen size.
func NewScene(width, height float64) *Scene {
	root := NewContainer("root")
	root.sceneRoot = true
	return &Scene{
		root:      root,
		viewport:  NewViewport(width, height),
		registry:  NewRegistry(),
		log:       newLogger(),
		WheelStep: defaultWheelStep,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node { return s.root }

// Viewport returns the scene's viewport.
func (s *Scene) Viewport() *Viewport { return s.viewport }

// Registry returns the scene's coordinator registry.
func (s *Scene) Registry() *Registry { return s.registry }

// Now returns the scene clock in seconds: the sum of every Step's dt.
func (s *Scene) Now() float64 { return s.now }

// Frame returns the number of completed steps.
func (s *Scene) Frame() uint64 { return s.frame }

// Logger returns the scene's logger.
func (s *Scene) Logger() *log.Logger { return s.log }

// SetLogger replaces the scene's logger.
func (s *Scene) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	s.log = l
	if s.replay != nil {
		s.replay.log = l
	}
}

// SetEventSink sets the optional event forwarder.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

func (s *Scene) emitReveal(ev RevealEvent) {
	if s.sink != nil {
		s.sink.EmitReveal(ev)
	}
}

// SetUpdateFunc sets a callback run at the start of every Update, before
// input and stepping. Returning an error stops Run.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// EnableReplay creates a ReplayHook bound to the scene's registry, clock,
// viewport and logger, and settles it every Step.
func (s *Scene) EnableReplay(opts ReplayOptions) *ReplayHook {
	if opts.Viewport == nil {
		opts.Viewport = s.viewport
	}
	if opts.Clock == nil {
		opts.Clock = s.Now
	}
	if opts.Logger == nil {
		opts.Logger = s.log
	}
	s.replay = NewReplayHook(s.registry, opts)
	return s.replay
}

// SetReplayHook installs a hook created elsewhere; nil removes it.
func (s *Scene) SetReplayHook(h *ReplayHook) {
	s.replay = h
}

// ReplayHook returns the installed hook, or nil.
func (s *Scene) ReplayHook() *ReplayHook { return s.replay }

// Update is the ebiten-facing frame entry: it runs the update callback,
// reads real input and steps by one tick.
func (s *Scene) Update() error {
	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	s.processInput()
	s.Step(float32(1.0 / float64(ebiten.TPS())))
	return nil
}

// Step advances the scene by dt seconds:
//
//  1. clock, scripted steps and injected input
//  2. layout transforms and viewport scrolling
//  3. running transitions advance by dt
//  4. the replay hook settles (layout is final for the frame)
//  5. every observer samples the viewport and dispatches events
//
// A transition started by an event in step 5 first moves on the next Step,
// so its start time is this frame's clock value.
func (s *Scene) Step(dt float32) {
	s.now += float64(dt)
	s.frame++

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput()

	updateWorldTransform(s.root, identityTransform, identityTransform, 1.0, false)
	s.viewport.update(dt)

	s.stepBuf = s.registry.snapshot(s.stepBuf)
	for _, c := range s.stepBuf {
		c.advance(float64(dt))
	}

	if s.replay != nil {
		s.replay.Settle(s.now)
	}

	s.stepBuf = s.registry.snapshot(s.stepBuf)
	for _, c := range s.stepBuf {
		c.sample(s.viewport)
	}
	clear(s.stepBuf)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// tree operations panic, tree depth and child count warnings are logged, and
// components log activations, drops and replays at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled {
		s.log.SetLevel(log.DebugLevel)
		debugLogger = s.log
	} else {
		s.log.SetLevel(log.WarnLevel)
		debugLogger = discardLogger
	}
}

// FitContent sets the viewport's scroll bounds to the layout bounds of the
// root's children.
func (s *Scene) FitContent() {
	var r Rect
	first := true
	for _, child := range s.root.children {
		b := child.LayoutBounds()
		if first {
			r, first = b, false
			continue
		}
		minX, minY := min(r.X, b.X), min(r.Y, b.Y)
		maxX, maxY := max(r.Right(), b.Right()), max(r.Bottom(), b.Bottom())
		r = Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
	}
	s.viewport.SetBounds(r)
}

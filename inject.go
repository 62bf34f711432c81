package reveal

type syntheticKind uint8

const (
	syntheticScrollBy syntheticKind = iota
	syntheticScrollTo
	syntheticSignal
)

// syntheticInput represents a single injected input event. One event is
// consumed per Step, identical to how real input arrives once per frame.
type syntheticInput struct {
	kind     syntheticKind
	x, y     float64
	duration float32
	section  string
}

// InjectScroll queues an immediate scroll by (0, dy).
func (s *Scene) InjectScroll(dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticInput{kind: syntheticScrollBy, y: dy})
}

// InjectScrollSteps spreads a scroll of dy over frames steps, one per frame,
// the way a wheel gesture arrives. Minimum frames is 1.
func (s *Scene) InjectScrollSteps(dy float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	step := dy / float64(frames)
	for range frames {
		s.InjectScroll(step)
	}
}

// InjectScrollTo queues a ScrollTo of the viewport top to y over duration
// seconds (0 jumps).
func (s *Scene) InjectScrollTo(y float64, duration float32) {
	s.injectQueue = append(s.injectQueue, syntheticInput{kind: syntheticScrollTo, y: y, duration: duration})
}

// InjectSignal queues a navigation signal for the replay hook.
func (s *Scene) InjectSignal(section string) {
	s.injectQueue = append(s.injectQueue, syntheticInput{kind: syntheticSignal, section: section})
}

// processInjectedInput pops one event from the inject queue and applies it.
// Returns true if an event was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	vp := s.viewport
	switch evt.kind {
	case syntheticScrollBy:
		vp.ScrollBy(0, evt.y)
	case syntheticScrollTo:
		vp.ScrollTo(vp.ScrollX, evt.y, evt.duration, nil)
	case syntheticSignal:
		if s.replay != nil {
			s.replay.Signal(evt.section)
		} else {
			s.log.Debug("signal injected without replay hook", "section", evt.section)
		}
	}
	return true
}

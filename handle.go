package reveal

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// timeEpsilon absorbs float accumulation when comparing elapsed frame time
// against delays and durations.
const timeEpsilon = 1e-6

// HandleKind identifies what started a Handle.
type HandleKind uint8

const (
	HandleForward HandleKind = iota // play-forward toward Visible
	HandleReverse                   // play-reverse toward Hidden
	HandleForce                     // force-play from a replay signal
)

var handleKindNames = [...]string{"forward", "reverse", "force"}

func (k HandleKind) String() string {
	if int(k) < len(handleKindNames) {
		return handleKindNames[k]
	}
	return "unknown"
}

// Handle is one transition of one Target's timeline position. The Driver owns
// it; a Target has at most one active Handle and a new command cancels the
// old one before starting. The timeline runs linearly through a gween tween;
// easing is applied when the position is turned into a pose.
type Handle struct {
	Kind HandleKind

	target   *Target
	tween    *gween.Tween
	from, to float64
	delay    float64
	elapsed  float64
	duration float64

	started   bool
	done      bool
	cancelled bool
}

func newHandle(t *Target, kind HandleKind, to, fullDuration, delay float64) *Handle {
	from := t.progress
	dur := fullDuration * math.Abs(to-from)
	h := &Handle{
		Kind:     kind,
		target:   t,
		from:     from,
		to:       to,
		delay:    delay,
		duration: dur,
		tween:    gween.New(float32(from), float32(to), float32(dur), ease.Linear),
	}
	if delay <= timeEpsilon {
		h.delay = 0
		h.start()
	}
	return h
}

// Target returns the target this handle animates.
func (h *Handle) Target() *Target { return h.target }

// Started reports whether the stagger delay has elapsed.
func (h *Handle) Started() bool { return h.started }

// Done reports whether the handle ran to completion.
func (h *Handle) Done() bool { return h.done }

// Cancelled reports whether the handle was cancelled before completing.
func (h *Handle) Cancelled() bool { return h.cancelled }

// Active reports whether the handle is pending or running.
func (h *Handle) Active() bool { return !h.done && !h.cancelled }

// Duration returns the running time of the transition excluding delay.
func (h *Handle) Duration() float64 { return h.duration }

// Delay returns the stagger delay still to elapse.
func (h *Handle) Delay() float64 { return h.delay }

func (h *Handle) start() {
	h.started = true
	if h.to > h.from {
		h.target.state = StateEntering
	} else if h.to < h.from {
		h.target.state = StateLeaving
	}
}

// Cancel stops the handle. The target keeps its last computed pose, except
// for a force-play handle, which always resolves to fully Visible.
func (h *Handle) Cancel() {
	if !h.Active() {
		return
	}
	h.cancelled = true
	t := h.target
	if t.handle == h {
		t.handle = nil
	}
	if h.Kind == HandleForce {
		t.progress = 1
		t.state = StateVisible
		t.apply()
	}
}

// advance moves the handle dt seconds forward, consuming any remaining delay
// first, and writes the resulting pose.
func (h *Handle) advance(dt float64) {
	if !h.Active() {
		return
	}
	if h.delay > 0 {
		if dt < h.delay-timeEpsilon {
			h.delay -= dt
			return
		}
		dt -= h.delay
		if dt < 0 {
			dt = 0
		}
		h.delay = 0
		h.start()
	}

	h.elapsed += dt
	t := h.target
	if h.elapsed >= h.duration-timeEpsilon {
		h.finish()
		return
	}
	p, _ := h.tween.Set(float32(h.elapsed))
	t.progress = clamp01(float64(p))
	t.apply()
}

func (h *Handle) finish() {
	t := h.target
	h.done = true
	t.progress = h.to
	if h.to >= 1 {
		t.state = StateVisible
	} else {
		t.state = StateHidden
	}
	if t.handle == h {
		t.handle = nil
	}
	t.apply()
}

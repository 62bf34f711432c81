package reveal

import (
	"github.com/charmbracelet/log"
	"github.com/tanema/gween/ease"
)

// ReplayOptions configures a ReplayHook.
type ReplayOptions struct {
	// Window is the duplicate-collapse window in seconds. A signal equal to
	// the last accepted one within Window is dropped. Zero means
	// DefaultReplayWindow; negative disables collapsing.
	Window float64

	// ScrollIntoView scrolls Viewport so the section's region sits
	// ScrollMargin below the top edge.
	ScrollIntoView bool
	Viewport       *Viewport
	ScrollMargin   float64
	ScrollDuration float32
	ScrollEase     ease.TweenFunc

	// Clock stamps arriving signals. Nil uses the time of the last Settle.
	Clock  func() float64
	Logger *log.Logger
}

type pendingSignal struct {
	section string
	at      float64
}

// ReplayHook turns navigation signals into force-play commands for every
// coordinator registered under the signalled section. Signals queue on
// arrival and take effect at Settle, the point in a frame where layout and
// scrolling are final.
type ReplayHook struct {
	reg     *Registry
	opts    ReplayOptions
	log     *log.Logger
	pending []pendingSignal

	settledAt  float64
	last       string
	lastAt     float64
	current    string
	served     map[*Coordinator]uint64
	replayed   int
	collapsed  int
	detachSrcs []func()
}

// NewReplayHook creates a hook that resolves sections through reg.
func NewReplayHook(reg *Registry, opts ReplayOptions) *ReplayHook {
	if opts.Window == 0 {
		opts.Window = DefaultReplayWindow
	}
	l := opts.Logger
	if l == nil {
		l = discardLogger
	}
	return &ReplayHook{reg: reg, opts: opts, log: l, served: make(map[*Coordinator]uint64)}
}

// Signal queues a replay request for section.
func (h *ReplayHook) Signal(section string) {
	at := h.settledAt
	if h.opts.Clock != nil {
		at = h.opts.Clock()
	}
	h.pending = append(h.pending, pendingSignal{section: section, at: at})
}

// Attach subscribes the hook to src. When src is a CurrentSource with a
// non-empty current section, that section is queued as a signal. The
// returned function unsubscribes.
func (h *ReplayHook) Attach(src SignalSource) (cancel func()) {
	if cs, ok := src.(CurrentSource); ok {
		if section := cs.Current(); section != "" {
			h.Signal(section)
		}
	}
	cancel = src.Subscribe(h.Signal)
	h.detachSrcs = append(h.detachSrcs, cancel)
	return cancel
}

// Close unsubscribes from every attached source and drops pending signals.
func (h *ReplayHook) Close() {
	for _, cancel := range h.detachSrcs {
		cancel()
	}
	h.detachSrcs = nil
	h.pending = h.pending[:0]
	h.current = ""
	clear(h.served)
}

// Pending returns the number of queued signals.
func (h *ReplayHook) Pending() int { return len(h.pending) }

// Replayed returns how many signals have been applied.
func (h *ReplayHook) Replayed() int { return h.replayed }

// Collapsed returns how many duplicate signals have been dropped.
func (h *ReplayHook) Collapsed() int { return h.collapsed }

// Settle applies queued signals in arrival order, then force-plays any
// coordinator activated under the current section since it was signalled.
// now is the current scene time in seconds.
func (h *ReplayHook) Settle(now float64) {
	h.settledAt = now
	if len(h.pending) > 0 {
		queue := h.pending
		h.pending = nil
		for _, sig := range queue {
			h.apply(sig)
		}
		if h.pending == nil {
			h.pending = queue[:0]
		}
	}
	h.catchUp()
}

// Current returns the section named by the most recent non-empty signal,
// whether or not it was active at the time.
func (h *ReplayHook) Current() string { return h.current }

// catchUp replays the current section for coordinators that were not active
// when its signal was applied.
func (h *ReplayHook) catchUp() {
	if h.current == "" {
		return
	}
	var late []*Coordinator
	for _, c := range h.reg.Section(h.current) {
		if gen, ok := h.served[c]; !ok || gen != c.gen {
			late = append(late, c)
		}
	}
	if len(late) == 0 {
		return
	}
	h.replayed++
	h.play(late)
	h.log.Debug("replayed section on activation", "section", h.current, "coordinators", len(late))
}

func (h *ReplayHook) play(coords []*Coordinator) {
	for _, c := range coords {
		h.served[c] = c.gen
	}
	for _, c := range coords {
		c.forcePlay()
	}
	if h.opts.ScrollIntoView && h.opts.Viewport != nil {
		if region := coords[0].Region(); region != nil {
			vp := h.opts.Viewport
			top := region.LayoutBounds().Y - h.opts.ScrollMargin
			vp.ScrollTo(vp.ScrollX, top, h.opts.ScrollDuration, h.opts.ScrollEase)
		}
	}
}

func (h *ReplayHook) apply(sig pendingSignal) {
	if sig.section == "" {
		h.last = ""
		h.current = ""
		clear(h.served)
		return
	}
	if h.opts.Window > 0 && sig.section == h.last && sig.at-h.lastAt < h.opts.Window {
		h.collapsed++
		h.log.Debug("collapsed duplicate replay signal", "section", sig.section)
		return
	}
	h.current = sig.section
	clear(h.served)
	coords := h.reg.Section(sig.section)
	if len(coords) == 0 {
		h.log.Debug("replay signal for inactive section", "section", sig.section)
		return
	}
	h.last, h.lastAt = sig.section, sig.at
	h.replayed++
	// forcePlay may emit events whose handlers dispose coordinators.
	h.play(append([]*Coordinator(nil), coords...))
	h.log.Debug("replayed section", "section", sig.section, "coordinators", len(coords))
}

package reveal

import (
	"github.com/charmbracelet/log"
	"github.com/tanema/gween/ease"
)

// Target is one element a Driver animates: its handle, hidden-pose offset
// and stagger index. Identity is the Node.
type Target struct {
	Node   *Node
	Offset Vec2
	Index  int

	driver   *Driver
	progress float64
	state    State
	handle   *Handle
	dropped  bool
}

// State returns the target's reveal state.
func (t *Target) State() State { return t.state }

// Progress returns the timeline position in [0, 1]; 0 is Hidden, 1 Visible.
func (t *Target) Progress() float64 { return t.progress }

// Fraction returns the eased pose fraction currently applied.
func (t *Target) Fraction() float64 {
	return t.driver.fraction(t.progress)
}

// Handle returns the active handle, or nil.
func (t *Target) Handle() *Handle { return t.handle }

// Dropped reports whether the target was removed after its node detached.
func (t *Target) Dropped() bool { return t.dropped }

// apply writes the pose for the current progress to the node.
func (t *Target) apply() {
	if t.dropped {
		return
	}
	f := t.Fraction()
	n := t.Node
	n.Alpha = clamp01(f)
	n.SetTranslate(t.Offset.X*(1-f), t.Offset.Y*(1-f))
}

func (t *Target) cancel() {
	if t.handle != nil {
		t.handle.Cancel()
	}
}

// Driver owns the per-target reveal state machines of one activation.
// In ModeDiscrete it answers play/reverse commands; in ModeScrubbed it maps
// progress straight to poses. Commands for the other mode are refused.
type Driver struct {
	mode           Mode
	duration       float64
	stagger        float64
	replayDuration float64
	ease           ease.TweenFunc
	scrubEase      ease.TweenFunc

	scope   *Node
	targets []*Target
	count   int
	log     *log.Logger
}

// NewDriver builds a driver for nodes using the timing, easing, offset and
// mode fields of cfg. Targets whose node leaves scope (or is disposed) are
// dropped silently; a nil scope only checks disposal.
func NewDriver(scope *Node, nodes []*Node, cfg Config) *Driver {
	cfg = cfg.withDefaults()
	d := &Driver{
		mode:           cfg.Mode,
		duration:       float64(cfg.Duration),
		stagger:        float64(cfg.Stagger),
		replayDuration: float64(cfg.ReplayDuration),
		ease:           cfg.Ease,
		scrubEase:      cfg.ScrubEase,
		scope:          scope,
		count:          len(nodes),
		log:            discardLogger,
	}
	d.targets = make([]*Target, len(nodes))
	for i, n := range nodes {
		d.targets[i] = &Target{Node: n, Offset: *cfg.Offset, Index: i, driver: d}
	}
	return d
}

// SetLogger routes the driver's debug output.
func (d *Driver) SetLogger(l *log.Logger) {
	if l == nil {
		l = discardLogger
	}
	d.log = l
}

// Mode returns the driver's animation mode.
func (d *Driver) Mode() Mode { return d.mode }

// Targets returns the live targets in stagger order. The returned slice
// MUST NOT be mutated.
func (d *Driver) Targets() []*Target {
	return d.targets
}

// Len returns the number of live targets.
func (d *Driver) Len() int { return len(d.targets) }

func (d *Driver) fraction(p float64) float64 {
	fn := d.ease
	if d.mode == ModeScrubbed {
		fn = d.scrubEase
	}
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return float64(fn(float32(p), 0, 1, 1))
}

func (d *Driver) attached(n *Node) bool {
	if n.IsDisposed() {
		return false
	}
	return d.scope == nil || n.AttachedTo(d.scope)
}

// prune drops targets whose node detached from the rendering context.
func (d *Driver) prune() {
	kept := d.targets[:0]
	for _, t := range d.targets {
		if d.attached(t.Node) {
			kept = append(kept, t)
			continue
		}
		if t.handle != nil {
			t.handle.cancelled = true
			t.handle = nil
		}
		t.dropped = true
		d.log.Debug("dropped detached target", "node", t.Node.Name, "index", t.Index)
	}
	for i := len(kept); i < len(d.targets); i++ {
		d.targets[i] = nil
	}
	d.targets = kept
}

// Hide cancels all handles and puts every target in its Hidden pose.
func (d *Driver) Hide() {
	d.prune()
	for _, t := range d.targets {
		t.cancel()
		t.progress = 0
		t.state = StateHidden
		t.apply()
	}
}

// Dispatch routes an observer event. Directional events run the mapped
// action in discrete mode; progress events scrub in scrubbed mode. It
// returns false when the event does not belong to the driver's mode.
func (d *Driver) Dispatch(ev TriggerEvent, actions Actions) bool {
	if ev.Kind == EventProgress {
		return d.SetProgress(ev.Progress)
	}
	if !ev.Kind.Directional() || d.mode != ModeDiscrete {
		return false
	}
	switch actions[ev.Kind] {
	case ActionPlay:
		return d.PlayForward()
	case ActionReverse:
		return d.PlayReverse()
	case ActionComplete:
		return d.Complete()
	case ActionReset:
		return d.Reset()
	}
	return true
}

// PlayForward starts every not-yet-visible target toward Visible after its
// stagger delay. A target already heading to Visible keeps its handle.
func (d *Driver) PlayForward() bool {
	if d.mode != ModeDiscrete {
		d.log.Debug("ignored play-forward in scrubbed mode")
		return false
	}
	d.prune()
	for _, t := range d.targets {
		if h := t.handle; h != nil && h.Kind != HandleReverse {
			continue
		}
		t.cancel()
		if t.progress >= 1 {
			t.state = StateVisible
			continue
		}
		t.handle = newHandle(t, HandleForward, 1, d.duration, float64(t.Index)*d.stagger)
	}
	return true
}

// PlayReverse starts every target with any visibility back toward Hidden
// from its current pose, without stagger.
func (d *Driver) PlayReverse() bool {
	if d.mode != ModeDiscrete {
		d.log.Debug("ignored play-reverse in scrubbed mode")
		return false
	}
	d.prune()
	for _, t := range d.targets {
		if h := t.handle; h != nil && h.Kind == HandleReverse {
			continue
		}
		t.cancel()
		if t.progress <= 0 {
			t.state = StateHidden
			continue
		}
		t.handle = newHandle(t, HandleReverse, 0, d.duration, 0)
	}
	return true
}

// Complete jumps every target to Visible.
func (d *Driver) Complete() bool {
	if d.mode != ModeDiscrete {
		return false
	}
	d.jump(1, StateVisible)
	return true
}

// Reset jumps every target to Hidden.
func (d *Driver) Reset() bool {
	if d.mode != ModeDiscrete {
		return false
	}
	d.jump(0, StateHidden)
	return true
}

func (d *Driver) jump(p float64, s State) {
	d.prune()
	for _, t := range d.targets {
		t.cancel()
		t.progress = p
		t.state = s
		t.apply()
	}
}

// SetProgress scrubs every target to the group progress p, clamped to
// [0, 1]. With a stagger, each target occupies its own slice of the group
// timeline.
func (d *Driver) SetProgress(p float64) bool {
	if d.mode != ModeScrubbed {
		d.log.Debug("ignored progress in discrete mode")
		return false
	}
	d.prune()
	p = clamp01(p)
	total := d.duration + float64(max(d.count-1, 0))*d.stagger
	for _, t := range d.targets {
		t.cancel()
		local := p
		if d.stagger > 0 && d.duration > 0 {
			local = clamp01((p*total - float64(t.Index)*d.stagger) / d.duration)
		}
		prev := t.progress
		t.progress = local
		switch {
		case local <= 0:
			t.state = StateHidden
		case local >= 1:
			t.state = StateVisible
		case local > prev:
			t.state = StateEntering
		case local < prev:
			t.state = StateLeaving
		}
		t.apply()
	}
	return true
}

// ForcePlay cancels whatever each target is doing and drives it to Visible
// without stagger. It works in both modes. A negative replay duration snaps.
func (d *Driver) ForcePlay() {
	d.prune()
	for _, t := range d.targets {
		t.cancel()
		if t.progress >= 1 {
			t.state = StateVisible
			t.apply()
			continue
		}
		if d.replayDuration < 0 {
			t.progress = 1
			t.state = StateVisible
			t.apply()
			continue
		}
		t.state = StateEntering
		t.handle = newHandle(t, HandleForce, 1, d.replayDuration, 0)
	}
}

// Advance steps every active handle by dt seconds.
func (d *Driver) Advance(dt float64) {
	d.prune()
	for _, t := range d.targets {
		if t.handle != nil {
			t.handle.advance(dt)
		}
	}
}

// Busy reports whether any handle is pending or running.
func (d *Driver) Busy() bool {
	for _, t := range d.targets {
		if t.handle != nil {
			return true
		}
	}
	return false
}

// CancelAll cancels every handle, leaving poses where they are.
func (d *Driver) CancelAll() {
	for _, t := range d.targets {
		t.cancel()
	}
}

// release drops all target references.
func (d *Driver) release() {
	for i := range d.targets {
		d.targets[i] = nil
	}
	d.targets = nil
}

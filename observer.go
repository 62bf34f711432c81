package reveal

// Trigger describes the region an Observer watches.
type Trigger struct {
	Region      *Node
	StartOffset float64
	EndOffset   float64
	Mode        Mode
}

type phase uint8

const (
	phaseBefore phase = iota
	phaseInside
	phaseAfter
)

// Observer watches one trigger region against a Viewport and dispatches
// TriggerEvents to a single handler. It holds no timers; Scene.Step samples
// it once per frame.
type Observer struct {
	trigger  Trigger
	handler  func(TriggerEvent)
	primed   bool
	phase    phase
	progress float64
	disposed bool
}

// Observe creates an observer for the trigger. Events begin with the first
// Sample call.
func Observe(trigger Trigger, handler func(TriggerEvent)) *Observer {
	return &Observer{trigger: trigger, handler: handler}
}

// Dispose stops all future event emission, including events still pending
// from a Sample that is dispatching when Dispose is called. Idempotent.
func (o *Observer) Dispose() {
	o.disposed = true
	o.handler = nil
}

// Disposed reports whether Dispose has been called.
func (o *Observer) Disposed() bool {
	return o.disposed
}

// Region returns the watched node.
func (o *Observer) Region() *Node {
	return o.trigger.Region
}

// scrollRange returns the scroll positions at which the region's top meets
// the start line and its bottom meets the end line.
func (o *Observer) scrollRange(vp *Viewport) (start, end float64) {
	b := o.trigger.Region.LayoutBounds()
	h := vp.VisibleBounds().Height
	start = b.Y - h*(1-o.trigger.StartOffset)
	end = b.Bottom() - h*o.trigger.EndOffset
	return start, end
}

// Progress returns the region's current scrub progress in [0, 1].
func (o *Observer) Progress(vp *Viewport) float64 {
	start, end := o.scrollRange(vp)
	return scrubProgress(vp.ScrollY, start, end)
}

func scrubProgress(s, start, end float64) float64 {
	span := end - start
	if span <= 0 {
		if s >= start {
			return 1
		}
		return 0
	}
	return clamp01((s - start) / span)
}

// Sample measures the region against the viewport and dispatches whatever
// events the movement since the previous sample implies.
func (o *Observer) Sample(vp *Viewport) {
	if o.disposed {
		return
	}
	s := vp.ScrollY
	start, end := o.scrollRange(vp)

	if o.trigger.Mode == ModeScrubbed {
		p := scrubProgress(s, start, end)
		if o.primed && p == o.progress {
			return
		}
		o.primed = true
		o.progress = p
		o.emit(TriggerEvent{Kind: EventProgress, Progress: p, Scroll: s})
		return
	}

	next := phaseInside
	switch {
	case s < start:
		next = phaseBefore
	case s > end:
		next = phaseAfter
	}
	prev := o.phase
	if !o.primed {
		o.primed = true
		prev = phaseBefore
	}
	o.phase = next
	if prev == next {
		return
	}

	var kinds [2]EventKind
	n := 0
	switch {
	case prev == phaseBefore && next == phaseInside:
		kinds[0], n = EventForwardEnter, 1
	case prev == phaseInside && next == phaseAfter:
		kinds[0], n = EventForwardLeave, 1
	case prev == phaseBefore && next == phaseAfter:
		kinds[0], kinds[1], n = EventForwardEnter, EventForwardLeave, 2
	case prev == phaseAfter && next == phaseInside:
		kinds[0], n = EventBackwardEnter, 1
	case prev == phaseInside && next == phaseBefore:
		kinds[0], n = EventBackwardLeave, 1
	case prev == phaseAfter && next == phaseBefore:
		kinds[0], kinds[1], n = EventBackwardEnter, EventBackwardLeave, 2
	}
	for i := 0; i < n; i++ {
		if !o.emit(TriggerEvent{Kind: kinds[i], Scroll: s}) {
			return
		}
	}
}

// emit dispatches one event unless the observer was disposed, possibly by
// the handler of a previous event in the same sample.
func (o *Observer) emit(ev TriggerEvent) bool {
	if o.disposed || o.handler == nil {
		return false
	}
	o.handler(ev)
	return !o.disposed
}

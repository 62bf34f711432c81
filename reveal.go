package reveal

import (
	"fmt"
	"image/color"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default node color.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Bottom returns the Y coordinate of the rectangle's lower edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Right returns the X coordinate of the rectangle's right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeBox                       // solid rectangle of Width x Height
)

// Mode selects how a trigger region drives its targets.
type Mode uint8

const (
	ModeDiscrete Mode = iota // play/reverse on enter and leave events
	ModeScrubbed             // progress tied continuously to scroll position
)

// String returns the lowercase mode name used in page files.
func (m Mode) String() string {
	switch m {
	case ModeDiscrete:
		return "discrete"
	case ModeScrubbed:
		return "scrubbed"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// ParseMode converts a page-file mode name. The empty string is ModeDiscrete.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "discrete":
		return ModeDiscrete, nil
	case "scrubbed", "scrub":
		return ModeScrubbed, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
	}
}

// EventKind identifies a trigger event.
type EventKind uint8

const (
	EventForwardEnter  EventKind = iota // region entered while scrolling down
	EventForwardLeave                   // region left past its end while scrolling down
	EventBackwardEnter                  // region re-entered while scrolling up
	EventBackwardLeave                  // region left past its start while scrolling up
	EventProgress                       // scrubbed progress changed
	EventReplay                         // navigation replay forced the section visible
)

var eventKindNames = [...]string{
	EventForwardEnter:  "forward-enter",
	EventForwardLeave:  "forward-leave",
	EventBackwardEnter: "backward-enter",
	EventBackwardLeave: "backward-leave",
	EventProgress:      "progress",
	EventReplay:        "replay",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", k)
}

// Directional reports whether k is one of the four enter/leave kinds.
func (k EventKind) Directional() bool {
	return k <= EventBackwardLeave
}

// TriggerEvent is the single event variant an Observer dispatches.
// Progress is only meaningful for EventProgress.
type TriggerEvent struct {
	Kind     EventKind
	Progress float64
	Scroll   float64
}

// Action is what a discrete driver does in response to a directional event.
type Action uint8

const (
	ActionNone     Action = iota // ignore the event
	ActionPlay                   // play forward toward Visible
	ActionReverse                // play backward toward Hidden
	ActionComplete               // jump to Visible
	ActionReset                  // jump to Hidden
)

// Actions maps each directional event kind to an Action, indexed by
// EventForwardEnter..EventBackwardLeave. The zero value means DefaultActions.
type Actions [4]Action

// DefaultActions plays on every enter and reverses on every leave.
var DefaultActions = Actions{ActionPlay, ActionReverse, ActionPlay, ActionReverse}

// OnceActions plays on the first forward enter and never hides again.
var OnceActions = Actions{ActionPlay, ActionNone, ActionNone, ActionNone}

// ParseAction converts a page-file action name.
func ParseAction(s string) (Action, error) {
	switch s {
	case "none":
		return ActionNone, nil
	case "play":
		return ActionPlay, nil
	case "reverse":
		return ActionReverse, nil
	case "complete":
		return ActionComplete, nil
	case "reset":
		return ActionReset, nil
	default:
		return 0, fmt.Errorf("%w: unknown action %q", ErrInvalidConfig, s)
	}
}

// State is a target's position in the reveal state machine.
type State uint8

const (
	StateHidden State = iota
	StateEntering
	StateVisible
	StateLeaving
)

var stateNames = [...]string{"hidden", "entering", "visible", "leaving"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

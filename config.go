package reveal

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tanema/gween/ease"
)

// ErrInvalidConfig is wrapped by every configuration error reported from
// Activate, LoadPage and Config.Validate.
var ErrInvalidConfig = errors.New("reveal: invalid config")

// Defaults applied to zero-valued Config fields.
const (
	DefaultDuration     float32 = 0.7
	DefaultReplayWindow         = 0.3
)

// DefaultOffset is the hidden-pose offset used when Config.Offset is nil.
var DefaultOffset = Vec2{X: 0, Y: 24}

// Config describes one reveal activation. All fields except Region/Root
// are optional.
type Config struct {
	// Section is the navigation key replay signals match. Empty means the
	// activation does not take part in replay.
	Section string

	// Region is the trigger region. Defaults to Root.
	Region *Node
	// Root scopes Selector. Defaults to Region.
	Root *Node

	// Targets are explicit element handles, animated in the given order.
	Targets []*Node
	// Selector picks additional targets under Root in document order.
	Selector string

	Mode Mode

	// StartOffset is the start line's margin above the viewport bottom and
	// EndOffset the end line's margin below the viewport top, both as a
	// fraction of viewport height. Zero for both means plain intersection.
	StartOffset float64
	EndOffset   float64

	// Duration of a full Hidden→Visible transition in seconds (default 0.7).
	Duration float32
	// Stagger is the per-target delay step in seconds.
	Stagger float32
	// Ease shapes discrete transitions (default ease.OutCubic).
	Ease ease.TweenFunc
	// ScrubEase shapes scrubbed progress (default linear).
	ScrubEase ease.TweenFunc

	// Offset is the hidden pose relative to the layout position
	// (default {0, 24}).
	Offset *Vec2

	// ReplayDuration is the force-play duration (default Duration). A
	// negative value snaps to Visible.
	ReplayDuration float32

	// Actions maps directional events to driver actions (default
	// DefaultActions). Ignored in scrubbed mode.
	Actions Actions
	// Once selects OnceActions when Actions is unset.
	Once bool
}

// Validate reports configuration defects. It does not inspect layout.
func (c *Config) Validate() error {
	if c.Region == nil && c.Root == nil {
		return fmt.Errorf("%w: region and root are both nil", ErrInvalidConfig)
	}
	if c.Mode > ModeScrubbed {
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidConfig, c.Mode)
	}
	if err := checkSeconds("duration", c.Duration); err != nil {
		return err
	}
	if err := checkSeconds("stagger", c.Stagger); err != nil {
		return err
	}
	if isBad(float64(c.ReplayDuration)) {
		return fmt.Errorf("%w: replay duration %v is not finite", ErrInvalidConfig, c.ReplayDuration)
	}
	if err := checkOffset("start offset", c.StartOffset); err != nil {
		return err
	}
	if err := checkOffset("end offset", c.EndOffset); err != nil {
		return err
	}
	if c.StartOffset+c.EndOffset >= 1 {
		return fmt.Errorf("%w: end offset %.3g lies before start offset %.3g",
			ErrInvalidConfig, c.EndOffset, c.StartOffset)
	}
	if c.Offset != nil && (isBad(c.Offset.X) || isBad(c.Offset.Y)) {
		return fmt.Errorf("%w: offset %v is not finite", ErrInvalidConfig, *c.Offset)
	}
	for _, a := range c.Actions {
		if a > ActionReset {
			return fmt.Errorf("%w: unknown action %d", ErrInvalidConfig, a)
		}
	}
	seen := make(map[*Node]struct{}, len(c.Targets))
	for i, n := range c.Targets {
		if n == nil {
			return fmt.Errorf("%w: target %d is nil", ErrInvalidConfig, i)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("%w: target %q listed twice", ErrInvalidConfig, n.Name)
		}
		seen[n] = struct{}{}
	}
	if c.Selector != "" {
		if _, err := ParseSelector(c.Selector); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

func checkSeconds(field string, v float32) error {
	if v < 0 || isBad(float64(v)) {
		return fmt.Errorf("%w: %s %v must be a non-negative number of seconds", ErrInvalidConfig, field, v)
	}
	return nil
}

func checkOffset(field string, v float64) error {
	if isBad(v) || v < -1 || v > 1 {
		return fmt.Errorf("%w: %s %v outside [-1, 1]", ErrInvalidConfig, field, v)
	}
	return nil
}

func isBad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// withDefaults returns a copy with zero-valued fields filled in.
func (c Config) withDefaults() Config {
	if c.Region == nil {
		c.Region = c.Root
	}
	if c.Root == nil {
		c.Root = c.Region
	}
	if c.Duration == 0 {
		c.Duration = DefaultDuration
	}
	if c.ReplayDuration == 0 {
		c.ReplayDuration = c.Duration
	}
	if c.Ease == nil {
		c.Ease = ease.OutCubic
	}
	if c.ScrubEase == nil {
		c.ScrubEase = ease.Linear
	}
	if c.Offset == nil {
		off := DefaultOffset
		c.Offset = &off
	}
	if c.Actions == (Actions{}) {
		if c.Once {
			c.Actions = OnceActions
		} else {
			c.Actions = DefaultActions
		}
	}
	return c
}

var easeFuncs = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inquad":       ease.InQuad,
	"outquad":      ease.OutQuad,
	"inoutquad":    ease.InOutQuad,
	"incubic":      ease.InCubic,
	"outcubic":     ease.OutCubic,
	"inoutcubic":   ease.InOutCubic,
	"inquart":      ease.InQuart,
	"outquart":     ease.OutQuart,
	"inoutquart":   ease.InOutQuart,
	"inquint":      ease.InQuint,
	"outquint":     ease.OutQuint,
	"inoutquint":   ease.InOutQuint,
	"insine":       ease.InSine,
	"outsine":      ease.OutSine,
	"inoutsine":    ease.InOutSine,
	"inexpo":       ease.InExpo,
	"outexpo":      ease.OutExpo,
	"inoutexpo":    ease.InOutExpo,
	"incirc":       ease.InCirc,
	"outcirc":      ease.OutCirc,
	"inoutcirc":    ease.InOutCirc,
	"inback":       ease.InBack,
	"outback":      ease.OutBack,
	"inoutback":    ease.InOutBack,
	"outbounce":    ease.OutBounce,
	"inelastic":    ease.InElastic,
	"outelastic":   ease.OutElastic,
	"inoutelastic": ease.InOutElastic,
}

// EaseByName looks up an easing function by name, ignoring case, dashes
// and underscores ("outCubic", "out-cubic"). The empty name returns nil so
// the Config default applies.
func EaseByName(name string) (ease.TweenFunc, error) {
	if name == "" {
		return nil, nil
	}
	key := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(name))
	fn, ok := easeFuncs[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown ease %q", ErrInvalidConfig, name)
	}
	return fn, nil
}

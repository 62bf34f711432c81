package reveal

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for both axes.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Viewport is the scrolling window onto the scene. ScrollX and ScrollY are
// the world-space coordinates of the visible area's top-left corner.
type Viewport struct {
	ScrollX, ScrollY float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Screen is the screen-space rectangle the viewport renders into.
	Screen Rect

	// BoundsEnabled clamps the scroll position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space content rectangle the viewport is clamped
	// to when BoundsEnabled is true.
	Bounds Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	scrollTween *scrollAnim
}

// NewViewport creates a viewport of the given screen size at scroll (0, 0).
func NewViewport(width, height float64) *Viewport {
	return &Viewport{
		Zoom:   1.0,
		Screen: Rect{Width: width, Height: height},
		dirty:  true,
	}
}

// ScrollTo animates the viewport so its top-left reaches (x, y) over duration
// seconds. A non-positive duration jumps immediately.
func (v *Viewport) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		v.scrollTween = nil
		v.SetScroll(x, y)
		return
	}
	if easeFn == nil {
		easeFn = ease.InOutQuad
	}
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.ScrollX), float32(x), duration, easeFn),
		tweenY: gween.New(float32(v.ScrollY), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// SetScroll moves the viewport immediately, cancelling any ScrollTo.
func (v *Viewport) SetScroll(x, y float64) {
	v.scrollTween = nil
	v.ScrollX, v.ScrollY = x, y
	if v.BoundsEnabled {
		v.clampToBounds()
	}
	v.dirty = true
}

// ScrollBy moves the viewport by (dx, dy), cancelling any ScrollTo.
func (v *Viewport) ScrollBy(dx, dy float64) {
	v.SetScroll(v.ScrollX+dx, v.ScrollY+dy)
}

// SetBounds enables content bounds clamping.
func (v *Viewport) SetBounds(bounds Rect) {
	v.BoundsEnabled = true
	v.Bounds = bounds
	v.clampToBounds()
	v.dirty = true
}

// ClearBounds disables content bounds clamping.
func (v *Viewport) ClearBounds() {
	v.BoundsEnabled = false
}

// update advances scroll animation and bounds clamping. Called from Scene.Step.
func (v *Viewport) update(dt float32) {
	prevX, prevY, prevZoom := v.ScrollX, v.ScrollY, v.Zoom

	if v.scrollTween != nil {
		if !v.scrollTween.doneX {
			val, done := v.scrollTween.tweenX.Update(dt)
			v.ScrollX = float64(val)
			v.scrollTween.doneX = done
		}
		if !v.scrollTween.doneY {
			val, done := v.scrollTween.tweenY.Update(dt)
			v.ScrollY = float64(val)
			v.scrollTween.doneY = done
		}
		if v.scrollTween.doneX && v.scrollTween.doneY {
			v.scrollTween = nil
		}
	}

	if v.BoundsEnabled {
		v.clampToBounds()
	}

	if v.ScrollX != prevX || v.ScrollY != prevY || v.Zoom != prevZoom {
		v.dirty = true
	}
}

// clampToBounds restricts the scroll position so the visible area stays
// within Bounds. Content smaller than the visible area pins to its origin.
func (v *Viewport) clampToBounds() {
	w, h := v.visibleSize()
	maxX := v.Bounds.X + v.Bounds.Width - w
	maxY := v.Bounds.Y + v.Bounds.Height - h
	v.ScrollX = math.Max(v.Bounds.X, math.Min(v.ScrollX, maxX))
	v.ScrollY = math.Max(v.Bounds.Y, math.Min(v.ScrollY, maxY))
}

func (v *Viewport) visibleSize() (w, h float64) {
	z := v.Zoom
	if z <= 0 {
		z = 1
	}
	return v.Screen.Width / z, v.Screen.Height / z
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Translate(screen.X, screen.Y) * Scale(zoom) * Translate(-ScrollX, -ScrollY)
func (v *Viewport) computeViewMatrix() [6]float64 {
	if !v.dirty {
		return v.viewMatrix
	}
	v.dirty = false

	z := v.Zoom
	v.viewMatrix = [6]float64{z, 0, 0, z, v.Screen.X - z*v.ScrollX, v.Screen.Y - z*v.ScrollY}
	v.invViewMatrix = invertAffine(v.viewMatrix)
	return v.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	v.computeViewMatrix()
	return transformPoint(v.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	v.computeViewMatrix()
	return transformPoint(v.invViewMatrix, sx, sy)
}

// VisibleBounds returns the world-space rectangle currently in view.
func (v *Viewport) VisibleBounds() Rect {
	w, h := v.visibleSize()
	return Rect{X: v.ScrollX, Y: v.ScrollY, Width: w, Height: h}
}

// MarkDirty forces a recomputation of the view matrix.
func (v *Viewport) MarkDirty() {
	v.dirty = true
}

package reveal

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderCommand is a single box draw emitted during scene traversal.
type RenderCommand struct {
	Node      *Node
	Transform [6]float64 // view * world, maps the unit square scaled by Size to screen
	Width     float64
	Height    float64
	Color     Color // straight alpha; A already includes world alpha
}

// whitePixel is a 1x1 white image scaled to draw solid boxes. Created on
// first Draw so the package can be used without a graphics context.
var whitePixel *ebiten.Image

// traverse walks the tree depth-first and appends a command for every
// visible box that intersects the viewport and is not fully transparent.
func (s *Scene) traverse(n *Node, view [6]float64, cull Rect, out []RenderCommand) []RenderCommand {
	if !n.Visible {
		return out
	}
	if n.Type == NodeTypeBox && n.worldAlpha > 0 && n.Width > 0 && n.Height > 0 {
		if n.WorldBounds().Intersects(cull) {
			c := n.Color
			c.A *= n.worldAlpha
			out = append(out, RenderCommand{
				Node:      n,
				Transform: multiplyAffine(view, n.worldTransform),
				Width:     n.Width,
				Height:    n.Height,
				Color:     c,
			})
		}
	}
	for _, child := range n.children {
		out = s.traverse(child, view, cull, out)
	}
	return out
}

// Commands refreshes transforms and returns this frame's draw list in tree
// order.
func (s *Scene) Commands() []RenderCommand {
	updateWorldTransform(s.root, identityTransform, identityTransform, 1.0, false)
	view := s.viewport.computeViewMatrix()
	return s.traverse(s.root, view, s.viewport.VisibleBounds(), nil)
}

// Draw renders the scene through the viewport onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	for _, cmd := range s.Commands() {
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(cmd.Width, cmd.Height)
		var m ebiten.GeoM
		m.SetElement(0, 0, cmd.Transform[0])
		m.SetElement(1, 0, cmd.Transform[1])
		m.SetElement(0, 1, cmd.Transform[2])
		m.SetElement(1, 1, cmd.Transform[3])
		m.SetElement(0, 2, cmd.Transform[4])
		m.SetElement(1, 2, cmd.Transform[5])
		op.GeoM.Concat(m)
		a := float32(cmd.Color.A)
		op.ColorScale.Scale(float32(cmd.Color.R)*a, float32(cmd.Color.G)*a, float32(cmd.Color.B)*a, a)
		screen.DrawImage(whitePixel, &op)
	}
}

package reveal

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// layout properties. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Scale -> Translate(X + TranslateX, Y + TranslateY)
//
// withTranslate selects between the render transform and the layout
// transform, which ignores TranslateX/TranslateY.
func computeLocalTransform(n *Node, withTranslate bool) [6]float64 {
	tx, ty := n.X, n.Y
	if withTranslate {
		tx += n.TranslateX
		ty += n.TranslateY
	}
	return [6]float64{n.ScaleX, 0, 0, n.ScaleY, tx, ty}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// transformRect computes the axis-aligned bounding box of a (w, h) rectangle
// at the local origin transformed by m. Zero allocations.
func transformRect(m [6]float64, w, h float64) Rect {
	x0, y0 := transformPoint(m, 0, 0)
	x1, y1 := transformPoint(m, w, 0)
	x2, y2 := transformPoint(m, w, h)
	x3, y3 := transformPoint(m, 0, h)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// updateWorldTransform recomputes layout and render transforms and worldAlpha.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentLayout, parentWorld [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.layoutTransform = multiplyAffine(parentLayout, computeLocalTransform(n, false))
		n.worldTransform = multiplyAffine(parentWorld, computeLocalTransform(n, true))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.layoutTransform, n.worldTransform, n.worldAlpha, recompute)
	}
}

// layoutMatrix walks the parent chain and composes layout transforms.
// It does not depend on a prior traversal, so trigger measurement is exact
// even for nodes moved since the last frame.
func layoutMatrix(n *Node) [6]float64 {
	if n.Parent == nil {
		return computeLocalTransform(n, false)
	}
	return multiplyAffine(layoutMatrix(n.Parent), computeLocalTransform(n, false))
}

// LayoutBounds returns the node's world-space layout box. Render-only
// offsets (TranslateX/TranslateY) are ignored.
func (n *Node) LayoutBounds() Rect {
	return transformRect(layoutMatrix(n), n.Width, n.Height)
}

// WorldBounds returns the node's rendered world-space box as of the last
// traversal, including render-only offsets.
func (n *Node) WorldBounds() Rect {
	return transformRect(n.worldTransform, n.Width, n.Height)
}

// WorldAlpha returns the product of this node's alpha and its ancestors' as
// of the last traversal.
func (n *Node) WorldAlpha() float64 {
	return n.worldAlpha
}

// --- Transform property setters ---

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// SetSize sets the node's Width and Height and marks it dirty.
func (n *Node) SetSize(w, h float64) {
	n.Width = w
	n.Height = h
	n.transformDirty = true
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.transformDirty = true
}

// SetTranslate sets the render-only offset and marks the node dirty.
func (n *Node) SetTranslate(tx, ty float64) {
	n.TranslateX = tx
	n.TranslateY = ty
	n.transformDirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

package reveal

import "slices"

// nodeIDCounter is a plain counter (no atomic, reveal is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is an element handle in the scene graph. Sections, cards, headings and
// any other revealable element are Nodes. A single flat struct is used for all
// node types.
type Node struct {
	// Identity
	ID      uint32
	Name    string
	Type    NodeType
	Classes []string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout (local). X and Y position the node inside its parent; Width and
	// Height size it in local units.
	X, Y          float64
	Width, Height float64
	ScaleX        float64
	ScaleY        float64

	// TranslateX and TranslateY offset the rendered node without moving its
	// layout box. The animation driver writes the hidden-pose offset here.
	TranslateX, TranslateY float64

	// Computed during traversal
	layoutTransform [6]float64
	worldTransform  [6]float64
	worldAlpha      float64
	transformDirty  bool

	// Appearance
	Alpha   float64
	Color   Color
	Visible bool

	// Metadata
	UserData any

	// Internal
	disposed  bool
	sceneRoot bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
// Containers may still carry a size so they can serve as trigger regions.
func NewContainer(name string, classes ...string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer, Classes: classes}
	nodeDefaults(n)
	return n
}

// NewBox creates a solid rectangle node of the given size.
func NewBox(name string, w, h float64, c Color, classes ...string) *Node {
	n := &Node{Name: name, Type: NodeTypeBox, Width: w, Height: h, Classes: classes}
	nodeDefaults(n)
	n.Color = c
	return n
}

// HasClass reports whether the node carries the given class.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.Classes, class)
}

// AddClass adds a class if not already present.
func (n *Node) AddClass(class string) {
	if !n.HasClass(class) {
		n.Classes = append(n.Classes, class)
	}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("reveal: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("reveal: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("reveal: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("reveal: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("reveal: child index out of range")
	}
	child.Parent = n
	n.children = slices.Insert(n.children, index, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("reveal: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// ChildAt returns the child at the given index.
// Panics if the index is out of range.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// AttachedTo reports whether n is live and root is n or one of its ancestors.
func (n *Node) AttachedTo(root *Node) bool {
	if n == nil || root == nil || n.disposed || root.disposed {
		return false
	}
	return isAncestor(root, n)
}

// InScene reports whether n hangs off a Scene root.
func (n *Node) InScene() bool {
	if n == nil || n.disposed {
		return false
	}
	p := n
	for p.Parent != nil {
		p = p.Parent
	}
	return p.sceneRoot
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

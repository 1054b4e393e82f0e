// Package scene arranges kernel output into a renderable hierarchy. Nodes
// wrap meshes with colour and render-mode metadata and aggregate child
// bounding boxes upward; rendering itself is a collaborator concern and
// no drawing happens here.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/strainscan/lattice/geometry"
	"github.com/strainscan/lattice/mesh"
)

// RenderMode selects how a leaf should be drawn by the rendering layer.
type RenderMode int

const (
	RenderSolid RenderMode = iota
	RenderWireframe
	RenderTransparent
)

// RenderPrimitive selects the primitive the leaf's indices describe.
type RenderPrimitive int

const (
	PrimitiveTriangles RenderPrimitive = iota
	PrimitiveLines
)

// Colour is an RGB colour with components in [0, 1].
type Colour struct {
	R, G, B float64
}

// Kind distinguishes the two node variants. A group is a pure container
// with no visual properties of its own; a leaf carries a mesh and its
// display attributes. The split is explicit rather than encoded as nil
// attribute fields.
type Kind int

const (
	KindGroup Kind = iota
	KindLeaf
)

// Node is one element of the scene hierarchy.
type Node struct {
	kind      Kind
	mesh      *mesh.Mesh
	colour    Colour
	mode      RenderMode
	primitive RenderPrimitive

	bounds    geometry.BoundingBox
	hasBounds bool
	children  []*Node
}

// NewGroup creates an empty container node.
func NewGroup() *Node {
	return &Node{kind: KindGroup}
}

// NewLeaf creates a node displaying m with the given colour and render
// mode. The mesh is referenced, not copied; the scene layer never
// mutates it.
func NewLeaf(m *mesh.Mesh, colour Colour, mode RenderMode) *Node {
	return &Node{
		kind:      KindLeaf,
		mesh:      m,
		colour:    colour,
		mode:      mode,
		primitive: PrimitiveTriangles,
		bounds:    m.Bounds(),
		hasBounds: true,
	}
}

func (n *Node) Kind() Kind                 { return n.kind }
func (n *Node) Mesh() *mesh.Mesh           { return n.mesh }
func (n *Node) Colour() Colour             { return n.colour }
func (n *Node) Mode() RenderMode           { return n.mode }
func (n *Node) Primitive() RenderPrimitive { return n.primitive }
func (n *Node) Children() []*Node          { return n.children }

// Bounds returns the aggregate bounding box of this node and all its
// children. ok is false for a group with no boxed content yet.
func (n *Node) Bounds() (geometry.BoundingBox, bool) {
	return n.bounds, n.hasBounds
}

// IsEmpty reports whether the node carries no mesh and has no children.
func (n *Node) IsEmpty() bool {
	return n.mesh == nil && len(n.children) == 0
}

// AddChild appends child and folds its bounding box into this node's
// aggregate box.
func (n *Node) AddChild(child *Node) {
	n.children = append(n.children, child)

	childBounds, ok := child.Bounds()
	if !ok {
		return
	}
	if n.hasBounds {
		n.bounds = geometry.Merge(n.bounds, childBounds)
	} else {
		n.bounds = childBounds
		n.hasBounds = true
	}
}

// Translate shifts the node's mesh, its children and every cached
// bounding box by offset.
func (n *Node) Translate(offset mgl64.Vec3) {
	if n.mesh != nil {
		n.mesh.Translate(offset)
	}
	for _, child := range n.children {
		child.Translate(offset)
	}
	if n.hasBounds {
		n.bounds.Translate(offset)
	}
}

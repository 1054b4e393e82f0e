// Package geometry provides the planar and bounding-volume primitives of
// the kernel: oriented planes and axis-aligned bounding boxes over sets of
// 3D points. All types are plain values built on mgl64 vectors; operations
// never mutate their arguments unless documented as in-place.
package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BoundingBox represents an axis-aligned bounding box.
// Min and Max are the corners with the smallest and largest coordinates;
// Max >= Min holds componentwise for every box built by the constructors.
type BoundingBox struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewBoundingBox creates a box from explicit corners.
func NewBoundingBox(min, max mgl64.Vec3) BoundingBox {
	return BoundingBox{Min: min, Max: max}
}

// BoundingBoxFromPoints computes the componentwise min/max box over a
// point set. An empty set has no extent and fails with ErrInvalidGeometry.
func BoundingBoxFromPoints(points []mgl64.Vec3) (BoundingBox, error) {
	if len(points) == 0 {
		return BoundingBox{}, fmt.Errorf("%w: bounding box requires at least one point", ErrInvalidGeometry)
	}

	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min[0] = math.Min(min[0], p[0])
		min[1] = math.Min(min[1], p[1])
		min[2] = math.Min(min[2], p[2])

		max[0] = math.Max(max[0], p[0])
		max[1] = math.Max(max[1], p[1])
		max[2] = math.Max(max[2], p[2])
	}

	return BoundingBox{Min: min, Max: max}, nil
}

// Merge returns the smallest box enclosing both a and b.
// The operation is associative and commutative, so child boxes of a
// mesh or scene hierarchy can be aggregated in any order.
func Merge(a, b BoundingBox) BoundingBox {
	return BoundingBox{
		Min: mgl64.Vec3{
			math.Min(a.Min[0], b.Min[0]),
			math.Min(a.Min[1], b.Min[1]),
			math.Min(a.Min[2], b.Min[2]),
		},
		Max: mgl64.Vec3{
			math.Max(a.Max[0], b.Max[0]),
			math.Max(a.Max[1], b.Max[1]),
			math.Max(a.Max[2], b.Max[2]),
		},
	}
}

// Center returns the midpoint of the box. Derived on demand, never stored.
func (b BoundingBox) Center() mgl64.Vec3 {
	return b.Max.Add(b.Min).Mul(0.5)
}

// Radius returns half the length of the box diagonal. This is the radius
// of the sphere through the box corners, used for fast-reject checks; it
// is not the tightest sphere enclosing the boxed points.
func (b BoundingBox) Radius() float64 {
	return b.Max.Sub(b.Min).Len() / 2
}

// Translate shifts both corners by offset in place.
func (b *BoundingBox) Translate(offset mgl64.Vec3) {
	b.Min = b.Min.Add(offset)
	b.Max = b.Max.Add(offset)
}

// TranslateScalar shifts the box by the same distance on every axis.
func (b *BoundingBox) TranslateScalar(d float64) {
	b.Translate(mgl64.Vec3{d, d, d})
}

// ContainsPoint reports whether point lies inside or on the box.
func (b BoundingBox) ContainsPoint(point mgl64.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		if point[axis] < b.Min[axis] || point[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}

// Overlaps reports whether the boxes share any point. Boxes touching on
// a face count as overlapping.
func (b BoundingBox) Overlaps(other BoundingBox) bool {
	for axis := 0; axis < 3; axis++ {
		if b.Max[axis] < other.Min[axis] || b.Min[axis] > other.Max[axis] {
			return false
		}
	}
	return true
}

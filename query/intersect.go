package query

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/strainscan/lattice/geometry"
	"github.com/strainscan/lattice/mesh"
)

// Segment is one straight piece of a mesh/plane cross section.
type Segment struct {
	Start mgl64.Vec3
	End   mgl64.Vec3
}

// parallelTol below this, a segment direction has no component along the
// plane normal and the segment is treated as parallel.
const parallelTol = 1e-12

// onPlaneTol classifies a vertex as lying on a plane during mesh
// sectioning.
const onPlaneTol = 1e-9

// SegmentPlaneIntersection returns the point where the segment from a to
// b crosses the plane. ok is false when the segment is parallel to the
// plane (a segment lying in the plane has no single intersection and also
// reports false) or stops short of it. Endpoints exactly on the plane
// count as intersections.
func SegmentPlaneIntersection(a, b mgl64.Vec3, plane geometry.Plane) (mgl64.Vec3, bool) {
	direction := b.Sub(a)
	denom := plane.Normal.Dot(direction)
	if math.Abs(denom) < parallelTol {
		return mgl64.Vec3{}, false
	}

	t := (plane.Distance - plane.Normal.Dot(a)) / denom
	if t < 0 || t > 1 {
		return mgl64.Vec3{}, false
	}

	return a.Add(direction.Mul(t)), true
}

// MeshPlaneIntersection returns the line segments where the plane cuts
// the mesh surface, one segment per crossed triangle. The segments are
// not stitched into polylines; that is left to the caller. Triangles
// coplanar with the plane contribute nothing, as does a triangle touching
// the plane in a single vertex.
func MeshPlaneIntersection(m *mesh.Mesh, plane geometry.Plane) []Segment {
	// A plane farther from the box center than the box radius cannot
	// touch any triangle, so skip the per-triangle scan.
	bounds := m.Bounds()
	if math.Abs(plane.SignedDistanceTo(bounds.Center())) > bounds.Radius() {
		return nil
	}

	vertices := m.Vertices()
	indices := m.Indices()

	var segments []Segment
	var points [3]mgl64.Vec3

	for i := 0; i < len(indices); i += 3 {
		corners := [3]mgl64.Vec3{
			vertices[indices[i]],
			vertices[indices[i+1]],
			vertices[indices[i+2]],
		}

		var distances [3]float64
		for j, corner := range corners {
			distances[j] = plane.SignedDistanceTo(corner)
		}

		count := 0

		// A vertex on the plane is shared by two edges; record it once
		// instead of once per touching edge.
		for j, d := range distances {
			if math.Abs(d) <= onPlaneTol {
				if count < len(points) {
					points[count] = corners[j]
				}
				count++
			}
		}

		for j := 0; j < 3; j++ {
			k := (j + 1) % 3
			if distances[j] > onPlaneTol && distances[k] < -onPlaneTol ||
				distances[j] < -onPlaneTol && distances[k] > onPlaneTol {
				if crossing, ok := SegmentPlaneIntersection(corners[j], corners[k], plane); ok && count < len(points) {
					points[count] = crossing
					count++
				}
			}
		}

		// Exactly two points form this triangle's contribution. One point
		// is a lone vertex touch; three mean the triangle is coplanar.
		if count == 2 {
			segments = append(segments, Segment{Start: points[0], End: points[1]})
		}
	}

	return segments
}

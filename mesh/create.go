package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/strainscan/lattice/geometry"
)

// NewSphere builds a UV sphere of the given radius centered at the
// origin, with stacks latitude bands and slices longitude segments.
// Normals are smooth (radial). Stacks and slices are clamped to the
// smallest usable values; a non-positive radius fails with
// ErrInvalidGeometry.
func NewSphere(radius float64, stacks, slices int) (*Mesh, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: sphere radius must be positive, got %v", geometry.ErrInvalidGeometry, radius)
	}
	stacks = max(stacks, 2)
	slices = max(slices, 3)

	var vertices, normals []mgl64.Vec3
	var indices []uint32

	addVertex := func(v mgl64.Vec3) uint32 {
		vertices = append(vertices, v)
		normals = append(normals, v.Mul(1/radius))
		return uint32(len(vertices) - 1)
	}

	top := addVertex(mgl64.Vec3{0, 0, radius})

	// Interior latitude rings, slices vertices each.
	rings := make([][]uint32, 0, stacks-1)
	for i := 1; i < stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks)
		ring := make([]uint32, 0, slices)
		for j := 0; j < slices; j++ {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			ring = append(ring, addVertex(mgl64.Vec3{
				radius * math.Sin(phi) * math.Cos(theta),
				radius * math.Sin(phi) * math.Sin(theta),
				radius * math.Cos(phi),
			}))
		}
		rings = append(rings, ring)
	}

	bottom := addVertex(mgl64.Vec3{0, 0, -radius})

	// Caps fan out from the poles, quads between rings split in two.
	// Winding is counter-clockwise seen from outside the sphere.
	first := rings[0]
	for j := 0; j < slices; j++ {
		indices = append(indices, top, first[j], first[(j+1)%slices])
	}
	for i := 0; i+1 < len(rings); i++ {
		upper, lower := rings[i], rings[i+1]
		for j := 0; j < slices; j++ {
			next := (j + 1) % slices
			indices = append(indices, upper[j], lower[j], lower[next])
			indices = append(indices, upper[j], lower[next], upper[next])
		}
	}
	last := rings[len(rings)-1]
	for j := 0; j < slices; j++ {
		indices = append(indices, bottom, last[(j+1)%slices], last[j])
	}

	return New(vertices, indices, normals)
}

// NewPlaneMesh builds a width x height rectangle lying on the given
// plane, centered on the plane point closest to the origin, as two
// triangles whose normals equal the plane normal.
func NewPlaneMesh(plane geometry.Plane, width, height float64) (*Mesh, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: plane mesh extent %vx%v must be positive", geometry.ErrInvalidGeometry, width, height)
	}

	center := plane.Normal.Mul(plane.Distance)
	tangent1, tangent2 := tangentBasis(plane.Normal)
	u := tangent1.Mul(width / 2)
	v := tangent2.Mul(height / 2)

	vertices := []mgl64.Vec3{
		center.Sub(u).Sub(v),
		center.Add(u).Sub(v),
		center.Add(u).Add(v),
		center.Sub(u).Add(v),
	}
	normals := []mgl64.Vec3{plane.Normal, plane.Normal, plane.Normal, plane.Normal}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	return New(vertices, indices, normals)
}

// tangentBasis returns two unit vectors spanning the plane orthogonal to
// normal, chosen so tangent1 x tangent2 = normal.
func tangentBasis(normal mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	var tangent1 mgl64.Vec3
	if math.Abs(normal.X()) > 0.9 {
		tangent1 = mgl64.Vec3{0, 1, 0}
	} else {
		tangent1 = mgl64.Vec3{1, 0, 0}
	}

	tangent1 = tangent1.Sub(normal.Mul(tangent1.Dot(normal))).Normalize()
	tangent2 := normal.Cross(tangent1).Normalize()

	return tangent1, tangent2
}

// cubeFaces lists the quad corners of each axis-aligned face of a unit
// half-extent cube, counter-clockwise seen from outside.
var cubeFaces = [6][4]mgl64.Vec3{
	{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}},     // +X
	{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}, // -X
	{{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1}},     // +Y
	{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}, // -Y
	{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},     // +Z
	{{-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {1, -1, -1}}, // -Z
}

// NewCube builds an axis-aligned cube with the given edge length centered
// at the origin. Each face has its own four vertices, so the computed
// flat normals stay per face.
func NewCube(size float64) (*Mesh, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: cube size must be positive, got %v", geometry.ErrInvalidGeometry, size)
	}

	half := size / 2
	vertices := make([]mgl64.Vec3, 0, 24)
	indices := make([]uint32, 0, 36)

	for _, quad := range cubeFaces {
		base := uint32(len(vertices))
		for _, corner := range quad {
			vertices = append(vertices, corner.Mul(half))
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return New(vertices, indices, nil)
}

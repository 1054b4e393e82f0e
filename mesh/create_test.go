package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/strainscan/lattice/geometry"
)

func TestNewSphere(t *testing.T) {
	const radius = 5.0
	sphere, err := NewSphere(radius, 8, 16)
	if err != nil {
		t.Fatalf("NewSphere returned error: %v", err)
	}

	// Every vertex sits on the sphere and every normal is the radial
	// direction at its vertex.
	for i, v := range sphere.Vertices() {
		if math.Abs(v.Len()-radius) > 1e-9 {
			t.Errorf("vertex %d is at distance %v, want %v", i, v.Len(), radius)
		}
		if !vec3ApproxEqual(sphere.Normals()[i], v.Mul(1/radius), 1e-9) {
			t.Errorf("normal %d = %v, not radial", i, sphere.Normals()[i])
		}
	}

	box := sphere.Bounds()
	if !vec3ApproxEqual(box.Max, mgl64.Vec3{radius, radius, radius}, 1e-6) {
		// The equator and both poles are sampled, so the box reaches the
		// radius on every axis for even stack counts.
		t.Errorf("bounds Max = %v, want (%v, %v, %v)", box.Max, radius, radius, radius)
	}

	// Winding faces outward: each triangle normal points away from the
	// origin.
	for i, face := range sphere.Faces() {
		normal := face[1].Sub(face[0]).Cross(face[2].Sub(face[0]))
		center := face[0].Add(face[1]).Add(face[2])
		if normal.Dot(center) <= 0 {
			t.Errorf("face %d winds inward", i)
		}
	}
}

func TestNewSphere_Invalid(t *testing.T) {
	if _, err := NewSphere(0, 8, 16); !errors.Is(err, geometry.ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry for zero radius, got %v", err)
	}
	if _, err := NewSphere(-1, 8, 16); !errors.Is(err, geometry.ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry for negative radius, got %v", err)
	}

	// Degenerate tessellation arguments are clamped, not rejected.
	if _, err := NewSphere(1, 0, 0); err != nil {
		t.Errorf("NewSphere with clamped tessellation returned error: %v", err)
	}
}

func TestNewPlaneMesh(t *testing.T) {
	plane, err := geometry.PlaneFromCoefficients(0, 0, 1, 2)
	if err != nil {
		t.Fatalf("PlaneFromCoefficients returned error: %v", err)
	}

	quad, err := NewPlaneMesh(plane, 4, 2)
	if err != nil {
		t.Fatalf("NewPlaneMesh returned error: %v", err)
	}

	if quad.TriangleCount() != 2 {
		t.Fatalf("TriangleCount = %d, want 2", quad.TriangleCount())
	}

	for i, v := range quad.Vertices() {
		if d := plane.SignedDistanceTo(v); math.Abs(d) > 1e-9 {
			t.Errorf("vertex %d is %v off the plane", i, d)
		}
		if !vec3ApproxEqual(quad.Normals()[i], plane.Normal, 1e-9) {
			t.Errorf("normal %d = %v, want plane normal %v", i, quad.Normals()[i], plane.Normal)
		}
	}

	if area := quad.SurfaceArea(); math.Abs(area-8) > 1e-9 {
		t.Errorf("SurfaceArea = %v, want 8", area)
	}

	// Winding agrees with the plane normal.
	for i, face := range quad.Faces() {
		winding := face[1].Sub(face[0]).Cross(face[2].Sub(face[0]))
		if winding.Dot(plane.Normal) <= 0 {
			t.Errorf("face %d winds against the plane normal", i)
		}
	}
}

func TestNewCube(t *testing.T) {
	cube, err := NewCube(2)
	if err != nil {
		t.Fatalf("NewCube returned error: %v", err)
	}

	if cube.TriangleCount() != 12 {
		t.Errorf("TriangleCount = %d, want 12", cube.TriangleCount())
	}

	box := cube.Bounds()
	if !vec3ApproxEqual(box.Min, mgl64.Vec3{-1, -1, -1}, 1e-12) ||
		!vec3ApproxEqual(box.Max, mgl64.Vec3{1, 1, 1}, 1e-12) {
		t.Errorf("bounds = %v, want unit half-extents", box)
	}

	if area := cube.SurfaceArea(); math.Abs(area-24) > 1e-9 {
		t.Errorf("SurfaceArea = %v, want 24", area)
	}

	// Flat normals face outward along an axis.
	for i, n := range cube.Normals() {
		if math.Abs(n.Len()-1) > 1e-9 {
			t.Errorf("normal %d is not unit length: %v", i, n)
		}
		v := cube.Vertices()[i]
		if n.Dot(v) <= 0 {
			t.Errorf("normal %d points into the cube", i)
		}
	}
}

package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// Plane represents an oriented plane satisfying Normal · p = Distance for
// points p on the plane. Normal is always unit length after construction.
type Plane struct {
	Normal   mgl64.Vec3
	Distance float64
}

// zeroLengthTol guards against normalizing a vector with no direction.
const zeroLengthTol = 1e-12

// PlaneFromCoefficients builds a plane from the equation ax + by + cz = d.
// The coefficients are normalized so that (a, b, c) becomes a unit normal
// and d is scaled accordingly. Fails with ErrInvalidGeometry when
// (a, b, c) is the zero vector.
func PlaneFromCoefficients(a, b, c, d float64) (Plane, error) {
	normal := mgl64.Vec3{a, b, c}
	length := normal.Len()
	if length < zeroLengthTol {
		return Plane{}, fmt.Errorf("%w: plane coefficients (%v, %v, %v) have no direction", ErrInvalidGeometry, a, b, c)
	}

	return Plane{Normal: normal.Mul(1 / length), Distance: d / length}, nil
}

// PlaneFromPointNormal builds the plane through point with the given
// normal. The normal is normalized internally; a zero normal fails with
// ErrInvalidGeometry.
func PlaneFromPointNormal(point, normal mgl64.Vec3) (Plane, error) {
	length := normal.Len()
	if length < zeroLengthTol {
		return Plane{}, fmt.Errorf("%w: zero-length plane normal", ErrInvalidGeometry)
	}

	unit := normal.Mul(1 / length)
	return Plane{Normal: unit, Distance: unit.Dot(point)}, nil
}

// PlaneFromBestFit fits a least-squares plane through a set of points: the
// plane passes through the centroid and its normal is the eigenvector of
// the point covariance matrix with the smallest eigenvalue. Requires at
// least 3 points spanning a plane; collinear or smaller sets are rank
// deficient and fail with ErrInvalidGeometry.
func PlaneFromBestFit(points []mgl64.Vec3) (Plane, error) {
	if len(points) < 3 {
		return Plane{}, fmt.Errorf("%w: best-fit plane requires at least 3 points, got %d", ErrInvalidGeometry, len(points))
	}

	centroid := mgl64.Vec3{}
	for _, p := range points {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1 / float64(len(points)))

	// Covariance of the centered points, as a symmetric 3x3 matrix.
	var xx, xy, xz, yy, yz, zz float64
	for _, p := range points {
		d := p.Sub(centroid)
		xx += d.X() * d.X()
		xy += d.X() * d.Y()
		xz += d.X() * d.Z()
		yy += d.Y() * d.Y()
		yz += d.Y() * d.Z()
		zz += d.Z() * d.Z()
	}
	cov := mat.NewSymDense(3, []float64{
		xx, xy, xz,
		xy, yy, yz,
		xz, yz, zz,
	})

	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return Plane{}, fmt.Errorf("%w: eigen decomposition of point covariance failed", ErrInvalidGeometry)
	}

	// Eigenvalues come back in ascending order: the smallest belongs to
	// the normal direction, the middle one measures the spread of the
	// second principal axis. Collinear points leave that axis empty.
	values := eig.Values(nil)
	if values[1] <= math.Max(values[2], 1)*1e-12 {
		return Plane{}, fmt.Errorf("%w: points are collinear, plane is not unique", ErrInvalidGeometry)
	}

	var vectors mat.Dense
	eig.VectorsTo(&vectors)
	normal := mgl64.Vec3{vectors.At(0, 0), vectors.At(1, 0), vectors.At(2, 0)}

	return PlaneFromPointNormal(centroid, normal)
}

// SignedDistanceTo returns the signed distance from point to the plane;
// positive on the side the normal points into.
func (p Plane) SignedDistanceTo(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) - p.Distance
}

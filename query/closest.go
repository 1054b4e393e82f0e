// Package query implements the geometric queries of the kernel: closest
// point on a triangle, closest triangle in a face array, and segment/mesh
// against plane intersections. All functions are pure: they never mutate
// their mesh or plane arguments, so concurrent calls are safe as long as
// the inputs are not mutated elsewhere.
//
// The closest-point classification follows the barycentric-region method in:
//   - Ericson: "Real-Time Collision Detection" (2005), chapter 5
package query

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/strainscan/lattice/mesh"
)

// ClosestPointOnTriangle returns the point of the closed triangle abc
// (interior, edges and vertices included) nearest to p. The projection of
// p is classified into one of the 7 barycentric regions (3 vertices,
// 3 edges, interior); the comparisons are arranged so that every point of
// space falls in exactly one region.
func ClosestPointOnTriangle(a, b, c, p mgl64.Vec3) mgl64.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)

	// Vertex region A
	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	// Vertex region B
	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	// Edge region AB
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		t := d1 / (d1 - d3)
		return a.Add(ab.Mul(t))
	}

	// Vertex region C
	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	// Edge region AC
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		t := d2 / (d2 - d6)
		return a.Add(ac.Mul(t))
	}

	// Edge region BC
	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		t := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(t))
	}

	// Interior: project onto the triangle plane via barycentric weights.
	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}

// ClosestTriangleToPoint scans the face array for the triangle nearest to
// point and returns it with the squared distance (callers take the square
// root if needed). Ties on exact distance resolve to the first triangle
// in input order. ok is false when faces is empty.
func ClosestTriangleToPoint(faces []mesh.Face, point mgl64.Vec3) (face mesh.Face, sqDist float64, ok bool) {
	index, sqDist := scanClosest(faces, point, 0)
	if index < 0 {
		return mesh.Face{}, 0, false
	}
	return faces[index], sqDist, true
}

// scanClosest finds the nearest face in faces[start:], reporting its index
// relative to the whole array. Strict comparison keeps the lowest index on
// ties. Returns index -1 when the range is empty.
func scanClosest(faces []mesh.Face, point mgl64.Vec3, start int) (int, float64) {
	best := -1
	bestSq := math.MaxFloat64
	for i, f := range faces {
		closest := ClosestPointOnTriangle(f[0], f[1], f[2], point)
		sq := point.Sub(closest).LenSqr()
		if sq < bestSq {
			best = start + i
			bestSq = sq
		}
	}
	return best, bestSq
}

// ClosestTriangleToPointParallel is ClosestTriangleToPoint evaluated by
// workers goroutines over contiguous chunks of the face array. The final
// reduction compares (distance, index) pairs, so results are identical to
// the sequential scan, including tie-breaks on exact distance equality.
func ClosestTriangleToPointParallel(faces []mesh.Face, point mgl64.Vec3, workers int) (mesh.Face, float64, bool) {
	if workers <= 1 || len(faces) < workers*2 {
		return ClosestTriangleToPoint(faces, point)
	}

	type result struct {
		index  int
		sqDist float64
	}

	var wg sync.WaitGroup
	results := make([]result, workers)

	perWorker := len(faces) / workers
	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := start + perWorker
		if w == workers-1 {
			end = len(faces)
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			index, sqDist := scanClosest(faces[start:end], point, start)
			results[w] = result{index: index, sqDist: sqDist}
		}(w, start, end)
	}
	wg.Wait()

	best := result{index: -1, sqDist: math.MaxFloat64}
	for _, r := range results {
		if r.index < 0 {
			continue
		}
		if r.sqDist < best.sqDist || (r.sqDist == best.sqDist && r.index < best.index) {
			best = r
		}
	}

	if best.index < 0 {
		return mesh.Face{}, 0, false
	}
	return faces[best.index], best.sqDist, true
}

// Package mesh implements the indexed triangle surface at the center of
// the kernel: vertex positions, per-vertex normals and triangle index
// triples with counter-clockwise winding. A mesh owns its arrays
// exclusively and keeps a cached bounding box that every mutating
// operation refreshes, so readers always observe a consistent extent.
package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/strainscan/lattice/geometry"
)

// Face is one triangle of a mesh flattened to its three vertices, in
// index order. Faces are derived on demand for the query layer and are
// never stored on the mesh.
type Face [3]mgl64.Vec3

// Mesh is an indexed triangle surface. Use New to construct one; the
// zero value is not a valid mesh.
type Mesh struct {
	vertices []mgl64.Vec3
	indices  []uint32
	normals  []mgl64.Vec3
	bounds   geometry.BoundingBox
}

// New validates the arrays and builds a mesh, taking ownership of the
// slices. The index count must be a positive multiple of 3 and every
// index must address a vertex. When normals is nil, a flat per-face
// normal is computed from the winding order of each triangle and assigned
// to its three vertices. When normals is given it must hold one normal
// per vertex.
func New(vertices []mgl64.Vec3, indices []uint32, normals []mgl64.Vec3) (*Mesh, error) {
	if len(indices) == 0 || len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: index count %d is not a positive multiple of 3", geometry.ErrInvalidGeometry, len(indices))
	}
	for _, index := range indices {
		if int(index) >= len(vertices) {
			return nil, fmt.Errorf("%w: index %d out of range for %d vertices", geometry.ErrInvalidGeometry, index, len(vertices))
		}
	}
	if normals != nil && len(normals) != len(vertices) {
		return nil, fmt.Errorf("%w: %d normals for %d vertices", geometry.ErrInvalidGeometry, len(normals), len(vertices))
	}

	m := &Mesh{vertices: vertices, indices: indices, normals: normals}
	if m.normals == nil {
		m.computeNormals()
	}
	m.refreshBounds()

	return m, nil
}

// computeNormals assigns the normalized cross product of each triangle's
// edges to its three vertices. This is flat per-face shading: vertices
// shared between triangles take the normal of the last triangle visited.
func (m *Mesh) computeNormals() {
	m.normals = make([]mgl64.Vec3, len(m.vertices))
	for i := 0; i < len(m.indices); i += 3 {
		i0, i1, i2 := m.indices[i], m.indices[i+1], m.indices[i+2]
		edge1 := m.vertices[i1].Sub(m.vertices[i0])
		edge2 := m.vertices[i2].Sub(m.vertices[i0])
		normal := edge1.Cross(edge2)
		if normal.LenSqr() > 0 {
			normal = normal.Normalize()
		}
		m.normals[i0] = normal
		m.normals[i1] = normal
		m.normals[i2] = normal
	}
}

// A valid mesh always has vertices, so recomputing its box cannot fail.
func (m *Mesh) refreshBounds() {
	bounds, _ := geometry.BoundingBoxFromPoints(m.vertices)
	m.bounds = bounds
}

// Vertices returns the vertex positions. The slice is owned by the mesh;
// callers must treat it as read only and use SetVertices to replace it.
func (m *Mesh) Vertices() []mgl64.Vec3 { return m.vertices }

// Indices returns the triangle index triples, owned by the mesh.
func (m *Mesh) Indices() []uint32 { return m.indices }

// Normals returns the per-vertex normals, owned by the mesh.
func (m *Mesh) Normals() []mgl64.Vec3 { return m.normals }

// Bounds returns the cached bounding box of the current vertex positions.
func (m *Mesh) Bounds() geometry.BoundingBox { return m.bounds }

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.indices) / 3 }

// SetVertices replaces the vertex array and refreshes the bounding box.
// The replacement must keep the existing vertex count so that indices and
// normals stay valid.
func (m *Mesh) SetVertices(vertices []mgl64.Vec3) error {
	if len(vertices) != len(m.vertices) {
		return fmt.Errorf("%w: replacement has %d vertices, mesh has %d", geometry.ErrInvalidGeometry, len(vertices), len(m.vertices))
	}
	m.vertices = vertices
	m.refreshBounds()
	return nil
}

// Faces returns the mesh triangles flattened to their vertices, in
// triangle order, for the closest-triangle queries.
func (m *Mesh) Faces() []Face {
	faces := make([]Face, 0, m.TriangleCount())
	for i := 0; i < len(m.indices); i += 3 {
		faces = append(faces, Face{
			m.vertices[m.indices[i]],
			m.vertices[m.indices[i+1]],
			m.vertices[m.indices[i+2]],
		})
	}
	return faces
}

// SurfaceArea returns the sum of the triangle areas.
func (m *Mesh) SurfaceArea() float64 {
	total := 0.0
	for i := 0; i < len(m.indices); i += 3 {
		edge1 := m.vertices[m.indices[i+1]].Sub(m.vertices[m.indices[i]])
		edge2 := m.vertices[m.indices[i+2]].Sub(m.vertices[m.indices[i]])
		total += edge1.Cross(edge2).Len() / 2
	}
	return total
}

// Append concatenates other onto m as a disjoint union: vertices and
// normals are copied over, indices are shifted by m's prior vertex count
// and the bounding box becomes the merge of the two. other is unchanged
// and shares no storage with the result.
func (m *Mesh) Append(other *Mesh) {
	offset := uint32(len(m.vertices))

	m.vertices = append(m.vertices, other.vertices...)
	m.normals = append(m.normals, other.normals...)
	for _, index := range other.indices {
		m.indices = append(m.indices, index+offset)
	}

	m.bounds = geometry.Merge(m.bounds, other.bounds)
}

// SplitAt partitions the mesh at triangle boundary offset: the first
// offset triangles stay in m, the rest move to the returned mesh. Both
// halves keep only the vertices and normals their triangles reference,
// renumbered in order of first use, and both bounding boxes are
// recomputed. The offset must leave at least one triangle on each side.
func (m *Mesh) SplitAt(offset int) (*Mesh, error) {
	if offset <= 0 || offset >= m.TriangleCount() {
		return nil, fmt.Errorf("%w: split offset %d outside (0, %d)", geometry.ErrInvalidGeometry, offset, m.TriangleCount())
	}

	head := m.indices[:offset*3]
	tail := m.indices[offset*3:]

	tailVertices, tailIndices, tailNormals := compact(tail, m.vertices, m.normals)
	m.vertices, m.indices, m.normals = compact(head, m.vertices, m.normals)
	m.refreshBounds()

	split := &Mesh{vertices: tailVertices, indices: tailIndices, normals: tailNormals}
	split.refreshBounds()

	return split, nil
}

// compact renumbers indices by order of first use and gathers the
// referenced vertices and normals into fresh arrays.
func compact(indices []uint32, vertices, normals []mgl64.Vec3) ([]mgl64.Vec3, []uint32, []mgl64.Vec3) {
	remap := make(map[uint32]uint32, len(indices))
	outIndices := make([]uint32, len(indices))
	var outVertices, outNormals []mgl64.Vec3

	for i, index := range indices {
		renumbered, seen := remap[index]
		if !seen {
			renumbered = uint32(len(outVertices))
			remap[index] = renumbered
			outVertices = append(outVertices, vertices[index])
			outNormals = append(outNormals, normals[index])
		}
		outIndices[i] = renumbered
	}

	return outVertices, outIndices, outNormals
}

// Transform applies a homogeneous transform to every vertex and its
// rotation block to every normal, then recomputes the bounding box.
// The matrix must be rigid (orthonormal rotation block): normals are
// rotated by the block directly, not by its inverse transpose, so
// scaling or shearing transforms would skew them.
func (m *Mesh) Transform(matrix mgl64.Mat4) {
	rotation := matrix.Mat3()
	for i, v := range m.vertices {
		m.vertices[i] = matrix.Mul4x1(v.Vec4(1)).Vec3()
	}
	for i, n := range m.normals {
		m.normals[i] = rotation.Mul3x1(n)
	}
	m.refreshBounds()
}

// Rotate applies a rotation matrix to every vertex and normal and
// recomputes the bounding box. The matrix must be orthonormal.
func (m *Mesh) Rotate(rotation mgl64.Mat3) {
	for i, v := range m.vertices {
		m.vertices[i] = rotation.Mul3x1(v)
	}
	for i, n := range m.normals {
		m.normals[i] = rotation.Mul3x1(n)
	}
	m.refreshBounds()
}

// Translate shifts every vertex by offset. Normals are unchanged and the
// cached box is shifted directly, which is exact for pure translation and
// avoids the full recompute.
func (m *Mesh) Translate(offset mgl64.Vec3) {
	for i, v := range m.vertices {
		m.vertices[i] = v.Add(offset)
	}
	m.bounds.Translate(offset)
}

// Copy returns a fully independent deep copy of the mesh.
func (m *Mesh) Copy() *Mesh {
	clone := &Mesh{
		vertices: make([]mgl64.Vec3, len(m.vertices)),
		indices:  make([]uint32, len(m.indices)),
		normals:  make([]mgl64.Vec3, len(m.normals)),
		bounds:   m.bounds,
	}
	copy(clone.vertices, m.vertices)
	copy(clone.indices, m.indices)
	copy(clone.normals, m.normals)
	return clone
}

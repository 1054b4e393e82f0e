package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/strainscan/lattice/geometry"
	"github.com/strainscan/lattice/mesh"
)

// Marker is a point of interest on a sample: a fiducial or measurement
// point with its enabled state.
type Marker struct {
	Position mgl64.Vec3
	Enabled  bool
}

const (
	fiducialRadius = 5.0
	markerSize     = 5.0
	vectorScale    = 10.0
)

var (
	sampleColour    = Colour{R: 0.4, G: 0.4, B: 0.4}
	enabledColour   = Colour{R: 0.4, G: 0.9, B: 0.4}
	disabledColour  = Colour{R: 0.9, G: 0.4, B: 0.4}
	pointColour     = Colour{R: 0.01, G: 0.44, B: 0.12}
	planeColour     = Colour{R: 0.93, G: 0.83, B: 0.53}
	primaryColour   = Colour{B: 1}
	secondaryColour = Colour{R: 1}
)

// lineNormals returns unit placeholder normals for line-primitive
// meshes. Lines are drawn unshaded, but a mesh still carries one unit
// normal per vertex.
func lineNormals(count int) []mgl64.Vec3 {
	normals := make([]mgl64.Vec3, count)
	for i := range normals {
		normals[i] = mgl64.Vec3{0, 0, 1}
	}
	return normals
}

// SampleNode groups the loaded sample meshes under solid grey leaves.
func SampleNode(samples []*mesh.Mesh) *Node {
	group := NewGroup()
	for _, sample := range samples {
		group.AddChild(NewLeaf(sample, sampleColour, RenderSolid))
	}
	return group
}

// FiducialNode builds a sphere leaf per fiducial, green when enabled and
// red when disabled.
func FiducialNode(fiducials []Marker) (*Node, error) {
	group := NewGroup()
	for _, fiducial := range fiducials {
		sphere, err := mesh.NewSphere(fiducialRadius, 16, 32)
		if err != nil {
			return nil, err
		}
		sphere.Translate(fiducial.Position)

		colour := disabledColour
		if fiducial.Enabled {
			colour = enabledColour
		}
		group.AddChild(NewLeaf(sphere, colour, RenderSolid))
	}
	return group, nil
}

// MeasurementPointNode builds a three-axis cross marker per measurement
// point, drawn as line primitives.
func MeasurementPointNode(points []Marker) (*Node, error) {
	group := NewGroup()
	for _, point := range points {
		x, y, z := point.Position.Elem()
		vertices := []mgl64.Vec3{
			{x - markerSize, y, z},
			{x + markerSize, y, z},
			{x, y - markerSize, z},
			{x, y + markerSize, z},
			{x, y, z - markerSize},
			{x, y, z + markerSize},
		}
		cross, err := mesh.New(vertices, []uint32{0, 1, 2, 3, 4, 5}, lineNormals(len(vertices)))
		if err != nil {
			return nil, err
		}

		colour := disabledColour
		if point.Enabled {
			colour = pointColour
		}
		leaf := NewLeaf(cross, colour, RenderSolid)
		leaf.primitive = PrimitiveLines
		group.AddChild(leaf)
	}
	return group, nil
}

// MeasurementVector holds the two detector directions measured at a
// point for one alignment. A zero direction means the detector has no
// vector at that point.
type MeasurementVector struct {
	Primary   mgl64.Vec3
	Secondary mgl64.Vec3
}

// MeasurementVectorNode builds a line leaf per detector direction, blue
// for the primary detector and red for the secondary, drawn from each
// point along vectorScale times the direction. Zero directions are
// skipped; an alignment index with no stored vectors yields an empty
// group. vectors is indexed by point, then by alignment.
func MeasurementVectorNode(points []Marker, vectors [][]MeasurementVector, alignment int) (*Node, error) {
	group := NewGroup()
	if alignment < 0 {
		return group, nil
	}

	for i, point := range points {
		if i >= len(vectors) || alignment >= len(vectors[i]) {
			continue
		}

		pair := vectors[i][alignment]
		directions := []struct {
			vector mgl64.Vec3
			colour Colour
		}{
			{vector: pair.Primary, colour: primaryColour},
			{vector: pair.Secondary, colour: secondaryColour},
		}

		for _, direction := range directions {
			if direction.vector.LenSqr() == 0 {
				continue
			}

			end := point.Position.Add(direction.vector.Mul(vectorScale))
			leaf, err := lineLeaf(point.Position, end, direction.colour)
			if err != nil {
				return nil, err
			}
			group.AddChild(leaf)
		}
	}
	return group, nil
}

// lineLeaf builds a leaf drawing a single line segment. The end vertex
// is duplicated to keep the index count a multiple of 3; the dangling
// third index pairs with nothing and draws no line.
func lineLeaf(start, end mgl64.Vec3, colour Colour) (*Node, error) {
	segment, err := mesh.New(
		[]mgl64.Vec3{start, end, end},
		[]uint32{0, 1, 2},
		lineNormals(3),
	)
	if err != nil {
		return nil, err
	}

	leaf := NewLeaf(segment, colour, RenderSolid)
	leaf.primitive = PrimitiveLines
	return leaf, nil
}

// PlaneNode builds a single leaf showing a section plane with the given
// extent.
func PlaneNode(plane geometry.Plane, width, height float64) (*Node, error) {
	quad, err := mesh.NewPlaneMesh(plane, width, height)
	if err != nil {
		return nil, err
	}
	return NewLeaf(quad, planeColour, RenderSolid), nil
}

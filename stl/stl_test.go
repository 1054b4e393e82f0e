package stl

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const asciiSquare = `solid square
  facet normal 0 0 1
    outer loop
      vertex 1 1 0
      vertex 1 0 0
      vertex 0 0 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 1 1 0
      vertex 0 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid square
`

func vec3ApproxEqual(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) <= tolerance &&
		math.Abs(a.Y()-b.Y()) <= tolerance &&
		math.Abs(a.Z()-b.Z()) <= tolerance
}

// binarySquare encodes the same two-triangle square in the binary STL
// layout: 80-byte header, uint32 count, then 50 bytes per facet.
func binarySquare(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.Write(make([]byte, 80))

	facets := [][12]float32{
		{0, 0, 1, 1, 1, 0, 1, 0, 0, 0, 0, 0},
		{0, 0, 1, 1, 1, 0, 0, 0, 0, 0, 1, 0},
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(facets))); err != nil {
		t.Fatalf("writing count: %v", err)
	}
	for _, facet := range facets {
		if err := binary.Write(&buf, binary.LittleEndian, facet); err != nil {
			t.Fatalf("writing facet: %v", err)
		}
		if err := binary.Write(&buf, binary.LittleEndian, uint16(0)); err != nil {
			t.Fatalf("writing attribute: %v", err)
		}
	}
	return buf.Bytes()
}

func TestReadASCII(t *testing.T) {
	m, err := Read(strings.NewReader(asciiSquare))
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}

	if m.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", m.TriangleCount())
	}
	if len(m.Vertices()) != 6 {
		t.Errorf("vertex count = %d, want 6 (soup)", len(m.Vertices()))
	}
	if area := m.SurfaceArea(); math.Abs(area-1) > 1e-9 {
		t.Errorf("SurfaceArea = %v, want 1", area)
	}

	// Normals come from the winding, not the file.
	for i, n := range m.Normals() {
		if !vec3ApproxEqual(n, mgl64.Vec3{0, 0, 1}, 1e-9) {
			t.Errorf("normal %d = %v, want (0, 0, 1)", i, n)
		}
	}
}

func TestReadBinary(t *testing.T) {
	m, err := Read(bytes.NewReader(binarySquare(t)))
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}

	if m.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", m.TriangleCount())
	}

	bounds := m.Bounds()
	if !vec3ApproxEqual(bounds.Min, mgl64.Vec3{0, 0, 0}, 1e-9) ||
		!vec3ApproxEqual(bounds.Max, mgl64.Vec3{1, 1, 0}, 1e-9) {
		t.Errorf("bounds = %v, want unit square extent", bounds)
	}
}

func TestReadBinaryAndASCIIAgree(t *testing.T) {
	fromASCII, err := Read(strings.NewReader(asciiSquare))
	if err != nil {
		t.Fatalf("Read ASCII returned error: %v", err)
	}
	fromBinary, err := Read(bytes.NewReader(binarySquare(t)))
	if err != nil {
		t.Fatalf("Read binary returned error: %v", err)
	}

	if len(fromASCII.Vertices()) != len(fromBinary.Vertices()) {
		t.Fatalf("vertex counts differ: %d vs %d", len(fromASCII.Vertices()), len(fromBinary.Vertices()))
	}
	for i := range fromASCII.Vertices() {
		if !vec3ApproxEqual(fromASCII.Vertices()[i], fromBinary.Vertices()[i], 1e-6) {
			t.Errorf("vertex %d differs: %v vs %v", i, fromASCII.Vertices()[i], fromBinary.Vertices()[i])
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.stl")
	if err := os.WriteFile(path, []byte(asciiSquare), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if m.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", m.TriangleCount())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.stl")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRead_Truncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty input", data: nil},
		{name: "short header", data: []byte{0x00, 0x01}},
		{name: "binary header only", data: make([]byte, 80)},
		{
			name: "count without facets",
			data: append(make([]byte, 80), 0x05, 0x00, 0x00, 0x00),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(bytes.NewReader(tt.data)); err == nil {
				t.Error("expected error for truncated input")
			}
		})
	}
}

// Package stl reads STL sample models into kernel meshes. Both the ASCII
// and binary encodings are handled, detected from the file header. File
// normals are discarded: exporters frequently write junk there, and the
// mesh recomputes flat normals from the winding order anyway.
package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/strainscan/lattice/mesh"
)

// Load reads an STL file and returns the validated mesh. Each facet
// contributes three independent vertices, so the result is a triangle
// soup with flat per-face normals.
func Load(path string) (*mesh.Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	return Read(file)
}

// Read parses STL data from r, auto-detecting the encoding.
func Read(r io.Reader) (*mesh.Mesh, error) {
	buffered := bufio.NewReader(r)

	header, err := buffered.Peek(5)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL header: %w", err)
	}

	if string(header) == "solid" {
		return readASCII(buffered)
	}
	return readBinary(buffered)
}

func readASCII(r io.Reader) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(r)

	var vertices []mgl64.Vec3
	for scanner.Scan() {
		fields := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(fields) < 4 || fields[0] != "vertex" {
			continue
		}

		var coords [3]float64
		for i := 0; i < 3; i++ {
			value, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("bad vertex coordinate %q: %w", fields[i+1], err)
			}
			coords[i] = value
		}
		vertices = append(vertices, mgl64.Vec3{coords[0], coords[1], coords[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return soup(vertices)
}

func readBinary(r io.Reader) (*mesh.Mesh, error) {
	// 80-byte header, unused beyond format detection.
	header := make([]byte, 80)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("failed to read binary STL header: %w", err)
	}

	var triangleCount uint32
	if err := binary.Read(r, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	vertices := make([]mgl64.Vec3, 0, int(triangleCount)*3)
	for i := uint32(0); i < triangleCount; i++ {
		// normal + 3 vertices, 4 bytes per component.
		var facet [12]float32
		if err := binary.Read(r, binary.LittleEndian, &facet); err != nil {
			return nil, fmt.Errorf("failed to read facet %d: %w", i, err)
		}

		for v := 0; v < 3; v++ {
			base := 3 + v*3
			vertices = append(vertices, mgl64.Vec3{
				float64(facet[base]),
				float64(facet[base+1]),
				float64(facet[base+2]),
			})
		}

		var attribute uint16
		if err := binary.Read(r, binary.LittleEndian, &attribute); err != nil {
			return nil, fmt.Errorf("failed to read facet %d attribute: %w", i, err)
		}
	}

	return soup(vertices)
}

// soup builds a mesh from facet vertices in file order.
func soup(vertices []mgl64.Vec3) (*mesh.Mesh, error) {
	indices := make([]uint32, len(vertices))
	for i := range indices {
		indices[i] = uint32(i)
	}
	return mesh.New(vertices, indices, nil)
}

package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gocut/pkg/geometry"
	"github.com/philipparndt/gocut/pkg/mesh"
)

// Parse reads an STL file and returns it as an indexed mesh.
// It automatically detects whether the file is ASCII or binary format.
func Parse(filename string) (*mesh.Mesh, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return Read(bytes.NewReader(data))
}

// Read parses STL data from r
func Read(r io.Reader) (*mesh.Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL data: %w", err)
	}

	// Binary files may also start with "solid" in their header, so require
	// a facet keyword as well before treating the data as text.
	if bytes.HasPrefix(data, []byte("solid")) && bytes.Contains(data, []byte("facet")) {
		return parseASCII(bytes.NewReader(data))
	}
	return parseBinary(bytes.NewReader(data))
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(reader)
	b := newBuilder()

	var vertices []geometry.Vector3
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var c [3]float64
			for i := range c {
				value, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid coordinate %q: %w", lineNo, fields[i+1], err)
				}
				c[i] = value
			}
			vertices = append(vertices, geometry.NewVector3(c[0], c[1], c[2]))

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices, expected 3", lineNo, len(vertices))
			}
			b.addFacet(vertices[0], vertices[1], vertices[2])
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return b.mesh, nil
}

// parseBinary parses a binary STL file
func parseBinary(reader io.Reader) (*mesh.Mesh, error) {
	b := newBuilder()

	// 80-byte header, unused
	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	// normal, 3 vertices, attribute byte count
	var record struct {
		Normal    [3]float32
		Vertices  [3][3]float32
		Attribute uint16
	}
	for i := uint32(0); i < triangleCount; i++ {
		if err := binary.Read(reader, binary.LittleEndian, &record); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		var corners [3]geometry.Vector3
		for j, v := range record.Vertices {
			corners[j] = geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
		}
		b.addFacet(corners[0], corners[1], corners[2])
	}

	return b.mesh, nil
}

// builder welds facet corners with identical positions into shared
// vertices, so neighbouring facets reference the same edge.
type builder struct {
	mesh  *mesh.Mesh
	index map[geometry.Vector3]int
}

func newBuilder() *builder {
	return &builder{
		mesh:  mesh.New(),
		index: make(map[geometry.Vector3]int),
	}
}

func (b *builder) vertex(v geometry.Vector3) int {
	if idx, ok := b.index[v]; ok {
		return idx
	}
	idx := b.mesh.AddVertex(v)
	b.index[v] = idx
	return idx
}

func (b *builder) addFacet(v1, v2, v3 geometry.Vector3) {
	b.mesh.AddTriangle(mesh.Triangle{b.vertex(v1), b.vertex(v2), b.vertex(v3)})
}

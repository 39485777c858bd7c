// Package objfile reads and writes the vertex and face subset of Wavefront
// OBJ files.
package objfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gocut/pkg/geometry"
	"github.com/philipparndt/gocut/pkg/mesh"
)

// Load reads an OBJ file from disk
func Load(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// Read parses OBJ data. Only "v" and "f" records are used; everything else
// is skipped. Face indices are converted to 0-based, negative indices count
// back from the last vertex read, and polygons are split into a triangle
// fan around their first corner.
func Read(reader io.Reader) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	m := mesh.New()

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			m.AddVertex(v)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices, got %d", lineNo, len(fields)-1)
			}
			corners := make([]int, 0, len(fields)-1)
			for _, token := range fields[1:] {
				idx, err := parseIndex(token, m.VertexCount())
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners = append(corners, idx)
			}
			for i := 1; i+1 < len(corners); i++ {
				m.AddTriangle(mesh.Triangle{corners[0], corners[i], corners[i+1]})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}

	// Faces may legally reference vertices that appear later in the file
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseVertex(fields []string) (geometry.Vector3, error) {
	if len(fields) < 3 {
		return geometry.Vector3{}, fmt.Errorf("vertex needs 3 coordinates, got %d", len(fields))
	}
	var c [3]float64
	for i := 0; i < 3; i++ {
		value, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid vertex coordinate %q: %w", fields[i], err)
		}
		c[i] = value
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// parseIndex converts a face token ("7", "7/2", "7//3", "-1/2/3") to a
// 0-based vertex index.
func parseIndex(token string, vertexCount int) (int, error) {
	if i := strings.IndexByte(token, '/'); i >= 0 {
		token = token[:i]
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q: %w", token, err)
	}
	switch {
	case n > 0:
		return n - 1, nil
	case n < 0:
		if vertexCount+n < 0 {
			return 0, fmt.Errorf("relative face index %d points before the first vertex", n)
		}
		return vertexCount + n, nil
	default:
		return 0, fmt.Errorf("face index 0 is not valid in OBJ")
	}
}

// Save writes the mesh to an OBJ file
func Save(filename string, m *mesh.Mesh) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(file, m); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Write emits one "v" line per vertex and one 1-based "f" line per
// triangle. Coordinates use the shortest representation that parses back
// to the same float64.
func Write(writer io.Writer, m *mesh.Mesh) error {
	w := bufio.NewWriter(writer)
	buf := make([]byte, 0, 96)

	for _, v := range m.Vertices {
		buf = append(buf[:0], "v "...)
		buf = strconv.AppendFloat(buf, v.X, 'g', -1, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, v.Y, 'g', -1, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, v.Z, 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("failed to write vertex: %w", err)
		}
	}

	for _, t := range m.Triangles {
		if _, err := fmt.Fprintf(w, "f %d %d %d\n", t[0]+1, t[1]+1, t[2]+1); err != nil {
			return fmt.Errorf("failed to write face: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush OBJ output: %w", err)
	}
	return nil
}

// Package mesh holds an indexed triangle mesh and cuts it by a plane.
//
// A cut inserts a vertex wherever a mesh edge crosses the plane and splits
// the faces around it, so that afterwards no triangle has corners strictly
// on both sides. Vertices and triangles are only ever appended; existing
// indices stay valid for the lifetime of the mesh.
package mesh

import (
	"fmt"

	"github.com/philipparndt/gocut/pkg/geometry"
)

// Triangle is an ordered triple of vertex indices. The order carries the
// winding and decides which edge a cut tests first.
type Triangle [3]int

// Mesh is an ordered list of vertex positions and the triangles indexing
// into it.
type Mesh struct {
	Vertices  []geometry.Vector3
	Triangles []Triangle
}

// New creates an empty mesh
func New() *Mesh {
	return &Mesh{
		Vertices:  make([]geometry.Vector3, 0),
		Triangles: make([]Triangle, 0),
	}
}

// AddVertex appends a vertex and returns its index
func (m *Mesh) AddVertex(v geometry.Vector3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddTriangle appends a triangle and returns its index
func (m *Mesh) AddTriangle(t Triangle) int {
	m.Triangles = append(m.Triangles, t)
	return len(m.Triangles) - 1
}

// VertexCount returns the number of vertices in the mesh
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Facet resolves triangle i to its corner positions
func (m *Mesh) Facet(i int) geometry.Triangle {
	t := m.Triangles[i]
	return geometry.NewTriangle(m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]])
}

// Clone returns a deep copy of the mesh
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Vertices:  make([]geometry.Vector3, len(m.Vertices)),
		Triangles: make([]Triangle, len(m.Triangles)),
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Triangles, m.Triangles)
	return c
}

// Validate checks that every triangle references existing vertices. Cut
// does not call it; loaders do, before handing a mesh over.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for ti, t := range m.Triangles {
		for _, vi := range t {
			if vi < 0 || vi >= n {
				return fmt.Errorf("triangle %d references vertex %d, mesh has %d vertices", ti, vi, n)
			}
		}
	}
	return nil
}

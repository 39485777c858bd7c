// Package stl converts between STL files and indexed meshes.
package stl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/unixpickle/model3d/model3d"

	"github.com/philipparndt/gocut/pkg/mesh"
)

// Save writes the mesh to a binary STL file
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

// Write encodes the mesh as binary STL. Vertex sharing is lost; facet
// normals are recomputed from the winding.
func Write(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	if err := model3d.WriteSTL(bw, Triangles(m)); err != nil {
		return fmt.Errorf("failed to write STL: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush STL output: %w", err)
	}
	return nil
}

// Triangles converts the mesh to model3d triangles
func Triangles(m *mesh.Mesh) []*model3d.Triangle {
	tris := make([]*model3d.Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		tri := &model3d.Triangle{}
		for j, vi := range t {
			v := m.Vertices[vi]
			tri[j] = model3d.XYZ(v.X, v.Y, v.Z)
		}
		tris[i] = tri
	}
	return tris
}

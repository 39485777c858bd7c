package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gocut/pkg/mesh"
	"github.com/philipparndt/gocut/pkg/objfile"
	"github.com/philipparndt/gocut/pkg/openscad"
	"github.com/philipparndt/gocut/pkg/stl"
)

// LoadMesh loads a mesh from an OBJ, STL or OpenSCAD file. OpenSCAD sources
// are rendered to a temporary STL that is removed once parsed. The second
// return value lists the files whose changes should trigger a reload.
func LoadMesh(ctx context.Context, path string) (*mesh.Mesh, []string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		m, err := objfile.Load(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse OBJ file: %w", err)
		}
		return m, []string{path}, nil

	case ".stl":
		m, err := stl.Parse(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse STL file: %w", err)
		}
		return m, []string{path}, nil

	case ".scad":
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
		}
		renderer := openscad.NewRenderer(filepath.Dir(abs))

		tmp, err := os.CreateTemp("", "gocut_*.stl")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create temporary file: %w", err)
		}
		tmpPath := tmp.Name()
		tmp.Close()
		defer os.Remove(tmpPath)

		if err := renderer.RenderToSTL(ctx, abs, tmpPath); err != nil {
			return nil, nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
		}

		m, err := stl.Parse(tmpPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse rendered STL: %w", err)
		}

		deps, err := renderer.ResolveDependencies(abs)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve dependencies: %w", err)
		}
		return m, deps, nil

	default:
		return nil, nil, fmt.Errorf("unsupported file type: %s (expected .obj, .stl or .scad)", ext)
	}
}

// OutputFormat returns format if set, else the format implied by the
// extension of path.
func OutputFormat(path, format string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch format {
	case "obj", "stl":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected obj or stl)", format)
	}
}

// SaveMesh writes m to path as OBJ or STL. An empty format follows the
// extension of path.
func SaveMesh(path, format string, m *mesh.Mesh) error {
	format, err := OutputFormat(path, format)
	if err != nil {
		return err
	}
	if format == "stl" {
		return stl.Save(path, m)
	}
	return objfile.Save(path, m)
}

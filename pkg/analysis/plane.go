// Package analysis computes statistics about meshes and how they sit
// relative to a cutting plane.
package analysis

import (
	"github.com/philipparndt/gocut/pkg/geometry"
	"github.com/philipparndt/gocut/pkg/mesh"
)

// PlaneReport counts triangles by their position relative to a plane
type PlaneReport struct {
	Below int
	Above int
	// OnPlane triangles have all three corners within tolerance of the plane
	OnPlane int
	// Touching triangles have corners on the plane and the rest on one side
	Touching int
	// Straddling triangles have corners strictly on both sides. A cut
	// leaves none on planar input.
	Straddling        int
	StraddlingIndices []int
	// VerticesOnPlane counts vertices within tolerance of the plane
	VerticesOnPlane int
}

// ClassifyPlane sorts every triangle of m into one PlaneReport bucket. The
// tolerance is a distance, scaled by the plane normal's length.
func ClassifyPlane(m *mesh.Mesh, plane geometry.Plane, tolerance float64) PlaneReport {
	var report PlaneReport

	sides := make([]int, len(m.Vertices))
	for i, v := range m.Vertices {
		sides[i] = plane.Side(v, tolerance)
		if sides[i] == 0 {
			report.VerticesOnPlane++
		}
	}

	for ti, tri := range m.Triangles {
		var below, above, on int
		for _, vi := range tri {
			switch sides[vi] {
			case -1:
				below++
			case 1:
				above++
			default:
				on++
			}
		}

		switch {
		case below > 0 && above > 0:
			report.Straddling++
			report.StraddlingIndices = append(report.StraddlingIndices, ti)
		case on == 3:
			report.OnPlane++
		case on > 0:
			report.Touching++
		case below > 0:
			report.Below++
		default:
			report.Above++
		}
	}

	return report
}

package analysis

import (
	"fmt"
	"math"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
	"golang.org/x/exp/slices"

	"github.com/philipparndt/gocut/pkg/geometry"
	"github.com/philipparndt/gocut/pkg/mesh"
	"github.com/philipparndt/gocut/pkg/stl"
)

// EdgeInfo describes one undirected edge of the mesh
type EdgeInfo struct {
	Key    mesh.EdgeKey
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
	// Faces is the number of triangles using this edge
	Faces int
}

// MeasurementResult contains various measurements of a mesh
type MeasurementResult struct {
	VertexCount   int
	TriangleCount int
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	EdgeCount     int
	BoundaryEdges int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo
}

// AnalyzeMesh collects size and edge statistics for a mesh
func AnalyzeMesh(m *mesh.Mesh) *MeasurementResult {
	result := &MeasurementResult{
		VertexCount:   m.VertexCount(),
		TriangleCount: m.TriangleCount(),
		BoundingBox:   geometry.NewBoundingBox(),
		AllEdges:      make([]EdgeInfo, 0),
	}

	for _, v := range m.Vertices {
		result.BoundingBox.Extend(v)
	}
	result.Dimensions = result.BoundingBox.Size()

	areas := make([]float64, len(m.Triangles))
	essentials.ConcurrentMap(0, len(m.Triangles), func(i int) {
		areas[i] = m.Facet(i).Area()
	})
	for _, a := range areas {
		result.SurfaceArea += a
	}

	// Collect unique edges in first-seen order
	seen := make(map[mesh.EdgeKey]int)
	for _, tri := range m.Triangles {
		for _, key := range tri.Edges() {
			if idx, ok := seen[key]; ok {
				result.AllEdges[idx].Faces++
				continue
			}
			start, end := m.Vertices[key.A], m.Vertices[key.B]
			seen[key] = len(result.AllEdges)
			result.AllEdges = append(result.AllEdges, EdgeInfo{
				Key:    key,
				Start:  start,
				End:    end,
				Length: start.Distance(end),
				Faces:  1,
			})
		}
	}

	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount == 0 {
		return result
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	for _, edge := range result.AllEdges {
		totalLength += edge.Length
		minLength = math.Min(minLength, edge.Length)
		maxLength = math.Max(maxLength, edge.Length)
		if edge.Faces == 1 {
			result.BoundaryEdges++
		}
	}
	result.MinEdgeLength = minLength
	result.MaxEdgeLength = maxLength
	result.AvgEdgeLength = totalLength / float64(result.EdgeCount)

	return result
}

// IsWatertight reports whether the surface is closed and free of
// non-manifold edges.
func IsWatertight(m *mesh.Mesh) bool {
	if m.TriangleCount() == 0 {
		return false
	}
	return !model3d.NewMeshTriangles(stl.Triangles(m)).NeedsRepair()
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges in the mesh
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) int {
		return compareFloat(b.Length, a.Length)
	})
}

// FindShortestEdges returns the N shortest edges in the mesh
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) int {
		return compareFloat(a.Length, b.Length)
	})
}

func sortedEdges(result *MeasurementResult, count int, cmp func(a, b EdgeInfo) int) []EdgeInfo {
	edges := slices.Clone(result.AllEdges)
	slices.SortStableFunc(edges, cmp)
	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

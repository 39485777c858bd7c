package mesh

import (
	"go.uber.org/zap"

	"github.com/philipparndt/gocut/pkg/geometry"
)

// Result summarizes a cut
type Result struct {
	VerticesBefore  int
	VerticesAfter   int
	TrianglesBefore int
	TrianglesAfter  int
	// Splits is the number of triangles rewritten, each of which appended
	// exactly one new triangle.
	Splits int
	// CacheHits counts splits that reused an existing crossing vertex.
	CacheHits int
	// Seam lists the vertices created on the plane, ascending.
	Seam []int
	// Skipped is set when the plane had a zero origin and the cut was not
	// attempted.
	Skipped bool
}

// Changed reports whether the cut added anything to the mesh
func (r Result) Changed() bool {
	return r.VerticesAfter != r.VerticesBefore || r.TrianglesAfter != r.TrianglesBefore
}

// Cutter cuts meshes by planes
type Cutter struct {
	// Tolerance is the minimum distance, in crossing parameter units, a new
	// vertex keeps from either end of the edge it splits.
	Tolerance float64

	// AllowOriginPlane disables the zero-origin guard. By default a plane
	// whose origin is (0, 0, 0) counts as "no plane" and Cut does nothing.
	AllowOriginPlane bool

	Logger *zap.Logger
}

// NewCutter returns a cutter with the default tolerance and the zero-origin
// guard enabled.
func NewCutter() *Cutter {
	return &Cutter{
		Tolerance: geometry.DefaultTolerance,
		Logger:    zap.NewNop(),
	}
}

// Cut cuts m by plane with the default cutter
func Cut(m *Mesh, plane geometry.Plane) Result {
	return NewCutter().Cut(m, plane)
}

// Cut splits every triangle of m that crosses plane, in place.
//
// Triangles are scanned by index. When the triangle at index t is split it
// is overwritten, its new sibling is appended, and t is examined again
// because the rewritten triangle may still cross along another edge. The
// scan ends when t reaches the end of the (growing) triangle list, so
// appended triangles are visited in the same pass.
func (c *Cutter) Cut(m *Mesh, plane geometry.Plane) Result {
	log := c.Logger
	if log == nil {
		log = zap.NewNop()
	}

	result := Result{
		VerticesBefore:  m.VertexCount(),
		TrianglesBefore: m.TriangleCount(),
	}

	if !plane.HasOrigin() && !c.AllowOriginPlane {
		log.Debug("plane has zero origin, skipping cut")
		result.VerticesAfter = result.VerticesBefore
		result.TrianglesAfter = result.TrianglesBefore
		result.Skipped = true
		return result
	}

	cache := NewIntersectionCache(m, plane, c.Tolerance)
	for t := 0; t < len(m.Triangles); {
		rewritten, appended, ok := Split(m.Triangles[t], cache)
		if !ok {
			t++
			continue
		}
		m.Triangles[t] = rewritten
		m.Triangles = append(m.Triangles, appended)
		result.Splits++
	}

	result.VerticesAfter = m.VertexCount()
	result.TrianglesAfter = m.TriangleCount()
	result.CacheHits = cache.Hits()
	result.Seam = cache.Seam()

	log.Debug("cut finished",
		zap.Int("splits", result.Splits),
		zap.Int("cacheHits", result.CacheHits),
		zap.Int("seamVertices", len(result.Seam)),
		zap.Int("vertices", result.VerticesAfter),
		zap.Int("triangles", result.TrianglesAfter),
	)
	return result
}

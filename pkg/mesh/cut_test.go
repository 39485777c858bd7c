package mesh

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gocut/pkg/geometry"
)

// singleTriangle is A=(0,0,0), B=(1,0,0), C=(0,0,1)
func singleTriangle() *Mesh {
	m := New()
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	m.AddVertex(geometry.NewVector3(1, 0, 0))
	m.AddVertex(geometry.NewVector3(0, 0, 1))
	m.AddTriangle(Triangle{0, 1, 2})
	return m
}

// unitCube is a closed, consistently wound cube spanning [0,1]^3
func unitCube() *Mesh {
	m := New()
	for i := 0; i < 8; i++ {
		m.AddVertex(geometry.NewVector3(float64(i&1), float64((i>>1)&1), float64((i>>2)&1)))
	}
	quads := [][4]int{
		{0, 2, 3, 1}, // z=0
		{4, 5, 7, 6}, // z=1
		{0, 1, 5, 4}, // y=0
		{2, 6, 7, 3}, // y=1
		{0, 4, 6, 2}, // x=0
		{1, 3, 7, 5}, // x=1
	}
	for _, q := range quads {
		m.AddTriangle(Triangle{q[0], q[1], q[2]})
		m.AddTriangle(Triangle{q[0], q[2], q[3]})
	}
	return m
}

// straddling returns the triangles with corners strictly on both sides
func straddling(m *Mesh, plane geometry.Plane, tolerance float64) []int {
	var result []int
	for ti, tri := range m.Triangles {
		below, above := false, false
		for _, vi := range tri {
			switch plane.Side(m.Vertices[vi], tolerance) {
			case -1:
				below = true
			case 1:
				above = true
			}
		}
		if below && above {
			result = append(result, ti)
		}
	}
	return result
}

func totalArea(m *Mesh) float64 {
	area := 0.0
	for i := range m.Triangles {
		area += m.Facet(i).Area()
	}
	return area
}

// requireClosed checks that every directed edge appears once and is matched
// by its reverse, i.e. the surface is closed and consistently wound.
func requireClosed(t *testing.T, m *Mesh) {
	t.Helper()
	directed := make(map[[2]int]int)
	for _, tri := range m.Triangles {
		for n := 0; n < 3; n++ {
			directed[[2]int{tri[n], tri[(n+1)%3]}]++
		}
	}
	for e, count := range directed {
		require.Equal(t, 1, count, "directed edge %v used %d times", e, count)
		require.Equal(t, 1, directed[[2]int{e[1], e[0]}], "edge %v has no opposite", e)
	}
}

func TestCutSingleTriangle(t *testing.T) {
	m := singleTriangle()
	plane := halfPlane()

	result := Cut(m, plane)

	require.Equal(t, 5, m.VertexCount())
	require.Equal(t, 3, m.TriangleCount())
	assert.InDelta(t, 0, m.Vertices[3].Distance(geometry.NewVector3(0.5, 0, 0.5)), 1e-12)
	assert.InDelta(t, 0, m.Vertices[4].Distance(geometry.NewVector3(0, 0, 0.5)), 1e-12)
	assert.Empty(t, straddling(m, plane, 1e-9))
	require.NoError(t, m.Validate())

	assert.Equal(t, Result{
		VerticesBefore:  3,
		VerticesAfter:   5,
		TrianglesBefore: 1,
		TrianglesAfter:  3,
		Splits:          2,
		CacheHits:       0,
		Seam:            []int{3, 4},
	}, result)
	assert.True(t, result.Changed())
	assert.InDelta(t, 0.5, totalArea(m), 1e-12)
}

func TestCutNoCrossing(t *testing.T) {
	m := singleTriangle()
	before := m.Clone()

	result := Cut(m, geometry.NewPlane(geometry.NewVector3(0, 0, 5), geometry.NewVector3(0, 0, 1)))

	assert.Equal(t, before, m)
	assert.False(t, result.Changed())
	assert.False(t, result.Skipped)
	assert.Zero(t, result.Splits)
	assert.Empty(t, result.Seam)
}

func TestCutZeroOriginIsNoop(t *testing.T) {
	normals := []geometry.Vector3{
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(1, 1, 1),
		{},
	}
	for _, normal := range normals {
		m := unitCube()
		before := m.Clone()

		result := Cut(m, geometry.NewPlane(geometry.Vector3{}, normal))

		assert.Equal(t, before, m, "normal %v", normal)
		assert.True(t, result.Skipped)
		assert.False(t, result.Changed())
	}
}

func TestCutAllowOriginPlane(t *testing.T) {
	m := singleTriangle()
	m.Vertices[0] = geometry.NewVector3(0, 0, -1)
	plane := geometry.NewPlane(geometry.Vector3{}, geometry.NewVector3(0, 0, 1))

	cutter := NewCutter()
	cutter.AllowOriginPlane = true
	result := cutter.Cut(m, plane)

	assert.False(t, result.Skipped)
	assert.True(t, result.Changed())
	assert.Empty(t, straddling(m, plane, 1e-9))
}

func TestCutIdempotent(t *testing.T) {
	m := unitCube()
	plane := geometry.NewPlane(geometry.NewVector3(0.3, 0.6, 0.45), geometry.NewVector3(1, 2, 4))

	first := Cut(m, plane)
	require.True(t, first.Changed())

	snapshot := m.Clone()
	second := Cut(m, plane)

	assert.False(t, second.Changed())
	assert.Zero(t, second.Splits)
	assert.Equal(t, snapshot, m)
}

func TestCutSplitAccounting(t *testing.T) {
	m := unitCube()
	plane := geometry.NewPlane(geometry.NewVector3(0.3, 0.6, 0.45), geometry.NewVector3(1, 2, 4))

	result := Cut(m, plane)

	added := result.VerticesAfter - result.VerticesBefore
	assert.Equal(t, result.Splits, result.TrianglesAfter-result.TrianglesBefore)
	assert.Equal(t, result.Splits-result.CacheHits, added)
	assert.Len(t, result.Seam, added)
	for _, vi := range result.Seam {
		assert.InDelta(t, 0, plane.SignedDistance(m.Vertices[vi]), 1e-9)
	}
}

func TestCutClosedMeshStaysClosed(t *testing.T) {
	planes := []geometry.Plane{
		geometry.NewPlane(geometry.NewVector3(0.3, 0.6, 0.45), geometry.NewVector3(1, 2, 4)),
		geometry.NewPlane(geometry.NewVector3(0.5, 0.5, 0.5), geometry.NewVector3(0, 0, 1)),
		geometry.NewPlane(geometry.NewVector3(0.5, 0.5, 0.5), geometry.NewVector3(1, 1, 1)),
		geometry.NewPlane(geometry.NewVector3(0.1, 0.9, 0.2), geometry.NewVector3(-3, 0.5, 1)),
	}
	for _, plane := range planes {
		m := unitCube()
		result := Cut(m, plane)

		assert.True(t, result.Changed(), "plane %v", plane)
		assert.Empty(t, straddling(m, plane, 1e-9), "plane %v", plane)
		assert.InDelta(t, 6.0, totalArea(m), 1e-9, "plane %v", plane)
		require.NoError(t, m.Validate())
		requireClosed(t, m)
	}
}

func TestCutSeamWelding(t *testing.T) {
	// Two triangles sharing the diagonal 1-2 of a unit square in y=0
	m := New()
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	m.AddVertex(geometry.NewVector3(1, 0, 0))
	m.AddVertex(geometry.NewVector3(0, 0, 1))
	m.AddVertex(geometry.NewVector3(1, 0, 1))
	m.AddTriangle(Triangle{0, 1, 2})
	m.AddTriangle(Triangle{1, 3, 2})

	result := Cut(m, halfPlane())

	// Edges 0-2, 1-2 and 1-3 cross; the shared one is split once.
	assert.Equal(t, 7, m.VertexCount())
	assert.Equal(t, 6, m.TriangleCount())
	assert.Equal(t, 1, result.CacheHits)

	center := geometry.NewVector3(0.5, 0, 0.5)
	matches := 0
	for _, v := range m.Vertices {
		if v.Distance(center) < 1e-9 {
			matches++
		}
	}
	assert.Equal(t, 1, matches, "shared crossing must be a single vertex")
}

func TestCutLeavesOriginalVerticesUntouched(t *testing.T) {
	m := unitCube()
	before := m.Clone()

	Cut(m, geometry.NewPlane(geometry.NewVector3(0.5, 0.5, 0.5), geometry.NewVector3(1, 1, 1)))

	assert.Equal(t, before.Vertices, m.Vertices[:len(before.Vertices)])
}

func TestCutInPlaneEdgeIsNotSplit(t *testing.T) {
	m := singleTriangle()
	// A-B lies in the plane z=0 (origin away from zero so the guard is off)
	plane := geometry.NewPlane(geometry.NewVector3(3, 0, 0), geometry.NewVector3(0, 0, 1))

	result := Cut(m, plane)

	assert.False(t, result.Changed())
}

func TestCutTolerance(t *testing.T) {
	m := singleTriangle()
	plane := geometry.NewPlane(geometry.NewVector3(0, 0, 0.001), geometry.NewVector3(0, 0, 1))

	cutter := NewCutter()
	cutter.Tolerance = 0.01
	result := cutter.Cut(m, plane)
	assert.False(t, result.Changed(), "crossing this close to C is inside the tolerance band")

	result = Cut(m, plane)
	assert.True(t, result.Changed())
	for _, vi := range result.Seam {
		assert.False(t, math.IsNaN(m.Vertices[vi].Z))
	}
}

func TestCutObliquePlanesTerminate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	coord := func() float64 { return 0.05 + 0.9*rng.Float64() }
	component := func() float64 { return 2*rng.Float64() - 1 }

	planes := []geometry.Plane{
		geometry.NewPlane(geometry.NewVector3(0.3, 0.6, 0.45), geometry.NewVector3(1, 2, 4)),
	}
	for len(planes) < 200 {
		normal := geometry.NewVector3(component(), component(), component())
		if normal.Length() < 0.1 {
			continue
		}
		planes = append(planes, geometry.NewPlane(geometry.NewVector3(coord(), coord(), coord()), normal))
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, plane := range planes {
			m := unitCube()
			result := Cut(m, plane)

			// A plane crosses at most two edges of a triangle, so every
			// original triangle ends as at most three and every original
			// edge gains at most one vertex.
			if !assert.LessOrEqual(t, result.TrianglesAfter, 3*result.TrianglesBefore, "plane %v", plane) ||
				!assert.LessOrEqual(t, result.VerticesAfter, 8+18, "plane %v", plane) {
				return
			}
			assert.Empty(t, straddling(m, plane, 1e-4), "plane %v", plane)

			second := Cut(m, plane)
			assert.False(t, second.Changed(), "second cut by %v changed the mesh", plane)
		}
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("cut did not terminate")
	}
}

package mesh

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/philipparndt/gocut/pkg/geometry"
)

// IntersectionCache remembers the vertex created where an edge crosses the
// plane, so that every triangle sharing that edge reuses the same vertex.
// A cache belongs to a single cut and grows monotonically.
type IntersectionCache struct {
	mesh      *Mesh
	plane     geometry.Plane
	tolerance float64
	edges     map[EdgeKey]int
	hits      int
}

// NewIntersectionCache creates an empty cache appending new vertices to m.
func NewIntersectionCache(m *Mesh, plane geometry.Plane, tolerance float64) *IntersectionCache {
	return &IntersectionCache{
		mesh:      m,
		plane:     plane,
		tolerance: tolerance,
		edges:     make(map[EdgeKey]int),
	}
}

// Resolve returns the index of the vertex where edge (i, j) crosses the
// plane. On first use of an edge the crossing is computed and appended to
// the mesh. The boolean is false when the edge does not cross the plane
// strictly inside; neither the mesh nor the cache change in that case.
func (c *IntersectionCache) Resolve(i, j int) (int, bool) {
	key := NewEdgeKey(i, j)
	if m, ok := c.edges[key]; ok {
		c.hits++
		return m, true
	}

	p := c.mesh.Vertices[key.A]
	q := c.mesh.Vertices[key.B]
	lambda, ok := c.plane.Locate(p, q, c.tolerance)
	if !ok {
		return -1, false
	}

	m := c.mesh.AddVertex(p.Lerp(q, lambda))
	c.edges[key] = m
	return m, true
}

// Lookup returns the cached crossing of edge (i, j) without computing one.
func (c *IntersectionCache) Lookup(i, j int) (int, bool) {
	m, ok := c.edges[NewEdgeKey(i, j)]
	return m, ok
}

// Len returns the number of edges split so far
func (c *IntersectionCache) Len() int {
	return len(c.edges)
}

// Hits returns how many Resolve calls were answered from the cache
func (c *IntersectionCache) Hits() int {
	return c.hits
}

// Misses returns how many crossing vertices were created
func (c *IntersectionCache) Misses() int {
	return len(c.edges)
}

// Seam returns the indices of all crossing vertices in ascending order.
func (c *IntersectionCache) Seam() []int {
	seam := maps.Values(c.edges)
	slices.Sort(seam)
	return seam
}

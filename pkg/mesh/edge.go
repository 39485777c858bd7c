package mesh

// EdgeKey identifies an undirected edge by its two vertex indices, smaller
// index first.
type EdgeKey struct {
	A, B int
}

// NewEdgeKey returns the canonical key of edge (i, j)
func NewEdgeKey(i, j int) EdgeKey {
	if i > j {
		i, j = j, i
	}
	return EdgeKey{A: i, B: j}
}

// Edges returns the three edges of t, opposite corners 0, 1 and 2.
func (t Triangle) Edges() [3]EdgeKey {
	return [3]EdgeKey{
		NewEdgeKey(t[1], t[2]),
		NewEdgeKey(t[2], t[0]),
		NewEdgeKey(t[0], t[1]),
	}
}

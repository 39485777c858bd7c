package mesh

// Split tries to cut t along one of its edges.
//
// Each corner is taken as apex in turn, corner 0 first, and the opposite
// edge (j, k) is resolved against the cache. The first edge that crosses
// the plane at vertex m wins: t becomes (i, m, k) and (i, j, m) is the new
// triangle to append. Later edges are left for the next pass over the
// rewritten triangle, so which crossing is taken first depends on the
// vertex order of t.
//
// ok is false when no edge crosses; nothing is modified then.
func Split(t Triangle, cache *IntersectionCache) (rewritten, appended Triangle, ok bool) {
	for n := 0; n < 3; n++ {
		i := t[n]
		j := t[(n+1)%3]
		k := t[(n+2)%3]

		if m, hit := cache.Resolve(j, k); hit {
			return Triangle{i, m, k}, Triangle{i, j, m}, true
		}
	}
	return t, Triangle{}, false
}

// Package spatial buckets node positions into a uniform grid for
// approximate near-neighbor queries.
//
// The force simulation only evaluates pairwise repulsion against a bounded
// candidate set per node. [Index.Near] grows a diamond of buckets around the
// node until enough candidates are found, then adds the node's topological
// neighbors so springs are never missed. Candidate sets are a superset of
// the true neighbors inside the searched diamond, not of all nodes.
package spatial

import (
	"math"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// MinCandidates stops the ring expansion once this many nodes are found.
	MinCandidates = 50
	// MaxRing is the largest ring distance searched, in buckets.
	MaxRing = 5
)

type bucket struct {
	i, j int
}

// Index is a snapshot of node positions bucketed into square cells.
type Index struct {
	size    float64
	buckets map[bucket][]string
}

// Build buckets the given ids by position. The bucket side is
// sqrt(width*height / n), so on average one node falls into each bucket.
func Build(ids []string, pos func(id string) r2.Vec, width, height float64) *Index {
	size := math.Sqrt(width * height / float64(max(len(ids), 1)))
	if size <= 0 || math.IsNaN(size) {
		size = 1
	}
	ix := &Index{size: size, buckets: make(map[bucket][]string, len(ids))}
	for _, id := range ids {
		b := ix.bucketOf(pos(id))
		ix.buckets[b] = append(ix.buckets[b], id)
	}
	return ix
}

// BucketSize returns the side length of one bucket.
func (ix *Index) BucketSize() float64 {
	return ix.size
}

func (ix *Index) bucketOf(p r2.Vec) bucket {
	return bucket{
		i: int(math.Floor(p.X / ix.size)),
		j: int(math.Floor(p.Y / ix.size)),
	}
}

// Near returns the candidates for node id at position p: nodes from rings of
// buckets at Manhattan distance 0, 1, ... MaxRing, stopping after the first
// ring that brings the count to MinCandidates, followed by every entry of
// neighbors. The node itself is never included. Order is deterministic:
// ring order, then bucket insertion order, then neighbor order.
func (ix *Index) Near(id string, p r2.Vec, neighbors []string) []string {
	set := linkedhashset.New()
	center := ix.bucketOf(p)

	for dist := 0; dist <= MaxRing && set.Size() < MinCandidates; dist++ {
		for di := -dist; di <= dist; di++ {
			dj := dist - abs(di)
			for _, d := range ringOffsets(dj) {
				for _, v := range ix.buckets[bucket{center.i + di, center.j + d}] {
					if v != id {
						set.Add(v)
					}
				}
			}
		}
	}
	for _, v := range neighbors {
		if v != id {
			set.Add(v)
		}
	}

	out := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		out = append(out, v.(string))
	}
	return out
}

// ringOffsets returns -d and d, or just 0 when d is zero.
func ringOffsets(d int) []int {
	if d == 0 {
		return []int{0}
	}
	return []int{-d, d}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

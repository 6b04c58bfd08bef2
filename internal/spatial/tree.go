package spatial

import (
	"sort"

	"github.com/l1jgo/hexcore/internal/core/ecs"
)

type node struct {
	coord       Coord
	id          ecs.EntityID
	left, right *node
}

// Tree is a KD-tree over 4-D fixed-point hex coordinates, keyed to
// entity ids, queried with the Hexhattan metric. Exact deletion (no
// tombstones) keeps the tree always consistent at tick boundaries.
type Tree struct {
	root  *node
	count int
}

func New() *Tree {
	return &Tree{}
}

func (t *Tree) Len() int { return t.count }

// Add inserts (coord, id). Duplicate coordinates are allowed — multiple
// entities may share a tile.
func (t *Tree) Add(coord Coord, id ecs.EntityID) {
	t.root = insert(t.root, coord, id, 0)
	t.count++
}

func insert(n *node, coord Coord, id ecs.EntityID, depth int) *node {
	if n == nil {
		return &node{coord: coord, id: id}
	}
	axis := depth % 4
	if coord.axis(axis) < n.coord.axis(axis) {
		n.left = insert(n.left, coord, id, depth+1)
	} else {
		n.right = insert(n.right, coord, id, depth+1)
	}
	return n
}

// Remove deletes the exact (coord, id) pair. No-op if not present.
func (t *Tree) Remove(coord Coord, id ecs.EntityID) {
	var removed bool
	t.root, removed = remove(t.root, coord, id, 0)
	if removed {
		t.count--
	}
}

func remove(n *node, coord Coord, id ecs.EntityID, depth int) (*node, bool) {
	if n == nil {
		return nil, false
	}
	axis := depth % 4

	if n.coord.Equal(coord) && n.id == id {
		switch {
		case n.right != nil:
			succ := findMin(n.right, axis, depth+1)
			n.coord, n.id = succ.coord, succ.id
			n.right, _ = remove(n.right, succ.coord, succ.id, depth+1)
			return n, true
		case n.left != nil:
			succ := findMin(n.left, axis, depth+1)
			n.coord, n.id = succ.coord, succ.id
			n.right, _ = remove(n.left, succ.coord, succ.id, depth+1)
			n.left = nil
			return n, true
		default:
			return nil, true
		}
	}

	if coord.axis(axis) < n.coord.axis(axis) {
		var ok bool
		n.left, ok = remove(n.left, coord, id, depth+1)
		return n, ok
	}
	var ok bool
	n.right, ok = remove(n.right, coord, id, depth+1)
	return n, ok
}

func findMin(n *node, axis, depth int) *node {
	if n == nil {
		return nil
	}
	curAxis := depth % 4
	if curAxis == axis {
		if n.left == nil {
			return n
		}
		return findMin(n.left, axis, depth+1)
	}
	candidates := []*node{n}
	if l := findMin(n.left, axis, depth+1); l != nil {
		candidates = append(candidates, l)
	}
	if r := findMin(n.right, axis, depth+1); r != nil {
		candidates = append(candidates, r)
	}
	min := candidates[0]
	for _, c := range candidates[1:] {
		if c.coord.axis(axis) < min.coord.axis(axis) {
			min = c
		}
	}
	return min
}

// Hit is one result of a radius or k-nearest query.
type Hit struct {
	Coord Coord
	ID    ecs.EntityID
	Dist  int32
}

// WithinRadius returns every entry within r (inclusive) of coord under
// the Hexhattan metric.
func (t *Tree) WithinRadius(coord Coord, r int32) []Hit {
	var out []Hit
	var walk func(n *node, depth int)
	walk = func(n *node, depth int) {
		if n == nil {
			return
		}
		if d := Hexhattan(coord, n.coord); d <= r {
			out = append(out, Hit{Coord: n.coord, ID: n.id, Dist: d})
		}
		axis := depth % 4
		delta := coord.axis(axis) - n.coord.axis(axis)
		// A single axis can rule out a subtree only when the bounding
		// box separation itself exceeds r in that axis.
		if delta <= r {
			walk(n.left, depth+1)
		}
		if -delta <= r {
			walk(n.right, depth+1)
		}
	}
	walk(t.root, 0)
	return out
}

// NearestK returns the k closest entries to coord, sorted by ascending
// distance. Excludes nothing by itself — callers filter self-matches.
func (t *Tree) NearestK(coord Coord, k int) []Hit {
	var all []Hit
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		all = append(all, Hit{Coord: n.coord, ID: n.id, Dist: Hexhattan(coord, n.coord)})
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)
	sort.Slice(all, func(i, j int) bool { return all[i].Dist < all[j].Dist })
	if k < len(all) {
		all = all[:k]
	}
	return all
}

// Rebuild discards the current tree and reinserts every entry from
// scratch, balancing the tree by median-splitting each axis in turn.
func (t *Tree) Rebuild(entries []Hit) {
	t.root = nil
	t.count = 0
	t.root = build(entries, 0)
	t.count = len(entries)
}

func build(entries []Hit, depth int) *node {
	if len(entries) == 0 {
		return nil
	}
	axis := depth % 4
	sort.Slice(entries, func(i, j int) bool { return entries[i].Coord.axis(axis) < entries[j].Coord.axis(axis) })
	mid := len(entries) / 2
	n := &node{coord: entries[mid].Coord, id: entries[mid].ID}
	n.left = build(entries[:mid], depth+1)
	n.right = build(entries[mid+1:], depth+1)
	return n
}

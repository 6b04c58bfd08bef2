// Package pathfind implements hex A* as a pure function of a map snapshot,
// start, and destination, plus a bounded worker pool that runs it off the
// main tick thread.
package pathfind

import (
	"container/heap"

	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/worldmap"
)

// DefaultMaxSteps is the Complete path-limit cap from spec §4.7.
const DefaultMaxSteps = 20

type openEntry struct {
	loc   hex.Qrz
	fCost int
	index int
}

type openQueue []*openEntry

func (q openQueue) Len() int            { return len(q) }
func (q openQueue) Less(i, j int) bool  { return q[i].fCost < q[j].fCost }
func (q openQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i]; q[i].index, q[j].index = i, j }
func (q *openQueue) Push(x any)         { e := x.(*openEntry); e.index = len(*q); *q = append(*q, e) }
func (q *openQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

// FindPath runs A* from start to dest over m's traversable hexes (< 7
// occupants, per spec §4.7), capped at maxSteps nodes expanded. Returns
// the path from start to dest inclusive, reversed: index 0 is dest and
// the last element is start itself, so after dropping that element each
// pop from the back advances one tile — or nil if no path is found
// within the expansion cap.
func FindPath(m *worldmap.Map, start, dest hex.Qrz, maxSteps int) []hex.Qrz {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	if start.Equal(dest) {
		return []hex.Qrz{start}
	}

	cameFrom := map[hex.Qrz]hex.Qrz{}
	gScore := map[hex.Qrz]int{start: 0}

	open := &openQueue{{loc: start, fCost: hex.FlatDistance(start, dest)}}
	heap.Init(open)
	visited := map[hex.Qrz]bool{}

	for open.Len() > 0 && len(visited) < maxSteps {
		cur := heap.Pop(open).(*openEntry).loc
		if visited[cur] {
			continue
		}
		visited[cur] = true

		if cur.Equal(dest) {
			return reconstruct(cameFrom, cur)
		}

		for _, next := range cur.Neighbors() {
			if !m.Traversable(next) {
				continue
			}
			tentative := gScore[cur] + 1
			if g, ok := gScore[next]; ok && g <= tentative {
				continue
			}
			cameFrom[next] = cur
			gScore[next] = tentative
			heap.Push(open, &openEntry{loc: next, fCost: tentative + hex.FlatDistance(next, dest)})
		}
	}

	return nil
}

// reconstruct walks cameFrom from dest back to start and returns the path
// reversed: index 0 is dest, the last element is start, so PathTo pops
// from the back to advance one tile toward dest.
func reconstruct(cameFrom map[hex.Qrz]hex.Qrz, cur hex.Qrz) []hex.Qrz {
	path := []hex.Qrz{cur}
	for {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	return path
}

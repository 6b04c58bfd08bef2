package spatial

import "github.com/l1jgo/hexcore/internal/hex"

// Coord is the 4-D fixed-point key the tree indexes on: the three axial
// components plus elevation.
type Coord struct {
	Q, R, S, Z int32
}

func FromQrz(q hex.Qrz) Coord {
	return Coord{Q: int32(q.Q), R: int32(q.R), S: int32(q.S()), Z: int32(q.Z)}
}

func (c Coord) axis(i int) int32 {
	switch i % 4 {
	case 0:
		return c.Q
	case 1:
		return c.R
	case 2:
		return c.S
	default:
		return c.Z
	}
}

func (c Coord) Equal(o Coord) bool {
	return c.Q == o.Q && c.R == o.R && c.S == o.S && c.Z == o.Z
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// Hexhattan is the spatial index's distance metric: max of the three
// axial deltas, plus the absolute elevation delta.
func Hexhattan(a, b Coord) int32 {
	dq := abs32(a.Q - b.Q)
	dr := abs32(a.R - b.R)
	ds := abs32(a.S - b.S)
	return max32(dq, max32(dr, ds)) + abs32(a.Z-b.Z)
}

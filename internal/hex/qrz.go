// Package hex implements the axial hex coordinate algebra the rest of the
// simulation is built on: addition, distance, rounding, and neighbor walks.
package hex

// Qrz is a hex coordinate (q, r) with the third axial coordinate s = -q-r
// implied, plus an independent elevation z. All three stored fields are
// 16-bit signed so a Qrz fits in a single machine word pair on the wire.
type Qrz struct {
	Q, R, Z int16
}

// S returns the implicit third axial coordinate. q + r + s == 0 always.
func (a Qrz) S() int16 {
	return -a.Q - a.R
}

func New(q, r, z int16) Qrz {
	return Qrz{Q: q, R: r, Z: z}
}

func (a Qrz) Add(b Qrz) Qrz {
	return Qrz{Q: a.Q + b.Q, R: a.R + b.R, Z: a.Z + b.Z}
}

func (a Qrz) Sub(b Qrz) Qrz {
	return Qrz{Q: a.Q - b.Q, R: a.R - b.R, Z: a.Z - b.Z}
}

func (a Qrz) Scale(k int16) Qrz {
	return Qrz{Q: a.Q * k, R: a.R * k, Z: a.Z * k}
}

func (a Qrz) Equal(b Qrz) bool {
	return a.Q == b.Q && a.R == b.R && a.Z == b.Z
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

func max16(a, b int16) int16 {
	if a > b {
		return a
	}
	return b
}

// FlatDistance is the 2D hex distance, ignoring elevation:
// max(|Δq|, |Δr|, |Δq+Δr|).
func FlatDistance(a, b Qrz) int {
	dq := abs16(a.Q - b.Q)
	dr := abs16(a.R - b.R)
	ds := abs16((a.Q + a.R) - (b.Q + b.R))
	return int(max16(dq, max16(dr, ds)))
}

// Distance3D is the flat distance plus the absolute elevation delta.
func Distance3D(a, b Qrz) int {
	return FlatDistance(a, b) + int(abs16(a.Z-b.Z))
}

// neighborDirs are the six cardinal unit vectors in the q-r plane, in
// clockwise order starting from due east.
var neighborDirs = [6]Qrz{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six hexes adjacent to a, in the same plane (z
// unchanged).
func (a Qrz) Neighbors() [6]Qrz {
	var out [6]Qrz
	for i, d := range neighborDirs {
		out[i] = a.Add(Qrz{Q: d.Q, R: d.R})
	}
	return out
}

// Neighbor returns the single neighbor in the given cardinal direction
// (0..5, same order as Neighbors).
func (a Qrz) Neighbor(dir int) Qrz {
	d := neighborDirs[((dir%6)+6)%6]
	return Qrz{Q: a.Q + d.Q, R: a.R + d.R, Z: a.Z}
}

// DirectionIndex maps a unit heading (q, r only, z ignored) back to the
// cardinal index used by Neighbor/Neighbors, or -1 if it isn't one of the
// six cardinal directions.
func DirectionIndex(h Qrz) int {
	for i, d := range neighborDirs {
		if d.Q == h.Q && d.R == h.R {
			return i
		}
	}
	return -1
}

// Arc walks the ring at the given radius around a, fanned out from
// direction dir by walking two perpendicular directions. radius 0 yields
// just a itself.
func Arc(a Qrz, dir, radius int) []Qrz {
	if radius <= 0 {
		return []Qrz{a}
	}
	dir = ((dir % 6) + 6) % 6
	spoke := a.Add(Qrz{Q: neighborDirs[dir].Q * int16(radius), R: neighborDirs[dir].R * int16(radius)})
	left := (dir + 2) % 6
	right := (dir + 4) % 6

	out := make([]Qrz, 0, radius*2+1)
	out = append(out, spoke)

	cur := spoke
	for i := 0; i < radius; i++ {
		cur = cur.Neighbor(left)
		out = append(out, cur)
	}
	cur = spoke
	for i := 0; i < radius; i++ {
		cur = cur.Neighbor(right)
		out = append(out, cur)
	}
	return out
}

// DoublewidthKey returns the (2q+r, r, z) ordering key used for
// deterministic iteration over sets of Qrz.
func (a Qrz) DoublewidthKey() (int32, int32, int32) {
	return int32(2*a.Q + a.R), int32(a.R), int32(a.Z)
}

// Less implements the canonical doublewidth ordering for sorting.
func (a Qrz) Less(b Qrz) bool {
	ax, ay, az := a.DoublewidthKey()
	bx, by, bz := b.DoublewidthKey()
	if ax != bx {
		return ax < bx
	}
	if ay != by {
		return ay < by
	}
	return az < bz
}

// Round returns the nearest valid Qrz to fractional axial coordinates
// (fq, fr, fz), preserving q+r+s == 0 by discarding whichever axis has
// the largest rounding error and recomputing it from the other two.
func Round(fq, fr, fz float64) Qrz {
	fs := -fq - fr

	q := roundF(fq)
	r := roundF(fr)
	s := roundF(fs)

	dq := abs(q - fq)
	dr := abs(r - fr)
	ds := abs(s - fs)

	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	default:
		// s recomputed implicitly; nothing to do.
	}

	return Qrz{Q: int16(q), R: int16(r), Z: int16(roundF(fz))}
}

func roundF(v float64) float64 {
	if v >= 0 {
		return float64(int64(v + 0.5))
	}
	return float64(int64(v - 0.5))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

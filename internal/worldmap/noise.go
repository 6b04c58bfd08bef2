package worldmap

import "math"

// valueNoise is a deterministic, seeded 2D value-noise generator.
// Unpopulated tiles read the noise directly so the world is effectively
// infinite: no special-casing for "outside the generated area".
type valueNoise struct {
	seed int64
}

func newValueNoise(seed int64) valueNoise {
	return valueNoise{seed: seed}
}

// lattice hashes an integer lattice point plus the seed to a float in
// [0, 1), deterministically for any (seed, x, y) triple.
func (n valueNoise) lattice(x, y int64) float64 {
	h := uint64(x)*0x9E3779B97F4A7C15 ^ uint64(y)*0xC2B2AE3D27D4EB4F ^ uint64(n.seed)*0xFF51AFD7ED558CCD
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	h *= 0xC4CEB9FE1A85EC53
	h ^= h >> 33
	return float64(h>>11) / float64(1<<53)
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// elevation samples ±10 value noise at fractional hex coordinates (q, r),
// suitable for filling in z for any tile not explicitly inserted.
func (n valueNoise) elevation(q, r float64) int16 {
	x0 := math.Floor(q)
	y0 := math.Floor(r)
	x1 := x0 + 1
	y1 := y0 + 1

	tx := smoothstep(q - x0)
	ty := smoothstep(r - y0)

	v00 := n.lattice(int64(x0), int64(y0))
	v10 := n.lattice(int64(x1), int64(y0))
	v01 := n.lattice(int64(x0), int64(y1))
	v11 := n.lattice(int64(x1), int64(y1))

	top := v00 + (v10-v00)*tx
	bottom := v01 + (v11-v01)*tx
	v := top + (bottom-top)*ty // in [0,1)

	return int16(math.Round((v*2 - 1) * 10))
}

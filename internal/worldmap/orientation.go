package worldmap

import "math"

// orientation packs the forward and inverse halves of the flat-top axial
// basis into one 2x4 matrix: columns 0-1 convert hex -> world, columns
// 2-3 convert world -> hex. Negated on the world axes so +x reads right
// and +z reads into the screen, matching a standard right-handed camera.
type orientation struct {
	f0, f1, f2, f3 float64
	b0, b1, b2, b3 float64
}

var flatTop = orientation{
	f0: 3.0 / 2.0, f1: 0,
	f2: math.Sqrt(3) / 2.0, f3: math.Sqrt(3),

	b0: 2.0 / 3.0, b1: 0,
	b2: -1.0 / 3.0, b3: math.Sqrt(3) / 3.0,
}

// hexToWorld converts an axial (q, r) pair to world-space (x, z) at the
// given tile size, with y left to the caller (elevation is independent
// of the planar projection).
func hexToWorld(q, r float64, size float64) (x, z float64) {
	x = (flatTop.f0*q + flatTop.f1*r) * size
	z = (flatTop.f2*q + flatTop.f3*r) * size
	return -x, -z
}

// worldToHex converts world-space (x, z) back to fractional axial (q, r).
func worldToHex(x, z float64, size float64) (q, r float64) {
	x, z = -x, -z
	q = (flatTop.b0*x + flatTop.b1*z) / size
	r = (flatTop.b2*x + flatTop.b3*z) / size
	return
}

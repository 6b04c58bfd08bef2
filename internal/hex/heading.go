package hex

// HeadingFrom derives a unit-length heading Qrz pointing from origin
// toward target, used by Lunge to orient the caster. Returns the zero
// heading if origin == target.
func HeadingFrom(origin, target Qrz) Qrz {
	dq := target.Q - origin.Q
	dr := target.R - origin.R
	if dq == 0 && dr == 0 {
		return Qrz{}
	}
	best := neighborDirs[0]
	bestDot := -1 << 30
	for _, d := range neighborDirs {
		dot := int(d.Q)*int(dq) + int(d.R)*int(dr)
		if dot > bestDot {
			bestDot = dot
			best = d
		}
	}
	return Qrz{Q: best.Q, R: best.R}
}

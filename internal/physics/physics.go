// Package physics integrates one tick's worth of movement for a single
// controlled entity: vertical airtime/gravity and horizontal heading
// movement, with tile-boundary crossing detection.
package physics

import (
	"math"

	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/worldmap"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// Movement tuning. farFactor/nearFactor scale how far, in tile radii,
// the horizontal target point leads the heading direction: far targets
// let a held direction carry all the way to the neighbor tile's center,
// near targets nudge only enough to clear the current tile's edge.
const (
	farFactor  = 0.95
	nearFactor = 0.15

	// floorScanDepth bounds how many tiles Apply scans downward to find
	// solid ground beneath the entity.
	floorScanDepth = 5
)

// Apply integrates dtMs milliseconds of movement for an entity at loc
// with the given heading, offset, and air time, mutating *loc in place
// if the entity crosses into a new tile this step.
func Apply(keyBits uint8, dtMs int64, loc *hex.Qrz, heading hex.Qrz, offset worldstate.Offset, air worldstate.AirTime, m *worldmap.Map, movementSpeed float64) (worldstate.Offset, worldstate.AirTime) {
	dt := float64(dtMs)

	floorLoc := m.Find(hex.Qrz{Q: loc.Q, R: loc.R, Z: loc.Z + 1}, -floorScanDepth)
	floorY := float64(floorLoc.Z) * m.Rise()

	offset, air = applyVertical(offset, air, dt, m.Rise(), floorY)
	offset = applyHorizontal(keyBits, heading, offset, dt, loc, m, movementSpeed)

	curr := m.Convert(*loc).Add(offset.Pos)
	newLoc := m.ConvertToHex(curr)
	if !newLoc.Equal(*loc) {
		center := m.Convert(newLoc)
		offset.Pos = curr.Sub(center)
		*loc = newLoc
		air = worldstate.AirTime{}
	}

	return offset, air
}

func applyVertical(offset worldstate.Offset, air worldstate.AirTime, dt, rise, floorY float64) (worldstate.Offset, worldstate.AirTime) {
	apex := rise * 2.4

	if air.Active {
		base := float64(air.RemainingMs) / 1000.0
		if base <= 0 {
			base = 0
		}
		t := 1 - math.Pow(base, dt/1000.0)
		offset.Pos.Y += (apex - offset.Pos.Y) * t

		air.RemainingMs -= int64(dt)
		if air.RemainingMs <= 0 {
			air.Active = false
			air.RemainingMs = 0
		}
	} else {
		offset.Pos.Y += -dt / 100.0
	}

	if offset.Pos.Y < floorY {
		offset.Pos.Y = floorY
	}
	return offset, air
}

func applyHorizontal(keyBits uint8, heading hex.Qrz, offset worldstate.Offset, dt float64, loc *hex.Qrz, m *worldmap.Map, movementSpeed float64) worldstate.Offset {
	anyHeadingKey := keyBits&(hex.KeyQ|hex.KeyR|hex.KeyNegS) != 0
	if heading.Q == 0 && heading.R == 0 {
		return offset
	}

	here := offset.Pos
	dir := worldmap.Vec3{X: float64(heading.Q), Z: float64(heading.R)}

	far := here.Add(dir.Scale(farFactor * m.Radius()))
	near := here.Add(dir.Scale(nearFactor * m.Radius()))

	target := near
	if anyHeadingKey {
		if dir := hex.DirectionIndex(heading); dir >= 0 && m.Traversable(loc.Neighbor(dir)) {
			target = far
		}
	}

	delta := target.Sub(here)
	dist := math.Sqrt(delta.X*delta.X + delta.Z*delta.Z)
	maxStep := movementSpeed * dt
	if dist <= maxStep || dist == 0 {
		offset.Pos = worldmap.Vec3{X: target.X, Y: offset.Pos.Y, Z: target.Z}
	} else {
		step := delta.Scale(maxStep / dist)
		offset.Pos = worldmap.Vec3{X: here.X + step.X, Y: offset.Pos.Y, Z: here.Z + step.Z}
	}
	return offset
}

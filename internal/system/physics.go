package system

import (
	"time"

	coresys "github.com/l1jgo/hexcore/internal/core/system"
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/input"
	"github.com/l1jgo/hexcore/internal/physics"
)

// PhysicsSystem integrates every player's pending input segments through
// internal/physics, moving Loc/Offset/AirTime/Heading and emitting a
// Do::Incremental whenever a segment crosses a tile boundary. Phase
// PhasePhysics, reading what InputSliceSystem produced one phase
// earlier in the same Runner.Tick().
type PhysicsSystem struct {
	ctx *Context
}

func NewPhysicsSystem(ctx *Context) *PhysicsSystem {
	return &PhysicsSystem{ctx: ctx}
}

func (s *PhysicsSystem) Phase() coresys.Phase { return coresys.PhasePhysics }

func (s *PhysicsSystem) Update(_ time.Duration) {
	c := s.ctx
	for id, segments := range c.pendingInput {
		s.applySegments(id, segments)
	}
}

func (s *PhysicsSystem) applySegments(id ecs.EntityID, segments []input.Input) {
	c := s.ctx
	loc, ok := c.Stores.Loc.Get(id)
	if !ok {
		return
	}
	heading, ok := c.Stores.Heading.Get(id)
	if !ok {
		return
	}
	offset, ok := c.Stores.Offset.Get(id)
	if !ok {
		return
	}
	air, ok := c.Stores.AirTime.Get(id)
	if !ok {
		return
	}

	speed := c.Cfg.Server.MovementSpeedDefault
	startLoc := loc.Qrz

	for _, seg := range segments {
		heading.Dir = hex.DecodeHeading(seg.KeyBits, heading.Dir)
		newOffset, newAir := physics.Apply(seg.KeyBits, int64(seg.DtMs), &loc.Qrz, heading.Dir, *offset, *air, c.Map, speed)
		*offset = newOffset
		*air = newAir
	}

	if loc.Qrz != startLoc {
		event.Emit(c.Bus, event.DoIncremental{Entity: id, Loc: loc.Qrz, Heading: headingBits(heading.Dir)})
	}
}

// headingBits packs a unit Qrz heading back into the wire key-bit shape
// DecodeHeading understands, for Do::Incremental's display-only heading
// field — the reverse direction never needs NegS disambiguation since
// it's derived straight from one of DecodeHeading's six known outputs.
func headingBits(dir hex.Qrz) uint8 {
	switch dir {
	case hex.Qrz{Q: 1, R: 0}:
		return hex.KeyQ
	case hex.Qrz{Q: 0, R: 1}:
		return hex.KeyR
	case hex.Qrz{Q: -1, R: 1}:
		return hex.KeyQ | hex.KeyR
	case hex.Qrz{Q: -1, R: 0}:
		return hex.KeyQ | hex.KeyNegS
	case hex.Qrz{Q: 0, R: -1}:
		return hex.KeyR | hex.KeyNegS
	case hex.Qrz{Q: 1, R: -1}:
		return hex.KeyQ | hex.KeyR | hex.KeyNegS
	default:
		return 0
	}
}

package system

import (
	"time"

	coresys "github.com/l1jgo/hexcore/internal/core/system"
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/spatial"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// SpatialSystem reconciles the KD-tree index against every entity with a
// Loc component, once per tick. A full rebuild is simpler than tracking
// per-entity moves and cheap at this scale (single zone's worth of
// players and engaged NPCs), so it is preferred over incremental
// Add/Remove bookkeeping that would have to mirror PhysicsSystem's tile
// crossings exactly. Phase PhaseSpatial, after PhasePhysics has settled
// every Loc for the tick.
type SpatialSystem struct {
	ctx *Context
}

func NewSpatialSystem(ctx *Context) *SpatialSystem {
	return &SpatialSystem{ctx: ctx}
}

func (s *SpatialSystem) Phase() coresys.Phase { return coresys.PhaseSpatial }

func (s *SpatialSystem) Update(_ time.Duration) {
	c := s.ctx
	entries := make([]spatial.Hit, 0, c.Stores.Loc.Len())
	c.Stores.Loc.Each(func(id ecs.EntityID, loc *worldstate.Loc) {
		entries = append(entries, spatial.Hit{Coord: spatial.FromQrz(loc.Qrz), ID: id})
	})
	c.Index.Rebuild(entries)
}

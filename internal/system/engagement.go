package system

import (
	"time"

	coresys "github.com/l1jgo/hexcore/internal/core/system"
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/protocol"
	"github.com/l1jgo/hexcore/internal/spatial"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// zoneSpawnCooldownMs throttles how often a zone re-attempts a spawn once
// a player is discovered inside it, so a crowded zone doesn't burn
// through its whole budget in the first few ticks a player stands in it.
const zoneSpawnCooldownMs = 2000

// EngagementSystem runs the chunk-discovery spawn algorithm for every
// zone a player currently occupies, and ages out abandoned/cleared
// engagements. Phase PhaseEngagement.
type EngagementSystem struct {
	ctx            *Context
	lastAttemptMs  map[worldstate.ZoneId]int64
}

func NewEngagementSystem(ctx *Context) *EngagementSystem {
	return &EngagementSystem{
		ctx:           ctx,
		lastAttemptMs: make(map[worldstate.ZoneId]int64),
	}
}

func (s *EngagementSystem) Phase() coresys.Phase { return coresys.PhaseEngagement }

func (s *EngagementSystem) Update(_ time.Duration) {
	c := s.ctx

	seenZones := make(map[worldstate.ZoneId]struct{})
	players := spatial.New()
	c.Stores.PlayerSession.Each(func(id ecs.EntityID, _ *worldstate.PlayerSession) {
		loc, ok := c.Stores.Loc.Get(id)
		if !ok {
			return
		}
		players.Add(spatial.FromQrz(loc.Qrz), id)
		zone := worldstate.ZoneFrom(loc.Qrz)
		if _, dup := seenZones[zone]; dup {
			return
		}
		seenZones[zone] = struct{}{}

		if c.NowMs-s.lastAttemptMs[zone] < zoneSpawnCooldownMs {
			return
		}
		s.lastAttemptMs[zone] = c.NowMs

		s.trySpawn(loc.Qrz)
	})

	c.Cleanup.Tick(c.NowMs, players)
}

// trySpawn runs the spawn algorithm once and, on success, broadcasts a
// Do::Spawn for every NPC the engagement created. Spawner itself has no
// bus reference (it is pure world-state construction), so this is the
// system-level glue that makes a new engagement visible to clients.
func (s *EngagementSystem) trySpawn(playerLoc hex.Qrz) {
	c := s.ctx
	engagementID, ok := c.Spawner.Spawn(playerLoc, c.NowMs)
	if !ok {
		return
	}
	eng, ok := c.Stores.Engagement.Get(engagementID)
	if !ok {
		return
	}
	for _, npc := range eng.Members {
		loc, ok := c.Stores.Loc.Get(npc)
		if !ok {
			continue
		}
		event.Emit(c.Bus, event.DoSpawn{Entity: npc, Loc: loc.Qrz, Kind: uint8(protocol.EntityKindNpc)})
	}
}

package engagement

import (
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/spatial"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// abandonmentMs is how long an engagement may go without a nearby player
// before it is torn down, per spec.md's engagement cleanup rule.
const abandonmentMs = 60_000

// proximityRadius is how close a player must be to refresh
// LastPlayerProximity, expressed in the spatial index's Hexhattan metric.
const proximityRadius = 100

// Cleanup is everything a tick needs to evaluate engagement lifecycles:
// component stores, the entity pool/destroy-queue, the player spatial
// index (for the proximity check), and the zone budget to release.
type Cleanup struct {
	Stores *worldstate.Stores
	World  *ecs.World
	Budget *Budget
}

// Tick runs one cleanup pass over every live engagement: refreshes
// LastPlayerProximity when a player is within proximityRadius of the
// spawn location, then despawns the group (and releases its zone budget
// slot) if it's been abandoned for abandonmentMs or every member NPC is
// dead.
func (c *Cleanup) Tick(nowMs int64, playerIndex *spatial.Tree) {
	c.Stores.Engagement.Each(func(id ecs.EntityID, eng *worldstate.Engagement) {
		proximity, ok := c.Stores.LastPlayerProximity.Get(id)
		if !ok {
			proximity = &worldstate.LastPlayerProximity{LastSeenMs: nowMs}
			c.Stores.LastPlayerProximity.Set(id, proximity)
		}

		if playerIndex != nil {
			hits := playerIndex.WithinRadius(spatial.FromQrz(eng.SpawnLoc), proximityRadius)
			if len(hits) > 0 {
				proximity.LastSeenMs = nowMs
			}
		}

		allDead := allMembersDead(c.Stores, eng.Members)
		abandoned := nowMs-proximity.LastSeenMs >= abandonmentMs

		if !allDead && !abandoned {
			return
		}

		for _, m := range eng.Members {
			c.World.MarkForDestruction(m)
			c.Stores.EngagementMember.Remove(m)
		}
		c.Budget.Unregister(eng.Zone)
		c.Stores.LastPlayerProximity.Remove(id)
		c.World.MarkForDestruction(id)
	})
}

func allMembersDead(stores *worldstate.Stores, members []ecs.EntityID) bool {
	for _, m := range members {
		if _, dead := stores.RespawnTmr.Get(m); !dead {
			if _, hasLoc := stores.Loc.Get(m); hasLoc {
				return false
			}
		}
	}
	return true
}

package system

import (
	"time"

	"github.com/l1jgo/hexcore/internal/behavior"
	coresys "github.com/l1jgo/hexcore/internal/core/system"
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// abilityPolicyCadenceMs is the signature-ability opportunistic check
// cadence from spec §4.7, independent of the simulation's own tick rate.
const abilityPolicyCadenceMs = 500

// BehaviorSystem drives every engaged NPC through its archetype's
// pursuit/kite sequence and, on a slower cadence, its opportunistic
// signature-ability policy. Phase PhaseBehavior.
type BehaviorSystem struct {
	ctx *Context
}

func NewBehaviorSystem(ctx *Context) *BehaviorSystem {
	return &BehaviorSystem{ctx: ctx}
}

func (s *BehaviorSystem) Phase() coresys.Phase { return coresys.PhaseBehavior }

func (s *BehaviorSystem) Update(dt time.Duration) {
	c := s.ctx
	bctx := c.behaviorContext()

	behavior.DrainPathfinding(bctx)

	var npcs []ecs.EntityID
	c.Stores.EngagementMember.Each(func(id ecs.EntityID, _ *worldstate.EngagementMember) {
		npcs = append(npcs, id)
	})

	behavior.Tick(bctx, npcs)

	c.abilityPolicyAccumMs += dt.Milliseconds()
	if c.abilityPolicyAccumMs < abilityPolicyCadenceMs {
		return
	}
	c.abilityPolicyAccumMs -= abilityPolicyCadenceMs

	for _, npc := range npcs {
		if _, dead := c.Stores.RespawnTmr.Get(npc); dead {
			continue
		}
		behavior.RunAbilityPolicy(bctx, npc)
	}
}

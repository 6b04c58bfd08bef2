package behavior

import (
	"github.com/l1jgo/hexcore/internal/combat"
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/hex"
)

// UseAbilityIfAdjacent emits Try::UseAbility for npc's current target if
// it is exactly one tile away, in-cone, and the NPC's Gcd is clear. The
// actual validation/resolution (stamina, recovery, damage) happens in
// combat.HandleUseAbility — this node only decides whether it's worth
// asking.
func UseAbilityIfAdjacent(ctx *Context, npc ecs.EntityID, ability uint8) bool {
	tgt, ok := ctx.Stores.Target.Get(npc)
	if !ok || !tgt.HasEntity {
		return false
	}
	if gcd, ok := ctx.Stores.Gcd.Get(npc); ok && gcd.ExpiresAtMs > ctx.NowMs {
		return false
	}
	npcLoc, ok := ctx.Stores.Loc.Get(npc)
	if !ok {
		return false
	}
	targetLoc, ok := ctx.Stores.Loc.Get(tgt.Entity)
	if !ok {
		return false
	}
	if hex.FlatDistance(npcLoc.Qrz, targetLoc.Qrz) != 1 {
		return false
	}
	heading, ok := ctx.Stores.Heading.Get(npc)
	if !ok {
		return false
	}
	if !combat.InFacingCone(ctx.Map, npcLoc.Qrz, heading.Dir, targetLoc.Qrz) {
		return false
	}

	event.Emit(ctx.Bus, event.TryUseAbility{Entity: npc, AbilityID: ability})
	return true
}

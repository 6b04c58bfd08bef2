package behavior

import (
	"github.com/l1jgo/hexcore/internal/combat"
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// Per-archetype ability and range tuning for the canonical NPC sequences,
// grounded directly in spec §4.7's worked NPC ability usage policy.
const (
	berserkerMinRange, berserkerMaxRange = 2, 4
	berserkerStaminaFloor                = 20
	juggernautStaminaFloor               = 40
	kiterMinRange, kiterOptMin, kiterOptMax = 4, 5, 8
	kiterStaminaFloor                      = 25
	defenderStaminaFloor                   = 30
)

// Tick runs one behavior step for every NPC with an Engagement
// membership, dispatching on its engagement's Archetype. This mirrors
// the teacher's two-branch guard/monster AI dispatch, generalized to the
// four archetypes spec.md's engagement spawner produces.
func Tick(ctx *Context, npcs []ecs.EntityID) {
	for _, npc := range npcs {
		if _, dead := ctx.Stores.RespawnTmr.Get(npc); dead {
			continue
		}
		archetype, ok := npcArchetype(ctx, npc)
		if !ok {
			continue
		}
		switch archetype {
		case worldstate.ArchetypeBerserker:
			Chase(ctx, npc, uint8(combat.AbilityAutoAttack))
		case worldstate.ArchetypeJuggernaut:
			Chase(ctx, npc, uint8(combat.AbilityOverpower))
		case worldstate.ArchetypeDefender:
			Chase(ctx, npc, uint8(combat.AbilityAutoAttack))
		case worldstate.ArchetypeKiter:
			Kite(ctx, npc, kiterMinRange, kiterOptMin, kiterOptMax, uint8(combat.AbilityVolley))
		}
	}
}

func npcArchetype(ctx *Context, npc ecs.EntityID) (worldstate.Archetype, bool) {
	member, ok := ctx.Stores.EngagementMember.Get(npc)
	if !ok {
		return 0, false
	}
	eng, ok := ctx.Stores.Engagement.Get(member.Engagement)
	if !ok {
		return 0, false
	}
	return eng.Archetype, true
}

// RunAbilityPolicy implements the 0.5s-cadence opportunistic ability
// usage policy from spec §4.7, distinct from the per-tick Chase/Kite
// sequences: it lets an NPC reach for its signature ability as soon as
// range and resource conditions allow, without waiting for the full
// pursuit sequence to bring it adjacent. Callers gate the 0.5s cadence
// themselves (e.g. a ticking accumulator in the behavior system);
// this function assumes it is being called on-cadence.
func RunAbilityPolicy(ctx *Context, npc ecs.EntityID) {
	if gcd, ok := ctx.Stores.GlobalRecovery.Get(npc); ok && gcd.IsActive() {
		return
	}
	archetype, ok := npcArchetype(ctx, npc)
	if !ok {
		return
	}
	tgt, ok := ctx.Stores.Target.Get(npc)
	if !ok || !tgt.HasEntity {
		return
	}
	npcLoc, ok := ctx.Stores.Loc.Get(npc)
	if !ok {
		return
	}
	targetLoc, ok := ctx.Stores.Loc.Get(tgt.Entity)
	if !ok {
		return
	}
	stamina, ok := ctx.Stores.Stamina.Get(npc)
	if !ok {
		return
	}
	dist := hex.FlatDistance(npcLoc.Qrz, targetLoc.Qrz)

	switch archetype {
	case worldstate.ArchetypeBerserker:
		if dist >= berserkerMinRange && dist <= berserkerMaxRange && stamina.State >= berserkerStaminaFloor {
			emitTryAbility(ctx, npc, combat.AbilityLunge, &targetLoc.Qrz)
		}
	case worldstate.ArchetypeJuggernaut:
		if dist == 1 && stamina.State >= juggernautStaminaFloor {
			emitTryAbility(ctx, npc, combat.AbilityOverpower, nil)
		}
	case worldstate.ArchetypeKiter:
		if dist >= kiterOptMin && dist <= kiterOptMax && stamina.State >= kiterStaminaFloor {
			emitTryAbility(ctx, npc, combat.AbilityVolley, &targetLoc.Qrz)
		}
	case worldstate.ArchetypeDefender:
		if rq, ok := ctx.Stores.ReactionQueue.Get(npc); ok && len(rq.Threats) > 0 && stamina.State >= defenderStaminaFloor {
			emitTryAbility(ctx, npc, combat.AbilityCounter, nil)
		}
	}
}

func emitTryAbility(ctx *Context, npc ecs.EntityID, ability combat.AbilityKind, targetLoc *hex.Qrz) {
	event.Emit(ctx.Bus, event.TryUseAbility{Entity: npc, AbilityID: uint8(ability), TargetLoc: targetLoc})
}

package behavior

import (
	"sort"

	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// Chase runs the canonical melee pursuit sequence: acquire/keep a
// target, face it, path toward the NPC's assigned approach hex, face it
// again, then attack if adjacent.
func Chase(ctx *Context, npc ecs.EntityID, ability uint8) bool {
	if !FindOrKeepTarget(ctx, npc) {
		return false
	}
	if !FaceTarget(ctx, npc) {
		return false
	}

	tgt, _ := ctx.Stores.Target.Get(npc)
	targetLoc, ok := ctx.Stores.Loc.Get(tgt.Entity)
	if !ok {
		return false
	}

	dest := approachHex(ctx, npc, targetLoc.Qrz)
	setPathDest(ctx, npc, dest, worldstate.PathLimit{Kind: worldstate.PathLimitComplete})
	PathTo(ctx, npc)
	FaceTarget(ctx, npc)

	return UseAbilityIfAdjacent(ctx, npc, ability)
}

// approachHex resolves npc's assigned approach hex from its engagement's
// HexAssignment, reassigning the whole group when the cached slot is no
// longer adjacent to targetLoc (the target moved). NPCs with no
// engagement membership path straight at the target's own tile.
func approachHex(ctx *Context, npc ecs.EntityID, targetLoc hex.Qrz) hex.Qrz {
	member, ok := ctx.Stores.EngagementMember.Get(npc)
	if !ok {
		return targetLoc
	}
	if assignment, ok := ctx.Stores.HexAssignment.Get(member.Engagement); ok {
		if slot, ok := assignment.Slots[npc]; ok && hex.FlatDistance(slot, targetLoc) == 1 {
			return slot
		}
	}
	ReassignHexes(ctx, member.Engagement, targetLoc)
	if assignment, ok := ctx.Stores.HexAssignment.Get(member.Engagement); ok {
		if slot, ok := assignment.Slots[npc]; ok {
			return slot
		}
	}
	return targetLoc
}

// ReassignHexes recomputes every live member's approach-hex slot around
// targetLoc: the six hexes adjacent to the target are handed out
// greedily, one member at a time in EntityID order, each member taking
// whichever open hex is closest to its current tile. Per-member archetype priority is
// vacuous within one engagement (every member shares Engagement.Archetype,
// since the spawn algorithm picks one archetype per group — see
// SPEC_FULL.md §4.8), so members are ordered by EntityID instead for a
// deterministic, stable assignment.
func ReassignHexes(ctx *Context, engagement ecs.EntityID, targetLoc hex.Qrz) {
	eng, ok := ctx.Stores.Engagement.Get(engagement)
	if !ok {
		return
	}
	assignment, ok := ctx.Stores.HexAssignment.Get(engagement)
	if !ok {
		assignment = worldstate.NewHexAssignment()
		ctx.Stores.HexAssignment.Set(engagement, assignment)
	}

	live := make([]ecs.EntityID, 0, len(eng.Members))
	for _, m := range eng.Members {
		if _, dead := ctx.Stores.RespawnTmr.Get(m); dead {
			continue
		}
		if _, hasLoc := ctx.Stores.Loc.Get(m); !hasLoc {
			continue
		}
		live = append(live, m)
	}
	sort.Slice(live, func(i, j int) bool { return live[i] < live[j] })

	ring := targetLoc.Neighbors()
	taken := make(map[hex.Qrz]bool, len(ring))
	newSlots := make(map[ecs.EntityID]hex.Qrz, len(live))
	for _, m := range live {
		mLoc, ok := ctx.Stores.Loc.Get(m)
		if !ok {
			continue
		}
		best, bestDist := -1, 1<<30
		for i, cand := range ring {
			if taken[cand] {
				continue
			}
			if d := hex.FlatDistance(mLoc.Qrz, cand); d < bestDist {
				bestDist, best = d, i
			}
		}
		if best < 0 {
			continue // ring exhausted: more melee members than approach hexes
		}
		taken[ring[best]] = true
		newSlots[m] = ring[best]
	}
	assignment.Slots = newSlots
}

package behavior

import (
	"github.com/l1jgo/hexcore/internal/combat"
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// Kite runs the ranged-harassment sequence: acquire/keep a target, flee
// if it has closed inside minRange, approach if it's beyond optimalMax,
// and fire ability once inside the [optimalMin, optimalMax] stand-off
// band.
func Kite(ctx *Context, npc ecs.EntityID, minRange, optimalMin, optimalMax int, ability uint8) bool {
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
	npcLoc, ok := ctx.Stores.Loc.Get(npc)
	if !ok {
		return false
	}
	dist := hex.FlatDistance(npcLoc.Qrz, targetLoc.Qrz)

	switch {
	case dist < minRange:
		dest := fleeDest(npcLoc.Qrz, targetLoc.Qrz, optimalMax)
		setPathDest(ctx, npc, dest, worldstate.PathLimit{Kind: worldstate.PathLimitComplete})
		PathTo(ctx, npc)
		return true

	case dist > optimalMax:
		setPathDest(ctx, npc, targetLoc.Qrz, worldstate.PathLimit{Kind: worldstate.PathLimitUntil, Steps: optimalMin})
		PathTo(ctx, npc)
		return true

	default:
		return fireInBand(ctx, npc, npcLoc.Qrz, targetLoc.Qrz, ability)
	}
}

func setPathDest(ctx *Context, npc ecs.EntityID, dest hex.Qrz, limit worldstate.PathLimit) {
	if path, ok := ctx.Stores.PathTo.Get(npc); ok && path.Dest.Equal(dest) && path.Limit == limit {
		return
	}
	ctx.Stores.PathTo.Set(npc, &worldstate.PathTo{Dest: dest, Limit: limit})
}

func fireInBand(ctx *Context, npc ecs.EntityID, npcLoc, targetLoc hex.Qrz, ability uint8) bool {
	if gcd, ok := ctx.Stores.Gcd.Get(npc); ok && gcd.ExpiresAtMs > ctx.NowMs {
		return false
	}
	heading, ok := ctx.Stores.Heading.Get(npc)
	if !ok || !combat.InFacingCone(ctx.Map, npcLoc, heading.Dir, targetLoc) {
		return false
	}
	loc := targetLoc
	event.Emit(ctx.Bus, event.TryUseAbility{Entity: npc, AbilityID: ability, TargetLoc: &loc})
	return true
}

// fleeDest picks a destination dist hexes away from npc, in the cardinal
// direction most opposite threat. Falls back to direction 0 when npc and
// threat occupy the same tile.
func fleeDest(npc, threat hex.Qrz, dist int) hex.Qrz {
	away := npc.Sub(threat)
	bestDir, bestScore := 0, -(1 << 30)
	for d := 0; d < 6; d++ {
		offset := hex.Qrz{}.Neighbor(d)
		score := int(offset.Q)*int(away.Q) + int(offset.R)*int(away.R)
		if score > bestScore {
			bestScore, bestDir = score, d
		}
	}
	cur := npc
	for i := 0; i < dist; i++ {
		cur = cur.Neighbor(bestDir)
	}
	return cur
}

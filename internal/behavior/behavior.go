// Package behavior runs the NPC decision tree: a sequential node runner
// over tagged components (FindOrKeepTarget, FaceTarget, PathTo,
// UseAbilityIfAdjacent, Nearby), plus the Chase/Kite composites built on
// top of them.
package behavior

import (
	"math/rand"

	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/pathfind"
	"github.com/l1jgo/hexcore/internal/spatial"
	"github.com/l1jgo/hexcore/internal/worldmap"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// Context bundles everything a node needs to read or mutate world state
// for one NPC during one tick.
type Context struct {
	Stores *worldstate.Stores
	Bus    *event.Bus
	Map    *worldmap.Map
	Index  *spatial.Tree
	Pool   *pathfind.Pool
	Rand   *rand.Rand
	NowMs  int64
}

// FindOrKeepTarget retains a valid existing TargetLock, or else scans
// the spatial index for a player within Radius and locks onto one chosen
// uniformly at random. Fails (returns false) if no lock survives and no
// candidate is found.
func FindOrKeepTarget(ctx *Context, npc ecs.EntityID) bool {
	cfg, ok := ctx.Stores.FindOrKeepTarget.Get(npc)
	if !ok {
		return false
	}
	npcLoc, ok := ctx.Stores.Loc.Get(npc)
	if !ok {
		return false
	}

	if lock, ok := ctx.Stores.TargetLock.Get(npc); ok {
		if validLock(ctx, npc, npcLoc.Qrz, *lock) {
			return true
		}
		ctx.Stores.TargetLock.Remove(npc)
	}

	candidates := nearbyPlayers(ctx, npcLoc.Qrz, cfg.Radius, npc)
	if len(candidates) == 0 {
		ctx.Stores.Target.Set(npc, &worldstate.Target{HasEntity: false})
		return false
	}

	pick := candidates[ctx.Rand.Intn(len(candidates))]
	ctx.Stores.TargetLock.Set(npc, &worldstate.TargetLock{Entity: pick, Leash: cfg.Leash})
	ctx.Stores.Target.Set(npc, &worldstate.Target{Entity: pick, HasEntity: true})
	return true
}

// validLock reports whether an existing lock still points at a live
// player within its leash distance, refreshing Target if so.
func validLock(ctx *Context, npc ecs.EntityID, npcLoc hex.Qrz, lock worldstate.TargetLock) bool {
	if _, dead := ctx.Stores.RespawnTmr.Get(lock.Entity); dead {
		return false
	}
	targetLoc, ok := ctx.Stores.Loc.Get(lock.Entity)
	if !ok || !isPlayerEntity(ctx, lock.Entity) {
		return false
	}
	if hex.FlatDistance(npcLoc, targetLoc.Qrz) > lock.Leash {
		return false
	}
	ctx.Stores.Target.Set(npc, &worldstate.Target{Entity: lock.Entity, HasEntity: true})
	return true
}

// isPlayerEntity discriminates player from NPC the same way
// internal/combat does: presence of NpcRecovery marks an NPC.
func isPlayerEntity(ctx *Context, ent ecs.EntityID) bool {
	_, isNpc := ctx.Stores.NpcRecovery.Get(ent)
	return !isNpc
}

func nearbyPlayers(ctx *Context, origin hex.Qrz, radius int, self ecs.EntityID) []ecs.EntityID {
	if ctx.Index == nil {
		return nil
	}
	hits := ctx.Index.WithinRadius(spatial.FromQrz(origin), int32(radius))
	out := make([]ecs.EntityID, 0, len(hits))
	for _, h := range hits {
		if h.ID == self || !isPlayerEntity(ctx, h.ID) {
			continue
		}
		out = append(out, h.ID)
	}
	return out
}

// FaceTarget sets Heading to the raw displacement toward the current
// target's tile. The result need not be a unit cardinal vector — every
// consumer (Map.ConvertDir, the facing-cone check) normalizes it.
func FaceTarget(ctx *Context, npc ecs.EntityID) bool {
	tgt, ok := ctx.Stores.Target.Get(npc)
	if !ok || !tgt.HasEntity {
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
	ctx.Stores.Heading.Set(npc, &worldstate.Heading{Dir: targetLoc.Qrz.Sub(npcLoc.Qrz)})
	return true
}

// Nearby succeeds when npc is within [Min, Max] hexes of Origin.
func Nearby(ctx *Context, npc ecs.EntityID, cfg worldstate.Nearby) bool {
	npcLoc, ok := ctx.Stores.Loc.Get(npc)
	if !ok {
		return false
	}
	d := hex.FlatDistance(npcLoc.Qrz, cfg.Origin)
	return d >= cfg.Min && d <= cfg.Max
}

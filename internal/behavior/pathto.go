package behavior

import (
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/pathfind"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// pathMaxSteps translates a PathLimit into the A* node-expansion cap;
// By(n) caps the search itself to n expanded nodes, Complete and Until
// both search up to the default cap (Until only trims the result
// afterward, via applyUntil).
func pathMaxSteps(limit worldstate.PathLimit) int {
	if limit.Kind == worldstate.PathLimitBy && limit.Steps > 0 {
		return limit.Steps
	}
	return pathfind.DefaultMaxSteps
}

// applyUntil trims the dest-most Steps tiles off a reversed path (index 0
// is dest) so PathTo stops Steps tiles short of Dest instead of reaching
// it exactly.
func applyUntil(limit worldstate.PathLimit, path []hex.Qrz) []hex.Qrz {
	if limit.Kind != worldstate.PathLimitUntil || limit.Steps <= 0 {
		return path
	}
	if limit.Steps >= len(path) {
		return nil
	}
	return path[limit.Steps:]
}

// PathTo advances npc one tile along its cached path, or obtains a fresh
// path when no path is cached: submitted to the pool, or computed in
// place when no pool is configured. Either way the call that obtains the
// path does not move the NPC; the next call does. Returns true when npc
// is already at Dest or on a call that moves it one tile; false on the
// call that requests or computes a path, when the next tile is not
// traversable, or if Loc/PathTo components are missing.
func PathTo(ctx *Context, npc ecs.EntityID) bool {
	path, ok := ctx.Stores.PathTo.Get(npc)
	if !ok {
		return false
	}
	npcLoc, ok := ctx.Stores.Loc.Get(npc)
	if !ok {
		return false
	}
	if npcLoc.Qrz.Equal(path.Dest) {
		return true
	}

	if len(path.Path) == 0 {
		maxSteps := pathMaxSteps(path.Limit)
		if ctx.Pool != nil {
			ctx.Pool.Submit(pathfind.Task{
				Entity: npc, Snapshot: ctx.Map, Start: npcLoc.Qrz, Dest: path.Dest, MaxSteps: maxSteps,
			})
		} else {
			found := pathfind.FindPath(ctx.Map, npcLoc.Qrz, path.Dest, maxSteps)
			path.Path = applyUntil(path.Limit, found)
		}
		return false
	}

	next := path.Path[len(path.Path)-1]
	if next.Equal(npcLoc.Qrz) {
		// A fresh FindPath result still ends with the start tile itself.
		path.Path = path.Path[:len(path.Path)-1]
		if len(path.Path) == 0 {
			return false
		}
		next = path.Path[len(path.Path)-1]
	}
	if !ctx.Map.Traversable(next) {
		path.Path = nil
		return false
	}

	npcLoc.Qrz = next
	path.Path = path.Path[:len(path.Path)-1]
	event.Emit(ctx.Bus, event.DoIncremental{Entity: npc, Loc: next})
	return true
}

// DrainPathfinding applies at most one completed pool result per tick,
// per spec's suspension-point contract. A result addressed to an entity
// that no longer has Loc (despawned) is discarded.
func DrainPathfinding(ctx *Context) {
	if ctx.Pool == nil {
		return
	}
	result, ok := ctx.Pool.Drain()
	if !ok {
		return
	}
	if _, alive := ctx.Stores.Loc.Get(result.Entity); !alive {
		return
	}
	path, ok := ctx.Stores.PathTo.Get(result.Entity)
	if !ok {
		return
	}
	path.Path = applyUntil(path.Limit, result.Path)
}

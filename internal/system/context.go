// Package system implements the concrete per-tick systems that wire the
// simulation's packages (input, physics, spatial, behavior, combat,
// engagement, net) into the fixed-tick Runner from internal/core/system.
package system

import (
	"math/rand"

	"github.com/l1jgo/hexcore/internal/archetype"
	"github.com/l1jgo/hexcore/internal/behavior"
	"github.com/l1jgo/hexcore/internal/combat"
	"github.com/l1jgo/hexcore/internal/config"
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/engagement"
	"github.com/l1jgo/hexcore/internal/input"
	"github.com/l1jgo/hexcore/internal/net"
	"github.com/l1jgo/hexcore/internal/net/packet"
	"github.com/l1jgo/hexcore/internal/pathfind"
	"github.com/l1jgo/hexcore/internal/session"
	"github.com/l1jgo/hexcore/internal/spatial"
	"github.com/l1jgo/hexcore/internal/worldmap"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// Context bundles every shared dependency the concrete systems close
// over. One Context is constructed at boot and handed to every
// NewXSystem constructor, mirroring the teacher's handler.Deps bag.
type Context struct {
	Cfg    *config.Config
	Stores *worldstate.Stores
	World  *ecs.World
	Bus    *event.Bus
	Map    *worldmap.Map
	Index  *spatial.Tree
	Pool   *pathfind.Pool
	Rand   *rand.Rand

	NetServer *net.Server
	Registry  *packet.Registry
	Sessions  *session.Manager

	Havens     *engagement.HavenTable
	Archetypes *archetype.Table
	Budget     *engagement.Budget
	Spawner    *engagement.Spawner
	Cleanup    *engagement.Cleanup

	// NowMs is advanced once per full Runner.Tick() by the caller before
	// any system runs, giving every system a consistent view of game time.
	NowMs int64

	// pendingInput holds this tick's sliced input segments between
	// InputSliceSystem (which produces them) and PhysicsSystem (which
	// consumes them), both in PhasePhysics order within the same
	// Runner.Tick() call.
	pendingInput map[ecs.EntityID][]input.Input

	// abilityPolicyAccumMs gates RunAbilityPolicy's 0.5s cadence
	// (spec.md §4.7) independent of the tick's own 125ms period.
	abilityPolicyAccumMs int64
}

func (c *Context) behaviorContext() *behavior.Context {
	return &behavior.Context{
		Stores: c.Stores,
		Bus:    c.Bus,
		Map:    c.Map,
		Index:  c.Index,
		Pool:   c.Pool,
		Rand:   c.Rand,
		NowMs:  c.NowMs,
	}
}

func (c *Context) abilityContext(allies combat.AllyFilter) *combat.AbilityContext {
	return &combat.AbilityContext{
		Stores: c.Stores,
		Bus:    c.Bus,
		Map:    c.Map,
		Index:  c.Index,
		Allies: allies,
		GcdMs:  int64(c.Cfg.Server.AttackGcdMs),
		NowMs:  c.NowMs,
		Rand:   c.Rand,
	}
}

// samePlayerParty is the default ally filter: any two players are
// treated as allies for mitigation purposes, NPCs never are. Real
// party/faction membership is out of scope for this expansion.
func samePlayerParty(stores *worldstate.Stores) combat.AllyFilter {
	return func(target, candidate ecs.EntityID) bool {
		_, targetIsNpc := stores.NpcRecovery.Get(target)
		_, candidateIsNpc := stores.NpcRecovery.Get(candidate)
		return !targetIsNpc && !candidateIsNpc
	}
}

package system

import (
	"testing"
	"time"

	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

func setupBerserkerInRange(ctx *Context) ecs.EntityID {
	player := ctx.World.CreateEntity()
	ctx.Stores.Loc.Set(player, &worldstate.Loc{Qrz: hex.Qrz{Q: 3, R: 0}})

	engagementID := ctx.World.CreateEntity()
	ctx.Stores.Engagement.Set(engagementID, &worldstate.Engagement{Archetype: worldstate.ArchetypeBerserker})

	npc := ctx.World.CreateEntity()
	ctx.Stores.Loc.Set(npc, &worldstate.Loc{Qrz: hex.Qrz{}})
	ctx.Stores.EngagementMember.Set(npc, &worldstate.EngagementMember{Engagement: engagementID})
	ctx.Stores.Stamina.Set(npc, &worldstate.Stamina{State: 100, Max: 100})
	ctx.Stores.Target.Set(npc, &worldstate.Target{Entity: player, HasEntity: true})
	return npc
}

func TestBehaviorSystemGatesAbilityPolicyOnCadence(t *testing.T) {
	ctx := newTestCtx()
	sys := NewBehaviorSystem(ctx)
	setupBerserkerInRange(ctx)

	var tries int
	event.Subscribe(ctx.Bus, func(ev event.TryUseAbility) { tries++ })

	sys.Update(200 * time.Millisecond) // accum 200ms, below cadence
	if tries != 0 {
		t.Fatalf("expected no ability try before 500ms of accumulated time, got %d", tries)
	}

	sys.Update(200 * time.Millisecond) // accum 400ms, still below cadence
	if tries != 0 {
		t.Fatalf("expected no ability try at 400ms accumulated, got %d", tries)
	}

	sys.Update(200 * time.Millisecond) // accum 600ms, crosses 500ms cadence
	if tries != 1 {
		t.Fatalf("expected exactly one ability try once the cadence threshold is crossed, got %d", tries)
	}
}

func TestBehaviorSystemSkipsDeadNpcsForAbilityPolicy(t *testing.T) {
	ctx := newTestCtx()
	sys := NewBehaviorSystem(ctx)
	npc := setupBerserkerInRange(ctx)
	ctx.Stores.RespawnTmr.Set(npc, &worldstate.RespawnTimer{DiedAtMs: 0, DelayMs: 5000})

	var tries int
	event.Subscribe(ctx.Bus, func(ev event.TryUseAbility) { tries++ })

	sys.Update(600 * time.Millisecond)
	if tries != 0 {
		t.Fatalf("expected a dead npc to be skipped by the ability policy, got %d tries", tries)
	}
}

package behavior

import (
	"testing"

	"github.com/l1jgo/hexcore/internal/combat"
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

func setupEngagedNpc(stores *worldstate.Stores, npc ecs.EntityID, archetype worldstate.Archetype) {
	engagement := ecs.EntityID(uint64(npc) + 1000)
	stores.Engagement.Set(engagement, &worldstate.Engagement{Archetype: archetype, Members: []ecs.EntityID{npc}})
	stores.EngagementMember.Set(npc, &worldstate.EngagementMember{Engagement: engagement})
}

func TestTickSkipsDeadNpcs(t *testing.T) {
	ctx, stores := newTestContext()
	npc := ecs.EntityID(1)
	setupEngagedNpc(stores, npc, worldstate.ArchetypeBerserker)
	stores.RespawnTmr.Set(npc, &worldstate.RespawnTimer{DiedAtMs: 1, DelayMs: 1})
	stores.Loc.Set(npc, &worldstate.Loc{Qrz: hex.Qrz{}})

	Tick(ctx, []ecs.EntityID{npc})

	if _, ok := stores.Heading.Get(npc); ok {
		t.Fatalf("expected a dead NPC to be skipped entirely by Tick")
	}
}

func TestTickSkipsNpcsWithoutEngagement(t *testing.T) {
	ctx, stores := newTestContext()
	npc := ecs.EntityID(1)
	stores.Loc.Set(npc, &worldstate.Loc{Qrz: hex.Qrz{}})

	Tick(ctx, []ecs.EntityID{npc})

	if _, ok := stores.Heading.Get(npc); ok {
		t.Fatalf("expected an un-engaged NPC to be skipped by Tick")
	}
}

func TestTickDispatchesBerserkerToChase(t *testing.T) {
	ctx, stores := newTestContext()
	npc := ecs.EntityID(1)
	player := ecs.EntityID(2)
	setupEngagedNpc(stores, npc, worldstate.ArchetypeBerserker)
	stores.FindOrKeepTarget.Set(npc, &worldstate.FindOrKeepTarget{Radius: 20, Leash: 20})
	stores.Loc.Set(npc, &worldstate.Loc{Qrz: hex.Qrz{Q: -1}})
	stores.Loc.Set(player, &worldstate.Loc{Qrz: hex.Qrz{}})
	stores.TargetLock.Set(npc, &worldstate.TargetLock{Entity: player, Leash: 20})

	Tick(ctx, []ecs.EntityID{npc})

	if _, ok := stores.Heading.Get(npc); !ok {
		t.Fatalf("expected Chase (via Tick) to have set a Heading")
	}
}

func TestRunAbilityPolicyJuggernautFiresWhenAdjacentAndResourced(t *testing.T) {
	ctx, stores := newTestContext()
	npc := ecs.EntityID(1)
	player := ecs.EntityID(2)
	setupEngagedNpc(stores, npc, worldstate.ArchetypeJuggernaut)
	stores.Loc.Set(npc, &worldstate.Loc{Qrz: hex.Qrz{}})
	stores.Loc.Set(player, &worldstate.Loc{Qrz: hex.Qrz{Q: 1}})
	stores.Target.Set(npc, &worldstate.Target{Entity: player, HasEntity: true})
	stores.Stamina.Set(npc, &worldstate.Stamina{State: 100, Max: 100})

	var got []event.TryUseAbility
	event.Subscribe(ctx.Bus, func(e event.TryUseAbility) { got = append(got, e) })

	RunAbilityPolicy(ctx, npc)
	ctx.Bus.SwapBuffers()
	ctx.Bus.DispatchAll()

	if len(got) != 1 || got[0].AbilityID != uint8(combat.AbilityOverpower) {
		t.Fatalf("expected Overpower to fire when adjacent and resourced, got %+v", got)
	}
}

func TestRunAbilityPolicyBlockedByGlobalRecovery(t *testing.T) {
	ctx, stores := newTestContext()
	npc := ecs.EntityID(1)
	player := ecs.EntityID(2)
	setupEngagedNpc(stores, npc, worldstate.ArchetypeJuggernaut)
	stores.Loc.Set(npc, &worldstate.Loc{Qrz: hex.Qrz{}})
	stores.Loc.Set(player, &worldstate.Loc{Qrz: hex.Qrz{Q: 1}})
	stores.Target.Set(npc, &worldstate.Target{Entity: player, HasEntity: true})
	stores.Stamina.Set(npc, &worldstate.Stamina{State: 100, Max: 100})
	stores.GlobalRecovery.Set(npc, &worldstate.GlobalRecovery{RemainingMs: 500})

	var got []event.TryUseAbility
	event.Subscribe(ctx.Bus, func(e event.TryUseAbility) { got = append(got, e) })

	RunAbilityPolicy(ctx, npc)
	ctx.Bus.SwapBuffers()
	ctx.Bus.DispatchAll()

	if len(got) != 0 {
		t.Fatalf("expected RunAbilityPolicy to be blocked by active GlobalRecovery, got %+v", got)
	}
}

func TestRunAbilityPolicyWithholdsWhenUnderStaminaFloor(t *testing.T) {
	ctx, stores := newTestContext()
	npc := ecs.EntityID(1)
	player := ecs.EntityID(2)
	setupEngagedNpc(stores, npc, worldstate.ArchetypeJuggernaut)
	stores.Loc.Set(npc, &worldstate.Loc{Qrz: hex.Qrz{}})
	stores.Loc.Set(player, &worldstate.Loc{Qrz: hex.Qrz{Q: 1}})
	stores.Target.Set(npc, &worldstate.Target{Entity: player, HasEntity: true})
	stores.Stamina.Set(npc, &worldstate.Stamina{State: 5, Max: 100})

	var got []event.TryUseAbility
	event.Subscribe(ctx.Bus, func(e event.TryUseAbility) { got = append(got, e) })

	RunAbilityPolicy(ctx, npc)
	ctx.Bus.SwapBuffers()
	ctx.Bus.DispatchAll()

	if len(got) != 0 {
		t.Fatalf("expected RunAbilityPolicy to withhold Overpower below the stamina floor, got %+v", got)
	}
}

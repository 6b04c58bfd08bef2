package behavior

import (
	"testing"

	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

func setupKiteNpc(ctx *Context, stores *worldstate.Stores, npc, player ecs.EntityID, npcLoc, playerLoc hex.Qrz) {
	stores.FindOrKeepTarget.Set(npc, &worldstate.FindOrKeepTarget{Radius: 20, Leash: 20})
	stores.Loc.Set(npc, &worldstate.Loc{Qrz: npcLoc})
	stores.Loc.Set(player, &worldstate.Loc{Qrz: playerLoc})
	stores.TargetLock.Set(npc, &worldstate.TargetLock{Entity: player, Leash: 20})
}

func TestKiteFleesWhenTooClose(t *testing.T) {
	ctx, stores := newTestContext()
	npc := ecs.EntityID(1)
	player := ecs.EntityID(2)
	setupKiteNpc(ctx, stores, npc, player, hex.Qrz{Q: 1}, hex.Qrz{})

	if !Kite(ctx, npc, 4, 5, 8, 9) {
		t.Fatalf("expected Kite to act (flee) when inside minRange")
	}
	path, ok := stores.PathTo.Get(npc)
	if !ok {
		t.Fatalf("expected a flee PathTo to be set")
	}
	if hex.FlatDistance(path.Dest, hex.Qrz{}) < 4 {
		t.Fatalf("expected flee destination to clear minRange, got %+v", path.Dest)
	}
}

func TestKiteApproachesWhenTooFar(t *testing.T) {
	ctx, stores := newTestContext()
	npc := ecs.EntityID(1)
	player := ecs.EntityID(2)
	setupKiteNpc(ctx, stores, npc, player, hex.Qrz{Q: 20}, hex.Qrz{})

	if !Kite(ctx, npc, 4, 5, 8, 9) {
		t.Fatalf("expected Kite to act (approach) when beyond optimalMax")
	}
	path, ok := stores.PathTo.Get(npc)
	if !ok || path.Limit.Kind != worldstate.PathLimitUntil {
		t.Fatalf("expected an Until-limited approach path, got %+v", path)
	}
}

func TestKiteFiresWithinOptimalBand(t *testing.T) {
	ctx, stores := newTestContext()
	npc := ecs.EntityID(1)
	player := ecs.EntityID(2)
	setupKiteNpc(ctx, stores, npc, player, hex.Qrz{Q: 6}, hex.Qrz{})
	stores.Heading.Set(npc, &worldstate.Heading{Dir: hex.Qrz{Q: -1}})

	var got []event.TryUseAbility
	event.Subscribe(ctx.Bus, func(e event.TryUseAbility) { got = append(got, e) })

	if !Kite(ctx, npc, 4, 5, 8, 9) {
		t.Fatalf("expected Kite to fire within the optimal band")
	}
	ctx.Bus.SwapBuffers()
	ctx.Bus.DispatchAll()

	if len(got) != 1 || got[0].AbilityID != 9 {
		t.Fatalf("expected exactly one TryUseAbility with ability 9, got %+v", got)
	}
}

func TestFireInBandFailsOutsideCone(t *testing.T) {
	ctx, stores := newTestContext()
	npc := ecs.EntityID(1)
	stores.Heading.Set(npc, &worldstate.Heading{Dir: hex.Qrz{Q: 1}})

	if fireInBand(ctx, npc, hex.Qrz{Q: 6}, hex.Qrz{}, 9) {
		t.Fatalf("expected fireInBand to fail when heading points away from target")
	}
}

func TestFireInBandBlockedByGcd(t *testing.T) {
	ctx, stores := newTestContext()
	npc := ecs.EntityID(1)
	ctx.NowMs = 1000
	stores.Heading.Set(npc, &worldstate.Heading{Dir: hex.Qrz{Q: -1}})
	stores.Gcd.Set(npc, &worldstate.Gcd{ExpiresAtMs: 2000})

	if fireInBand(ctx, npc, hex.Qrz{Q: 6}, hex.Qrz{}, 9) {
		t.Fatalf("expected fireInBand to fail while Gcd is active")
	}
}

func TestFleeDestMovesAwayFromThreat(t *testing.T) {
	dest := fleeDest(hex.Qrz{Q: 1}, hex.Qrz{}, 3)
	if hex.FlatDistance(dest, hex.Qrz{}) < 3 {
		t.Fatalf("expected flee destination at least 3 away from threat, got %+v", dest)
	}
}

package behavior

import (
	"testing"

	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

func TestReassignHexesGivesEachMemberAUniqueAdjacentSlot(t *testing.T) {
	ctx, stores := newTestContext()
	engagement := ecs.EntityID(100)
	targetLoc := hex.Qrz{Q: 10, R: 10}

	members := []ecs.EntityID{1, 2, 3}
	locs := []hex.Qrz{{Q: 0, R: 0}, {Q: 20, R: 0}, {Q: 0, R: 20}}
	for i, m := range members {
		stores.Loc.Set(m, &worldstate.Loc{Qrz: locs[i]})
	}
	stores.Engagement.Set(engagement, &worldstate.Engagement{Members: members})

	ReassignHexes(ctx, engagement, targetLoc)

	assignment, ok := stores.HexAssignment.Get(engagement)
	if !ok {
		t.Fatalf("expected a HexAssignment to be created")
	}
	if len(assignment.Slots) != len(members) {
		t.Fatalf("expected %d slots assigned, got %d", len(members), len(assignment.Slots))
	}
	seen := map[hex.Qrz]bool{}
	for _, m := range members {
		slot, ok := assignment.Slots[m]
		if !ok {
			t.Fatalf("expected member %d to receive a slot", m)
		}
		if hex.FlatDistance(slot, targetLoc) != 1 {
			t.Fatalf("expected slot %+v adjacent to target %+v", slot, targetLoc)
		}
		if seen[slot] {
			t.Fatalf("expected unique slots, got duplicate %+v", slot)
		}
		seen[slot] = true
	}
}

func TestReassignHexesSkipsDeadMembers(t *testing.T) {
	ctx, stores := newTestContext()
	engagement := ecs.EntityID(100)
	targetLoc := hex.Qrz{Q: 10, R: 10}
	alive := ecs.EntityID(1)
	dead := ecs.EntityID(2)

	stores.Loc.Set(alive, &worldstate.Loc{Qrz: hex.Qrz{}})
	stores.Loc.Set(dead, &worldstate.Loc{Qrz: hex.Qrz{}})
	stores.RespawnTmr.Set(dead, &worldstate.RespawnTimer{DiedAtMs: 1, DelayMs: 1})
	stores.Engagement.Set(engagement, &worldstate.Engagement{Members: []ecs.EntityID{alive, dead}})

	ReassignHexes(ctx, engagement, targetLoc)

	assignment, _ := stores.HexAssignment.Get(engagement)
	if _, ok := assignment.Slots[dead]; ok {
		t.Fatalf("expected dead member to be excluded from hex assignment")
	}
	if _, ok := assignment.Slots[alive]; !ok {
		t.Fatalf("expected live member to receive a slot")
	}
}

func TestChaseFullSequenceAttacksWhenAdjacent(t *testing.T) {
	ctx, stores := newTestContext()
	npc := ecs.EntityID(1)
	player := ecs.EntityID(2)

	stores.FindOrKeepTarget.Set(npc, &worldstate.FindOrKeepTarget{Radius: 10, Leash: 10})
	stores.Loc.Set(npc, &worldstate.Loc{Qrz: hex.Qrz{Q: -1}})
	stores.Loc.Set(player, &worldstate.Loc{Qrz: hex.Qrz{}})
	stores.TargetLock.Set(npc, &worldstate.TargetLock{Entity: player, Leash: 10})

	if !Chase(ctx, npc, 5) {
		t.Fatalf("expected Chase to attack once already adjacent to target")
	}
}

func TestChaseFailsWithNoTargetNearby(t *testing.T) {
	ctx, stores := newTestContext()
	npc := ecs.EntityID(1)
	stores.FindOrKeepTarget.Set(npc, &worldstate.FindOrKeepTarget{Radius: 5, Leash: 5})
	stores.Loc.Set(npc, &worldstate.Loc{Qrz: hex.Qrz{}})

	if Chase(ctx, npc, 5) {
		t.Fatalf("expected Chase to fail with no acquirable target")
	}
}

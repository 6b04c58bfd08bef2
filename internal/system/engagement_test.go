package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/l1jgo/hexcore/internal/archetype"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/engagement"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

const testArchetypeYAML = `
archetypes:
  berserker:
    name: berserker
    health: 100
    stamina: 100
    toughness: 50
    composure: 50
    dominance: 50
    impact: 50
    cunning: 50
    finesse: 50
    vitality: 50
    focus: 50
    recovery_min_ms: 500
    recovery_max_ms: 1500
    signature_ability: 4
    stamina_floor: 20
    min_range: 1
    max_range: 1
    spawn_weight: 1
`

const testHavenYAML = `
havens:
  - name: start
    q: 0
    r: 0
`

func loadTestArchetypes(t *testing.T) *archetype.Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archetypes.yaml")
	if err := os.WriteFile(path, []byte(testArchetypeYAML), 0o644); err != nil {
		t.Fatalf("write archetype fixture: %v", err)
	}
	tbl, err := archetype.Load(path)
	if err != nil {
		t.Fatalf("load archetype fixture: %v", err)
	}
	return tbl
}

func loadTestHavens(t *testing.T) *engagement.HavenTable {
	t.Helper()
	path := filepath.Join(t.TempDir(), "havens.yaml")
	if err := os.WriteFile(path, []byte(testHavenYAML), 0o644); err != nil {
		t.Fatalf("write haven fixture: %v", err)
	}
	havens, err := engagement.LoadHavenTable(path)
	if err != nil {
		t.Fatalf("load haven fixture: %v", err)
	}
	return havens
}

func withEngagementDeps(t *testing.T, ctx *Context) {
	t.Helper()
	ctx.Archetypes = loadTestArchetypes(t)
	ctx.Havens = loadTestHavens(t)
	ctx.Spawner = &engagement.Spawner{
		Stores:     ctx.Stores,
		World:      ctx.World,
		Havens:     ctx.Havens,
		Archetypes: ctx.Archetypes,
		Budget:     ctx.Budget,
	}
	ctx.Cleanup = &engagement.Cleanup{
		Stores: ctx.Stores,
		World:  ctx.World,
		Budget: ctx.Budget,
	}
}

func TestEngagementSystemSpawnsOnceThenRespectsCooldown(t *testing.T) {
	ctx := newTestCtx()
	withEngagementDeps(t, ctx)
	sys := NewEngagementSystem(ctx)

	player := ctx.World.CreateEntity()
	ctx.Stores.PlayerSession.Set(player, &worldstate.PlayerSession{SessionID: 1})
	ctx.Stores.Loc.Set(player, &worldstate.Loc{Qrz: hex.Qrz{Q: 100, R: 100}})

	var spawned int
	event.Subscribe(ctx.Bus, func(ev event.DoSpawn) { spawned++ })

	ctx.NowMs = 0
	sys.Update(time.Millisecond)
	ctx.Bus.SwapBuffers()
	ctx.Bus.DispatchAll()
	firstCount := spawned

	if firstCount == 0 {
		t.Fatalf("expected the first Update to spawn an engagement near the player")
	}

	// Immediately re-running within the cooldown window must not spawn again.
	ctx.NowMs = zoneSpawnCooldownMs - 1
	sys.Update(time.Millisecond)
	ctx.Bus.SwapBuffers()
	ctx.Bus.DispatchAll()
	if spawned != firstCount {
		t.Fatalf("expected no additional spawn within the zone cooldown window, went from %d to %d", firstCount, spawned)
	}
}

func TestEngagementSystemInvokesCleanupEveryUpdate(t *testing.T) {
	ctx := newTestCtx()
	withEngagementDeps(t, ctx)
	sys := NewEngagementSystem(ctx)

	// No players, no engagements: Update must still call Cleanup.Tick
	// without panicking on an empty world.
	sys.Update(time.Millisecond)
}

package engagement

import (
	"math/rand"

	"github.com/l1jgo/hexcore/internal/archetype"
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// spawnMinDist/spawnMaxDist bound how far a fresh engagement spawns from
// the player whose chunk discovery triggered it.
const (
	spawnMinDist = 8
	spawnMaxDist = 16
)

// Spawner owns everything the spawn algorithm needs to read: the haven
// table (difficulty curve), the archetype table (stats/weights), the
// per-zone budget, and the component stores/entity pool to populate.
type Spawner struct {
	Stores     *worldstate.Stores
	World      *ecs.World
	Havens     *HavenTable
	Archetypes *archetype.Table
	Budget     *Budget
}

// seedFor derives a deterministic per-engagement PRNG seed from the zone
// and spawn tick, per spec §9's "random sources" reproducibility goal.
func seedFor(zone worldstate.ZoneId, tick int64) int64 {
	return int64(zone.Q)*1000003 + int64(zone.R)*97 + tick
}

// pickSpawnTile chooses a tile spawnMinDist..spawnMaxDist hexes from
// playerLoc in a random cardinal direction, the same direction-plus-walk
// shape as behavior.fleeDest.
func pickSpawnTile(rng *rand.Rand, playerLoc hex.Qrz) hex.Qrz {
	dir := rng.Intn(6)
	dist := spawnMinDist + rng.Intn(spawnMaxDist-spawnMinDist+1)
	cur := playerLoc
	for i := 0; i < dist; i++ {
		cur = cur.Neighbor(dir)
	}
	return cur
}

// Spawn runs the chunk-discovery spawn algorithm for one player position:
// pick a spawn tile, compute level from haven distance, weight-pick an
// archetype, spawn 1-3 NPCs as an Engagement group, and register the zone
// against the budget. Returns false (no-op) if the zone is already at its
// engagement cap.
func (s *Spawner) Spawn(playerLoc hex.Qrz, spawnTick int64) (ecs.EntityID, bool) {
	rng := rand.New(rand.NewSource(seedFor(worldstate.ZoneFrom(playerLoc), spawnTick)))
	spawnLoc := pickSpawnTile(rng, playerLoc)
	zone := worldstate.ZoneFrom(spawnLoc)

	if !s.Budget.CanSpawn(zone) {
		return 0, false
	}

	level := LevelForDistance(s.Havens.NearestDistance(spawnLoc))
	arch := s.Archetypes.PickWeighted(rng.Intn(1 << 30))
	count := 1 + rng.Intn(3)

	engagementID := s.World.CreateEntity()
	eng := &worldstate.Engagement{
		SpawnLoc:  spawnLoc,
		Level:     level,
		Archetype: arch,
		Zone:      zone,
		Seed:      seedFor(zone, spawnTick),
	}

	def, _ := s.Archetypes.Get(arch)
	ring := spawnLoc.Neighbors()
	for i := 0; i < count; i++ {
		npcID := s.World.CreateEntity()
		npcLoc := spawnLoc
		if i > 0 {
			npcLoc = ring[i%len(ring)]
		}
		s.Stores.Loc.Set(npcID, &worldstate.Loc{Qrz: npcLoc})
		s.Stores.NpcRecovery.Set(npcID, &worldstate.NpcRecovery{MinMs: def.RecoveryMinMs, MaxMs: def.RecoveryMaxMs})
		s.Stores.Health.Set(npcID, &worldstate.Health{State: def.Health, Max: def.Health})
		s.Stores.Stamina.Set(npcID, &worldstate.Stamina{State: def.Stamina, Max: def.Stamina})
		if def.Mana > 0 {
			s.Stores.Mana.Set(npcID, &worldstate.Mana{State: def.Mana, Max: def.Mana})
		}
		s.Stores.Attributes.Set(npcID, &worldstate.ActorAttributes{
			Toughness: def.Toughness, Composure: def.Composure, Dominance: def.Dominance,
			Impact: def.Impact, Cunning: def.Cunning, Finesse: def.Finesse,
			Vitality: def.Vitality, Focus: def.Focus, TotalLevel: level,
		})
		s.Stores.FindOrKeepTarget.Set(npcID, &worldstate.FindOrKeepTarget{Radius: def.MaxRange + 4, Leash: spawnMaxDist})
		s.Stores.Gcd.Set(npcID, &worldstate.Gcd{})
		s.Stores.CombatState.Set(npcID, &worldstate.CombatState{})
		s.Stores.EngagementMember.Set(npcID, &worldstate.EngagementMember{Engagement: engagementID})
		eng.Members = append(eng.Members, npcID)
	}

	s.Stores.Engagement.Set(engagementID, eng)
	s.Stores.LastPlayerProximity.Set(engagementID, &worldstate.LastPlayerProximity{LastSeenMs: 0})
	s.Budget.Register(zone)

	return engagementID, true
}

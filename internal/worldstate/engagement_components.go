package worldstate

import (
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/hex"
)

// ZoneId identifies a 240-tile square used by the engagement spawn
// budget.
type ZoneId struct {
	Q, R int32
}

// ZoneFrom computes the zone a hex falls in. Division truncates toward
// zero in Go, so negative coordinates need an explicit floor to match
// ZoneId(q=-240,r=0) == (-1,0).
func ZoneFrom(q hex.Qrz) ZoneId {
	return ZoneId{Q: floorDiv(int32(q.Q), 240), R: floorDiv(int32(q.R), 240)}
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

type Archetype uint8

const (
	ArchetypeBerserker Archetype = iota
	ArchetypeJuggernaut
	ArchetypeDefender
	ArchetypeKiter
)

// Engagement owns a group of NPCs spawned together with a shared
// lifecycle: abandonment, cleanup, and the zone budget slot they occupy.
type Engagement struct {
	SpawnLoc  hex.Qrz
	Level     int
	Archetype Archetype
	Zone      ZoneId
	Members   []ecs.EntityID
	Seed      int64 // per-engagement PRNG seed for reproducibility
}

// EngagementMember back-references the Engagement an NPC belongs to.
type EngagementMember struct {
	Engagement ecs.EntityID
}

// LastPlayerProximity records the last tick (in ms of game time) any
// player was within proximity of the engagement.
type LastPlayerProximity struct {
	LastSeenMs int64
}

// HexAssignment maps each member NPC to a unique approach hex around the
// engagement's current target, recomputed whenever the target moves.
type HexAssignment struct {
	Slots map[ecs.EntityID]hex.Qrz
}

func NewHexAssignment() *HexAssignment {
	return &HexAssignment{Slots: make(map[ecs.EntityID]hex.Qrz)}
}

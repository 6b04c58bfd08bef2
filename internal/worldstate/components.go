// Package worldstate defines the per-entity component types the
// simulation operates on and the typed stores that hold them.
package worldstate

import (
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/input"
	"github.com/l1jgo/hexcore/internal/worldmap"
)

// Loc is the hex tile an entity currently occupies.
type Loc struct {
	Qrz hex.Qrz
}

// Offset holds sub-tile world displacement plus the interpolation target
// it is moving toward.
type Offset struct {
	Pos  worldmap.Vec3
	Step worldmap.Vec3
}

// AirTime tracks a jump arc. Active is false once the entity has landed;
// RemainingMs is only meaningful while Active.
type AirTime struct {
	Active      bool
	RemainingMs int64
}

// Heading is a unit Qrz indicating facing, in the q-r plane.
type Heading struct {
	Dir hex.Qrz
}

// Resource is the shared shape of Health, Stamina, and Mana: an
// authoritative state, a predicted/interpolated step value, a cap, and
// a regen rate applied since LastUpdatedMs.
type Resource struct {
	State         float64
	Step          float64
	Max           float64
	RegenPerSec   float64
	LastUpdatedMs int64
}

type Health Resource
type Stamina Resource
type Mana Resource

// QueuedThreat is one pending hit in a ReactionQueue.
type QueuedThreat struct {
	Source        ecs.EntityID
	Damage        float32
	DamageType    uint8
	InsertedAtMs  int64
	TimerMs       int64
	Ability       *uint8
}

// ReactionQueue is an unbounded FIFO of pending threats. WindowMs is a
// UI/ability visibility cutoff, not a capacity limit.
type ReactionQueue struct {
	Threats  []QueuedThreat
	WindowMs int64
}

// Gcd is the generic global-cooldown clock: ability use is blocked while
// game time is before ExpiresAtMs.
type Gcd struct {
	ExpiresAtMs int64
}

// GlobalRecovery is an ability-specific post-cast lockout, consulted by
// composure-reduction math on insertion.
type GlobalRecovery struct {
	RemainingMs  int64
	TargetImpact float64
	TargetLevel  int
}

func (g *GlobalRecovery) IsActive() bool {
	return g != nil && g.RemainingMs > 0
}

// NpcRecovery is a per-NPC recovery range; a duration is drawn uniformly
// from [MinMs, MaxMs] after each attack.
type NpcRecovery struct {
	MinMs, MaxMs int64
}

// ActorAttributes bundles the contested stats used throughout the damage
// and recovery math.
type ActorAttributes struct {
	Toughness  float64
	Composure  float64
	Dominance  float64
	Impact     float64
	Cunning    float64
	Finesse    float64
	Vitality   float64
	Focus      float64
	TotalLevel int
}

// Target and AllyTarget hold the entity a player is focused on (hostile
// or friendly respectively), plus a sticky LastTarget for UI continuity
// when Entity clears.
type Target struct {
	Entity     ecs.EntityID
	HasEntity  bool
	LastTarget ecs.EntityID
}

type AllyTarget Target

// RangeTier is a named distance bucket for tier-locked targeting.
type RangeTier uint8

const (
	TierClose RangeTier = iota
	TierMid
	TierFar
)

type TierLock struct {
	Tier  RangeTier
	Bound bool
}

// TargetLock binds an NPC to a specific prey, enforced by a leash
// distance. At most one TargetLock per NPC (invariant I6).
type TargetLock struct {
	Entity ecs.EntityID
	Leash  int
}

// RespawnTimer marks a dead entity awaiting respawn (players) or pending
// despawn (NPCs handle despawn directly, see engagement cleanup).
type RespawnTimer struct {
	DiedAtMs int64
	DelayMs  int64
}

// InputBuf holds a player entity's pending movement input, fed by
// Try::Input frames and drained each tick by the input-slicing system.
type InputBuf struct {
	Buf *input.Buffer
}

// CombatState tracks whether an entity is flagged in-combat, toggled by
// either side of a threat exchange and cleared after the hold expires.
type CombatState struct {
	InCombat     bool
	LastActionMs int64
}

// PlayerSession back-references the net session that owns a player
// entity, so outbound systems can target a single client without a
// reverse scan of the session table.
type PlayerSession struct {
	SessionID uint64
}

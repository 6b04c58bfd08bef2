package event

import (
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/hex"
)

// Try:: events carry client-requested intent. They are produced by the
// protocol layer from inbound frames and are never trusted at face value —
// every Try:: handler validates against current world state before it
// produces any Do:: event.

type TryInput struct {
	Entity  ecs.EntityID
	KeyBits uint8
	DtMs    uint16
	Seq     uint8
}

type TryUseAbility struct {
	Entity     ecs.EntityID
	AbilityID  uint8
	TargetLoc  *hex.Qrz
}

type TryDismiss struct {
	Entity ecs.EntityID
	Target ecs.EntityID
}

// Do:: events carry resolved, authoritative outcomes. They drive both
// world-state mutation (by systems subscribed in-process) and outbound
// broadcast (by the protocol layer, which never re-derives them).

type DoSpawn struct {
	Entity ecs.EntityID
	Loc    hex.Qrz
	Kind   uint8
}

type DoDespawn struct {
	Entity ecs.EntityID
}

type DoInput struct {
	Entity  ecs.EntityID
	KeyBits uint8
	DtMs    uint16
}

type DoIncremental struct {
	Entity  ecs.EntityID
	Loc     hex.Qrz
	Heading uint8
}

type DoUseAbility struct {
	Entity    ecs.EntityID
	AbilityID uint8
	Target    ecs.EntityID
	TargetLoc *hex.Qrz
}

type DoInsertThreat struct {
	Entity ecs.EntityID
	Source ecs.EntityID
	Amount float32
}

type DoClearQueue struct {
	Entity ecs.EntityID
}

type DoApplyDamage struct {
	Entity  ecs.EntityID
	Source  ecs.EntityID
	Amount  float32
	Lethal  bool
	Pushed  hex.Qrz
}

type DoSpawnHitFlash struct {
	Entity ecs.EntityID
}

type DoAbilityFailed struct {
	Entity    ecs.EntityID
	AbilityID uint8
	Reason    uint8
}

type DoCombatState struct {
	Entity  ecs.EntityID
	InCombat bool
}

// DoResourceSync replays a caster's authoritative resource state after a
// failed ability use, correcting any client-side prediction.
type DoResourceSync struct {
	Entity  ecs.EntityID
	Health  float64
	Stamina float64
	Mana    float64
}

// PlayerDisconnected fires when a session's connection drops, regardless
// of protocol state, so downstream systems can clean up entity ownership.
type PlayerDisconnected struct {
	EntityID  ecs.EntityID
	SessionID uint64
}

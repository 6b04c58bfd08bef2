// Package protocol encodes and decodes the Try::/Do:: wire events carried
// over the framed TCP transport in internal/net. Opcodes below 0x10 are
// client-to-server (Try::); the registry in internal/net/packet only ever
// registers handlers for this range, so a client cannot address a Do::
// opcode even if it forges one.
package protocol

const (
	OpTryInput      byte = 0x01
	OpTryUseAbility byte = 0x02
	OpTryDismiss    byte = 0x03
)

const (
	OpDoSpawn          byte = 0x10
	OpDoDespawn        byte = 0x11
	OpDoInput          byte = 0x12
	OpDoIncrementalLoc byte = 0x13
	OpDoHeading        byte = 0x14
	OpDoUseAbility     byte = 0x15
	OpDoInsertThreat   byte = 0x16
	OpDoClearQueue     byte = 0x17
	OpDoApplyDamage    byte = 0x18
	OpDoSpawnHitFlash  byte = 0x19
	OpDoAbilityFailed  byte = 0x1A
	OpDoCombatState    byte = 0x1B
	OpDoResourceSync   byte = 0x1C
)

// EntityKind distinguishes player from NPC spawns on the wire, matching
// spec.md's Do::Spawn { ent, typ, qrz }.
type EntityKind uint8

const (
	EntityKindPlayer EntityKind = iota
	EntityKindNpc
)

// ClearKind encodes Do::ClearQueue's clear_type: All | First(n).
type ClearKind uint8

const (
	ClearAll ClearKind = iota
	ClearFirst
)

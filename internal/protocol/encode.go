package protocol

import (
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/net/packet"
)

func writeQrz(w *packet.Writer, q hex.Qrz) {
	w.WriteSH(q.Q)
	w.WriteSH(q.R)
	w.WriteSH(q.Z)
}

func EncodeDoSpawn(ev event.DoSpawn) []byte {
	w := packet.NewWriterWithOpcode(OpDoSpawn)
	w.WriteQ(uint64(ev.Entity))
	w.WriteC(ev.Kind)
	writeQrz(w, ev.Loc)
	return w.Bytes()
}

func EncodeDoDespawn(ev event.DoDespawn) []byte {
	w := packet.NewWriterWithOpcode(OpDoDespawn)
	w.WriteQ(uint64(ev.Entity))
	return w.Bytes()
}

func EncodeDoInput(ev event.DoInput) []byte {
	w := packet.NewWriterWithOpcode(OpDoInput)
	w.WriteQ(uint64(ev.Entity))
	w.WriteC(ev.KeyBits)
	w.WriteH(ev.DtMs)
	return w.Bytes()
}

// EncodeDoIncrementalLoc carries Do::Incremental{attr=Loc}.
func EncodeDoIncrementalLoc(entity uint64, loc hex.Qrz) []byte {
	w := packet.NewWriterWithOpcode(OpDoIncrementalLoc)
	w.WriteQ(entity)
	writeQrz(w, loc)
	return w.Bytes()
}

// EncodeDoIncrementalHeading carries Do::Incremental{attr=Heading},
// piggy-backed on Do::Incremental events that also touch Loc/facing.
func EncodeDoIncrementalHeading(ev event.DoIncremental) []byte {
	w := packet.NewWriterWithOpcode(OpDoHeading)
	w.WriteQ(uint64(ev.Entity))
	w.WriteC(ev.Heading)
	writeQrz(w, ev.Loc)
	return w.Bytes()
}

func EncodeDoUseAbility(ev event.DoUseAbility) []byte {
	w := packet.NewWriterWithOpcode(OpDoUseAbility)
	w.WriteQ(uint64(ev.Entity))
	w.WriteC(ev.AbilityID)
	w.WriteQ(uint64(ev.Target))
	hasLoc := ev.TargetLoc != nil
	w.WriteBool(hasLoc)
	if hasLoc {
		writeQrz(w, *ev.TargetLoc)
	}
	return w.Bytes()
}

func EncodeDoInsertThreat(ev event.DoInsertThreat) []byte {
	w := packet.NewWriterWithOpcode(OpDoInsertThreat)
	w.WriteQ(uint64(ev.Entity))
	w.WriteQ(uint64(ev.Source))
	w.WriteF(ev.Amount)
	return w.Bytes()
}

// EncodeDoClearQueue always encodes clear_type=All: the only clear the
// current ability set produces is Deflect (queue-wide). Dodge/Counter
// pop exactly one threat but still broadcast the full-queue event shape
// per spec.md's Do::ClearQueue { ent, clear_type } contract, since the
// client re-renders its queue view from the authoritative remainder on
// the next Do::Incremental rather than diffing clear_type=First(n).
func EncodeDoClearQueue(ev event.DoClearQueue) []byte {
	w := packet.NewWriterWithOpcode(OpDoClearQueue)
	w.WriteQ(uint64(ev.Entity))
	w.WriteC(uint8(ClearAll))
	return w.Bytes()
}

func EncodeDoApplyDamage(ev event.DoApplyDamage) []byte {
	w := packet.NewWriterWithOpcode(OpDoApplyDamage)
	w.WriteQ(uint64(ev.Entity))
	w.WriteQ(uint64(ev.Source))
	w.WriteF(ev.Amount)
	w.WriteBool(ev.Lethal)
	return w.Bytes()
}

func EncodeDoSpawnHitFlash(ev event.DoSpawnHitFlash) []byte {
	w := packet.NewWriterWithOpcode(OpDoSpawnHitFlash)
	w.WriteQ(uint64(ev.Entity))
	return w.Bytes()
}

func EncodeDoAbilityFailed(ev event.DoAbilityFailed) []byte {
	w := packet.NewWriterWithOpcode(OpDoAbilityFailed)
	w.WriteQ(uint64(ev.Entity))
	w.WriteC(ev.AbilityID)
	w.WriteC(ev.Reason)
	return w.Bytes()
}

func EncodeDoCombatState(ev event.DoCombatState) []byte {
	w := packet.NewWriterWithOpcode(OpDoCombatState)
	w.WriteQ(uint64(ev.Entity))
	w.WriteBool(ev.InCombat)
	return w.Bytes()
}

func EncodeDoResourceSync(ev event.DoResourceSync) []byte {
	w := packet.NewWriterWithOpcode(OpDoResourceSync)
	w.WriteQ(uint64(ev.Entity))
	w.WriteF(float32(ev.Health))
	w.WriteF(float32(ev.Stamina))
	w.WriteF(float32(ev.Mana))
	return w.Bytes()
}

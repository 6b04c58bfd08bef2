package protocol

import (
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/net/packet"
)

func readQrz(r *packet.Reader) hex.Qrz {
	return hex.Qrz{Q: r.ReadSH(), R: r.ReadSH(), Z: r.ReadSH()}
}

// DecodeTryInput reads a Try::Input frame, binding it to the caller's
// entity (the protocol never trusts a client-supplied entity id).
func DecodeTryInput(r *packet.Reader, caller ecs.EntityID) event.TryInput {
	keyBits := r.ReadC()
	dt := r.ReadH()
	seq := r.ReadC()
	return event.TryInput{Entity: caller, KeyBits: keyBits, DtMs: dt, Seq: seq}
}

// DecodeTryUseAbility reads a Try::UseAbility frame. A target_loc is
// present only when hasTarget is non-zero.
func DecodeTryUseAbility(r *packet.Reader, caller ecs.EntityID) event.TryUseAbility {
	abilityID := r.ReadC()
	ev := event.TryUseAbility{Entity: caller, AbilityID: abilityID}
	if r.ReadBool() {
		loc := readQrz(r)
		ev.TargetLoc = &loc
	}
	return ev
}

// DecodeTryDismiss reads a Try::Dismiss frame: client-scoped, no payload
// beyond the opcode. The front-threat source is resolved server-side by
// the reaction-queue handler, not carried on the wire.
func DecodeTryDismiss(caller ecs.EntityID) event.TryDismiss {
	return event.TryDismiss{Entity: caller}
}

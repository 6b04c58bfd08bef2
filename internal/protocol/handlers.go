package protocol

import (
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/net/packet"
)

// Caller is the opaque `sess any` value session.Manager passes into
// packet.Registry.Dispatch: just enough identity for a Try:: handler to
// bind the decoded event to the right entity, without the protocol
// package needing to import net or session (which would cycle back here).
type Caller struct {
	Entity ecs.EntityID
}

// RegisterHandlers wires the three Try:: opcodes into reg, each decoding
// its frame and emitting the bound event onto bus. This is the only
// registration call in the server: no Do:: opcode is ever registered,
// so the registry itself enforces "the client protocol never receives
// Try::*" by construction — forging a Do:: opcode finds no handler.
func RegisterHandlers(reg *packet.Registry, bus *event.Bus, allowedStates []packet.SessionState) {
	reg.Register(OpTryInput, allowedStates, func(sess any, r *packet.Reader) {
		caller := sess.(*Caller)
		event.Emit(bus, DecodeTryInput(r, caller.Entity))
	})
	reg.Register(OpTryUseAbility, allowedStates, func(sess any, r *packet.Reader) {
		caller := sess.(*Caller)
		event.Emit(bus, DecodeTryUseAbility(r, caller.Entity))
	})
	reg.Register(OpTryDismiss, allowedStates, func(sess any, r *packet.Reader) {
		caller := sess.(*Caller)
		event.Emit(bus, DecodeTryDismiss(caller.Entity))
	})
}

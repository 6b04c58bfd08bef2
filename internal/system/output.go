package system

import (
	"time"

	coresys "github.com/l1jgo/hexcore/internal/core/system"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/protocol"
)

// OutputSystem subscribes to every Do:: event and fans it out to
// sessions: DoResourceSync goes only to the entity's own session (it is
// a prediction correction, not world-visible state), everything else
// broadcasts to every connected client. Phase PhaseOutput, after
// combat/engagement have finished producing this tick's events — though
// per the bus's one-tick latency, what actually goes out this phase is
// last tick's events, delivered by EventDispatchSystem at PhaseInput.
type OutputSystem struct {
	ctx *Context
}

func NewOutputSystem(ctx *Context) *OutputSystem {
	s := &OutputSystem{ctx: ctx}
	s.subscribe()
	return s
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

// Update does nothing: all the work happens in the subscriber callbacks
// registered at construction, which fire during EventDispatchSystem's
// DispatchAll. OutputSystem still needs a Phase slot so the Runner's
// stable sort places a predictable marker at the end of the pipeline for
// anything added later that wants to run after broadcast.
func (s *OutputSystem) Update(_ time.Duration) {}

func (s *OutputSystem) subscribe() {
	c := s.ctx
	bus := c.Bus

	event.Subscribe(bus, func(ev event.DoSpawn) { c.Sessions.Broadcast(protocol.EncodeDoSpawn(ev)) })
	event.Subscribe(bus, func(ev event.DoDespawn) { c.Sessions.Broadcast(protocol.EncodeDoDespawn(ev)) })
	event.Subscribe(bus, func(ev event.DoInput) { c.Sessions.Broadcast(protocol.EncodeDoInput(ev)) })
	event.Subscribe(bus, func(ev event.DoIncremental) {
		c.Sessions.Broadcast(protocol.EncodeDoIncrementalLoc(uint64(ev.Entity), ev.Loc))
		c.Sessions.Broadcast(protocol.EncodeDoIncrementalHeading(ev))
	})
	event.Subscribe(bus, func(ev event.DoUseAbility) { c.Sessions.Broadcast(protocol.EncodeDoUseAbility(ev)) })
	event.Subscribe(bus, func(ev event.DoInsertThreat) { c.Sessions.Broadcast(protocol.EncodeDoInsertThreat(ev)) })
	event.Subscribe(bus, func(ev event.DoClearQueue) { c.Sessions.Broadcast(protocol.EncodeDoClearQueue(ev)) })
	event.Subscribe(bus, func(ev event.DoApplyDamage) { c.Sessions.Broadcast(protocol.EncodeDoApplyDamage(ev)) })
	event.Subscribe(bus, func(ev event.DoSpawnHitFlash) { c.Sessions.Broadcast(protocol.EncodeDoSpawnHitFlash(ev)) })
	event.Subscribe(bus, func(ev event.DoAbilityFailed) { c.Sessions.Broadcast(protocol.EncodeDoAbilityFailed(ev)) })
	event.Subscribe(bus, func(ev event.DoCombatState) { c.Sessions.Broadcast(protocol.EncodeDoCombatState(ev)) })

	event.Subscribe(bus, func(ev event.DoResourceSync) {
		if sess, ok := c.Sessions.SessionFor(ev.Entity); ok {
			sess.Send(protocol.EncodeDoResourceSync(ev))
		}
	})
}

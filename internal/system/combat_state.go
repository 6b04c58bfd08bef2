package system

import (
	"time"

	coresys "github.com/l1jgo/hexcore/internal/core/system"
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// combatHoldMs is how long an entity stays flagged in-combat after its
// last offensive or defensive action, before CombatStateSystem clears the
// flag and broadcasts the drop. Not pinned by spec.md; chosen in line
// with the respawn/engagement-abandon timers already in config.
const combatHoldMs = 6000

// CombatStateSystem flags entities in-combat on either side of a threat
// exchange and clears the flag once combatHoldMs passes without further
// action, broadcasting Do::CombatState on every transition. Phase
// PhaseCombatState, after damage has applied for the tick.
type CombatStateSystem struct {
	ctx *Context
}

func NewCombatStateSystem(ctx *Context) *CombatStateSystem {
	s := &CombatStateSystem{ctx: ctx}
	s.subscribe()
	return s
}

func (s *CombatStateSystem) Phase() coresys.Phase { return coresys.PhaseCombatState }

func (s *CombatStateSystem) subscribe() {
	c := s.ctx
	event.Subscribe(c.Bus, func(ev event.DoApplyDamage) {
		s.markInCombat(ev.Entity)
		s.markInCombat(ev.Source)
	})
	event.Subscribe(c.Bus, func(ev event.DoInsertThreat) {
		s.markInCombat(ev.Entity)
		s.markInCombat(ev.Source)
	})
}

func (s *CombatStateSystem) markInCombat(ent ecs.EntityID) {
	c := s.ctx
	cs, ok := c.Stores.CombatState.Get(ent)
	if !ok {
		return
	}
	wasInCombat := cs.InCombat
	cs.InCombat = true
	cs.LastActionMs = c.NowMs
	if !wasInCombat {
		event.Emit(c.Bus, event.DoCombatState{Entity: ent, InCombat: true})
	}
}

func (s *CombatStateSystem) Update(_ time.Duration) {
	c := s.ctx
	c.Stores.CombatState.Each(func(id ecs.EntityID, cs *worldstate.CombatState) {
		if !cs.InCombat {
			return
		}
		if c.NowMs-cs.LastActionMs < combatHoldMs {
			return
		}
		cs.InCombat = false
		event.Emit(c.Bus, event.DoCombatState{Entity: id, InCombat: false})
	})
}

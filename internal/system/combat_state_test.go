package system

import (
	"testing"
	"time"

	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

func TestCombatStateSystemFlagsOnThreatAndClearsAfterHold(t *testing.T) {
	ctx := newTestCtx()
	sys := NewCombatStateSystem(ctx)

	attacker := ctx.World.CreateEntity()
	ctx.Stores.CombatState.Set(attacker, &worldstate.CombatState{})
	defender := ctx.World.CreateEntity()
	ctx.Stores.CombatState.Set(defender, &worldstate.CombatState{})

	var transitionCount int
	event.Subscribe(ctx.Bus, func(ev event.DoCombatState) { transitionCount++ })

	ctx.NowMs = 1000
	event.Emit(ctx.Bus, event.DoInsertThreat{Entity: defender, Source: attacker, Amount: 10})
	ctx.Bus.SwapBuffers()
	ctx.Bus.DispatchAll()

	cs, _ := ctx.Stores.CombatState.Get(defender)
	if !cs.InCombat {
		t.Fatalf("expected defender flagged in-combat after a threat")
	}
	as, _ := ctx.Stores.CombatState.Get(attacker)
	if !as.InCombat {
		t.Fatalf("expected attacker also flagged in-combat")
	}

	ctx.NowMs = 1000 + combatHoldMs - 1
	sys.Update(time.Millisecond)
	cs, _ = ctx.Stores.CombatState.Get(defender)
	if !cs.InCombat {
		t.Fatalf("expected defender to remain in-combat before the hold elapses")
	}

	ctx.NowMs = 1000 + combatHoldMs
	sys.Update(time.Millisecond)
	cs, _ = ctx.Stores.CombatState.Get(defender)
	if cs.InCombat {
		t.Fatalf("expected defender out of combat once the hold duration elapses")
	}
	if transitionCount != 3 {
		t.Fatalf("expected 3 combat-state transitions (defender in, attacker in, defender out), got %d", transitionCount)
	}
}

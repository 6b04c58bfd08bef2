package system

import (
	"testing"

	"github.com/l1jgo/hexcore/internal/combat"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/input"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

func TestEventDispatchSystemTryInputFeedsInputBuffer(t *testing.T) {
	ctx := newTestCtx()
	_ = NewEventDispatchSystem(ctx)
	ent := ctx.World.CreateEntity()
	ctx.Stores.InputBuf.Set(ent, &worldstate.InputBuf{Buf: input.NewBuffer(0)})

	event.Emit(ctx.Bus, event.TryInput{Entity: ent, KeyBits: 3, Seq: 1})
	ctx.Bus.SwapBuffers()
	ctx.Bus.DispatchAll()

	buf, _ := ctx.Stores.InputBuf.Get(ent)
	if buf.Buf.KeyBits() != 3 {
		t.Fatalf("expected TryInput to have recorded key-bits 3, got %d", buf.Buf.KeyBits())
	}
}

func TestEventDispatchSystemTryUseAbilityReachesCombatHandler(t *testing.T) {
	ctx := newTestCtx()
	_ = NewEventDispatchSystem(ctx)
	ent := ctx.World.CreateEntity()
	ctx.Stores.ReactionQueue.Set(ent, &worldstate.ReactionQueue{
		Threats:  []worldstate.QueuedThreat{{Source: 0, Damage: 10, TimerMs: 1000}},
		WindowMs: 3000,
	})
	ctx.Stores.Stamina.Set(ent, &worldstate.Stamina{State: 100, Max: 100})

	var cleared bool
	event.Subscribe(ctx.Bus, func(ev event.DoClearQueue) { cleared = true })

	event.Emit(ctx.Bus, event.TryUseAbility{Entity: ent, AbilityID: uint8(combat.AbilityDeflect)})
	ctx.Bus.SwapBuffers()
	ctx.Bus.DispatchAll()

	if !cleared {
		t.Fatalf("expected HandleUseAbility(Deflect) to clear the reaction queue and emit Do::ClearQueue")
	}
	rq, _ := ctx.Stores.ReactionQueue.Get(ent)
	if len(rq.Threats) != 0 {
		t.Fatalf("expected threats cleared, got %d remaining", len(rq.Threats))
	}
}

func TestEventDispatchSystemTryDismissResolvesFrontThreat(t *testing.T) {
	ctx := newTestCtx()
	_ = NewEventDispatchSystem(ctx)
	ent := ctx.World.CreateEntity()
	ctx.Stores.Health.Set(ent, &worldstate.Health{State: 100, Max: 100})
	ctx.Stores.ReactionQueue.Set(ent, &worldstate.ReactionQueue{
		Threats:  []worldstate.QueuedThreat{{Source: 0, Damage: 10, TimerMs: 1000}},
		WindowMs: 3000,
	})

	event.Emit(ctx.Bus, event.TryDismiss{Entity: ent})
	ctx.Bus.SwapBuffers()
	ctx.Bus.DispatchAll()

	rq, _ := ctx.Stores.ReactionQueue.Get(ent)
	if len(rq.Threats) != 0 {
		t.Fatalf("expected Dismiss to resolve the front threat, got %d remaining", len(rq.Threats))
	}
}

func TestEventDispatchSystemSwapBuffersGivesOneTickLatencyForPostSwapEmitters(t *testing.T) {
	ctx := newTestCtx()
	sys := NewEventDispatchSystem(ctx)

	var delivered int
	event.Subscribe(ctx.Bus, func(ev event.DoDespawn) { delivered++ })

	// Emitting after this tick's Update (its swap point) must not be
	// visible until the *next* Update call.
	sys.Update(0)
	event.Emit(ctx.Bus, event.DoDespawn{Entity: 1})
	if delivered != 0 {
		t.Fatalf("expected no delivery before the next swap, got %d", delivered)
	}

	sys.Update(0)
	if delivered != 1 {
		t.Fatalf("expected exactly one delivery after the following tick's swap, got %d", delivered)
	}
}

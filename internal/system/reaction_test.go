package system

import (
	"testing"
	"time"

	"github.com/l1jgo/hexcore/internal/worldstate"
)

func TestReactionSystemExpiresThreatsPastTheirWindow(t *testing.T) {
	ctx := newTestCtx()
	sys := NewReactionSystem(ctx)

	attacker := ctx.World.CreateEntity()
	ctx.Stores.Attributes.Set(attacker, &worldstate.ActorAttributes{TotalLevel: 10})
	target := ctx.World.CreateEntity()
	ctx.Stores.Attributes.Set(target, &worldstate.ActorAttributes{TotalLevel: 10})
	ctx.Stores.Health.Set(target, &worldstate.Health{State: 100, Max: 100})
	ctx.Stores.ReactionQueue.Set(target, &worldstate.ReactionQueue{
		Threats: []worldstate.QueuedThreat{
			{Source: attacker, Damage: 10, InsertedAtMs: 0, TimerMs: 1000},
		},
		WindowMs: 3000,
	})

	ctx.NowMs = 500
	sys.Update(time.Millisecond)
	rq, _ := ctx.Stores.ReactionQueue.Get(target)
	if len(rq.Threats) != 1 {
		t.Fatalf("expected the threat to remain queued before its window elapses")
	}

	ctx.NowMs = 1000
	sys.Update(time.Millisecond)
	rq, _ = ctx.Stores.ReactionQueue.Get(target)
	if len(rq.Threats) != 0 {
		t.Fatalf("expected the threat to resolve once its window has elapsed, got %d remaining", len(rq.Threats))
	}
	hp, _ := ctx.Stores.Health.Get(target)
	if hp.State >= 100 {
		t.Fatalf("expected the resolved threat to apply damage, health still %v", hp.State)
	}
}

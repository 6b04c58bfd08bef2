package system

import (
	"net"
	"testing"

	"go.uber.org/zap"

	"github.com/l1jgo/hexcore/internal/hex"
	gonet "github.com/l1jgo/hexcore/internal/net"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

func newTestNetSession(t *testing.T, id uint64) *gonet.Session {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() { client.Close(); server.Close() })
	return gonet.NewSession(server, id, 8, 8, zap.NewNop())
}

func TestHandleConnectSpawnsPlayerWithDefaults(t *testing.T) {
	ctx := newTestCtx()
	sys := NewInputSystem(ctx)
	sess := newTestNetSession(t, 1)

	sys.handleConnect(sess)

	ent, ok := ctx.Sessions.EntityFor(1)
	if !ok {
		t.Fatalf("expected session 1 to be bound to an entity")
	}
	hp, ok := ctx.Stores.Health.Get(ent)
	if !ok || hp.Max != defaultResourceMax {
		t.Fatalf("expected default health max %v, got %+v", defaultResourceMax, hp)
	}
	attrs, ok := ctx.Stores.Attributes.Get(ent)
	if !ok || attrs.TotalLevel != defaultPlayerLevel {
		t.Fatalf("expected level %d, got %+v", defaultPlayerLevel, attrs)
	}
	if _, ok := ctx.Stores.InputBuf.Get(ent); !ok {
		t.Fatalf("expected an input buffer to be attached")
	}
	if _, ok := ctx.Stores.PlayerSession.Get(ent); !ok {
		t.Fatalf("expected a PlayerSession back-reference")
	}
}

func TestHandleDisconnectUnbindsAndQueuesDestruction(t *testing.T) {
	ctx := newTestCtx()
	sys := NewInputSystem(ctx)
	sess := newTestNetSession(t, 2)

	sys.handleConnect(sess)
	ent, ok := ctx.Sessions.EntityFor(2)
	if !ok {
		t.Fatalf("expected entity bound before disconnect")
	}

	sys.handleDisconnect(2)

	if _, ok := ctx.Sessions.EntityFor(2); ok {
		t.Fatalf("expected session 2 to be unbound after disconnect")
	}
	if ctx.World.Alive(ent) == false {
		t.Fatalf("entity should still be alive until FlushDestroyQueue runs")
	}
}

func TestReplayExistingSpawnsCoversEveryLocEntity(t *testing.T) {
	ctx := newTestCtx()
	sys := NewInputSystem(ctx)

	npc := ctx.World.CreateEntity()
	ctx.Stores.Loc.Set(npc, &worldstate.Loc{Qrz: hex.Qrz{Q: 3}})

	sess := newTestNetSession(t, 3)
	sys.handleConnect(sess)

	select {
	case data := <-sess.OutQueue:
		if len(data) == 0 {
			t.Fatalf("expected a non-empty replayed spawn frame")
		}
	default:
		t.Fatalf("expected the pre-existing npc to be replayed to the new session")
	}
}

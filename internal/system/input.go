package system

import (
	"time"

	coresys "github.com/l1jgo/hexcore/internal/core/system"
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/input"
	"github.com/l1jgo/hexcore/internal/net"
	"github.com/l1jgo/hexcore/internal/net/packet"
	"github.com/l1jgo/hexcore/internal/protocol"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// defaultPlayerLevel and defaultAttr match spec.md's worked examples:
// a freshly connected player spawns at level 10 with every contested
// attribute at 100 (the Lunge scenario's "both at level 10 with
// defaults"), resources full at the same round number.
const (
	defaultPlayerLevel = 10
	defaultAttr        = 100.0
	defaultResourceMax = 100.0
)

// InputSystem accepts new sessions, retires dead ones, and drains each
// live session's inbound queue through the packet registry. Phase 0
// (Input), grounded on the teacher's InputSystem.Update three-pass
// accept/dead/drain shape; the account/char/item repo plumbing and
// disconnect-time persistence are replaced with spawn/despawn of a
// worldstate player entity, since this server has no account layer.
type InputSystem struct {
	ctx      *Context
	sessions map[uint64]*net.Session
}

func NewInputSystem(ctx *Context) *InputSystem {
	return &InputSystem{
		ctx:      ctx,
		sessions: make(map[uint64]*net.Session),
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	c := s.ctx

	for {
		select {
		case sess := <-c.NetServer.NewSessions():
			s.sessions[sess.ID] = sess
			s.handleConnect(sess)
		default:
			goto doneNew
		}
	}
doneNew:

	for {
		select {
		case id := <-c.NetServer.DeadSessions():
			delete(s.sessions, id)
		default:
			goto doneDead
		}
	}
doneDead:

	maxPerTick := c.Cfg.Network.MaxPacketsPerTick
	for id, sess := range s.sessions {
		if sess.IsClosed() {
			s.drainThenDisconnect(id, sess, maxPerTick)
			continue
		}
		s.drain(id, sess, maxPerTick)
	}
}

func (s *InputSystem) drain(id uint64, sess *net.Session, maxPerTick int) {
	c := s.ctx
	for i := 0; i < maxPerTick; i++ {
		select {
		case data := <-sess.InQueue:
			c.Sessions.Dispatch(c.Registry, id, data)
		default:
			return
		}
	}
}

// drainThenDisconnect flushes whatever arrived just before the socket
// closed (e.g. a last Try::Dismiss) before tearing the session down, then
// unbinds and despawns. Mirrors the teacher's "drain before cleanup" note.
func (s *InputSystem) drainThenDisconnect(id uint64, sess *net.Session, maxPerTick int) {
	s.drain(id, sess, maxPerTick)
	s.handleDisconnect(id)
	s.ctx.NetServer.NotifyDead(id)
	delete(s.sessions, id)
}

func (s *InputSystem) handleConnect(sess *net.Session) {
	c := s.ctx
	ent := s.spawnPlayer()
	c.Stores.PlayerSession.Set(ent, &worldstate.PlayerSession{SessionID: sess.ID})
	c.Sessions.Bind(sess, ent)
	sess.SetState(packet.StateInWorld)

	s.replayExistingSpawns(sess)

	event.Emit(c.Bus, event.DoSpawn{Entity: ent, Loc: hex.Qrz{}, Kind: uint8(protocol.EntityKindPlayer)})
}

func (s *InputSystem) handleDisconnect(sessionID uint64) {
	c := s.ctx
	ent, ok := c.Sessions.Unbind(sessionID)
	if !ok {
		return
	}
	event.Emit(c.Bus, event.PlayerDisconnected{EntityID: ent, SessionID: sessionID})
	event.Emit(c.Bus, event.DoDespawn{Entity: ent})
	c.World.MarkForDestruction(ent)
}

// replayExistingSpawns lets a newly connected client catch up on every
// entity already in the world, since Do::Spawn only broadcasts once at
// creation time.
func (s *InputSystem) replayExistingSpawns(sess *net.Session) {
	c := s.ctx
	c.Stores.Loc.Each(func(id ecs.EntityID, loc *worldstate.Loc) {
		kind := protocol.EntityKindNpc
		if c.Stores.PlayerSession.Has(id) {
			kind = protocol.EntityKindPlayer
		}
		sess.Send(protocol.EncodeDoSpawn(event.DoSpawn{Entity: id, Loc: loc.Qrz, Kind: uint8(kind)}))
	})
}

// spawnPlayer creates a new player entity with the default component set:
// full resources, baseline attributes, an empty input buffer, and the
// components the rest of the pipeline expects every actor to carry.
func (s *InputSystem) spawnPlayer() ecs.EntityID {
	c := s.ctx
	ent := c.World.CreateEntity()

	c.Stores.Loc.Set(ent, &worldstate.Loc{Qrz: hex.Qrz{}})
	c.Stores.Heading.Set(ent, &worldstate.Heading{Dir: hex.Qrz{Q: 1}})
	c.Stores.Offset.Set(ent, &worldstate.Offset{})
	c.Stores.AirTime.Set(ent, &worldstate.AirTime{})

	c.Stores.Health.Set(ent, &worldstate.Health{State: defaultResourceMax, Step: defaultResourceMax, Max: defaultResourceMax, LastUpdatedMs: c.NowMs})
	c.Stores.Stamina.Set(ent, &worldstate.Stamina{State: defaultResourceMax, Step: defaultResourceMax, Max: defaultResourceMax, LastUpdatedMs: c.NowMs})
	c.Stores.Mana.Set(ent, &worldstate.Mana{State: defaultResourceMax, Step: defaultResourceMax, Max: defaultResourceMax, LastUpdatedMs: c.NowMs})

	c.Stores.Attributes.Set(ent, &worldstate.ActorAttributes{
		Toughness: defaultAttr, Composure: defaultAttr, Dominance: defaultAttr,
		Impact: defaultAttr, Cunning: defaultAttr, Finesse: defaultAttr,
		Vitality: defaultAttr, Focus: defaultAttr, TotalLevel: defaultPlayerLevel,
	})

	c.Stores.ReactionQueue.Set(ent, &worldstate.ReactionQueue{WindowMs: 3000})
	c.Stores.Gcd.Set(ent, &worldstate.Gcd{})
	c.Stores.CombatState.Set(ent, &worldstate.CombatState{})
	c.Stores.InputBuf.Set(ent, &worldstate.InputBuf{Buf: input.NewBuffer(c.NowMs)})

	return ent
}

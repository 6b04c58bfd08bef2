// Package session owns the ClientId<->Entity bijection and narrows
// inbound client frames to the handful of Try:: opcodes the simulation
// trusts, per spec.md's session lifecycle contract.
package session

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/net"
	"github.com/l1jgo/hexcore/internal/net/packet"
	"github.com/l1jgo/hexcore/internal/protocol"
)

// entry pairs a live session with its bound player entity and inbound
// rate limiter.
type entry struct {
	sess    *net.Session
	entity  ecs.EntityID
	limiter *rate.Limiter
}

// Manager holds the bidirectional ClientId<->Entity map and dispatches
// inbound frames onto the event bus bound to the owning entity, dropping
// anything the protocol doesn't recognize or that trips the rate limit.
type Manager struct {
	mu    sync.RWMutex
	byID  map[uint64]*entry
	byEnt map[ecs.EntityID]*entry

	ratePerSec int
	rateBurst  int
}

func NewManager(ratePerSec int) *Manager {
	return &Manager{
		byID:       make(map[uint64]*entry),
		byEnt:      make(map[ecs.EntityID]*entry),
		ratePerSec: ratePerSec,
		rateBurst:  ratePerSec,
	}
}

// Bind registers a newly connected session against its spawned player
// entity.
func (m *Manager) Bind(sess *net.Session, ent ecs.EntityID) {
	e := &entry{
		sess:    sess,
		entity:  ent,
		limiter: rate.NewLimiter(rate.Limit(m.ratePerSec), m.rateBurst),
	}
	m.mu.Lock()
	m.byID[sess.ID] = e
	m.byEnt[ent] = e
	m.mu.Unlock()
}

// Unbind removes a session on disconnect, returning the entity it was
// bound to (so the caller can despawn it).
func (m *Manager) Unbind(sessionID uint64) (ecs.EntityID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byID[sessionID]
	if !ok {
		return 0, false
	}
	delete(m.byID, sessionID)
	delete(m.byEnt, e.entity)
	return e.entity, true
}

// EntityFor resolves a session ID to its bound entity.
func (m *Manager) EntityFor(sessionID uint64) (ecs.EntityID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.byID[sessionID]
	if !ok {
		return 0, false
	}
	return e.entity, true
}

// SessionFor resolves a player entity to its live session, for targeted
// sends (e.g. Do::ResourceSync on ability failure).
func (m *Manager) SessionFor(ent ecs.EntityID) (*net.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.byEnt[ent]
	if !ok {
		return nil, false
	}
	return e.sess, true
}

// Broadcast sends data to every bound session.
func (m *Manager) Broadcast(data []byte) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.byEnt {
		e.sess.Send(data)
	}
}

// Dispatch routes one inbound frame for sessionID through reg, binding
// it to the session's player entity via a protocol.Caller. Frames from
// an unbound session or a session over its inbound rate budget never
// reach the registry at all; frames the registry itself rejects (unknown
// opcode, disallowed session state) are dropped there per
// packet.Registry's own contract.
func (m *Manager) Dispatch(reg *packet.Registry, sessionID uint64, data []byte) {
	if len(data) == 0 {
		return
	}
	m.mu.RLock()
	e, ok := m.byID[sessionID]
	m.mu.RUnlock()
	if !ok {
		return
	}
	if !e.limiter.Allow() {
		return
	}

	reg.Dispatch(&protocol.Caller{Entity: e.entity}, e.sess.State(), data)
}

package combat

import (
	"sort"

	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/spatial"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// MitigationRadius is how far allies are searched for the strongest
// Dominance contributing to a target's mitigation.
const MitigationRadius = 5

// AllyFilter reports whether candidate should be considered an ally of
// target for mitigation lookups. Faction logic lives above this package;
// combat only needs the predicate.
type AllyFilter func(target, candidate ecs.EntityID) bool

// InsertThreat appends a threat to target's reaction queue and applies
// recovery pushback if the target is mid-recovery. Emits Do::InsertThreat
// so clients can render the telegraph.
func InsertThreat(bus *event.Bus, stores *worldstate.Stores, target ecs.EntityID, threat worldstate.QueuedThreat) {
	rq, ok := stores.ReactionQueue.Get(target)
	if !ok {
		rq = &worldstate.ReactionQueue{WindowMs: 3000}
		stores.ReactionQueue.Set(target, rq)
	}
	rq.Threats = append(rq.Threats, threat)

	if gr, ok := stores.GlobalRecovery.Get(target); ok && gr.IsActive() {
		targetAttrs, okT := stores.Attributes.Get(target)
		sourceAttrs, okS := stores.Attributes.Get(threat.Source)
		if okT && okS {
			proportion := RecoveryPushback(sourceAttrs.Impact, targetAttrs.Composure, sourceAttrs.TotalLevel, targetAttrs.TotalLevel)
			cut := int64(float64(gr.RemainingMs) * proportion)
			gr.RemainingMs -= cut
			if gr.RemainingMs < 0 {
				gr.RemainingMs = 0
			}
		}
	}

	event.Emit(bus, event.DoInsertThreat{Entity: target, Source: threat.Source, Amount: threat.Damage})
}

// TickExpiry scans every reaction queue for threats whose window has
// elapsed and resolves them in FIFO order, honoring invariant I5 (a
// single source+target pair resolves in insertion order).
func TickExpiry(nowMs int64, bus *event.Bus, stores *worldstate.Stores, idx *spatial.Tree, allies AllyFilter) {
	stores.ReactionQueue.Each(func(target ecs.EntityID, rq *worldstate.ReactionQueue) {
		i := 0
		for i < len(rq.Threats) {
			th := rq.Threats[i]
			if th.InsertedAtMs+th.TimerMs > nowMs {
				break
			}
			resolveThreat(nowMs, bus, stores, idx, target, th, allies)
			i++
		}
		rq.Threats = rq.Threats[i:]
	})
}

func resolveThreat(nowMs int64, bus *event.Bus, stores *worldstate.Stores, idx *spatial.Tree, target ecs.EntityID, th worldstate.QueuedThreat, allies AllyFilter) {
	attrs, ok := stores.Attributes.Get(target)
	if !ok {
		return
	}
	sourceAttrs, hasSource := stores.Attributes.Get(th.Source)
	sourceLevel := 0
	if hasSource {
		sourceLevel = sourceAttrs.TotalLevel
	}

	maxDominance := maxAllyDominance(stores, idx, target, allies)
	mitigation := Mitigation(attrs.TotalLevel, sourceLevel, attrs.Toughness, maxDominance)
	finalDamage := float32(float64(th.Damage) * (1 - mitigation))
	if finalDamage < 0 {
		finalDamage = 0
	}

	ApplyDamage(nowMs, bus, stores, target, th.Source, finalDamage)
}

func maxAllyDominance(stores *worldstate.Stores, idx *spatial.Tree, target ecs.EntityID, allies AllyFilter) float64 {
	loc, ok := stores.Loc.Get(target)
	if !ok || idx == nil {
		return 0
	}
	hits := idx.WithinRadius(spatial.FromQrz(loc.Qrz), MitigationRadius)
	sort.Slice(hits, func(i, j int) bool { return hits[i].Dist < hits[j].Dist })

	var best float64
	for _, h := range hits {
		if h.ID == target {
			continue
		}
		if allies != nil && !allies(target, h.ID) {
			continue
		}
		a, ok := stores.Attributes.Get(h.ID)
		if !ok {
			continue
		}
		if a.Dominance > best {
			best = a.Dominance
		}
	}
	return best
}

// ApplyDamage decrements target's health, floors at 0, broadcasts the
// update, and attaches a RespawnTimer to any entity whose health reaches
// 0. For NPCs the timer only marks them dead; their despawn is handled
// by the engagement cleanup pass, not here.
func ApplyDamage(nowMs int64, bus *event.Bus, stores *worldstate.Stores, target, source ecs.EntityID, amount float32) {
	h, ok := stores.Health.Get(target)
	if !ok {
		return
	}
	h.State -= float64(amount)
	if h.State < 0 {
		h.State = 0
	}
	h.Step = h.State
	h.LastUpdatedMs = nowMs

	lethal := h.State == 0
	event.Emit(bus, event.DoApplyDamage{Entity: target, Source: source, Amount: amount, Lethal: lethal})

	if lethal {
		stores.RespawnTmr.Set(target, &worldstate.RespawnTimer{DiedAtMs: nowMs, DelayMs: 5000})
	}
}

// Dismiss pops the front threat (if any) and applies its full,
// unmitigated damage: no resource cost, no cooldown, by design.
func Dismiss(nowMs int64, bus *event.Bus, stores *worldstate.Stores, target ecs.EntityID) bool {
	rq, ok := stores.ReactionQueue.Get(target)
	if !ok || len(rq.Threats) == 0 {
		return false
	}
	front := rq.Threats[0]
	rq.Threats = rq.Threats[1:]
	ApplyDamage(nowMs, bus, stores, target, front.Source, front.Damage)
	return true
}

// Deflect clears every queued threat for a stamina cost, returning the
// cleared count (0 if the queue was already empty or stamina was
// insufficient).
func Deflect(stores *worldstate.Stores, target ecs.EntityID, cost float64) int {
	rq, ok := stores.ReactionQueue.Get(target)
	if !ok || len(rq.Threats) == 0 {
		return 0
	}
	st, ok := stores.Stamina.Get(target)
	if !ok || st.State < cost {
		return 0
	}
	st.State -= cost
	st.Step = st.State
	n := len(rq.Threats)
	rq.Threats = rq.Threats[:0]
	return n
}

// Dodge pops exactly one threat for a stamina cost.
func Dodge(stores *worldstate.Stores, target ecs.EntityID, cost float64) bool {
	rq, ok := stores.ReactionQueue.Get(target)
	if !ok || len(rq.Threats) == 0 {
		return false
	}
	st, ok := stores.Stamina.Get(target)
	if !ok || st.State < cost {
		return false
	}
	st.State -= cost
	st.Step = st.State
	rq.Threats = rq.Threats[1:]
	return true
}

package combat

import (
	"math/rand"

	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/spatial"
	"github.com/l1jgo/hexcore/internal/worldmap"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// AbilityKind enumerates the Try::UseAbility/Do::UseAbility payload.
type AbilityKind uint8

const (
	AbilityLunge AbilityKind = iota
	AbilityDeflect
	AbilityDodge
	AbilityVolley
	AbilityOverpower
	AbilityCounter
	AbilityAutoAttack
)

// Reasons for Do::AbilityFailed, matching spec §6's enum order.
const (
	ReasonInsufficientStamina uint8 = iota
	ReasonOnCooldown
	ReasonNoTargets
	ReasonOutOfRange
)

// facingCosine is cos(30 deg): the half-angle of the 60-degree facing cone.
const facingCosine = 0.8660254037844387

// Ability costs and damage numbers not pinned down by the combat examples
// (Overpower/Counter/AutoAttack) are chosen to fit the same tiers as the
// worked Lunge/Volley examples; see DESIGN.md.
const (
	lungeStamina, lungeDamage       = 20.0, 40.0
	lungeMinRange, lungeMaxRange    = 1, 4
	deflectStamina                  = 50.0
	dodgeStamina                    = 60.0
	volleyDamage                    = 20.0
	volleyMinRange, volleyMaxRange  = 1, 10
	overpowerStamina, overpowerDmg  = 40.0, 60.0
	counterStamina, counterDamage   = 30.0, 30.0
	autoAttackStamina, autoAttackDmg = 5.0, 15.0
)

// AbilityContext bundles everything an ability handler needs to validate
// and resolve a Try::UseAbility event. GcdMs is the attack GCD duration
// (config.Server.AttackGcdMs); NowMs is the current tick time.
type AbilityContext struct {
	Stores  *worldstate.Stores
	Bus     *event.Bus
	Map     *worldmap.Map
	Index   *spatial.Tree
	Allies  AllyFilter
	GcdMs   int64
	NowMs   int64
	Rand    *rand.Rand
}

// HandleUseAbility is the single entry point for every Try::UseAbility
// event: it dispatches to the ability-specific handler after the shared
// preconditions (steps 1-3 of the §4.6 pattern) are checked.
func HandleUseAbility(ctx *AbilityContext, ev event.TryUseAbility) {
	caster := ev.Entity
	if _, dead := ctx.Stores.RespawnTmr.Get(caster); dead {
		return
	}
	if gr, ok := ctx.Stores.GlobalRecovery.Get(caster); ok && gr.IsActive() {
		failAbility(ctx, caster, AbilityKind(ev.AbilityID), ReasonOnCooldown)
		return
	}

	switch AbilityKind(ev.AbilityID) {
	case AbilityLunge:
		handleLunge(ctx, caster, ev.TargetLoc)
	case AbilityDeflect:
		handleDeflect(ctx, caster)
	case AbilityDodge:
		handleDodge(ctx, caster)
	case AbilityVolley:
		handleVolley(ctx, caster, ev.TargetLoc)
	case AbilityOverpower:
		handleMeleeByTarget(ctx, caster, AbilityOverpower, overpowerStamina, overpowerDmg)
	case AbilityCounter:
		handleCounter(ctx, caster)
	case AbilityAutoAttack:
		handleMeleeByTarget(ctx, caster, AbilityAutoAttack, autoAttackStamina, autoAttackDmg)
	}
}

func failAbility(ctx *AbilityContext, caster ecs.EntityID, kind AbilityKind, reason uint8) {
	event.Emit(ctx.Bus, event.DoAbilityFailed{Entity: caster, AbilityID: uint8(kind), Reason: reason})

	h, hasH := ctx.Stores.Health.Get(caster)
	s, hasS := ctx.Stores.Stamina.Get(caster)
	m, hasM := ctx.Stores.Mana.Get(caster)
	sync := event.DoResourceSync{Entity: caster}
	if hasH {
		sync.Health = h.State
	}
	if hasS {
		sync.Stamina = s.State
	}
	if hasM {
		sync.Mana = m.State
	}
	event.Emit(ctx.Bus, sync)
}

// inFacingCone reports whether loc is within 30 degrees of caster's
// current Heading (the 60-degree facing cone).
func inFacingCone(ctx *AbilityContext, caster ecs.EntityID, loc hex.Qrz) bool {
	casterLoc, ok := ctx.Stores.Loc.Get(caster)
	if !ok {
		return false
	}
	heading, ok := ctx.Stores.Heading.Get(caster)
	if !ok {
		return true
	}
	return InFacingCone(ctx.Map, casterLoc.Qrz, heading.Dir, loc)
}

// InFacingCone reports whether loc is within 30 degrees of a heading
// (measured from origin; a 60-degree cone), using world-space vectors so it is correct
// regardless of whether heading is a cardinal unit or a raw displacement.
// Shared by ability resolution and the NPC behavior tree's
// UseAbilityIfAdjacent node.
func InFacingCone(m *worldmap.Map, origin, heading, loc hex.Qrz) bool {
	headingWorld := m.ConvertDir(heading)
	if headingWorld == (worldmap.Vec3{}) {
		return true
	}
	toTarget := m.Convert(loc).Sub(m.Convert(origin)).Normalize()
	if toTarget == (worldmap.Vec3{}) {
		return true
	}
	return headingWorld.Dot(toTarget) >= facingCosine
}

// entityAt resolves the occupant at an exact hex coordinate via the
// spatial index, excluding caster.
func entityAt(ctx *AbilityContext, caster ecs.EntityID, loc hex.Qrz) (ecs.EntityID, bool) {
	if ctx.Index == nil {
		return 0, false
	}
	target := spatial.FromQrz(loc)
	for _, h := range ctx.Index.WithinRadius(target, 0) {
		if h.ID == caster {
			continue
		}
		if h.Coord.Equal(target) {
			return h.ID, true
		}
	}
	return 0, false
}

func isPlayer(ctx *AbilityContext, ent ecs.EntityID) bool {
	_, isNpc := ctx.Stores.NpcRecovery.Get(ent)
	return !isNpc
}

func attachRecovery(ctx *AbilityContext, caster ecs.EntityID) {
	ctx.Stores.Gcd.Set(caster, &worldstate.Gcd{ExpiresAtMs: ctx.NowMs + ctx.GcdMs})
	attrs, _ := ctx.Stores.Attributes.Get(caster)
	impact, level := 0.0, 0
	if attrs != nil {
		impact, level = attrs.Impact, attrs.TotalLevel
	}
	ctx.Stores.GlobalRecovery.Set(caster, &worldstate.GlobalRecovery{
		RemainingMs:  ctx.GcdMs,
		TargetImpact: impact,
		TargetLevel:  level,
	})
}

func deductStamina(ctx *AbilityContext, caster ecs.EntityID, cost float64) bool {
	st, ok := ctx.Stores.Stamina.Get(caster)
	if !ok || st.State < cost {
		return false
	}
	st.State -= cost
	st.Step = st.State
	st.LastUpdatedMs = ctx.NowMs
	return true
}

func handleLunge(ctx *AbilityContext, caster ecs.EntityID, targetLoc *hex.Qrz) {
	if targetLoc == nil {
		failAbility(ctx, caster, AbilityLunge, ReasonNoTargets)
		return
	}
	casterLoc, ok := ctx.Stores.Loc.Get(caster)
	if !ok {
		return
	}
	target, ok := entityAt(ctx, caster, *targetLoc)
	if !ok {
		failAbility(ctx, caster, AbilityLunge, ReasonNoTargets)
		return
	}
	dist := hex.FlatDistance(casterLoc.Qrz, *targetLoc)
	if dist < lungeMinRange || dist > lungeMaxRange {
		failAbility(ctx, caster, AbilityLunge, ReasonOutOfRange)
		return
	}
	if !inFacingCone(ctx, caster, *targetLoc) {
		failAbility(ctx, caster, AbilityLunge, ReasonOutOfRange)
		return
	}
	if !deductStamina(ctx, caster, lungeStamina) {
		failAbility(ctx, caster, AbilityLunge, ReasonInsufficientStamina)
		return
	}

	dest := closestNeighbor(*targetLoc, casterLoc.Qrz)
	casterLoc.Qrz = dest
	heading := hex.HeadingFrom(dest, *targetLoc)
	ctx.Stores.Heading.Set(caster, &worldstate.Heading{Dir: heading})
	event.Emit(ctx.Bus, event.DoIncremental{Entity: caster, Loc: dest, Heading: headingBits(heading)})

	InsertThreat(ctx.Bus, ctx.Stores, target, worldstate.QueuedThreat{
		Source: caster, Damage: lungeDamage, InsertedAtMs: ctx.NowMs, TimerMs: 1000,
	})

	event.Emit(ctx.Bus, event.DoUseAbility{Entity: caster, AbilityID: uint8(AbilityLunge), Target: target, TargetLoc: targetLoc})
	attachRecovery(ctx, caster)
}

// closestNeighbor returns the neighbor of target nearest to from.
func closestNeighbor(target, from hex.Qrz) hex.Qrz {
	neighbors := target.Neighbors()
	best := neighbors[0]
	bestDist := hex.FlatDistance(best, from)
	for _, n := range neighbors[1:] {
		if d := hex.FlatDistance(n, from); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// headingBits packs a unit Qrz direction back into the key-bit encoding
// for broadcast, inverse of hex.DecodeHeading.
func headingBits(dir hex.Qrz) uint8 {
	switch dir {
	case hex.Qrz{Q: 1, R: -1, Z: 0}:
		return hex.KeyQ | hex.KeyR | hex.KeyNegS
	case hex.Qrz{Q: -1, R: 1, Z: 0}:
		return hex.KeyQ | hex.KeyR
	case hex.Qrz{Q: -1, R: 0, Z: 0}:
		return hex.KeyQ | hex.KeyNegS
	case hex.Qrz{Q: 0, R: -1, Z: 0}:
		return hex.KeyR | hex.KeyNegS
	case hex.Qrz{Q: 1, R: 0, Z: 0}:
		return hex.KeyQ
	case hex.Qrz{Q: 0, R: 1, Z: 0}:
		return hex.KeyR
	default:
		return 0
	}
}

func handleDeflect(ctx *AbilityContext, caster ecs.EntityID) {
	rq, ok := ctx.Stores.ReactionQueue.Get(caster)
	if !ok || len(rq.Threats) == 0 {
		failAbility(ctx, caster, AbilityDeflect, ReasonNoTargets)
		return
	}
	if !deductStamina(ctx, caster, deflectStamina) {
		failAbility(ctx, caster, AbilityDeflect, ReasonInsufficientStamina)
		return
	}
	rq.Threats = rq.Threats[:0]
	event.Emit(ctx.Bus, event.DoClearQueue{Entity: caster})
	event.Emit(ctx.Bus, event.DoUseAbility{Entity: caster, AbilityID: uint8(AbilityDeflect)})
	attachRecovery(ctx, caster)
}

func handleDodge(ctx *AbilityContext, caster ecs.EntityID) {
	rq, ok := ctx.Stores.ReactionQueue.Get(caster)
	if !ok || len(rq.Threats) == 0 {
		failAbility(ctx, caster, AbilityDodge, ReasonNoTargets)
		return
	}
	if !deductStamina(ctx, caster, dodgeStamina) {
		failAbility(ctx, caster, AbilityDodge, ReasonInsufficientStamina)
		return
	}
	rq.Threats = rq.Threats[1:]
	event.Emit(ctx.Bus, event.DoClearQueue{Entity: caster})
	event.Emit(ctx.Bus, event.DoUseAbility{Entity: caster, AbilityID: uint8(AbilityDodge)})
	attachRecovery(ctx, caster)
}

func handleVolley(ctx *AbilityContext, caster ecs.EntityID, targetLoc *hex.Qrz) {
	if targetLoc == nil {
		failAbility(ctx, caster, AbilityVolley, ReasonNoTargets)
		return
	}
	casterLoc, ok := ctx.Stores.Loc.Get(caster)
	if !ok {
		return
	}
	if isPlayer(ctx, caster) {
		failAbility(ctx, caster, AbilityVolley, ReasonNoTargets)
		return
	}
	target, ok := entityAt(ctx, caster, *targetLoc)
	if !ok || !isPlayer(ctx, target) {
		failAbility(ctx, caster, AbilityVolley, ReasonNoTargets)
		return
	}
	dist := hex.FlatDistance(casterLoc.Qrz, *targetLoc)
	if dist < volleyMinRange || dist > volleyMaxRange {
		failAbility(ctx, caster, AbilityVolley, ReasonOutOfRange)
		return
	}
	if !inFacingCone(ctx, caster, *targetLoc) {
		failAbility(ctx, caster, AbilityVolley, ReasonOutOfRange)
		return
	}

	InsertThreat(ctx.Bus, ctx.Stores, target, worldstate.QueuedThreat{
		Source: caster, Damage: volleyDamage, InsertedAtMs: ctx.NowMs, TimerMs: 1000,
	})
	event.Emit(ctx.Bus, event.DoUseAbility{Entity: caster, AbilityID: uint8(AbilityVolley), Target: target, TargetLoc: targetLoc})
	attachRecovery(ctx, caster)
}

// handleMeleeByTarget covers Overpower and AutoAttack: both require an
// adjacent, in-cone hostile resolved from the caster's Target component.
func handleMeleeByTarget(ctx *AbilityContext, caster ecs.EntityID, kind AbilityKind, cost, damage float64) {
	tgt, ok := ctx.Stores.Target.Get(caster)
	if !ok || !tgt.HasEntity {
		failAbility(ctx, caster, kind, ReasonNoTargets)
		return
	}
	casterLoc, ok := ctx.Stores.Loc.Get(caster)
	if !ok {
		return
	}
	targetLoc, ok := ctx.Stores.Loc.Get(tgt.Entity)
	if !ok {
		failAbility(ctx, caster, kind, ReasonNoTargets)
		return
	}
	if hex.FlatDistance(casterLoc.Qrz, targetLoc.Qrz) != 1 {
		failAbility(ctx, caster, kind, ReasonOutOfRange)
		return
	}
	if !inFacingCone(ctx, caster, targetLoc.Qrz) {
		failAbility(ctx, caster, kind, ReasonOutOfRange)
		return
	}
	if !deductStamina(ctx, caster, cost) {
		failAbility(ctx, caster, kind, ReasonInsufficientStamina)
		return
	}

	InsertThreat(ctx.Bus, ctx.Stores, tgt.Entity, worldstate.QueuedThreat{
		Source: caster, Damage: float32(damage), InsertedAtMs: ctx.NowMs, TimerMs: 1000,
	})
	event.Emit(ctx.Bus, event.DoUseAbility{Entity: caster, AbilityID: uint8(kind), Target: tgt.Entity})
	attachRecovery(ctx, caster)
}

// handleCounter is purely reactive: it removes the caster's own front
// threat without applying its damage (unlike Dismiss) and strikes its
// source back.
func handleCounter(ctx *AbilityContext, caster ecs.EntityID) {
	rq, ok := ctx.Stores.ReactionQueue.Get(caster)
	if !ok || len(rq.Threats) == 0 {
		failAbility(ctx, caster, AbilityCounter, ReasonNoTargets)
		return
	}
	if !deductStamina(ctx, caster, counterStamina) {
		failAbility(ctx, caster, AbilityCounter, ReasonInsufficientStamina)
		return
	}
	front := rq.Threats[0]
	rq.Threats = rq.Threats[1:]
	event.Emit(ctx.Bus, event.DoClearQueue{Entity: caster})

	InsertThreat(ctx.Bus, ctx.Stores, front.Source, worldstate.QueuedThreat{
		Source: caster, Damage: counterDamage, InsertedAtMs: ctx.NowMs, TimerMs: 1000,
	})
	event.Emit(ctx.Bus, event.DoUseAbility{Entity: caster, AbilityID: uint8(AbilityCounter), Target: front.Source})
	attachRecovery(ctx, caster)
}


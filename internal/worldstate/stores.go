package worldstate

import "github.com/l1jgo/hexcore/internal/core/ecs"

// Stores bundles every component store the simulation reads and writes,
// registered with the ECS registry so entity destruction clears all of
// them in one pass.
type Stores struct {
	Loc     *ecs.PtrComponentStore[Loc]
	Offset  *ecs.PtrComponentStore[Offset]
	AirTime *ecs.PtrComponentStore[AirTime]
	Heading *ecs.PtrComponentStore[Heading]

	Health  *ecs.PtrComponentStore[Health]
	Stamina *ecs.PtrComponentStore[Stamina]
	Mana    *ecs.PtrComponentStore[Mana]

	ReactionQueue *ecs.PtrComponentStore[ReactionQueue]

	Gcd            *ecs.PtrComponentStore[Gcd]
	GlobalRecovery *ecs.PtrComponentStore[GlobalRecovery]
	NpcRecovery    *ecs.PtrComponentStore[NpcRecovery]

	Attributes *ecs.PtrComponentStore[ActorAttributes]

	Target      *ecs.PtrComponentStore[Target]
	AllyTarget  *ecs.PtrComponentStore[AllyTarget]
	TierLock    *ecs.PtrComponentStore[TierLock]
	TargetLock  *ecs.PtrComponentStore[TargetLock]
	RespawnTmr  *ecs.PtrComponentStore[RespawnTimer]

	FindOrKeepTarget     *ecs.PtrComponentStore[FindOrKeepTarget]
	FaceTarget           *ecs.PtrComponentStore[FaceTarget]
	PathTo               *ecs.PtrComponentStore[PathTo]
	UseAbilityIfAdjacent *ecs.PtrComponentStore[UseAbilityIfAdjacent]
	Nearby               *ecs.PtrComponentStore[Nearby]

	Engagement          *ecs.PtrComponentStore[Engagement]
	EngagementMember    *ecs.PtrComponentStore[EngagementMember]
	LastPlayerProximity *ecs.PtrComponentStore[LastPlayerProximity]
	HexAssignment       *ecs.PtrComponentStore[HexAssignment]

	InputBuf      *ecs.PtrComponentStore[InputBuf]
	CombatState   *ecs.PtrComponentStore[CombatState]
	PlayerSession *ecs.PtrComponentStore[PlayerSession]
}

func NewStores(reg *ecs.Registry) *Stores {
	s := &Stores{
		Loc:     ecs.NewPtrComponentStore[Loc](),
		Offset:  ecs.NewPtrComponentStore[Offset](),
		AirTime: ecs.NewPtrComponentStore[AirTime](),
		Heading: ecs.NewPtrComponentStore[Heading](),

		Health:  ecs.NewPtrComponentStore[Health](),
		Stamina: ecs.NewPtrComponentStore[Stamina](),
		Mana:    ecs.NewPtrComponentStore[Mana](),

		ReactionQueue: ecs.NewPtrComponentStore[ReactionQueue](),

		Gcd:            ecs.NewPtrComponentStore[Gcd](),
		GlobalRecovery: ecs.NewPtrComponentStore[GlobalRecovery](),
		NpcRecovery:    ecs.NewPtrComponentStore[NpcRecovery](),

		Attributes: ecs.NewPtrComponentStore[ActorAttributes](),

		Target:     ecs.NewPtrComponentStore[Target](),
		AllyTarget: ecs.NewPtrComponentStore[AllyTarget](),
		TierLock:   ecs.NewPtrComponentStore[TierLock](),
		TargetLock: ecs.NewPtrComponentStore[TargetLock](),
		RespawnTmr: ecs.NewPtrComponentStore[RespawnTimer](),

		FindOrKeepTarget:     ecs.NewPtrComponentStore[FindOrKeepTarget](),
		FaceTarget:           ecs.NewPtrComponentStore[FaceTarget](),
		PathTo:               ecs.NewPtrComponentStore[PathTo](),
		UseAbilityIfAdjacent: ecs.NewPtrComponentStore[UseAbilityIfAdjacent](),
		Nearby:               ecs.NewPtrComponentStore[Nearby](),

		Engagement:          ecs.NewPtrComponentStore[Engagement](),
		EngagementMember:    ecs.NewPtrComponentStore[EngagementMember](),
		LastPlayerProximity: ecs.NewPtrComponentStore[LastPlayerProximity](),
		HexAssignment:       ecs.NewPtrComponentStore[HexAssignment](),

		InputBuf:      ecs.NewPtrComponentStore[InputBuf](),
		CombatState:   ecs.NewPtrComponentStore[CombatState](),
		PlayerSession: ecs.NewPtrComponentStore[PlayerSession](),
	}

	reg.Register(s.Loc)
	reg.Register(s.Offset)
	reg.Register(s.AirTime)
	reg.Register(s.Heading)
	reg.Register(s.Health)
	reg.Register(s.Stamina)
	reg.Register(s.Mana)
	reg.Register(s.ReactionQueue)
	reg.Register(s.Gcd)
	reg.Register(s.GlobalRecovery)
	reg.Register(s.NpcRecovery)
	reg.Register(s.Attributes)
	reg.Register(s.Target)
	reg.Register(s.AllyTarget)
	reg.Register(s.TierLock)
	reg.Register(s.TargetLock)
	reg.Register(s.RespawnTmr)
	reg.Register(s.FindOrKeepTarget)
	reg.Register(s.FaceTarget)
	reg.Register(s.PathTo)
	reg.Register(s.UseAbilityIfAdjacent)
	reg.Register(s.Nearby)
	reg.Register(s.Engagement)
	reg.Register(s.EngagementMember)
	reg.Register(s.LastPlayerProximity)
	reg.Register(s.HexAssignment)
	reg.Register(s.InputBuf)
	reg.Register(s.CombatState)
	reg.Register(s.PlayerSession)

	return s
}

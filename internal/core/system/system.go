package system

import "time"

// Phase defines execution ordering within a single tick, matching the
// simulation's fixed per-tick sequence end to end.
type Phase int

const (
	PhaseInput       Phase = iota // 0: drain session queues into input buffers
	PhaseInputSlice               // 1: slice input buffers, emit Do::Input
	PhasePhysics                  // 2: integrate positions from sliced input
	PhaseSpatial                  // 3: reconcile the spatial index with new Locs
	PhaseBehavior                 // 4: behavior tree, emits Try::UseAbility
	PhaseAbility                  // 5: resolve ability handlers
	PhaseReaction                 // 6: tick reaction queues, expire threats
	PhaseDamage                   // 7: apply resolved damage
	PhaseCombatState              // 8: update in-combat flags
	PhaseEngagement               // 9: engagement spawn/cleanup bookkeeping
	PhaseOutput                   // 10: flush broadcast
	PhaseCleanup                  // 11: destroy entities queued for removal
)

// System is the interface every tick-scheduled system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

package system

import (
	"time"

	coresys "github.com/l1jgo/hexcore/internal/core/system"
)

// CleanupSystem flushes the world's deferred destruction queue at the
// end of every tick. Phase PhaseCleanup, grounded directly on the
// teacher's own CleanupSystem (a one-line Update calling exactly one
// method on a held dependency).
type CleanupSystem struct {
	ctx *Context
}

func NewCleanupSystem(ctx *Context) *CleanupSystem {
	return &CleanupSystem{ctx: ctx}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.ctx.World.FlushDestroyQueue()
}

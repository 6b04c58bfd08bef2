package system

import (
	"time"

	"github.com/l1jgo/hexcore/internal/combat"
	coresys "github.com/l1jgo/hexcore/internal/core/system"
)

// ReactionSystem expires unresolved reaction-queue threats in FIFO order.
// Phase PhaseReaction, after the tick's ability uses have queued whatever
// threats they produced (via EventDispatchSystem, one tick earlier).
type ReactionSystem struct {
	ctx *Context
}

func NewReactionSystem(ctx *Context) *ReactionSystem {
	return &ReactionSystem{ctx: ctx}
}

func (s *ReactionSystem) Phase() coresys.Phase { return coresys.PhaseReaction }

func (s *ReactionSystem) Update(_ time.Duration) {
	c := s.ctx
	combat.TickExpiry(c.NowMs, c.Bus, c.Stores, c.Index, samePlayerParty(c.Stores))
}

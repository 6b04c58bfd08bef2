package system

import (
	"time"

	coresys "github.com/l1jgo/hexcore/internal/core/system"
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/input"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// InputSliceSystem slices each player's buffered input into this tick's
// segments and stashes them for PhysicsSystem, which runs in the next
// phase of the same Runner.Tick() call. Phase PhaseInputSlice.
type InputSliceSystem struct {
	ctx *Context
}

func NewInputSliceSystem(ctx *Context) *InputSliceSystem {
	return &InputSliceSystem{ctx: ctx}
}

func (s *InputSliceSystem) Phase() coresys.Phase { return coresys.PhaseInputSlice }

func (s *InputSliceSystem) Update(dt time.Duration) {
	c := s.ctx
	tickDtMs := dt.Milliseconds()
	c.pendingInput = make(map[ecs.EntityID][]input.Input)

	c.Stores.InputBuf.Each(func(id ecs.EntityID, buf *worldstate.InputBuf) {
		segments := buf.Buf.GenerateInput(tickDtMs)
		c.pendingInput[id] = segments
		for _, seg := range segments {
			event.Emit(c.Bus, event.DoInput{Entity: id, KeyBits: seg.KeyBits, DtMs: seg.DtMs})
		}
	})
}

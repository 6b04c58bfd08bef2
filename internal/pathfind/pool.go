package pathfind

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/hex"
	"github.com/l1jgo/hexcore/internal/worldmap"
)

// Task is one pathfinding request: find a route for Entity from Start to
// Dest over the given map snapshot.
type Task struct {
	Entity   ecs.EntityID
	Snapshot *worldmap.Map
	Start    hex.Qrz
	Dest     hex.Qrz
	MaxSteps int
}

// Result is what a Task produces; Path is nil on failure (spec §7: "no
// path" returns empty, the behavior tree node fails and re-runs next
// tick — it does not retry the task itself).
type Result struct {
	Entity ecs.EntityID
	Path   []hex.Qrz
}

// Pool runs pathfinding tasks on bounded background goroutines. The main
// tick never blocks on a Submit; it drains at most one completed Result
// per tick via Drain, per spec §5's suspension-point contract.
type Pool struct {
	sem     *semaphore.Weighted
	results chan Result
}

func NewPool(concurrency int, resultBuffer int) *Pool {
	return &Pool{
		sem:     semaphore.NewWeighted(int64(concurrency)),
		results: make(chan Result, resultBuffer),
	}
}

// Submit queues a task and returns at once: each task gets its own
// goroutine, which waits for one of the pool's concurrency slots before
// running A*. Only the number of concurrent A* runs is bounded; the
// number of goroutines waiting for a slot is not.
func (p *Pool) Submit(t Task) {
	go func() {
		ctx := context.Background()
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return
		}
		defer p.sem.Release(1)

		path := FindPath(t.Snapshot, t.Start, t.Dest, t.MaxSteps)
		select {
		case p.results <- Result{Entity: t.Entity, Path: path}:
		default:
			// Result buffer full: drop rather than block a worker
			// goroutine forever. A despawned or re-pathing entity will
			// simply re-request next tick.
		}
	}()
}

// Drain returns at most one completed Result, non-blocking.
func (p *Pool) Drain() (Result, bool) {
	select {
	case r := <-p.results:
		return r, true
	default:
		return Result{}, false
	}
}

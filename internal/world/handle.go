package world

import (
	"context"
	"time"

	"github.com/tinyrange/botarena/internal/bot"
	"github.com/tinyrange/botarena/internal/firmware"
	"github.com/tinyrange/botarena/internal/geom"
)

// request is one mutating call queued onto the scheduler's single-owner
// loop (spec.md 4.7: "the handle serialises mutating requests onto the
// scheduler's single-owner loop via a request channel").
type request struct {
	apply func(w *World)
	done  chan struct{}
}

// Handle is the only way external collaborators touch a World. Every
// mutating call blocks until the scheduler goroutine has applied it,
// between tick boundaries, never mid-tick (spec.md 4.7, 5).
type Handle struct {
	world *World
	reqs  chan request
}

// NewHandle builds a Handle bound to w. Call Run (typically in its own
// goroutine) to start the scheduler loop.
func NewHandle(w *World) *Handle {
	return &Handle{world: w, reqs: make(chan request, 64)}
}

// Run drives w's tick loop: on each iteration it drains every request
// currently queued, then (if not paused) executes one tick and publishes
// the result, then sleeps until the next tick deadline (spec.md 5).
func (h *Handle) Run(ctx context.Context) {
	ticker := time.NewTicker(h.world.Clock.Period())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-h.reqs:
			req.apply(h.world)
			close(req.done)
		case now := <-ticker.C:
			h.drainReady()
			h.world.Tick(now)
			// Re-arm at the (possibly just-changed, via SetOverclock)
			// current period rather than the one the ticker started with.
			ticker.Reset(h.world.Clock.Period())
		}
	}
}

// drainReady applies every request already queued without blocking, so a
// burst of handle calls lands before the next tick rather than trickling
// in one per tick.
func (h *Handle) drainReady() {
	for {
		select {
		case req := <-h.reqs:
			req.apply(h.world)
			close(req.done)
		default:
			return
		}
	}
}

// do enqueues apply and blocks until the scheduler goroutine has run it.
func (h *Handle) do(apply func(w *World)) {
	done := make(chan struct{})
	h.reqs <- request{apply: apply, done: done}
	<-done
}

// Spawn validates and enqueues a new bot (spec.md 4.7).
func (h *Handle) Spawn(fw *firmware.Firmware, pos *geom.Vec2, ephemeral bool) (bot.ID, error) {
	var id bot.ID
	var err error
	h.do(func(w *World) {
		id, err = w.Spawn(fw, pos, ephemeral)
	})
	return id, err
}

// Kill schedules id to die at the next tick's reaping step.
func (h *Handle) Kill(id bot.ID, reason string) {
	h.do(func(w *World) { w.RequestKill(id, reason) })
}

// Delete removes id from whichever table holds it, immediately.
func (h *Handle) Delete(id bot.ID) {
	h.do(func(w *World) { w.Delete(id) })
}

// SetPaused pauses or resumes the tick loop.
func (h *Handle) SetPaused(paused bool) {
	h.do(func(w *World) { w.SetPaused(paused) })
}

// SetOverclock scales the simulation tick rate by factor.
func (h *Handle) SetOverclock(factor float64) {
	h.do(func(w *World) { w.SetOverclock(factor) })
}

// Snapshots returns a latest-wins snapshot subscription.
func (h *Handle) Snapshots() *SnapshotSubscription { return h.world.Snapshots() }

// Events returns a bounded lifecycle-event subscription.
func (h *Handle) Events() *EventSubscription { return h.world.Events() }

// File: game/clock.go
package game

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lguibr/fruitfall/utils"
)

// Clock drives the simulation: every period it steps the world and hands the
// snapshot to the publisher. It starts at most once and then runs until the
// context passed to Start is cancelled, whether or not anyone is connected.
type Clock struct {
	world     *World
	publisher Publisher
	period    time.Duration
	logger    *slog.Logger

	startOnce sync.Once
	running   atomic.Bool
	ticks     atomic.Uint64
	done      chan struct{}
}

func NewClock(world *World, publisher Publisher, period time.Duration, logger *slog.Logger) *Clock {
	return &Clock{
		world:     world,
		publisher: publisher,
		period:    period,
		logger:    utils.OrDefault(logger).With("component", "clock"),
		done:      make(chan struct{}),
	}
}

// Start launches the tick loop. Only the first call has any effect; it
// reports whether this call was the one that started the clock.
func (c *Clock) Start(ctx context.Context) bool {
	started := false
	c.startOnce.Do(func() {
		started = true
		c.running.Store(true)
		go c.run(ctx)
	})
	return started
}

// Running reports whether the tick loop is active.
func (c *Clock) Running() bool { return c.running.Load() }

// Ticks returns how many ticks have completed.
func (c *Clock) Ticks() uint64 { return c.ticks.Load() }

// Done is closed when a started loop exits. It stays open if Start was never called.
func (c *Clock) Done() <-chan struct{} { return c.done }

// Tick performs one spawn/advance/cull step and publishes the result.
func (c *Clock) Tick() {
	payload := c.world.Step()
	c.publisher.PushSnapshot(payload)
	c.ticks.Add(1)
}

func (c *Clock) run(ctx context.Context) {
	defer close(c.done)
	defer c.running.Store(false)

	ticker := time.NewTicker(c.period)
	defer ticker.Stop()

	c.logger.Info("game clock started", "period", c.period)
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("game clock stopped", "ticks", c.ticks.Load())
			return
		case <-ticker.C:
			c.safeTick()
		}
	}
}

// safeTick keeps the loop alive if a tick panics.
func (c *Clock) safeTick() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("panic recovered in tick", "panic", r, "stack", string(debug.Stack()))
		}
	}()
	c.Tick()
}

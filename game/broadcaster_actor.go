// File: game/broadcaster_actor.go
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/lguibr/fruitfall/bollywood"
	"github.com/lguibr/fruitfall/utils"
)

// Publisher accepts snapshots from the clock. PushSnapshot must not block.
type Publisher interface {
	PushSnapshot(payload string)
}

// Broadcast delivers payload to every current target of sessions. A failed
// delivery is logged and skipped. It returns the number of successful sends.
// A full send queue is routine for a slow client and only logged at debug.
func Broadcast(sessions *Sessions, payload string, logger *slog.Logger) int {
	delivered := 0
	for _, s := range sessions.Targets() {
		if err := s.Send(payload); err != nil {
			if errors.Is(err, ErrSendQueueFull) {
				logger.Debug("snapshot dropped for slow session", "session", s.ID())
			} else {
				logger.Warn("failed to deliver snapshot", "session", s.ID(), "error", err)
			}
			continue
		}
		delivered++
	}
	return delivered
}

// BroadcasterActor fans snapshots out to all sessions off the clock's goroutine.
type BroadcasterActor struct {
	sessions *Sessions
	logger   *slog.Logger
	selfPID  *bollywood.PID
}

// NewBroadcasterProducer creates a producer for BroadcasterActor.
func NewBroadcasterProducer(sessions *Sessions, logger *slog.Logger) bollywood.Producer {
	return func() bollywood.Actor {
		return &BroadcasterActor{
			sessions: sessions,
			logger:   utils.OrDefault(logger).With("component", "broadcaster"),
		}
	}
}

// Receive handles messages for the BroadcasterActor.
func (a *BroadcasterActor) Receive(ctx bollywood.Context) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("panic recovered in Receive", "actor", a.selfPID, "panic", r, "stack", string(debug.Stack()))
		}
	}()

	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		a.logger.Debug("broadcaster started", "actor", a.selfPID)

	case PushSnapshot:
		Broadcast(a.sessions, msg.Payload, a.logger)

	case bollywood.Stopping, bollywood.Stopped:

	default:
		a.logger.Warn("unknown message", "type", fmt.Sprintf("%T", msg))
	}
}

// Broadcaster is the Publisher backed by a BroadcasterActor.
type Broadcaster struct {
	engine *bollywood.Engine
	pid    *bollywood.PID
	logger *slog.Logger
}

// NewBroadcaster spawns a BroadcasterActor on engine.
func NewBroadcaster(engine *bollywood.Engine, sessions *Sessions, logger *slog.Logger) *Broadcaster {
	logger = utils.OrDefault(logger)
	pid := engine.Spawn(bollywood.NewProps(NewBroadcasterProducer(sessions, logger)))
	return &Broadcaster{engine: engine, pid: pid, logger: logger.With("component", "broadcaster")}
}

// PushSnapshot queues payload for delivery. If the broadcaster is behind,
// the frame is dropped; the next tick carries fresher state anyway.
func (b *Broadcaster) PushSnapshot(payload string) {
	if !b.engine.Send(b.pid, PushSnapshot{Payload: payload}, nil) {
		b.logger.Debug("snapshot dropped")
	}
}

// PID of the underlying actor.
func (b *Broadcaster) PID() *bollywood.PID { return b.pid }

// File: bollywood/engine.go
package bollywood

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const defaultMailboxSize = 1024

// Engine manages the lifecycle and message dispatching for actors.
type Engine struct {
	pidCounter  atomic.Uint64
	actors      map[string]*process
	mu          sync.RWMutex // Protects the actors map
	stopping    atomic.Bool
	mailboxSize int
	logger      *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for engine diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMailboxSize sets the default mailbox capacity for spawned actors.
func WithMailboxSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.mailboxSize = size
		}
	}
}

// NewEngine creates a new actor engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		actors:      make(map[string]*process),
		mailboxSize: defaultMailboxSize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "bollywood")
	return e
}

func (e *Engine) nextPID() *PID {
	id := e.pidCounter.Add(1)
	return &PID{ID: fmt.Sprintf("actor-%d", id)}
}

// Spawn creates and starts a new actor based on the provided Props.
// It returns nil if the engine is shutting down.
func (e *Engine) Spawn(props *Props) *PID {
	if e.stopping.Load() {
		e.logger.Warn("engine is stopping, refusing to spawn actor")
		return nil
	}

	size := props.mailboxSize
	if size <= 0 {
		size = e.mailboxSize
	}
	pid := e.nextPID()
	proc := newProcess(e, pid, props, size)

	e.mu.Lock()
	e.actors[pid.ID] = proc
	e.mu.Unlock()

	go proc.run()
	return pid
}

// Send delivers a message to the actor identified by pid without blocking.
// It reports whether the message was queued; messages to unknown actors,
// stopped actors or full mailboxes are dropped.
func (e *Engine) Send(pid *PID, message any, sender *PID) bool {
	if pid == nil {
		return false
	}
	if e.stopping.Load() && !isSystemMessage(message) {
		return false
	}

	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()

	if !ok {
		e.logger.Debug("actor not found, dropping message", "actor", pid.ID, "type", fmt.Sprintf("%T", message))
		return false
	}
	return proc.enqueue(message, sender)
}

// Stop asks an actor to stop. The actor receives Stopping and then Stopped,
// and is removed from the engine once its goroutine exits.
func (e *Engine) Stop(pid *PID) {
	if pid == nil {
		return
	}
	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()

	if ok {
		proc.signalStop()
	}
}

// Len returns the number of live actors.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.actors)
}

func (e *Engine) remove(pid *PID) {
	e.mu.Lock()
	delete(e.actors, pid.ID)
	e.mu.Unlock()
}

// Shutdown stops all actors and waits up to timeout for them to terminate.
func (e *Engine) Shutdown(timeout time.Duration) {
	if !e.stopping.CompareAndSwap(false, true) {
		return
	}

	e.mu.RLock()
	procs := make([]*process, 0, len(e.actors))
	for _, proc := range e.actors {
		procs = append(procs, proc)
	}
	e.mu.RUnlock()

	e.logger.Info("engine shutdown initiated", "actors", len(procs))
	for _, proc := range procs {
		proc.signalStop()
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if e.Len() == 0 {
			e.logger.Info("engine shutdown complete")
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	e.mu.Lock()
	remaining := make([]string, 0, len(e.actors))
	for id := range e.actors {
		remaining = append(remaining, id)
	}
	e.actors = make(map[string]*process)
	e.mu.Unlock()
	e.logger.Warn("engine shutdown timed out", "remaining", remaining)
}

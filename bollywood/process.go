// File: bollywood/process.go
package bollywood

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// process is the running instance of an actor: its mailbox and run loop.
type process struct {
	engine   *Engine
	pid      *PID
	props    *Props
	actor    Actor
	mailbox  chan envelope
	stopCh   chan struct{}
	stopOnce sync.Once
	stopped  atomic.Bool
}

func newProcess(engine *Engine, pid *PID, props *Props, mailboxSize int) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan envelope, mailboxSize),
		stopCh:  make(chan struct{}),
	}
}

// enqueue never blocks: a full mailbox drops the message.
func (p *process) enqueue(message any, sender *PID) bool {
	if p.stopped.Load() && !isSystemMessage(message) {
		return false
	}
	if _, ok := message.(Stopping); ok {
		p.signalStop()
		return true
	}

	select {
	case p.mailbox <- envelope{sender: sender, message: message}:
		return true
	default:
		p.engine.logger.Debug("mailbox full, dropping message", "actor", p.pid.ID, "type", fmt.Sprintf("%T", message))
		return false
	}
}

func (p *process) signalStop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

func (p *process) run() {
	defer p.engine.remove(p.pid)

	p.actor = p.props.Produce()
	if p.actor == nil {
		p.engine.logger.Error("producer returned nil actor", "actor", p.pid.ID)
		p.stopped.Store(true)
		return
	}

	p.invoke(Started{}, nil)

	for {
		// Stop takes priority over pending mail.
		select {
		case <-p.stopCh:
			p.finish()
			return
		default:
		}

		select {
		case <-p.stopCh:
			p.finish()
			return
		case env := <-p.mailbox:
			p.invoke(env.message, env.sender)
		}
	}
}

func (p *process) finish() {
	p.stopped.Store(true)
	p.invoke(Stopping{}, nil)
	p.invoke(Stopped{}, nil)
}

// invoke calls Receive, recovering panics so one bad message does not kill the actor.
func (p *process) invoke(message any, sender *PID) {
	defer func() {
		if r := recover(); r != nil {
			p.engine.logger.Error("actor panicked during Receive",
				"actor", p.pid.ID,
				"type", fmt.Sprintf("%T", message),
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	p.actor.Receive(&context{
		engine:  p.engine,
		self:    p.pid,
		sender:  sender,
		message: message,
	})
}

// File: game/game.go
package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/lguibr/fruitfall/bollywood"
	"github.com/lguibr/fruitfall/utils"
)

// Game wires the world, session registry, clock, broadcaster and interaction
// handler together and exposes the three transport callbacks.
type Game struct {
	cfg         utils.Config
	logger      *slog.Logger
	world       *World
	sessions    *Sessions
	clock       *Clock
	broadcaster *Broadcaster
	interaction *Interaction

	// lifetime scopes the clock; it ends on Close, never with a request.
	lifetime context.Context
	cancel   context.CancelFunc
}

// Option customises a Game.
type Option func(*options)

type options struct {
	rng Rand
}

// WithRand sets the world's random source, for deterministic spawns.
func WithRand(rng Rand) Option {
	return func(o *options) { o.rng = rng }
}

// New builds a Game. The clock is not started until the first Connect.
func New(cfg utils.Config, engine *bollywood.Engine, logger *slog.Logger, opts ...Option) *Game {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger = utils.OrDefault(logger)

	world := NewWorld(cfg, o.rng, logger)
	sessions := NewSessions()
	broadcaster := NewBroadcaster(engine, sessions, logger)
	lifetime, cancel := context.WithCancel(context.Background())

	return &Game{
		cfg:         cfg,
		logger:      logger.With("component", "game"),
		world:       world,
		sessions:    sessions,
		clock:       NewClock(world, broadcaster, cfg.TickPeriod, logger),
		broadcaster: broadcaster,
		interaction: NewInteraction(world, sessions, logger),
		lifetime:    lifetime,
		cancel:      cancel,
	}
}

// Connect registers s, greets it and makes sure the clock is running.
// A session that is already registered is left untouched.
func (g *Game) Connect(s Session) {
	// The welcome goes out under the registry lock, so it precedes any
	// snapshot and a duplicate connect never greets twice.
	registered := g.sessions.RegisterWith(s, func(s Session) {
		if err := s.Send(WelcomeMessage); err != nil {
			g.logger.Warn("failed to send welcome", "session", s.ID(), "error", err)
		}
	})
	if !registered {
		g.logger.Warn("duplicate connect ignored", "session", s.ID())
		return
	}
	g.logger.Info("session connected", "session", s.ID(), "sessions", g.sessions.Len())
	if g.clock.Start(g.lifetime) {
		g.logger.Info("first connection, clock running")
	}
}

// Message handles one inbound frame from s.
func (g *Game) Message(s Session, text string) {
	g.interaction.Handle(s, text)
}

// Disconnect forgets s. The transport must call it when the connection closes.
func (g *Game) Disconnect(s Session) {
	if g.sessions.Unregister(s) {
		g.logger.Info("session disconnected", "session", s.ID(), "sessions", g.sessions.Len())
	}
}

// State returns a point-in-time view for the HTTP state endpoint.
func (g *Game) State() State {
	return State{
		Objects:  g.world.Objects(),
		Sessions: g.sessions.Len(),
		Running:  g.clock.Running(),
		Ticks:    g.clock.Ticks(),
	}
}

// Close stops the clock and waits up to timeout for its loop to exit.
func (g *Game) Close(timeout time.Duration) {
	g.cancel()
	if !g.clock.Running() {
		return
	}
	select {
	case <-g.clock.Done():
	case <-time.After(timeout):
		g.logger.Warn("clock did not stop in time", "timeout", timeout)
	}
}

func (g *Game) World() *World       { return g.world }
func (g *Game) Sessions() *Sessions { return g.sessions }
func (g *Game) Clock() *Clock       { return g.clock }

// File: game/interaction.go
package game

import (
	"errors"
	"log/slog"

	"github.com/lguibr/fruitfall/utils"
)

// Interaction applies client commands to the shared world and the sender's score.
type Interaction struct {
	world    *World
	sessions *Sessions
	logger   *slog.Logger
}

func NewInteraction(world *World, sessions *Sessions, logger *slog.Logger) *Interaction {
	return &Interaction{
		world:    world,
		sessions: sessions,
		logger:   utils.OrDefault(logger).With("component", "interaction"),
	}
}

// Handle parses and applies one inbound frame from s. Failures never reach
// the client: malformed frames, misses and unknown sessions are dropped.
func (i *Interaction) Handle(s Session, text string) {
	cmd, err := ParseCommand(text)
	if err != nil {
		i.logger.Warn("ignoring malformed message", "session", s.ID(), "error", err)
		return
	}
	i.Apply(s, cmd)
}

// Apply executes an already parsed command on behalf of s.
func (i *Interaction) Apply(s Session, cmd Command) {
	switch cmd.Kind {
	case CommandReplay:
		i.replay(s)
	case CommandPenalty, CommandReward:
		i.hit(s, cmd)
	}
}

// replay resets the caller's score and clears the world for everyone.
func (i *Interaction) replay(s Session) {
	if err := i.sessions.ResetScore(s); err != nil {
		i.logger.Warn("dropping replay", "session", s.ID(), "error", err)
		return
	}
	i.world.Reset()
	i.logger.Info("world reset by replay", "session", s.ID())
	i.send(s, ScoreMessage(0))
}

func (i *Interaction) hit(s Session, cmd Command) {
	if !i.sessions.Contains(s) {
		i.logger.Debug("ignoring hit from unregistered session", "session", s.ID())
		return
	}
	removed, ok := i.world.Remove(cmd.X, cmd.Y)
	if !ok {
		return
	}
	score, err := i.sessions.AdjustScore(s, cmd.ScoreDelta())
	if err != nil {
		if errors.Is(err, ErrUnknownSession) {
			i.logger.Debug("dropping score update for departed session", "session", s.ID())
		}
		return
	}
	i.logger.Debug("object hit",
		"session", s.ID(),
		"command", cmd.Kind,
		"object", removed.ID,
		"kind", removed.Kind,
		"score", score)
	i.send(s, ScoreMessage(score))
}

func (i *Interaction) send(s Session, payload string) {
	if err := s.Send(payload); err != nil {
		i.logger.Warn("failed to send reply", "session", s.ID(), "error", err)
	}
}

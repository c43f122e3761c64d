// File: game/command.go
package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Wire strings exchanged with clients.
const (
	WelcomeMessage      = "Welcome to the Fruit Game!"
	ScorePrefix         = "Score: "
	ReplayCommand       = "Replay"
	LegacyReplayCommand = "Rejouer"
	RemoveScorePrefix   = "RemoveScore,"
)

// ErrMalformedCommand wraps every inbound payload that does not match the grammar.
var ErrMalformedCommand = errors.New("malformed command")

// CommandKind identifies what a client asked for.
type CommandKind int

const (
	CommandReplay  CommandKind = iota // reset own score, clear the world
	CommandPenalty                    // "RemoveScore,x,y": hit a penalty object
	CommandReward                     // "x,y": hit a reward object
)

func (k CommandKind) String() string {
	switch k {
	case CommandReplay:
		return "replay"
	case CommandPenalty:
		return "penalty"
	case CommandReward:
		return "reward"
	}
	return fmt.Sprintf("command(%d)", int(k))
}

// Command is a parsed inbound message.
type Command struct {
	Kind CommandKind
	X, Y int
}

// ScoreDelta is the score change a successful hit of this command applies.
func (c Command) ScoreDelta() int {
	switch c.Kind {
	case CommandPenalty:
		return -1
	case CommandReward:
		return 1
	}
	return 0
}

// ParseCommand decodes one inbound text frame. The grammar is exact:
// surrounding whitespace makes a frame malformed.
func ParseCommand(text string) (Command, error) {
	switch {
	case text == ReplayCommand || text == LegacyReplayCommand:
		return Command{Kind: CommandReplay}, nil
	case strings.HasPrefix(text, RemoveScorePrefix):
		x, y, err := parseCoordinates(strings.TrimPrefix(text, RemoveScorePrefix))
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandPenalty, X: x, Y: y}, nil
	default:
		x, y, err := parseCoordinates(text)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandReward, X: x, Y: y}, nil
	}
}

func parseCoordinates(s string) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: want 2 coordinates, got %d fields in %q", ErrMalformedCommand, len(parts), s)
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: x coordinate %q", ErrMalformedCommand, parts[0])
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: y coordinate %q", ErrMalformedCommand, parts[1])
	}
	return x, y, nil
}

// ScoreMessage formats the outbound score frame.
func ScoreMessage(score int) string {
	return ScorePrefix + strconv.Itoa(score)
}

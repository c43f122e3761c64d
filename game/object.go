// File: game/object.go
package game

import "fmt"

// Kind distinguishes objects that add to a score from objects that take away.
type Kind int

const (
	Reward Kind = iota
	Penalty
)

// PenaltyMarker is the glyph that tags penalty objects in a snapshot.
const PenaltyMarker = "💩"

func (k Kind) String() string {
	switch k {
	case Reward:
		return "reward"
	case Penalty:
		return "penalty"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Marker is the snapshot marker for k: empty for rewards.
func (k Kind) Marker() string {
	if k == Penalty {
		return PenaltyMarker
	}
	return ""
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "reward":
		*k = Reward
	case "penalty":
		*k = Penalty
	default:
		return fmt.Errorf("unknown object kind %q", text)
	}
	return nil
}

// Object is one falling object in the shared world.
type Object struct {
	ID   int64 `json:"id"`
	X    int   `json:"x"`
	Y    int   `json:"y"`
	Kind Kind  `json:"kind"`
}

// File: game/messages.go
package game

// --- Actor Messages ---

// PushSnapshot asks the BroadcasterActor to deliver Payload to every
// registered session.
type PushSnapshot struct {
	Payload string
}

// --- HTTP State ---

// State is the JSON view of the game served over HTTP.
type State struct {
	Objects  []Object `json:"objects"`
	Sessions int      `json:"sessions"`
	Running  bool     `json:"running"`
	Ticks    uint64   `json:"ticks"`
}

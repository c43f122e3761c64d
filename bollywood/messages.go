// File: bollywood/messages.go
package bollywood

// Started is delivered to an actor before any user message.
type Started struct{}

// Stopping is delivered once when the actor is asked to stop. No user
// messages are delivered after it.
type Stopping struct{}

// Stopped is the final message an actor receives.
type Stopped struct{}

type envelope struct {
	sender  *PID
	message any
}

func isSystemMessage(msg any) bool {
	switch msg.(type) {
	case Started, Stopping, Stopped:
		return true
	}
	return false
}

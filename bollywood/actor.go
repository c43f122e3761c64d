// File: bollywood/actor.go
package bollywood

// Actor is the interface that defines actor behavior.
// Actors process messages from their mailbox one at a time, so state owned by
// an actor needs no locking as long as only Receive touches it.
type Actor interface {
	Receive(ctx Context)
}

// ActorFunc adapts a plain function to the Actor interface.
type ActorFunc func(ctx Context)

// Receive calls f(ctx).
func (f ActorFunc) Receive(ctx Context) { f(ctx) }

// Producer is a function that creates a new instance of an Actor.
type Producer func() Actor

// Props is a configuration object used to create actors.
type Props struct {
	producer    Producer
	mailboxSize int
}

// NewProps creates a new Props object with the given actor producer.
func NewProps(producer Producer) *Props {
	if producer == nil {
		panic("bollywood: producer cannot be nil")
	}
	return &Props{producer: producer}
}

// WithMailboxSize overrides the engine's default mailbox capacity for actors
// spawned from these props.
func (p *Props) WithMailboxSize(size int) *Props {
	p.mailboxSize = size
	return p
}

// Produce creates a new actor instance using the configured producer.
func (p *Props) Produce() Actor {
	return p.producer()
}

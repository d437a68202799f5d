// Package events provides a small typed publish/subscribe bus used to
// notify cross-cutting listeners (logging, metrics, the knowledge system)
// of turn and combat boundaries without those packages importing each
// other directly. Grounded on events/bus.go's Subscribe/Publish shape, but
// simplified from its reflection-based handler dispatch to a single
// generic Bus[T] per event type — this engine has a small, fixed set of
// event shapes, so the flexibility reflection buys the teacher's bus isn't
// needed here.
package events

import "sync"

// Handler receives one published event of type T.
type Handler[T any] func(T)

// Bus is a thread-safe publish/subscribe channel for a single event type.
type Bus[T any] struct {
	mu       sync.RWMutex
	handlers map[int]Handler[T]
	nextID   int
}

// NewBus creates an empty Bus for event type T.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{handlers: make(map[int]Handler[T])}
}

// Subscribe registers h and returns a token usable with Unsubscribe.
func (b *Bus[T]) Subscribe(h Handler[T]) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	return id
}

// Unsubscribe removes the handler registered under id.
func (b *Bus[T]) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handlers, id)
}

// Publish calls every subscribed handler with evt, in unspecified order.
// Handlers run synchronously on the publishing goroutine; a handler that
// needs to defer work must do so itself.
func (b *Bus[T]) Publish(evt T) {
	b.mu.RLock()
	handlers := make([]Handler[T], 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(evt)
	}
}

// TurnBoundary identifies which edge of a turn an event marks.
type TurnBoundary string

const (
	TurnStart TurnBoundary = "turn_start"
	TurnEnd   TurnBoundary = "turn_end"
	RoundEnd  TurnBoundary = "round_end"
)

// TurnEvent is published at each turn/round boundary the turn controller
// advances through (§4.9).
type TurnEvent struct {
	Boundary TurnBoundary
	EntityID string
	Round    int
}

// AttackEvent is published once an attack has fully resolved (§4.1), after
// damage and rider effects have been applied, so listeners (knowledge,
// metrics, logging) see a consistent final state.
type AttackEvent struct {
	AttackerID string
	DefenderID string
	Hit        bool
	Critical   bool
	Fumble     bool
	DamageDealt int
	DefenderDied bool
}

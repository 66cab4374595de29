package game

import (
	"time"

	"github.com/lox/blackjacktrainer/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeShoeBuilt    EventType = "shoe_built"
	EventTypePhaseChange  EventType = "phase_change"
	EventTypeCardDealt    EventType = "card_dealt"
	EventTypeHoleRevealed EventType = "hole_revealed"
	EventTypeRoundSettled EventType = "round_settled"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during play. Dealing emits one
// CardDealtEvent per discrete reveal step, in draw order, so a presentation
// layer can pace the animation however it likes without affecting state.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// ShoeBuiltEvent is published when a fresh shoe is shuffled and verified.
type ShoeBuiltEvent struct {
	NumDecks  int
	Cards     int
	timestamp time.Time
}

func (e ShoeBuiltEvent) EventType() EventType { return EventTypeShoeBuilt }
func (e ShoeBuiltEvent) Timestamp() time.Time { return e.timestamp }

// PhaseChangeEvent is published when the round transitions between phases.
type PhaseChangeEvent struct {
	From      Phase
	To        Phase
	Message   string
	timestamp time.Time
}

func (e PhaseChangeEvent) EventType() EventType { return EventTypePhaseChange }
func (e PhaseChangeEvent) Timestamp() time.Time { return e.timestamp }

// CardDealtEvent is published for every card reveal: player hands, the
// dealer up-card, and dealer draws. The face-down hole card is not a reveal
// and gets a HoleRevealedEvent later instead.
type CardDealtEvent struct {
	Card      deck.Card
	Spot      int // -1 for the dealer
	Hand      int
	FaceDown  bool // the dealer hole card, dealt but not yet revealed
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// HoleRevealedEvent is published when the dealer's hole card turns over,
// either at dealer turn or early on a dealer natural.
type HoleRevealedEvent struct {
	Card      deck.Card
	timestamp time.Time
}

func (e HoleRevealedEvent) EventType() EventType { return EventTypeHoleRevealed }
func (e HoleRevealedEvent) Timestamp() time.Time { return e.timestamp }

// RoundSettledEvent is published after settlement with the money movement
// for the round.
type RoundSettledEvent struct {
	Wagered   int
	Payout    int
	Outcome   OutcomeSummary
	timestamp time.Time
}

func (e RoundSettledEvent) EventType() EventType { return EventTypeRoundSettled }
func (e RoundSettledEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic synchronous in-memory event bus. Events are
// delivered in publish order before the publishing transition returns.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{subscribers: make([]EventSubscriber, 0)}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

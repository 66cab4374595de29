// Package count implements the Hi-Lo running count and its history log.
//
// The count tracks every card that becomes visible to the player, including
// the dealer's hole card at the moment it is revealed. It resets when a new
// shoe is built, not between rounds.
package count

import (
	"time"

	"github.com/coder/quartz"
	"github.com/lox/blackjacktrainer/internal/deck"
)

// HiLoValue returns the Hi-Lo value of a card: +1 for 2-6, 0 for 7-9,
// -1 for tens and Aces.
func HiLoValue(card deck.Card) int {
	return card.HiLo()
}

// DecksRemaining converts a card count to fractional decks.
func DecksRemaining(cardsRemaining int) float64 {
	return float64(cardsRemaining) / 52
}

// TrueCount normalises the running count by decks remaining.
func TrueCount(runningCount int, decksRemaining float64) float64 {
	if decksRemaining <= 0 {
		return 0
	}
	return float64(runningCount) / decksRemaining
}

// Entry records a single counted card and the running count after it.
type Entry struct {
	Card      deck.Card `json:"card"`
	Delta     int       `json:"delta"`
	Running   int       `json:"running"`
	Timestamp time.Time `json:"timestamp"`
}

// Counter accumulates the running count with an append-only history.
type Counter struct {
	clock   quartz.Clock
	running int
	history []Entry
}

// NewCounter creates a counter. A nil clock uses the real clock; tests pass
// a quartz mock for deterministic timestamps.
func NewCounter(clock quartz.Clock) *Counter {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Counter{clock: clock}
}

// Record counts a newly visible card and appends a history entry.
// Must be called exactly once per card reveal.
func (c *Counter) Record(card deck.Card) Entry {
	delta := HiLoValue(card)
	c.running += delta
	entry := Entry{
		Card:      card,
		Delta:     delta,
		Running:   c.running,
		Timestamp: c.clock.Now(),
	}
	c.history = append(c.history, entry)
	return entry
}

// Running returns the current running count.
func (c *Counter) Running() int {
	return c.running
}

// History returns a copy of the count history in record order.
func (c *Counter) History() []Entry {
	history := make([]Entry, len(c.history))
	copy(history, c.history)
	return history
}

// Reset clears the running count and history for a fresh shoe.
func (c *Counter) Reset() {
	c.running = 0
	c.history = nil
}

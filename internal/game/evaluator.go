package game

import (
	"fmt"

	"github.com/lox/blackjacktrainer/internal/deck"
)

// HandValue returns the best blackjack value of a set of cards. Aces start
// at 11 and are demoted to 1 one at a time while the total exceeds 21.
func HandValue(cards []deck.Card) int {
	value := 0
	aces := 0
	for _, c := range cards {
		value += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value
}

// HandInfo is the richer evaluation used for display and strategy:
// it distinguishes hard and soft totals.
type HandInfo struct {
	Display string
	Value   int
	IsBust  bool
	IsSoft  bool
}

// EvaluateHand computes display-oriented hand information. A soft hand
// (one Ace counted as 11 without busting) shows both totals, e.g. "17 / 7".
func EvaluateHand(cards []deck.Card) HandInfo {
	if len(cards) == 0 {
		return HandInfo{Display: "0"}
	}

	valueWithoutAces := 0
	aceCount := 0
	for _, c := range cards {
		if c.IsAce() {
			aceCount++
		} else {
			valueWithoutAces += c.Value()
		}
	}

	if aceCount == 0 {
		total := valueWithoutAces
		return HandInfo{
			Display: fmt.Sprintf("%d", total),
			Value:   total,
			IsBust:  total > 21,
		}
	}

	hardTotal := valueWithoutAces + aceCount
	softTotal := valueWithoutAces + 11 + (aceCount - 1)

	if softTotal <= 21 {
		return HandInfo{
			Display: fmt.Sprintf("%d / %d", softTotal, hardTotal),
			Value:   softTotal,
			IsSoft:  true,
		}
	}
	return HandInfo{
		Display: fmt.Sprintf("%d", hardTotal),
		Value:   hardTotal,
		IsBust:  hardTotal > 21,
	}
}

// IsSoft returns true if the hand contains an Ace countable as 11 without
// busting.
func IsSoft(cards []deck.Card) bool {
	value := 0
	aces := 0
	for _, c := range cards {
		if c.IsAce() {
			aces++
		} else {
			value += c.Value()
		}
	}
	return aces > 0 && value+11 <= 21
}

// IsPair returns true for exactly two cards of equal rank. Ten-value cards
// (10, J, Q, K) are treated as equal, so K-10 is a pair for splitting.
func IsPair(cards []deck.Card) bool {
	if len(cards) != 2 {
		return false
	}
	if cards[0].Rank == cards[1].Rank {
		return true
	}
	return cards[0].IsTenValue() && cards[1].IsTenValue()
}

// CanSplit reports structural split eligibility. Bankroll and hand-count
// constraints are layered on by the round, not here.
func CanSplit(cards []deck.Card) bool {
	return IsPair(cards)
}

package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Value returns the blackjack value of the card.
// Face cards count 10, Aces count 11 here; demoting an Ace to 1 is the
// hand evaluator's job, not the card's.
func (c Card) Value() int {
	switch {
	case c.Rank >= Jack && c.Rank <= King:
		return 10
	case c.Rank == Ace:
		return 11
	default:
		return int(c.Rank)
	}
}

// HiLo returns the Hi-Lo count value of the card: +1 for 2-6, 0 for 7-9,
// -1 for tens and Aces.
func (c Card) HiLo() int {
	switch {
	case c.Rank >= Two && c.Rank <= Six:
		return 1
	case c.Rank >= Seven && c.Rank <= Nine:
		return 0
	default:
		return -1
	}
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// IsTenValue returns true if the card counts as ten (10, J, Q, K).
// Any two ten-value cards form a splittable pair even with unequal ranks.
func (c Card) IsTenValue() bool {
	return c.Rank >= Ten && c.Rank <= King
}

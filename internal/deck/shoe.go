package deck

import (
	"errors"

	rand "math/rand/v2"
)

// ErrShoeEmpty is returned by Draw when no cards remain.
var ErrShoeEmpty = errors.New("shoe is empty")

// BuildDeck returns the 52 canonical cards, one of each rank and suit.
func BuildDeck() []Card {
	cards := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// BuildShoe concatenates numDecks standard decks. Any positive count is
// accepted; callers validate against the table's allowed deck counts.
func BuildShoe(numDecks int) []Card {
	cards := make([]Card, 0, numDecks*52)
	for i := 0; i < numDecks; i++ {
		cards = append(cards, BuildDeck()...)
	}
	return cards
}

// Shuffle returns a uniformly shuffled copy of cards using Fisher-Yates.
// The input slice is not mutated.
func Shuffle(rng *rand.Rand, cards []Card) []Card {
	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Shoe is the drawable stack of one or more combined decks. Cards are drawn
// from the tail; only dealing mutates it.
type Shoe struct {
	cards []Card
}

// NewShoe wraps an ordered card sequence as a drawable shoe.
func NewShoe(cards []Card) *Shoe {
	return &Shoe{cards: cards}
}

// Draw removes and returns the card at the top of the shoe.
func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrShoeEmpty
	}
	card := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return card, nil
}

// Remaining returns the number of cards left in the shoe.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// CheckIntegrity verifies that the Hi-Lo values of all cards sum to zero.
// A freshly built shoe is balanced per deck (20 low, 12 neutral, 20 high),
// so a non-zero sum means the shoe was built or shuffled incorrectly.
func (s *Shoe) CheckIntegrity() bool {
	sum := 0
	for _, c := range s.cards {
		sum += c.HiLo()
	}
	return sum == 0
}

package strategy

import (
	"testing"

	"github.com/lox/blackjacktrainer/internal/deck"
)

func hand(ranks ...deck.Rank) []deck.Card {
	suits := []deck.Suit{deck.Spades, deck.Hearts, deck.Diamonds, deck.Clubs}
	cards := make([]deck.Card, len(ranks))
	for i, rank := range ranks {
		cards[i] = deck.NewCard(suits[i%len(suits)], rank)
	}
	return cards
}

func up(rank deck.Rank) deck.Card {
	return deck.NewCard(deck.Clubs, rank)
}

func TestRecommendPairs(t *testing.T) {
	tests := []struct {
		name     string
		player   []deck.Card
		dealer   deck.Card
		expected Action
	}{
		{"aces always split", hand(deck.Ace, deck.Ace), up(deck.Ten), Split},
		{"eights always split", hand(deck.Eight, deck.Eight), up(deck.Ten), Split},
		{"eights split against ace", hand(deck.Eight, deck.Eight), up(deck.Ace), Split},
		{"tens never split", hand(deck.Ten, deck.Ten), up(deck.Six), Stand},
		{"king ten never split", hand(deck.King, deck.Ten), up(deck.Six), Stand},
		{"fives play as hard ten", hand(deck.Five, deck.Five), up(deck.Six), DoubleDown},
		{"fives hit against ten", hand(deck.Five, deck.Five), up(deck.Ten), Hit},
		{"nines split against six", hand(deck.Nine, deck.Nine), up(deck.Six), Split},
		{"nines stand against seven", hand(deck.Nine, deck.Nine), up(deck.Seven), Stand},
		{"nines split against nine", hand(deck.Nine, deck.Nine), up(deck.Nine), Split},
		{"sevens split against seven", hand(deck.Seven, deck.Seven), up(deck.Seven), Split},
		{"sevens hit against eight", hand(deck.Seven, deck.Seven), up(deck.Eight), Hit},
		{"sixes split against six", hand(deck.Six, deck.Six), up(deck.Six), Split},
		{"sixes hit against seven", hand(deck.Six, deck.Six), up(deck.Seven), Hit},
		{"fours split against five", hand(deck.Four, deck.Four), up(deck.Five), Split},
		{"fours hit against four", hand(deck.Four, deck.Four), up(deck.Four), Hit},
		{"twos split against seven", hand(deck.Two, deck.Two), up(deck.Seven), Split},
		{"threes hit against eight", hand(deck.Three, deck.Three), up(deck.Eight), Hit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Recommend(tt.player, tt.dealer); got != tt.expected {
				t.Errorf("Recommend() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestRecommendSoftTotals(t *testing.T) {
	tests := []struct {
		name     string
		player   []deck.Card
		dealer   deck.Card
		expected Action
	}{
		{"soft twenty stands", hand(deck.Ace, deck.Nine), up(deck.Six), Stand},
		{"soft nineteen doubles against six", hand(deck.Ace, deck.Eight), up(deck.Six), DoubleDown},
		{"soft nineteen stands against five", hand(deck.Ace, deck.Eight), up(deck.Five), Stand},
		{"soft eighteen doubles against six", hand(deck.Ace, deck.Seven), up(deck.Six), DoubleDown},
		{"soft eighteen stands against seven", hand(deck.Ace, deck.Seven), up(deck.Seven), Stand},
		{"soft eighteen stands against eight", hand(deck.Ace, deck.Seven), up(deck.Eight), Stand},
		{"soft eighteen hits against nine", hand(deck.Ace, deck.Seven), up(deck.Nine), Hit},
		{"soft eighteen hits against six with three cards", hand(deck.Ace, deck.Three, deck.Four), up(deck.Six), Hit},
		{"soft seventeen doubles against three", hand(deck.Ace, deck.Six), up(deck.Three), DoubleDown},
		{"soft seventeen hits against two", hand(deck.Ace, deck.Six), up(deck.Two), Hit},
		{"soft sixteen doubles against four", hand(deck.Ace, deck.Five), up(deck.Four), DoubleDown},
		{"soft fifteen hits against three", hand(deck.Ace, deck.Four), up(deck.Three), Hit},
		{"soft fourteen doubles against five", hand(deck.Ace, deck.Three), up(deck.Five), DoubleDown},
		{"soft thirteen hits against four", hand(deck.Ace, deck.Two), up(deck.Four), Hit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Recommend(tt.player, tt.dealer); got != tt.expected {
				t.Errorf("Recommend() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestRecommendHardTotals(t *testing.T) {
	tests := []struct {
		name     string
		player   []deck.Card
		dealer   deck.Card
		expected Action
	}{
		{"seventeen stands", hand(deck.Ten, deck.Seven), up(deck.Ace), Stand},
		{"sixteen stands against six", hand(deck.Ten, deck.Six), up(deck.Six), Stand},
		{"sixteen hits against seven", hand(deck.Ten, deck.Six), up(deck.Seven), Hit},
		{"thirteen stands against two", hand(deck.Ten, deck.Three), up(deck.Two), Stand},
		{"twelve stands against four", hand(deck.Ten, deck.Two), up(deck.Four), Stand},
		{"twelve hits against two", hand(deck.Ten, deck.Two), up(deck.Two), Hit},
		{"twelve hits against seven", hand(deck.Ten, deck.Two), up(deck.Seven), Hit},
		{"eleven doubles against ten", hand(deck.Six, deck.Five), up(deck.Ten), DoubleDown},
		{"eleven doubles against ace", hand(deck.Six, deck.Five), up(deck.Ace), DoubleDown},
		{"eleven with three cards hits", hand(deck.Two, deck.Four, deck.Five), up(deck.Six), Hit},
		{"ten doubles against nine", hand(deck.Six, deck.Four), up(deck.Nine), DoubleDown},
		{"ten hits against ten", hand(deck.Six, deck.Four), up(deck.Ten), Hit},
		{"nine doubles against four", hand(deck.Six, deck.Three), up(deck.Four), DoubleDown},
		{"nine hits against two", hand(deck.Six, deck.Three), up(deck.Two), Hit},
		{"eight hits", hand(deck.Five, deck.Three), up(deck.Six), Hit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Recommend(tt.player, tt.dealer); got != tt.expected {
				t.Errorf("Recommend() = %s, want %s", got, tt.expected)
			}
		})
	}
}

// Worked examples a table coach would quiz on.
func TestRecommendExamples(t *testing.T) {
	tests := []struct {
		name     string
		player   []deck.Card
		dealer   deck.Card
		expected Action
	}{
		{"A8 against 6 before any hit", hand(deck.Ace, deck.Eight), up(deck.Six), DoubleDown},
		{"88 against 10", hand(deck.Eight, deck.Eight), up(deck.Ten), Split},
		{"56 against 9", hand(deck.Five, deck.Six), up(deck.Nine), DoubleDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Recommend(tt.player, tt.dealer); got != tt.expected {
				t.Errorf("Recommend() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	if Hit.String() != "Hit" || Stand.String() != "Stand" {
		t.Error("unexpected action names")
	}
	if DoubleDown.String() != "Double Down" || Split.String() != "Split" {
		t.Error("unexpected action names")
	}
}

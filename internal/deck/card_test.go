package deck

import "testing"

func TestCardValue(t *testing.T) {
	tests := []struct {
		name     string
		card     Card
		expected int
	}{
		{"two", NewCard(Spades, Two), 2},
		{"nine", NewCard(Hearts, Nine), 9},
		{"ten", NewCard(Diamonds, Ten), 10},
		{"jack", NewCard(Clubs, Jack), 10},
		{"queen", NewCard(Spades, Queen), 10},
		{"king", NewCard(Hearts, King), 10},
		{"ace", NewCard(Diamonds, Ace), 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.card.Value(); got != tt.expected {
				t.Errorf("Value() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestCardHiLo(t *testing.T) {
	tests := []struct {
		name     string
		card     Card
		expected int
	}{
		{"two is low", NewCard(Spades, Two), 1},
		{"six is low", NewCard(Hearts, Six), 1},
		{"seven is neutral", NewCard(Diamonds, Seven), 0},
		{"nine is neutral", NewCard(Clubs, Nine), 0},
		{"ten is high", NewCard(Spades, Ten), -1},
		{"king is high", NewCard(Hearts, King), -1},
		{"ace is high", NewCard(Diamonds, Ace), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.card.HiLo(); got != tt.expected {
				t.Errorf("HiLo() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card     Card
		expected string
	}{
		{NewCard(Spades, Ace), "A♠"},
		{NewCard(Hearts, Ten), "10♥"},
		{NewCard(Diamonds, Queen), "Q♦"},
		{NewCard(Clubs, Two), "2♣"},
	}

	for _, tt := range tests {
		if got := tt.card.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestIsTenValue(t *testing.T) {
	for rank := Two; rank <= Ace; rank++ {
		card := NewCard(Spades, rank)
		want := rank >= Ten && rank <= King
		if got := card.IsTenValue(); got != want {
			t.Errorf("IsTenValue(%s) = %v, want %v", card, got, want)
		}
	}
}

func TestIsRed(t *testing.T) {
	if !NewCard(Hearts, Two).IsRed() {
		t.Error("hearts should be red")
	}
	if !NewCard(Diamonds, Two).IsRed() {
		t.Error("diamonds should be red")
	}
	if NewCard(Spades, Two).IsRed() {
		t.Error("spades should not be red")
	}
	if NewCard(Clubs, Two).IsRed() {
		t.Error("clubs should not be red")
	}
}

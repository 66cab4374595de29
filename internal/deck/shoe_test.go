package deck

import (
	"testing"

	"github.com/lox/blackjacktrainer/internal/randutil"
)

func TestBuildDeck(t *testing.T) {
	cards := BuildDeck()
	if len(cards) != 52 {
		t.Fatalf("expected 52 cards, got %d", len(cards))
	}

	seen := make(map[Card]bool)
	for _, c := range cards {
		if seen[c] {
			t.Errorf("duplicate card %s", c)
		}
		seen[c] = true
	}
}

func TestBuildDeckHiLoBalance(t *testing.T) {
	low, neutral, high := 0, 0, 0
	for _, c := range BuildDeck() {
		switch c.HiLo() {
		case 1:
			low++
		case 0:
			neutral++
		case -1:
			high++
		}
	}
	if low != 20 || neutral != 12 || high != 20 {
		t.Errorf("expected 20/12/20 low/neutral/high, got %d/%d/%d", low, neutral, high)
	}
}

func TestBuildShoe(t *testing.T) {
	for _, numDecks := range []int{1, 2, 6} {
		cards := BuildShoe(numDecks)
		if len(cards) != numDecks*52 {
			t.Errorf("BuildShoe(%d): expected %d cards, got %d", numDecks, numDecks*52, len(cards))
		}
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	original := BuildShoe(2)
	shuffled := Shuffle(randutil.New(42), original)

	if len(shuffled) != len(original) {
		t.Fatalf("shuffle changed length: %d != %d", len(shuffled), len(original))
	}

	counts := make(map[Card]int)
	for _, c := range original {
		counts[c]++
	}
	for _, c := range shuffled {
		counts[c]--
	}
	for card, n := range counts {
		if n != 0 {
			t.Errorf("card %s count off by %d after shuffle", card, n)
		}
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	original := BuildDeck()
	before := make([]Card, len(original))
	copy(before, original)

	Shuffle(randutil.New(1), original)

	for i := range original {
		if original[i] != before[i] {
			t.Fatalf("input mutated at index %d", i)
		}
	}
}

func TestShuffleDeterministicWithSeed(t *testing.T) {
	a := Shuffle(randutil.New(7), BuildShoe(2))
	b := Shuffle(randutil.New(7), BuildShoe(2))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different orders at index %d", i)
		}
	}
}

func TestShoeDraw(t *testing.T) {
	cards := []Card{
		NewCard(Spades, Two),
		NewCard(Hearts, Three),
		NewCard(Diamonds, Four),
	}
	shoe := NewShoe(cards)

	// Draws come from the tail.
	expected := []Card{
		NewCard(Diamonds, Four),
		NewCard(Hearts, Three),
		NewCard(Spades, Two),
	}
	for i, want := range expected {
		card, err := shoe.Draw()
		if err != nil {
			t.Fatalf("draw %d: unexpected error: %v", i, err)
		}
		if card != want {
			t.Errorf("draw %d: got %s, want %s", i, card, want)
		}
	}

	if shoe.Remaining() != 0 {
		t.Errorf("expected empty shoe, %d remaining", shoe.Remaining())
	}
	if _, err := shoe.Draw(); err != ErrShoeEmpty {
		t.Errorf("expected ErrShoeEmpty, got %v", err)
	}
}

func TestCheckIntegrity(t *testing.T) {
	shoe := NewShoe(Shuffle(randutil.New(3), BuildShoe(6)))
	if !shoe.CheckIntegrity() {
		t.Error("fresh shuffled shoe should pass integrity check")
	}

	// Removing a single low card unbalances the count.
	unbalanced := BuildDeck()[1:]
	if NewShoe(unbalanced).CheckIntegrity() {
		t.Error("shoe missing a low card should fail integrity check")
	}
}

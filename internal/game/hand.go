package game

import "github.com/lox/blackjacktrainer/internal/deck"

// HandStatus tracks how a hand finished its turn, or StatusOpen if it can
// still act.
type HandStatus int

const (
	StatusOpen HandStatus = iota
	StatusStanding
	StatusBusted
	StatusBlackjack
	StatusDoubled
)

// String returns the string representation of a hand status
func (s HandStatus) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusStanding:
		return "standing"
	case StatusBusted:
		return "busted"
	case StatusBlackjack:
		return "blackjack"
	case StatusDoubled:
		return "doubled"
	default:
		return "?"
	}
}

// HandResult is the settlement outcome of a hand. It is set only at
// settlement, except for immediate losses (busts, dealer naturals) and
// naturals, which are known earlier.
type HandResult int

const (
	ResultUnset HandResult = iota
	ResultWin
	ResultLose
	ResultPush
	ResultBlackjack
)

// String returns the string representation of a hand result
func (r HandResult) String() string {
	switch r {
	case ResultUnset:
		return ""
	case ResultWin:
		return "win"
	case ResultLose:
		return "lose"
	case ResultPush:
		return "push"
	case ResultBlackjack:
		return "blackjack"
	default:
		return "?"
	}
}

// Hand is one player hand with its bet. A spot owns up to MaxHandsPerSpot
// hands via splitting; a split hand inherits the original bet amount and
// one of the original cards.
type Hand struct {
	Cards  []deck.Card
	Bet    int
	Status HandStatus
	Result HandResult
}

// NewHand creates an open hand carrying the given bet.
func NewHand(bet int) *Hand {
	return &Hand{Bet: bet}
}

// Value returns the best blackjack value of the hand.
func (h *Hand) Value() int {
	return HandValue(h.Cards)
}

// Info returns the display-oriented evaluation of the hand.
func (h *Hand) Info() HandInfo {
	return EvaluateHand(h.Cards)
}

// IsComplete returns true once the hand can take no further action.
func (h *Hand) IsComplete() bool {
	return h.Status != StatusOpen
}

// IsBlackjack returns true for a two-card 21.
func (h *Hand) IsBlackjack() bool {
	return len(h.Cards) == 2 && h.Value() == 21
}

// Payout returns the settlement credit for the hand given its result:
// 2x the bet for a win, 2.5x for a natural, the bet back on a push.
func (h *Hand) Payout() int {
	switch h.Result {
	case ResultWin:
		return h.Bet * 2
	case ResultBlackjack:
		return h.Bet * 5 / 2
	case ResultPush:
		return h.Bet
	default:
		return 0
	}
}

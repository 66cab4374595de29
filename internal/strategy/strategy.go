// Package strategy implements a basic-strategy advisor for a table where
// the dealer stands on all 17s, blackjack pays 3:2 and there is no
// surrender or insurance.
package strategy

import (
	"github.com/lox/blackjacktrainer/internal/deck"
	"github.com/lox/blackjacktrainer/internal/game"
)

// Action is a recommended player move.
type Action int

const (
	Hit Action = iota
	Stand
	DoubleDown
	Split
)

// String returns the display name of the action
func (a Action) String() string {
	switch a {
	case Hit:
		return "Hit"
	case Stand:
		return "Stand"
	case DoubleDown:
		return "Double Down"
	case Split:
		return "Split"
	default:
		return "?"
	}
}

// Recommend returns the basic-strategy move for a player hand against a
// dealer up-card. Pure and deterministic: pairs are checked first, then
// soft totals, then hard totals. The dealer up-card is valued with Ace as
// 11; the thresholds below account for that.
func Recommend(playerCards []deck.Card, dealerUpCard deck.Card) Action {
	playerValue := game.HandValue(playerCards)
	dealerValue := dealerUpCard.Value()
	twoCards := len(playerCards) == 2

	if twoCards && game.IsPair(playerCards) {
		pairValue := playerCards[0].Value()

		switch pairValue {
		case 11, 8: // Aces and 8s: always split
			return Split
		case 10: // never split tens
			return Stand
		case 5: // never split 5s, play as hard 10
			if dealerValue >= 2 && dealerValue <= 9 {
				return DoubleDown
			}
			return Hit
		case 9:
			if (dealerValue >= 2 && dealerValue <= 6) || dealerValue == 8 || dealerValue == 9 {
				return Split
			}
			return Stand
		case 7:
			if dealerValue >= 2 && dealerValue <= 7 {
				return Split
			}
			return Hit
		case 6:
			if dealerValue >= 2 && dealerValue <= 6 {
				return Split
			}
			return Hit
		case 4:
			if dealerValue == 5 || dealerValue == 6 {
				return Split
			}
			return Hit
		case 2, 3:
			if dealerValue >= 2 && dealerValue <= 7 {
				return Split
			}
			return Hit
		}
	}

	if game.IsSoft(playerCards) {
		switch playerValue {
		case 20:
			return Stand
		case 19:
			if dealerValue == 6 && twoCards {
				return DoubleDown
			}
			return Stand
		case 18:
			if dealerValue >= 2 && dealerValue <= 6 && twoCards {
				return DoubleDown
			}
			if dealerValue == 7 || dealerValue == 8 {
				return Stand
			}
			return Hit
		case 17:
			if dealerValue >= 3 && dealerValue <= 6 && twoCards {
				return DoubleDown
			}
			return Hit
		case 16, 15:
			if dealerValue >= 4 && dealerValue <= 6 && twoCards {
				return DoubleDown
			}
			return Hit
		case 14, 13:
			if dealerValue == 5 || (dealerValue == 6 && twoCards) {
				return DoubleDown
			}
			return Hit
		}
	}

	switch {
	case playerValue >= 17:
		return Stand
	case playerValue >= 13: // 13-16: stand against a weak dealer
		if dealerValue >= 2 && dealerValue <= 6 {
			return Stand
		}
		return Hit
	case playerValue == 12:
		if dealerValue >= 4 && dealerValue <= 6 {
			return Stand
		}
		return Hit
	case playerValue == 11:
		if twoCards {
			return DoubleDown
		}
		return Hit
	case playerValue == 10:
		if dealerValue >= 2 && dealerValue <= 9 && twoCards {
			return DoubleDown
		}
		return Hit
	case playerValue == 9:
		if dealerValue >= 3 && dealerValue <= 6 && twoCards {
			return DoubleDown
		}
		return Hit
	default: // 8 or less
		return Hit
	}
}

package game

import "errors"

// Core error taxonomy. All of these are recoverable at the session level
// except ErrShoeIntegrity, which forces the shoe to be rebuilt. A rejected
// action must leave bankroll, hands and count state unchanged.
var (
	// ErrInvalidBet is returned for bets that are non-positive or exceed
	// the bankroll. No state is mutated.
	ErrInvalidBet = errors.New("invalid bet")

	// ErrInsufficientShoe means the shoe cannot cover a full round of
	// dealing. The round aborts to Complete rather than exhausting mid-deal.
	ErrInsufficientShoe = errors.New("not enough cards remaining to deal")

	// ErrShoeIntegrity means a freshly shuffled shoe failed the Hi-Lo
	// balance check. The shoe is unplayable and must be rebuilt.
	ErrShoeIntegrity = errors.New("shoe failed integrity check")

	// ErrIllegalAction covers split/double/hit/stand attempts that are not
	// allowed in the current state (wrong phase, wrong card count,
	// insufficient funds, max splits reached). Non-fatal, no mutation.
	ErrIllegalAction = errors.New("action not allowed")
)

package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjacktrainer/internal/count"
	"github.com/lox/blackjacktrainer/internal/deck"
	"github.com/lox/blackjacktrainer/internal/stats"
)

// Phase is the round state machine position.
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseDealing
	PhasePlayerTurn
	PhaseDealerTurn
	PhaseSettlement
	PhaseComplete
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhaseDealing:
		return "dealing"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseDealerTurn:
		return "dealer_turn"
	case PhaseSettlement:
		return "settlement"
	case PhaseComplete:
		return "complete"
	default:
		return "?"
	}
}

// RoundOutcome classifies the round as a whole, distinct from per-hand
// results: a mixed multi-hand round collapses to its net direction.
type RoundOutcome int

const (
	OutcomeNone RoundOutcome = iota
	OutcomeWin
	OutcomeLose
	OutcomePush
	OutcomeBlackjack
)

// OutcomeSummary is the round-level outcome shown to the player.
type OutcomeSummary struct {
	Type    RoundOutcome
	Message string
	Wins    int
	Losses  int
	Pushes  int
}

// Spot is a betting position. It holds a pending bet during the Betting
// phase and 1..MaxHandsPerSpot hands once dealt.
type Spot struct {
	Bet   int
	Hands []*Hand
}

// RoundConfig carries the table rules a round needs.
type RoundConfig struct {
	Spots           int
	MaxHandsPerSpot int
}

// Round drives one betting-to-settlement cycle. It owns the hands it
// creates; shoe, counter and bankroll are shared session state that only
// the current round mutates. All methods reject out-of-phase calls with
// ErrIllegalAction and mutate nothing on rejection.
type Round struct {
	cfg      RoundConfig
	shoe     *deck.Shoe
	counter  *count.Counter
	bankroll *Bankroll
	bus      EventBus
	logger   *log.Logger
	clock    quartz.Clock

	phase        Phase
	dealer       []deck.Card
	holeRevealed bool
	spots        []*Spot
	activeSpot   int
	activeHand   int
	wagered      int
	payout       int
	message      string
	outcome      OutcomeSummary
	tally        stats.RoundTally
}

// NewRound creates a round in the Betting phase with fresh hand records.
func NewRound(cfg RoundConfig, shoe *deck.Shoe, counter *count.Counter, bankroll *Bankroll, bus EventBus, logger *log.Logger, clock quartz.Clock) *Round {
	if cfg.Spots <= 0 {
		cfg.Spots = 1
	}
	if cfg.MaxHandsPerSpot <= 0 {
		cfg.MaxHandsPerSpot = 4
	}
	spots := make([]*Spot, cfg.Spots)
	for i := range spots {
		spots[i] = &Spot{}
	}
	return &Round{
		cfg:      cfg,
		shoe:     shoe,
		counter:  counter,
		bankroll: bankroll,
		bus:      bus,
		logger:   logger,
		clock:    clock,
		phase:    PhaseBetting,
		spots:    spots,
		message:  "Place your bet!",
	}
}

// Phase returns the current phase.
func (r *Round) Phase() Phase { return r.phase }

// Message returns the current player-facing message.
func (r *Round) Message() string { return r.message }

// Wagered returns the total debited from the bankroll this round.
func (r *Round) Wagered() int { return r.wagered }

// PayoutTotal returns the settlement credit, zero before settlement.
func (r *Round) PayoutTotal() int { return r.payout }

// Outcome returns the round summary, zero-valued before settlement.
func (r *Round) Outcome() OutcomeSummary { return r.outcome }

// Tally returns the per-hand result counts, zero-valued before settlement.
func (r *Round) Tally() stats.RoundTally { return r.tally }

// Dealer returns the dealer cards and whether the hole card is still hidden.
func (r *Round) Dealer() ([]deck.Card, bool) {
	cards := make([]deck.Card, len(r.dealer))
	copy(cards, r.dealer)
	return cards, !r.holeRevealed && len(cards) > 0
}

// Spots returns the betting spots. Callers must not mutate.
func (r *Round) Spots() []*Spot { return r.spots }

// ActiveHand returns the hand the cursor points at, or nil outside the
// player turn.
func (r *Round) ActiveHand() *Hand {
	if r.phase != PhasePlayerTurn {
		return nil
	}
	return r.spots[r.activeSpot].Hands[r.activeHand]
}

// ActivePosition returns the (spot, hand) cursor, or (-1, -1) outside the
// player turn.
func (r *Round) ActivePosition() (int, int) {
	if r.phase != PhasePlayerTurn {
		return -1, -1
	}
	return r.activeSpot, r.activeHand
}

// PlaceBet adds amount to a spot's pending bet, debiting the bankroll
// immediately. Stacking multiple placements on one spot is allowed.
func (r *Round) PlaceBet(spotIndex, amount int) error {
	if r.phase != PhaseBetting {
		return ErrIllegalAction
	}
	if spotIndex < 0 || spotIndex >= len(r.spots) {
		return ErrIllegalAction
	}
	if amount <= 0 || amount > r.bankroll.Balance() {
		return ErrInvalidBet
	}
	r.bankroll.debit(amount)
	r.spots[spotIndex].Bet += amount
	r.wagered += amount
	return nil
}

// RemoveBet clears a spot's pending bet, crediting it back.
func (r *Round) RemoveBet(spotIndex int) error {
	if r.phase != PhaseBetting {
		return ErrIllegalAction
	}
	if spotIndex < 0 || spotIndex >= len(r.spots) {
		return ErrIllegalAction
	}
	bet := r.spots[spotIndex].Bet
	if bet == 0 {
		return ErrIllegalAction
	}
	r.bankroll.credit(bet)
	r.wagered -= bet
	r.spots[spotIndex].Bet = 0
	return nil
}

// Deal commits the placed bets and deals the round: two cards to every
// open hand and two to the dealer, round-robin by card position. Every
// player card and the dealer up-card are counted as dealt; the hole card
// is counted only when revealed.
func (r *Round) Deal() error {
	if r.phase != PhaseBetting {
		return ErrIllegalAction
	}
	openHands := 0
	for _, spot := range r.spots {
		if spot.Bet > 0 {
			openHands++
		}
	}
	if openHands == 0 {
		return ErrInvalidBet
	}
	if r.shoe.Remaining() < openHands*2+2 {
		// Refund pending bets before aborting so accounting stays balanced.
		for _, spot := range r.spots {
			if spot.Bet > 0 {
				r.bankroll.credit(spot.Bet)
				r.wagered -= spot.Bet
				spot.Bet = 0
			}
		}
		r.setPhase(PhaseComplete, "Not enough cards remaining to deal a new hand!")
		return ErrInsufficientShoe
	}

	r.setPhase(PhaseDealing, "Dealing...")
	for _, spot := range r.spots {
		if spot.Bet > 0 {
			spot.Hands = []*Hand{NewHand(spot.Bet)}
		}
	}

	// First card to every hand, then the dealer's hole card; second card to
	// every hand, then the dealer's up-card.
	for cardIdx := 0; cardIdx < 2; cardIdx++ {
		for spotIdx, spot := range r.spots {
			if len(spot.Hands) == 0 {
				continue
			}
			if err := r.dealToHand(spotIdx, 0, spot.Hands[0]); err != nil {
				return r.abortExhausted()
			}
		}
		card, err := r.shoe.Draw()
		if err != nil {
			return r.abortExhausted()
		}
		r.dealer = append(r.dealer, card)
		if cardIdx == 0 {
			// Hole card: face down, not counted yet.
			r.bus.Publish(CardDealtEvent{Card: card, Spot: -1, FaceDown: true, timestamp: r.clock.Now()})
		} else {
			r.counter.Record(card)
			r.bus.Publish(CardDealtEvent{Card: card, Spot: -1, timestamp: r.clock.Now()})
		}
	}

	r.resolveNaturals()
	return nil
}

// resolveNaturals settles two-card 21s immediately after the deal.
func (r *Round) resolveNaturals() {
	dealerNatural := HandValue(r.dealer) == 21

	for _, hand := range r.openHands() {
		if hand.IsBlackjack() {
			hand.Status = StatusBlackjack
			if dealerNatural {
				hand.Result = ResultPush
			} else {
				hand.Result = ResultBlackjack
			}
		}
	}

	if dealerNatural {
		r.revealHole()
		for _, hand := range r.openHands() {
			if hand.Result == ResultUnset {
				hand.Status = StatusStanding
				hand.Result = ResultLose
			}
		}
		r.settle()
		return
	}

	if r.allHandsComplete() {
		// All naturals: the hole card is still revealed and counted before
		// settlement, but the dealer never draws.
		r.revealHole()
		r.settle()
		return
	}

	r.setPhase(PhasePlayerTurn, "Your turn! Hit or Stand?")
	r.activeSpot, r.activeHand = -1, 0
	r.seekNextHand()
}

// Hit draws one card into the active hand. 21 completes the hand, over 21
// busts it and marks it lost immediately.
func (r *Round) Hit() error {
	if r.phase != PhasePlayerTurn {
		return ErrIllegalAction
	}
	hand := r.spots[r.activeSpot].Hands[r.activeHand]
	if err := r.dealToHand(r.activeSpot, r.activeHand, hand); err != nil {
		return r.abortExhausted()
	}

	switch value := hand.Value(); {
	case value > 21:
		hand.Status = StatusBusted
		hand.Result = ResultLose
		return r.advanceCursor()
	case value == 21:
		hand.Status = StatusStanding
		return r.advanceCursor()
	}
	return nil
}

// Stand completes the active hand without drawing.
func (r *Round) Stand() error {
	if r.phase != PhasePlayerTurn {
		return ErrIllegalAction
	}
	r.spots[r.activeSpot].Hands[r.activeHand].Status = StatusStanding
	return r.advanceCursor()
}

// CanDouble reports whether the active hand may double down.
func (r *Round) CanDouble() bool {
	hand := r.ActiveHand()
	return hand != nil && len(hand.Cards) == 2 && r.bankroll.Balance() >= hand.Bet
}

// DoubleDown doubles the active hand's bet, draws exactly one card and
// completes the hand. Requires a two-card hand and bankroll to cover the
// additional bet.
func (r *Round) DoubleDown() error {
	if r.phase != PhasePlayerTurn || !r.CanDouble() {
		return ErrIllegalAction
	}
	hand := r.spots[r.activeSpot].Hands[r.activeHand]

	r.bankroll.debit(hand.Bet)
	r.wagered += hand.Bet
	hand.Bet *= 2

	if err := r.dealToHand(r.activeSpot, r.activeHand, hand); err != nil {
		return r.abortExhausted()
	}
	if hand.Value() > 21 {
		hand.Status = StatusBusted
		hand.Result = ResultLose
	} else {
		hand.Status = StatusDoubled
	}
	return r.advanceCursor()
}

// CanSplitActive reports whether the active hand may split: a structural
// pair, bankroll to cover the new bet, and spot hand count below the
// table maximum.
func (r *Round) CanSplitActive() bool {
	hand := r.ActiveHand()
	if hand == nil {
		return false
	}
	return CanSplit(hand.Cards) &&
		r.bankroll.Balance() >= hand.Bet &&
		len(r.spots[r.activeSpot].Hands) < r.cfg.MaxHandsPerSpot
}

// Split divides the active pair into two hands, each keeping one original
// card and drawing one fresh card. Split Aces are locked: both hands are
// complete immediately, one card each.
func (r *Round) Split() error {
	if r.phase != PhasePlayerTurn || !r.CanSplitActive() {
		return ErrIllegalAction
	}
	spot := r.spots[r.activeSpot]
	hand := spot.Hands[r.activeHand]
	splitAces := hand.Cards[0].IsAce()

	r.bankroll.debit(hand.Bet)
	r.wagered += hand.Bet

	sibling := NewHand(hand.Bet)
	sibling.Cards = []deck.Card{hand.Cards[1]}
	hand.Cards = hand.Cards[:1]

	spot.Hands = append(spot.Hands, nil)
	copy(spot.Hands[r.activeHand+2:], spot.Hands[r.activeHand+1:])
	spot.Hands[r.activeHand+1] = sibling

	if err := r.dealToHand(r.activeSpot, r.activeHand, hand); err != nil {
		return r.abortExhausted()
	}
	if err := r.dealToHand(r.activeSpot, r.activeHand+1, sibling); err != nil {
		return r.abortExhausted()
	}

	for _, h := range []*Hand{hand, sibling} {
		if splitAces || h.Value() == 21 {
			h.Status = StatusStanding
		}
	}

	if hand.IsComplete() {
		return r.advanceCursor()
	}
	return nil
}

// advanceCursor moves to the next incomplete hand in spot-then-hand order,
// or runs the dealer turn when none remain.
func (r *Round) advanceCursor() error {
	if r.seekNextHand() {
		return nil
	}
	return r.dealerTurn()
}

// seekNextHand moves the cursor to the next incomplete hand, reporting
// whether one was found.
func (r *Round) seekNextHand() bool {
	for spotIdx := max(r.activeSpot, 0); spotIdx < len(r.spots); spotIdx++ {
		startHand := 0
		if spotIdx == r.activeSpot {
			startHand = r.activeHand
		}
		for handIdx := startHand; handIdx < len(r.spots[spotIdx].Hands); handIdx++ {
			if !r.spots[spotIdx].Hands[handIdx].IsComplete() {
				r.activeSpot, r.activeHand = spotIdx, handIdx
				return true
			}
		}
	}
	return false
}

// dealerTurn reveals the hole card, then draws to 17 if any player hand is
// still standing at 21 or less. The dealer stands on all 17s; every draw is
// counted.
func (r *Round) dealerTurn() error {
	r.setPhase(PhaseDealerTurn, "Dealer's turn...")
	r.revealHole()

	playerStanding := false
	for _, hand := range r.openHands() {
		if hand.Value() <= 21 {
			playerStanding = true
			break
		}
	}

	if playerStanding {
		for HandValue(r.dealer) < 17 {
			card, err := r.shoe.Draw()
			if err != nil {
				return r.abortExhausted()
			}
			r.dealer = append(r.dealer, card)
			r.counter.Record(card)
			r.bus.Publish(CardDealtEvent{Card: card, Spot: -1, timestamp: r.clock.Now()})
		}
	} else {
		r.message = "All hands busted. Dealer reveals cards."
	}

	r.settle()
	return nil
}

// settle assigns results to every undecided hand, credits the total payout
// in a single bankroll update and computes the round tally and summary.
func (r *Round) settle() {
	r.setPhase(PhaseSettlement, "Settling...")
	dealerValue := HandValue(r.dealer)

	for _, hand := range r.openHands() {
		if hand.Result != ResultUnset {
			continue
		}
		playerValue := hand.Value()
		switch {
		case playerValue > 21:
			hand.Result = ResultLose
		case dealerValue > 21:
			hand.Result = ResultWin
		case playerValue > dealerValue:
			hand.Result = ResultWin
		case playerValue < dealerValue:
			hand.Result = ResultLose
		default:
			hand.Result = ResultPush
		}
	}

	r.payout = 0
	r.tally = stats.RoundTally{}
	for _, hand := range r.openHands() {
		r.payout += hand.Payout()
		r.tally.Hands++
		switch hand.Result {
		case ResultWin:
			r.tally.Wins++
		case ResultLose:
			r.tally.Losses++
		case ResultPush:
			r.tally.Pushes++
		case ResultBlackjack:
			r.tally.Wins++
			r.tally.Blackjacks++
		}
	}
	r.bankroll.credit(r.payout)

	r.outcome = summariseOutcome(r.tally)
	r.logger.Debug("round settled",
		"wagered", r.wagered,
		"payout", r.payout,
		"wins", r.tally.Wins,
		"losses", r.tally.Losses,
		"pushes", r.tally.Pushes,
		"blackjacks", r.tally.Blackjacks)

	r.bus.Publish(RoundSettledEvent{
		Wagered:   r.wagered,
		Payout:    r.payout,
		Outcome:   r.outcome,
		timestamp: r.clock.Now(),
	})
	r.setPhase(PhaseComplete, r.outcome.Message)
}

// openHands returns every dealt hand in spot order.
func (r *Round) openHands() []*Hand {
	var hands []*Hand
	for _, spot := range r.spots {
		hands = append(hands, spot.Hands...)
	}
	return hands
}

func (r *Round) allHandsComplete() bool {
	for _, hand := range r.openHands() {
		if !hand.IsComplete() {
			return false
		}
	}
	return true
}

// dealToHand draws a card into a hand, counting it and publishing the
// reveal step.
func (r *Round) dealToHand(spotIdx, handIdx int, hand *Hand) error {
	card, err := r.shoe.Draw()
	if err != nil {
		return err
	}
	hand.Cards = append(hand.Cards, card)
	r.counter.Record(card)
	r.bus.Publish(CardDealtEvent{Card: card, Spot: spotIdx, Hand: handIdx, timestamp: r.clock.Now()})
	return nil
}

// revealHole turns the dealer's hole card over and counts it. Idempotent.
func (r *Round) revealHole() {
	if r.holeRevealed || len(r.dealer) == 0 {
		return
	}
	r.holeRevealed = true
	r.counter.Record(r.dealer[0])
	r.bus.Publish(HoleRevealedEvent{Card: r.dealer[0], timestamp: r.clock.Now()})
}

// abortExhausted ends the round when the shoe runs dry mid-hand. Every
// bet in play is returned and no results are recorded, so accounting
// stays balanced; the session needs a fresh shoe before play continues.
func (r *Round) abortExhausted() error {
	for _, spot := range r.spots {
		for _, hand := range spot.Hands {
			r.bankroll.credit(hand.Bet)
			r.wagered -= hand.Bet
		}
		spot.Bet = 0
	}
	r.setPhase(PhaseComplete, "Shoe exhausted mid-hand. Bets returned.")
	return ErrInsufficientShoe
}

func (r *Round) setPhase(to Phase, message string) {
	from := r.phase
	r.phase = to
	r.message = message
	r.bus.Publish(PhaseChangeEvent{From: from, To: to, Message: message, timestamp: r.clock.Now()})
}

func summariseOutcome(tally stats.RoundTally) OutcomeSummary {
	summary := OutcomeSummary{
		Wins:   tally.Wins,
		Losses: tally.Losses,
		Pushes: tally.Pushes,
	}
	switch {
	case tally.Blackjacks == tally.Hands && tally.Hands > 0:
		summary.Type = OutcomeBlackjack
		summary.Message = "Blackjack! You win!"
	case tally.Wins > 0 && tally.Losses == 0 && tally.Pushes == 0:
		summary.Type = OutcomeWin
		summary.Message = "You win all hands!"
	case tally.Losses > 0 && tally.Wins == 0 && tally.Pushes == 0:
		summary.Type = OutcomeLose
		summary.Message = "You lose all hands!"
	case tally.Pushes > 0 && tally.Wins == 0 && tally.Losses == 0:
		summary.Type = OutcomePush
		summary.Message = "All hands push!"
	case tally.Wins > tally.Losses:
		summary.Type = OutcomeWin
		summary.Message = mixedMessage(tally)
	case tally.Losses > tally.Wins:
		summary.Type = OutcomeLose
		summary.Message = mixedMessage(tally)
	default:
		summary.Type = OutcomePush
		summary.Message = mixedMessage(tally)
	}
	return summary
}

func mixedMessage(tally stats.RoundTally) string {
	return fmt.Sprintf("Mixed: %dW, %dL, %dP", tally.Wins, tally.Losses, tally.Pushes)
}

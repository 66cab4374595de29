package game

import (
	"fmt"
	"slices"
	"time"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjacktrainer/internal/count"
	"github.com/lox/blackjacktrainer/internal/deck"
	"github.com/lox/blackjacktrainer/internal/stats"
)

// Bankroll is the player's money. Debited when bets, doubles and splits
// are placed; credited only at settlement.
type Bankroll struct {
	balance int
}

// NewBankroll creates a bankroll with an initial balance.
func NewBankroll(initial int) *Bankroll {
	return &Bankroll{balance: initial}
}

// Balance returns the current balance.
func (b *Bankroll) Balance() int { return b.balance }

func (b *Bankroll) debit(amount int)  { b.balance -= amount }
func (b *Bankroll) credit(amount int) { b.balance += amount }

// HandHistoryEntry is an immutable record appended once per completed
// round. The primary (first) hand's cards and result are kept for display
// compatibility; HandResults covers every hand in the round.
type HandHistoryEntry struct {
	HandNumber   int         `json:"handNumber"`
	PlayerCards  []deck.Card `json:"playerCards"`
	DealerCards  []deck.Card `json:"dealerCards"`
	Result       string      `json:"result"`
	HandResults  []string    `json:"handResults"`
	ProfitOrLoss int         `json:"profitOrLoss"`
	Timestamp    time.Time   `json:"timestamp"`
}

// PlayerSnapshot is the persisted state for one identity.
type PlayerSnapshot struct {
	Bankroll    int                `json:"bankroll"`
	Stats       stats.SessionStats `json:"stats"`
	HandHistory []HandHistoryEntry `json:"handHistory"`
}

// PlayerStore persists player snapshots between sessions. Implementations
// live outside the core; absent identities seed default state.
type PlayerStore interface {
	Save(identity string, snapshot PlayerSnapshot) error
	Load(identity string) (PlayerSnapshot, bool, error)
}

// SessionConfig carries the table rules for a session.
type SessionConfig struct {
	StartingBankroll  int
	Spots             int
	MaxHandsPerSpot   int
	AllowedDeckCounts []int
}

// Session owns the shared mutable state (shoe, bankroll, count, stats) and
// drives rounds to completion one command at a time. It is the inbound
// command surface for the presentation layer; rendering and persistence
// happen strictly as reactions to completed transitions.
type Session struct {
	cfg    SessionConfig
	logger *log.Logger
	clock  quartz.Clock
	rng    *rand.Rand
	bus    EventBus
	store  PlayerStore

	identity     string
	bankroll     *Bankroll
	sessionStats stats.SessionStats
	history      []HandHistoryEntry

	numDecks int
	shoe     *deck.Shoe
	counter  *count.Counter
	round    *Round

	roundApplied  bool
	balanceAtDeal int
	complete      bool
}

// NewSession creates a session. A nil clock uses the real clock and a nil
// store disables persistence.
func NewSession(cfg SessionConfig, logger *log.Logger, clock quartz.Clock, rng *rand.Rand, store PlayerStore) *Session {
	if cfg.StartingBankroll <= 0 {
		cfg.StartingBankroll = 10000
	}
	if cfg.Spots <= 0 {
		cfg.Spots = 1
	}
	if cfg.MaxHandsPerSpot <= 0 {
		cfg.MaxHandsPerSpot = 4
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Session{
		cfg:      cfg,
		logger:   logger,
		clock:    clock,
		rng:      rng,
		bus:      NewEventBus(),
		store:    store,
		bankroll: NewBankroll(cfg.StartingBankroll),
		counter:  count.NewCounter(clock),
	}
}

// Bus returns the event bus for subscribing to game events.
func (s *Session) Bus() EventBus { return s.bus }

// Bankroll returns the current balance.
func (s *Session) Bankroll() int { return s.bankroll.Balance() }

// Stats returns the session counters.
func (s *Session) Stats() stats.SessionStats { return s.sessionStats }

// History returns the hand history log.
func (s *Session) History() []HandHistoryEntry {
	history := make([]HandHistoryEntry, len(s.history))
	copy(history, s.history)
	return history
}

// Counter returns the Hi-Lo counter.
func (s *Session) Counter() *count.Counter { return s.counter }

// Round returns the current round, nil before deck selection.
func (s *Session) Round() *Round { return s.round }

// Complete reports whether the shoe is exhausted and the session is over.
func (s *Session) Complete() bool { return s.complete }

// Login seeds session state for an identity from the store, or with the
// default bankroll and zeroed stats when the identity is absent.
func (s *Session) Login(identity string) error {
	s.identity = identity
	if s.store == nil {
		return nil
	}
	snapshot, found, err := s.store.Load(identity)
	if err != nil {
		return fmt.Errorf("loading player %q: %w", identity, err)
	}
	if found {
		s.bankroll = NewBankroll(snapshot.Bankroll)
		s.sessionStats = snapshot.Stats
		s.sessionStats.CurrentStreak = 0
		s.history = snapshot.HandHistory
		s.logger.Info("player loaded", "identity", identity, "bankroll", snapshot.Bankroll)
		return nil
	}
	s.bankroll = NewBankroll(s.cfg.StartingBankroll)
	s.sessionStats = stats.SessionStats{}
	s.history = nil
	s.logger.Info("new player", "identity", identity, "bankroll", s.cfg.StartingBankroll)
	return s.persist()
}

// Logout clears the identity and all session state.
func (s *Session) Logout() {
	s.identity = ""
	s.bankroll = NewBankroll(s.cfg.StartingBankroll)
	s.sessionStats = stats.SessionStats{}
	s.history = nil
	s.counter.Reset()
	s.shoe = nil
	s.round = nil
	s.numDecks = 0
	s.complete = false
}

// ResetGame starts the identity over with the default bankroll and zeroed
// stats, persisting the reset.
func (s *Session) ResetGame() error {
	s.bankroll = NewBankroll(s.cfg.StartingBankroll)
	s.sessionStats = stats.SessionStats{}
	s.history = nil
	s.counter.Reset()
	s.shoe = nil
	s.round = nil
	s.numDecks = 0
	s.complete = false
	return s.persist()
}

// SelectDeckCount builds, shuffles and verifies a fresh shoe, resets the
// count and opens the first betting round. Rejects deck counts outside the
// table's allowed set.
func (s *Session) SelectDeckCount(numDecks int) error {
	if numDecks <= 0 {
		return fmt.Errorf("%w: deck count must be positive", ErrIllegalAction)
	}
	if len(s.cfg.AllowedDeckCounts) > 0 && !slices.Contains(s.cfg.AllowedDeckCounts, numDecks) {
		return fmt.Errorf("%w: deck count %d not offered", ErrIllegalAction, numDecks)
	}

	shoe := deck.NewShoe(deck.Shuffle(s.rng, deck.BuildShoe(numDecks)))
	if !shoe.CheckIntegrity() {
		// A corrupted shoe must not be playable; force re-selection.
		s.shoe = nil
		s.round = nil
		s.numDecks = 0
		return ErrShoeIntegrity
	}

	s.numDecks = numDecks
	s.shoe = shoe
	s.counter.Reset()
	s.complete = false
	s.bus.Publish(ShoeBuiltEvent{NumDecks: numDecks, Cards: shoe.Remaining(), timestamp: s.clock.Now()})
	s.logger.Info("shoe built", "decks", numDecks, "cards", shoe.Remaining())

	s.newRound()
	return nil
}

// StartNewRound opens the next betting round, or ends the session when
// the shoe cannot cover another full deal.
func (s *Session) StartNewRound() error {
	if s.shoe == nil {
		return ErrIllegalAction
	}
	if s.round != nil && s.round.Phase() != PhaseComplete {
		return ErrIllegalAction
	}
	if s.shoe.Remaining() < s.cfg.Spots*2+2 {
		s.complete = true
		return ErrInsufficientShoe
	}
	s.newRound()
	return nil
}

// PlaceBet stacks a bet on a spot.
func (s *Session) PlaceBet(spotIndex, amount int) error {
	if s.round == nil {
		return ErrIllegalAction
	}
	return s.round.PlaceBet(spotIndex, amount)
}

// RemoveBet clears a spot's pending bet.
func (s *Session) RemoveBet(spotIndex int) error {
	if s.round == nil {
		return ErrIllegalAction
	}
	return s.round.RemoveBet(spotIndex)
}

// Deal commits bets and deals the round.
func (s *Session) Deal() error {
	if s.round == nil {
		return ErrIllegalAction
	}
	s.balanceAtDeal = s.bankroll.Balance() + s.round.Wagered()
	if err := s.round.Deal(); err != nil {
		if err == ErrInsufficientShoe {
			s.complete = true
		}
		return err
	}
	return s.finishRoundIfComplete()
}

// Hit draws a card into the active hand.
func (s *Session) Hit() error { return s.playerAction((*Round).Hit) }

// Stand completes the active hand.
func (s *Session) Stand() error { return s.playerAction((*Round).Stand) }

// DoubleDown doubles the active hand.
func (s *Session) DoubleDown() error { return s.playerAction((*Round).DoubleDown) }

// Split splits the active pair.
func (s *Session) Split() error { return s.playerAction((*Round).Split) }

func (s *Session) playerAction(action func(*Round) error) error {
	if s.round == nil {
		return ErrIllegalAction
	}
	if err := action(s.round); err != nil {
		if err == ErrInsufficientShoe {
			// Mid-hand exhaustion: the round aborted with bets refunded
			// and the shoe is dead.
			s.complete = true
		}
		return err
	}
	return s.finishRoundIfComplete()
}

func (s *Session) newRound() {
	s.round = NewRound(RoundConfig{
		Spots:           s.cfg.Spots,
		MaxHandsPerSpot: s.cfg.MaxHandsPerSpot,
	}, s.shoe, s.counter, s.bankroll, s.bus, s.logger, s.clock)
	s.roundApplied = false
}

// finishRoundIfComplete folds a settled round into stats and history,
// validates money conservation and persists the snapshot.
func (s *Session) finishRoundIfComplete() error {
	if s.round == nil || s.round.Phase() != PhaseComplete || s.roundApplied {
		return nil
	}
	s.roundApplied = true

	tally := s.round.Tally()
	if tally.Hands == 0 {
		return nil
	}

	wagered := s.round.Wagered()
	payout := s.round.PayoutTotal()
	if got, want := s.bankroll.Balance(), s.balanceAtDeal-wagered+payout; got != want {
		s.logger.Error("money conservation violation",
			"balance", got, "expected", want, "wagered", wagered, "payout", payout)
		return fmt.Errorf("money conservation violation: balance %d, expected %d", got, want)
	}

	s.sessionStats.ApplyRound(tally)

	hands := s.round.openHands()
	primary := hands[0]
	results := make([]string, len(hands))
	for i, hand := range hands {
		results[i] = hand.Result.String()
	}
	dealerCards, _ := s.round.Dealer()
	s.history = append(s.history, HandHistoryEntry{
		HandNumber:   s.sessionStats.HandsPlayed,
		PlayerCards:  slices.Clone(primary.Cards),
		DealerCards:  dealerCards,
		Result:       primary.Result.String(),
		HandResults:  results,
		ProfitOrLoss: payout - wagered,
		Timestamp:    s.clock.Now(),
	})

	return s.persist()
}

func (s *Session) persist() error {
	if s.store == nil || s.identity == "" {
		return nil
	}
	err := s.store.Save(s.identity, PlayerSnapshot{
		Bankroll:    s.bankroll.Balance(),
		Stats:       s.sessionStats,
		HandHistory: s.history,
	})
	if err != nil {
		return fmt.Errorf("saving player %q: %w", s.identity, err)
	}
	return nil
}

// Package simulator plays unattended rounds of basic strategy to measure
// the house edge over many shoes.
package simulator

import (
	"context"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacktrainer/internal/game"
	"github.com/lox/blackjacktrainer/internal/randutil"
	"github.com/lox/blackjacktrainer/internal/stats"
	"github.com/lox/blackjacktrainer/internal/strategy"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds   int
	NumDecks int
	Bet      int
	Bankroll int
	Seed     int64
	Workers  int
	Logger   *log.Logger
}

// Simulator plays flat-bet basic strategy rounds
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
		if config.Workers > 8 {
			config.Workers = 8
		}
	}
	if config.NumDecks <= 0 {
		config.NumDecks = 6
	}
	if config.Bet <= 0 {
		config.Bet = 25
	}
	if config.Bankroll <= 0 {
		config.Bankroll = 1 << 30 // effectively unlimited for flat betting
	}
	return &Simulator{config: config}
}

// Run executes the simulation and returns aggregate statistics.
func (s *Simulator) Run() (*stats.Statistics, error) {
	workers := s.config.Workers
	roundsPerWorker := s.config.Rounds / workers
	remainder := s.config.Rounds % workers

	g, ctx := errgroup.WithContext(context.Background())
	results := make(chan []stats.RoundResult, workers)

	for w := 0; w < workers; w++ {
		workerRounds := roundsPerWorker
		if w < remainder {
			workerRounds++
		}
		// Independent seed per worker so runs are reproducible regardless
		// of scheduling.
		workerSeed := s.config.Seed + int64(w)

		g.Go(func() error {
			batch, err := s.runWorker(workerSeed, workerRounds)
			if err != nil {
				return err
			}
			select {
			case results <- batch:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	go func() {
		defer close(results)
		g.Wait()
	}()

	aggregate := &stats.Statistics{}
	for batch := range results {
		for _, result := range batch {
			aggregate.Add(result)
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := aggregate.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return aggregate, nil
}

// runWorker plays rounds on one session, reshuffling a fresh shoe whenever
// the current one cannot cover another deal.
func (s *Simulator) runWorker(seed int64, rounds int) ([]stats.RoundResult, error) {
	sess := game.NewSession(game.SessionConfig{
		StartingBankroll: s.config.Bankroll,
		Spots:            1,
	}, s.config.Logger, nil, randutil.New(seed), nil)

	if err := sess.SelectDeckCount(s.config.NumDecks); err != nil {
		return nil, err
	}

	results := make([]stats.RoundResult, 0, rounds)
	for i := 0; i < rounds; i++ {
		balanceBefore := sess.Bankroll()
		if err := s.playRound(sess); err != nil {
			if err == game.ErrInsufficientShoe {
				if err := sess.SelectDeckCount(s.config.NumDecks); err != nil {
					return nil, err
				}
				i--
				continue
			}
			return nil, fmt.Errorf("round %d (seed %d): %w", i+1, seed, err)
		}

		round := sess.Round()
		result := stats.RoundResult{
			Net:        sess.Bankroll() - balanceBefore,
			Wagered:    round.Wagered(),
			Hands:      round.Tally().Hands,
			Blackjacks: round.Tally().Blackjacks,
			Seed:       seed,
		}
		if result.Net != round.PayoutTotal()-round.Wagered() {
			return nil, fmt.Errorf("money conservation violation on round %d (seed %d)", i+1, seed)
		}
		results = append(results, result)

		if err := sess.StartNewRound(); err != nil {
			if err == game.ErrInsufficientShoe {
				if err := sess.SelectDeckCount(s.config.NumDecks); err != nil {
					return nil, err
				}
				continue
			}
			return nil, err
		}
	}
	return results, nil
}

// playRound bets, deals and plays every hand to completion with basic
// strategy.
func (s *Simulator) playRound(sess *game.Session) error {
	if err := sess.PlaceBet(0, s.config.Bet); err != nil {
		return err
	}
	if err := sess.Deal(); err != nil {
		return err
	}

	for sess.Round().Phase() == game.PhasePlayerTurn {
		round := sess.Round()
		hand := round.ActiveHand()
		dealerCards, _ := round.Dealer()
		upCard := dealerCards[1]

		switch strategy.Recommend(hand.Cards, upCard) {
		case strategy.Split:
			if round.CanSplitActive() {
				if err := sess.Split(); err != nil {
					return err
				}
				continue
			}
			if err := fallbackAction(sess, hand); err != nil {
				return err
			}
		case strategy.DoubleDown:
			if round.CanDouble() {
				if err := sess.DoubleDown(); err != nil {
					return err
				}
				continue
			}
			if err := sess.Hit(); err != nil {
				return err
			}
		case strategy.Stand:
			if err := sess.Stand(); err != nil {
				return err
			}
		default:
			if err := sess.Hit(); err != nil {
				return err
			}
		}
	}
	return nil
}

// fallbackAction plays a pair that cannot be split (bankroll or hand-count
// limit) as a plain total.
func fallbackAction(sess *game.Session, hand *game.Hand) error {
	value := hand.Value()
	if game.IsSoft(hand.Cards) {
		if value >= 18 {
			return sess.Stand()
		}
		return sess.Hit()
	}
	if value >= 17 {
		return sess.Stand()
	}
	return sess.Hit()
}

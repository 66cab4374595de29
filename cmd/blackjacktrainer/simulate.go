package main

import (
	"fmt"
	"time"

	"github.com/lox/blackjacktrainer/internal/simulator"
)

type SimulateCmd struct {
	Rounds  int    `kong:"default='50000',help='Number of rounds to simulate'"`
	Decks   int    `kong:"default='6',help='Decks per shoe'"`
	Bet     int    `kong:"default='25',help='Flat bet per round'"`
	Seed    int64  `kong:"default='0',help='RNG seed (0 for random)'"`
	Workers int    `kong:"default='0',help='Worker count (0 for auto)'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger(c.Debug)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting simulation", "rounds", c.Rounds, "decks", c.Decks, "bet", c.Bet, "seed", seed)

	sim := simulator.New(simulator.Config{
		Rounds:   c.Rounds,
		NumDecks: c.Decks,
		Bet:      c.Bet,
		Seed:     seed,
		Workers:  c.Workers,
		Logger:   logger,
	})

	start := time.Now()
	stats, err := sim.Run()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	low, high := stats.ConfidenceInterval95()
	fmt.Printf("Rounds:       %d (%.0f/sec)\n", stats.Rounds, float64(stats.Rounds)/elapsed.Seconds())
	fmt.Printf("Net:          %+.0f over %d wagered\n", stats.SumNet, stats.TotalWagered)
	fmt.Printf("House edge:   %.3f%%\n", stats.HouseEdge()*100)
	fmt.Printf("Mean/round:   %+.4f (95%% CI %+.4f to %+.4f)\n", stats.Mean(), low, high)
	fmt.Printf("Std dev:      %.4f\n", stats.StdDev())
	fmt.Printf("Median:       %+.1f\n", stats.Median())
	fmt.Printf("Blackjacks:   %d\n", stats.Blackjacks)
	return nil
}

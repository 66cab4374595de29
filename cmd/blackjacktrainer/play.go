package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjacktrainer/internal/config"
	"github.com/lox/blackjacktrainer/internal/game"
	"github.com/lox/blackjacktrainer/internal/randutil"
	"github.com/lox/blackjacktrainer/internal/store"
	"github.com/lox/blackjacktrainer/internal/tui"
)

type PlayCmd struct {
	Config string `kong:"default='blackjacktrainer.hcl',help='Path to HCL config file'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed for the shoe (optional)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	logger := setupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	rng := randutil.NewFromTime()
	if c.Seed != nil {
		logger.Info("using deterministic seed", "seed", *c.Seed)
		rng = randutil.New(*c.Seed)
	}

	fileStore, err := store.NewFileStore(cfg.Table.StoreDir)
	if err != nil {
		return fmt.Errorf("failed to open player store: %w", err)
	}

	session := game.NewSession(game.SessionConfig{
		StartingBankroll:  cfg.Table.StartingBankroll,
		Spots:             cfg.Table.Spots,
		MaxHandsPerSpot:   cfg.Table.MaxHandsPerSpot,
		AllowedDeckCounts: cfg.Table.DeckCounts,
	}, logger, nil, rng, fileStore)

	model := tui.New(session, cfg, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// setupLogger configures logging to stderr so it never fights the TUI for
// stdout.
func setupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

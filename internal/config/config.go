// Package config loads table rules from an HCL file, falling back to the
// house defaults when no file exists.
package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete trainer configuration
type Config struct {
	Table TableSettings `hcl:"table,block"`
}

// TableSettings contains the table rules
type TableSettings struct {
	StartingBankroll int    `hcl:"starting_bankroll,optional"`
	Spots            int    `hcl:"spots,optional"`
	MaxHandsPerSpot  int    `hcl:"max_hands_per_spot,optional"`
	DeckCounts       []int  `hcl:"deck_counts,optional"`
	BetSuggestions   []int  `hcl:"bet_suggestions,optional"`
	StoreDir         string `hcl:"store_dir,optional"`
	LogLevel         string `hcl:"log_level,optional"`
}

// DefaultConfig returns the house default configuration
func DefaultConfig() *Config {
	return &Config{
		Table: TableSettings{
			StartingBankroll: 10000,
			Spots:            1,
			MaxHandsPerSpot:  4,
			DeckCounts:       []int{2, 6},
			BetSuggestions:   []int{25, 50, 100},
			StoreDir:         "players",
			LogLevel:         "info",
		},
	}
}

// Load loads configuration from an HCL file
func Load(filename string) (*Config, error) {
	// Check if file exists
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if config.Table.StartingBankroll == 0 {
		config.Table.StartingBankroll = defaults.Table.StartingBankroll
	}
	if config.Table.Spots == 0 {
		config.Table.Spots = defaults.Table.Spots
	}
	if config.Table.MaxHandsPerSpot == 0 {
		config.Table.MaxHandsPerSpot = defaults.Table.MaxHandsPerSpot
	}
	if len(config.Table.DeckCounts) == 0 {
		config.Table.DeckCounts = defaults.Table.DeckCounts
	}
	if len(config.Table.BetSuggestions) == 0 {
		config.Table.BetSuggestions = defaults.Table.BetSuggestions
	}
	if config.Table.StoreDir == "" {
		config.Table.StoreDir = defaults.Table.StoreDir
	}
	if config.Table.LogLevel == "" {
		config.Table.LogLevel = defaults.Table.LogLevel
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.StartingBankroll <= 0 {
		return fmt.Errorf("starting bankroll must be positive")
	}
	if c.Table.Spots < 1 || c.Table.Spots > 7 {
		return fmt.Errorf("spots must be between 1 and 7")
	}
	if c.Table.MaxHandsPerSpot < 1 {
		return fmt.Errorf("max hands per spot must be at least 1")
	}
	for _, n := range c.Table.DeckCounts {
		if n < 1 || n > 8 {
			return fmt.Errorf("invalid deck count: %d", n)
		}
	}
	for _, bet := range c.Table.BetSuggestions {
		if bet <= 0 {
			return fmt.Errorf("bet suggestions must be positive")
		}
		if bet > c.Table.StartingBankroll {
			return fmt.Errorf("bet suggestion %d exceeds starting bankroll", bet)
		}
	}
	if !slices.IsSorted(c.Table.BetSuggestions) {
		return fmt.Errorf("bet suggestions must be ascending")
	}
	return nil
}

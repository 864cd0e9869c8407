// Package config loads slotd's YAML configuration with environment overrides.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/MJE43/haunted-slots-go/internal/slot"
)

// Config is the full slotd configuration.
type Config struct {
	Listen      string     `yaml:"listen"`
	JournalPath string     `yaml:"journal_path"`
	Game        GameConfig `yaml:"game"`
}

// GameConfig configures the machines created for new sessions.
type GameConfig struct {
	Volatility      string   `yaml:"volatility"`
	RTPMode         string   `yaml:"rtp_mode"`
	StartingBalance string   `yaml:"starting_balance"`
	BetOptions      []string `yaml:"bet_options"`
}

// Default returns the stock configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:      ":8080",
		JournalPath: "spins.db",
		Game: GameConfig{
			Volatility:      "MEDIUM",
			RTPMode:         "STANDARD",
			StartingBalance: "10000",
			BetOptions:      []string{"1", "2", "3", "5", "10", "20", "50", "100"},
		},
	}
}

// Load reads the YAML file at path, layered over defaults. An empty path
// returns defaults. SLOTD_LISTEN and SLOTD_JOURNAL environment variables
// override the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("SLOTD_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("SLOTD_JOURNAL"); v != "" {
		cfg.JournalPath = v
	}

	if _, err := cfg.Game.SlotConfig(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SlotConfig converts the YAML game section into a machine configuration.
func (g GameConfig) SlotConfig() (slot.Config, error) {
	volatility, err := slot.ParseVolatility(g.Volatility)
	if err != nil {
		return slot.Config{}, err
	}
	rtpMode, err := slot.ParseRTPMode(g.RTPMode)
	if err != nil {
		return slot.Config{}, err
	}
	balance, err := decimal.NewFromString(g.StartingBalance)
	if err != nil {
		return slot.Config{}, fmt.Errorf("starting balance %q: %w", g.StartingBalance, err)
	}
	bets := make([]decimal.Decimal, 0, len(g.BetOptions))
	for _, s := range g.BetOptions {
		bet, err := decimal.NewFromString(s)
		if err != nil {
			return slot.Config{}, fmt.Errorf("bet option %q: %w", s, err)
		}
		bets = append(bets, bet)
	}
	return slot.Config{
		Volatility:      volatility,
		RTPMode:         rtpMode,
		StartingBalance: balance,
		BetOptions:      bets,
	}, nil
}

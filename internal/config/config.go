package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

const (
	defaultPointLimit          = 100
	defaultMaxPlayers          = 4
	defaultTurnDurationSeconds = 20
	defaultLeaderboardID       = "hearts_wins"
	defaultBotAutoFillDelay    = 5
)

type GameConfig struct {
	PointLimit          int `json:"point_limit"`
	MaxPlayers          int `json:"max_players"`
	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before adding bots to a solo human lobby.
	BotAutoFillDelaySeconds int    `json:"bot_auto_fill_delay_seconds"`
	LeaderboardID           string `json:"leaderboard_id"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		c, err := ReadGameConfig(path)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// ReadGameConfig parses a config file without touching the global configuration.
func ReadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}

	var c GameConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	return &c, nil
}

// GetPointLimit returns the configured point limit or the default.
func GetPointLimit() int {
	if cfg == nil || cfg.PointLimit <= 0 {
		return defaultPointLimit
	}
	return cfg.PointLimit
}

// GetMaxPlayers returns the table size, clamped to what the deal supports (2..6).
func GetMaxPlayers() int {
	if cfg == nil || cfg.MaxPlayers <= 0 {
		return defaultMaxPlayers
	}
	switch {
	case cfg.MaxPlayers < 2:
		return 2
	case cfg.MaxPlayers > 6:
		return 6
	}
	return cfg.MaxPlayers
}

// GetTurnDurationSeconds returns the per-turn timer length.
func GetTurnDurationSeconds() int {
	if cfg == nil || cfg.TurnDurationSeconds <= 0 {
		return defaultTurnDurationSeconds
	}
	return cfg.TurnDurationSeconds
}

// GetLeaderboardID returns the leaderboard game results are written to.
func GetLeaderboardID() string {
	if cfg == nil || cfg.LeaderboardID == "" {
		return defaultLeaderboardID
	}
	return cfg.LeaderboardID
}

// GetBotAutoFillDelaySeconds returns how long a solo human waits before bots fill the table.
func GetBotAutoFillDelaySeconds() int {
	if cfg == nil || cfg.BotAutoFillDelaySeconds <= 0 {
		return defaultBotAutoFillDelay
	}
	return cfg.BotAutoFillDelaySeconds
}

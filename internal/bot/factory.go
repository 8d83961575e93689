package bot

import (
	"fmt"
)

// BotLevel selects a strategy.
type BotLevel int

const (
	BotLevelEasy BotLevel = iota
	BotLevelSmart
)

// ParseBotLevel maps an identity difficulty string to a level. Unknown values are smart.
func ParseBotLevel(difficulty string) BotLevel {
	if difficulty == "easy" {
		return BotLevelEasy
	}
	return BotLevelSmart
}

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelEasy:
		return &EasyBot{}, nil
	case BotLevelSmart:
		return &SmartBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// NewAgent builds an agent for a roster identity using its difficulty.
func NewAgent(identity Identity) (*Agent, error) {
	brain, err := NewBrain(ParseBotLevel(identity.Difficulty))
	if err != nil {
		return nil, err
	}
	name := identity.DisplayName
	if name == "" {
		name = identity.Username
	}
	return &Agent{ID: identity.UserID, Name: name, Strategy: brain}, nil
}

package bot

import (
	"fmt"
	"math/rand"
	"time"

	"literature/internal/bot/brain"
)

// BotLevel selects how much a bot remembers.
type BotLevel int

const (
	// BotLevelEasy only knows its own hand.
	BotLevelEasy BotLevel = iota + 1
	// BotLevelGood tracks every take, miss and declaration.
	BotLevelGood
)

// ParseLevel maps an identity's difficulty string to a level.
func ParseLevel(s string) BotLevel {
	if s == "easy" {
		return BotLevelEasy
	}
	return BotLevelGood
}

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel, seat int, rng *rand.Rand) (Brain, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	switch level {
	case BotLevelEasy:
		return &Planner{rng: rng}, nil
	case BotLevelGood:
		return &Planner{rng: rng, Memory: brain.NewMemory(seat)}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// NewAgent builds the agent for a bot user seated at seat.
func NewAgent(userID string, seat int) (*Agent, error) {
	identity, ok := GetBotConfig(userID)
	level := BotLevelGood
	if ok {
		level = ParseLevel(identity.Difficulty)
	}
	strategy, err := NewBrain(level, seat, nil)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: userID, Name: GetBotDisplayName(userID), Strategy: strategy}, nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"literature/internal/domain"
)

// GameConfig holds table rules loaded from data/game_config.json.
type GameConfig struct {
	MinPlayers          int `json:"min_players"`
	MaxPlayers          int `json:"max_players"`
	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before filling a solo human lobby with bots.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	// RoundProgressAfterTake re-runs round progress after a successful card request.
	RoundProgressAfterTake bool `json:"round_progress_after_take"`
}

// Defaults returns the configuration used when no file was loaded.
func Defaults() GameConfig {
	return GameConfig{
		MinPlayers:              domain.MinSeats,
		MaxPlayers:              domain.MaxSeats,
		TurnDurationSeconds:     60,
		BotAutoFillDelaySeconds: 5,
	}
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}
		c, err := Parse(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// Parse decodes data over Defaults and validates the seat bounds.
func Parse(data []byte) (GameConfig, error) {
	c := Defaults()
	if err := json.Unmarshal(data, &c); err != nil {
		return GameConfig{}, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if c.MinPlayers < domain.MinSeats || c.MaxPlayers > domain.MaxSeats || c.MinPlayers > c.MaxPlayers {
		return GameConfig{}, fmt.Errorf("players must lie within %d..%d, got %d..%d",
			domain.MinSeats, domain.MaxSeats, c.MinPlayers, c.MaxPlayers)
	}
	if c.MinPlayers%2 != 0 || c.MaxPlayers%2 != 0 {
		return GameConfig{}, fmt.Errorf("player bounds must be even, got %d..%d", c.MinPlayers, c.MaxPlayers)
	}
	return c, nil
}

// GetGameConfig returns the loaded configuration or Defaults.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Defaults()
	}
	return *cfg
}

// Runtime env keys, set under runtime.env in the Nakama config.
const (
	EnvBotsEnabled      = "literature_bots_enabled"
	EnvBotMinDelay      = "literature_bot_min_delay_sec"
	EnvBotMaxDelay      = "literature_bot_max_delay_sec"
	EnvBotAutoFillDelay = "literature_bot_auto_fill_delay_sec"
	EnvVivoxIssuer      = "vivox_issuer"
	EnvVivoxSecret      = "vivox_secret"
	EnvVivoxDomain      = "vivox_domain"
)

// Env is the per-deployment runtime configuration.
type Env struct {
	BotsEnabled      bool
	BotMinDelay      int
	BotMaxDelay      int
	BotAutoFillDelay int

	VivoxIssuer string
	VivoxSecret string
	VivoxDomain string
}

// FromEnv reads the runtime env map, falling back to the game config for the
// auto-fill delay and to fixed defaults for the bot think time.
func FromEnv(env map[string]string) Env {
	e := Env{
		BotsEnabled: env[EnvBotsEnabled] == "true",
		VivoxIssuer: env[EnvVivoxIssuer],
		VivoxSecret: env[EnvVivoxSecret],
		VivoxDomain: env[EnvVivoxDomain],
	}
	e.BotMinDelay = intEnv(env, EnvBotMinDelay, 1)
	e.BotMaxDelay = intEnv(env, EnvBotMaxDelay, 3)
	e.BotAutoFillDelay = intEnv(env, EnvBotAutoFillDelay, GetGameConfig().BotAutoFillDelaySeconds)
	if e.BotMaxDelay < e.BotMinDelay {
		e.BotMaxDelay = e.BotMinDelay
	}
	return e
}

func intEnv(env map[string]string, key string, fallback int) int {
	val, ok := env[key]
	if !ok {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil || i <= 0 {
		return fallback
	}
	return i
}

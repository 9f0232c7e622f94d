package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

// LocalBotPrefix marks bot ids that were never provisioned as Nakama accounts.
const LocalBotPrefix = "bot-"

type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy" or "good"
}

var (
	botIdentities []BotIdentity
	botConfigMap  = map[string]BotIdentity{}
	identitiesMu  sync.RWMutex
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

// LoadIdentities loads the bot profiles from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		var identities []BotIdentity
		if err := json.Unmarshal(data, &identities); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		setIdentities(identities)
	})
	return loadErr
}

func setIdentities(identities []BotIdentity) {
	identitiesMu.Lock()
	defer identitiesMu.Unlock()
	botIdentities = identities
	botConfigMap = make(map[string]BotIdentity, len(identities))
	for _, identity := range identities {
		if identity.UserID != "" {
			botConfigMap[identity.UserID] = identity
		}
	}
}

// ProvisionBots ensures that bot accounts exist in Nakama so their player
// records and display names survive restarts.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) {
	provisionOnce.Do(func() {
		identitiesMu.RLock()
		identities := append([]BotIdentity(nil), botIdentities...)
		identitiesMu.RUnlock()

		for i := range identities {
			identity := &identities[i]
			if identity.DeviceID == "" {
				continue
			}

			userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if err != nil {
				logger.Error("ProvisionBots: Failed to authenticate bot %s: %v", identity.Username, err)
				continue
			}
			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{
				"is_bot":     true,
				"difficulty": identity.Difficulty,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: Failed to update bot account %s: %v", userID, err)
			}
			logger.Info("ProvisionBots: Bot %s (%s) is ready. Difficulty: %s", identity.DisplayName, userID, identity.Difficulty)
		}
		setIdentities(identities)
	})
}

// GetBotConfig returns the full identity configuration for a given bot ID.
func GetBotConfig(userID string) (BotIdentity, bool) {
	identitiesMu.RLock()
	defer identitiesMu.RUnlock()
	config, ok := botConfigMap[userID]
	return config, ok
}

// GetBotDisplayName returns the display name for a bot ID, or an empty string if not a bot.
func GetBotDisplayName(userID string) string {
	if identity, ok := GetBotConfig(userID); ok {
		if identity.DisplayName != "" {
			return identity.DisplayName
		}
		return identity.Username
	}
	if strings.HasPrefix(userID, LocalBotPrefix) {
		return "AI " + strings.TrimPrefix(userID, LocalBotPrefix)
	}
	return ""
}

// GetBotIdentity returns an identity for a bot by index (mod pool size).
func GetBotIdentity(index int) BotIdentity {
	identitiesMu.RLock()
	defer identitiesMu.RUnlock()
	if len(botIdentities) == 0 || botIdentities[index%len(botIdentities)].UserID == "" {
		return BotIdentity{
			UserID:      fmt.Sprintf("%s%d", LocalBotPrefix, index),
			DisplayName: fmt.Sprintf("AI %d", index),
			Difficulty:  "good",
		}
	}
	return botIdentities[index%len(botIdentities)]
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	if strings.HasPrefix(userID, LocalBotPrefix) {
		return true
	}
	_, ok := GetBotConfig(userID)
	return ok
}

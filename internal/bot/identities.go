package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Identity is one entry of the bot roster file.
type Identity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy" or "smart"
	AvatarIndex int    `json:"avatar_index"`
}

// AccountProvisioner is the subset of runtime.NakamaModule used to create bot accounts.
type AccountProvisioner interface {
	AuthenticateDevice(ctx context.Context, id, username string, create bool) (string, string, bool, error)
	AccountUpdateId(ctx context.Context, userID, username string, metadata map[string]interface{}, displayName, timezone, location, langTag, avatarUrl string) error
}

type roster struct {
	mu         sync.RWMutex
	identities []Identity
	byUserID   map[string]Identity
}

var (
	pool     = &roster{byUserID: make(map[string]Identity)}
	loadOnce sync.Once
	loadErr  error
)

// LoadIdentities reads the bot roster once. Later calls return the first result.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		loadErr = pool.load(path)
	})
	return loadErr
}

func (r *roster) load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read bot identities: %w", err)
	}
	var identities []Identity
	if err := json.Unmarshal(data, &identities); err != nil {
		return fmt.Errorf("unmarshal bot identities: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.identities = identities
	r.byUserID = make(map[string]Identity, len(identities))
	for _, identity := range identities {
		if identity.UserID != "" {
			r.byUserID[identity.UserID] = identity
		}
	}
	return nil
}

// ProvisionBots makes sure every roster entry with a device id has a Nakama account tagged
// with is_bot metadata. Failures for individual bots are logged and skipped.
func ProvisionBots(ctx context.Context, nk AccountProvisioner, logger runtime.Logger) int {
	pool.mu.Lock()
	defer pool.mu.Unlock()

	ready := 0
	for i := range pool.identities {
		identity := &pool.identities[i]
		if identity.DeviceID == "" {
			continue
		}

		userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
		if err != nil {
			logger.Error("ProvisionBots: authenticate %s: %v", identity.Username, err)
			continue
		}
		identity.UserID = userID
		identity.Username = username

		metadata := map[string]interface{}{
			"is_bot":       true,
			"difficulty":   identity.Difficulty,
			"avatar_index": identity.AvatarIndex,
		}
		if err := nk.AccountUpdateId(ctx, userID, "", metadata, identity.DisplayName, "", "", "", ""); err != nil {
			logger.Warn("ProvisionBots: update %s: %v", userID, err)
		}

		pool.byUserID[userID] = *identity
		ready++
		logger.Debug("ProvisionBots: %s (%s) ready, difficulty %s", identity.DisplayName, userID, identity.Difficulty)
	}
	return ready
}

// GetBotConfig returns the roster entry for a bot user id.
func GetBotConfig(userID string) (Identity, bool) {
	pool.mu.RLock()
	defer pool.mu.RUnlock()
	identity, ok := pool.byUserID[userID]
	return identity, ok
}

// GetBotDisplayName returns the display name for a bot, falling back to its username.
func GetBotDisplayName(userID string) string {
	identity, ok := GetBotConfig(userID)
	if !ok {
		return ""
	}
	if identity.DisplayName != "" {
		return identity.DisplayName
	}
	return identity.Username
}

// GetBotIdentity picks a roster entry by index (mod roster size). With an empty roster it
// synthesizes an offline identity so local games can still be filled.
func GetBotIdentity(index int) Identity {
	pool.mu.RLock()
	defer pool.mu.RUnlock()

	for n := 0; n < len(pool.identities); n++ {
		identity := pool.identities[(index+n)%len(pool.identities)]
		if identity.UserID != "" {
			return identity
		}
	}
	return Identity{
		UserID:      fmt.Sprintf("bot-%d", index),
		Username:    fmt.Sprintf("bot-%d", index),
		DisplayName: fmt.Sprintf("AI Player %d", index+1),
		Difficulty:  "smart",
	}
}

// IsBot reports whether userID belongs to the roster or is a synthesized bot.
func IsBot(userID string) bool {
	if _, ok := GetBotConfig(userID); ok {
		return true
	}
	var n int
	_, err := fmt.Sscanf(userID, "bot-%d", &n)
	return err == nil
}

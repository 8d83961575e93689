package nakama

import (
	"context"
	"database/sql"

	"hearts/internal/bot"
	"hearts/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs, hooks and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	configPath := defaultGameConfigPath
	if p := env[envGameConfigPath]; p != "" {
		configPath = p
	}
	if err := config.LoadGameConfig(configPath); err != nil {
		logger.Warn("InitModule: Using default game config: %v", err)
	}

	leaderboardID := config.GetLeaderboardID()
	if err := EnsureLeaderboard(ctx, nk, leaderboardID); err != nil {
		return err
	}

	if env[envBotsEnabled] == "true" {
		identitiesPath := defaultBotIdentitiesPath
		if p := env[envBotIdentitiesPath]; p != "" {
			identitiesPath = p
		}
		if err := bot.LoadIdentities(identitiesPath); err != nil {
			logger.Warn("InitModule: Could not load bot identities: %v", err)
		} else {
			logger.Info("InitModule: %d bots provisioned.", bot.ProvisionBots(ctx, nk, logger))
		}
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}
	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	leaderboard := NewNakamaLeaderboardAdapter(nk, leaderboardID)
	if err := initializer.RegisterMatch(MatchNameHearts, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(leaderboard), nil
	}); err != nil {
		return err
	}

	logger.Info("Hearts Go module loaded.")
	return nil
}

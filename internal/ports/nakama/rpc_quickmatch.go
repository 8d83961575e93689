package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"hearts/internal/config"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchResponse is the payload returned to clients when requesting a lobby-capable match.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// matchFinder is the slice of runtime.NakamaModule used by quick match.
type matchFinder interface {
	MatchList(ctx context.Context, limit int, authoritative bool, label string, minSize, maxSize *int, query string) ([]*api.Match, error)
	MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error)
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch)
}

// quickMatchQuery matches hearts lobbies that still have a free seat.
func quickMatchQuery() string {
	return fmt.Sprintf("+label.open:>=1 +label.game:%s +label.phase:%s", GameLabel, phaseLobby)
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return quickMatch(ctx, logger, nk)
}

func quickMatch(ctx context.Context, logger runtime.Logger, nk matchFinder) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	limit := 10
	minSize := 1
	maxSize := config.GetMaxPlayers() - 1

	matches, err := nk.MatchList(ctx, limit, true, "", &minSize, &maxSize, quickMatchQuery())
	if err != nil {
		logger.Error("QuickMatch [User:%s]: MatchList error: %v", userID, err)
		return "", err
	}

	resp := QuickMatchResponse{}
	if len(matches) > 0 {
		resp.MatchID = matches[0].MatchId
		logger.Debug("QuickMatch [User:%s]: Found existing match %s", userID, resp.MatchID)
	} else {
		// Seat and owner assignment happen in MatchJoin.
		matchID, err := nk.MatchCreate(ctx, MatchNameHearts, map[string]interface{}{})
		if err != nil {
			logger.Error("QuickMatch [User:%s]: MatchCreate error: %v", userID, err)
			return "", err
		}
		resp.MatchID = matchID
		resp.IsNew = true
		logger.Info("QuickMatch [User:%s]: Created new match %s", userID, matchID)
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

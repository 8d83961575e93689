package nakama

import (
	"context"
	"errors"
	"fmt"

	"hearts/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
)

// Leaderboard records keep wins in score and games played in subscore; both accumulate
// through the leaderboard's "incr" operator.
const (
	leaderboardSortOrder = "desc"
	leaderboardOperator  = "incr"
)

type leaderboardWriter interface {
	LeaderboardRecordWrite(ctx context.Context, id, ownerID, username string, score, subscore int64, metadata map[string]interface{}, overrideOperator *int) (*api.LeaderboardRecord, error)
}

type leaderboardCreator interface {
	LeaderboardCreate(ctx context.Context, id string, authoritative bool, sortOrder, operator, resetSchedule string, metadata map[string]interface{}, enableRanks bool) error
}

// NakamaLeaderboardAdapter implements ports.LeaderboardPort on a Nakama leaderboard.
type NakamaLeaderboardAdapter struct {
	nk leaderboardWriter
	id string
}

// NewNakamaLeaderboardAdapter creates an adapter writing to the leaderboard id.
func NewNakamaLeaderboardAdapter(nk leaderboardWriter, id string) *NakamaLeaderboardAdapter {
	return &NakamaLeaderboardAdapter{nk: nk, id: id}
}

// EnsureLeaderboard creates the authoritative results leaderboard. Nakama treats an
// existing id as success.
func EnsureLeaderboard(ctx context.Context, nk leaderboardCreator, id string) error {
	metadata := map[string]interface{}{"game": GameLabel}
	if err := nk.LeaderboardCreate(ctx, id, true, leaderboardSortOrder, leaderboardOperator, "", metadata, true); err != nil {
		return fmt.Errorf("create leaderboard %s: %w", id, err)
	}
	return nil
}

// Register writes an empty record so the user shows up before their first game.
func (a *NakamaLeaderboardAdapter) Register(ctx context.Context, userID, username string) error {
	_, err := a.nk.LeaderboardRecordWrite(ctx, a.id, userID, username, 0, 0, nil, nil)
	return err
}

// RecordResults adds one game to every result and one win to the winners. All writes are
// attempted; the joined error reports the ones that failed.
func (a *NakamaLeaderboardAdapter) RecordResults(ctx context.Context, results []ports.GameResult) error {
	var errs []error
	for _, r := range results {
		var wins int64
		if r.Won {
			wins = 1
		}
		metadata := map[string]interface{}{"last_points": r.Points}
		if _, err := a.nk.LeaderboardRecordWrite(ctx, a.id, r.UserID, r.Username, wins, 1, metadata, nil); err != nil {
			errs = append(errs, fmt.Errorf("record %s: %w", r.UserID, err))
		}
	}
	return errors.Join(errs...)
}

var _ ports.LeaderboardPort = (*NakamaLeaderboardAdapter)(nil)

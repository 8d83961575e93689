package ports

import "context"

// GameResult is one player's outcome at the end of a game.
type GameResult struct {
	UserID   string
	Username string
	Won      bool
	Points   int64
}

// LeaderboardPort records finished games on the wins leaderboard.
type LeaderboardPort interface {
	// Register makes sure the user owns a record, so new players rank before their first game.
	Register(ctx context.Context, userID, username string) error

	// RecordResults applies the outcome of one finished game for every human player.
	RecordResults(ctx context.Context, results []GameResult) error
}

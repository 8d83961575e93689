package bot

import (
	"errors"

	"hearts/internal/domain"
)

// ErrNoLegalMove is returned when a seat has nothing it may play.
var ErrNoLegalMove = errors.New("no legal move")

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Play asks the agent to calculate its move based on the current game state.
func (a *Agent) Play(game *domain.Game) (Move, error) {
	player := game.PlayerByUserID(a.ID)
	if player == nil {
		return Move{}, ErrNoLegalMove
	}
	return a.Strategy.CalculateMove(game, player)
}

// PlayAtSeat calculates a move for whoever sits at seat. The match handler uses it to
// auto-play for humans whose turn timer expired.
func (a *Agent) PlayAtSeat(game *domain.Game, seat int) (Move, error) {
	player := game.PlayerBySeat(seat)
	if player == nil {
		return Move{}, ErrNoLegalMove
	}
	return a.Strategy.CalculateMove(game, player)
}

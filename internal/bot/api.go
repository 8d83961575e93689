package bot

import (
	"hearts/internal/domain"
)

// Move is the card a strategy chose for the seat to act.
type Move struct {
	Card domain.Card
}

// Brain picks a legal card for player. Implementations must not mutate game.
type Brain interface {
	CalculateMove(game *domain.Game, player *domain.Player) (Move, error)
}

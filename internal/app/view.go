package app

import "hearts/internal/domain"

// SeatView is one player as seen from a particular viewer. Position 0 is the viewer,
// position k is k turns after the viewer.
type SeatView struct {
	Position       int
	PublicID       string
	Name           string
	Score          int
	Points         int
	IsPlaying      bool
	IsLocal        bool
	PlayedCard     domain.Card
	CardsRemaining int
	Hand           []domain.Card // only filled for the viewer
}

// TableView is the per-viewer projection a client renders without further rotation logic.
type TableView struct {
	Phase        domain.Phase
	Round        int
	TrickNumber  int
	HeartsBroken bool
	LedSuit      domain.Suit

	Seats []SeatView

	TurnPosition            int
	LastTrickWinnerPosition int // -1 before the first trick of the round resolves
	LegalCards              []domain.Card
}

// BuildTableView rotates the table so that viewerUserID sits at position 0.
// Spectators and unknown users see the table from seat 0.
func BuildTableView(game *domain.Game, viewerUserID string) TableView {
	view := TableView{
		Phase:                   game.Phase,
		Round:                   game.Round,
		TrickNumber:             game.TrickNumber,
		HeartsBroken:            game.HeartsBroken,
		LedSuit:                 game.LedCard.Suit(),
		LastTrickWinnerPosition: -1,
	}

	viewer := game.PlayerByUserID(viewerUserID)
	reference := viewer
	if reference == nil {
		reference = game.PlayerBySeat(0)
	}
	if reference == nil {
		return view
	}

	for k := 0; k < len(game.Players); k++ {
		p := domain.PlayerAt(game.Players, reference, k)
		if p == nil {
			continue
		}
		sv := SeatView{
			Position:       k,
			PublicID:       p.PublicID,
			Name:           p.Name,
			Score:          p.Score,
			Points:         p.Points,
			IsPlaying:      p.IsPlaying,
			IsLocal:        p == viewer,
			PlayedCard:     p.PlayedCard,
			CardsRemaining: len(p.Hand),
		}
		if sv.IsLocal {
			sv.Hand = p.Hand
		}
		view.Seats = append(view.Seats, sv)
	}

	if current := game.PlayerBySeat(game.CurrentTurn); current != nil {
		view.TurnPosition = domain.RelativePosition(game.Players, reference, current.PublicID)
		if current == viewer && game.Phase == domain.PhasePlaying {
			view.LegalCards = game.LegalPlaysFor(viewer)
		}
	}
	if winner := game.PlayerBySeat(game.LastTrickWinnerSeat); winner != nil && game.LastTrickWinnerSeat >= 0 {
		view.LastTrickWinnerPosition = domain.RelativePosition(game.Players, reference, winner.PublicID)
	}
	return view
}

package domain

import "slices"

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseLobby indicates the match is waiting for players.
	PhaseLobby Phase = "lobby"
	// PhasePlaying indicates the match is actively in progress.
	PhasePlaying Phase = "playing"
	// PhaseEnded indicates the match has finished.
	PhaseEnded Phase = "ended"
)

// Game captures the domain state for a single Hearts game.
type Game struct {
	Phase   Phase
	Players []*Player // indexed by seat

	CurrentTurn  int  // seat expected to play next
	LedCard      Card // first card of the current trick, zero between tricks
	TrickNumber  int  // 0-based within the round
	HeartsBroken bool
	Round        int
	PointLimit   int
	RoundPoints  int // point cards dealt this round

	LastTrickWinnerSeat int // -1 before the first trick resolves
}

// PlayerBySeat returns the player at seat, or nil.
func (g *Game) PlayerBySeat(seat int) *Player {
	return PlayerAtSeat(g.Players, seat)
}

// PlayerByUserID returns the player with the given user id, or nil.
func (g *Game) PlayerByUserID(userID string) *Player {
	for _, p := range g.Players {
		if p.ID == userID {
			return p
		}
	}
	return nil
}

// TrickCards returns the cards on the table in seat order.
func (g *Game) TrickCards() []Card {
	var cards []Card
	for _, p := range g.Players {
		if p.HasPlayed() {
			cards = append(cards, p.PlayedCard)
		}
	}
	return cards
}

// TrickComplete reports whether every player has a card on the table.
func (g *Game) TrickComplete() bool {
	for _, p := range g.Players {
		if !p.HasPlayed() {
			return false
		}
	}
	return len(g.Players) > 0
}

// HandsEmpty reports whether the round has been fully played.
func (g *Game) HandsEmpty() bool {
	for _, p := range g.Players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

// LegalPlaysFor returns the legal cards for p in the current trick. The first lead of
// a round must be the lowest club dealt.
func (g *Game) LegalPlaysFor(p *Player) []Card {
	if g.TrickNumber == 0 && g.LedCard.IsZero() {
		if _, opening := OpeningSeat(g.Players); !opening.IsZero() && p.HasCard(opening) {
			return []Card{opening}
		}
	}
	return LegalPlays(p.Hand, g.LedCard, g.HeartsBroken, g.TrickNumber == 0)
}

// IsLegal reports whether p may play c now.
func (g *Game) IsLegal(p *Player, c Card) bool {
	return slices.Contains(g.LegalPlaysFor(p), c)
}

// Standings returns players ordered by cumulative points, lowest first; ties keep seat order.
func (g *Game) Standings() []*Player {
	out := slices.Clone(g.Players)
	slices.SortStableFunc(out, func(a, b *Player) int {
		return a.Points - b.Points
	})
	return out
}

// ReachedLimit reports whether any player has hit the point limit.
func (g *Game) ReachedLimit() bool {
	if g.PointLimit <= 0 {
		return false
	}
	for _, p := range g.Players {
		if p.Points >= g.PointLimit {
			return true
		}
	}
	return false
}

package domain

// Player holds the domain state for a seated participant.
type Player struct {
	ID       string // Nakama user id; never sent to other players
	PublicID string
	Name     string

	Score  int // points taken in the current round
	Points int // cumulative points across rounds

	Seat      int // 0-based, contiguous across the table
	IsPlaying bool

	PlayedCard Card // zero while the player has not acted in the current trick
	Hand       []Card
	Graveyard  []Card // cards taken in won tricks
}

// HasPlayed reports whether the player has a card on the table.
func (p *Player) HasPlayed() bool {
	return p != nil && !p.PlayedCard.IsZero()
}

// HasCard reports whether c is in the player's hand.
func (p *Player) HasCard(c Card) bool {
	for _, h := range p.Hand {
		if h == c {
			return true
		}
	}
	return false
}

package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSeatOutOfRange = errors.New("seat out of range")
	ErrDuplicateSeat  = errors.New("duplicate seat")
)

// Rotation helpers never mutate players. Turn order runs from seat s to seat s-1,
// wrapping from seat 0 to the highest seat.

// PlayerAtSeat returns the player occupying seat, or nil.
func PlayerAtSeat(players []*Player, seat int) *Player {
	for _, p := range players {
		if p != nil && p.Seat == seat {
			return p
		}
	}
	return nil
}

func referenceSeat(reference *Player) int {
	if reference == nil {
		return 0
	}
	return reference.Seat
}

func wrapSeat(seat, n int) int {
	return ((seat % n) + n) % n
}

// NextPlayer returns the player who acts after reference. A nil reference is
// treated as seat 0. Returns nil only if the computed seat is vacant.
func NextPlayer(players []*Player, reference *Player) *Player {
	n := len(players)
	if n == 0 {
		return nil
	}
	return PlayerAtSeat(players, wrapSeat(referenceSeat(reference)-1, n))
}

// PreviousPlayer returns the player who acted before reference.
func PreviousPlayer(players []*Player, reference *Player) *Player {
	n := len(players)
	if n == 0 {
		return nil
	}
	return PlayerAtSeat(players, wrapSeat(referenceSeat(reference)+1, n))
}

// PlayerAt returns the player offset steps of NextPlayer away from reference.
// Offset 0 is the reference itself.
func PlayerAt(players []*Player, reference *Player, offset int) *Player {
	if offset <= 0 {
		return reference
	}
	p := reference
	for i := 0; i < offset; i++ {
		p = NextPlayer(players, p)
		if p == nil {
			return nil
		}
	}
	return p
}

// RelativePosition returns how many NextPlayer steps separate reference from the
// player with targetPublicID. Unknown targets yield 0.
func RelativePosition(players []*Player, reference *Player, targetPublicID string) int {
	pos, _ := LookupRelativePosition(players, reference, targetPublicID)
	return pos
}

// LookupRelativePosition is RelativePosition with an explicit not-found flag.
func LookupRelativePosition(players []*Player, reference *Player, targetPublicID string) (int, bool) {
	if reference != nil && reference.PublicID == targetPublicID {
		return 0, true
	}
	n := len(players)
	p := reference
	for k := 1; k <= n; k++ {
		p = NextPlayer(players, p)
		if p == nil {
			break
		}
		if p.PublicID == targetPublicID {
			return k % n, true
		}
	}
	return 0, false
}

// TrickWinner returns the player holding the highest played card of the led suit.
// When nobody followed suit the first player in the list is returned.
func TrickWinner(players []*Player, ledCard Card) *Player {
	if winner, ok := LookupTrickWinner(players, ledCard); ok {
		return winner
	}
	if len(players) == 0 {
		return nil
	}
	return players[0]
}

// LookupTrickWinner is TrickWinner with an explicit flag for "no card followed suit".
func LookupTrickWinner(players []*Player, ledCard Card) (*Player, bool) {
	led := ledCard.Suit()
	var winner *Player
	for _, p := range players {
		if !p.HasPlayed() || p.PlayedCard.Suit() != led {
			continue
		}
		if winner == nil || CompareCards(p.PlayedCard, winner.PlayedCard) > 0 {
			winner = p
		}
	}
	return winner, winner != nil
}

// ValidateSeats checks that seats form {0..N-1} without duplicates.
func ValidateSeats(players []*Player) error {
	seen := make(map[int]bool, len(players))
	for _, p := range players {
		if p.Seat < 0 || p.Seat >= len(players) {
			return fmt.Errorf("player %s at seat %d: %w", p.PublicID, p.Seat, ErrSeatOutOfRange)
		}
		if seen[p.Seat] {
			return fmt.Errorf("player %s at seat %d: %w", p.PublicID, p.Seat, ErrDuplicateSeat)
		}
		seen[p.Seat] = true
	}
	return nil
}

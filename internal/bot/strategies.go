package bot

import (
	"hearts/internal/domain"
)

// EasyBot always plays its lowest legal card.
type EasyBot struct{}

func (b *EasyBot) CalculateMove(game *domain.Game, player *domain.Player) (Move, error) {
	legal := game.LegalPlaysFor(player)
	if len(legal) == 0 {
		return Move{}, ErrNoLegalMove
	}
	return Move{Card: legal[0]}, nil
}

// SmartBot avoids taking points:
//   - leading: lowest card of its longest non-heart suit
//   - following suit: highest card that still loses to the current winner, else lowest
//     (highest when it plays last and the trick is clean)
//   - void: dump the queen of spades, then the highest heart, then the highest card
type SmartBot struct{}

func (b *SmartBot) CalculateMove(game *domain.Game, player *domain.Player) (Move, error) {
	legal := game.LegalPlaysFor(player)
	if len(legal) == 0 {
		return Move{}, ErrNoLegalMove
	}
	if len(legal) == 1 {
		return Move{Card: legal[0]}, nil
	}

	if game.LedCard.IsZero() {
		return Move{Card: chooseLead(legal, player.Hand)}, nil
	}

	led := game.LedCard.Suit()
	if legal[0].Suit() == led {
		return Move{Card: chooseFollow(game, legal)}, nil
	}
	return Move{Card: chooseDiscard(legal)}, nil
}

func chooseLead(legal, hand []domain.Card) domain.Card {
	counts := make(map[domain.Suit]int)
	for _, c := range hand {
		counts[c.Suit()]++
	}
	best := legal[0]
	for _, c := range legal {
		if c.Suit() == domain.SuitHearts || c == domain.QueenOfSpades {
			continue
		}
		if best.Suit() == domain.SuitHearts || best == domain.QueenOfSpades || counts[c.Suit()] > counts[best.Suit()] {
			best = c
		}
	}
	return best
}

func chooseFollow(game *domain.Game, legal []domain.Card) domain.Card {
	winner := domain.TrickWinner(game.Players, game.LedCard)
	high := winner.PlayedCard

	// legal is sorted ascending; walk down to the highest card that ducks.
	for i := len(legal) - 1; i >= 0; i-- {
		if domain.CompareCards(legal[i], high) < 0 && legal[i] != domain.QueenOfSpades {
			return legal[i]
		}
	}

	playsLast := len(game.TrickCards()) == len(game.Players)-1
	if playsLast && domain.TrickPoints(game.TrickCards()) == 0 {
		top := legal[len(legal)-1]
		if top != domain.QueenOfSpades {
			return top
		}
	}
	return legal[0]
}

func chooseDiscard(legal []domain.Card) domain.Card {
	var highHeart domain.Card
	for _, c := range legal {
		if c == domain.QueenOfSpades {
			return c
		}
		if c.Suit() == domain.SuitHearts {
			highHeart = c
		}
	}
	if !highHeart.IsZero() {
		return highHeart
	}
	highest := legal[0]
	for _, c := range legal {
		if c.Rank() > highest.Rank() {
			highest = c
		}
	}
	return highest
}

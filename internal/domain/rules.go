package domain

// MoonPoints is the total number of points in a full deck. Rounds that leave cards
// out of the deal may have fewer in play; see PointsInPlay.
const MoonPoints = 26

// QueenOfSpades carries 13 points.
var QueenOfSpades = NewCard(RankQueen, SuitSpades)

// CardPoints returns the penalty points a card is worth.
func CardPoints(c Card) int {
	switch {
	case c.Suit() == SuitHearts:
		return 1
	case c == QueenOfSpades:
		return 13
	default:
		return 0
	}
}

// TrickPoints sums the penalty points of the given cards.
func TrickPoints(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += CardPoints(c)
	}
	return total
}

// LegalPlays returns the cards from hand that may be played. A zero ledCard means
// the player is leading the trick.
//
// Following: must follow the led suit when able.
// Leading: hearts may not be led before they are broken, unless nothing else is held.
// First trick: point cards may not be discarded unless nothing else is held.
func LegalPlays(hand []Card, ledCard Card, heartsBroken, firstTrick bool) []Card {
	if len(hand) == 0 {
		return nil
	}

	if !ledCard.IsZero() {
		follow := filterCards(hand, func(c Card) bool { return c.Suit() == ledCard.Suit() })
		if len(follow) > 0 {
			return follow
		}
		if firstTrick {
			if clean := filterCards(hand, func(c Card) bool { return CardPoints(c) == 0 }); len(clean) > 0 {
				return clean
			}
		}
		return SortCards(hand)
	}

	if !heartsBroken {
		if nonHearts := filterCards(hand, func(c Card) bool { return c.Suit() != SuitHearts }); len(nonHearts) > 0 {
			return nonHearts
		}
	}
	return SortCards(hand)
}

// OpeningSeat returns the seat of the player holding the lowest club, and that card.
// Falls back to seat 0 when no club was dealt.
func OpeningSeat(players []*Player) (int, Card) {
	seat, lowest := 0, Card("")
	for _, p := range players {
		for _, c := range p.Hand {
			if c.Suit() != SuitClubs {
				continue
			}
			if lowest.IsZero() || CompareCards(c, lowest) < 0 {
				seat, lowest = p.Seat, c
			}
		}
	}
	return seat, lowest
}

// PointsInPlay sums the point cards dealt into the players' hands.
func PointsInPlay(players []*Player) int {
	total := 0
	for _, p := range players {
		for _, c := range p.Hand {
			total += CardPoints(c)
		}
	}
	return total
}

// ApplyShootTheMoon rewrites round scores when one player took all roundPoints.
// The others are charged roundPoints each. Returns the shooter, or nil.
func ApplyShootTheMoon(players []*Player, roundPoints int) *Player {
	if roundPoints <= 0 {
		return nil
	}
	for _, p := range players {
		if p.Score != roundPoints {
			continue
		}
		for _, other := range players {
			if other == p {
				other.Score = 0
			} else {
				other.Score = roundPoints
			}
		}
		return p
	}
	return nil
}

func filterCards(hand []Card, keep func(Card) bool) []Card {
	var out []Card
	for _, c := range hand {
		if keep(c) {
			out = append(out, c)
		}
	}
	return SortCards(out)
}

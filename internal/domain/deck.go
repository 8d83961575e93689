package domain

import "math/rand"

// NewDeck returns a sorted 52-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range Suits {
		for r := MinRank; r <= MaxRank; r++ {
			deck = append(deck, NewCard(r, s))
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// DealHands splits deck into n equal sorted hands. Cards that do not divide
// evenly are left out of play.
func DealHands(deck []Card, n int) [][]Card {
	if n <= 0 {
		return nil
	}
	size := len(deck) / n
	hands := make([][]Card, n)
	for i := range hands {
		hands[i] = SortCards(deck[i*size : (i+1)*size])
	}
	return hands
}

// RemoveCard returns hand without the first occurrence of c.
func RemoveCard(hand []Card, c Card) []Card {
	out := make([]Card, 0, len(hand))
	removed := false
	for _, h := range hand {
		if !removed && h == c {
			removed = true
			continue
		}
		out = append(out, h)
	}
	return out
}

package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Suit is the suit segment of an encoded card.
type Suit string

const (
	SuitClubs    Suit = "clubs"
	SuitDiamonds Suit = "diamonds"
	SuitSpades   Suit = "spades"
	SuitHearts   Suit = "hearts"
)

// Suits lists every suit in ascending sort order.
var Suits = []Suit{SuitClubs, SuitDiamonds, SuitSpades, SuitHearts}

const (
	cardPrefix    = "card"
	cardDelimiter = "_"
	rankSegment   = 1
	suitSegment   = 2

	// MinRank is the two, MaxRank the ace.
	MinRank = 2
	MaxRank = 14

	RankQueen = 12
)

// Card is an encoded card token of the form card_<rank>_<suit>, e.g. card_12_spades.
// The zero value means "no card".
type Card string

// NewCard encodes a rank and suit into a card token.
func NewCard(rank int, suit Suit) Card {
	return Card(cardPrefix + cardDelimiter + strconv.Itoa(rank) + cardDelimiter + string(suit))
}

// ParseCard validates an encoded token received from a client.
func ParseCard(token string) (Card, error) {
	c := Card(token)
	parts := strings.Split(token, cardDelimiter)
	if len(parts) != 3 || parts[0] != cardPrefix {
		return "", fmt.Errorf("malformed card %q", token)
	}
	if suitIndex(c.Suit()) < 0 {
		return "", fmt.Errorf("unknown suit in card %q", token)
	}
	if r := c.Rank(); r < MinRank || r > MaxRank {
		return "", fmt.Errorf("rank out of range in card %q", token)
	}
	return c, nil
}

// IsZero reports whether c is the absent card.
func (c Card) IsZero() bool {
	return c == ""
}

// Suit extracts the suit segment. Malformed tokens yield "".
func (c Card) Suit() Suit {
	parts := strings.Split(string(c), cardDelimiter)
	if len(parts) <= suitSegment {
		return ""
	}
	return Suit(parts[suitSegment])
}

// Rank extracts the numeric rank (2..14). Malformed tokens yield 0.
func (c Card) Rank() int {
	parts := strings.Split(string(c), cardDelimiter)
	if len(parts) <= rankSegment {
		return 0
	}
	r, err := strconv.Atoi(parts[rankSegment])
	if err != nil {
		return 0
	}
	return r
}

func (c Card) String() string {
	return string(c)
}

func suitIndex(s Suit) int {
	return slices.Index(Suits, s)
}

// CompareCards is the total order over cards: suit, then rank, then the raw token
// so that malformed or duplicate-looking tokens still order deterministically.
func CompareCards(a, b Card) int {
	if d := suitIndex(a.Suit()) - suitIndex(b.Suit()); d != 0 {
		return d
	}
	if d := a.Rank() - b.Rank(); d != 0 {
		return d
	}
	return strings.Compare(string(a), string(b))
}

// SortCards returns a sorted copy of cards.
func SortCards(cards []Card) []Card {
	out := slices.Clone(cards)
	slices.SortFunc(out, CompareCards)
	return out
}

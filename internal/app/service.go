package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"hearts/internal/domain"

	"github.com/google/uuid"
)

// Service contains Hearts use-cases operating on domain state.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrNotPlaying     = errors.New("match not in playing phase")
	ErrTooFewPlayers  = errors.New("not enough players to start")
	ErrTooManyPlayers = errors.New("too many players to start")
	ErrUnknownPlayer  = errors.New("player not found")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrCardNotInHand  = errors.New("card not in hand")
	ErrIllegalPlay    = errors.New("card cannot be played now")
	ErrSeatIntegrity  = errors.New("seat assignment is inconsistent")
)

// StartGame creates a Game from the given seat occupancy (empty strings for empty seats).
// Occupied seats are compacted so the players sit at 0..N-1 in the same relative order.
// names maps user ids to display names; missing entries fall back to the user id.
func (s *Service) StartGame(seats []string, names map[string]string, pointLimit int) (*domain.Game, []Event, error) {
	var players []*domain.Player
	for _, userID := range seats {
		if userID == "" {
			continue
		}
		name := names[userID]
		if name == "" {
			name = userID
		}
		players = append(players, &domain.Player{
			ID:       userID,
			PublicID: newPublicID(),
			Name:     name,
			Seat:     len(players),
		})
	}

	if len(players) < MinPlayersToStartGame {
		return nil, nil, ErrTooFewPlayers
	}
	if len(players) > MaxPlayers {
		return nil, nil, ErrTooManyPlayers
	}
	if err := domain.ValidateSeats(players); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSeatIntegrity, err)
	}
	if pointLimit <= 0 {
		pointLimit = DefaultPointLimit
	}

	game := &domain.Game{
		Phase:               domain.PhasePlaying,
		Players:             players,
		PointLimit:          pointLimit,
		LastTrickWinnerSeat: -1,
	}
	return game, s.dealRound(game), nil
}

// PlayCard processes a single card played by the player at seat.
func (s *Service) PlayCard(game *domain.Game, seat int, card domain.Card) ([]Event, error) {
	if game == nil || game.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	pl := game.PlayerBySeat(seat)
	if pl == nil {
		return nil, ErrUnknownPlayer
	}
	if game.CurrentTurn != seat {
		return nil, ErrNotYourTurn
	}
	if !pl.HasCard(card) {
		return nil, ErrCardNotInHand
	}
	if !game.IsLegal(pl, card) {
		return nil, ErrIllegalPlay
	}

	pl.Hand = domain.RemoveCard(pl.Hand, card)
	pl.PlayedCard = card
	pl.IsPlaying = false
	if game.LedCard.IsZero() {
		game.LedCard = card
	}
	if card.Suit() == domain.SuitHearts {
		game.HeartsBroken = true
	}

	if game.TrickComplete() {
		events := []Event{{
			Kind: EventCardPlayed,
			Payload: CardPlayedPayload{
				Seat:         seat,
				Card:         card,
				NextTurnSeat: -1,
				HeartsBroken: game.HeartsBroken,
			},
		}}
		return append(events, s.resolveTrick(game)...), nil
	}

	next := domain.NextPlayer(game.Players, pl)
	if next == nil {
		return nil, ErrSeatIntegrity
	}
	game.CurrentTurn = next.Seat
	next.IsPlaying = true

	return []Event{{
		Kind: EventCardPlayed,
		Payload: CardPlayedPayload{
			Seat:         seat,
			Card:         card,
			NextTurnSeat: next.Seat,
			HeartsBroken: game.HeartsBroken,
		},
	}}, nil
}

func (s *Service) resolveTrick(game *domain.Game) []Event {
	winner := domain.TrickWinner(game.Players, game.LedCard)
	cards := game.TrickCards()
	points := domain.TrickPoints(cards)

	winner.Score += points
	winner.Graveyard = append(winner.Graveyard, cards...)
	for _, p := range game.Players {
		p.PlayedCard = ""
		p.IsPlaying = false
	}
	game.LedCard = ""
	game.TrickNumber++
	game.LastTrickWinnerSeat = winner.Seat
	game.CurrentTurn = winner.Seat
	winner.IsPlaying = true

	events := []Event{{
		Kind: EventTrickWon,
		Payload: TrickWonPayload{
			WinnerSeat: winner.Seat,
			Cards:      cards,
			Points:     points,
		},
	}}

	if game.HandsEmpty() {
		events = append(events, s.endRound(game)...)
	}
	return events
}

func (s *Service) endRound(game *domain.Game) []Event {
	moonSeat := -1
	if shooter := domain.ApplyShootTheMoon(game.Players, game.RoundPoints); shooter != nil {
		moonSeat = shooter.Seat
	}

	scores := make(map[int]int, len(game.Players))
	points := make(map[int]int, len(game.Players))
	for _, p := range game.Players {
		p.Points += p.Score
		scores[p.Seat] = p.Score
		points[p.Seat] = p.Points
	}

	events := []Event{{
		Kind: EventRoundEnded,
		Payload: RoundEndedPayload{
			Round:       game.Round,
			Scores:      scores,
			Points:      points,
			MoonShooter: moonSeat,
		},
	}}

	if !game.ReachedLimit() {
		return append(events, s.dealRound(game)...)
	}

	game.Phase = domain.PhaseEnded
	standings := game.Standings()
	seats := make([]int, len(standings))
	for i, p := range standings {
		p.IsPlaying = false
		seats[i] = p.Seat
	}
	return append(events, Event{
		Kind:    EventGameEnded,
		Payload: GameEndedPayload{StandingSeats: seats, Points: points},
	})
}

// dealRound shuffles, deals and picks the opening seat for the next round.
func (s *Service) dealRound(game *domain.Game) []Event {
	game.Round++
	game.TrickNumber = 0
	game.HeartsBroken = false
	game.LedCard = ""
	game.LastTrickWinnerSeat = -1

	deck := domain.ShuffleDeck(s.rng, domain.NewDeck())
	hands := domain.DealHands(deck, len(game.Players))

	events := make([]Event, 0, len(game.Players)+1)
	for _, pl := range game.Players {
		pl.Hand = hands[pl.Seat]
		pl.Score = 0
		pl.Graveyard = nil
		pl.PlayedCard = ""
		pl.IsPlaying = false

		events = append(events, Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				UserID: pl.ID,
				Seat:   pl.Seat,
				Hand:   pl.Hand,
			},
			Recipients: []string{pl.ID},
		})
	}

	game.RoundPoints = domain.PointsInPlay(game.Players)

	seat, _ := domain.OpeningSeat(game.Players)
	game.CurrentTurn = seat
	game.PlayerBySeat(seat).IsPlaying = true

	return append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			Round:         game.Round,
			FirstTurnSeat: seat,
			PlayerCount:   len(game.Players),
		},
	})
}

// newPublicID returns a time-based UUID so public ids sort roughly by creation.
func newPublicID() string {
	id, err := uuid.NewUUID()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

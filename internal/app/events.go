package app

import "hearts/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventGameStarted EventKind = "game_started"
	EventHandDealt   EventKind = "hand_dealt"
	EventCardPlayed  EventKind = "card_played"
	EventTrickWon    EventKind = "trick_won"
	EventRoundEnded  EventKind = "round_ended"
	EventGameEnded   EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type GameStartedPayload struct {
	Round         int
	FirstTurnSeat int
	PlayerCount   int
}

type HandDealtPayload struct {
	UserID string
	Seat   int
	Hand   []domain.Card
}

type CardPlayedPayload struct {
	Seat         int
	Card         domain.Card
	NextTurnSeat int // -1 when the card completed the trick
	HeartsBroken bool
}

type TrickWonPayload struct {
	WinnerSeat int
	Cards      []domain.Card
	Points     int
}

type RoundEndedPayload struct {
	Round       int
	Scores      map[int]int // seat -> round score after moon adjustment
	Points      map[int]int // seat -> cumulative points
	MoonShooter int         // seat, or -1
}

type GameEndedPayload struct {
	StandingSeats []int // lowest points first
	Points        map[int]int
}

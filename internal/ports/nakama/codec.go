package nakama

import (
	"errors"
	"fmt"

	"hearts/internal/app"
	"hearts/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

var errMissingField = errors.New("missing field")

var marshalOptions = protojson.MarshalOptions{EmitUnpopulated: true}

// encodeMessage serializes a JSON-like map through structpb so every payload on the wire
// goes through the same protobuf JSON encoder.
func encodeMessage(fields map[string]interface{}) ([]byte, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build message: %w", err)
	}
	return marshalOptions.Marshal(s)
}

// decodeMessage parses a client payload. An empty payload decodes to an empty map.
func decodeMessage(data []byte) (map[string]interface{}, error) {
	if len(data) == 0 {
		return map[string]interface{}{}, nil
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	return s.AsMap(), nil
}

// decodePlayCard extracts the card token from a play request: {"card": "card_12_spades"}.
func decodePlayCard(data []byte) (domain.Card, error) {
	msg, err := decodeMessage(data)
	if err != nil {
		return "", err
	}
	token, ok := msg["card"].(string)
	if !ok {
		return "", fmt.Errorf("%w: card", errMissingField)
	}
	return domain.ParseCard(token)
}

func cardList(cards []domain.Card) []interface{} {
	out := make([]interface{}, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func intList(values []int) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// seatMap turns a seat-keyed map into a list ordered by seat, since JSON objects need
// string keys.
func seatMap(values map[int]int, game *domain.Game) []interface{} {
	out := make([]interface{}, 0, len(values))
	for seat := 0; seat < len(game.Players); seat++ {
		v, ok := values[seat]
		if !ok {
			continue
		}
		out = append(out, map[string]interface{}{
			"seat":      seat,
			"public_id": publicID(game, seat),
			"value":     v,
		})
	}
	return out
}

func publicID(game *domain.Game, seat int) string {
	if p := game.PlayerBySeat(seat); p != nil {
		return p.PublicID
	}
	return ""
}

// eventMessage maps an app event to its op code and wire fields.
func eventMessage(game *domain.Game, ev app.Event) (int64, map[string]interface{}, error) {
	switch p := ev.Payload.(type) {
	case app.GameStartedPayload:
		return OpGameStarted, map[string]interface{}{
			"round":             p.Round,
			"first_turn_seat":   p.FirstTurnSeat,
			"first_turn_player": publicID(game, p.FirstTurnSeat),
			"player_count":      p.PlayerCount,
		}, nil
	case app.HandDealtPayload:
		return OpHandDealt, map[string]interface{}{
			"seat": p.Seat,
			"hand": cardList(p.Hand),
		}, nil
	case app.CardPlayedPayload:
		next := ""
		if p.NextTurnSeat >= 0 {
			next = publicID(game, p.NextTurnSeat)
		}
		return OpCardPlayed, map[string]interface{}{
			"seat":           p.Seat,
			"player":         publicID(game, p.Seat),
			"card":           p.Card.String(),
			"next_turn_seat": p.NextTurnSeat,
			"next_player":    next,
			"hearts_broken":  p.HeartsBroken,
		}, nil
	case app.TrickWonPayload:
		return OpTrickWon, map[string]interface{}{
			"winner_seat": p.WinnerSeat,
			"winner":      publicID(game, p.WinnerSeat),
			"cards":       cardList(p.Cards),
			"points":      p.Points,
		}, nil
	case app.RoundEndedPayload:
		return OpRoundEnded, map[string]interface{}{
			"round":        p.Round,
			"scores":       seatMap(p.Scores, game),
			"points":       seatMap(p.Points, game),
			"moon_shooter": p.MoonShooter,
		}, nil
	case app.GameEndedPayload:
		standings := make([]interface{}, len(p.StandingSeats))
		for i, seat := range p.StandingSeats {
			standings[i] = publicID(game, seat)
		}
		return OpGameEnded, map[string]interface{}{
			"standing_seats": intList(p.StandingSeats),
			"standings":      standings,
			"points":         seatMap(p.Points, game),
		}, nil
	default:
		return 0, nil, fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}

// tableMessage renders a per-viewer table view.
func tableMessage(view app.TableView) map[string]interface{} {
	seats := make([]interface{}, len(view.Seats))
	for i, sv := range view.Seats {
		seat := map[string]interface{}{
			"position":        sv.Position,
			"public_id":       sv.PublicID,
			"name":            sv.Name,
			"score":           sv.Score,
			"points":          sv.Points,
			"is_playing":      sv.IsPlaying,
			"is_local":        sv.IsLocal,
			"played_card":     sv.PlayedCard.String(),
			"cards_remaining": sv.CardsRemaining,
		}
		if sv.IsLocal {
			seat["hand"] = cardList(sv.Hand)
		}
		seats[i] = seat
	}
	return map[string]interface{}{
		"phase":                      string(view.Phase),
		"round":                      view.Round,
		"trick_number":               view.TrickNumber,
		"hearts_broken":              view.HeartsBroken,
		"led_suit":                   string(view.LedSuit),
		"seats":                      seats,
		"turn_position":              view.TurnPosition,
		"last_trick_winner_position": view.LastTrickWinnerPosition,
		"legal_cards":                cardList(view.LegalCards),
	}
}

func errorMessage(code int, message string) map[string]interface{} {
	return map[string]interface{}{"code": code, "message": message}
}

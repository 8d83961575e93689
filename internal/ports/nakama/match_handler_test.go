package nakama

import (
	"context"
	"math/rand"
	"testing"

	"hearts/internal/bot"
	"hearts/internal/domain"
	"hearts/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

type testPresence struct {
	userID   string
	username string
}

func (p testPresence) GetHidden() bool                   { return false }
func (p testPresence) GetPersistence() bool              { return false }
func (p testPresence) GetUsername() string               { return p.username }
func (p testPresence) GetStatus() string                 { return "" }
func (p testPresence) GetReason() runtime.PresenceReason { return runtime.PresenceReasonUnknown }
func (p testPresence) GetUserId() string                 { return p.userID }
func (p testPresence) GetSessionId() string              { return "session-" + p.userID }
func (p testPresence) GetNodeId() string                 { return "node" }

type testMatchData struct {
	testPresence
	opCode int64
	data   []byte
}

func (d testMatchData) GetOpCode() int64      { return d.opCode }
func (d testMatchData) GetData() []byte       { return d.data }
func (d testMatchData) GetReference() string  { return "" }
func (d testMatchData) GetReceiveTime() int64 { return 0 }
func (d testMatchData) GetReliable() bool     { return true }

type sentMessage struct {
	opCode     int64
	data       []byte
	recipients []runtime.Presence
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	messages []sentMessage
	labels   []string
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.messages = append(md.messages, sentMessage{opCode: opCode, data: append([]byte(nil), data...), recipients: presences})
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labels = append(md.labels, label)
	return nil
}

// lastTo returns the payload of the last message with opCode addressed to userID.
func (md *mockDispatcher) lastTo(t *testing.T, opCode int64, userID string) map[string]interface{} {
	t.Helper()
	for i := len(md.messages) - 1; i >= 0; i-- {
		m := md.messages[i]
		if m.opCode != opCode {
			continue
		}
		if len(m.recipients) > 0 && m.recipients[0].GetUserId() != userID {
			continue
		}
		fields, err := decodeMessage(m.data)
		if err != nil {
			t.Fatalf("decode message %d: %v", opCode, err)
		}
		return fields
	}
	t.Fatalf("no message %d for %s", opCode, userID)
	return nil
}

func (md *mockDispatcher) count(opCode int64) int {
	n := 0
	for _, m := range md.messages {
		if m.opCode == opCode {
			n++
		}
	}
	return n
}

type fakeLeaderboard struct {
	results [][]ports.GameResult
}

func (f *fakeLeaderboard) Register(context.Context, string, string) error { return nil }

func (f *fakeLeaderboard) RecordResults(_ context.Context, results []ports.GameResult) error {
	f.results = append(f.results, results)
	return nil
}

func init() {
	// Load bot identities for testing.
	if err := bot.LoadIdentities("test_bot_identities.json"); err != nil {
		panic("Failed to load bot identities for tests: " + err.Error())
	}
}

func newTestState(lb ports.LeaderboardPort) *MatchState {
	return newMatchState(map[string]string{}, lb, rand.New(rand.NewSource(11)))
}

func TestFindFirstHumanSeat(t *testing.T) {
	bot1 := bot.GetBotIdentity(0).UserID
	bot2 := bot.GetBotIdentity(1).UserID

	tests := []struct {
		name  string
		seats []string
		want  int
	}{
		{name: "FirstHumanAfterBot", seats: []string{bot1, "user-1", "", ""}, want: 1},
		{name: "AllBots", seats: []string{bot1, bot2, "", ""}, want: -1},
		{name: "AllEmpty", seats: []string{"", "", "", ""}, want: -1},
		{name: "FirstHumanIsSeatZero", seats: []string{"user-1", bot1, "user-2", ""}, want: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := findFirstHumanSeat(test.seats); got != test.want {
				t.Fatalf("findFirstHumanSeat() = %d, want %d", got, test.want)
			}
			if got := shouldTerminateNoHumans(test.seats); got != (test.want == -1) {
				t.Fatalf("shouldTerminateNoHumans() = %t", got)
			}
		})
	}
}

func TestMatchJoinAssignsSeatsAndOwner(t *testing.T) {
	handler := newMatchHandler(nil)
	dispatcher := &mockDispatcher{}
	state := newTestState(nil)
	state.Seats[0] = bot.GetBotIdentity(0).UserID

	alice := testPresence{userID: "u-alice", username: "alice"}
	bob := testPresence{userID: "u-bob", username: "bob"}
	handler.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.Presence{alice, bob})

	if state.seatOf("u-alice") != 1 || state.seatOf("u-bob") != 2 {
		t.Fatalf("seats = %v", state.Seats)
	}
	if state.OwnerSeat != 1 {
		t.Fatalf("owner seat = %d, want first human seat 1", state.OwnerSeat)
	}
	if len(dispatcher.labels) != 1 {
		t.Fatalf("label updates = %d, want 1", len(dispatcher.labels))
	}

	lobby := dispatcher.lastTo(t, OpTableSnapshot, "u-bob")
	if lobby["phase"] != phaseLobby || lobby["your_seat"] != float64(2) {
		t.Fatalf("lobby snapshot = %v", lobby)
	}

	// A full lobby still admits humans while a bot can be displaced.
	state.Seats[3] = "u-carol"
	_, ok, _ := handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, testPresence{userID: "u-dave"}, nil)
	if !ok {
		t.Fatalf("join should be allowed by replacing the bot")
	}
	handler.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.Presence{testPresence{userID: "u-dave"}})
	if state.Seats[0] != "u-dave" {
		t.Fatalf("bot seat not taken over: %v", state.Seats)
	}
	_, ok, reason := handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state, testPresence{userID: "u-erin"}, nil)
	if ok || reason != "Match full" {
		t.Fatalf("join attempt = %t %q, want rejection", ok, reason)
	}
}

func TestMatchLeave(t *testing.T) {
	handler := newMatchHandler(nil)
	dispatcher := &mockDispatcher{}
	state := newTestState(nil)
	alice := testPresence{userID: "u-alice"}
	bob := testPresence{userID: "u-bob"}
	handler.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.Presence{alice, bob})

	next := handler.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.Presence{alice})
	if next == nil || state.OwnerSeat != 1 || state.Seats[0] != "" {
		t.Fatalf("owner should pass to bob, seats = %v owner = %d", state.Seats, state.OwnerSeat)
	}

	state.Seats[2] = bot.GetBotIdentity(0).UserID
	if next := handler.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.Presence{bob}); next != nil {
		t.Fatalf("match with only bots should terminate")
	}
}

func TestAutoFillBotsForSoloHuman(t *testing.T) {
	handler := newMatchHandler(nil)
	dispatcher := &mockDispatcher{}
	state := newTestState(nil)
	state.BotsEnabled = true
	state.BotAutoFillDelay = 2
	state.Seats[0] = "user-1"
	state.Presences["user-1"] = testPresence{userID: "user-1"}

	for tick := int64(10); tick <= 12; tick++ {
		handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, tick, state, nil)
	}

	botCount := 0
	seen := map[string]bool{}
	for _, seat := range state.Seats {
		if isBotUserId(seat) {
			botCount++
			if seen[seat] {
				t.Fatalf("bot %s seated twice", seat)
			}
			seen[seat] = true
		}
	}
	if botCount != 3 || state.GetOpenSeatsCount() != 0 {
		t.Fatalf("seats after auto-fill = %v", state.Seats)
	}
	if len(state.Bots) != 3 {
		t.Fatalf("agents = %d, want 3", len(state.Bots))
	}
	if state.LastSinglePlayerTick != 0 {
		t.Fatalf("Expected auto-fill timer reset, got %d", state.LastSinglePlayerTick)
	}
	if len(dispatcher.labels) == 0 || dispatcher.count(OpTableSnapshot) == 0 {
		t.Fatalf("Expected snapshot and label update after auto-fill")
	}
}

func TestMatchFlowStartPlayAndTimeout(t *testing.T) {
	handler := newMatchHandler(nil)
	dispatcher := &mockDispatcher{}
	state := newTestState(nil)
	alice := testPresence{userID: "u-alice", username: "alice"}
	bob := testPresence{userID: "u-bob", username: "bob"}
	ctx := context.Background()
	handler.MatchJoin(ctx, noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.Presence{alice, bob})

	// Only the owner may start.
	handler.MatchLoop(ctx, noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{
		testMatchData{testPresence: bob, opCode: OpStartGame},
	})
	if state.Game != nil {
		t.Fatalf("non-owner started the game")
	}
	if msg := dispatcher.lastTo(t, OpGameError, "u-bob"); msg["code"] != float64(errCodeBadRequest) {
		t.Fatalf("error = %v", msg)
	}

	handler.MatchLoop(ctx, noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.MatchData{
		testMatchData{testPresence: alice, opCode: OpStartGame},
	})
	if state.Game == nil || len(state.Game.Players) != 2 {
		t.Fatalf("game not started")
	}
	if label := dispatcher.labels[len(dispatcher.labels)-1]; !containsPhase(t, label, phasePlaying) {
		t.Fatalf("label = %s", label)
	}
	if dispatcher.count(OpHandDealt) != 2 {
		t.Fatalf("hand_dealt messages = %d, want 2", dispatcher.count(OpHandDealt))
	}

	table := dispatcher.lastTo(t, OpTableSnapshot, "u-alice")
	seats := table["seats"].([]interface{})
	local := seats[0].(map[string]interface{})
	if local["is_local"] != true || len(local["hand"].([]interface{})) != 26 {
		t.Fatalf("alice should see her own 26 cards at position 0: %v", local)
	}
	if _, leaked := seats[1].(map[string]interface{})["hand"]; leaked {
		t.Fatalf("opponent hand leaked")
	}

	current := state.Game.PlayerBySeat(state.Game.CurrentTurn)
	other := state.Game.PlayerBySeat(1 - current.Seat)
	currentPresence := state.Presences[current.ID].(testPresence)

	// A card from the other hand is rejected.
	data, _ := encodeMessage(map[string]interface{}{"card": other.Hand[0].String()})
	handler.MatchLoop(ctx, noopLogger{}, nil, nil, dispatcher, 4, state, []runtime.MatchData{
		testMatchData{testPresence: currentPresence, opCode: OpPlayCard, data: data},
	})
	if state.Game.CurrentTurn != current.Seat {
		t.Fatalf("illegal play changed the turn")
	}
	if msg := dispatcher.lastTo(t, OpGameError, current.ID); msg["message"] == "" {
		t.Fatalf("expected error message")
	}

	legal := state.Game.LegalPlaysFor(current)
	data, _ = encodeMessage(map[string]interface{}{"card": legal[0].String()})
	handler.MatchLoop(ctx, noopLogger{}, nil, nil, dispatcher, 5, state, []runtime.MatchData{
		testMatchData{testPresence: currentPresence, opCode: OpPlayCard, data: data},
	})
	if state.Game.CurrentTurn != other.Seat {
		t.Fatalf("turn should pass to seat %d", other.Seat)
	}
	played := dispatcher.lastTo(t, OpCardPlayed, "")
	if played["card"] != legal[0].String() || played["next_player"] != other.PublicID {
		t.Fatalf("card_played = %v", played)
	}

	// The other player idles: the play re-armed the timer, the deadline auto-plays.
	if state.TurnDeadline != 5+state.TurnDuration {
		t.Fatalf("deadline = %d, want %d", state.TurnDeadline, 5+state.TurnDuration)
	}
	before := len(other.Hand)
	handler.MatchLoop(ctx, noopLogger{}, nil, nil, dispatcher, state.TurnDeadline-1, state, nil)
	if len(other.Hand) != before {
		t.Fatalf("auto-played before the deadline")
	}
	handler.MatchLoop(ctx, noopLogger{}, nil, nil, dispatcher, state.TurnDeadline, state, nil)
	if len(other.Hand) != before-1 {
		t.Fatalf("timer did not auto-play, hand = %d", len(other.Hand))
	}
	if dispatcher.count(OpTrickWon) != 1 {
		t.Fatalf("trick should resolve after both seats played")
	}
}

func TestJoinDuringGameOnlyAdmitsPlayers(t *testing.T) {
	handler := newMatchHandler(nil)
	dispatcher := &mockDispatcher{}
	state := newTestState(nil)
	alice := testPresence{userID: "u-alice"}
	bob := testPresence{userID: "u-bob"}
	ctx := context.Background()
	handler.MatchJoin(ctx, noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.Presence{alice, bob})
	handler.MatchLoop(ctx, noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{
		testMatchData{testPresence: alice, opCode: OpStartGame},
	})
	if state.Game == nil {
		t.Fatalf("game not started")
	}

	_, ok, reason := handler.MatchJoinAttempt(ctx, noopLogger{}, nil, nil, dispatcher, 3, state, testPresence{userID: "u-carol"}, nil)
	if ok || reason != "Game in progress" {
		t.Fatalf("join attempt = %t %q, want rejection while playing", ok, reason)
	}
	handler.MatchJoin(ctx, noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.Presence{testPresence{userID: "u-carol"}})
	if state.seatOf("u-carol") >= 0 {
		t.Fatalf("outsider took a seat during the game: %v", state.Seats)
	}

	// A player who dropped out comes back.
	handler.MatchLeave(ctx, noopLogger{}, nil, nil, dispatcher, 4, state, []runtime.Presence{bob})
	if _, ok, _ := handler.MatchJoinAttempt(ctx, noopLogger{}, nil, nil, dispatcher, 5, state, bob, nil); !ok {
		t.Fatalf("reconnect rejected")
	}
	handler.MatchJoin(ctx, noopLogger{}, nil, nil, dispatcher, 5, state, []runtime.Presence{bob})
	if state.seatOf("u-bob") < 0 {
		t.Fatalf("reconnecting player has no seat: %v", state.Seats)
	}
}

func TestFinishGameRecordsResults(t *testing.T) {
	lb := &fakeLeaderboard{}
	handler := newMatchHandler(lb)
	dispatcher := &mockDispatcher{}
	state := newTestState(lb)
	state.Seats[0], state.Seats[1] = "u-alice", bot.GetBotIdentity(0).UserID
	state.OwnerSeat = 0
	state.Presences["u-alice"] = testPresence{userID: "u-alice"}

	c2 := domain.NewCard(2, domain.SuitClubs)
	h5 := domain.NewCard(5, domain.SuitHearts)
	state.Game = &domain.Game{
		Phase:      domain.PhasePlaying,
		PointLimit: 1,
		Round:      1,
		Players: []*domain.Player{
			{ID: "u-alice", PublicID: "p0", Name: "alice", Seat: 0, Hand: []domain.Card{c2}, IsPlaying: true},
			{ID: bot.GetBotIdentity(0).UserID, PublicID: "p1", Name: "Ada", Seat: 1, Hand: []domain.Card{h5}},
		},
		LastTrickWinnerSeat: -1,
	}

	ctx := context.Background()
	if err := handler.applyPlay(ctx, state, dispatcher, noopLogger{}, 0, c2); err != nil {
		t.Fatalf("applyPlay: %v", err)
	}
	if err := handler.applyPlay(ctx, state, dispatcher, noopLogger{}, 1, h5); err != nil {
		t.Fatalf("applyPlay: %v", err)
	}

	if state.Game != nil {
		t.Fatalf("game should be cleared after it ends")
	}
	ended := dispatcher.lastTo(t, OpGameEnded, "")
	if standings := ended["standings"].([]interface{}); standings[0] != "p1" {
		t.Fatalf("standings = %v, want the bot first", standings)
	}
	if len(lb.results) != 1 || len(lb.results[0]) != 1 {
		t.Fatalf("results = %v, want only the human recorded", lb.results)
	}
	if r := lb.results[0][0]; r.UserID != "u-alice" || r.Won || r.Points != 1 {
		t.Fatalf("result = %+v", r)
	}
	if label := dispatcher.labels[len(dispatcher.labels)-1]; !containsPhase(t, label, phaseLobby) {
		t.Fatalf("label should return to lobby: %s", label)
	}
}

func containsPhase(t *testing.T, label, phase string) bool {
	t.Helper()
	fields, err := decodeMessage([]byte(label))
	if err != nil {
		t.Fatalf("decode label: %v", err)
	}
	return fields["phase"] == phase && fields["game"] == GameLabel
}

package nakama

import (
	"context"
	"database/sql"
	"math/rand"
	"strconv"
	"time"

	"hearts/internal/app"
	"hearts/internal/bot"
	"hearts/internal/config"
	"hearts/internal/domain"
	"hearts/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	phaseLobby   = string(domain.PhaseLobby)
	phasePlaying = string(domain.PhasePlaying)

	tickRate = 1 // ticks per second; all delays below are counted in ticks

	errCodeBadRequest = 400
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats      []string                    `json:"seats"`      // user ids, empty string means the seat is free
	OwnerSeat  int                         `json:"owner_seat"` // seat allowed to start the game, -1 without humans
	Tick       int64                       `json:"tick"`
	PointLimit int                         `json:"point_limit"`
	Presences  map[string]runtime.Presence `json:"-"` // connected users by user id
	App        *app.Service                `json:"-"`
	Game       *domain.Game                `json:"-"` // nil while in the lobby

	BotsEnabled          bool                  `json:"bots_enabled"`
	BotMinDelay          int                   `json:"bot_min_delay"`
	BotMaxDelay          int                   `json:"bot_max_delay"`
	BotAutoFillDelay     int                   `json:"bot_auto_fill_delay"`
	LastSinglePlayerTick int64                 `json:"last_single_player_tick"`
	Bots                 map[string]*bot.Agent `json:"-"`

	// TurnDuration is how long a human may think before the server plays for them.
	TurnDuration int64 `json:"turn_duration"`
	// TurnDeadline is the tick at which the current turn is auto-played; 0 until armed.
	TurnDeadline int64 `json:"turn_deadline"`

	Leaderboard ports.LeaderboardPort `json:"-"`

	autoPlayer *bot.Agent
	rng        *rand.Rand
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return len(ms.Seats) - ms.GetOpenSeatsCount()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

func (ms *MatchState) seatOf(userID string) int {
	for i, seat := range ms.Seats {
		if seat == userID {
			return i
		}
	}
	return -1
}

func (ms *MatchState) displayName(userID string) string {
	if p, ok := ms.Presences[userID]; ok && p.GetUsername() != "" {
		return p.GetUsername()
	}
	if name := bot.GetBotDisplayName(userID); name != "" {
		return name
	}
	if agent, ok := ms.Bots[userID]; ok && agent.Name != "" {
		return agent.Name
	}
	return userID
}

func (ms *MatchState) playing() bool {
	return ms.Game != nil && ms.Game.Phase == domain.PhasePlaying
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return userId != "" && bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i := range seats {
		if isHumanSeat(seats, i) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

func envInt(env map[string]string, key string, fallback int) int {
	if val, ok := env[key]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}

func newMatchState(env map[string]string, leaderboard ports.LeaderboardPort, rng *rand.Rand) *MatchState {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	state := &MatchState{
		Seats:            make([]string, config.GetMaxPlayers()),
		OwnerSeat:        -1,
		PointLimit:       config.GetPointLimit(),
		Presences:        make(map[string]runtime.Presence),
		App:              app.NewService(rng),
		BotsEnabled:      env[envBotsEnabled] == "true",
		BotMinDelay:      envInt(env, envBotMinDelay, 1),
		BotMaxDelay:      envInt(env, envBotMaxDelay, 3),
		BotAutoFillDelay: envInt(env, envBotAutoFillDelay, config.GetBotAutoFillDelaySeconds()),
		Bots:             make(map[string]*bot.Agent),
		TurnDuration:     int64(config.GetTurnDurationSeconds() * tickRate),
		Leaderboard:      leaderboard,
		autoPlayer:       &bot.Agent{ID: "autoplay", Name: "autoplay", Strategy: &bot.EasyBot{}},
		rng:              rng,
	}
	if state.BotMaxDelay < state.BotMinDelay {
		state.BotMaxDelay = state.BotMinDelay
	}
	return state
}

type matchHandler struct {
	leaderboard ports.LeaderboardPort
}

func newMatchHandler(leaderboard ports.LeaderboardPort) *matchHandler {
	return &matchHandler{leaderboard: leaderboard}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	identitiesPath := defaultBotIdentitiesPath
	if p := env[envBotIdentitiesPath]; p != "" {
		identitiesPath = p
	}
	if err := bot.LoadIdentities(identitiesPath); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}

	state := newMatchState(env, mh.leaderboard, nil)
	logger.Debug("MatchInit: %d seats, bots=%t, turn=%ds", len(state.Seats), state.BotsEnabled, state.TurnDuration/tickRate)

	label, err := matchLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Reconnects keep their seat.
	if matchState.seatOf(presence.GetUserId()) >= 0 {
		return matchState, true, ""
	}
	if matchState.Game != nil {
		if matchState.Game.PlayerByUserID(presence.GetUserId()) != nil {
			return matchState, true, ""
		}
		return matchState, false, "Game in progress"
	}

	if matchState.GetOpenSeatsCount() <= 0 {
		for _, seat := range matchState.Seats {
			if isBotUserId(seat) {
				return matchState, true, ""
			}
		}
		return matchState, false, "Match full"
	}
	return matchState, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p
		if matchState.seatOf(userID) >= 0 {
			continue
		}
		if seat := mh.assignSeat(matchState, userID, logger); seat < 0 {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", userID)
		}
	}

	if !isHumanSeat(matchState.Seats, matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats)
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastTables(matchState, dispatcher, logger)
	return matchState
}

// assignSeat puts userID in the first free seat, or in a bot's seat while in the lobby.
// During a game only its players get a seat back.
func (mh *matchHandler) assignSeat(state *MatchState, userID string, logger runtime.Logger) int {
	if state.Game != nil && state.Game.PlayerByUserID(userID) == nil {
		return -1
	}
	for i, seat := range state.Seats {
		if seat == "" {
			state.Seats[i] = userID
			return i
		}
	}
	if state.Game != nil {
		return -1
	}
	for i, seat := range state.Seats {
		if isBotUserId(seat) {
			logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seat, userID, i)
			delete(state.Bots, seat)
			state.Seats[i] = userID
			return i
		}
	}
	return -1
}

// MatchLeave is called when one or more players leave the match. A player leaving a
// running game keeps their cards; the turn timer plays for them.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		if i := matchState.seatOf(p.GetUserId()); i >= 0 {
			matchState.Seats[i] = ""
			logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)
		}
	}

	if newOwner := findFirstHumanSeat(matchState.Seats); newOwner != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwner
		logger.Debug("MatchLeave: Owner set to seat %d.", newOwner)
	}

	if shouldTerminateNoHumans(matchState.Seats) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastTables(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		case OpRequestState:
			if p, ok := matchState.Presences[msg.GetUserId()]; ok {
				mh.sendTable(matchState, dispatcher, logger, p)
			}
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.autoFillBots(matchState, dispatcher, logger)
	}
	mh.processTurn(ctx, matchState, dispatcher, logger)

	return matchState
}

// autoFillBots seats bots around a lone human after BotAutoFillDelay ticks in the lobby.
func (mh *matchHandler) autoFillBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game != nil || state.GetHumanPlayerCount() != 1 {
		state.LastSinglePlayerTick = 0
		return
	}
	if state.LastSinglePlayerTick == 0 {
		state.LastSinglePlayerTick = state.Tick
		logger.Debug("autoFillBots: Single player detected, starting auto-fill timer.")
		return
	}
	if state.Tick-state.LastSinglePlayerTick < int64(state.BotAutoFillDelay) {
		return
	}
	state.LastSinglePlayerTick = 0

	added := 0
	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		identity, ok := nextBotIdentity(state, i)
		if !ok {
			logger.Warn("autoFillBots: Bot roster exhausted, seat %d stays open", i)
			continue
		}
		agent, err := bot.NewAgent(identity)
		if err != nil {
			logger.Error("autoFillBots: Failed to create bot agent for %s: %v", identity.UserID, err)
			continue
		}
		state.Seats[i] = identity.UserID
		state.Bots[identity.UserID] = agent
		added++
		logger.Info("autoFillBots: Added bot %s (%s) to seat %d", agent.Name, identity.UserID, i)
	}
	if added > 0 {
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastTables(state, dispatcher, logger)
	}
}

// nextBotIdentity returns a roster identity not already seated, starting the search at start.
func nextBotIdentity(state *MatchState, start int) (bot.Identity, bool) {
	for n := 0; n < 2*len(state.Seats); n++ {
		identity := bot.GetBotIdentity(start + n)
		if identity.UserID != "" && state.seatOf(identity.UserID) < 0 {
			return identity, true
		}
	}
	return bot.Identity{}, false
}

// processTurn arms the deadline for the seat to move and plays for it once the deadline
// passes. Bots get a short random delay, humans get TurnDuration.
func (mh *matchHandler) processTurn(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if !state.playing() {
		state.TurnDeadline = 0
		return
	}
	current := state.Game.PlayerBySeat(state.Game.CurrentTurn)
	if current == nil {
		return
	}

	agent, isBot := state.Bots[current.ID]
	if state.TurnDeadline == 0 {
		delay := state.TurnDuration
		if isBot {
			delay = int64(state.BotMinDelay + state.rng.Intn(state.BotMaxDelay-state.BotMinDelay+1))
		}
		state.TurnDeadline = state.Tick + delay
		return
	}
	if state.Tick < state.TurnDeadline {
		return
	}

	if !isBot {
		agent = state.autoPlayer
		logger.Info("processTurn: Turn timer expired for %s (seat %d), auto-playing", current.ID, current.Seat)
	}
	move, err := agent.PlayAtSeat(state.Game, current.Seat)
	if err != nil {
		logger.Error("processTurn: No move for seat %d: %v", current.Seat, err)
		state.TurnDeadline = 0
		return
	}
	if err := mh.applyPlay(ctx, state, dispatcher, logger, current.Seat, move.Card); err != nil {
		logger.Error("processTurn: Seat %d failed to play %s: %v", current.Seat, move.Card, err)
		state.TurnDeadline = 0
	}
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if _, err := decodeMessage(msg.GetData()); err != nil {
		logger.Warn("StartGame: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, errCodeBadRequest, err.Error())
		return
	}
	if state.playing() {
		logger.Warn("StartGame: Game already in progress.")
		return
	}
	if senderSeat < 0 || senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, errCodeBadRequest, "only the owner can start the game")
		return
	}

	names := make(map[string]string, len(state.Seats))
	for _, userID := range state.Seats {
		if userID != "" {
			names[userID] = state.displayName(userID)
		}
	}

	game, events, err := state.App.StartGame(state.Seats, names, state.PointLimit)
	if err != nil {
		logger.Warn("StartGame: Failed to start game: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, errCodeBadRequest, err.Error())
		return
	}

	state.Game = game
	state.TurnDeadline = 0
	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.broadcastTables(state, dispatcher, logger)

	logger.Info("StartGame: Game started with %d players.", len(game.Players))
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		logger.Warn("handlePlayCard: Game not started.")
		return
	}
	player := state.Game.PlayerByUserID(senderID)
	if player == nil {
		logger.Warn("handlePlayCard: User %s is not seated in the game.", senderID)
		return
	}

	card, err := decodePlayCard(msg.GetData())
	if err != nil {
		logger.Warn("handlePlayCard: Bad payload from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, errCodeBadRequest, err.Error())
		return
	}

	if err := mh.applyPlay(ctx, state, dispatcher, logger, player.Seat, card); err != nil {
		logger.Warn("handlePlayCard: User %s (seat %d) failed to play %s: %v. Hand: %v", senderID, player.Seat, card, err, player.Hand)
		mh.sendError(state, dispatcher, logger, senderID, errCodeBadRequest, err.Error())
	}
}

// applyPlay runs a play through the app service and publishes the outcome.
func (mh *matchHandler) applyPlay(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seat int, card domain.Card) error {
	events, err := state.App.PlayCard(state.Game, seat, card)
	if err != nil {
		return err
	}
	state.TurnDeadline = 0

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.broadcastTables(state, dispatcher, logger)

	if state.Game.Phase == domain.PhaseEnded {
		mh.finishGame(ctx, state, dispatcher, logger)
	}
	return nil
}

// finishGame records the result and returns the match to the lobby.
func (mh *matchHandler) finishGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	results := gameResults(state)
	if state.Leaderboard != nil && len(results) > 0 {
		if err := state.Leaderboard.RecordResults(ctx, results); err != nil {
			logger.Error("finishGame: Failed to record results: %v", err)
		}
	}

	state.Game = nil
	state.TurnDeadline = 0
	if !isHumanSeat(state.Seats, state.OwnerSeat) {
		state.OwnerSeat = findFirstHumanSeat(state.Seats)
	}
	mh.updateLabel(state, dispatcher, logger)
}

// gameResults lists human players; everyone tied on the lowest total wins.
func gameResults(state *MatchState) []ports.GameResult {
	standings := state.Game.Standings()
	if len(standings) == 0 {
		return nil
	}
	best := standings[0].Points

	var results []ports.GameResult
	for _, p := range standings {
		if isBotUserId(p.ID) {
			continue
		}
		results = append(results, ports.GameResult{
			UserID:   p.ID,
			Username: p.Name,
			Won:      p.Points == best,
			Points:   int64(p.Points),
		})
	}
	return results
}

// broadcastEvent encodes an app event and sends it to its recipients, or everyone.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, fields, err := eventMessage(state.Game, ev)
	if err != nil {
		logger.Warn("broadcastEvent: %v", err)
		return
	}
	data, err := encodeMessage(fields)
	if err != nil {
		logger.Error("broadcastEvent: Failed to encode %s: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Private events for bots or disconnected players go nowhere.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
		logger.Error("broadcastEvent: Failed to send %s: %v", ev.Kind, err)
	}
}

// broadcastTables sends every connected user the table rotated to their own seat.
func (mh *matchHandler) broadcastTables(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	for _, p := range state.Presences {
		mh.sendTable(state, dispatcher, logger, p)
	}
}

func (mh *matchHandler) sendTable(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, presence runtime.Presence) {
	var fields map[string]interface{}
	if state.Game != nil {
		fields = tableMessage(app.BuildTableView(state.Game, presence.GetUserId()))
	} else {
		fields = lobbyMessage(state, presence.GetUserId())
	}
	fields["tick"] = state.Tick

	data, err := encodeMessage(fields)
	if err != nil {
		logger.Error("sendTable: Failed to encode snapshot: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpTableSnapshot, data, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("sendTable: Failed to send snapshot to %s: %v", presence.GetUserId(), err)
	}
}

func lobbyMessage(state *MatchState, viewerID string) map[string]interface{} {
	seats := make([]interface{}, len(state.Seats))
	for i, userID := range state.Seats {
		seat := map[string]interface{}{
			"seat":     i,
			"occupied": userID != "",
			"is_owner": i == state.OwnerSeat,
		}
		if userID != "" {
			seat["name"] = state.displayName(userID)
			seat["is_bot"] = isBotUserId(userID)
		}
		seats[i] = seat
	}
	return map[string]interface{}{
		"phase":      phaseLobby,
		"seats":      seats,
		"owner_seat": state.OwnerSeat,
		"your_seat":  state.seatOf(viewerID),
	}
}

// sendError sends a game error to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	data, err := encodeMessage(errorMessage(code, message))
	if err != nil {
		logger.Error("Failed to encode game error: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpGameError, data, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("Failed to send game error: %v", err)
	}
}

func matchLabel(state *MatchState) (string, error) {
	phase := phaseLobby
	if state.playing() {
		phase = phasePlaying
	}
	data, err := encodeMessage(map[string]interface{}{
		"open":  state.GetOpenSeatsCount(),
		"game":  GameLabel,
		"phase": phase,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := matchLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated, grace %ds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, ""
	}
	label, err := matchLabel(matchState)
	if err != nil {
		return state, ""
	}
	return matchState, label
}

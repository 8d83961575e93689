package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameHearts is the authoritative match handler name registered with Nakama.
	MatchNameHearts = "hearts_match"

	// GameLabel identifies hearts matches in match listings.
	GameLabel = "hearts"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame    int64 = 1
	OpPlayCard     int64 = 2
	OpRequestState int64 = 3

	// Server -> Client events
	OpTableSnapshot int64 = 100 // sent per viewer
	OpGameStarted   int64 = 101
	OpHandDealt     int64 = 102 // send privately
	OpCardPlayed    int64 = 103
	OpTrickWon      int64 = 104
	OpRoundEnded    int64 = 105
	OpGameEnded     int64 = 106
	OpGameError     int64 = 110
)

// Runtime env keys read in MatchInit.
const (
	envBotsEnabled       = "hearts_bots_enabled"
	envBotMinDelay       = "hearts_bot_min_delay_sec"
	envBotMaxDelay       = "hearts_bot_max_delay_sec"
	envBotAutoFillDelay  = "hearts_bot_auto_fill_delay_sec"
	envGameConfigPath    = "hearts_game_config"
	envBotIdentitiesPath = "hearts_bot_identities"
)

const (
	defaultGameConfigPath    = "data/game_config.json"
	defaultBotIdentitiesPath = "data/bot_identities.json"
)

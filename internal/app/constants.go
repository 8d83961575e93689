package app

const (
	// MinPlayersToStartGame is the smallest table a game can be dealt to.
	MinPlayersToStartGame = 2
	// MaxPlayers is the largest table the deal and rotation support.
	MaxPlayers = 6
	// DefaultPointLimit ends the game once any player reaches it.
	DefaultPointLimit = 100
)

package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"hearts/internal/app"
	"hearts/internal/bot"
	"hearts/internal/config"
	"hearts/internal/domain"
	"hearts/internal/logging"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/rs/zerolog"
)

var (
	cmdArgs    arg
	mainLogger = logging.GetZeroLogger("simulate::main", nil)
)

type arg struct {
	players    int
	games      int
	seed       int64
	configFile string
	smart      int
	verbose    bool
}

// maxPlaysPerGame bounds a single game so a rules bug cannot spin forever.
const maxPlaysPerGame = 10000

var errRunaway = errors.New("game did not finish")

func parseArgs() {
	flag.IntVar(&cmdArgs.players, "players", 4, "Number of bots at the table (2-6)")
	flag.IntVar(&cmdArgs.games, "games", 10, "Number of games to play")
	flag.Int64Var(&cmdArgs.seed, "seed", 1, "Random seed for dealing")
	flag.StringVar(&cmdArgs.configFile, "config", "data/game_config.json", "Game config JSON file")
	flag.IntVar(&cmdArgs.smart, "smart", 2, "How many of the bots use the smart strategy")
	flag.BoolVar(&cmdArgs.verbose, "v", false, "Log every trick")
	flag.Parse()
}

func main() {
	parseArgs()
	os.Exit(simulate())
}

func simulate() int {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cmdArgs.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := config.LoadGameConfig(cmdArgs.configFile); err != nil {
		mainLogger.Warn().Msgf("Using default game config: %v", err)
	}
	if cmdArgs.players < app.MinPlayersToStartGame || cmdArgs.players > app.MaxPlayers {
		mainLogger.Error().Msgf("players must be between %d and %d", app.MinPlayersToStartGame, app.MaxPlayers)
		return 1
	}

	agents, err := newTable(cmdArgs.players, cmdArgs.smart)
	if err != nil {
		mainLogger.Error().Msgf("Error while creating bots: %v", err)
		return 1
	}

	logger := logging.NewRuntimeLogger(*logging.GetZeroLogger("simulate::game", nil))
	svc := app.NewService(rand.New(rand.NewSource(cmdArgs.seed)))

	wins := make(map[string]int, len(agents))
	for g := 1; g <= cmdArgs.games; g++ {
		standings, err := runGame(svc, agents, config.GetPointLimit(), logger.WithField("game", g))
		if err != nil {
			mainLogger.Error().Msgf("Game %d failed: %v", g, err)
			return 1
		}
		wins[standings[0].ID]++
		mainLogger.Info().Msgf("Game %d: winner %s with %d points", g, standings[0].Name, standings[0].Points)
	}

	for _, a := range agents {
		mainLogger.Info().Msgf("%-10s %T wins=%d", a.Name, a.Strategy, wins[a.ID])
	}
	return 0
}

// newTable builds n bots, the first smart of them using the smart strategy.
func newTable(n, smart int) ([]*bot.Agent, error) {
	agents := make([]*bot.Agent, n)
	for i := range agents {
		difficulty := "easy"
		if i < smart {
			difficulty = "smart"
		}
		agent, err := bot.NewAgent(bot.Identity{
			UserID:      fmt.Sprintf("sim-%d", i),
			DisplayName: fmt.Sprintf("%s-%d", difficulty, i),
			Difficulty:  difficulty,
		})
		if err != nil {
			return nil, err
		}
		agents[i] = agent
	}
	return agents, nil
}

// runGame plays one game to the point limit and returns the final standings.
func runGame(svc *app.Service, agents []*bot.Agent, pointLimit int, logger runtime.Logger) ([]*domain.Player, error) {
	seats := make([]string, len(agents))
	names := make(map[string]string, len(agents))
	byID := make(map[string]*bot.Agent, len(agents))
	for i, a := range agents {
		seats[i] = a.ID
		names[a.ID] = a.Name
		byID[a.ID] = a
	}

	game, events, err := svc.StartGame(seats, names, pointLimit)
	if err != nil {
		return nil, fmt.Errorf("start game: %w", err)
	}
	logEvents(logger, game, events)

	for plays := 0; game.Phase == domain.PhasePlaying; plays++ {
		if plays >= maxPlaysPerGame {
			return nil, errRunaway
		}
		current := game.PlayerBySeat(game.CurrentTurn)
		agent, ok := byID[current.ID]
		if !ok {
			return nil, fmt.Errorf("no agent for seat %d", current.Seat)
		}
		move, err := agent.Play(game)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", current.Seat, err)
		}
		events, err := svc.PlayCard(game, current.Seat, move.Card)
		if err != nil {
			return nil, fmt.Errorf("seat %d played %s: %w", current.Seat, move.Card, err)
		}
		logEvents(logger, game, events)
	}
	return game.Standings(), nil
}

func logEvents(logger runtime.Logger, game *domain.Game, events []app.Event) {
	for _, ev := range events {
		switch p := ev.Payload.(type) {
		case app.TrickWonPayload:
			logger.Debug("Trick %d: seat %d takes %v for %d points", game.TrickNumber, p.WinnerSeat, p.Cards, p.Points)
		case app.RoundEndedPayload:
			if p.MoonShooter >= 0 {
				logger.Info("Round %d: seat %d shot the moon", p.Round, p.MoonShooter)
			}
			logger.WithField(logging.RoundKey, p.Round).Info("Round %d totals %v", p.Round, p.Points)
		}
	}
}

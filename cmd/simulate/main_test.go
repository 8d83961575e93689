package main

import (
	"math/rand"
	"testing"

	"hearts/internal/app"
	"hearts/internal/bot"
	"hearts/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunGameFinishes(t *testing.T) {
	for _, players := range []int{2, 3, 4, 5, 6} {
		agents, err := newTable(players, players/2)
		require.NoError(t, err)

		svc := app.NewService(rand.New(rand.NewSource(int64(players))))
		standings, err := runGame(svc, agents, 50, logging.Nop())
		require.NoError(t, err, "players=%d", players)
		require.Len(t, standings, players)

		assert.GreaterOrEqual(t, standings[len(standings)-1].Points, 50, "someone must reach the limit")
		for i := 1; i < len(standings); i++ {
			assert.LessOrEqual(t, standings[i-1].Points, standings[i].Points)
		}
		for _, p := range standings {
			assert.Empty(t, p.Hand)
			assert.False(t, p.HasPlayed())
		}
	}
}

func TestNewTableMixesStrategies(t *testing.T) {
	agents, err := newTable(4, 1)
	require.NoError(t, err)
	require.Len(t, agents, 4)

	assert.Equal(t, "smart-0", agents[0].Name)
	assert.Equal(t, "easy-3", agents[3].Name)
	assert.IsType(t, &bot.SmartBot{}, agents[0].Strategy)
	assert.IsType(t, &bot.EasyBot{}, agents[1].Strategy)
}

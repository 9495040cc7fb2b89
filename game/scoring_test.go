package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardCorrectGuess(t *testing.T) {
	g := testGame(0, 1, 2)
	g.describerIndex = 2

	err := g.awardCorrectGuess("p0")

	require.NoError(t, err)
	assert.Equal(t, 2, g.players["p0"].Score)
	assert.Equal(t, 1, g.players["p2"].Score)
	assert.Equal(t, 0, g.players["p1"].Score)
}

func TestAwardCorrectGuessEmptyDescriberSeat(t *testing.T) {
	g := testGame(0, 1)
	g.describerIndex = 3

	err := g.awardCorrectGuess("p0")

	assert.ErrorIs(t, err, ErrDescriberNotFound)
	assert.Equal(t, 0, g.players["p0"].Score)
}

func TestAwardCorrectGuessUnknownGuesser(t *testing.T) {
	g := testGame(0, 1)
	g.describerIndex = 0

	err := g.awardCorrectGuess("ghost")

	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestCalculateGameStatsTieAwareRanking(t *testing.T) {
	g := testGame(0, 1, 2, 3)
	g.players["p0"].Score = 10
	g.players["p1"].Score = 10
	g.players["p2"].Score = 5
	g.players["p3"].Score = 5

	players := calculateGameStats(g.players)

	assert.Equal(t, 1, players["p0"].Rank)
	assert.Equal(t, 1, players["p1"].Rank)
	assert.Equal(t, 3, players["p2"].Rank)
	assert.Equal(t, 3, players["p3"].Rank)
	// Mean rank is 2.0, so only the two leaders win.
	assert.Equal(t, 1, players["p0"].Win)
	assert.Equal(t, 1, players["p1"].Win)
	assert.Equal(t, 0, players["p2"].Win)
	assert.Equal(t, 0, players["p3"].Win)
}

func TestCalculateGameStatsAllTied(t *testing.T) {
	g := testGame(0, 1)
	g.players["p0"].Score = 4
	g.players["p1"].Score = 4

	players := calculateGameStats(g.players)

	assert.Equal(t, 1, players["p0"].Rank)
	assert.Equal(t, 1, players["p1"].Rank)
	assert.Equal(t, 1, players["p0"].Win)
	assert.Equal(t, 1, players["p1"].Win)
}

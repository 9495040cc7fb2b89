package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceTurnSkipsVacantSeat(t *testing.T) {
	g := testGame(0, 2, 3)
	g.describerIndex = 0

	result, err := g.advanceTurn()

	require.NoError(t, err)
	assert.Equal(t, 2, result.DescriberIndex)
	assert.Equal(t, 0, result.Round)
	assert.False(t, result.RoundChanged)
	assert.Equal(t, 2, g.describerIndex)
	assert.Equal(t, 0, g.round)
}

func TestAdvanceTurnWrapsIntoNextRound(t *testing.T) {
	g := testGame(0, 2, 3)
	g.describerIndex = 3

	result, err := g.advanceTurn()

	require.NoError(t, err)
	assert.Equal(t, 0, result.DescriberIndex)
	assert.Equal(t, 1, result.Round)
	assert.True(t, result.RoundChanged)
	assert.Equal(t, 1, g.round)
}

func TestAdvanceTurnReplayMovesOneSeatPerCall(t *testing.T) {
	g := testGame(0, 1, 2, 3)
	g.describerIndex = 0

	first, err := g.advanceTurn()
	require.NoError(t, err)
	second, err := g.advanceTurn()
	require.NoError(t, err)

	assert.Equal(t, 1, first.DescriberIndex)
	assert.Equal(t, 2, second.DescriberIndex)
	assert.Equal(t, 0, g.round)
}

func TestAdvanceTurnTerminalKeepsDescriberIndex(t *testing.T) {
	g := testGame(0, 1, 2, 3)
	g.round = 1
	g.describerIndex = 3

	result, err := g.advanceTurn()

	require.NoError(t, err)
	assert.True(t, result.GameOver())
	assert.Equal(t, 2, result.Round)
	assert.Equal(t, 2, g.round)
	// Terminal results must not move the describer seat.
	assert.Equal(t, 3, g.describerIndex)
}

func TestAdvanceTurnSingleSeatWrapsToItself(t *testing.T) {
	g := testGame(1)
	g.describerIndex = 1

	result, err := g.advanceTurn()

	require.NoError(t, err)
	assert.Equal(t, 1, result.DescriberIndex)
	assert.Equal(t, 1, result.Round)
	assert.True(t, result.RoundChanged)
}

func TestAdvanceTurnFailsFastWithoutPlayers(t *testing.T) {
	g := testGame()

	_, err := g.advanceTurn()

	assert.ErrorIs(t, err, ErrNoPlayersRemain)
}

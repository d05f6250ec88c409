package analytics

import (
	"testing"

	"tennis-stats-api/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopPlayers(t *testing.T) {
	var matches []models.Match
	add := func(playerID uint, side, result string, n int) {
		for i := 0; i < n; i++ {
			id := uint(len(matches) + 1)
			matches = append(matches, newMatch(id, "2024-06-01", "hard", result,
				participant(id*10, playerID, side, true),
				participant(id*10+1, 0, models.SideB, false),
			))
		}
	}
	// player 1: 3 wins of 3
	add(1, models.SideA, models.ResultWin, 3)
	// player 2: 2 wins of 4 (one of them recorded from side B)
	add(2, models.SideA, models.ResultWin, 1)
	add(2, models.SideB, models.ResultLoss, 1)
	add(2, models.SideA, models.ResultLoss, 2)
	// player 3: 1 win of 2, below the minimum
	add(3, models.SideA, models.ResultWin, 1)
	add(3, models.SideA, models.ResultLoss, 1)
	// player 4: 2 wins of 4, tied with player 2
	add(4, models.SideA, models.ResultWin, 2)
	add(4, models.SideA, models.ResultRetired, 1)
	add(4, models.SideA, models.ResultLoss, 1)

	top := ComputeTopPlayers(matches, 3)

	require.Len(t, top, 3)
	assert.Equal(t, uint(1), top[0].PlayerID)
	assert.Equal(t, 100.0, top[0].WinRate)
	assert.Equal(t, uint(2), top[1].PlayerID)
	assert.Equal(t, 2, top[1].Wins)
	assert.Equal(t, 2, top[1].Losses)
	assert.Equal(t, uint(4), top[2].PlayerID)
	assert.Equal(t, 50.0, top[2].WinRate)
}

func TestTopPlayers_TieBrokenByMatchCount(t *testing.T) {
	var matches []models.Match
	add := func(playerID uint, result string) {
		id := uint(len(matches) + 1)
		matches = append(matches, newMatch(id, "2024-06-01", "hard", result, participant(id, playerID, models.SideA, true)))
	}
	for i := 0; i < 3; i++ {
		add(7, models.ResultWin)
	}
	for i := 0; i < 5; i++ {
		add(8, models.ResultWin)
	}

	top := ComputeTopPlayers(matches, 3)

	require.Len(t, top, 2)
	assert.Equal(t, uint(8), top[0].PlayerID)
	assert.Equal(t, uint(7), top[1].PlayerID)
}

func TestTopPlayers_LimitAndUntracked(t *testing.T) {
	var matches []models.Match
	for player := uint(1); player <= 7; player++ {
		for i := 0; i < 3; i++ {
			id := uint(len(matches) + 1)
			matches = append(matches, newMatch(id, "2024-06-01", "hard", models.ResultWin,
				participant(id, player, models.SideA, true),
				participant(id+1000, 99, models.SideB, false),
			))
		}
	}

	top := ComputeTopPlayers(matches, 3)

	assert.Len(t, top, 5)
	for _, r := range top {
		assert.NotEqual(t, uint(99), r.PlayerID)
	}
	assert.Empty(t, ComputeTopPlayers(nil, 3))
}

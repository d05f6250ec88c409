package analytics

import (
	"testing"

	"tennis-stats-api/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectIDs(t *testing.T) {
	assert.Equal(t, []uint{2, 5}, IntersectIDs([]uint{1, 2, 5, 9}, []uint{5, 2, 2, 7}))
	assert.Empty(t, IntersectIDs(nil, []uint{1}))
}

func TestCompareHeadToHead(t *testing.T) {
	matches := []models.Match{
		// player 1 on side A, win
		newMatch(1, "2024-01-10", "hard", models.ResultWin, score("6-2 6-2"),
			participant(11, 1, models.SideA, true), participant(12, 2, models.SideB, false)),
		// player 2 on side A, loss: player 1 wins
		newMatch(2, "2024-03-05", "clay", models.ResultLoss,
			participant(21, 2, models.SideA, true), participant(22, 1, models.SideB, false)),
		// player 2 on side A, win
		newMatch(3, "2024-02-01", "clay", models.ResultWin,
			participant(31, 2, models.SideA, true), participant(32, 1, models.SideB, false)),
	}

	h2h, err := CompareHeadToHead(1, 2, matches)
	require.NoError(t, err)

	assert.Equal(t, 3, h2h.TotalMatches)
	assert.Equal(t, 2, h2h.Player1Wins)
	assert.Equal(t, 1, h2h.Player2Wins)
	require.Len(t, h2h.Meetings, 3)
	assert.Equal(t, []uint{2, 3, 1}, []uint{h2h.Meetings[0].MatchID, h2h.Meetings[1].MatchID, h2h.Meetings[2].MatchID})
	assert.Equal(t, uint(2), h2h.Meetings[1].WinnerID)
	assert.Equal(t, "6-2 6-2", *h2h.Meetings[2].Score)
	assert.Equal(t, "clay", *h2h.Meetings[0].Surface)
}

func TestCompareHeadToHead_TotalsSymmetric(t *testing.T) {
	results := []string{models.ResultWin, models.ResultLoss, models.ResultRetired, ""}
	var matches []models.Match
	for i := 0; i < 12; i++ {
		id := uint(i + 1)
		sideOne, sideTwo := models.SideA, models.SideB
		if i%3 == 0 {
			sideOne, sideTwo = models.SideB, models.SideA
		}
		matches = append(matches, newMatch(id, "2024-01-01", "hard", results[i%len(results)],
			participant(id*10, 1, sideOne, true), participant(id*10+1, 2, sideTwo, true)))
	}

	forward, err := CompareHeadToHead(1, 2, matches)
	require.NoError(t, err)
	backward, err := CompareHeadToHead(2, 1, matches)
	require.NoError(t, err)

	assert.Equal(t, forward.TotalMatches, forward.Player1Wins+forward.Player2Wins)
	assert.Equal(t, forward.Player1Wins, backward.Player2Wins)
	assert.Equal(t, forward.Player2Wins, backward.Player1Wins)
}

func TestCompareHeadToHead_FallbackCreditsFirstPlayer(t *testing.T) {
	// doubles partners on the same side B: no side A player to read the result from
	m := newMatch(5, "2024-05-05", "grass", models.ResultWin, doubles(),
		participant(51, 1, models.SideB, true), participant(52, 2, models.SideB, true))

	h2h, err := CompareHeadToHead(1, 2, []models.Match{m})
	require.NoError(t, err)
	assert.Equal(t, 1, h2h.Player1Wins)
	assert.True(t, h2h.Meetings[0].FallbackWinner)

	h2h, err = CompareHeadToHead(2, 1, []models.Match{m})
	require.NoError(t, err)
	assert.Equal(t, uint(2), h2h.Meetings[0].WinnerID)
}

func TestCompareHeadToHead_SamePlayer(t *testing.T) {
	_, err := CompareHeadToHead(4, 4, nil)
	assert.ErrorIs(t, err, ErrSamePlayer)
}

func TestCompareHeadToHead_NoMeetings(t *testing.T) {
	h2h, err := CompareHeadToHead(1, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, h2h.TotalMatches)
	assert.NotNil(t, h2h.Meetings)
}

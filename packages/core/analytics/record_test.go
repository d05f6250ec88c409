package analytics

import (
	"testing"

	"tennis-stats-api/packages/core/models"

	"github.com/stretchr/testify/assert"
)

func TestOverallAndSurface_TwoMatches(t *testing.T) {
	matches := []models.Match{
		newMatch(1, "2024-03-02", "hard", models.ResultWin, score("6-4 6-3")),
		newMatch(2, "2024-03-09", "clay", models.ResultLoss, score("4-6 4-6")),
	}

	overall := ComputeOverallRecord(matches)
	assert.Equal(t, Record{Wins: 1, Losses: 1, Total: 2, WinRate: 50}, overall)

	bySurface := ComputeBySurface(matches)
	assert.Equal(t, map[string]Record{
		"hard": {Wins: 1, Losses: 0, Total: 1, WinRate: 100},
		"clay": {Wins: 0, Losses: 1, Total: 1, WinRate: 0},
	}, bySurface)
}

func TestOverallRecord_OtherResultsCountInTotalOnly(t *testing.T) {
	matches := []models.Match{
		newMatch(1, "2024-01-01", "hard", models.ResultWin),
		newMatch(2, "2024-01-02", "hard", models.ResultRetired),
		newMatch(3, "2024-01-03", "hard", ""),
		newMatch(4, "2024-01-04", "hard", models.ResultLoss),
	}

	rec := ComputeOverallRecord(matches)

	assert.Equal(t, 1, rec.Wins)
	assert.Equal(t, 1, rec.Losses)
	assert.Equal(t, 4, rec.Total)
	assert.Equal(t, 25.0, rec.WinRate)
	assert.Less(t, rec.Wins+rec.Losses, rec.Total)
}

func TestOverallRecord_Empty(t *testing.T) {
	assert.Equal(t, Record{}, ComputeOverallRecord(nil))
	assert.Empty(t, ComputeBySurface(nil))
	assert.Equal(t, FormatBreakdown{}, ComputeByFormat(nil))
}

func TestWinRateBounds(t *testing.T) {
	results := []string{models.ResultWin, models.ResultLoss, models.ResultRetired, ""}
	var matches []models.Match
	for i := 0; i < 24; i++ {
		matches = append(matches, newMatch(uint(i+1), "2024-05-01", "grass", results[(i*7)%len(results)]))
		rec := ComputeOverallRecord(matches)
		assert.GreaterOrEqual(t, rec.WinRate, 0.0)
		assert.LessOrEqual(t, rec.WinRate, 100.0)
	}
}

func TestBySurface_VerbatimAndUnknown(t *testing.T) {
	matches := []models.Match{
		newMatch(1, "2024-01-01", "Hard", models.ResultWin),
		newMatch(2, "2024-01-02", "hard", models.ResultWin),
		newMatch(3, "2024-01-03", "", models.ResultLoss),
	}

	bySurface := ComputeBySurface(matches)

	assert.Len(t, bySurface, 3)
	assert.Equal(t, 1, bySurface["Hard"].Total)
	assert.Equal(t, 1, bySurface["hard"].Total)
	assert.Equal(t, 1, bySurface[UnknownSurface].Losses)

	sum := 0
	for _, rec := range bySurface {
		sum += rec.Total
	}
	assert.Equal(t, len(matches), sum)
}

func TestByFormat(t *testing.T) {
	other := newMatch(3, "2024-01-03", "hard", models.ResultLoss)
	other.Format = "mixed"
	matches := []models.Match{
		newMatch(1, "2024-01-01", "hard", models.ResultWin),
		newMatch(2, "2024-01-02", "hard", models.ResultWin, doubles()),
		other,
	}

	byFormat := ComputeByFormat(matches)

	assert.Equal(t, Record{Wins: 1, Losses: 1, Total: 2, WinRate: 50}, byFormat.Singles)
	assert.Equal(t, Record{Wins: 1, Total: 1, WinRate: 100}, byFormat.Doubles)
}

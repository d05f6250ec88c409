package analytics

import (
	"tennis-stats-api/packages/core/models"
)

func strPtr(s string) *string {
	return &s
}

func intPtr(v int) *int {
	return &v
}

func uintPtr(v uint) *uint {
	return &v
}

type matchOpt func(*models.Match)

func newMatch(id uint, date, surface, result string, opts ...matchOpt) models.Match {
	m := models.Match{ID: id, TeamID: 1, Date: date, Format: models.FormatSingles, Status: models.MatchCompleted}
	if surface != "" {
		m.Surface = strPtr(surface)
	}
	if result != "" {
		m.FinalResult = strPtr(result)
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func doubles() matchOpt {
	return func(m *models.Match) { m.Format = models.FormatDoubles }
}

func score(s string) matchOpt {
	return func(m *models.Match) { m.Score = strPtr(s) }
}

// participant adds a match player; a zero playerID is an ad-hoc opponent.
func participant(mpID, playerID uint, side string, tracked bool) matchOpt {
	return func(m *models.Match) {
		mp := models.MatchPlayer{ID: mpID, MatchID: m.ID, Side: side, IsTracked: tracked, DisplayName: "P"}
		if playerID != 0 {
			mp.PlayerID = uintPtr(playerID)
		}
		m.MatchPlayers = append(m.MatchPlayers, mp)
	}
}

func techSet(rows ...models.SetPlayerTechStats) matchOpt {
	return func(m *models.Match) {
		m.Sets = append(m.Sets, models.Set{ID: uint(len(m.Sets) + 1), MatchID: m.ID, SetNumber: len(m.Sets) + 1, TechStats: rows})
	}
}

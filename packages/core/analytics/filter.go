package analytics

import (
	"tennis-stats-api/packages/core/models"
)

// FilterMatches keeps the matches that satisfy every non-zero field of f.
// Dates compare as YYYY-MM-DD strings, From and To inclusive. When a player
// is given, technical rows of other participants are dropped so the
// technical summaries describe that player alone.
func FilterMatches(matches []models.Match, f models.MatchFilter) []models.Match {
	out := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if f.Surface != "" && (m.Surface == nil || *m.Surface != f.Surface) {
			continue
		}
		if f.Format != "" && m.Format != f.Format {
			continue
		}
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		if f.From != "" && m.Date < f.From {
			continue
		}
		if f.To != "" && m.Date > f.To {
			continue
		}
		if f.PlayerID != 0 {
			ids := participantIDs(m, f.PlayerID)
			if len(ids) == 0 {
				continue
			}
			m = withTechFor(m, ids)
		}
		out = append(out, m)
	}
	return out
}

func participantIDs(m models.Match, playerID uint) map[uint]bool {
	ids := make(map[uint]bool)
	for _, mp := range m.MatchPlayers {
		if mp.PlayerID != nil && *mp.PlayerID == playerID {
			ids[mp.ID] = true
		}
	}
	return ids
}

func withTechFor(m models.Match, matchPlayerIDs map[uint]bool) models.Match {
	sets := make([]models.Set, len(m.Sets))
	for i, set := range m.Sets {
		rows := make([]models.SetPlayerTechStats, 0, len(set.TechStats))
		for _, row := range set.TechStats {
			if matchPlayerIDs[row.MatchPlayerID] {
				rows = append(rows, row)
			}
		}
		set.TechStats = rows
		sets[i] = set
	}
	m.Sets = sets
	return m
}

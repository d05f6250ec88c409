package analytics

import (
	"sort"

	"tennis-stats-api/packages/core/models"
)

const (
	DefaultMinMatches = 3
	topPlayersLimit   = 5
)

// wonBy reports whether the participant's side won the match.
func wonBy(mp models.MatchPlayer, m models.Match) (won, lost bool) {
	res := result(m)
	if res != models.ResultWin && res != models.ResultLoss {
		return false, false
	}
	sideAWon := res == models.ResultWin
	if mp.Side == models.SideA {
		return sideAWon, !sideAWon
	}
	return !sideAWon, sideAWon
}

func participantName(mp models.MatchPlayer) string {
	if mp.Player != nil {
		return mp.Player.FullName()
	}
	return mp.DisplayName
}

// ComputeTopPlayers ranks tracked roster players with at least minMatches
// appearances by win rate, then by match count, and keeps the best five.
// A minMatches below one applies no minimum.
func ComputeTopPlayers(matches []models.Match, minMatches int) []PlayerRanking {
	byPlayer := make(map[uint]*PlayerRanking)
	for _, m := range matches {
		seen := make(map[uint]bool)
		for _, mp := range m.MatchPlayers {
			if !mp.IsTracked || mp.PlayerID == nil || seen[*mp.PlayerID] {
				continue
			}
			seen[*mp.PlayerID] = true

			r, ok := byPlayer[*mp.PlayerID]
			if !ok {
				r = &PlayerRanking{PlayerID: *mp.PlayerID, Name: participantName(mp)}
				byPlayer[*mp.PlayerID] = r
			}
			r.Matches++
			won, lost := wonBy(mp, m)
			if won {
				r.Wins++
			}
			if lost {
				r.Losses++
			}
		}
	}

	rankings := make([]PlayerRanking, 0, len(byPlayer))
	for _, r := range byPlayer {
		if r.Matches < minMatches {
			continue
		}
		r.WinRate = percentage(r.Wins, r.Matches)
		rankings = append(rankings, *r)
	}

	sort.Slice(rankings, func(i, j int) bool {
		a, b := rankings[i], rankings[j]
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		if a.Matches != b.Matches {
			return a.Matches > b.Matches
		}
		return a.PlayerID < b.PlayerID
	})

	if len(rankings) > topPlayersLimit {
		rankings = rankings[:topPlayersLimit]
	}
	return rankings
}

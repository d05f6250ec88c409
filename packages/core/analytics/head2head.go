package analytics

import (
	"errors"
	"sort"

	"tennis-stats-api/packages/core/models"
)

var ErrSamePlayer = errors.New("cannot compare a player with themselves")

// Meeting is one match both players took part in. FallbackWinner marks
// meetings where neither player sat on side A and player 1 was credited.
type Meeting struct {
	MatchID        uint    `json:"match_id"`
	Date           string  `json:"date"`
	WinnerID       uint    `json:"winner_id"`
	Score          *string `json:"score"`
	Surface        *string `json:"surface"`
	FallbackWinner bool    `json:"fallback_winner,omitempty"`
}

type HeadToHead struct {
	Player1ID    uint      `json:"player1_id"`
	Player2ID    uint      `json:"player2_id"`
	TotalMatches int       `json:"total_matches"`
	Player1Wins  int       `json:"player1_wins"`
	Player2Wins  int       `json:"player2_wins"`
	Meetings     []Meeting `json:"meetings"`
}

// IntersectIDs returns the ids present in both lists, ascending and without duplicates.
func IntersectIDs(a, b []uint) []uint {
	inA := make(map[uint]bool, len(a))
	for _, id := range a {
		inA[id] = true
	}
	seen := make(map[uint]bool)
	out := make([]uint, 0)
	for _, id := range b {
		if inA[id] && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sideOf(m models.Match, playerID uint) string {
	for _, mp := range m.MatchPlayers {
		if mp.PlayerID != nil && *mp.PlayerID == playerID {
			return mp.Side
		}
	}
	return ""
}

// meetingWinner credits side A when the result is a win and the other player
// otherwise. Without a side A player the first player wins by default.
func meetingWinner(m models.Match, player1ID, player2ID uint) (winner uint, fallback bool) {
	var sideA, other uint
	switch {
	case sideOf(m, player1ID) == models.SideA:
		sideA, other = player1ID, player2ID
	case sideOf(m, player2ID) == models.SideA:
		sideA, other = player2ID, player1ID
	default:
		return player1ID, true
	}
	if result(m) == models.ResultWin {
		return sideA, false
	}
	return other, false
}

// CompareHeadToHead scores the given common matches of two players. Every
// meeting has exactly one winner, so the two win counts sum to the total.
func CompareHeadToHead(player1ID, player2ID uint, matches []models.Match) (HeadToHead, error) {
	if player1ID == player2ID {
		return HeadToHead{}, ErrSamePlayer
	}

	h2h := HeadToHead{
		Player1ID: player1ID,
		Player2ID: player2ID,
		Meetings:  make([]Meeting, 0, len(matches)),
	}
	for _, m := range matches {
		winner, fallback := meetingWinner(m, player1ID, player2ID)
		if winner == player1ID {
			h2h.Player1Wins++
		} else {
			h2h.Player2Wins++
		}
		h2h.Meetings = append(h2h.Meetings, Meeting{
			MatchID:        m.ID,
			Date:           m.Date,
			WinnerID:       winner,
			Score:          m.Score,
			Surface:        m.Surface,
			FallbackWinner: fallback,
		})
	}
	h2h.TotalMatches = len(h2h.Meetings)

	sort.SliceStable(h2h.Meetings, func(i, j int) bool {
		a, b := h2h.Meetings[i], h2h.Meetings[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		return a.MatchID > b.MatchID
	})
	return h2h, nil
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	authModels "tennis-stats-api/packages/auth/models"
	"tennis-stats-api/packages/core/analytics"
	"tennis-stats-api/packages/core/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

func TestRequiresResolvedMembership(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, authModels.AuthContext{}, http.MethodGet, "/players", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlayerRoutes(t *testing.T) {
	s := setupTestServer(t)
	p := s.createPlayer(t, team1Coach, "Ana", "Lopez")

	t.Run("get", func(t *testing.T) {
		w := s.do(t, team1Coach, http.MethodGet, pathf("/players/%d", p.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got models.Player
		decode(t, w, &got)
		assert.Equal(t, "Lopez", got.LastName)
	})

	t.Run("other team sees not found", func(t *testing.T) {
		w := s.do(t, team2Coach, http.MethodGet, pathf("/players/%d", p.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		w := s.do(t, team1Coach, http.MethodGet, "/players/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		w := s.do(t, team1Coach, http.MethodPost, "/players", gin.H{"first_name": "Solo"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("pagination", func(t *testing.T) {
		w := s.do(t, team1Coach, http.MethodGet, "/players?page=1&per_page=10", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var page models.PaginatedPlayersResponse
		decode(t, w, &page)
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("delete", func(t *testing.T) {
		w := s.do(t, team1Coach, http.MethodDelete, pathf("/players/%d", p.ID), nil)
		require.Equal(t, http.StatusNoContent, w.Code)
		w = s.do(t, team1Coach, http.MethodGet, pathf("/players/%d", p.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMatchRoutes(t *testing.T) {
	s := setupTestServer(t)
	p := s.createPlayer(t, team1Coach, "Ana", "Lopez")
	m := s.createSingles(t, team1Coach, p.ID, "2024-03-10", "win")

	t.Run("backwards status is a conflict", func(t *testing.T) {
		w := s.do(t, team1Coach, http.MethodPatch, pathf("/matches/%d/status", m.ID), gin.H{"status": models.MatchScheduled})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("singles with two players on a side", func(t *testing.T) {
		w := s.do(t, team1Coach, http.MethodPost, "/matches", gin.H{
			"date":   "2024-03-11",
			"format": models.FormatSingles,
			"match_players": []gin.H{
				{"player_id": p.ID, "side": models.SideA, "role": models.RolePlayer},
				{"display_name": "Partner", "side": models.SideA, "role": models.RolePartner},
				{"display_name": "Opponent", "side": models.SideB, "role": models.RoleOpponent1},
			},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad date filter", func(t *testing.T) {
		w := s.do(t, team1Coach, http.MethodGet, "/matches?date_from=March", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("set lifecycle", func(t *testing.T) {
		set := s.createSet(t, team1Coach, m.ID)
		assert.Equal(t, 1, set.SetNumber)

		w := s.do(t, team1Coach, http.MethodPost, pathf("/matches/%d/sets/%d/start", m.ID, set.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		w = s.do(t, team1Coach, http.MethodPost, pathf("/matches/%d/sets/%d/start", m.ID, set.ID), nil)
		assert.Equal(t, http.StatusConflict, w.Code)

		w = s.do(t, team1Coach, http.MethodPatch, pathf("/matches/%d/sets/%d/score", m.ID, set.ID), gin.H{"side_a_games": 6, "side_b_games": 4})
		require.Equal(t, http.StatusOK, w.Code)
		var scored models.Set
		decode(t, w, &scored)
		assert.Equal(t, 6, scored.SideAGames)
	})
}

func TestSetStatsRoutes(t *testing.T) {
	s := setupTestServer(t)
	p := s.createPlayer(t, team1Coach, "Ana", "Lopez")
	m := s.createSingles(t, team1Coach, p.ID, "2024-03-10", "win")
	set := s.createSet(t, team1Coach, m.ID)
	mp := trackedParticipant(t, m)
	path := pathf("/sets/%d/stats/%d", set.ID, mp.ID)

	w := s.do(t, team1Coach, http.MethodPut, path, gin.H{
		"tech":            gin.H{"aces": 3, "first_serve_in": 20, "first_serve_total": 30},
		"physical_mental": gin.H{"focus": 8, "coach_notes": "Solid"},
		"quick_kpis":      gin.H{"serveQuality": "good"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var saved models.SaveSetStatsResponse
	decode(t, w, &saved)
	require.Len(t, saved.Outcomes, 3)
	for _, o := range saved.Outcomes {
		assert.True(t, o.OK, o.Table)
	}

	w = s.do(t, team1Coach, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view models.SetStatsView
	decode(t, w, &view)
	assert.Equal(t, 3, *view.Stats.Tech.Aces)
	assert.Equal(t, 0, *view.Stats.Tech.DoubleFaults)
	assert.Equal(t, 8, *view.Stats.PhysicalMental.Focus)
	assert.Equal(t, 5, *view.Stats.PhysicalMental.Energy)
	assert.Equal(t, "Solid", *view.Stats.PhysicalMental.CoachNotes)
	assert.Equal(t, "good", view.QuickKPIs.ServeQuality)

	t.Run("player of another match", func(t *testing.T) {
		other := s.createSingles(t, team1Coach, p.ID, "2024-03-12", "loss")
		w := s.do(t, team1Coach, http.MethodGet, pathf("/sets/%d/stats/%d", set.ID, trackedParticipant(t, other).ID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("other team", func(t *testing.T) {
		w := s.do(t, team2Coach, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLiveRoutes(t *testing.T) {
	s := setupTestServer(t)
	p := s.createPlayer(t, team1Coach, "Ana", "Lopez")
	m := s.createSingles(t, team1Coach, p.ID, "2024-03-10", "win")
	set := s.createSet(t, team1Coach, m.ID)
	mp := trackedParticipant(t, m)

	w := s.do(t, team1Coach, http.MethodPost, "/live/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var view struct {
		ID       string `json:"id"`
		State    string `json:"state"`
		Counters struct {
			Aces int `json:"aces"`
		} `json:"counters"`
	}
	decode(t, w, &view)
	require.NotEmpty(t, view.ID)
	assert.Equal(t, "idle", view.State)
	base := "/live/sessions/" + view.ID

	w = s.do(t, team1Coach, http.MethodPost, base+"/events/aces/increment", nil)
	assert.Equal(t, http.StatusConflict, w.Code, "tallies need a selection")

	w = s.do(t, team1Coach, http.MethodPut, base+"/selection", gin.H{"set_id": set.ID, "match_player_id": mp.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &view)
	assert.Equal(t, "ready", view.State)

	for i := 0; i < 2; i++ {
		w = s.do(t, team1Coach, http.MethodPost, base+"/events/aces/increment", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	decode(t, w, &view)
	assert.Equal(t, 2, view.Counters.Aces)

	w = s.do(t, team1Coach, http.MethodPost, base+"/events/lobs/increment", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, team1Other, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "sessions belong to their creator")

	w = s.do(t, team1Coach, http.MethodPut, base+"/kpis", gin.H{"mentalState": "excellent"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, team1Coach, http.MethodPost, base+"/save", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var saved LiveSaveResponse
	decode(t, w, &saved)
	assert.Len(t, saved.Outcomes, 3)
	assert.Equal(t, "ready", string(saved.Session.State))

	w = s.do(t, team1Coach, http.MethodGet, pathf("/sets/%d/stats/%d", set.ID, mp.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stored models.SetStatsView
	decode(t, w, &stored)
	assert.Equal(t, 2, *stored.Stats.Tech.Aces)
	assert.Equal(t, "excellent", stored.QuickKPIs.MentalState)

	w = s.do(t, team1Coach, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, s.registry.Len())
}

func TestAnalyticsRoutes(t *testing.T) {
	s := setupTestServer(t)
	ana := s.createPlayer(t, team1Coach, "Ana", "Lopez")
	s.createSingles(t, team1Coach, ana.ID, "2024-03-10", "win")
	s.createSingles(t, team1Coach, ana.ID, "2024-04-02", "loss")

	t.Run("dashboard", func(t *testing.T) {
		w := s.do(t, team1Coach, http.MethodGet, "/analytics/dashboard", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var d analytics.Dashboard
		decode(t, w, &d)
		assert.Equal(t, 2, d.Overall.Total)
		assert.Equal(t, 50.0, d.Overall.WinRate)
		assert.Len(t, d.Trends, 2)
	})

	t.Run("dashboard date range", func(t *testing.T) {
		w := s.do(t, team1Coach, http.MethodGet, "/analytics/dashboard?date_from=2024-04-01", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var d analytics.Dashboard
		decode(t, w, &d)
		assert.Equal(t, 1, d.Overall.Losses)
		assert.Equal(t, 0, d.Overall.Wins)
	})

	t.Run("top players minimum", func(t *testing.T) {
		w := s.do(t, team1Coach, http.MethodGet, "/analytics/top-players?min_matches=3", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var rankings []analytics.PlayerRanking
		decode(t, w, &rankings)
		assert.Empty(t, rankings)

		w = s.do(t, team1Coach, http.MethodGet, "/analytics/top-players?min_matches=0", nil)
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &rankings)
		require.Len(t, rankings, 1)
		assert.Equal(t, ana.ID, rankings[0].PlayerID)
		assert.Equal(t, 2, rankings[0].Matches)

		w = s.do(t, team1Coach, http.MethodGet, "/analytics/top-players?min_matches=zero", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		w = s.do(t, team1Coach, http.MethodGet, "/analytics/top-players?min_matches=-1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("head to head with itself", func(t *testing.T) {
		w := s.do(t, team1Coach, http.MethodGet, pathf("/analytics/head-to-head?player1=%d&player2=%d", ana.ID, ana.ID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("head to head needs both players", func(t *testing.T) {
		w := s.do(t, team1Coach, http.MethodGet, pathf("/analytics/head-to-head?player1=%d", ana.ID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("head to head without common matches", func(t *testing.T) {
		ben := s.createPlayer(t, team1Coach, "Ben", "Okafor")
		w := s.do(t, team1Coach, http.MethodGet, pathf("/analytics/head-to-head?player1=%d&player2=%d", ana.ID, ben.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var h2h analytics.HeadToHead
		decode(t, w, &h2h)
		assert.Zero(t, h2h.TotalMatches)
	})
}

func TestSaveStatus(t *testing.T) {
	failed := errors.New("write failed")

	assert.Equal(t, http.StatusOK, saveStatus(models.SaveResult{}))
	assert.Equal(t, http.StatusMultiStatus, saveStatus(models.SaveResult{Tactical: failed}))
	assert.Equal(t, http.StatusInternalServerError, saveStatus(models.SaveResult{Tech: failed, Tactical: failed, PhysicalMental: failed}))
}

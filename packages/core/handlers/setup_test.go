package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tennis-stats-api/packages/auth/middleware"
	authModels "tennis-stats-api/packages/auth/models"
	"tennis-stats-api/packages/core/live"
	"tennis-stats-api/packages/core/models"
	"tennis-stats-api/packages/core/services"
	"tennis-stats-api/pkg/cache"
	"tennis-stats-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	team1Coach = authModels.AuthContext{ProfileID: "coach-1", TeamID: 1, Role: authModels.RoleCoach}
	team1Other = authModels.AuthContext{ProfileID: "coach-3", TeamID: 1, Role: authModels.RoleCoach}
	team2Coach = authModels.AuthContext{ProfileID: "coach-2", TeamID: 2, Role: authModels.RoleCoach}
)

// testAuthHeader picks the caller in tests; without it no membership is set.
const testAuthHeader = "X-Test-Profile"

type testServer struct {
	router   *gin.Engine
	db       *gorm.DB
	registry *live.Registry
}

func setupTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Player{},
		&models.Match{},
		&models.MatchPlayer{},
		&models.Set{},
		&models.SetPlayerTechStats{},
		&models.SetPlayerTacticalStats{},
		&models.SetPlayerPhysicalMentalStats{},
	))

	log := logger.NewDiscard().WithField("test", t.Name())
	qc := services.NewQueryCache(cache.NewMemoryCache(), time.Minute, nil, log)
	players := services.NewPlayerService(db, qc)
	matches := services.NewMatchService(db, qc)
	stats := services.NewSetStatsService(db, qc, nil)
	registry := live.NewRegistry(stats, log, nil)

	playerHandler := NewPlayerHandler(players)
	matchHandler := NewMatchHandler(matches)
	setHandler := NewSetHandler(services.NewSetService(db, matches, qc))
	statsHandler := NewSetStatsHandler(stats)
	analyticsHandler := NewAnalyticsHandler(services.NewAnalyticsService(matches, 1), services.NewHeadToHeadService(players, matches))
	liveHandler := NewLiveHandler(registry)

	callers := map[string]authModels.AuthContext{
		team1Coach.ProfileID: team1Coach,
		team1Other.ProfileID: team1Other,
		team2Coach.ProfileID: team2Coach,
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if auth, ok := callers[c.GetHeader(testAuthHeader)]; ok {
			middleware.SetAuthContext(c, auth)
		}
		c.Next()
	})

	r.GET("/players", playerHandler.GetAllPlayers)
	r.GET("/players/:id", playerHandler.GetPlayer)
	r.POST("/players", playerHandler.CreatePlayer)
	r.PATCH("/players/:id", playerHandler.UpdatePlayer)
	r.DELETE("/players/:id", playerHandler.DeletePlayer)

	r.GET("/matches", matchHandler.GetMatches)
	r.GET("/matches/:id", matchHandler.GetMatch)
	r.POST("/matches", matchHandler.CreateMatch)
	r.PATCH("/matches/:id/status", matchHandler.UpdateMatchStatus)
	r.DELETE("/matches/:id", matchHandler.DeleteMatch)
	r.POST("/matches/:id/sets", setHandler.CreateSet)
	r.POST("/matches/:id/sets/:setId/start", setHandler.StartSet)
	r.PATCH("/matches/:id/sets/:setId/score", setHandler.UpdateSetScore)

	r.GET("/sets/:setId/stats/:matchPlayerId", statsHandler.GetSetStats)
	r.PUT("/sets/:setId/stats/:matchPlayerId", statsHandler.UpsertSetStats)

	r.GET("/analytics/dashboard", analyticsHandler.GetDashboard)
	r.GET("/analytics/top-players", analyticsHandler.GetTopPlayers)
	r.GET("/analytics/head-to-head", analyticsHandler.GetHeadToHead)

	r.POST("/live/sessions", liveHandler.CreateSession)
	r.GET("/live/sessions/:id", liveHandler.GetSession)
	r.DELETE("/live/sessions/:id", liveHandler.DeleteSession)
	r.PUT("/live/sessions/:id/selection", liveHandler.SelectPair)
	r.POST("/live/sessions/:id/events/:key/increment", liveHandler.Increment)
	r.POST("/live/sessions/:id/events/:key/decrement", liveHandler.Decrement)
	r.PUT("/live/sessions/:id/kpis", liveHandler.SetQuickKPIs)
	r.PUT("/live/sessions/:id/detailed", liveHandler.SetDetailed)
	r.POST("/live/sessions/:id/save", liveHandler.Save)

	return &testServer{router: r, db: db, registry: registry}
}

func (s *testServer) do(t *testing.T, auth authModels.AuthContext, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth.ProfileID != "" {
		req.Header.Set(testAuthHeader, auth.ProfileID)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest), w.Body.String())
}

func (s *testServer) createPlayer(t *testing.T, auth authModels.AuthContext, first, last string) models.Player {
	w := s.do(t, auth, http.MethodPost, "/players", gin.H{"first_name": first, "last_name": last})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p models.Player
	decode(t, w, &p)
	return p
}

func (s *testServer) createSingles(t *testing.T, auth authModels.AuthContext, playerID uint, date, result string) models.Match {
	w := s.do(t, auth, http.MethodPost, "/matches", gin.H{
		"date":         date,
		"surface":      "Clay",
		"format":       models.FormatSingles,
		"status":       models.MatchCompleted,
		"final_result": result,
		"match_players": []gin.H{
			{"player_id": playerID, "side": models.SideA, "role": models.RolePlayer},
			{"display_name": "Visiting Opponent", "side": models.SideB, "role": models.RoleOpponent1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var m models.Match
	decode(t, w, &m)
	return m
}

func (s *testServer) createSet(t *testing.T, auth authModels.AuthContext, matchID uint) models.Set {
	w := s.do(t, auth, http.MethodPost, pathf("/matches/%d/sets", matchID), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var set models.Set
	decode(t, w, &set)
	return set
}

func trackedParticipant(t *testing.T, m models.Match) models.MatchPlayer {
	for _, mp := range m.MatchPlayers {
		if mp.IsTracked {
			return mp
		}
	}
	t.Fatalf("match %d has no tracked participant", m.ID)
	return models.MatchPlayer{}
}

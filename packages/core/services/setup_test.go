package services

import (
	"context"
	"testing"
	"time"

	authModels "tennis-stats-api/packages/auth/models"
	"tennis-stats-api/packages/core/models"
	"tennis-stats-api/pkg/cache"
	"tennis-stats-api/pkg/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	team1Coach = authModels.AuthContext{ProfileID: "coach-1", TeamID: 1, Role: authModels.RoleCoach}
	team2Coach = authModels.AuthContext{ProfileID: "coach-2", TeamID: 2, Role: authModels.RoleCoach}
)

type testEnv struct {
	db        *gorm.DB
	cache     *cache.MemoryCache
	players   *PlayerService
	matches   *MatchService
	sets      *SetService
	stats     *SetStatsService
	analytics *AnalyticsService
	h2h       *HeadToHeadService
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
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
	return db
}

func setupServices(t *testing.T) *testEnv {
	db := setupTestDB(t)
	mem := cache.NewMemoryCache()
	qc := NewQueryCache(mem, time.Minute, nil, logger.NewDiscard().WithField("test", t.Name()))

	players := NewPlayerService(db, qc)
	matches := NewMatchService(db, qc)
	return &testEnv{
		db:        db,
		cache:     mem,
		players:   players,
		matches:   matches,
		sets:      NewSetService(db, matches, qc),
		stats:     NewSetStatsService(db, qc, nil),
		analytics: NewAnalyticsService(matches, 3),
		h2h:       NewHeadToHeadService(players, matches),
	}
}

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

func uintPtr(v uint) *uint { return &v }

func (e *testEnv) createPlayer(t *testing.T, auth authModels.AuthContext, first, last string) *models.Player {
	p, err := e.players.CreatePlayer(context.Background(), auth, models.CreatePlayerRequest{FirstName: first, LastName: last})
	require.NoError(t, err)
	return p
}

// createSingles records a completed singles match of a roster player against
// an ad-hoc opponent.
func (e *testEnv) createSingles(t *testing.T, auth authModels.AuthContext, playerID uint, date, surface, result string) *models.Match {
	m, err := e.matches.CreateMatch(context.Background(), auth, models.CreateMatchRequest{
		Date:        date,
		Surface:     strPtr(surface),
		Format:      models.FormatSingles,
		Status:      models.MatchCompleted,
		FinalResult: strPtr(result),
		MatchPlayers: []models.MatchPlayerInput{
			{PlayerID: uintPtr(playerID), Side: models.SideA, Role: models.RolePlayer},
			{DisplayName: "Visiting Opponent", Side: models.SideB, Role: models.RoleOpponent1},
		},
	})
	require.NoError(t, err)
	return m
}

func trackedParticipant(t *testing.T, m *models.Match) models.MatchPlayer {
	for _, mp := range m.MatchPlayers {
		if mp.IsTracked {
			return mp
		}
	}
	t.Fatalf("match %d has no tracked participant", m.ID)
	return models.MatchPlayer{}
}

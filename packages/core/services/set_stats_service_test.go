package services

import (
	"context"
	"testing"

	"tennis-stats-api/packages/core/models"
	"tennis-stats-api/packages/core/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statsFixture struct {
	match *models.Match
	set   *models.Set
	mp    models.MatchPlayer
}

func (e *testEnv) seedStatsFixture(t *testing.T) statsFixture {
	ana := e.createPlayer(t, team1Coach, "Ana", "Ruiz")
	match := e.createSingles(t, team1Coach, ana.ID, "2024-05-04", "hard", models.ResultWin)
	set, err := e.sets.CreateSet(context.Background(), team1Coach, match.ID)
	require.NoError(t, err)
	return statsFixture{match: match, set: set, mp: trackedParticipant(t, match)}
}

func TestSetStats_LoadDefaults(t *testing.T) {
	env := setupServices(t)
	fx := env.seedStatsFixture(t)

	bundle, err := env.stats.Load(context.Background(), team1Coach, fx.set.ID, fx.mp.ID)
	require.NoError(t, err)

	assert.Equal(t, fx.set.ID, bundle.Tech.SetID)
	assert.Equal(t, 0, *bundle.Tech.Aces)
	assert.Equal(t, 0, *bundle.Tactical.Lobs)
	assert.Equal(t, 5, *bundle.PhysicalMental.Energy)
	assert.Equal(t, "", *bundle.PhysicalMental.CoachNotes)
}

func TestSetStats_UpsertRoundTripsQuickKPIs(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	fx := env.seedStatsFixture(t)
	kpis := models.QuickKPIs{ServeQuality: models.KPIGood, RallyConsistency: models.KPIPoor}

	resp, result, err := env.stats.UpsertSetStats(ctx, team1Coach, fx.set.ID, fx.mp.ID, models.UpsertSetStatsRequest{
		Tech:           &models.SetPlayerTechStats{Aces: intPtr(4), FirstServeTotal: intPtr(30)},
		PhysicalMental: &models.SetPlayerPhysicalMentalStats{Focus: intPtr(9), CoachNotes: strPtr("Solid returns.")},
		QuickKPIs:      &kpis,
	})
	require.NoError(t, err)
	require.NoError(t, result.Err())
	for _, o := range resp.Outcomes {
		assert.True(t, o.OK, o.Table)
	}
	assert.Equal(t, kpis, resp.QuickKPIs)
	assert.Equal(t, "Solid returns.", *resp.Stats.PhysicalMental.CoachNotes)

	var stored models.SetPlayerPhysicalMentalStats
	require.NoError(t, env.db.Where("set_id = ?", fx.set.ID).First(&stored).Error)
	assert.Equal(t, kpis, utils.ParseQuickKPIs(*stored.CoachNotes))

	view, err := env.stats.GetSetStats(ctx, team1Coach, fx.set.ID, fx.mp.ID)
	require.NoError(t, err)
	assert.Equal(t, kpis, view.QuickKPIs)
	assert.Equal(t, 4, *view.Stats.Tech.Aces)
	assert.Equal(t, 9, *view.Stats.PhysicalMental.Focus)

	// a later save without KPIs keeps the stored ones and overwrites the rest
	_, _, err = env.stats.UpsertSetStats(ctx, team1Coach, fx.set.ID, fx.mp.ID, models.UpsertSetStatsRequest{
		Tech: &models.SetPlayerTechStats{Aces: intPtr(6)},
	})
	require.NoError(t, err)
	view, err = env.stats.GetSetStats(ctx, team1Coach, fx.set.ID, fx.mp.ID)
	require.NoError(t, err)
	assert.Equal(t, kpis, view.QuickKPIs)
	assert.Equal(t, 6, *view.Stats.Tech.Aces)
	assert.Equal(t, 0, *view.Stats.Tech.FirstServeTotal)

	var count int64
	env.db.Model(&models.SetPlayerTechStats{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSetStats_PairValidation(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	fx := env.seedStatsFixture(t)
	other := env.seedStatsFixture(t)

	_, err := env.stats.Load(ctx, team1Coach, fx.set.ID, other.mp.ID)
	assert.ErrorIs(t, err, ErrStatsPairMismatch)

	_, err = env.stats.Load(ctx, team2Coach, fx.set.ID, fx.mp.ID)
	assert.ErrorIs(t, err, ErrSetNotFound)

	_, err = env.stats.Load(ctx, team1Coach, fx.set.ID, 9999)
	assert.ErrorIs(t, err, ErrMatchPlayerNotFound)

	result := env.stats.SaveAll(ctx, team1Coach, models.SetStatsBundle{SetID: fx.set.ID, MatchPlayerID: other.mp.ID})
	assert.Len(t, result.FailedTables(), 3)
	assert.ErrorIs(t, result.Tech, ErrStatsPairMismatch)
}

func TestSetStats_PartialFailureKeepsOtherTables(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	fx := env.seedStatsFixture(t)
	require.NoError(t, env.db.Exec(`CREATE TRIGGER reject_tactical BEFORE INSERT ON set_player_tactical_stats
		BEGIN SELECT RAISE(ABORT, 'tactical writes disabled'); END`).Error)

	bundle := models.SetStatsBundle{
		Tech:     models.SetPlayerTechStats{Aces: intPtr(2)},
		Tactical: models.SetPlayerTacticalStats{Lobs: intPtr(3)},
	}
	bundle.Key(fx.set.ID, fx.mp.ID)

	result := env.stats.SaveAll(ctx, team1Coach, bundle)

	require.True(t, result.Partial())
	assert.Equal(t, []string{models.TableTactical}, result.FailedTables())
	assert.ErrorContains(t, result.Err(), "tactical writes disabled")

	loaded, err := env.stats.Load(ctx, team1Coach, fx.set.ID, fx.mp.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, *loaded.Tech.Aces)
	assert.Equal(t, 0, *loaded.Tactical.Lobs)
	assert.NotZero(t, loaded.PhysicalMental.ID)
}

func TestSetStats_SaveInvalidatesDataset(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	fx := env.seedStatsFixture(t)

	before, err := env.analytics.GetDashboard(ctx, team1Coach, models.MatchFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, before.Technical.WinnersPerMatch)

	bundle := models.SetStatsBundle{Tech: models.SetPlayerTechStats{FhWinners: intPtr(5)}}
	bundle.Key(fx.set.ID, fx.mp.ID)
	require.NoError(t, env.stats.SaveAll(ctx, team1Coach, bundle).Err())

	after, err := env.analytics.GetDashboard(ctx, team1Coach, models.MatchFilter{})
	require.NoError(t, err)
	assert.Equal(t, 5.0, after.Technical.WinnersPerMatch)
}
